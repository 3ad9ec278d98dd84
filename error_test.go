package storeinsight_test

import (
	"errors"
	"testing"

	"github.com/fwojciec/storeinsight"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := storeinsight.Errorf(storeinsight.ENOTFOUND, "page %q not found", "/pages/faq")

	assert.Equal(t, storeinsight.ENOTFOUND, storeinsight.ErrorCode(err))
	assert.Equal(t, "page \"/pages/faq\" not found", storeinsight.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, storeinsight.ErrorCode(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, storeinsight.EINTERNAL, storeinsight.ErrorCode(errors.New("boom")))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, storeinsight.ErrorMessage(nil))
}
