package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/storeinsight"
	main "github.com/fwojciec/storeinsight/cmd/storeinsight"
	"github.com/fwojciec/storeinsight/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("deletes records with --force", func(t *testing.T) {
		t.Parallel()

		var deletedURL string
		records := &mock.ExtractionRecordService{
			DeleteRecordsByURLFn: func(_ context.Context, websiteURL string) (int, error) {
				deletedURL = websiteURL
				return 3, nil
			},
		}

		stdout := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Records: records,
		}

		cmd := &main.DeleteCmd{URL: "https://acme.example.com", Force: true}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "https://acme.example.com", deletedURL)
		assert.Contains(t, stdout.String(), "Deleted 3 record(s)")
	})

	t.Run("normalizes the URL to the stored form", func(t *testing.T) {
		t.Parallel()

		var deletedURL string
		records := &mock.ExtractionRecordService{
			DeleteRecordsByURLFn: func(_ context.Context, websiteURL string) (int, error) {
				deletedURL = websiteURL
				return 1, nil
			},
		}

		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  &bytes.Buffer{},
			Records: records,
		}

		cmd := &main.DeleteCmd{URL: "AcmeSupply.com/", Force: true}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "https://acmesupply.com", deletedURL)
	})

	t.Run("requires --force to confirm", func(t *testing.T) {
		t.Parallel()

		called := false
		records := &mock.ExtractionRecordService{
			DeleteRecordsByURLFn: func(_ context.Context, _ string) (int, error) {
				called = true
				return 0, nil
			},
		}

		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  stderr,
			Records: records,
		}

		cmd := &main.DeleteCmd{URL: "https://acme.example.com"}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, storeinsight.EINVALID, storeinsight.ErrorCode(err))
		assert.Contains(t, stderr.String(), "--force")
		assert.False(t, called)
	})

	t.Run("reports when nothing matched", func(t *testing.T) {
		t.Parallel()

		records := &mock.ExtractionRecordService{
			DeleteRecordsByURLFn: func(_ context.Context, _ string) (int, error) {
				return 0, nil
			},
		}

		stdout := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Records: records,
		}

		cmd := &main.DeleteCmd{URL: "https://gone.example.com", Force: true}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No records found")
	})
}
