//go:build integration

package gemini_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/fwojciec/storeinsight/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestSynthesizer_Integration_SummarizeBrand(t *testing.T) {
	t.Parallel()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("GEMINI_API_KEY not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	require.NoError(t, err)

	s := gemini.NewSynthesizer(client)

	summary, err := s.SummarizeBrand(ctx, "Acme Supply was founded in 2015 in Portland. We make durable canvas bags and backpacks for daily commuters, sewn locally from recycled materials.")

	require.NoError(t, err)
	assert.NotEmpty(t, summary)
}
