//go:build integration

package gemini_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trinav-code/eazyhealth/gemini"
	"google.golang.org/genai"
)

func TestCompleter_Integration_ReturnsText(t *testing.T) {
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

	got, err := gemini.NewCompleter(client, gemini.WithMaxTokens(256)).Complete(ctx,
		`Return the JSON object {"title": "Flu"} and nothing else.`,
		"You are a terse assistant.")

	require.NoError(t, err)
	assert.Contains(t, got, "Flu")
}
