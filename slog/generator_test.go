package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trinav-code/eazyhealth"
	"github.com/trinav-code/eazyhealth/mock"
	ehslog "github.com/trinav-code/eazyhealth/slog"
)

func TestLoggingGenerator(t *testing.T) {
	t.Parallel()

	t.Run("logs explainer generation", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Generator{
			GenerateExplainerFn: func(ctx context.Context, in eazyhealth.ExplainerInput) (*eazyhealth.GenerationResult, error) {
				return &eazyhealth.GenerationResult{Title: "Flu", Degraded: true}, nil
			},
		}

		res, err := ehslog.NewLoggingGenerator(inner, logger).GenerateExplainer(context.Background(), eazyhealth.ExplainerInput{
			Text:         "abcd",
			ReadingLevel: eazyhealth.Grade6,
		})

		require.NoError(t, err)
		assert.Equal(t, "Flu", res.Title)
		output := buf.String()
		assert.Contains(t, output, "explainer generation")
		assert.Contains(t, output, "level=grade6")
		assert.Contains(t, output, "input_chars=4")
		assert.Contains(t, output, "degraded=true")
	})

	t.Run("logs briefing generation error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Generator{
			GenerateBriefingFn: func(ctx context.Context, in eazyhealth.BriefingInput) (*eazyhealth.GenerationResult, error) {
				return nil, errors.New("provider down")
			},
		}

		_, err := ehslog.NewLoggingGenerator(inner, logger).GenerateBriefing(context.Background(), eazyhealth.BriefingInput{
			SourceType: eazyhealth.ArticleSummary,
			Articles:   []*eazyhealth.BriefingSource{{URL: "https://www.cdc.gov"}},
		})

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "briefing generation")
		assert.Contains(t, output, "source_type=article_summary")
		assert.Contains(t, output, "articles=1")
		assert.Contains(t, output, "degraded=false")
		assert.Contains(t, output, "err=\"provider down\"")
	})
}

func TestLoggingCompleter_Complete(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	inner := &mock.Completer{
		CompleteFn: func(ctx context.Context, userPrompt, systemPrompt string) (string, error) {
			return "hello", nil
		},
	}

	text, err := ehslog.NewLoggingCompleter(inner, newDebugLogger(&buf)).Complete(context.Background(), "user", "sys")

	require.NoError(t, err)
	assert.Equal(t, "hello", text)
	output := buf.String()
	assert.Contains(t, output, "completion")
	assert.Contains(t, output, "prompt_chars=4")
	assert.Contains(t, output, "system_chars=3")
	assert.Contains(t, output, "response_chars=5")
}
