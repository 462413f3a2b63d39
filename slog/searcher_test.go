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

func TestLoggingSearcher_Search(t *testing.T) {
	t.Parallel()

	t.Run("logs query and result count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Searcher{
			SearchFn: func(ctx context.Context, query string, maxResults int) ([]*eazyhealth.SourceCandidate, error) {
				return []*eazyhealth.SourceCandidate{{URL: "https://www.cdc.gov/flu"}}, nil
			},
		}

		results, err := ehslog.NewLoggingSearcher(inner, logger).Search(context.Background(), "flu", 3)

		require.NoError(t, err)
		assert.Len(t, results, 1)
		output := buf.String()
		assert.Contains(t, output, "source discovery")
		assert.Contains(t, output, "query=flu")
		assert.Contains(t, output, "max=3")
		assert.Contains(t, output, "count=1")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Searcher{
			SearchFn: func(ctx context.Context, query string, maxResults int) ([]*eazyhealth.SourceCandidate, error) {
				return nil, errors.New("quota exceeded")
			},
		}

		_, err := ehslog.NewLoggingSearcher(inner, logger).Search(context.Background(), "flu", 3)

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"quota exceeded\"")
	})
}
