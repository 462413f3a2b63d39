package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/trinav-code/eazyhealth"
)

// Ensure LoggingSearcher implements eazyhealth.Searcher.
var _ eazyhealth.Searcher = (*LoggingSearcher)(nil)

// LoggingSearcher wraps a Searcher with logging.
type LoggingSearcher struct {
	next   eazyhealth.Searcher
	logger *slog.Logger
}

// NewLoggingSearcher creates a new LoggingSearcher.
func NewLoggingSearcher(next eazyhealth.Searcher, logger *slog.Logger) *LoggingSearcher {
	return &LoggingSearcher{next: next, logger: logger}
}

// Search delegates to the wrapped searcher and logs the operation.
func (s *LoggingSearcher) Search(ctx context.Context, query string, maxResults int) (results []*eazyhealth.SourceCandidate, err error) {
	defer func(begin time.Time) {
		s.logger.Info("source discovery",
			"query", query,
			"max", maxResults,
			"count", len(results),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, query, maxResults)
}
