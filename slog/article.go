package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/trinav-code/eazyhealth"
)

// Ensure LoggingArticleExtractor implements eazyhealth.ArticleExtractor.
var _ eazyhealth.ArticleExtractor = (*LoggingArticleExtractor)(nil)

// LoggingArticleExtractor wraps an ArticleExtractor with logging.
type LoggingArticleExtractor struct {
	next   eazyhealth.ArticleExtractor
	logger *slog.Logger
}

// NewLoggingArticleExtractor creates a new LoggingArticleExtractor.
func NewLoggingArticleExtractor(next eazyhealth.ArticleExtractor, logger *slog.Logger) *LoggingArticleExtractor {
	return &LoggingArticleExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the operation.
func (e *LoggingArticleExtractor) Extract(ctx context.Context, url string) (a *eazyhealth.Article, err error) {
	defer func(begin time.Time) {
		words := 0
		if a != nil {
			words = a.WordCount
		}
		e.logger.Info("article extraction",
			"url", url,
			"words", words,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(ctx, url)
}
