package mock

import (
	"context"

	"github.com/trinav-code/eazyhealth"
)

var (
	_ eazyhealth.Extractor        = (*Extractor)(nil)
	_ eazyhealth.ArticleExtractor = (*ArticleExtractor)(nil)
	_ eazyhealth.Converter        = (*Converter)(nil)
)

// Extractor is a mock implementation of eazyhealth.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*eazyhealth.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*eazyhealth.ExtractResult, error) {
	return e.ExtractFn(html)
}

// ArticleExtractor is a mock implementation of eazyhealth.ArticleExtractor.
type ArticleExtractor struct {
	ExtractFn func(ctx context.Context, url string) (*eazyhealth.Article, error)
}

func (e *ArticleExtractor) Extract(ctx context.Context, url string) (*eazyhealth.Article, error) {
	return e.ExtractFn(ctx, url)
}

// Converter is a mock implementation of eazyhealth.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
