// Package article implements eazyhealth.ArticleExtractor by composing a
// fetcher with a structured extractor and a heuristic fallback.
package article

import (
	"context"
	"log/slog"
	"strings"

	"github.com/trinav-code/eazyhealth"
)

// DefaultTitle is used when no extractor finds a page title.
const DefaultTitle = "Article"

// Ensure Extractor implements eazyhealth.ArticleExtractor at compile time.
var _ eazyhealth.ArticleExtractor = (*Extractor)(nil)

// Extractor fetches a page and runs Structured first. When Structured is
// unset, fails, or yields blank text, Fallback decides. Converter, when set,
// renders the structured content HTML as Markdown for the article text.
type Extractor struct {
	Fetcher    eazyhealth.Fetcher
	Structured eazyhealth.Extractor
	Fallback   eazyhealth.Extractor
	Converter  eazyhealth.Converter
	Logger     *slog.Logger
}

// Extract returns the article at url. Fetch errors pass through unchanged
// (EUPSTREAM from the HTTP fetcher). When neither strategy yields text the
// fallback's error is returned, ENOTFOUND when no fallback is configured.
func (e *Extractor) Extract(ctx context.Context, url string) (*eazyhealth.Article, error) {
	html, err := e.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	if a := e.structured(url, html); a != nil {
		return a, nil
	}

	if e.Fallback == nil {
		return nil, eazyhealth.Errorf(eazyhealth.ENOTFOUND, "no article text found at %s", url)
	}
	res, err := e.Fallback.Extract(html)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(res.Text) == "" {
		return nil, eazyhealth.Errorf(eazyhealth.ENOTFOUND, "no article text found at %s", url)
	}
	return newArticle(url, res, res.Text), nil
}

func (e *Extractor) structured(url, html string) *eazyhealth.Article {
	if e.Structured == nil {
		return nil
	}
	res, err := e.Structured.Extract(html)
	if err != nil {
		e.logger().Debug("structured extraction failed", "url", url, "error", err)
		return nil
	}
	text := strings.TrimSpace(res.Text)
	if text == "" {
		return nil
	}

	if e.Converter != nil && res.ContentHTML != "" {
		md, err := e.Converter.Convert(res.ContentHTML)
		switch {
		case err != nil:
			e.logger().Debug("markdown conversion failed", "url", url, "error", err)
		case strings.TrimSpace(md) != "":
			text = md
		}
	}
	return newArticle(url, res, text)
}

func newArticle(url string, res *eazyhealth.ExtractResult, text string) *eazyhealth.Article {
	title := strings.TrimSpace(res.Title)
	if title == "" {
		title = DefaultTitle
	}
	return &eazyhealth.Article{
		URL:       url,
		Title:     title,
		Text:      text,
		Author:    res.Author,
		Date:      res.Date,
		WordCount: eazyhealth.CountWords(text),
	}
}

func (e *Extractor) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return e.Logger
}
