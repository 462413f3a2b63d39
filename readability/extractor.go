// Package readability provides an alternate structured eazyhealth.Extractor
// built on go-readability.
package readability

import (
	"strings"

	"github.com/go-shiori/go-readability"
	"github.com/trinav-code/eazyhealth"
)

// Ensure Extractor implements eazyhealth.Extractor at compile time.
var _ eazyhealth.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*eazyhealth.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, eazyhealth.Errorf(eazyhealth.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &eazyhealth.ExtractResult{
		Title:       strings.TrimSpace(article.Title),
		Text:        strings.TrimSpace(article.TextContent),
		ContentHTML: article.Content,
		Author:      strings.TrimSpace(article.Byline),
	}, nil
}
