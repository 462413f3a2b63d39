// Package trafilatura provides the structured eazyhealth.Extractor built on
// go-trafilatura. It yields body text plus title, author and publish date.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"github.com/trinav-code/eazyhealth"
	"golang.org/x/net/html"
)

// Ensure Extractor implements eazyhealth.Extractor at compile time.
var _ eazyhealth.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
// Comments and tables are excluded from the extracted body.
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

	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
		ExcludeTables:   true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	out := &eazyhealth.ExtractResult{
		Title:       strings.TrimSpace(result.Metadata.Title),
		Text:        strings.TrimSpace(result.ContentText),
		ContentHTML: contentHTML,
		Author:      strings.TrimSpace(result.Metadata.Author),
	}
	if d := result.Metadata.Date; !d.IsZero() {
		out.Date = &d
	}
	return out, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
