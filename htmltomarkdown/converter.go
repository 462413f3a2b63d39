// Package htmltomarkdown renders extracted article HTML as Markdown, used
// when article text should keep headings, lists and links.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/trinav-code/eazyhealth"
)

// Ensure Converter implements eazyhealth.Converter at compile time.
var _ eazyhealth.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown. Tables are not converted since the
// structured extractor already drops them from article bodies.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	return &Converter{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
			),
		),
	}
}

// Convert transforms article HTML into trimmed Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", eazyhealth.Errorf(eazyhealth.EINVALID, "empty HTML input")
	}

	md, err := c.conv.ConvertString(html)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(md), nil
}
