// Package goquery provides the heuristic eazyhealth.Extractor used when the
// structured extractor yields nothing. It strips boilerplate markup, picks
// the first content region that exists and flattens it to text lines.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/trinav-code/eazyhealth"
	"golang.org/x/net/html"
)

// Ensure Extractor implements eazyhealth.Extractor at compile time.
var _ eazyhealth.Extractor = (*Extractor)(nil)

// boilerplate is removed before any region is probed.
const boilerplate = "script, style, nav, footer, aside"

// regions are probed in order; the first match wins, then body.
var regions = []string{"article", "main", "div[role='main']", "body"}

// Extractor extracts text with tag heuristics.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the text of the first content region. The title comes
// from <title> and is left empty when absent. Returns ENOTFOUND when no
// region holds any text.
func (e *Extractor) Extract(rawHTML string) (*eazyhealth.ExtractResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, eazyhealth.Errorf(eazyhealth.EINVALID, "failed to parse HTML: %v", err)
	}

	doc.Find(boilerplate).Remove()

	var region *goquery.Selection
	for _, sel := range regions {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			region = s
			break
		}
	}
	if region == nil {
		return nil, eazyhealth.Errorf(eazyhealth.ENOTFOUND, "no content region found")
	}

	text := textLines(region)
	if text == "" {
		return nil, eazyhealth.Errorf(eazyhealth.ENOTFOUND, "content region is empty")
	}

	contentHTML, _ := goquery.OuterHtml(region)

	return &eazyhealth.ExtractResult{
		Title:       strings.TrimSpace(doc.Find("title").First().Text()),
		Text:        text,
		ContentHTML: contentHTML,
	}, nil
}

// textLines emits every text node on its own line, trims each line, drops
// blank ones and joins the rest with a blank line between them.
func textLines(sel *goquery.Selection) string {
	var lines []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			for _, line := range strings.Split(n.Data, "\n") {
				if line = strings.TrimSpace(line); line != "" {
					lines = append(lines, line)
				}
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return strings.Join(lines, "\n\n")
}
