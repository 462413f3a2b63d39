package eazyhealth

import "time"

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// Text is the main content as plain text.
	Text string

	// ContentHTML is the main content as clean HTML, when the extractor
	// produces one. Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string

	// Author and Date are optional metadata.
	Author string
	Date   *time.Time
}

// Extractor extracts main content from HTML pages, removing boilerplate.
type Extractor interface {
	// Extract processes raw HTML and returns the main content.
	Extract(html string) (*ExtractResult, error)
}
