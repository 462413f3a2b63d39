package eazyhealth

import "context"

// SourceCandidate is a search hit that may be worth extracting.
type SourceCandidate struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// Searcher discovers candidate sources for a query.
type Searcher interface {
	// Search returns at most maxResults candidates in backend relevance order.
	Search(ctx context.Context, query string, maxResults int) ([]*SourceCandidate, error)
}

// SourceRef records a source that contributed to a generated artifact.
type SourceRef struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Excerpt string `json:"excerpt"`
}
