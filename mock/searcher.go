package mock

import (
	"context"

	"github.com/trinav-code/eazyhealth"
)

var _ eazyhealth.Searcher = (*Searcher)(nil)

// Searcher is a mock implementation of eazyhealth.Searcher.
type Searcher struct {
	SearchFn func(ctx context.Context, query string, maxResults int) ([]*eazyhealth.SourceCandidate, error)
}

func (s *Searcher) Search(ctx context.Context, query string, maxResults int) ([]*eazyhealth.SourceCandidate, error) {
	return s.SearchFn(ctx, query, maxResults)
}
