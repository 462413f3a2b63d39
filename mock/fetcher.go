package mock

import (
	"context"

	"github.com/trinav-code/eazyhealth"
)

var _ eazyhealth.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of eazyhealth.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}
