package mock

import (
	"context"

	"github.com/trinav-code/eazyhealth"
)

var _ eazyhealth.TokenCounter = (*TokenCounter)(nil)

// TokenCounter is a mock implementation of eazyhealth.TokenCounter.
type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return tc.CountTokensFn(ctx, text)
}
