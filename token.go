package eazyhealth

import "context"

// TokenCounter counts tokens in text under one fixed encoding.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
