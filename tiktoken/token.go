// Package tiktoken provides an eazyhealth.TokenCounter backed by the
// tiktoken BPE encodings.
package tiktoken

import (
	"context"

	"github.com/pkoukk/tiktoken-go"
	"github.com/trinav-code/eazyhealth"
)

// DefaultEncoding is the encoding used for budgeting.
const DefaultEncoding = "cl100k_base"

var _ eazyhealth.TokenCounter = (*TokenCounter)(nil)

// TokenCounter counts tokens under one fixed encoding.
type TokenCounter struct {
	enc *tiktoken.Tiktoken
}

// NewTokenCounter loads the named encoding. An empty name selects
// DefaultEncoding. Unknown encodings return ECONFIG.
func NewTokenCounter(encoding string) (*TokenCounter, error) {
	if encoding == "" {
		encoding = DefaultEncoding
	}
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, eazyhealth.Errorf(eazyhealth.ECONFIG, "load encoding %q: %v", encoding, err)
	}
	return &TokenCounter{enc: enc}, nil
}

// CountTokens counts the tokens in text. Special-token markers are encoded
// as ordinary text.
func (tc *TokenCounter) CountTokens(_ context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}
	return len(tc.enc.EncodeOrdinary(text)), nil
}
