package tiktoken_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trinav-code/eazyhealth"
	"github.com/trinav-code/eazyhealth/tiktoken"
)

func TestNewTokenCounter_RejectsUnknownEncoding(t *testing.T) {
	t.Parallel()

	_, err := tiktoken.NewTokenCounter("no_such_encoding")

	require.Error(t, err)
	assert.Equal(t, eazyhealth.ECONFIG, eazyhealth.ErrorCode(err))
}

func TestTokenCounter_CountTokens(t *testing.T) {
	if testing.Short() {
		t.Skip("loads BPE ranks over the network")
	}
	t.Parallel()

	tc, err := tiktoken.NewTokenCounter("")
	require.NoError(t, err)

	t.Run("counts tokens in text", func(t *testing.T) {
		t.Parallel()

		count, err := tc.CountTokens(context.Background(), "hello world")

		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("empty string returns zero", func(t *testing.T) {
		t.Parallel()

		count, err := tc.CountTokens(context.Background(), "")

		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("is stable across calls", func(t *testing.T) {
		t.Parallel()

		text := "Atrial fibrillation is an irregular and often very rapid heart rhythm."
		first, err := tc.CountTokens(context.Background(), text)
		require.NoError(t, err)
		second, err := tc.CountTokens(context.Background(), text)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Greater(t, first, 5)
	})
}
