package eazyhealth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/trinav-code/eazyhealth"
)

func TestExplainRequest_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts a single input", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, (&eazyhealth.ExplainRequest{Query: "what is afib"}).Validate())
		assert.NoError(t, (&eazyhealth.ExplainRequest{URL: "https://cdc.gov/flu"}).Validate())
		assert.NoError(t, (&eazyhealth.ExplainRequest{RawText: "text", ReadingLevel: eazyhealth.Grade3}).Validate())
	})

	t.Run("rejects missing input", func(t *testing.T) {
		t.Parallel()

		err := (&eazyhealth.ExplainRequest{Query: "   "}).Validate()

		assert.Equal(t, eazyhealth.EINVALID, eazyhealth.ErrorCode(err))
		assert.Contains(t, eazyhealth.ErrorMessage(err), "required")
	})

	t.Run("rejects multiple inputs", func(t *testing.T) {
		t.Parallel()

		err := (&eazyhealth.ExplainRequest{Query: "flu", URL: "https://cdc.gov/flu"}).Validate()

		assert.Equal(t, eazyhealth.EINVALID, eazyhealth.ErrorCode(err))
		assert.Contains(t, eazyhealth.ErrorMessage(err), "only one")
	})

	t.Run("rejects unknown reading level", func(t *testing.T) {
		t.Parallel()

		err := (&eazyhealth.ExplainRequest{Query: "flu", ReadingLevel: "expert"}).Validate()

		assert.Equal(t, eazyhealth.EINVALID, eazyhealth.ErrorCode(err))
	})
}

func TestExplainerLog_Validate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, eazyhealth.EINVALID, eazyhealth.ErrorCode((&eazyhealth.ExplainerLog{ReadingLevel: eazyhealth.Grade6}).Validate()))
	assert.NoError(t, (&eazyhealth.ExplainerLog{
		ReadingLevel: eazyhealth.Grade6,
		Output:       &eazyhealth.GenerationResult{Title: "Flu"},
	}).Validate())
}
