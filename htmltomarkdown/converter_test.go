package htmltomarkdown_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trinav-code/eazyhealth"
	"github.com/trinav-code/eazyhealth/htmltomarkdown"
)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("keeps article structure", func(t *testing.T) {
		t.Parallel()

		html := `<article><h2>Symptoms</h2><ul><li>Fever</li><li>Cough</li></ul>
<p>See <a href="https://www.cdc.gov/flu">CDC guidance</a>.</p></article>`

		md, err := htmltomarkdown.NewConverter().Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "## Symptoms")
		assert.Contains(t, md, "- Fever")
		assert.Contains(t, md, "[CDC guidance](https://www.cdc.gov/flu)")
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert("\n<p>Rest and fluids.</p>\n")

		require.NoError(t, err)
		assert.Equal(t, "Rest and fluids.", md)
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		_, err := htmltomarkdown.NewConverter().Convert("   ")

		require.Error(t, err)
		assert.Equal(t, eazyhealth.EINVALID, eazyhealth.ErrorCode(err))
	})
}
