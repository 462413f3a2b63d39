package eazyhealth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/trinav-code/eazyhealth"
)

func TestTrustFilter_IsTrusted(t *testing.T) {
	t.Parallel()

	f := eazyhealth.NewTrustFilter([]string{"cdc.gov", " NIH.gov ", ""})

	t.Run("matches domain with www prefix", func(t *testing.T) {
		t.Parallel()

		assert.True(t, f.IsTrusted("https://www.cdc.gov/x"))
	})

	t.Run("matches subdomain", func(t *testing.T) {
		t.Parallel()

		assert.True(t, f.IsTrusted("https://medlineplus.nih.gov/diabetes.html"))
	})

	t.Run("is case insensitive", func(t *testing.T) {
		t.Parallel()

		assert.True(t, f.IsTrusted("HTTPS://WWW.CDC.GOV/FLU"))
	})

	t.Run("rejects lookalike host", func(t *testing.T) {
		t.Parallel()

		assert.False(t, f.IsTrusted("https://evilcdc.gov.attacker.com/"))
		assert.False(t, f.IsTrusted("https://notcdc.gov/"))
	})

	t.Run("rejects malformed URL", func(t *testing.T) {
		t.Parallel()

		assert.False(t, f.IsTrusted("://bad url"))
		assert.False(t, f.IsTrusted(""))
		assert.False(t, f.IsTrusted("cdc.gov"))
	})
}

func TestTrustFilter_Domains(t *testing.T) {
	t.Parallel()

	f := eazyhealth.NewTrustFilter([]string{"CDC.gov", " ", "who.int"})

	assert.Equal(t, []string{"cdc.gov", "who.int"}, f.Domains())
}

func TestTrustFilter_SiteQuery(t *testing.T) {
	t.Parallel()

	f := eazyhealth.NewTrustFilter([]string{"cdc.gov", "nih.gov"})

	assert.Equal(t, "flu shots site:(cdc.gov OR site:nih.gov)", f.SiteQuery("flu shots", " OR site:"))
	assert.Equal(t, "flu shots site:(cdc.gov OR nih.gov)", f.SiteQuery("flu shots", " OR "))
	assert.Equal(t, "flu", eazyhealth.NewTrustFilter(nil).SiteQuery("flu", " OR "))
}

func TestParseTrustedDomains(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"cdc.gov", "nih.gov"}, eazyhealth.ParseTrustedDomains(" cdc.gov, ,nih.gov,"))
	assert.Empty(t, eazyhealth.ParseTrustedDomains(""))
}
