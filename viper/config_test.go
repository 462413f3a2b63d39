package viper_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trinav-code/eazyhealth"
	"github.com/trinav-code/eazyhealth/viper"
)

// clearEnv blanks every variable Load consults. Empty variables count as
// unset, so defaults apply.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"DATABASE_PATH", "LLM_PROVIDER", "LLM_MODEL", "GEMINI_API_KEY", "GOOGLE_API_KEY",
		"OPENAI_API_KEY", "LLM_MAX_TOKENS", "LLM_TEMPERATURE", "SEARCH_PROVIDER",
		"BRAVE_API_KEY", "SERPER_API_KEY", "TRUSTED_DOMAINS", "MAX_INPUT_TOKENS",
		"DUPLICATE_LOOKBACK", "DUPLICATE_THRESHOLD", "EAZYHEALTH_SEARCH_TIMEOUT",
	} {
		t.Setenv(name, "")
	}
}

func newLoader(t *testing.T) *viper.Loader {
	t.Helper()
	return &viper.Loader{
		EnvFile: filepath.Join(t.TempDir(), "missing.env"),
		HomeDir: "/home/tester",
	}
}

func TestLoader_Load(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		clearEnv(t)

		cfg, err := newLoader(t).Load()
		require.NoError(t, err)

		assert.Equal(t, "/home/tester/.eazyhealth/eazyhealth.db", cfg.Database.Path)
		assert.Equal(t, eazyhealth.ProviderGemini, cfg.Generation.Provider)
		assert.Equal(t, 4096, cfg.Generation.MaxTokens)
		assert.InDelta(t, 0.7, cfg.Generation.Temperature, 1e-6)
		assert.Equal(t, eazyhealth.SearchBrave, cfg.Search.Provider)
		assert.Equal(t, 10*time.Second, cfg.Search.Timeout)
		assert.Equal(t, 3, cfg.Search.MaxResults)
		assert.InDelta(t, 1.0, cfg.Search.RateLimit, 1e-9)
		assert.Equal(t, eazyhealth.DefaultTrustedDomains, cfg.TrustedDomains)
		assert.Equal(t, viper.DefaultUserAgent, cfg.Fetch.UserAgent)
		assert.Equal(t, eazyhealth.ExtractorTrafilatura, cfg.Extract.Structured)
		assert.Equal(t, 4000, cfg.Budget.MaxInputTokens)
		assert.Equal(t, 500, cfg.Budget.BasePromptTokens)
		assert.Equal(t, "cl100k_base", cfg.Budget.Encoding)
		assert.Equal(t, 720*time.Hour, cfg.Duplicates.Lookback)
		assert.InDelta(t, 0.6, cfg.Duplicates.Threshold, 1e-9)
		assert.InDelta(t, 0.7, cfg.Duplicates.TagWeight, 1e-9)
		assert.InDelta(t, 0.3, cfg.Duplicates.TitleWeight, 1e-9)
	})

	t.Run("reads environment variables", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("SEARCH_PROVIDER", "Serper")
		t.Setenv("SERPER_API_KEY", "serper-key")
		t.Setenv("TRUSTED_DOMAINS", " cdc.gov, who.int ,")
		t.Setenv("LLM_TEMPERATURE", "0.2")
		t.Setenv("DUPLICATE_LOOKBACK", "168h")
		t.Setenv("EAZYHEALTH_SEARCH_TIMEOUT", "15s")

		cfg, err := newLoader(t).Load()
		require.NoError(t, err)

		assert.Equal(t, eazyhealth.SearchSerper, cfg.Search.Provider)
		assert.Equal(t, "serper-key", cfg.Search.SerperAPIKey)
		assert.Equal(t, []string{"cdc.gov", "who.int"}, cfg.TrustedDomains)
		assert.InDelta(t, 0.2, cfg.Generation.Temperature, 1e-6)
		assert.Equal(t, 168*time.Hour, cfg.Duplicates.Lookback)
		assert.Equal(t, 15*time.Second, cfg.Search.Timeout)
	})

	t.Run("reads config file", func(t *testing.T) {
		clearEnv(t)
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
generation:
  provider: openai
  model: gpt-4o-mini
search:
  provider: mock
  require_trusted: true
trusted_domains:
  - nih.gov
  - medlineplus.gov
duplicates:
  threshold: 0.5
`), 0o600))

		l := newLoader(t)
		l.ConfigFile = path
		cfg, err := l.Load()
		require.NoError(t, err)

		assert.Equal(t, eazyhealth.ProviderOpenAI, cfg.Generation.Provider)
		assert.Equal(t, "gpt-4o-mini", cfg.Generation.Model)
		assert.Equal(t, eazyhealth.SearchMock, cfg.Search.Provider)
		assert.True(t, cfg.Search.RequireTrusted)
		assert.Equal(t, []string{"nih.gov", "medlineplus.gov"}, cfg.TrustedDomains)
		assert.InDelta(t, 0.5, cfg.Duplicates.Threshold, 1e-9)
	})

	t.Run("environment overrides config file", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("LLM_PROVIDER", "gemini")
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("generation:\n  provider: openai\n"), 0o600))

		l := newLoader(t)
		l.ConfigFile = path
		cfg, err := l.Load()
		require.NoError(t, err)

		assert.Equal(t, eazyhealth.ProviderGemini, cfg.Generation.Provider)
	})

	t.Run("reads env file", func(t *testing.T) {
		clearEnv(t)
		const name = "EAZYHEALTH_FETCH_USER_AGENT"
		t.Cleanup(func() { os.Unsetenv(name) })

		envFile := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(envFile, []byte(name+"=TestAgent/1.0\n"), 0o600))

		l := newLoader(t)
		l.EnvFile = envFile
		cfg, err := l.Load()
		require.NoError(t, err)

		assert.Equal(t, "TestAgent/1.0", cfg.Fetch.UserAgent)
	})

	t.Run("returns ECONFIG for unknown provider", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("LLM_PROVIDER", "anthropic")

		_, err := newLoader(t).Load()
		require.Error(t, err)
		assert.Equal(t, eazyhealth.ECONFIG, eazyhealth.ErrorCode(err))
	})

	t.Run("returns ECONFIG for missing config file", func(t *testing.T) {
		clearEnv(t)

		l := newLoader(t)
		l.ConfigFile = filepath.Join(t.TempDir(), "missing.yaml")
		_, err := l.Load()
		require.Error(t, err)
		assert.Equal(t, eazyhealth.ECONFIG, eazyhealth.ErrorCode(err))
	})
}
