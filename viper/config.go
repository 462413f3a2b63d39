// Package viper loads eazyhealth.Config from a .env file, an optional YAML
// config file and the environment.
package viper

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/trinav-code/eazyhealth"
)

// EnvPrefix prefixes environment variables for keys without an explicit
// binding, e.g. EAZYHEALTH_SEARCH_TIMEOUT for search.timeout.
const EnvPrefix = "EAZYHEALTH"

// DefaultUserAgent identifies article fetches.
const DefaultUserAgent = "EazyHealthAI/0.1.0 (Health Information Bot)"

// envBindings maps config keys to the environment variables that set them.
var envBindings = map[string][]string{
	"database.path":             {"DATABASE_PATH"},
	"generation.provider":       {"LLM_PROVIDER"},
	"generation.model":          {"LLM_MODEL"},
	"generation.gemini_api_key": {"GEMINI_API_KEY", "GOOGLE_API_KEY"},
	"generation.openai_api_key": {"OPENAI_API_KEY"},
	"generation.max_tokens":     {"LLM_MAX_TOKENS"},
	"generation.temperature":    {"LLM_TEMPERATURE"},
	"search.provider":           {"SEARCH_PROVIDER"},
	"search.brave_api_key":      {"BRAVE_API_KEY"},
	"search.serper_api_key":     {"SERPER_API_KEY"},
	"trusted_domains":           {"TRUSTED_DOMAINS"},
	"budget.max_input_tokens":   {"MAX_INPUT_TOKENS"},
	"duplicates.lookback":       {"DUPLICATE_LOOKBACK"},
	"duplicates.threshold":      {"DUPLICATE_THRESHOLD"},
}

// Loader reads configuration. The zero value reads ".env" from the working
// directory and no config file.
type Loader struct {
	// ConfigFile is an optional YAML config file. A missing file is an error
	// only when set explicitly.
	ConfigFile string

	// EnvFile defaults to ".env". It is skipped when it does not exist.
	EnvFile string

	// HomeDir locates the default database. Defaults to os.UserHomeDir.
	HomeDir string
}

// Load returns the configuration: .env first, then the config file, then the
// environment, each overriding defaults. Returns ECONFIG when a source cannot
// be read or the result fails validation.
func Load(configFile string) (*eazyhealth.Config, error) {
	return (&Loader{ConfigFile: configFile}).Load()
}

// Load reads the configuration. See the package-level Load.
func (l *Loader) Load() (*eazyhealth.Config, error) {
	envFile := l.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if _, err := os.Stat(envFile); err == nil {
		// Existing process variables win over the file.
		if err := godotenv.Load(envFile); err != nil {
			return nil, eazyhealth.Errorf(eazyhealth.ECONFIG, "failed to load %s: %v", envFile, err)
		}
	}

	v := viper.New()
	setDefaults(v, l.homeDir())

	for key, envs := range envBindings {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return nil, eazyhealth.Errorf(eazyhealth.ECONFIG, "failed to bind %s: %v", key, err)
		}
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if l.ConfigFile != "" {
		v.SetConfigFile(l.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, eazyhealth.Errorf(eazyhealth.ECONFIG, "failed to read config file: %v", err)
		}
	} else {
		v.SetConfigName(".eazyhealth")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, eazyhealth.Errorf(eazyhealth.ECONFIG, "failed to read config file: %v", err)
			}
		}
	}

	cfg := &eazyhealth.Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, eazyhealth.Errorf(eazyhealth.ECONFIG, "failed to decode config: %v", err)
	}

	// Environment values arrive as one comma-separated string.
	cfg.TrustedDomains = eazyhealth.ParseTrustedDomains(strings.Join(cfg.TrustedDomains, ","))
	if len(cfg.TrustedDomains) == 0 {
		cfg.TrustedDomains = append([]string(nil), eazyhealth.DefaultTrustedDomains...)
	}
	cfg.Generation.Provider = strings.ToLower(strings.TrimSpace(cfg.Generation.Provider))
	cfg.Search.Provider = strings.ToLower(strings.TrimSpace(cfg.Search.Provider))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (l *Loader) homeDir() string {
	if l.HomeDir != "" {
		return l.HomeDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

func setDefaults(v *viper.Viper, home string) {
	v.SetDefault("database.path", filepath.Join(home, ".eazyhealth", "eazyhealth.db"))

	v.SetDefault("generation.provider", eazyhealth.ProviderGemini)
	v.SetDefault("generation.model", "")
	v.SetDefault("generation.gemini_api_key", "")
	v.SetDefault("generation.openai_api_key", "")
	v.SetDefault("generation.max_tokens", 4096)
	v.SetDefault("generation.temperature", 0.7)

	v.SetDefault("search.provider", eazyhealth.SearchBrave)
	v.SetDefault("search.brave_api_key", "")
	v.SetDefault("search.serper_api_key", "")
	v.SetDefault("search.timeout", 10*time.Second)
	v.SetDefault("search.rate_limit", 1.0)
	v.SetDefault("search.max_results", 3)
	v.SetDefault("search.require_trusted", false)

	v.SetDefault("trusted_domains", strings.Join(eazyhealth.DefaultTrustedDomains, ","))

	v.SetDefault("fetch.timeout", 10*time.Second)
	v.SetDefault("fetch.user_agent", DefaultUserAgent)

	v.SetDefault("extract.structured", eazyhealth.ExtractorTrafilatura)
	v.SetDefault("extract.markdown", false)

	v.SetDefault("budget.max_input_tokens", 4000)
	v.SetDefault("budget.encoding", "cl100k_base")
	v.SetDefault("budget.base_prompt_tokens", 500)

	v.SetDefault("duplicates.lookback", 720*time.Hour)
	v.SetDefault("duplicates.threshold", 0.6)
	v.SetDefault("duplicates.tag_weight", 0.7)
	v.SetDefault("duplicates.title_weight", 0.3)
}
