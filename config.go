package eazyhealth

import "time"

// Generation provider names.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Search provider names.
const (
	SearchBrave  = "brave"
	SearchSerper = "serper"
	SearchMock   = "mock"
)

// Structured extractor names.
const (
	ExtractorTrafilatura = "trafilatura"
	ExtractorReadability = "readability"
)

// Config is the process-wide configuration, read once at startup.
type Config struct {
	Database       DatabaseConfig   `mapstructure:"database"`
	Generation     GenerationConfig `mapstructure:"generation"`
	Search         SearchConfig     `mapstructure:"search"`
	TrustedDomains []string         `mapstructure:"trusted_domains"`
	Fetch          FetchConfig      `mapstructure:"fetch"`
	Extract        ExtractConfig    `mapstructure:"extract"`
	Budget         BudgetConfig     `mapstructure:"budget"`
	Duplicates     DuplicateConfig  `mapstructure:"duplicates"`
}

// DatabaseConfig locates the SQLite database.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// GenerationConfig selects and tunes the generation backend.
type GenerationConfig struct {
	Provider     string  `mapstructure:"provider"`
	Model        string  `mapstructure:"model"`
	GeminiAPIKey string  `mapstructure:"gemini_api_key"`
	OpenAIAPIKey string  `mapstructure:"openai_api_key"`
	MaxTokens    int     `mapstructure:"max_tokens"`
	Temperature  float32 `mapstructure:"temperature"`
}

// SearchConfig selects the search backend.
type SearchConfig struct {
	Provider       string        `mapstructure:"provider"`
	BraveAPIKey    string        `mapstructure:"brave_api_key"`
	SerperAPIKey   string        `mapstructure:"serper_api_key"`
	Timeout        time.Duration `mapstructure:"timeout"`
	RateLimit      float64       `mapstructure:"rate_limit"`
	MaxResults     int           `mapstructure:"max_results"`
	RequireTrusted bool          `mapstructure:"require_trusted"`
}

// FetchConfig tunes article fetching.
type FetchConfig struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// ExtractConfig selects the structured extraction strategy.
type ExtractConfig struct {
	Structured string `mapstructure:"structured"`
	Markdown   bool   `mapstructure:"markdown"`
}

// BudgetConfig bounds generation input.
type BudgetConfig struct {
	MaxInputTokens   int    `mapstructure:"max_input_tokens"`
	Encoding         string `mapstructure:"encoding"`
	BasePromptTokens int    `mapstructure:"base_prompt_tokens"`
}

// DuplicateConfig tunes briefing duplicate detection.
type DuplicateConfig struct {
	Lookback    time.Duration `mapstructure:"lookback"`
	Threshold   float64       `mapstructure:"threshold"`
	TagWeight   float64       `mapstructure:"tag_weight"`
	TitleWeight float64       `mapstructure:"title_weight"`
}

// Validate returns ECONFIG for unknown provider names or out-of-range values.
// Missing credentials are checked when the backend is constructed.
func (c *Config) Validate() error {
	switch c.Generation.Provider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return Errorf(ECONFIG, "unsupported generation provider %q", c.Generation.Provider)
	}
	switch c.Search.Provider {
	case SearchBrave, SearchSerper, SearchMock:
	default:
		return Errorf(ECONFIG, "unsupported search provider %q", c.Search.Provider)
	}
	switch c.Extract.Structured {
	case ExtractorTrafilatura, ExtractorReadability:
	default:
		return Errorf(ECONFIG, "unsupported structured extractor %q", c.Extract.Structured)
	}
	if c.Budget.MaxInputTokens <= 0 {
		return Errorf(ECONFIG, "budget max input tokens must be positive")
	}
	if c.Budget.BasePromptTokens < 0 || c.Budget.BasePromptTokens >= c.Budget.MaxInputTokens {
		return Errorf(ECONFIG, "budget base prompt tokens must be within [0, %d)", c.Budget.MaxInputTokens)
	}
	if c.Duplicates.Threshold <= 0 || c.Duplicates.Threshold > 1 {
		return Errorf(ECONFIG, "duplicate threshold must be within (0, 1]")
	}
	if c.Duplicates.TagWeight < 0 || c.Duplicates.TitleWeight < 0 {
		return Errorf(ECONFIG, "duplicate weights must not be negative")
	}
	if c.Duplicates.TagWeight+c.Duplicates.TitleWeight == 0 {
		return Errorf(ECONFIG, "duplicate weights must not both be zero")
	}
	return nil
}
