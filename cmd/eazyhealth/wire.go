package main

import (
	"context"
	"log/slog"

	"github.com/trinav-code/eazyhealth"
	"github.com/trinav-code/eazyhealth/article"
	"github.com/trinav-code/eazyhealth/brave"
	"github.com/trinav-code/eazyhealth/budget"
	"github.com/trinav-code/eazyhealth/dedup"
	"github.com/trinav-code/eazyhealth/discovery"
	"github.com/trinav-code/eazyhealth/gemini"
	"github.com/trinav-code/eazyhealth/goquery"
	"github.com/trinav-code/eazyhealth/htmltomarkdown"
	ehttp "github.com/trinav-code/eazyhealth/http"
	"github.com/trinav-code/eazyhealth/llm"
	"github.com/trinav-code/eazyhealth/offline"
	"github.com/trinav-code/eazyhealth/openai"
	"github.com/trinav-code/eazyhealth/readability"
	"github.com/trinav-code/eazyhealth/serper"
	ehslog "github.com/trinav-code/eazyhealth/slog"
	"github.com/trinav-code/eazyhealth/tiktoken"
	"github.com/trinav-code/eazyhealth/trafilatura"
	"google.golang.org/genai"
)

// GeminiEncoding selects the Gemini tokenizer for budget.encoding instead
// of a tiktoken encoding.
const GeminiEncoding = "gemini"

// NewCompleter returns the generation backend selected by cfg.Provider.
// Returns ECONFIG for an unknown provider or a missing API key.
func NewCompleter(ctx context.Context, cfg eazyhealth.GenerationConfig) (eazyhealth.Completer, error) {
	switch cfg.Provider {
	case eazyhealth.ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, eazyhealth.Errorf(eazyhealth.ECONFIG, "GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, eazyhealth.Errorf(eazyhealth.ECONFIG, "failed to create Gemini client: %v", err)
		}
		return gemini.NewCompleter(client,
			gemini.WithModel(cfg.Model),
			gemini.WithMaxTokens(cfg.MaxTokens),
			gemini.WithTemperature(cfg.Temperature),
		), nil
	case eazyhealth.ProviderOpenAI:
		c, err := openai.NewCompleter(cfg.OpenAIAPIKey, "",
			openai.WithModel(cfg.Model),
			openai.WithMaxTokens(cfg.MaxTokens),
			openai.WithTemperature(cfg.Temperature),
		)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, eazyhealth.Errorf(eazyhealth.ECONFIG, "unsupported generation provider %q", cfg.Provider)
	}
}

// NewSearcher returns source discovery over the configured search backend
// with the offline table as fallback. A backend without an API key is
// skipped in favor of the fallback.
func NewSearcher(cfg *eazyhealth.Config, trust *eazyhealth.TrustFilter, logger *slog.Logger) eazyhealth.Searcher {
	var primary eazyhealth.Searcher
	switch cfg.Search.Provider {
	case eazyhealth.SearchBrave:
		if cfg.Search.BraveAPIKey != "" {
			primary = brave.NewSearcher(cfg.Search.BraveAPIKey, trust,
				brave.WithTimeout(cfg.Search.Timeout),
				brave.WithRateLimit(cfg.Search.RateLimit),
			)
		}
	case eazyhealth.SearchSerper:
		if cfg.Search.SerperAPIKey != "" {
			primary = serper.NewSearcher(cfg.Search.SerperAPIKey, trust,
				serper.WithTimeout(cfg.Search.Timeout),
				serper.WithRateLimit(cfg.Search.RateLimit),
			)
		}
	}
	if primary == nil && cfg.Search.Provider != eazyhealth.SearchMock {
		logger.Warn("search API key not set, using offline sources", "provider", cfg.Search.Provider)
	}

	return ehslog.NewLoggingSearcher(&discovery.Service{
		Primary:        primary,
		Fallback:       offline.NewSearcher(),
		Trust:          trust,
		RequireTrusted: cfg.Search.RequireTrusted,
		Logger:         logger,
	}, logger)
}

// NewArticleExtractor returns the fetch-and-extract chain: the configured
// structured extractor first, then the goquery heuristic.
func NewArticleExtractor(cfg *eazyhealth.Config, logger *slog.Logger) eazyhealth.ArticleExtractor {
	fetcher := ehttp.NewFetcher(
		ehttp.WithTimeout(cfg.Fetch.Timeout),
		ehttp.WithUserAgent(cfg.Fetch.UserAgent),
	)

	var structured eazyhealth.Extractor = trafilatura.NewExtractor()
	if cfg.Extract.Structured == eazyhealth.ExtractorReadability {
		structured = readability.NewExtractor()
	}

	var converter eazyhealth.Converter
	if cfg.Extract.Markdown {
		converter = htmltomarkdown.NewConverter()
	}

	return ehslog.NewLoggingArticleExtractor(&article.Extractor{
		Fetcher:    ehslog.NewLoggingFetcher(fetcher, logger),
		Structured: structured,
		Fallback:   goquery.NewExtractor(),
		Converter:  converter,
		Logger:     logger,
	}, logger)
}

// NewTokenCounter returns the tokenizer named by cfg.Budget.Encoding. When
// it cannot be loaded the budgeter falls back to a character estimate.
func NewTokenCounter(cfg *eazyhealth.Config, logger *slog.Logger) eazyhealth.TokenCounter {
	if cfg.Budget.Encoding == GeminiEncoding {
		tc, err := gemini.NewTokenCounter(cfg.Generation.Model)
		if err != nil {
			logger.Warn("gemini tokenizer unavailable, estimating tokens", "error", err)
			return nil
		}
		return tc
	}
	tc, err := tiktoken.NewTokenCounter(cfg.Budget.Encoding)
	if err != nil {
		logger.Warn("tokenizer unavailable, estimating tokens", "encoding", cfg.Budget.Encoding, "error", err)
		return nil
	}
	return tc
}

// NewDetector returns the duplicate detector tuned by cfg.Duplicates.
func NewDetector(cfg *eazyhealth.Config) *dedup.Detector {
	return &dedup.Detector{
		Threshold:   cfg.Duplicates.Threshold,
		TagWeight:   cfg.Duplicates.TagWeight,
		TitleWeight: cfg.Duplicates.TitleWeight,
	}
}

// NewBudgeter returns the token budgeter for cfg.
func NewBudgeter(cfg *eazyhealth.Config, logger *slog.Logger) *budget.Budgeter {
	return &budget.Budgeter{
		Counter:        NewTokenCounter(cfg, logger),
		MaxInputTokens: cfg.Budget.MaxInputTokens,
		Logger:         logger,
	}
}

// NewGenerator wraps the configured completer with prompt building and
// response parsing.
func NewGenerator(ctx context.Context, cfg *eazyhealth.Config, logger *slog.Logger) (eazyhealth.Generator, error) {
	completer, err := NewCompleter(ctx, cfg.Generation)
	if err != nil {
		return nil, err
	}
	return ehslog.NewLoggingGenerator(
		llm.NewGenerator(ehslog.NewLoggingCompleter(completer, logger)),
		logger,
	), nil
}
