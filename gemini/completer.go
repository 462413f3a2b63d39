// Package gemini implements generation and token counting on Google Gemini.
package gemini

import (
	"context"
	"strings"

	"github.com/trinav-code/eazyhealth"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Completer implements eazyhealth.Completer at compile time.
var _ eazyhealth.Completer = (*Completer)(nil)

// Completer implements eazyhealth.Completer using Google Gemini.
type Completer struct {
	client      *genai.Client
	model       string
	maxTokens   int32
	temperature float32
}

// Option configures a Completer.
type Option func(*Completer)

// WithModel sets the model name. Empty names are ignored.
func WithModel(model string) Option {
	return func(c *Completer) {
		if model != "" {
			c.model = model
		}
	}
}

// WithMaxTokens caps the output length.
func WithMaxTokens(n int) Option {
	return func(c *Completer) {
		c.maxTokens = int32(n)
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float32) Option {
	return func(c *Completer) {
		c.temperature = t
	}
}

// NewCompleter creates a new Completer.
func NewCompleter(client *genai.Client, opts ...Option) *Completer {
	c := &Completer{
		client:      client,
		model:       DefaultModel,
		maxTokens:   4096,
		temperature: 0.7,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Model returns the configured model name.
func (c *Completer) Model() string { return c.model }

// Complete issues one non-streaming generation call and returns the text.
// API failures and empty responses return EUPSTREAM.
func (c *Completer) Complete(ctx context.Context, userPrompt, systemPrompt string) (string, error) {
	if c.client == nil {
		return "", eazyhealth.Errorf(eazyhealth.ECONFIG, "gemini client not configured")
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{{
			Role:  "user",
			Parts: []*genai.Part{{Text: userPrompt}},
		}},
		BuildConfig(systemPrompt, c.maxTokens, c.temperature),
	)
	if err != nil {
		return "", eazyhealth.Errorf(eazyhealth.EUPSTREAM, "gemini: %v", err)
	}
	if result == nil {
		return "", eazyhealth.Errorf(eazyhealth.EUPSTREAM, "gemini returned nil result")
	}

	text := result.Text()
	if strings.TrimSpace(text) == "" {
		return "", eazyhealth.Errorf(eazyhealth.EUPSTREAM, "gemini returned empty response")
	}
	return text, nil
}

// BuildConfig returns the GenerateContentConfig for a single call.
func BuildConfig(systemPrompt string, maxTokens int32, temperature float32) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: maxTokens,
	}
	if systemPrompt != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		}
	}
	return config
}
