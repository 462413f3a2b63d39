// Package openai implements eazyhealth.Completer on the OpenAI chat
// completions API.
package openai

import (
	"context"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/trinav-code/eazyhealth"
)

// DefaultModel is used when no model is configured.
const DefaultModel = openai.GPT4oMini

// Ensure Completer implements eazyhealth.Completer at compile time.
var _ eazyhealth.Completer = (*Completer)(nil)

// Completer sends one system and one user message per call.
type Completer struct {
	client      *openai.Client
	model       string
	maxTokens   int
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
		c.maxTokens = n
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float32) Option {
	return func(c *Completer) {
		c.temperature = t
	}
}

// NewCompleter creates a Completer for apiKey. baseURL overrides the API
// endpoint when non-empty. A missing key returns ECONFIG.
func NewCompleter(apiKey, baseURL string, opts ...Option) (*Completer, error) {
	if apiKey == "" {
		return nil, eazyhealth.Errorf(eazyhealth.ECONFIG, "openai api key required")
	}

	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}

	c := &Completer{
		client:      openai.NewClientWithConfig(config),
		model:       DefaultModel,
		maxTokens:   4096,
		temperature: 0.7,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Model returns the configured model name.
func (c *Completer) Model() string { return c.model }

// Complete issues one chat completion and returns the first choice's text.
// API failures and empty responses return EUPSTREAM.
func (c *Completer) Complete(ctx context.Context, userPrompt, systemPrompt string) (string, error) {
	var messages []openai.ChatCompletionMessage
	if systemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemPrompt,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: userPrompt,
	})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	})
	if err != nil {
		return "", eazyhealth.Errorf(eazyhealth.EUPSTREAM, "openai: %v", err)
	}
	if len(resp.Choices) == 0 {
		return "", eazyhealth.Errorf(eazyhealth.EUPSTREAM, "openai returned no choices")
	}

	text := resp.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return "", eazyhealth.Errorf(eazyhealth.EUPSTREAM, "openai returned empty response")
	}
	return text, nil
}
