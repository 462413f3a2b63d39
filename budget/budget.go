// Package budget selects which extracted articles fit the generation input
// budget.
//
// Selection is greedy first-fit-skip: articles are visited in input order
// and each one is accepted when it still fits, otherwise skipped, and the
// scan continues. A later short article can therefore be chosen after an
// earlier long one was skipped.
package budget

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/trinav-code/eazyhealth"
)

const (
	// MaxInputTokens is the ceiling on prompt input, leaving headroom for
	// the generated response.
	MaxInputTokens = 4000

	// DefaultBasePromptTokens is reserved for the fixed prompt text.
	DefaultBasePromptTokens = 500

	// CharsPerToken approximates characters per token where no tokenizer
	// count is available.
	CharsPerToken = 4
)

// BudgetedArticle is an article annotated with its token cost.
type BudgetedArticle struct {
	eazyhealth.Article
	TokenCount int
}

// Budgeter measures articles with Counter and selects them against
// MaxInputTokens.
type Budgeter struct {
	Counter eazyhealth.TokenCounter

	// MaxInputTokens defaults to the package constant when zero.
	MaxInputTokens int

	Logger *slog.Logger

	// estimating is set after the first counter failure.
	estimating atomic.Bool
}

// Limit returns the effective input ceiling.
func (b *Budgeter) Limit() int {
	if b.MaxInputTokens > 0 {
		return b.MaxInputTokens
	}
	return MaxInputTokens
}

// CountTokens counts text with Counter. When the counter is unset, or once
// it has failed, every count for the lifetime of the Budgeter uses
// EstimateTokens so counts are never mixed.
func (b *Budgeter) CountTokens(ctx context.Context, text string) int {
	if b.Counter == nil || b.estimating.Load() {
		return EstimateTokens(text)
	}
	n, err := b.Counter.CountTokens(ctx, text)
	if err != nil {
		if !b.estimating.Swap(true) {
			b.logger().Warn("token count failed, estimating from now on", "error", err)
		}
		return EstimateTokens(text)
	}
	return n
}

// Measure returns a budgeted copy of every article. Inputs are not modified.
func (b *Budgeter) Measure(ctx context.Context, articles []*eazyhealth.Article) []BudgetedArticle {
	out := make([]BudgetedArticle, 0, len(articles))
	for _, a := range articles {
		if a == nil {
			continue
		}
		out = append(out, BudgetedArticle{
			Article:    *a,
			TokenCount: b.CountTokens(ctx, a.Text),
		})
	}
	return out
}

// Select measures articles and returns those that fit alongside
// basePromptTokens, in input order. When nothing fits, the shortest article
// is truncated to the remaining budget and returned alone. The result is
// empty only when articles is.
func (b *Budgeter) Select(ctx context.Context, articles []*eazyhealth.Article, basePromptTokens int) []BudgetedArticle {
	measured := b.Measure(ctx, articles)
	selected := SelectWithinBudget(measured, basePromptTokens, b.Limit())

	b.logger().Info("budget selection",
		"candidates", len(measured),
		"selected", len(selected),
		"base_tokens", basePromptTokens,
		"limit", b.Limit())

	if len(selected) == 0 && len(measured) > 0 {
		fit, _ := FitShortest(measured, basePromptTokens, b.Limit())
		b.logger().Info("no article fits, truncating shortest",
			"url", fit.URL,
			"tokens", fit.TokenCount)
		return []BudgetedArticle{fit}
	}
	return selected
}

// SelectWithinBudget returns the articles, in input order, accepted by a
// single first-fit-skip pass starting from basePromptTokens. The sum of
// basePromptTokens and the accepted token counts never exceeds
// maxInputTokens.
func SelectWithinBudget(articles []BudgetedArticle, basePromptTokens, maxInputTokens int) []BudgetedArticle {
	selected := make([]BudgetedArticle, 0, len(articles))
	running := basePromptTokens
	for _, a := range articles {
		if running+a.TokenCount > maxInputTokens {
			continue
		}
		running += a.TokenCount
		selected = append(selected, a)
	}
	return selected
}

// FitShortest returns the article with the lowest token count (first one
// on ties) with its text cut to (maxInputTokens - basePromptTokens) *
// CharsPerToken characters. The returned copy's TokenCount is capped at the
// remaining budget when truncation happened. ok is false when articles is
// empty.
func FitShortest(articles []BudgetedArticle, basePromptTokens, maxInputTokens int) (fit BudgetedArticle, ok bool) {
	if len(articles) == 0 {
		return BudgetedArticle{}, false
	}

	shortest := articles[0]
	for _, a := range articles[1:] {
		if a.TokenCount < shortest.TokenCount {
			shortest = a
		}
	}

	remaining := max(maxInputTokens-basePromptTokens, 0)
	maxChars := remaining * CharsPerToken

	runes := []rune(shortest.Text)
	if len(runes) <= maxChars && shortest.TokenCount <= remaining {
		return shortest, true
	}
	if len(runes) > maxChars {
		runes = runes[:maxChars]
	}

	fit = BudgetedArticle{
		Article:    *shortest.Article.WithText(string(runes)),
		TokenCount: min(shortest.TokenCount, remaining),
	}
	return fit, true
}

// EstimateTokens approximates the token count of text from its length.
func EstimateTokens(text string) int {
	n := len([]rune(text))
	return (n + CharsPerToken - 1) / CharsPerToken
}

func (b *Budgeter) logger() *slog.Logger {
	if b.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return b.Logger
}
