package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/trinav-code/eazyhealth"
)

var (
	_ eazyhealth.Generator = (*LoggingGenerator)(nil)
	_ eazyhealth.Completer = (*LoggingCompleter)(nil)
)

// LoggingGenerator wraps a Generator with logging.
type LoggingGenerator struct {
	next   eazyhealth.Generator
	logger *slog.Logger
}

// NewLoggingGenerator creates a new LoggingGenerator.
func NewLoggingGenerator(next eazyhealth.Generator, logger *slog.Logger) *LoggingGenerator {
	return &LoggingGenerator{next: next, logger: logger}
}

// GenerateExplainer delegates to the wrapped generator and logs the operation.
func (g *LoggingGenerator) GenerateExplainer(ctx context.Context, in eazyhealth.ExplainerInput) (res *eazyhealth.GenerationResult, err error) {
	defer func(begin time.Time) {
		g.logger.Info("explainer generation",
			"level", in.ReadingLevel,
			"input_chars", len(in.Text),
			"degraded", res != nil && res.Degraded,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return g.next.GenerateExplainer(ctx, in)
}

// GenerateBriefing delegates to the wrapped generator and logs the operation.
func (g *LoggingGenerator) GenerateBriefing(ctx context.Context, in eazyhealth.BriefingInput) (res *eazyhealth.GenerationResult, err error) {
	defer func(begin time.Time) {
		g.logger.Info("briefing generation",
			"source_type", in.SourceType,
			"level", in.ReadingLevel,
			"articles", len(in.Articles),
			"degraded", res != nil && res.Degraded,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return g.next.GenerateBriefing(ctx, in)
}

// LoggingCompleter wraps a Completer with debug logging.
type LoggingCompleter struct {
	next   eazyhealth.Completer
	logger *slog.Logger
}

// NewLoggingCompleter creates a new LoggingCompleter.
func NewLoggingCompleter(next eazyhealth.Completer, logger *slog.Logger) *LoggingCompleter {
	return &LoggingCompleter{next: next, logger: logger}
}

// Complete delegates to the wrapped completer and logs prompt and response sizes.
func (c *LoggingCompleter) Complete(ctx context.Context, userPrompt, systemPrompt string) (text string, err error) {
	defer func(begin time.Time) {
		c.logger.Debug("completion",
			"prompt_chars", len(userPrompt),
			"system_chars", len(systemPrompt),
			"response_chars", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Complete(ctx, userPrompt, systemPrompt)
}
