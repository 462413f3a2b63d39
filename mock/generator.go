package mock

import (
	"context"

	"github.com/trinav-code/eazyhealth"
)

var (
	_ eazyhealth.Generator = (*Generator)(nil)
	_ eazyhealth.Completer = (*Completer)(nil)
)

// Generator is a mock implementation of eazyhealth.Generator.
type Generator struct {
	GenerateExplainerFn func(ctx context.Context, in eazyhealth.ExplainerInput) (*eazyhealth.GenerationResult, error)
	GenerateBriefingFn  func(ctx context.Context, in eazyhealth.BriefingInput) (*eazyhealth.GenerationResult, error)
}

func (g *Generator) GenerateExplainer(ctx context.Context, in eazyhealth.ExplainerInput) (*eazyhealth.GenerationResult, error) {
	return g.GenerateExplainerFn(ctx, in)
}

func (g *Generator) GenerateBriefing(ctx context.Context, in eazyhealth.BriefingInput) (*eazyhealth.GenerationResult, error) {
	return g.GenerateBriefingFn(ctx, in)
}

// Completer is a mock implementation of eazyhealth.Completer.
type Completer struct {
	CompleteFn func(ctx context.Context, userPrompt, systemPrompt string) (string, error)
}

func (c *Completer) Complete(ctx context.Context, userPrompt, systemPrompt string) (string, error) {
	return c.CompleteFn(ctx, userPrompt, systemPrompt)
}
