// Package llm turns generation tasks into prompts for an
// eazyhealth.Completer and normalizes the replies into structured results.
package llm

import (
	"context"

	"github.com/trinav-code/eazyhealth"
)

// Ensure Generator implements eazyhealth.Generator at compile time.
var _ eazyhealth.Generator = (*Generator)(nil)

// Generator issues exactly one completion per task. Completion failures are
// returned unchanged; unparseable replies produce degraded results.
type Generator struct {
	completer eazyhealth.Completer
}

// NewGenerator creates a Generator over completer.
func NewGenerator(completer eazyhealth.Completer) *Generator {
	return &Generator{completer: completer}
}

// GenerateExplainer rewrites in.Text as a sectioned explainer.
func (g *Generator) GenerateExplainer(ctx context.Context, in eazyhealth.ExplainerInput) (*eazyhealth.GenerationResult, error) {
	raw, err := g.completer.Complete(ctx, BuildExplainerPrompt(in), ExplainerSystemPrompt)
	if err != nil {
		return nil, err
	}
	return ParseExplainer(raw, in.TopicHint), nil
}

// GenerateBriefing writes a briefing from in.Stats (data_analysis) or
// in.Articles (article_summary).
func (g *Generator) GenerateBriefing(ctx context.Context, in eazyhealth.BriefingInput) (*eazyhealth.GenerationResult, error) {
	var prompt, system string
	switch in.SourceType {
	case eazyhealth.DataAnalysis:
		p, err := BuildDataAnalysisPrompt(in.Stats, in.ReadingLevel)
		if err != nil {
			return nil, err
		}
		prompt, system = p, DataAnalysisSystemPrompt
	case eazyhealth.ArticleSummary:
		prompt, system = BuildArticleSummaryPrompt(in.Articles, in.ReadingLevel), ArticleSummarySystemPrompt
	default:
		return nil, eazyhealth.Errorf(eazyhealth.EINVALID, "unknown source type %q", in.SourceType)
	}

	raw, err := g.completer.Complete(ctx, prompt, system)
	if err != nil {
		return nil, err
	}
	return ParseBriefing(raw, in.SourceType), nil
}
