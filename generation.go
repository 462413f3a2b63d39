package eazyhealth

import "context"

// DefaultDisclaimer is attached to every generated result that lacks one.
const DefaultDisclaimer = "This information is for general educational purposes only and is not medical advice. Please consult a healthcare professional for personalized medical guidance."

// Section is one headed block of an explainer.
type Section struct {
	Heading string `json:"heading"`
	Content string `json:"content"`
}

// GenerationResult is the normalized output of one generation task.
// Explainers populate Sections; briefings populate Summary and BodyMarkdown.
type GenerationResult struct {
	Title        string    `json:"title"`
	Summary      string    `json:"summary,omitempty"`
	BodyMarkdown string    `json:"body_markdown,omitempty"`
	Sections     []Section `json:"sections,omitempty"`
	Tags         []string  `json:"tags"`
	Disclaimer   string    `json:"disclaimer"`

	// Degraded is set when the provider output could not be parsed and the
	// result was synthesized from the raw text.
	Degraded bool `json:"degraded,omitempty"`
}

// ExplainerInput is the payload for an explainer generation task.
type ExplainerInput struct {
	Text         string
	TopicHint    string
	ReadingLevel ReadingLevel
}

// BriefingSource is one article handed to an article_summary briefing.
type BriefingSource struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// BriefingInput is the payload for a briefing generation task.
// Stats is used for data_analysis; Topic and Articles for article_summary.
type BriefingInput struct {
	SourceType   SourceType
	Stats        map[string]any
	Topic        string
	Articles     []*BriefingSource
	ReadingLevel ReadingLevel
}

// Generator produces structured results from a generative text backend.
type Generator interface {
	// GenerateExplainer rewrites input text as a sectioned explainer.
	GenerateExplainer(ctx context.Context, in ExplainerInput) (*GenerationResult, error)

	// GenerateBriefing writes a briefing from stats or articles.
	// Returns EINVALID for an unknown source type.
	GenerateBriefing(ctx context.Context, in BriefingInput) (*GenerationResult, error)
}

// Completer is the generation backend capability: one non-streaming call
// returning the raw model text.
type Completer interface {
	Complete(ctx context.Context, userPrompt, systemPrompt string) (string, error)
}
