package llm

import (
	"encoding/json"
	"strings"

	"github.com/trinav-code/eazyhealth"
)

const fence = "```"

// Degraded titles and summaries.
const (
	DefaultExplainerTitle         = "Health Information"
	DegradedSectionHeading        = "Content"
	DegradedDataAnalysisTitle     = "Weekly Health Briefing"
	DegradedDataAnalysisSummary   = "Analysis of current health trends."
	DegradedArticleSummaryTitle   = "Health News Summary"
	DegradedArticleSummarySummary = "Recent developments in health research."
)

// ExtractJSON returns the JSON candidate inside raw. A json-tagged fence
// wins over a generic one; the content runs to the next fence or the end of
// the text and is trimmed. Without any fence raw is returned unchanged.
func ExtractJSON(raw string) string {
	if _, after, ok := strings.Cut(raw, fence+"json"); ok {
		body, _, _ := strings.Cut(after, fence)
		return strings.TrimSpace(body)
	}
	if _, after, ok := strings.Cut(raw, fence); ok {
		body, _, _ := strings.Cut(after, fence)
		return strings.TrimSpace(body)
	}
	return raw
}

// ParseExplainer normalizes raw model output for an explainer. Output that
// is not a JSON object yields a degraded result with one "Content" section
// holding raw verbatim, titled with topicHint.
func ParseExplainer(raw, topicHint string) *eazyhealth.GenerationResult {
	fallbackTitle := topicHint
	if fallbackTitle == "" {
		fallbackTitle = DefaultExplainerTitle
	}

	obj, ok := decodeObject(ExtractJSON(raw))
	if !ok {
		return &eazyhealth.GenerationResult{
			Title:      fallbackTitle,
			Sections:   []eazyhealth.Section{{Heading: DegradedSectionHeading, Content: raw}},
			Tags:       []string{},
			Disclaimer: eazyhealth.DefaultDisclaimer,
			Degraded:   true,
		}
	}

	result := &eazyhealth.GenerationResult{
		Title:      stringField(obj, "title"),
		Sections:   sectionsField(obj),
		Tags:       tagsField(obj),
		Disclaimer: stringField(obj, "disclaimer"),
	}
	if result.Title == "" {
		result.Title = fallbackTitle
	}
	if result.Disclaimer == "" {
		result.Disclaimer = eazyhealth.DefaultDisclaimer
	}
	return result
}

// ParseBriefing normalizes raw model output for a briefing. Output that is
// not a JSON object yields a degraded result whose body is raw verbatim,
// with no tags. Title and summary are left empty when the model omits them.
func ParseBriefing(raw string, sourceType eazyhealth.SourceType) *eazyhealth.GenerationResult {
	obj, ok := decodeObject(ExtractJSON(raw))
	if !ok {
		title, summary := DegradedDataAnalysisTitle, DegradedDataAnalysisSummary
		if sourceType == eazyhealth.ArticleSummary {
			title, summary = DegradedArticleSummaryTitle, DegradedArticleSummarySummary
		}
		return &eazyhealth.GenerationResult{
			Title:        title,
			Summary:      summary,
			BodyMarkdown: raw,
			Tags:         []string{},
			Disclaimer:   eazyhealth.DefaultDisclaimer,
			Degraded:     true,
		}
	}

	result := &eazyhealth.GenerationResult{
		Title:        stringField(obj, "title"),
		Summary:      stringField(obj, "summary"),
		BodyMarkdown: stringField(obj, "body_markdown"),
		Sections:     sectionsField(obj),
		Tags:         tagsField(obj),
		Disclaimer:   stringField(obj, "disclaimer"),
	}
	if result.Disclaimer == "" {
		result.Disclaimer = eazyhealth.DefaultDisclaimer
	}
	return result
}

func decodeObject(s string) (map[string]json.RawMessage, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(s), &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}

// stringField returns obj[key] when it is a JSON string, else "".
func stringField(obj map[string]json.RawMessage, key string) string {
	var s string
	if raw, ok := obj[key]; ok {
		_ = json.Unmarshal(raw, &s)
	}
	return s
}

// tagsField returns the string entries of obj["tags"]. Non-string entries
// are dropped. The result is never nil.
func tagsField(obj map[string]json.RawMessage) []string {
	tags := []string{}
	var items []json.RawMessage
	if err := json.Unmarshal(obj["tags"], &items); err != nil {
		return tags
	}
	for _, item := range items {
		var s string
		if json.Unmarshal(item, &s) == nil {
			tags = append(tags, s)
		}
	}
	return tags
}

// sectionsField decodes obj["sections"]. Content that is an array of
// strings is joined with a blank line; other non-string content is kept as
// its JSON text.
func sectionsField(obj map[string]json.RawMessage) []eazyhealth.Section {
	var items []struct {
		Heading string          `json:"heading"`
		Content json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(obj["sections"], &items); err != nil {
		return nil
	}

	sections := make([]eazyhealth.Section, 0, len(items))
	for _, item := range items {
		sections = append(sections, eazyhealth.Section{
			Heading: item.Heading,
			Content: sectionContent(item.Content),
		})
	}
	return sections
}

func sectionContent(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var parts []string
	if json.Unmarshal(raw, &parts) == nil {
		return strings.Join(parts, "\n\n")
	}
	return string(raw)
}
