package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/trinav-code/eazyhealth"
)

// Explainer prompts.
const (
	ExplainerSystemPrompt = `You are a medical writing assistant specializing in health education.
Your job is to take complex health information and make it accessible to general audiences.
You NEVER provide personalized medical advice or diagnosis.
You always include appropriate disclaimers.`

	explainerTemplate = `Task: Rewrite the following health information for a general audience.

Reading Level: %s

Topic Hint: %s

Structure your response as a JSON object with this exact format:
{
  "title": "Clear, engaging title for this topic",
  "sections": [
    {"heading": "Overview", "content": "Brief overview paragraph"},
    {"heading": "Key Points", "content": "Bullet points or short paragraphs with main takeaways"},
    {"heading": "Symptoms & Warning Signs", "content": "If applicable, describe symptoms"},
    {"heading": "What Patients Can Do", "content": "General guidance, NOT personalized advice"},
    {"heading": "When to Seek Medical Care", "content": "If applicable, when to contact a doctor"}
  ],
  "disclaimer": "%s"
}

Important rules:
- Do NOT hallucinate information not present in the source
- Do NOT provide personalized medical advice
- Use hedging language ("may", "can", "generally", etc.)
- Always include the disclaimer
- Omit sections if not applicable (e.g., no symptoms for a general wellness topic)

Here is the input text to rewrite:

%s

Return ONLY the JSON object, no other text.`
)

// Data analysis briefing prompts.
const (
	DataAnalysisSystemPrompt = `You are a public health communicator writing weekly summaries for the general public.
You analyze disease surveillance data and explain trends in accessible language.
You avoid alarmism and always provide context.`

	dataAnalysisTemplate = `Task: Write a weekly health briefing based on disease surveillance data.

Reading Level: %s

Data Summary:
%s

Structure your response as a JSON object:
{
  "title": "Engaging title for this week's briefing",
  "summary": "1-2 sentence snapshot for preview",
  "body_markdown": "Full briefing in markdown format with sections:\n\n## Snapshot\n...\n\n## What's Trending\n...\n\n## Context & Factors\n...\n\n## How to Stay Informed\n...",
  "tags": ["covid", "flu", "respiratory"],
  "disclaimer": "This information is for general educational purposes only and is not medical advice. Data may change as more information becomes available."
}

Important:
- Use cautious language ("data suggests", "appears to show", etc.)
- Provide context (seasonal patterns, data limitations)
- Do NOT provide personalized medical advice
- Do NOT cause unnecessary alarm
- Focus on trends, not individual risk

Return ONLY the JSON object.`
)

// Article summary briefing prompts.
const (
	ArticleSummarySystemPrompt = `You are a health news summarizer for general audiences.
You take recent health research or news articles and create accessible summaries.
You cite sources and distinguish between preliminary research and established facts.`

	articleSummaryTemplate = `Task: Write a briefing summarizing recent health news articles.

Reading Level: %s

Articles:
%s

Structure your response as a JSON object:
{
  "title": "Engaging title summarizing the news",
  "summary": "1-2 sentence overview",
  "body_markdown": "Full summary in markdown with sections:\n\n## Overview\n...\n\n## Key Findings\n...\n\n## What This Means\n...\n\n## Sources\n...",
  "tags": ["research", "treatment", "etc"],
  "disclaimer": "This information is for general educational purposes only and is not medical advice. Research findings may be preliminary."
}

Important:
- Distinguish between correlation and causation
- Note if research is preliminary, in animals, or small sample
- Cite all sources
- Do NOT overstate findings
- Do NOT provide medical advice

Return ONLY the JSON object.`
)

// DefaultTopicHint is used in explainer prompts without a topic hint.
const DefaultTopicHint = "General health information"

// ArticleSeparator separates article blocks in article summary prompts.
const ArticleSeparator = "\n\n---\n\n"

// BuildExplainerPrompt returns the user prompt for an explainer task.
// Unknown reading levels use the grade6 instruction.
func BuildExplainerPrompt(in eazyhealth.ExplainerInput) string {
	hint := in.TopicHint
	if hint == "" {
		hint = DefaultTopicHint
	}
	return fmt.Sprintf(explainerTemplate,
		in.ReadingLevel.InstructionOr(eazyhealth.Grade6),
		hint,
		eazyhealth.DefaultDisclaimer,
		in.Text)
}

// BuildDataAnalysisPrompt returns the user prompt for a data analysis
// briefing. The stats payload is embedded as two-space indented JSON.
// Unknown reading levels use the grade8 instruction.
func BuildDataAnalysisPrompt(stats map[string]any, level eazyhealth.ReadingLevel) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(stats); err != nil {
		return "", eazyhealth.Errorf(eazyhealth.EINVALID, "stats payload is not serializable: %v", err)
	}
	return fmt.Sprintf(dataAnalysisTemplate,
		level.InstructionOr(eazyhealth.Grade8),
		strings.TrimRight(buf.String(), "\n")), nil
}

// BuildArticleSummaryPrompt returns the user prompt for an article summary
// briefing. Unknown reading levels use the grade8 instruction.
func BuildArticleSummaryPrompt(articles []*eazyhealth.BriefingSource, level eazyhealth.ReadingLevel) string {
	blocks := make([]string, 0, len(articles))
	for _, a := range articles {
		blocks = append(blocks, fmt.Sprintf("Source: %s\nTitle: %s\nContent: %s",
			orNA(a.URL), orNA(a.Title), orNA(a.Content)))
	}
	return fmt.Sprintf(articleSummaryTemplate,
		level.InstructionOr(eazyhealth.Grade8),
		strings.Join(blocks, ArticleSeparator))
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
