// Package pipeline composes discovery, extraction, budgeting and generation
// into the two entry points: explaining a topic, URL or text, and producing
// a briefing.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/trinav-code/eazyhealth"
	"github.com/trinav-code/eazyhealth/budget"
)

const (
	// DefaultMaxSources is the number of search candidates requested.
	DefaultMaxSources = 3

	// DefaultTopicHint is passed to explainer generation outside query mode.
	DefaultTopicHint = "health information"

	// articleSeparator joins labeled article blocks in explainer input.
	articleSeparator = "\n\n---\n\n"
)

// Pipeline holds the collaborators of both entry points. Searcher, Articles
// and Generator are required; the rest are optional.
type Pipeline struct {
	Searcher  eazyhealth.Searcher
	Articles  eazyhealth.ArticleExtractor
	Generator eazyhealth.Generator

	// Budgeter defaults to a character estimate with budget.MaxInputTokens.
	Budgeter *budget.Budgeter

	// Persistence. Nil services skip the hand-off.
	Briefings     eazyhealth.BriefingService
	ExplainerLogs eazyhealth.ExplainerLogService

	// MaxSources defaults to DefaultMaxSources.
	MaxSources int

	// BasePromptTokens defaults to budget.DefaultBasePromptTokens.
	BasePromptTokens int

	// DryRun skips storing briefings.
	DryRun bool

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	Logger *slog.Logger
}

// Explain produces a plain-language explainer for exactly one of a query, a
// URL or raw text. Returns EINVALID for bad requests, ENOTFOUND when nothing
// usable was found, and the generator's error when generation fails.
func (p *Pipeline) Explain(ctx context.Context, req eazyhealth.ExplainRequest) (*eazyhealth.Explanation, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	level := req.ReadingLevel
	if level == "" {
		level = eazyhealth.Grade6
	}

	var (
		input   string
		sources []*eazyhealth.SourceRef
		err     error
	)
	switch {
	case strings.TrimSpace(req.URL) != "":
		input, sources, err = p.explainURL(ctx, req.URL)
	case strings.TrimSpace(req.RawText) != "":
		input = req.RawText
	default:
		input, sources, err = p.explainQuery(ctx, req.Query)
	}
	if err != nil {
		return nil, err
	}

	hint := req.Query
	if hint == "" {
		hint = DefaultTopicHint
	}

	result, err := p.Generator.GenerateExplainer(ctx, eazyhealth.ExplainerInput{
		Text:         input,
		TopicHint:    hint,
		ReadingLevel: level,
	})
	if err != nil {
		return nil, err
	}

	if sources == nil {
		sources = []*eazyhealth.SourceRef{}
	}
	ex := &eazyhealth.Explanation{
		Result:       result,
		Sources:      sources,
		InputExcerpt: eazyhealth.Excerpt(input, eazyhealth.DefaultExcerptChars),
	}

	if p.ExplainerLogs != nil {
		entry := &eazyhealth.ExplainerLog{
			Query:        req.Query,
			SourceURL:    req.URL,
			InputExcerpt: ex.InputExcerpt,
			Sources:      sources,
			ReadingLevel: level,
			Output:       result,
		}
		if err := p.ExplainerLogs.CreateExplainerLog(ctx, entry); err != nil {
			p.logger().Warn("failed to record explainer log", "error", err)
		}
	}

	return ex, nil
}

func (p *Pipeline) explainURL(ctx context.Context, url string) (string, []*eazyhealth.SourceRef, error) {
	a, err := p.Articles.Extract(ctx, url)
	if err != nil {
		p.logger().Warn("article extraction failed", "url", url, "error", err)
		return "", nil, eazyhealth.Errorf(eazyhealth.ENOTFOUND, "failed to extract content from URL: %s", url)
	}
	if strings.TrimSpace(a.Text) == "" {
		return "", nil, eazyhealth.Errorf(eazyhealth.ENOTFOUND, "failed to extract content from URL: %s", url)
	}
	return a.Text, []*eazyhealth.SourceRef{{
		URL:     url,
		Title:   a.Title,
		Excerpt: eazyhealth.Excerpt(a.Text, eazyhealth.DefaultExcerptChars),
	}}, nil
}

// explainQuery discovers sources for query, extracts each, and returns the
// budgeted article texts. When no candidate yields text the search snippets
// are used instead.
func (p *Pipeline) explainQuery(ctx context.Context, query string) (string, []*eazyhealth.SourceRef, error) {
	candidates, err := p.Searcher.Search(ctx, query, p.maxSources())
	if err != nil {
		return "", nil, err
	}
	if len(candidates) == 0 {
		return "", nil, eazyhealth.Errorf(eazyhealth.ENOTFOUND, "no trusted sources found for query: %s", query)
	}

	sources := make([]*eazyhealth.SourceRef, 0, len(candidates))
	for _, c := range candidates {
		sources = append(sources, &eazyhealth.SourceRef{URL: c.URL, Title: c.Title, Excerpt: c.Snippet})
	}

	articles := p.extractAll(ctx, candidates)
	selected := p.budgeter().Select(ctx, articles, p.basePromptTokens())
	if len(selected) == 0 {
		p.logger().Warn("no article text extracted, using search snippets", "query", query)
		return snippetText(candidates), sources, nil
	}

	blocks := make([]string, 0, len(selected))
	for _, a := range selected {
		blocks = append(blocks, fmt.Sprintf("Source: %s\nTitle: %s\n\n%s", a.URL, a.Title, a.Text))
	}
	return strings.Join(blocks, articleSeparator), sources, nil
}

// extractAll extracts every candidate, dropping failures, blank pages and
// pages whose text repeats an earlier one.
func (p *Pipeline) extractAll(ctx context.Context, candidates []*eazyhealth.SourceCandidate) []*eazyhealth.Article {
	seen := make(map[uint64]struct{}, len(candidates))
	var articles []*eazyhealth.Article
	for _, c := range candidates {
		a, err := p.Articles.Extract(ctx, c.URL)
		if err != nil {
			p.logger().Warn("article extraction failed", "url", c.URL, "error", err)
			continue
		}
		if strings.TrimSpace(a.Text) == "" {
			continue
		}
		h := xxhash.Sum64String(a.Text)
		if _, ok := seen[h]; ok {
			p.logger().Debug("skipping duplicate article text", "url", c.URL)
			continue
		}
		seen[h] = struct{}{}
		articles = append(articles, a)
	}
	return articles
}

func snippetText(candidates []*eazyhealth.SourceCandidate) string {
	parts := make([]string, 0, len(candidates))
	for _, c := range candidates {
		parts = append(parts, c.Title+"\n"+c.Snippet)
	}
	return strings.Join(parts, "\n\n")
}

func (p *Pipeline) maxSources() int {
	if p.MaxSources > 0 {
		return p.MaxSources
	}
	return DefaultMaxSources
}

func (p *Pipeline) basePromptTokens() int {
	if p.BasePromptTokens > 0 {
		return p.BasePromptTokens
	}
	return budget.DefaultBasePromptTokens
}

func (p *Pipeline) budgeter() *budget.Budgeter {
	if p.Budgeter != nil {
		return p.Budgeter
	}
	return &budget.Budgeter{Logger: p.Logger}
}

func (p *Pipeline) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.New(slog.DiscardHandler)
}
