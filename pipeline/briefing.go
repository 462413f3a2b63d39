package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/trinav-code/eazyhealth"
)

// Default briefing titles, used when the generated result has none.
const (
	DefaultDataBriefingTitle    = "Weekly Health Briefing"
	DefaultArticleBriefingTitle = "Health News: %s"
)

// BriefingRequest asks for one briefing. Stats (or UseMockData) feeds
// data_analysis; Topic and MaxArticles feed article_summary.
type BriefingRequest struct {
	SourceType   eazyhealth.SourceType
	Topic        string
	Stats        map[string]any
	UseMockData  bool
	ReadingLevel eazyhealth.ReadingLevel
	MaxArticles  int
}

// GenerateBriefing generates a briefing and, unless DryRun is set, stores it.
// Returns EINVALID for bad requests, ENOTFOUND when no sources were found and
// ECONFLICT when the store rejects the briefing as a duplicate.
func (p *Pipeline) GenerateBriefing(ctx context.Context, req BriefingRequest) (*eazyhealth.Briefing, error) {
	level := req.ReadingLevel
	if level == "" {
		level = eazyhealth.Grade8
	} else if !level.Valid() {
		return nil, eazyhealth.Errorf(eazyhealth.EINVALID, "unknown reading level %q", level)
	}

	var (
		b   *eazyhealth.Briefing
		err error
	)
	switch req.SourceType {
	case eazyhealth.DataAnalysis:
		b, err = p.dataBriefing(ctx, req, level)
	case eazyhealth.ArticleSummary:
		b, err = p.articleBriefing(ctx, req, level)
	default:
		return nil, eazyhealth.Errorf(eazyhealth.EINVALID, "unknown source type %q", req.SourceType)
	}
	if err != nil {
		return nil, err
	}

	b.Slug = eazyhealth.BriefingSlug(b.Title, p.now())

	if p.DryRun || p.Briefings == nil {
		return b, nil
	}
	if err := p.Briefings.CreateBriefing(ctx, b); err != nil {
		return nil, err
	}
	p.logger().Info("briefing stored", "slug", b.Slug, "source_type", b.SourceType)
	return b, nil
}

func (p *Pipeline) dataBriefing(ctx context.Context, req BriefingRequest, level eazyhealth.ReadingLevel) (*eazyhealth.Briefing, error) {
	stats := req.Stats
	if req.UseMockData {
		stats = MockStats()
	}
	if len(stats) == 0 {
		return nil, eazyhealth.Errorf(eazyhealth.EINVALID, "statistics payload required for data analysis briefing")
	}

	res, err := p.Generator.GenerateBriefing(ctx, eazyhealth.BriefingInput{
		SourceType:   eazyhealth.DataAnalysis,
		Stats:        stats,
		ReadingLevel: level,
	})
	if err != nil {
		return nil, err
	}

	return newBriefing(res, eazyhealth.DataAnalysis, DefaultDataBriefingTitle, level, nil, stats), nil
}

func (p *Pipeline) articleBriefing(ctx context.Context, req BriefingRequest, level eazyhealth.ReadingLevel) (*eazyhealth.Briefing, error) {
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		return nil, eazyhealth.Errorf(eazyhealth.EINVALID, "topic required for article summary briefing")
	}

	limit := req.MaxArticles
	if limit <= 0 {
		limit = p.maxSources()
	}

	candidates, err := p.Searcher.Search(ctx, topic, limit)
	if err != nil {
		return nil, err
	}

	var (
		articles []*eazyhealth.BriefingSource
		urls     []string
	)
	for _, c := range candidates {
		if c.URL == "" {
			continue
		}
		articles = append(articles, p.briefingSource(ctx, c))
		urls = append(urls, c.URL)
	}
	if len(articles) == 0 {
		return nil, eazyhealth.Errorf(eazyhealth.ENOTFOUND, "no trusted sources found for topic: %s", topic)
	}

	res, err := p.Generator.GenerateBriefing(ctx, eazyhealth.BriefingInput{
		SourceType:   eazyhealth.ArticleSummary,
		Topic:        topic,
		Articles:     articles,
		ReadingLevel: level,
	})
	if err != nil {
		return nil, err
	}

	metadata := map[string]any{"topic": topic, "article_count": len(articles)}
	title := fmt.Sprintf(DefaultArticleBriefingTitle, topic)
	return newBriefing(res, eazyhealth.ArticleSummary, title, level, urls, metadata), nil
}

// briefingSource extracts c, falling back to its search snippet when
// extraction fails or yields no text.
func (p *Pipeline) briefingSource(ctx context.Context, c *eazyhealth.SourceCandidate) *eazyhealth.BriefingSource {
	title := c.Title
	if title == "" {
		title = "Article"
	}

	a, err := p.Articles.Extract(ctx, c.URL)
	if err != nil {
		p.logger().Warn("article extraction failed, using snippet", "url", c.URL, "error", err)
		return &eazyhealth.BriefingSource{URL: c.URL, Title: title, Content: c.Snippet}
	}
	if strings.TrimSpace(a.Text) == "" {
		return &eazyhealth.BriefingSource{URL: c.URL, Title: title, Content: c.Snippet}
	}
	if a.Title != "" {
		title = a.Title
	}
	return &eazyhealth.BriefingSource{URL: c.URL, Title: title, Content: a.Text}
}

func newBriefing(res *eazyhealth.GenerationResult, st eazyhealth.SourceType, defaultTitle string, level eazyhealth.ReadingLevel, urls []string, metadata map[string]any) *eazyhealth.Briefing {
	title := strings.TrimSpace(res.Title)
	if title == "" {
		title = defaultTitle
	}
	disclaimer := res.Disclaimer
	if disclaimer == "" {
		disclaimer = eazyhealth.DefaultDisclaimer
	}
	tags := res.Tags
	if tags == nil {
		tags = []string{}
	}
	return &eazyhealth.Briefing{
		Title:          title,
		Summary:        res.Summary,
		Body:           res.BodyMarkdown,
		SourceType:     st,
		SourceURLs:     urls,
		SourceMetadata: metadata,
		Tags:           tags,
		ReadingLevel:   level,
		Disclaimer:     disclaimer,
	}
}

// MockStats returns the built-in demonstration surveillance payload. Each
// call returns a fresh copy.
func MockStats() map[string]any {
	return map[string]any{
		"period": "Week of November 17, 2025",
		"diseases": []any{
			map[string]any{
				"name":                  "COVID-19",
				"cases_this_week":       12500,
				"change_from_last_week": "+8%",
				"trend":                 "increasing",
			},
			map[string]any{
				"name":                  "Influenza",
				"cases_this_week":       8200,
				"change_from_last_week": "-3%",
				"trend":                 "stable",
			},
			map[string]any{
				"name":                  "RSV",
				"cases_this_week":       3400,
				"change_from_last_week": "+15%",
				"trend":                 "increasing",
			},
		},
		"notes": "Data is from public health surveillance systems. Case counts may be underreported.",
	}
}
