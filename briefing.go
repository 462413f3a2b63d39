package eazyhealth

import (
	"context"
	"strings"
	"time"
)

// SourceType identifies how a briefing was produced.
type SourceType string

// Briefing source types.
const (
	DataAnalysis   SourceType = "data_analysis"
	ArticleSummary SourceType = "article_summary"
)

// ParseSourceType returns the source type named by s.
func ParseSourceType(s string) (SourceType, error) {
	switch t := SourceType(s); t {
	case DataAnalysis, ArticleSummary:
		return t, nil
	}
	return "", Errorf(EINVALID, "unknown source type %q", s)
}

// Briefing is a published, auto-generated health briefing.
type Briefing struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Slug           string         `json:"slug"`
	Summary        string         `json:"summary"`
	Body           string         `json:"body"`
	SourceType     SourceType     `json:"sourceType"`
	SourceURLs     []string       `json:"sourceUrls"`
	SourceMetadata map[string]any `json:"sourceMetadata"`
	Tags           []string       `json:"tags"`
	ReadingLevel   ReadingLevel   `json:"readingLevel"`
	Disclaimer     string         `json:"disclaimer"`
	ContentHash    string         `json:"contentHash"`
	CreatedAt      time.Time      `json:"createdAt"`
}

// Validate returns an error if the briefing contains invalid fields.
func (b *Briefing) Validate() error {
	if b.Title == "" {
		return Errorf(EINVALID, "briefing title required")
	}
	if b.Slug == "" {
		return Errorf(EINVALID, "briefing slug required")
	}
	if b.SourceType != DataAnalysis && b.SourceType != ArticleSummary {
		return Errorf(EINVALID, "briefing source type %q invalid", b.SourceType)
	}
	if !b.ReadingLevel.Valid() {
		return Errorf(EINVALID, "briefing reading level %q invalid", b.ReadingLevel)
	}
	return nil
}

// BriefingService represents a service for managing briefings.
type BriefingService interface {
	// CreateBriefing stores a new briefing. The duplicate check runs against
	// the history window read in the same transaction as the insert.
	// Returns ECONFLICT if the briefing duplicates a recent one.
	CreateBriefing(ctx context.Context, b *Briefing) error

	// FindBriefingBySlug retrieves a briefing by slug.
	// Returns ENOTFOUND if the briefing does not exist.
	FindBriefingBySlug(ctx context.Context, slug string) (*Briefing, error)

	// FindBriefings retrieves briefings matching the filter, newest first.
	FindBriefings(ctx context.Context, filter BriefingFilter) ([]*Briefing, error)

	// DeleteBriefing permanently removes a briefing.
	// Returns ENOTFOUND if the briefing does not exist.
	DeleteBriefing(ctx context.Context, id string) error
}

// BriefingFilter represents a filter for FindBriefings.
type BriefingFilter struct {
	SourceType   *SourceType `json:"sourceType"`
	CreatedAfter *time.Time  `json:"createdAfter"`
	Tag          *string     `json:"tag"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// maxSlugLen caps the title part of a slug.
const maxSlugLen = 100

// Slugify converts title into a URL-safe slug: lowercase ASCII letters and
// digits, with every other run of characters collapsed to a single hyphen and
// no leading or trailing hyphens. The result is capped at 100 characters.
func Slugify(title string) string {
	var sb strings.Builder
	pendingHyphen := false

	for _, r := range strings.ToLower(title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && sb.Len() > 0 {
				sb.WriteByte('-')
			}
			pendingHyphen = false
			sb.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	slug := sb.String()
	if len(slug) > maxSlugLen {
		slug = slug[:maxSlugLen]
	}
	return slug
}

// BriefingSlug returns the slug for title suffixed with the UTC date of now.
func BriefingSlug(title string, now time.Time) string {
	return Slugify(title) + "-" + now.UTC().Format("2006-01-02")
}
