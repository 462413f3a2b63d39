package eazyhealth

import (
	"context"
	"strings"
	"time"
)

// ExplainRequest asks for a plain-language explainer. Exactly one of Query,
// URL or RawText must be set.
type ExplainRequest struct {
	Query        string       `json:"query,omitempty"`
	URL          string       `json:"url,omitempty"`
	RawText      string       `json:"rawText,omitempty"`
	ReadingLevel ReadingLevel `json:"readingLevel"`
}

// Validate returns an error unless exactly one input is supplied and the
// reading level, when set, is known.
func (r *ExplainRequest) Validate() error {
	n := 0
	for _, s := range []string{r.Query, r.URL, r.RawText} {
		if strings.TrimSpace(s) != "" {
			n++
		}
	}
	switch {
	case n == 0:
		return Errorf(EINVALID, "one of query, url or raw text required")
	case n > 1:
		return Errorf(EINVALID, "only one of query, url or raw text may be supplied")
	}
	if r.ReadingLevel != "" && !r.ReadingLevel.Valid() {
		return Errorf(EINVALID, "unknown reading level %q", r.ReadingLevel)
	}
	return nil
}

// Explanation is the outcome of an explain request.
type Explanation struct {
	Result       *GenerationResult `json:"result"`
	Sources      []*SourceRef      `json:"sources"`
	InputExcerpt string            `json:"inputExcerpt"`
}

// ExplainerLog records one served explain request.
type ExplainerLog struct {
	ID           string            `json:"id"`
	Query        string            `json:"query,omitempty"`
	SourceURL    string            `json:"sourceUrl,omitempty"`
	InputExcerpt string            `json:"inputExcerpt"`
	Sources      []*SourceRef      `json:"sources"`
	ReadingLevel ReadingLevel      `json:"readingLevel"`
	Output       *GenerationResult `json:"output"`
	CreatedAt    time.Time         `json:"createdAt"`
}

// Validate returns an error if the log entry contains invalid fields.
func (l *ExplainerLog) Validate() error {
	if l.Output == nil {
		return Errorf(EINVALID, "explainer log output required")
	}
	if !l.ReadingLevel.Valid() {
		return Errorf(EINVALID, "explainer log reading level %q invalid", l.ReadingLevel)
	}
	return nil
}

// ExplainerLogService represents a service for recording explain requests.
type ExplainerLogService interface {
	// CreateExplainerLog stores a new log entry.
	CreateExplainerLog(ctx context.Context, log *ExplainerLog) error

	// FindExplainerLogs retrieves log entries, newest first.
	FindExplainerLogs(ctx context.Context, filter ExplainerLogFilter) ([]*ExplainerLog, error)
}

// ExplainerLogFilter represents a filter for FindExplainerLogs.
type ExplainerLogFilter struct {
	Query *string `json:"query"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
