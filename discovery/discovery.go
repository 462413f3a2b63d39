// Package discovery composes search backends into a single
// eazyhealth.Searcher that always degrades to an offline fallback rather
// than failing on upstream errors.
package discovery

import (
	"context"
	"log/slog"

	"github.com/trinav-code/eazyhealth"
)

// Ensure Service implements eazyhealth.Searcher at compile time.
var _ eazyhealth.Searcher = (*Service)(nil)

// Service searches Primary and falls back to Fallback when Primary is unset
// or fails. An empty but successful primary result is returned as is.
type Service struct {
	Primary  eazyhealth.Searcher
	Fallback eazyhealth.Searcher

	// Trust filters results when RequireTrusted is set.
	Trust          *eazyhealth.TrustFilter
	RequireTrusted bool

	Logger *slog.Logger
}

// Search returns at most maxResults candidates in backend order. Only a
// fallback failure is returned to the caller. An empty result is not an
// error here; callers decide whether "no sources" is terminal.
func (s *Service) Search(ctx context.Context, query string, maxResults int) ([]*eazyhealth.SourceCandidate, error) {
	results, err := s.search(ctx, query, maxResults)
	if err != nil {
		return nil, err
	}

	if s.RequireTrusted && s.Trust != nil {
		trusted := results[:0:0]
		for _, r := range results {
			if s.Trust.IsTrusted(r.URL) {
				trusted = append(trusted, r)
				continue
			}
			s.logger().Debug("dropping untrusted source", "url", r.URL)
		}
		results = trusted
	}

	if maxResults < 0 {
		maxResults = 0
	}
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results, nil
}

func (s *Service) search(ctx context.Context, query string, maxResults int) ([]*eazyhealth.SourceCandidate, error) {
	if s.Primary != nil {
		results, err := s.Primary.Search(ctx, query, maxResults)
		if err == nil {
			return results, nil
		}
		s.logger().Warn("search failed, using offline fallback",
			"query", query,
			"code", eazyhealth.ErrorCode(err),
			"error", err)
	}
	if s.Fallback == nil {
		return nil, eazyhealth.Errorf(eazyhealth.ECONFIG, "no search backend configured")
	}
	return s.Fallback.Search(ctx, query, maxResults)
}

func (s *Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}
