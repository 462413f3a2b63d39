// Package serper provides an eazyhealth.Searcher backed by the Serper
// Google search API.
package serper

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/trinav-code/eazyhealth"
	"golang.org/x/time/rate"
)

// DefaultEndpoint is the Serper search endpoint.
const DefaultEndpoint = "https://google.serper.dev/search"

// DefaultTimeout bounds a single search request.
const DefaultTimeout = 10 * time.Second

// Ensure Searcher implements eazyhealth.Searcher at compile time.
var _ eazyhealth.Searcher = (*Searcher)(nil)

// Searcher queries Serper, restricting results to the trusted domains with
// a site filter.
type Searcher struct {
	apiKey   string
	trust    *eazyhealth.TrustFilter
	endpoint string
	timeout  time.Duration
	limiter  *rate.Limiter
	client   *http.Client
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithEndpoint overrides the API endpoint.
func WithEndpoint(endpoint string) Option {
	return func(s *Searcher) {
		s.endpoint = endpoint
	}
}

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Searcher) {
		s.timeout = d
	}
}

// WithRateLimit throttles requests to rps per second with no bursting.
// A non-positive rps disables throttling.
func WithRateLimit(rps float64) Option {
	return func(s *Searcher) {
		if rps <= 0 {
			s.limiter = nil
			return
		}
		s.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// NewSearcher creates a new Searcher. trust may be nil.
func NewSearcher(apiKey string, trust *eazyhealth.TrustFilter, opts ...Option) *Searcher {
	s := &Searcher{
		apiKey:   apiKey,
		trust:    trust,
		endpoint: DefaultEndpoint,
		timeout:  DefaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.client = &http.Client{Timeout: s.timeout}
	return s
}

type request struct {
	Q   string `json:"q"`
	Num int    `json:"num"`
}

type response struct {
	Organic []struct {
		Link    string `json:"link"`
		Title   string `json:"title"`
		Snippet string `json:"snippet"`
	} `json:"organic"`
}

// Search returns at most maxResults organic results in Serper's order.
// A missing API key returns EINVALID; transport failures, non-2xx responses
// and undecodable bodies return EUPSTREAM.
func (s *Searcher) Search(ctx context.Context, query string, maxResults int) ([]*eazyhealth.SourceCandidate, error) {
	if s.apiKey == "" {
		return nil, eazyhealth.Errorf(eazyhealth.EINVALID, "serper api key not configured")
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	q := query
	if s.trust != nil {
		q = s.trust.SiteQuery(query, " OR ")
	}
	payload, err := json.Marshal(request{Q: q, Num: maxResults})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-API-KEY", s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, eazyhealth.Errorf(eazyhealth.EUPSTREAM, "serper search: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, eazyhealth.Errorf(eazyhealth.EUPSTREAM, "serper search: HTTP %d", resp.StatusCode)
	}

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, eazyhealth.Errorf(eazyhealth.EUPSTREAM, "serper search: decode response: %v", err)
	}

	results := make([]*eazyhealth.SourceCandidate, 0, len(body.Organic))
	for _, r := range body.Organic {
		if len(results) >= maxResults {
			break
		}
		results = append(results, &eazyhealth.SourceCandidate{
			URL:     r.Link,
			Title:   r.Title,
			Snippet: r.Snippet,
		})
	}
	return results, nil
}
