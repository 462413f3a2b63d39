// Package brave provides an eazyhealth.Searcher backed by the Brave Search
// web search API.
package brave

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/trinav-code/eazyhealth"
	"golang.org/x/time/rate"
)

// DefaultEndpoint is the Brave web search endpoint.
const DefaultEndpoint = "https://api.search.brave.com/res/v1/web/search"

// DefaultTimeout bounds a single search request.
const DefaultTimeout = 10 * time.Second

// Ensure Searcher implements eazyhealth.Searcher at compile time.
var _ eazyhealth.Searcher = (*Searcher)(nil)

// Searcher queries Brave Search, restricting results to the trusted domains
// with a site filter.
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
// Defaults to DefaultTimeout (10s) if not specified.
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

// NewSearcher creates a new Searcher. trust may be nil, in which case
// queries are sent without a site filter.
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

	s.client = &http.Client{
		Timeout: s.timeout,
	}

	return s
}

type response struct {
	Web struct {
		Results []struct {
			URL         string `json:"url"`
			Title       string `json:"title"`
			Description string `json:"description"`
		} `json:"results"`
	} `json:"web"`
}

// Search returns at most maxResults candidates in Brave's ranking order.
// A missing API key returns EINVALID; transport failures, non-2xx responses
// and undecodable bodies return EUPSTREAM.
func (s *Searcher) Search(ctx context.Context, query string, maxResults int) ([]*eazyhealth.SourceCandidate, error) {
	if s.apiKey == "" {
		return nil, eazyhealth.Errorf(eazyhealth.EINVALID, "brave api key not configured")
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	q := query
	if s.trust != nil {
		q = s.trust.SiteQuery(query, " OR site:")
	}
	params := url.Values{}
	params.Set("q", q)
	params.Set("count", strconv.Itoa(maxResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Subscription-Token", s.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, eazyhealth.Errorf(eazyhealth.EUPSTREAM, "brave search: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, eazyhealth.Errorf(eazyhealth.EUPSTREAM, "brave search: HTTP %d", resp.StatusCode)
	}

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, eazyhealth.Errorf(eazyhealth.EUPSTREAM, "brave search: decode response: %v", err)
	}

	results := make([]*eazyhealth.SourceCandidate, 0, len(body.Web.Results))
	for _, r := range body.Web.Results {
		if len(results) >= maxResults {
			break
		}
		results = append(results, &eazyhealth.SourceCandidate{
			URL:     r.URL,
			Title:   r.Title,
			Snippet: r.Description,
		})
	}
	return results, nil
}
