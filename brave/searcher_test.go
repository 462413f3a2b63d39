package brave_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trinav-code/eazyhealth"
	"github.com/trinav-code/eazyhealth/brave"
)

func TestSearcher_Search(t *testing.T) {
	t.Parallel()

	t.Run("sends site filtered query and maps results", func(t *testing.T) {
		t.Parallel()

		var gotQuery, gotCount, gotToken, gotAccept string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.Query().Get("q")
			gotCount = r.URL.Query().Get("count")
			gotToken = r.Header.Get("X-Subscription-Token")
			gotAccept = r.Header.Get("Accept")
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"web":{"results":[
				{"url":"https://www.cdc.gov/flu/","title":"Flu","description":"About flu"},
				{"url":"https://www.nih.gov/flu","title":"NIH Flu","description":"Research"},
				{"url":"https://medlineplus.gov/flu","title":"Medline","description":"More"}
			]}}`))
		}))
		defer server.Close()

		trust := eazyhealth.NewTrustFilter([]string{"cdc.gov", "nih.gov"})
		s := brave.NewSearcher("secret", trust, brave.WithEndpoint(server.URL))

		got, err := s.Search(context.Background(), "flu shot", 2)

		require.NoError(t, err)
		assert.Equal(t, "flu shot site:(cdc.gov OR site:nih.gov)", gotQuery)
		assert.Equal(t, "2", gotCount)
		assert.Equal(t, "secret", gotToken)
		assert.Equal(t, "application/json", gotAccept)
		require.Len(t, got, 2)
		assert.Equal(t, &eazyhealth.SourceCandidate{URL: "https://www.cdc.gov/flu/", Title: "Flu", Snippet: "About flu"}, got[0])
		assert.Equal(t, "https://www.nih.gov/flu", got[1].URL)
	})

	t.Run("returns empty slice when web results are absent", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))
		defer server.Close()

		s := brave.NewSearcher("secret", nil, brave.WithEndpoint(server.URL))

		got, err := s.Search(context.Background(), "flu", 3)

		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("returns EINVALID without api key", func(t *testing.T) {
		t.Parallel()

		s := brave.NewSearcher("", nil)

		_, err := s.Search(context.Background(), "flu", 3)

		assert.Equal(t, eazyhealth.EINVALID, eazyhealth.ErrorCode(err))
	})

	t.Run("returns EUPSTREAM on non-2xx", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		s := brave.NewSearcher("bad", nil, brave.WithEndpoint(server.URL))

		_, err := s.Search(context.Background(), "flu", 3)

		assert.Equal(t, eazyhealth.EUPSTREAM, eazyhealth.ErrorCode(err))
		assert.Contains(t, eazyhealth.ErrorMessage(err), "401")
	})

	t.Run("returns EUPSTREAM on malformed body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}))
		defer server.Close()

		s := brave.NewSearcher("secret", nil, brave.WithEndpoint(server.URL), brave.WithRateLimit(100))

		_, err := s.Search(context.Background(), "flu", 3)

		assert.Equal(t, eazyhealth.EUPSTREAM, eazyhealth.ErrorCode(err))
	})
}
