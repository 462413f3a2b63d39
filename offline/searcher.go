// Package offline provides a deterministic eazyhealth.Searcher backed by a
// small built-in topic table. It never touches the network and is used as
// the fallback when a search API is unavailable.
package offline

import (
	"context"
	"fmt"
	"strings"

	"github.com/trinav-code/eazyhealth"
)

// Ensure Searcher implements eazyhealth.Searcher at compile time.
var _ eazyhealth.Searcher = (*Searcher)(nil)

type topic struct {
	name    string
	results []eazyhealth.SourceCandidate
}

var topics = []topic{
	{
		name: "atrial fibrillation",
		results: []eazyhealth.SourceCandidate{
			{
				URL:     "https://www.cdc.gov/heartdisease/atrial_fibrillation.htm",
				Title:   "Atrial Fibrillation - CDC",
				Snippet: "Atrial fibrillation (AFib) is the most common type of irregular heartbeat. Learn about symptoms, causes, and treatment options.",
			},
			{
				URL:     "https://www.mayoclinic.org/diseases-conditions/atrial-fibrillation/symptoms-causes/syc-20350624",
				Title:   "Atrial Fibrillation - Symptoms and Causes - Mayo Clinic",
				Snippet: "Atrial fibrillation is an irregular and often very rapid heart rhythm that can lead to blood clots in the heart.",
			},
		},
	},
	{
		name: "diabetes",
		results: []eazyhealth.SourceCandidate{
			{
				URL:     "https://www.cdc.gov/diabetes/basics/diabetes.html",
				Title:   "What is Diabetes? - CDC",
				Snippet: "Diabetes is a chronic disease that affects how your body turns food into energy. Learn about type 1, type 2, and gestational diabetes.",
			},
			{
				URL:     "https://www.nih.gov/diabetes",
				Title:   "Diabetes - National Institutes of Health",
				Snippet: "Information about diabetes research, treatment, and prevention from the NIH.",
			},
		},
	},
	{
		name: "covid",
		results: []eazyhealth.SourceCandidate{
			{
				URL:     "https://www.cdc.gov/coronavirus/2019-ncov/index.html",
				Title:   "COVID-19 - CDC",
				Snippet: "Latest information about COVID-19 symptoms, testing, vaccines, and prevention.",
			},
		},
	},
	{
		name: "flu",
		results: []eazyhealth.SourceCandidate{
			{
				URL:     "https://www.cdc.gov/flu/index.htm",
				Title:   "Influenza (Flu) - CDC",
				Snippet: "Information about seasonal flu, including symptoms, prevention, and vaccination.",
			},
		},
	},
}

// Searcher looks queries up in the topic table. A topic matches when either
// the lowercased query contains the topic name or the topic name contains
// the query. Matches from every topic are returned in table order. When no
// topic matches, three generic placeholders mentioning the query are returned.
type Searcher struct{}

// NewSearcher creates a new Searcher.
func NewSearcher() *Searcher {
	return &Searcher{}
}

// Search returns at most maxResults candidates for query.
func (s *Searcher) Search(_ context.Context, query string, maxResults int) ([]*eazyhealth.SourceCandidate, error) {
	q := strings.ToLower(query)

	var results []*eazyhealth.SourceCandidate
	for _, t := range topics {
		if !strings.Contains(q, t.name) && !strings.Contains(t.name, q) {
			continue
		}
		for _, r := range t.results {
			r := r
			results = append(results, &r)
		}
	}
	if len(results) == 0 {
		results = generic(query)
	}

	if maxResults < 0 {
		maxResults = 0
	}
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results, nil
}

func generic(query string) []*eazyhealth.SourceCandidate {
	return []*eazyhealth.SourceCandidate{
		{
			URL:     "https://www.cdc.gov/",
			Title:   "CDC - Centers for Disease Control and Prevention",
			Snippet: fmt.Sprintf("Reliable health information about %s. Visit CDC.gov for more details.", query),
		},
		{
			URL:     "https://www.nih.gov/",
			Title:   "NIH - National Institutes of Health",
			Snippet: fmt.Sprintf("Research and health information about %s from the National Institutes of Health.", query),
		},
		{
			URL:     "https://www.mayoclinic.org/",
			Title:   "Mayo Clinic",
			Snippet: fmt.Sprintf("Expert information about %s from Mayo Clinic's trusted health resources.", query),
		},
	}
}
