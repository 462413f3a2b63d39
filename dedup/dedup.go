// Package dedup flags briefings that are lexically too close to recent ones.
//
// Similarity is a weighted sum of two Jaccard scores: one over the
// normalized tag sets and one over title keywords. It is a lexical
// approximation and makes no attempt at semantic matching.
package dedup

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/trinav-code/eazyhealth"
)

// Defaults.
const (
	DefaultThreshold   = 0.6
	DefaultTagWeight   = 0.7
	DefaultTitleWeight = 0.3
)

var stopWords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`
		the a an and or but in on at to for of with by from up about into
		through during is are was were be been being have has had do does did
		will would should could may might
		health update news briefing recent weekly new`) {
		stopWords[w] = struct{}{}
	}
}

// Detector compares a candidate against a history window.
type Detector struct {
	Threshold   float64
	TagWeight   float64
	TitleWeight float64
}

// NewDetector returns a Detector with the default threshold and weights.
func NewDetector() *Detector {
	return &Detector{
		Threshold:   DefaultThreshold,
		TagWeight:   DefaultTagWeight,
		TitleWeight: DefaultTitleWeight,
	}
}

// Match describes the history entry that triggered a duplicate.
type Match struct {
	Briefing        *eazyhealth.Briefing
	TagSimilarity   float64
	TitleSimilarity float64
	Score           float64
}

// Check scores title and tags against each history entry of sourceType in
// order and returns the first entry whose score reaches the threshold.
// Entries of other source types are ignored.
func (d *Detector) Check(title string, tags []string, sourceType eazyhealth.SourceType, history []*eazyhealth.Briefing) (*Match, bool) {
	if len(history) == 0 {
		return nil, false
	}

	candidateTags := NormalizeTags(tags)
	candidateWords := Keywords(title)

	for _, b := range history {
		if b == nil || b.SourceType != sourceType {
			continue
		}
		tagSim := Jaccard(candidateTags, NormalizeTags(b.Tags))
		titleSim := Jaccard(candidateWords, Keywords(b.Title))
		score := d.TagWeight*tagSim + d.TitleWeight*titleSim
		if score >= d.Threshold {
			return &Match{
				Briefing:        b,
				TagSimilarity:   tagSim,
				TitleSimilarity: titleSim,
				Score:           score,
			}, true
		}
	}
	return nil, false
}

// IsDuplicate reports whether Check finds a match.
func (d *Detector) IsDuplicate(title string, tags []string, sourceType eazyhealth.SourceType, history []*eazyhealth.Briefing) bool {
	_, ok := d.Check(title, tags, sourceType, history)
	return ok
}

// Set is a set of normalized words.
type Set map[string]struct{}

// NormalizeTags lowercases and trims tags, dropping blanks.
func NormalizeTags(tags []string) Set {
	s := make(Set, len(tags))
	for _, t := range tags {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			s[t] = struct{}{}
		}
	}
	return s
}

// Keywords returns the lowercased words of text that are longer than three
// characters and not stop words. Words are runs of letters, digits and
// underscores.
func Keywords(text string) Set {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
	s := make(Set, len(words))
	for _, w := range words {
		if utf8.RuneCountInString(w) <= 3 {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		s[w] = struct{}{}
	}
	return s
}

// Jaccard returns |a ∩ b| / |a ∪ b|, or 0 when either set is empty.
func Jaccard(a, b Set) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for w := range a {
		if _, ok := b[w]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}
