package eazyhealth

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"
)

// DefaultExcerptChars is the excerpt length used for logs and source lists.
const DefaultExcerptChars = 500

// Article is the main body text extracted from one URL.
type Article struct {
	URL       string     `json:"url"`
	Title     string     `json:"title"`
	Text      string     `json:"text"`
	Author    string     `json:"author,omitempty"`
	Date      *time.Time `json:"date,omitempty"`
	WordCount int        `json:"wordCount"`
}

// WithText returns a copy of the article carrying text, with the word count
// recomputed. The receiver is not modified.
func (a *Article) WithText(text string) *Article {
	other := *a
	other.Text = text
	other.WordCount = CountWords(text)
	return &other
}

// ArticleExtractor fetches a URL and extracts its main text.
type ArticleExtractor interface {
	// Extract returns the article at url. Transport failures and non-2xx
	// responses return EUPSTREAM; pages without a locatable body return
	// ENOTFOUND.
	Extract(ctx context.Context, url string) (*Article, error)
}

// CountWords returns the number of whitespace-separated words in text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// Excerpt returns a sentence-aware prefix of text of at most maxChars
// characters. When the last sentence terminator within the window sits at or
// beyond 70% of maxChars the excerpt ends on it; otherwise the raw cut is
// returned with "..." appended.
func Excerpt(text string, maxChars int) string {
	if utf8.RuneCountInString(text) <= maxChars {
		return text
	}
	if maxChars <= 0 {
		return "..."
	}

	window := []rune(text)[:maxChars]
	last := -1
	for i := len(window) - 1; i >= 0; i-- {
		if r := window[i]; r == '.' || r == '?' || r == '!' {
			last = i
			break
		}
	}

	if last >= 0 && float64(last) >= float64(maxChars)*0.7 {
		return string(window[:last+1])
	}
	return string(window) + "..."
}
