// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package keywords

import (
	"context"
	"sort"
	"strings"
	"unicode"
)

const defaultMaxKeywords = 5

// englishStopwords is a compact list of function words that never make
// useful keywords.
var englishStopwords = []string{
	"a", "about", "after", "all", "also", "an", "and", "any", "are", "as", "at",
	"be", "been", "before", "being", "between", "both", "but", "by",
	"can", "could", "did", "do", "does", "during", "each", "for", "from",
	"had", "has", "have", "he", "her", "hers", "him", "his", "how",
	"if", "in", "into", "is", "it", "its", "may", "more", "most", "much",
	"no", "not", "of", "on", "one", "only", "or", "other", "our", "over",
	"she", "should", "so", "some", "such", "than", "that", "the", "their", "them",
	"then", "there", "these", "they", "this", "those", "through", "to",
	"under", "until", "up", "very", "was", "we", "were", "what", "when", "where",
	"which", "while", "who", "whom", "why", "will", "with", "would", "you", "your",
}

// StoplistExtractor is an offline extractor. It tokenizes a sentence,
// drops stopwords, single characters and pure numbers, and ranks the
// remaining terms by frequency, ties broken by first appearance. Each
// keyword keeps the surface form of its first occurrence.
type StoplistExtractor struct {
	stopwords   map[string]struct{}
	maxKeywords int
}

// NewStoplistExtractor returns an extractor that yields at most maxKeywords
// keywords per sentence (default 5 when maxKeywords <= 0).
func NewStoplistExtractor(maxKeywords int, extraStopwords ...string) *StoplistExtractor {
	if maxKeywords <= 0 {
		maxKeywords = defaultMaxKeywords
	}
	stops := make(map[string]struct{}, len(englishStopwords)+len(extraStopwords))
	for _, w := range englishStopwords {
		stops[w] = struct{}{}
	}
	for _, w := range extraStopwords {
		stops[strings.ToLower(w)] = struct{}{}
	}
	return &StoplistExtractor{stopwords: stops, maxKeywords: maxKeywords}
}

type candidate struct {
	surface string
	count   int
}

// Extract implements Extractor. It never fails.
func (s *StoplistExtractor) Extract(_ context.Context, text string) ([]string, error) {
	byKey := make(map[string]*candidate)
	var order []*candidate

	for _, tok := range tokenize(text) {
		key := strings.ToLower(tok)
		if !s.keep(key) {
			continue
		}
		if c, ok := byKey[key]; ok {
			c.count++
			continue
		}
		c := &candidate{surface: tok, count: 1}
		byKey[key] = c
		order = append(order, c)
	}

	sort.SliceStable(order, func(i, j int) bool {
		return order[i].count > order[j].count
	})

	n := len(order)
	if n > s.maxKeywords {
		n = s.maxKeywords
	}
	out := make([]string, 0, n)
	for _, c := range order[:n] {
		out = append(out, c.surface)
	}
	return out, nil
}

func (s *StoplistExtractor) keep(word string) bool {
	if len([]rune(word)) <= 1 || isNumericOnly(word) {
		return false
	}
	_, stop := s.stopwords[word]
	return !stop
}

// tokenize splits on anything that is not a letter, digit, hyphen or
// apostrophe, trimming stray hyphens and possessive suffixes.
func tokenize(text string) []string {
	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		tok := strings.Trim(current.String(), "-'’")
		tok = strings.TrimSuffix(tok, "'s")
		tok = strings.TrimSuffix(tok, "’s")
		if tok != "" {
			tokens = append(tokens, tok)
		}
		current.Reset()
	}

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '-' || r == '\'' || r == '’' {
			current.WriteRune(r)
			continue
		}
		flush()
	}
	flush()
	return tokens
}

// isNumericOnly returns true if the token contains only digits and hyphens.
func isNumericOnly(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) && r != '-' {
			return false
		}
	}
	return true
}
