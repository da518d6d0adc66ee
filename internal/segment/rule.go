// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package segment

import (
	"strings"
	"unicode"
)

// defaultAbbreviations are lower-cased tokens (without the final period)
// after which a period never ends a sentence.
var defaultAbbreviations = []string{
	"mr", "mrs", "ms", "dr", "prof", "sr", "jr", "st", "mt", "rev", "fr",
	"gen", "col", "lt", "sgt", "capt", "gov", "sen", "rep", "hon", "pres",
	"jan", "feb", "mar", "apr", "jun", "jul", "aug", "sep", "sept", "oct", "nov", "dec",
	"no", "nos", "vol", "fig", "approx", "dept", "est", "ca", "cf", "al", "vs",
	"e.g", "i.e", "u.s", "u.k", "a.d", "b.c",
}

// RuleSegmenter finds sentence boundaries with punctuation, capitalisation
// and an abbreviation list.
//
// A boundary is a run of ".", "!" or "?" (optionally followed by closing
// quotes or brackets), then whitespace, then an uppercase letter, digit or
// opening quote. A period does not end a sentence after a listed
// abbreviation or a single-letter initial, and never inside a number since
// "3.14" has no whitespace after the period.
type RuleSegmenter struct {
	abbreviations map[string]struct{}
}

// NewRuleSegmenter returns a RuleSegmenter with the default abbreviations
// plus any extra ones given (case-insensitive, trailing period optional).
func NewRuleSegmenter(extra ...string) *RuleSegmenter {
	abbr := make(map[string]struct{}, len(defaultAbbreviations)+len(extra))
	for _, a := range defaultAbbreviations {
		abbr[a] = struct{}{}
	}
	for _, a := range extra {
		abbr[strings.TrimSuffix(strings.ToLower(a), ".")] = struct{}{}
	}
	return &RuleSegmenter{abbreviations: abbr}
}

// Segment implements Segmenter.
func (s *RuleSegmenter) Segment(text string) []string {
	runes := []rune(text)
	var out []string
	start := 0

	emit := func(end int) {
		if t := strings.TrimSpace(string(runes[start:end])); t != "" {
			out = append(out, t)
		}
	}

	for i := 0; i < len(runes); i++ {
		if !isTerminal(runes[i]) {
			continue
		}

		// Consume the whole terminal run, e.g. `?!` or `."`.
		end := i + 1
		for end < len(runes) && (isTerminal(runes[end]) || isCloser(runes[end])) {
			end++
		}
		if end < len(runes) && !unicode.IsSpace(runes[end]) {
			i = end - 1
			continue
		}

		next := end
		for next < len(runes) && unicode.IsSpace(runes[next]) {
			next++
		}
		if next < len(runes) && !startsSentence(runes[next]) {
			i = end - 1
			continue
		}
		if runes[i] == '.' && s.isAbbreviation(runes, start, i) {
			i = end - 1
			continue
		}

		emit(end)
		start = next
		i = next - 1
	}

	if start < len(runes) {
		emit(len(runes))
	}
	return out
}

// isAbbreviation reports whether the word ending at the period runes[dot]
// is a known abbreviation or a single-letter initial.
func (s *RuleSegmenter) isAbbreviation(runes []rune, from, dot int) bool {
	begin := dot
	for begin > from && !unicode.IsSpace(runes[begin-1]) {
		begin--
	}
	word := strings.TrimLeftFunc(string(runes[begin:dot]), func(r rune) bool {
		return isOpener(r) || isCloser(r)
	})
	if word == "" {
		return false
	}
	if w := []rune(word); len(w) == 1 && unicode.IsUpper(w[0]) {
		return true
	}
	_, ok := s.abbreviations[strings.ToLower(word)]
	return ok
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isCloser(r rune) bool {
	switch r {
	case '"', '\'', ')', ']', '”', '’':
		return true
	}
	return false
}

func isOpener(r rune) bool {
	switch r {
	case '"', '\'', '(', '[', '“', '‘':
		return true
	}
	return false
}

func startsSentence(r rune) bool {
	return unicode.IsUpper(r) || unicode.IsDigit(r) || isOpener(r)
}
