// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Prefix is the phrasing template a script is built around. It is a closed
// set; free text is rejected by ParsePrefix and Content.Validate.
type Prefix string

const (
	PrefixWhatIs    Prefix = "What is"
	PrefixWhoIs     Prefix = "Who is"
	PrefixHistoryOf Prefix = "The history of"
)

// Prefixes lists the accepted prefixes in prompt order.
var Prefixes = []Prefix{PrefixWhatIs, PrefixWhoIs, PrefixHistoryOf}

// Valid reports whether p is one of Prefixes.
func (p Prefix) Valid() bool {
	for _, known := range Prefixes {
		if p == known {
			return true
		}
	}
	return false
}

// ParsePrefix accepts either the prefix text (case-insensitive) or its
// 1-based position in Prefixes.
func ParsePrefix(s string) (Prefix, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > len(Prefixes) {
			return "", fmt.Errorf("prefix index %d out of range [1,%d]", n, len(Prefixes))
		}
		return Prefixes[n-1], nil
	}
	for _, p := range Prefixes {
		if strings.EqualFold(s, string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown prefix %q", s)
}

// Sentence is one segmented unit of the sanitized source text.
type Sentence struct {
	// Text is the sentence as produced by the segmenter. Never modified afterwards.
	Text string `json:"text" yaml:"text"`

	// Keywords is filled once by the enrichment stage, in extractor order.
	Keywords []string `json:"keywords" yaml:"keywords"`

	// Images is reserved for downstream stages and is never populated here.
	Images []string `json:"images" yaml:"images"`
}

// NewSentence returns a sentence with empty, non-nil keyword and image lists.
func NewSentence(text string) Sentence {
	return Sentence{Text: text, Keywords: []string{}, Images: []string{}}
}

// Content is the aggregate threaded through the text pipeline and persisted
// between runs. Field names match the content.json layout of earlier runs.
type Content struct {
	SearchTerm             string     `json:"searchTerm" yaml:"searchTerm" validate:"required"`
	Prefix                 Prefix     `json:"prefix" yaml:"prefix" validate:"prefix"`
	SourceContentOriginal  string     `json:"sourceContentOriginal" yaml:"sourceContentOriginal"`
	SourceContentSanitized string     `json:"sourceContentSanitized" yaml:"sourceContentSanitized"`
	MaximumSentences       int        `json:"maximumSentences" yaml:"maximumSentences" validate:"gte=0"`
	Sentences              []Sentence `json:"sentences" yaml:"sentences"`
}

// Normalize replaces nil slices with empty ones so a decoded aggregate
// compares equal to the one that was saved.
func (c *Content) Normalize() {
	if c.Sentences == nil {
		c.Sentences = []Sentence{}
	}
	for i := range c.Sentences {
		if c.Sentences[i].Keywords == nil {
			c.Sentences[i].Keywords = []string{}
		}
		if c.Sentences[i].Images == nil {
			c.Sentences[i].Images = []string{}
		}
	}
}
