// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package segment splits sanitized text into sentences and bounds how many
// of them the rest of the pipeline sees.
package segment

import (
	"fmt"
	"strings"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"

	"github.com/pdiddy/content-robot/pkg/types"
)

// Segmenter splits text into ordered, trimmed sentences. Empty input yields
// no sentences.
type Segmenter interface {
	Segment(text string) []string
}

// New returns the segmenter for engine. An empty engine selects the rule
// segmenter.
func New(engine types.SegmentEngine) (Segmenter, error) {
	switch engine {
	case "", types.SegmentRule:
		return NewRuleSegmenter(), nil
	case types.SegmentPunkt:
		return NewPunktSegmenter()
	default:
		return nil, fmt.Errorf("unknown segment engine %q", engine)
	}
}

// PunktSegmenter delegates boundary detection to the pre-trained English
// Punkt model.
type PunktSegmenter struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

// NewPunktSegmenter loads the English Punkt model.
func NewPunktSegmenter() (*PunktSegmenter, error) {
	tok, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("loading punkt model: %w", err)
	}
	return &PunktSegmenter{tokenizer: tok}, nil
}

// Segment implements Segmenter.
func (p *PunktSegmenter) Segment(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var out []string
	for _, s := range p.tokenizer.Tokenize(text) {
		if t := strings.TrimSpace(s.Text); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// ToSentences wraps each segment in a Sentence with empty keyword and image
// lists, preserving order.
func ToSentences(segments []string) []types.Sentence {
	out := make([]types.Sentence, 0, len(segments))
	for _, s := range segments {
		out = append(out, types.NewSentence(s))
	}
	return out
}

// Limit returns the first maximum sentences. Shorter input is returned as
// is and maximum <= 0 yields an empty slice. The input is not modified.
func Limit(in []types.Sentence, maximum int) []types.Sentence {
	if maximum <= 0 {
		return []types.Sentence{}
	}
	if len(in) <= maximum {
		return in
	}
	return in[:maximum:maximum]
}
