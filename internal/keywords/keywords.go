// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package keywords extracts keyword annotations from single sentences.
// Extractors are called once per sentence and return keywords in the order
// the backend ranks them, duplicates included.
package keywords

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pdiddy/content-robot/pkg/types"
)

// Extractor returns the keywords of one sentence.
type Extractor interface {
	Extract(ctx context.Context, text string) ([]string, error)
}

// ExtractorFunc adapts a function to Extractor.
type ExtractorFunc func(ctx context.Context, text string) ([]string, error)

// Extract implements Extractor.
func (f ExtractorFunc) Extract(ctx context.Context, text string) ([]string, error) {
	return f(ctx, text)
}

// New builds the extractor selected by cfg.Backend. The Watson backend is
// wrapped in a Guarded extractor which owns pacing, retries and the circuit
// breaker, so the HTTP client underneath makes a single attempt per call.
func New(cfg types.KeywordsConfig, logger *zap.Logger) (Extractor, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch cfg.Backend {
	case "", types.KeywordsWatson:
		if cfg.URL == "" {
			return nil, fmt.Errorf("watson backend requires keywords.url (or the watson-nlu-url secret)")
		}
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("watson backend requires keywords.api_key (or the watson-nlu-api-key secret)")
		}
		w := NewWatsonExtractor(cfg)
		w.MaxRetries = -1
		return NewGuarded(w, GuardConfig{
			Name:       "watson-nlu",
			Rate:       cfg.Rate,
			Burst:      cfg.Burst,
			MaxRetries: cfg.MaxRetries,
		}, logger), nil
	case types.KeywordsStoplist:
		return NewStoplistExtractor(cfg.MaxKeywords), nil
	default:
		return nil, fmt.Errorf("unknown keywords backend %q", cfg.Backend)
	}
}
