// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package enrich attaches extracted keywords to every sentence.
package enrich

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/content-robot/internal/keywords"
	"github.com/pdiddy/content-robot/pkg/types"
)

const defaultWorkers = 4

// Options controls how sentences are submitted to the extractor.
type Options struct {
	// Mode is EnrichSequential (default) or EnrichConcurrent.
	Mode types.EnrichMode

	// Workers bounds in-flight calls in concurrent mode (default 4).
	Workers int

	// Progress receives one line per enriched sentence. May be nil.
	Progress io.Writer

	Logger *zap.Logger
}

// Error reports the sentence whose extraction failed.
type Error struct {
	Index int
	Text  string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("sentence %d %q: %v", e.Index+1, e.Text, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Enrich returns a copy of sentences with Keywords set from ex. The input
// slice is not modified.
//
// In sequential mode sentence N+1 is not submitted until the call for
// sentence N returned, so calls complete in sentence order and never
// overlap. Concurrent mode overlaps up to Workers calls; results are still
// stored by index so the output order matches the input.
//
// The first failure aborts the remaining work and is returned as *Error;
// no partially enriched slice is returned.
func Enrich(ctx context.Context, sentences []types.Sentence, ex keywords.Extractor, opts Options) ([]types.Sentence, error) {
	out := make([]types.Sentence, len(sentences))
	copy(out, sentences)

	progress := opts.Progress
	if progress == nil {
		progress = io.Discard
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("enrich")

	switch opts.Mode {
	case "", types.EnrichSequential:
		for i := range out {
			if err := ctx.Err(); err != nil {
				return nil, &Error{Index: i, Text: out[i].Text, Err: err}
			}
			if err := enrichOne(ctx, out, i, ex); err != nil {
				return nil, err
			}
			fmt.Fprintf(progress, "enriched %d/%d\n", i+1, len(out))
			logger.Debug("sentence enriched", zap.Int("index", i), zap.Strings("keywords", out[i].Keywords))
		}
	case types.EnrichConcurrent:
		workers := opts.Workers
		if workers <= 0 {
			workers = defaultWorkers
		}
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for i := range out {
			i := i
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return &Error{Index: i, Text: out[i].Text, Err: err}
				}
				return enrichOne(gctx, out, i, ex)
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		fmt.Fprintf(progress, "enriched %d/%d\n", len(out), len(out))
	default:
		return nil, fmt.Errorf("unknown enrich mode %q", opts.Mode)
	}

	return out, nil
}

// enrichOne fills out[i].Keywords. Each goroutine writes only its own index.
func enrichOne(ctx context.Context, out []types.Sentence, i int, ex keywords.Extractor) error {
	kw, err := ex.Extract(ctx, out[i].Text)
	if err != nil {
		return &Error{Index: i, Text: out[i].Text, Err: err}
	}
	if kw == nil {
		kw = []string{}
	}
	out[i].Keywords = kw
	if out[i].Images == nil {
		out[i].Images = []string{}
	}
	return nil
}
