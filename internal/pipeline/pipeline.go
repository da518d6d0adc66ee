// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the text stages over one Content aggregate:
// load, fetch, sanitize, segment, limit, enrich, save.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/content-robot/internal/enrich"
	"github.com/pdiddy/content-robot/internal/fetch"
	"github.com/pdiddy/content-robot/internal/keywords"
	"github.com/pdiddy/content-robot/internal/sanitize"
	"github.com/pdiddy/content-robot/internal/segment"
	"github.com/pdiddy/content-robot/internal/state"
	"github.com/pdiddy/content-robot/pkg/types"
)

// Options tunes a pipeline run.
type Options struct {
	// MaximumSentences overrides the loaded aggregate's cap when non-nil.
	MaximumSentences *int

	Enrich types.EnrichConfig

	// Progress receives human-readable stage lines. May be nil.
	Progress io.Writer

	Logger *zap.Logger
}

// Pipeline owns the collaborators for one run.
type Pipeline struct {
	store     state.Store
	fetcher   fetch.Fetcher
	segmenter segment.Segmenter
	extractor keywords.Extractor
	opts      Options
	logger    *zap.Logger
	progress  io.Writer
}

// New assembles a pipeline.
func New(store state.Store, fetcher fetch.Fetcher, segmenter segment.Segmenter, extractor keywords.Extractor, opts Options) *Pipeline {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	progress := opts.Progress
	if progress == nil {
		progress = io.Discard
	}
	return &Pipeline{
		store:     store,
		fetcher:   fetcher,
		segmenter: segmenter,
		extractor: extractor,
		opts:      opts,
		logger:    logger.Named("pipeline"),
		progress:  progress,
	}
}

// Run executes every stage in order and saves the aggregate once, after all
// of them succeeded. Any failure aborts the run without saving and is
// returned as *StageError. Nothing is retried here; collaborators carry
// their own retry policy.
func (p *Pipeline) Run(ctx context.Context) (*types.Content, error) {
	started := time.Now()

	content, err := p.store.Load(ctx)
	if err != nil {
		return nil, stageErr(StageLoad, err)
	}
	if p.opts.MaximumSentences != nil {
		content.MaximumSentences = *p.opts.MaximumSentences
	}
	if err := content.Validate(); err != nil {
		return nil, stageErr(StageValidate, err)
	}
	log := p.logger.With(zap.String("search_term", content.SearchTerm), zap.String("prefix", string(content.Prefix)))

	fmt.Fprintf(p.progress, "fetching %q\n", content.SearchTerm)
	original, err := p.fetcher.Fetch(ctx, content.SearchTerm)
	if err != nil {
		return nil, stageErr(StageFetch, err)
	}
	content.SourceContentOriginal = original
	log.Info("content fetched", zap.Int("bytes", len(original)))

	content.SourceContentSanitized = sanitize.Sanitize(content.SourceContentOriginal)
	log.Debug("content sanitized", zap.Int("bytes", len(content.SourceContentSanitized)))

	segments := p.segmenter.Segment(content.SourceContentSanitized)
	content.Sentences = segment.ToSentences(segments)
	log.Debug("content segmented", zap.Int("sentences", len(content.Sentences)))

	content.Sentences = segment.Limit(content.Sentences, content.MaximumSentences)
	fmt.Fprintf(p.progress, "kept %d of %d sentences\n", len(content.Sentences), len(segments))

	enriched, err := enrich.Enrich(ctx, content.Sentences, p.extractor, enrich.Options{
		Mode:     p.opts.Enrich.Mode,
		Workers:  p.opts.Enrich.Workers,
		Progress: p.progress,
		Logger:   p.logger,
	})
	if err != nil {
		return nil, stageErr(StageEnrich, err)
	}
	content.Sentences = enriched

	if err := p.store.Save(ctx, content); err != nil {
		return nil, stageErr(StageSave, err)
	}

	log.Info("pipeline complete",
		zap.Int("sentences", len(content.Sentences)),
		zap.Duration("elapsed", time.Since(started)))
	fmt.Fprintf(p.progress, "saved %d sentences\n", len(content.Sentences))
	return content, nil
}
