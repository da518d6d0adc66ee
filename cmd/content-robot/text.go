package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/content-robot/internal/fetch"
	"github.com/pdiddy/content-robot/internal/keywords"
	"github.com/pdiddy/content-robot/internal/pipeline"
	"github.com/pdiddy/content-robot/internal/segment"
	"github.com/pdiddy/content-robot/internal/state"
)

var textCmd = &cobra.Command{
	Use:   "text",
	Short: "Fetch, clean, split and annotate the article for the saved search term",
	Long: `Text runs the text pipeline over the saved content state: it fetches the
Wikipedia article for the search term, removes blank lines, heading lines and
parenthetical asides, splits the result into sentences, keeps the first
--max-sentences of them, and asks the keyword extractor about each sentence
in turn. The state is saved only when every step succeeded; on failure the
previous state is left untouched and the failing stage is reported.`,
	RunE: runText,
}

func init() {
	textCmd.Flags().Int("max-sentences", 0, "override the saved maximum number of sentences")
	textCmd.Flags().String("segmenter", "", "sentence segmenter: rule or punkt (default rule)")
	textCmd.Flags().String("keywords", "", "keyword backend: watson or stoplist (default watson)")
	textCmd.Flags().String("mode", "", "enrichment mode: sequential or concurrent (default sequential)")
	textCmd.Flags().Int("workers", 0, "in-flight keyword calls in concurrent mode (default 4)")
	textCmd.Flags().String("language", "", "Wikipedia language edition (default en)")

	mustBind("segment.engine", textCmd.Flags().Lookup("segmenter"))
	mustBind("keywords.backend", textCmd.Flags().Lookup("keywords"))
	mustBind("enrich.mode", textCmd.Flags().Lookup("mode"))
	mustBind("enrich.workers", textCmd.Flags().Lookup("workers"))
	mustBind("fetch.language", textCmd.Flags().Lookup("language"))

	rootCmd.AddCommand(textCmd)
}

func runText(cmd *cobra.Command, args []string) error {
	cfg, err := loadPipelineConfig(viper.GetViper(), loadedSecrets)
	if err != nil {
		return err
	}

	store, err := state.Open(cfg.State)
	if err != nil {
		return err
	}
	defer state.Close(store)

	segmenter, err := segment.New(cfg.Segment.Engine)
	if err != nil {
		return err
	}
	extractor, err := keywords.New(cfg.Keywords, logger)
	if err != nil {
		return err
	}
	fetcher := fetch.NewWikipediaFetcher(cfg.Fetch, logger)

	opts := pipeline.Options{
		Enrich:   cfg.Enrich,
		Progress: cmd.OutOrStdout(),
		Logger:   logger,
	}
	if cmd.Flags().Changed("max-sentences") {
		n := maximumSentences(cmd)
		opts.MaximumSentences = &n
	}

	_, err = pipeline.New(store, fetcher, segmenter, extractor, opts).Run(cmd.Context())
	if errors.Is(err, state.ErrNotFound) {
		return fmt.Errorf("%w (run `content-robot init` first)", err)
	}
	return err
}
