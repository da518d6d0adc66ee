package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/content-robot/internal/prompt"
	"github.com/pdiddy/content-robot/internal/state"
	"github.com/pdiddy/content-robot/pkg/types"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Record the search term and prefix for a new script",
	Long: `Init starts a new content state. The search term and prefix come from
flags; any that are missing are asked for on the terminal. The prefix is one
of "What is", "Who is" or "The history of" and may be given by text or by
its number (1-3). Any previous state is replaced.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().String("term", "", "Wikipedia search term")
	initCmd.Flags().String("prefix", "", `phrasing prefix: 1 "What is", 2 "Who is", 3 "The history of"`)
	initCmd.Flags().Int("max-sentences", 0, "maximum sentences kept by the text stage (default content.maximum_sentences, 7)")

	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	term, _ := cmd.Flags().GetString("term")
	prefixArg, _ := cmd.Flags().GetString("prefix")

	p := prompt.New(cmd.InOrStdin(), cmd.OutOrStdout())

	if term == "" {
		t, err := p.SearchTerm()
		if err != nil {
			return fmt.Errorf("reading search term: %w", err)
		}
		term = t
	}

	var prefix types.Prefix
	if prefixArg != "" {
		parsed, err := types.ParsePrefix(prefixArg)
		if err != nil {
			return err
		}
		prefix = parsed
	} else {
		chosen, err := p.Prefix()
		if err != nil {
			return fmt.Errorf("reading prefix: %w", err)
		}
		prefix = chosen
	}

	content := &types.Content{
		SearchTerm:       term,
		Prefix:           prefix,
		MaximumSentences: maximumSentences(cmd),
	}
	content.Normalize()
	if err := content.Validate(); err != nil {
		return err
	}

	cfg, err := loadPipelineConfig(viper.GetViper(), loadedSecrets)
	if err != nil {
		return err
	}
	store, err := state.Open(cfg.State)
	if err != nil {
		return err
	}
	defer state.Close(store)

	if err := store.Save(cmd.Context(), content); err != nil {
		return fmt.Errorf("saving content: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "saved: %s %s (max %d sentences)\n", content.Prefix, content.SearchTerm, content.MaximumSentences)
	return nil
}
