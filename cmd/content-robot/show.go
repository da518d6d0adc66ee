package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/content-robot/internal/state"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved content state",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadPipelineConfig(viper.GetViper(), loadedSecrets)
		if err != nil {
			return err
		}
		store, err := state.Open(cfg.State)
		if err != nil {
			return err
		}
		defer state.Close(store)

		content, err := store.Load(cmd.Context())
		if err != nil {
			return err
		}

		asYAML, _ := cmd.Flags().GetBool("yaml")
		data, err := state.Marshal(content, asYAML)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), string(data))
		return err
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved snapshots (sqlite state backend only)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadPipelineConfig(viper.GetViper(), loadedSecrets)
		if err != nil {
			return err
		}
		store, err := state.Open(cfg.State)
		if err != nil {
			return err
		}
		defer state.Close(store)

		sq, ok := store.(*state.SQLiteStore)
		if !ok {
			return fmt.Errorf("history requires the sqlite state backend (--state-backend sqlite)")
		}
		snaps, err := sq.History(cmd.Context())
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		for _, s := range snaps {
			fmt.Fprintf(w, "%s  %s  %-15s %-30q %d sentences\n",
				s.CreatedAt.Local().Format("2006-01-02 15:04:05"), s.ID, s.Prefix, s.SearchTerm, s.Sentences)
		}
		return nil
	},
}

func init() {
	showCmd.Flags().Bool("yaml", false, "print YAML instead of JSON")

	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(historyCmd)
}
