// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the content-robot CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/content-robot/internal/logging"
	"github.com/pdiddy/content-robot/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from the secrets directory at startup.
var loadedSecrets = secrets.Secrets{}

// logger is built in PersistentPreRunE from the --verbose flag.
var logger = zap.NewNop()

// rootCmd is the base command for the content-robot CLI.
var rootCmd = &cobra.Command{
	Use:   "content-robot",
	Short: "Turn a topic into keyword-annotated sentences for video scripts",
	Long: `content-robot prepares the text of a short explainer script. init records a
search term and phrasing prefix; text fetches the Wikipedia article for the
term, strips headings and parenthetical asides, splits it into sentences,
keeps the first few, and annotates each with keywords. The result is saved
as the content state that later stages read.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		l, err := logging.New(verbose)
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		logger = l

		s, err := secrets.Load(viper.GetString("secrets_dir"))
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := s.Keys()
			sort.Strings(keys)
			logger.Debug("loaded secrets", zap.Strings("keys", keys))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./content-robot.yaml or ~/.config/content-robot/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log stage details to stderr")
	rootCmd.PersistentFlags().String("state", "", "state file (.json/.yaml) or SQLite database (default content/content.json)")
	rootCmd.PersistentFlags().String("state-backend", "", "state store: file or sqlite (default file)")
	rootCmd.PersistentFlags().String("secrets-dir", ".secrets", "directory of credential files")

	mustBind("state.path", rootCmd.PersistentFlags().Lookup("state"))
	mustBind("state.backend", rootCmd.PersistentFlags().Lookup("state-backend"))
	mustBind("secrets_dir", rootCmd.PersistentFlags().Lookup("secrets-dir"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("content-robot")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "content-robot"))
		}
	}

	viper.SetEnvPrefix("CONTENT_ROBOT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
