package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/content-robot/internal/secrets"
	"github.com/pdiddy/content-robot/pkg/types"
)

const (
	defaultTimeout          = 30 * time.Second
	defaultUserAgent        = "content-robot/0.1 (https://github.com/pdiddy/content-robot)"
	defaultMaximumSentences = 7
)

// setDefaults registers the value of every config key so Unmarshal and
// AutomaticEnv see them even without a config file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("state.backend", string(types.StateFile))
	v.SetDefault("state.path", "content/content.json")
	v.SetDefault("secrets_dir", ".secrets")

	v.SetDefault("fetch.endpoint", "")
	v.SetDefault("fetch.language", "en")
	v.SetDefault("fetch.timeout", defaultTimeout)
	v.SetDefault("fetch.user_agent", defaultUserAgent)
	v.SetDefault("fetch.max_retries", 5)

	v.SetDefault("segment.engine", string(types.SegmentRule))

	v.SetDefault("keywords.backend", string(types.KeywordsWatson))
	v.SetDefault("keywords.url", "")
	v.SetDefault("keywords.api_key", "")
	v.SetDefault("keywords.version", "2018-11-16")
	v.SetDefault("keywords.timeout", defaultTimeout)
	v.SetDefault("keywords.user_agent", defaultUserAgent)
	v.SetDefault("keywords.max_retries", 3)
	v.SetDefault("keywords.rate", 2.0)
	v.SetDefault("keywords.burst", 1)
	v.SetDefault("keywords.max_keywords", 5)

	v.SetDefault("enrich.mode", string(types.EnrichSequential))
	v.SetDefault("enrich.workers", 4)

	v.SetDefault("content.maximum_sentences", defaultMaximumSentences)
}

// mustBind binds a flag to a viper key. Binding only fails for a nil flag,
// which is a programming error.
func mustBind(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("binding %s: %v", key, err))
	}
}

// maximumSentences returns --max-sentences when given, otherwise the
// configured content.maximum_sentences.
func maximumSentences(cmd *cobra.Command) int {
	if cmd.Flags().Changed("max-sentences") {
		n, _ := cmd.Flags().GetInt("max-sentences")
		return n
	}
	return viper.GetInt("content.maximum_sentences")
}

// loadPipelineConfig decodes the merged flag/env/file configuration and
// fills Watson credentials from the secrets directory when not configured.
func loadPipelineConfig(v *viper.Viper, s secrets.Secrets) (types.PipelineConfig, error) {
	var cfg types.PipelineConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return types.PipelineConfig{}, fmt.Errorf("decoding configuration: %w", err)
	}
	cfg.Keywords.APIKey = s.Default(secrets.WatsonAPIKey, cfg.Keywords.APIKey)
	cfg.Keywords.URL = s.Default(secrets.WatsonURL, cfg.Keywords.URL)
	return cfg, nil
}
