package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "content-robot/0.1"). Wikipedia rejects requests without one.
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// MaxRetries bounds retries on HTTP 429/503 (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// FetchConfig holds settings for the content fetch stage.
type FetchConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Endpoint is the MediaWiki api.php URL. When empty it is derived from Language.
	Endpoint string `json:"endpoint" yaml:"endpoint" mapstructure:"endpoint"`

	// Language selects the Wikipedia edition (default "en").
	Language string `json:"language" yaml:"language" mapstructure:"language"`
}

// SegmentEngine identifies the sentence boundary detector.
type SegmentEngine string

const (
	SegmentRule  SegmentEngine = "rule"
	SegmentPunkt SegmentEngine = "punkt"
)

// SegmentConfig holds settings for the segmentation stage.
type SegmentConfig struct {
	// Engine selects the segmenter: rule or punkt.
	Engine SegmentEngine `json:"engine" yaml:"engine" mapstructure:"engine"`
}

// KeywordBackend identifies the keyword extraction collaborator.
type KeywordBackend string

const (
	KeywordsWatson   KeywordBackend = "watson"
	KeywordsStoplist KeywordBackend = "stoplist"
)

// KeywordsConfig holds settings for the keyword extraction collaborator.
type KeywordsConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Backend selects the extractor: watson or stoplist.
	Backend KeywordBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// URL is the Watson NLU instance URL.
	URL string `json:"url" yaml:"url" mapstructure:"url"`

	// APIKey authenticates against Watson NLU.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// Version is the Watson NLU API version date (default "2018-11-16").
	Version string `json:"version" yaml:"version" mapstructure:"version"`

	// Rate is the sustained number of extraction calls per second (0 = unlimited).
	Rate float64 `json:"rate" yaml:"rate" mapstructure:"rate"`

	// Burst is the token bucket size for Rate (default 1).
	Burst int `json:"burst" yaml:"burst" mapstructure:"burst"`

	// MaxKeywords caps keywords returned by the stoplist backend (default 5).
	MaxKeywords int `json:"max_keywords" yaml:"max_keywords" mapstructure:"max_keywords"`
}

// EnrichMode selects how sentences are submitted to the keyword extractor.
type EnrichMode string

const (
	// EnrichSequential submits sentence N+1 only after sentence N completed.
	EnrichSequential EnrichMode = "sequential"

	// EnrichConcurrent submits up to Workers sentences at once.
	EnrichConcurrent EnrichMode = "concurrent"
)

// EnrichConfig holds settings for the enrichment stage.
type EnrichConfig struct {
	Mode    EnrichMode `json:"mode" yaml:"mode" mapstructure:"mode"`
	Workers int        `json:"workers" yaml:"workers" mapstructure:"workers"`
}

// StateBackend identifies the persistence medium for Content.
type StateBackend string

const (
	StateFile   StateBackend = "file"
	StateSQLite StateBackend = "sqlite"
)

// StateConfig holds settings for the content state store.
type StateConfig struct {
	// Backend selects the store: file or sqlite.
	Backend StateBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// Path is the state file (.json/.yaml) or SQLite database path.
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// PipelineConfig groups all stage configurations for the text pipeline.
type PipelineConfig struct {
	State    StateConfig    `json:"state" yaml:"state" mapstructure:"state"`
	Fetch    FetchConfig    `json:"fetch" yaml:"fetch" mapstructure:"fetch"`
	Segment  SegmentConfig  `json:"segment" yaml:"segment" mapstructure:"segment"`
	Keywords KeywordsConfig `json:"keywords" yaml:"keywords" mapstructure:"keywords"`
	Enrich   EnrichConfig   `json:"enrich" yaml:"enrich" mapstructure:"enrich"`
}
