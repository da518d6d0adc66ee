// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package keywords

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pdiddy/content-robot/internal/httputil"
	"github.com/pdiddy/content-robot/pkg/types"
)

const defaultWatsonVersion = "2018-11-16"

// APIError is a non-200 response from a keyword service.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("keyword API returned HTTP %d: %s", e.Status, e.Body)
}

// Temporary reports whether retrying the same request may succeed.
func (e *APIError) Temporary() bool {
	return e.Status == http.StatusTooManyRequests || e.Status >= 500
}

// WatsonExtractor calls the IBM Watson Natural Language Understanding
// analyze endpoint with the keywords feature.
type WatsonExtractor struct {
	Client     *http.Client
	URL        string
	APIKey     string
	Version    string
	MaxRetries int
}

// NewWatsonExtractor builds an extractor from cfg.
func NewWatsonExtractor(cfg types.KeywordsConfig) *WatsonExtractor {
	version := cfg.Version
	if version == "" {
		version = defaultWatsonVersion
	}
	return &WatsonExtractor{
		Client:     &http.Client{Timeout: cfg.Timeout},
		URL:        strings.TrimSuffix(cfg.URL, "/"),
		APIKey:     cfg.APIKey,
		Version:    version,
		MaxRetries: cfg.MaxRetries,
	}
}

type watsonRequest struct {
	Text     string         `json:"text"`
	Features watsonFeatures `json:"features"`
}

type watsonFeatures struct {
	Keywords struct{} `json:"keywords"`
}

type watsonResponse struct {
	Keywords []struct {
		Text      string  `json:"text"`
		Relevance float64 `json:"relevance"`
	} `json:"keywords"`
}

// Extract implements Extractor.
func (w *WatsonExtractor) Extract(ctx context.Context, text string) ([]string, error) {
	body, err := json.Marshal(watsonRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	reqURL := fmt.Sprintf("%s/v1/analyze?version=%s", w.URL, w.Version)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth("apikey", w.APIKey)

	resp, err := httputil.DoWithRetry(ctx, w.Client, req, w.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("calling Watson NLU: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	var wr watsonResponse
	if err := json.NewDecoder(resp.Body).Decode(&wr); err != nil {
		return nil, fmt.Errorf("decoding Watson NLU response: %w", err)
	}

	out := make([]string, 0, len(wr.Keywords))
	for _, k := range wr.Keywords {
		out = append(out, k.Text)
	}
	return out, nil
}
