// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch retrieves the raw prose a script is built from.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/content-robot/internal/httputil"
	"github.com/pdiddy/content-robot/pkg/types"
)

// ErrNotFound is returned when the search term matches no article or the
// article has no plain-text extract.
var ErrNotFound = errors.New("article not found")

// Fetcher returns raw source text for a search term.
type Fetcher interface {
	Fetch(ctx context.Context, searchTerm string) (string, error)
}

// wikipediaEndpointFormat builds the api.php URL for a language edition.
const wikipediaEndpointFormat = "https://%s.wikipedia.org/w/api.php"

const defaultUserAgent = "content-robot/0.1 (https://github.com/pdiddy/content-robot)"

// WikipediaFetcher reads the plain-text extract of an article through the
// MediaWiki query API. Section headings come back as "== Title ==" lines.
type WikipediaFetcher struct {
	Client *http.Client
	Config types.FetchConfig
	Logger *zap.Logger
}

// NewWikipediaFetcher builds a fetcher with an http.Client honouring cfg.Timeout.
func NewWikipediaFetcher(cfg types.FetchConfig, logger *zap.Logger) *WikipediaFetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WikipediaFetcher{
		Client: &http.Client{Timeout: cfg.Timeout},
		Config: cfg,
		Logger: logger.Named("fetch"),
	}
}

// wikiResponse is the formatversion=2 query response.
type wikiResponse struct {
	Query struct {
		Pages []wikiPage `json:"pages"`
	} `json:"query"`
	Error *struct {
		Code string `json:"code"`
		Info string `json:"info"`
	} `json:"error,omitempty"`
}

type wikiPage struct {
	PageID  int    `json:"pageid"`
	Title   string `json:"title"`
	Missing bool   `json:"missing"`
	Invalid bool   `json:"invalid"`
	Extract string `json:"extract"`
}

// Fetch implements Fetcher. Redirects are followed so "rome" resolves to
// the "Rome" article.
func (f *WikipediaFetcher) Fetch(ctx context.Context, searchTerm string) (string, error) {
	term := strings.TrimSpace(searchTerm)
	if term == "" {
		return "", fmt.Errorf("empty search term")
	}

	params := url.Values{
		"action":        {"query"},
		"prop":          {"extracts"},
		"explaintext":   {"1"},
		"redirects":     {"1"},
		"format":        {"json"},
		"formatversion": {"2"},
		"titles":        {term},
	}
	reqURL := f.endpoint() + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	ua := f.Config.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	req.Header.Set("User-Agent", ua)

	resp, err := httputil.DoWithRetry(ctx, f.Client, req, f.Config.MaxRetries)
	if err != nil {
		return "", fmt.Errorf("Wikipedia API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("Wikipedia API returned HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var wr wikiResponse
	if err := json.NewDecoder(resp.Body).Decode(&wr); err != nil {
		return "", fmt.Errorf("parsing Wikipedia response: %w", err)
	}
	if wr.Error != nil {
		return "", fmt.Errorf("Wikipedia API error %s: %s", wr.Error.Code, wr.Error.Info)
	}

	for _, page := range wr.Query.Pages {
		if page.Missing || page.Invalid {
			continue
		}
		if strings.TrimSpace(page.Extract) == "" {
			continue
		}
		f.Logger.Debug("fetched article",
			zap.String("term", term),
			zap.String("title", page.Title),
			zap.Int("page_id", page.PageID),
			zap.Int("bytes", len(page.Extract)))
		return page.Extract, nil
	}

	return "", fmt.Errorf("%q: %w", term, ErrNotFound)
}

func (f *WikipediaFetcher) endpoint() string {
	if f.Config.Endpoint != "" {
		return f.Config.Endpoint
	}
	lang := f.Config.Language
	if lang == "" {
		lang = "en"
	}
	return fmt.Sprintf(wikipediaEndpointFormat, lang)
}
