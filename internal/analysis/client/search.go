// Package client provides connectors to the Google APIs the analysis
// pipeline relies on: Programmable Search and Fact Check Tools.
package client

import (
	"context"
	"fmt"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"

	"truthscope_backend/internal/analysis/transport"
	"truthscope_backend/platform/logger"
	"truthscope_backend/platform/sanitize"
)

// Search query defaults. The product targets Indian news coverage, so
// results are biased to India and restricted to English and Hindi pages.
const (
	searchGeolocation  = "in"
	searchLanguages    = "lang_en|lang_hi"
	searchResultCount  = 10
	searchMaxQuerySize = 300
)

// SearchClient wraps the Programmable Search Engine API.
type SearchClient struct {
	service  *customsearch.Service
	engineID string
	log      *logger.Logger
}

// SearchConfig holds the Programmable Search credentials.
type SearchConfig struct {
	APIKey   string
	EngineID string
}

// NewSearchClient creates a Programmable Search connector. Returns nil
// (connector disabled) when no API key is configured.
func NewSearchClient(ctx context.Context, cfg SearchConfig, log *logger.Logger) (*SearchClient, error) {
	if cfg.APIKey == "" || cfg.EngineID == "" {
		return nil, nil
	}

	service, err := customsearch.NewService(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("create customsearch service: %w", err)
	}

	return &SearchClient{service: service, engineID: cfg.EngineID, log: log}, nil
}

// Search runs a news search for the given query and returns the top hits.
func (c *SearchClient) Search(ctx context.Context, query string) ([]transport.SearchResult, error) {
	query = sanitize.Truncate(sanitize.CollapseWhitespace(query), searchMaxQuerySize)
	if query == "" {
		return nil, nil
	}

	resp, err := c.service.Cse.List().
		Q(query).
		Cx(c.engineID).
		Gl(searchGeolocation).
		Lr(searchLanguages).
		Num(searchResultCount).
		Context(ctx).
		Do()
	if err != nil {
		c.log.UpstreamError("customsearch", "search", err)
		return nil, fmt.Errorf("custom search: %w", err)
	}

	results := make([]transport.SearchResult, 0, len(resp.Items))
	for _, item := range resp.Items {
		results = append(results, transport.SearchResult{
			Title:   item.Title,
			Link:    item.Link,
			Snippet: item.Snippet,
		})
	}
	return results, nil
}
