// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package openalex fetches citation counts from the OpenAlex works API.
package openalex

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/uindex/internal/doi"
	"github.com/pdiddy/uindex/internal/httputil"
	"github.com/pdiddy/uindex/pkg/types"
)

// openAlexBase is the OpenAlex API root. Declared as a var so tests can
// substitute an httptest server.
var openAlexBase = "https://api.openalex.org"

const defaultBatchSize = 50

// Client looks up citation counts by DOI.
type Client struct {
	httpClient *http.Client
	cfg        types.OpenAlexConfig
}

// NewClient returns a Client configured per cfg.
func NewClient(httpClient *http.Client, cfg types.OpenAlexConfig) *Client {
	return &Client{httpClient: httpClient, cfg: cfg}
}

// CitationsByDOIs returns a map from normalized DOI to citation count for
// the given DOIs. Input DOIs may be raw (mixed case, resolver-wrapped); the
// returned keys are always normalized. DOIs unknown to OpenAlex are omitted
// from the result, which is not an error. Lookups are issued sequentially
// in fixed-size batches; an empty input makes no requests.
func (c *Client) CitationsByDOIs(ctx context.Context, dois []string) (map[string]int, error) {
	results := make(map[string]int)
	if len(dois) == 0 {
		return results, nil
	}

	batchSize := c.cfg.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	for start := 0; start < len(dois); start += batchSize {
		end := start + batchSize
		if end > len(dois) {
			end = len(dois)
		}
		if err := c.fetchBatch(ctx, dois[start:end], results); err != nil {
			return nil, err
		}
	}

	return results, nil
}

// fetchBatch queries one batch of DOIs and merges counts into results.
func (c *Client) fetchBatch(ctx context.Context, dois []string, results map[string]int) error {
	// OpenAlex filter syntax ORs values with a pipe: doi:10.1000/x|10.1000/y.
	params := url.Values{
		"filter":   {"doi:" + strings.Join(dois, "|")},
		"select":   {"doi,cited_by_count"},
		"per-page": {fmt.Sprintf("%d", len(dois))},
	}
	if c.cfg.Email != "" {
		params.Set("mailto", c.cfg.Email)
	}

	reqURL := openAlexBase + "/works?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.httpClient, req, 0)
	if err != nil {
		return fmt.Errorf("OpenAlex API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("OpenAlex API returned HTTP %d", resp.StatusCode)
	}

	var wr worksResponse
	if err := json.NewDecoder(resp.Body).Decode(&wr); err != nil {
		return fmt.Errorf("parsing OpenAlex response: %w", err)
	}

	for _, work := range wr.Results {
		// OpenAlex returns the DOI as a resolver URL; reduce it to the
		// canonical join key.
		if work.DOI == "" {
			continue
		}
		results[doi.Normalize(work.DOI)] = work.CitedByCount
	}

	return nil
}

// OpenAlex works API JSON structures.
type worksResponse struct {
	Results []work `json:"results"`
}

type work struct {
	DOI          string `json:"doi"`
	CitedByCount int    `json:"cited_by_count"`
}
