// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline orchestrates one U-index run: cache check, publication
// fetch, citation lookup, join and reduction, cache write.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/pdiddy/uindex/internal/uindex"
	"github.com/pdiddy/uindex/pkg/types"
)

// PublicationSource lists an author's publications with inferred positions.
type PublicationSource interface {
	FetchAuthorPapers(ctx context.Context, authorName string) ([]types.Publication, error)
}

// CitationSource maps DOIs to citation counts, keyed by normalized DOI.
type CitationSource interface {
	CitationsByDOIs(ctx context.Context, dois []string) (map[string]int, error)
}

// Store is the result cache. Get reports absence via its second return.
type Store interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
}

// Options controls cache behavior for a run.
type Options struct {
	// SkipCache disables both the cache read and the cache write.
	SkipCache bool

	// Refresh bypasses the cache read but still writes the fresh result.
	Refresh bool
}

// CacheKey returns the cache key for an author name.
func CacheKey(author string) string {
	return "author:" + author
}

// Run computes the report for author, consulting the cache per opts. The
// second return reports whether the result came from the cache. Any
// collaborator failure aborts the run; there is no partial result.
func Run(ctx context.Context, author string, pubs PublicationSource, cits CitationSource, store Store, opts Options, progress io.Writer) (*types.Report, bool, error) {
	key := CacheKey(author)

	if store != nil && !opts.SkipCache && !opts.Refresh {
		data, ok, err := store.Get(key)
		if err != nil {
			return nil, false, err
		}
		if ok {
			var r types.Report
			if err := json.Unmarshal(data, &r); err != nil {
				return nil, false, fmt.Errorf("decoding cached report: %w", err)
			}
			fmt.Fprintf(progress, "Using cached result for %q\n", author)
			return &r, true, nil
		}
	}

	fmt.Fprintf(progress, "Fetching publications for %q...\n", author)
	publications, err := pubs.FetchAuthorPapers(ctx, author)
	if err != nil {
		return nil, false, err
	}

	dois := uindex.LeadershipDOIs(publications)
	fmt.Fprintf(progress, "Looking up citations for %d DOIs...\n", len(dois))
	citations, err := cits.CitationsByDOIs(ctx, dois)
	if err != nil {
		return nil, false, err
	}

	r := uindex.BuildReport(author, publications, citations)

	if store != nil && !opts.SkipCache {
		data, err := json.Marshal(r)
		if err != nil {
			return nil, false, fmt.Errorf("encoding report: %w", err)
		}
		if err := store.Set(key, data); err != nil {
			return nil, false, err
		}
	}

	return r, false, nil
}
