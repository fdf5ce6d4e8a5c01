// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pubmed fetches an author's publications from the NCBI E-utilities
// API and infers the author's position on each paper.
package pubmed

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/time/rate"

	"github.com/pdiddy/uindex/internal/httputil"
	"github.com/pdiddy/uindex/pkg/types"
)

// eutilsBase is the E-utilities endpoint. Declared as a var so tests can
// substitute an httptest server.
var eutilsBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

const defaultMaxResults = 1000

// NCBI allows 3 requests per second without an API key, 10 with one.
const (
	anonymousRPS = 3
	keyedRPS     = 10
)

// Client queries PubMed for author publications.
type Client struct {
	httpClient *http.Client
	cfg        types.PubMedConfig
	limiter    *rate.Limiter
}

// NewClient returns a Client configured per cfg. The request rate defaults
// to NCBI's published limit for the credential in use.
func NewClient(httpClient *http.Client, cfg types.PubMedConfig) *Client {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		if cfg.APIKey != "" {
			rps = keyedRPS
		} else {
			rps = anonymousRPS
		}
	}
	return &Client{
		httpClient: httpClient,
		cfg:        cfg,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// FetchAuthorPapers returns every publication PubMed lists for the author,
// with the author's inferred position on each. An author with no search
// hits yields an empty slice and no second request.
func (c *Client) FetchAuthorPapers(ctx context.Context, authorName string) ([]types.Publication, error) {
	pmids, err := c.searchAuthor(ctx, authorName)
	if err != nil {
		return nil, err
	}
	if len(pmids) == 0 {
		return []types.Publication{}, nil
	}
	return c.fetchPapers(ctx, pmids, authorName)
}

// searchAuthor runs esearch and returns the matching PMIDs.
func (c *Client) searchAuthor(ctx context.Context, authorName string) ([]string, error) {
	maxResults := c.cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	params := url.Values{
		"db":      {"pubmed"},
		"term":    {authorName + "[Author]"},
		"retmax":  {fmt.Sprintf("%d", maxResults)},
		"retmode": {"xml"},
	}
	if c.cfg.APIKey != "" {
		params.Set("api_key", c.cfg.APIKey)
	}

	body, err := c.get(ctx, eutilsBase+"/esearch.fcgi?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var result esearchResult
	if err := xml.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parsing esearch response: %w", err)
	}

	var pmids []string
	for _, id := range result.IDs {
		if id != "" {
			pmids = append(pmids, id)
		}
	}
	return pmids, nil
}

// fetchPapers runs efetch for the PMIDs and parses each article.
func (c *Client) fetchPapers(ctx context.Context, pmids []string, authorName string) ([]types.Publication, error) {
	params := url.Values{
		"db":      {"pubmed"},
		"id":      {strings.Join(pmids, ",")},
		"retmode": {"xml"},
	}
	if c.cfg.APIKey != "" {
		params.Set("api_key", c.cfg.APIKey)
	}

	body, err := c.get(ctx, eutilsBase+"/efetch.fcgi?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var set efetchResult
	if err := xml.Unmarshal(body, &set); err != nil {
		return nil, fmt.Errorf("parsing efetch response: %w", err)
	}

	papers := make([]types.Publication, 0, len(set.Articles))
	for _, article := range set.Articles {
		papers = append(papers, parseArticle(article, authorName))
	}
	return papers, nil
}

// get performs a rate-limited GET and returns the response body. Non-200
// responses are errors; 429s are retried with backoff before that.
func (c *Client) get(ctx context.Context, reqURL string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.httpClient, req, 0)
	if err != nil {
		return nil, fmt.Errorf("PubMed API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("PubMed API returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading PubMed response: %w", err)
	}
	return body, nil
}

// parseArticle maps one PubmedArticle element to a Publication. Missing
// fields become empty values; a missing DOI is nil, never "".
func parseArticle(article pubmedArticle, authorName string) types.Publication {
	cit := article.Citation

	var doi *string
	for _, eloc := range cit.Article.ELocationIDs {
		if eloc.EIdType == "doi" && eloc.Value != "" {
			v := eloc.Value
			doi = &v
			break
		}
	}

	year := cit.DateCompletedYear
	if year == "" {
		year = cit.Article.PubDateYear
	}

	return types.Publication{
		PMID:     cit.PMID,
		Title:    cit.Article.Title,
		Year:     year,
		DOI:      doi,
		Position: authorPosition(cit.Article.Authors, authorName),
	}
}

// authorPosition finds the query author in the listed authors and classifies
// the match by list index. A listed author matches when every whitespace-
// delimited part of the query name appears as a substring of
// "lastname forename", case-insensitively. The first matching author decides;
// a single-author list that matches is always "first". No match, or no
// author list at all, yields the unknown position.
//
// The substring rule can false-positive on common surnames; that looseness
// is part of the contract.
func authorPosition(authors []authorElem, authorName string) types.Position {
	if len(authors) == 0 {
		return ""
	}

	nameParts := strings.Fields(strings.ToLower(authorName))

	for i, a := range authors {
		haystack := strings.ToLower(a.LastName) + " " + strings.ToLower(a.ForeName)

		matched := true
		for _, part := range nameParts {
			if !strings.Contains(haystack, part) {
				matched = false
				break
			}
		}
		if !matched {
			continue
		}

		switch i {
		case 0:
			return types.PositionFirst
		case len(authors) - 1:
			return types.PositionLast
		default:
			return types.PositionMiddle
		}
	}
	return ""
}

// E-utilities XML structures.
type esearchResult struct {
	IDs []string `xml:"IdList>Id"`
}

type efetchResult struct {
	Articles []pubmedArticle `xml:"PubmedArticle"`
}

type pubmedArticle struct {
	Citation medlineCitation `xml:"MedlineCitation"`
}

type medlineCitation struct {
	PMID              string      `xml:"PMID"`
	DateCompletedYear string      `xml:"DateCompleted>Year"`
	Article           articleElem `xml:"Article"`
}

type articleElem struct {
	Title        string        `xml:"ArticleTitle"`
	Authors      []authorElem  `xml:"AuthorList>Author"`
	ELocationIDs []eLocationID `xml:"ELocationID"`
	PubDateYear  string        `xml:"Journal>JournalIssue>PubDate>Year"`
}

type authorElem struct {
	LastName string `xml:"LastName"`
	ForeName string `xml:"ForeName"`
}

type eLocationID struct {
	EIdType string `xml:"EIdType,attr"`
	Value   string `xml:",chardata"`
}
