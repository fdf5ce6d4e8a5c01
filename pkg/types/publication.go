// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data structures shared across pipeline stages.
package types

// Position classifies where the subject researcher appears in a paper's
// author list. The empty value means no listed author matched.
type Position string

const (
	PositionFirst  Position = "first"
	PositionLast   Position = "last"
	PositionMiddle Position = "middle"
)

// Leadership reports whether the position counts toward the U-index
// (first or last author).
func (p Position) Leadership() bool {
	return p == PositionFirst || p == PositionLast
}

// Publication is one record returned by the publication source.
type Publication struct {
	// PMID is the PubMed identifier for the article.
	PMID string `json:"pmid" yaml:"pmid"`

	// Title is the article title. May be empty for partial records.
	Title string `json:"title" yaml:"title"`

	// Year is the publication year as reported by the source. May be empty.
	Year string `json:"year" yaml:"year"`

	// DOI is the article's DOI as reported by the source, or nil when the
	// record carries none. A nil DOI never participates in the citation join.
	DOI *string `json:"doi" yaml:"doi"`

	// Position is the subject researcher's authorship position.
	Position Position `json:"position" yaml:"position"`
}

// QualifyingPaper is a first/last-authored publication with a resolved
// citation count.
type QualifyingPaper struct {
	Title     string   `json:"title" yaml:"title"`
	Year      string   `json:"year" yaml:"year"`
	Position  Position `json:"position" yaml:"position"`
	Citations int      `json:"citations" yaml:"citations"`
	DOI       string   `json:"doi" yaml:"doi"`
	PMID      string   `json:"pmid" yaml:"pmid"`
}

// UnmatchedPaper is a first/last-authored publication whose citation count
// could not be resolved (no DOI, or DOI unknown to the citation source).
type UnmatchedPaper struct {
	Title    string   `json:"title" yaml:"title"`
	Year     string   `json:"year" yaml:"year"`
	Position Position `json:"position" yaml:"position"`
	DOI      *string  `json:"doi" yaml:"doi"`
	PMID     string   `json:"pmid" yaml:"pmid"`
}

// Report is the full result of one U-index computation. It is the unit
// stored in the cache and rendered by the CLI.
type Report struct {
	// Author is the query name the report was computed for.
	Author string `json:"author" yaml:"author"`

	// TotalPapers counts every publication the source returned.
	TotalPapers int `json:"total_papers" yaml:"total_papers"`

	// QualifyingCount counts first/last-authored publications, matched or not.
	QualifyingCount int `json:"qualifying_count" yaml:"qualifying_count"`

	// QualifyingPapers holds the matched papers, sorted by citations descending.
	QualifyingPapers []QualifyingPaper `json:"qualifying_papers" yaml:"qualifying_papers"`

	// UnmatchedCount counts qualifying papers without citation data.
	UnmatchedCount int `json:"unmatched_count" yaml:"unmatched_count"`

	// UnmatchedPapers lists the qualifying papers without citation data.
	UnmatchedPapers []UnmatchedPaper `json:"unmatched_papers" yaml:"unmatched_papers"`

	// UIndex is the largest U such that the U most-cited qualifying papers
	// each have at least U citations.
	UIndex int `json:"u_index" yaml:"u_index"`
}
