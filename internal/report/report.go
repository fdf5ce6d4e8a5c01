// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders a computed Report as human-readable text, JSON,
// or YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/uindex/pkg/types"
)

const rule = 80

// FormatText writes the report as formatted console text: a summary block,
// the qualifying papers sorted by citations with outbound links, then the
// unmatched papers.
func FormatText(r *types.Report, w io.Writer) {
	fmt.Fprintf(w, "Author: %s\n", r.Author)
	fmt.Fprintf(w, "Qualifying papers (first/last author): %d\n", r.QualifyingCount)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "U-index: %d\n", r.UIndex)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Papers with citation data: %d\n", len(r.QualifyingPapers))
	fmt.Fprintf(w, "Unmatched (no DOI or not in OpenAlex): %d\n", r.UnmatchedCount)
	fmt.Fprintln(w)

	if len(r.QualifyingPapers) > 0 {
		fmt.Fprintln(w, strings.Repeat("=", rule))
		fmt.Fprintln(w, "QUALIFYING PAPERS (sorted by citations)")
		fmt.Fprintln(w, strings.Repeat("=", rule))
		for i, p := range r.QualifyingPapers {
			fmt.Fprintln(w)
			fmt.Fprintf(w, "%d. %s\n", i+1, p.Title)
			fmt.Fprintf(w, "   Year: %s | Position: %s author | Citations: %d\n", p.Year, p.Position, p.Citations)
			if p.PMID != "" {
				fmt.Fprintf(w, "   PubMed:   https://pubmed.ncbi.nlm.nih.gov/%s/\n", p.PMID)
			}
			if p.DOI != "" {
				fmt.Fprintf(w, "   OpenAlex: https://openalex.org/works/https://doi.org/%s\n", p.DOI)
			}
		}
	}

	if len(r.UnmatchedPapers) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, strings.Repeat("=", rule))
		fmt.Fprintln(w, "UNMATCHED PAPERS (no citation data)")
		fmt.Fprintln(w, strings.Repeat("=", rule))
		for i, p := range r.UnmatchedPapers {
			fmt.Fprintln(w)
			fmt.Fprintf(w, "%d. %s\n", i+1, p.Title)
			fmt.Fprintf(w, "   Year: %s | Position: %s author\n", p.Year, p.Position)
			if p.PMID != "" {
				fmt.Fprintf(w, "   PubMed: https://pubmed.ncbi.nlm.nih.gov/%s/\n", p.PMID)
			}
			if p.DOI != nil {
				fmt.Fprintf(w, "   DOI: %s (not found in OpenAlex)\n", *p.DOI)
			}
		}
	}
}

// FormatJSON writes the report as indented JSON.
func FormatJSON(r *types.Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// FormatYAML writes the report as YAML.
func FormatYAML(r *types.Report, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}
