// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package uindex computes the U-index: the largest U such that the U
// most-cited first/last-authored papers each have at least U citations.
package uindex

import (
	"sort"

	"github.com/pdiddy/uindex/internal/doi"
	"github.com/pdiddy/uindex/pkg/types"
)

// Calculate reduces a set of citation counts to the U-index. The counts are
// sorted descending and scanned by rank; U advances while the count at the
// current rank is at least the rank, and the scan stops at the first rank
// where that fails. A later rank satisfying the inequality never revives U.
// Empty input yields 0.
func Calculate(citations []int) int {
	if len(citations) == 0 {
		return 0
	}

	sorted := make([]int, len(citations))
	copy(sorted, citations)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	u := 0
	for i, c := range sorted {
		rank := i + 1
		if c < rank {
			break
		}
		u = rank
	}
	return u
}

// BuildReport filters publications to first/last-authored records, joins
// citation counts by normalized DOI, and reduces the matched counts to the
// U-index. Keys of citations must already be normalized (see package doi);
// each record's DOI is normalized identically before lookup. Records with no
// DOI, or whose DOI is absent from the map, are listed as unmatched and
// excluded from the reduction. Matched papers are sorted by citations
// descending; ties keep source order.
func BuildReport(author string, pubs []types.Publication, citations map[string]int) *types.Report {
	r := &types.Report{
		Author:           author,
		TotalPapers:      len(pubs),
		QualifyingPapers: []types.QualifyingPaper{},
		UnmatchedPapers:  []types.UnmatchedPaper{},
	}

	for _, p := range pubs {
		if !p.Position.Leadership() {
			continue
		}
		r.QualifyingCount++

		if p.DOI != nil {
			key := doi.Normalize(*p.DOI)
			if count, ok := citations[key]; ok {
				r.QualifyingPapers = append(r.QualifyingPapers, types.QualifyingPaper{
					Title:     p.Title,
					Year:      p.Year,
					Position:  p.Position,
					Citations: count,
					DOI:       *p.DOI,
					PMID:      p.PMID,
				})
				continue
			}
		}

		r.UnmatchedCount++
		r.UnmatchedPapers = append(r.UnmatchedPapers, types.UnmatchedPaper{
			Title:    p.Title,
			Year:     p.Year,
			Position: p.Position,
			DOI:      p.DOI,
			PMID:     p.PMID,
		})
	}

	sort.SliceStable(r.QualifyingPapers, func(i, j int) bool {
		return r.QualifyingPapers[i].Citations > r.QualifyingPapers[j].Citations
	})

	counts := make([]int, len(r.QualifyingPapers))
	for i, qp := range r.QualifyingPapers {
		counts[i] = qp.Citations
	}
	r.UIndex = Calculate(counts)

	return r
}

// LeadershipDOIs returns the raw DOIs of first/last-authored publications,
// in source order, skipping records without one. This is the input handed to
// the citation lookup.
func LeadershipDOIs(pubs []types.Publication) []string {
	var dois []string
	for _, p := range pubs {
		if p.Position.Leadership() && p.DOI != nil {
			dois = append(dois, *p.DOI)
		}
	}
	return dois
}
