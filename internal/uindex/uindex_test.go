// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package uindex

import (
	"reflect"
	"testing"

	"github.com/pdiddy/uindex/pkg/types"
)

func strptr(s string) *string { return &s }

// --- Calculate ---

func TestCalculate(t *testing.T) {
	tests := []struct {
		name      string
		citations []int
		want      int
	}{
		{"empty", nil, 0},
		{"empty slice", []int{}, 0},
		{"single zero", []int{0}, 0},
		{"two zeros", []int{0, 0}, 0},
		{"single cited", []int{5}, 1},
		{"all ranks satisfied", []int{100, 50, 30}, 3},
		{"stops at failing rank", []int{10, 5, 3, 1}, 3},
		{"classic h-like", []int{50, 30, 2}, 2},
		{"unsorted input", []int{2, 50, 30}, 2},
		{"five high", []int{794, 28, 10, 6, 5}, 5},
		{"ties at boundary", []int{3, 3, 3}, 3},
		{"ones", []int{1, 1, 1, 1}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(tt.citations)
			if got != tt.want {
				t.Errorf("Calculate(%v) = %d, want %d", tt.citations, got, tt.want)
			}
		})
	}
}

// A rank past the first failure must not revive U even if it satisfies the
// inequality again.
func TestCalculateNoRevival(t *testing.T) {
	// Sorted desc: [9,1,1,...]. Rank 2 fails (1 < 2) and the scan stops
	// there; nothing after rank 2 can raise U.
	if got := Calculate([]int{9, 1, 1, 1, 1, 1, 1, 1, 1}); got != 1 {
		t.Errorf("Calculate = %d, want 1", got)
	}
	if got := Calculate([]int{10, 5, 3, 1}); got != 3 {
		t.Errorf("Calculate = %d, want 3 (rank 4 value 1 must not count)", got)
	}
}

func TestCalculateDoesNotMutateInput(t *testing.T) {
	in := []int{2, 50, 30}
	want := []int{2, 50, 30}
	Calculate(in)
	if !reflect.DeepEqual(in, want) {
		t.Errorf("input mutated: %v", in)
	}
}

// --- BuildReport ---

func TestBuildReport(t *testing.T) {
	pubs := []types.Publication{
		{PMID: "1", Title: "First authored", Year: "2023", DOI: strptr("10.1000/p1"), Position: types.PositionFirst},
		{PMID: "2", Title: "Last authored", Year: "2022", DOI: strptr("10.1000/p2"), Position: types.PositionLast},
		{PMID: "3", Title: "Middle authored", Year: "2021", DOI: strptr("10.1000/p3"), Position: types.PositionMiddle},
		{PMID: "4", Title: "Low cites", Year: "2020", DOI: strptr("10.1000/p4"), Position: types.PositionFirst},
		{PMID: "5", Title: "No DOI", Year: "2019", DOI: nil, Position: types.PositionFirst},
	}
	citations := map[string]int{
		"10.1000/p1": 50,
		"10.1000/p2": 30,
		"10.1000/p3": 100, // middle-authored, must stay excluded
		"10.1000/p4": 2,
	}

	r := BuildReport("Target Author", pubs, citations)

	if r.TotalPapers != 5 {
		t.Errorf("TotalPapers = %d, want 5", r.TotalPapers)
	}
	if r.QualifyingCount != 4 {
		t.Errorf("QualifyingCount = %d, want 4", r.QualifyingCount)
	}
	if len(r.QualifyingPapers) != 3 {
		t.Fatalf("len(QualifyingPapers) = %d, want 3", len(r.QualifyingPapers))
	}
	if r.UnmatchedCount != 1 || len(r.UnmatchedPapers) != 1 {
		t.Fatalf("unmatched = %d/%d, want 1/1", r.UnmatchedCount, len(r.UnmatchedPapers))
	}
	if r.UnmatchedPapers[0].PMID != "5" {
		t.Errorf("unmatched PMID = %q, want 5", r.UnmatchedPapers[0].PMID)
	}
	if r.UIndex != 2 {
		t.Errorf("UIndex = %d, want 2", r.UIndex)
	}

	// Sorted by citations descending.
	wantOrder := []int{50, 30, 2}
	for i, qp := range r.QualifyingPapers {
		if qp.Citations != wantOrder[i] {
			t.Errorf("QualifyingPapers[%d].Citations = %d, want %d", i, qp.Citations, wantOrder[i])
		}
	}

	// The middle-authored paper never appears anywhere.
	for _, qp := range r.QualifyingPapers {
		if qp.PMID == "3" {
			t.Error("middle-authored paper leaked into qualifying set")
		}
	}
	for _, up := range r.UnmatchedPapers {
		if up.PMID == "3" {
			t.Error("middle-authored paper leaked into unmatched set")
		}
	}
}

// A record whose DOI differs from the citation map key only by case or
// resolver wrapping must still match.
func TestBuildReportNormalizesDOIBeforeJoin(t *testing.T) {
	pubs := []types.Publication{
		{PMID: "1", Title: "A", DOI: strptr("10.1000/P1"), Position: types.PositionFirst},
		{PMID: "2", Title: "B", DOI: strptr("https://doi.org/10.1000/p2"), Position: types.PositionLast},
		{PMID: "3", Title: "C", DOI: strptr("10.1000/p3"), Position: types.PositionFirst},
		{PMID: "4", Title: "D", DOI: strptr("10.1000/P4"), Position: types.PositionLast},
		{PMID: "5", Title: "E", DOI: strptr("10.1000/p5"), Position: types.PositionFirst},
	}
	citations := map[string]int{
		"10.1000/p1": 794,
		"10.1000/p2": 28,
		"10.1000/p3": 10,
		"10.1000/p4": 6,
		"10.1000/p5": 5,
	}

	r := BuildReport("Case Test", pubs, citations)

	if r.UnmatchedCount != 0 {
		t.Fatalf("UnmatchedCount = %d, want 0", r.UnmatchedCount)
	}
	if len(r.QualifyingPapers) != 5 {
		t.Fatalf("len(QualifyingPapers) = %d, want 5", len(r.QualifyingPapers))
	}
	if r.UIndex != 5 {
		t.Errorf("UIndex = %d, want 5", r.UIndex)
	}
}

// Unknown-DOI and nil-DOI records land in unmatched, never dropped, never
// counted toward U.
func TestBuildReportUnmatchedNeverDropped(t *testing.T) {
	pubs := []types.Publication{
		{PMID: "1", Title: "Matched", DOI: strptr("10.1000/p1"), Position: types.PositionFirst},
		{PMID: "2", Title: "Unknown DOI", DOI: strptr("10.9999/missing"), Position: types.PositionLast},
		{PMID: "3", Title: "Nil DOI", DOI: nil, Position: types.PositionFirst},
	}
	citations := map[string]int{"10.1000/p1": 10}

	r := BuildReport("X", pubs, citations)

	if r.QualifyingCount != 3 {
		t.Errorf("QualifyingCount = %d, want 3", r.QualifyingCount)
	}
	if len(r.QualifyingPapers) != 1 {
		t.Errorf("len(QualifyingPapers) = %d, want 1", len(r.QualifyingPapers))
	}
	if r.UnmatchedCount != 2 || len(r.UnmatchedPapers) != 2 {
		t.Errorf("unmatched = %d/%d, want 2/2", r.UnmatchedCount, len(r.UnmatchedPapers))
	}
	if r.UIndex != 1 {
		t.Errorf("UIndex = %d, want 1", r.UIndex)
	}
}

func TestBuildReportStableTies(t *testing.T) {
	pubs := []types.Publication{
		{PMID: "1", Title: "A", DOI: strptr("10.1000/a"), Position: types.PositionFirst},
		{PMID: "2", Title: "B", DOI: strptr("10.1000/b"), Position: types.PositionFirst},
		{PMID: "3", Title: "C", DOI: strptr("10.1000/c"), Position: types.PositionFirst},
	}
	citations := map[string]int{
		"10.1000/a": 7,
		"10.1000/b": 7,
		"10.1000/c": 9,
	}

	r := BuildReport("X", pubs, citations)

	wantPMIDs := []string{"3", "1", "2"}
	for i, qp := range r.QualifyingPapers {
		if qp.PMID != wantPMIDs[i] {
			t.Errorf("QualifyingPapers[%d].PMID = %q, want %q (ties must keep source order)", i, qp.PMID, wantPMIDs[i])
		}
	}
}

func TestBuildReportEmpty(t *testing.T) {
	r := BuildReport("Nobody", nil, map[string]int{})
	if r.TotalPapers != 0 || r.QualifyingCount != 0 || r.UIndex != 0 {
		t.Errorf("empty report = %+v", r)
	}
	if r.QualifyingPapers == nil || r.UnmatchedPapers == nil {
		t.Error("paper lists should be empty, not nil, for stable serialization")
	}
}

// --- LeadershipDOIs ---

func TestLeadershipDOIs(t *testing.T) {
	pubs := []types.Publication{
		{PMID: "1", DOI: strptr("10.1000/p1"), Position: types.PositionFirst},
		{PMID: "2", DOI: nil, Position: types.PositionLast},
		{PMID: "3", DOI: strptr("10.1000/p3"), Position: types.PositionMiddle},
		{PMID: "4", DOI: strptr("10.1000/p4"), Position: types.PositionLast},
		{PMID: "5", DOI: strptr("10.1000/p5"), Position: ""},
	}
	got := LeadershipDOIs(pubs)
	want := []string{"10.1000/p1", "10.1000/p4"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LeadershipDOIs = %v, want %v", got, want)
	}
}
