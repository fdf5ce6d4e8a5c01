// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package doi canonicalizes DOIs for cross-source matching. PubMed reports
// bare, sometimes mixed-case DOIs while OpenAlex wraps them in the doi.org
// resolver URL; both sides must reduce to the same key before the citation
// join.
package doi

import (
	"regexp"
	"strings"
)

// doiPattern matches bare DOIs: "10.1145/1234567.1234568".
var doiPattern = regexp.MustCompile(`^10\.\d{4,9}/\S+$`)

// resolverPrefixes are stripped from the front of an identifier before
// lowercasing. Checked case-insensitively.
var resolverPrefixes = []string{
	"https://doi.org/",
	"http://doi.org/",
	"https://dx.doi.org/",
	"http://dx.doi.org/",
	"doi.org/",
}

// Normalize returns the canonical form of a DOI: resolver prefix stripped,
// lowercased, surrounding whitespace removed. Normalize is idempotent and
// returns non-DOI strings lowercased unchanged otherwise.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	lower := strings.ToLower(s)
	for _, prefix := range resolverPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return lower[len(prefix):]
		}
	}
	return lower
}

// IsDOI reports whether s has the shape of a bare DOI.
func IsDOI(s string) bool {
	return doiPattern.MatchString(s)
}
