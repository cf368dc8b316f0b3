// Package keywords manages the search keyword set that drives event
// relevance scoring, including LLM-backed generation from onboarding answers.
package keywords

import (
	"sort"
	"strings"
)

// DefaultSet is used whenever a keyword set would otherwise be empty.
func DefaultSet() []string {
	return []string{"B2B", "Sales", "Marketing", "Lead Generation"}
}

// Clean trims whitespace, drops empty entries, removes exact duplicates, and
// sorts the result. Matching is case sensitive, so "AI" and "ai" are kept as
// distinct keywords. An empty result is replaced with the default set.
func Clean(raw []string) []string {
	seen := make(map[string]bool)
	var cleaned []string
	for _, keyword := range raw {
		kw := strings.TrimSpace(keyword)
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		cleaned = append(cleaned, kw)
	}

	if len(cleaned) == 0 {
		return DefaultSet()
	}

	sort.Strings(cleaned)
	return cleaned
}
