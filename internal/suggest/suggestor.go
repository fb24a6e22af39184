// Package suggest proposes a best-effort column mapping between two raw
// header lists, to pre-fill a mapping before a user finalizes it.
package suggest

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// SimilarityThreshold is the minimum Levenshtein similarity ratio for a
// fuzzy fallback suggestion to be accepted.
const SimilarityThreshold = 0.6

// Suggest proposes, for each column of A in order, a column of B or ""
// when no candidate qualifies. A case-insensitive substring containment
// (either direction, first B column in order) beats the fuzzy fallback;
// the fallback takes the best similarity ratio across all of B, accepted
// only at SimilarityThreshold or above. The result is deterministic for a
// given ordered input and purely advisory.
func Suggest(colsA, colsB []string) map[string]string {
	suggestion := make(map[string]string, len(colsA))
	for _, a := range colsA {
		suggestion[a] = bestCandidate(a, colsB)
	}
	return suggestion
}

func bestCandidate(a string, colsB []string) string {
	fa := fold(a)
	if fa == "" {
		return ""
	}

	for _, b := range colsB {
		fb := fold(b)
		if fb == "" {
			continue
		}
		if strings.Contains(fa, fb) || strings.Contains(fb, fa) {
			return b
		}
	}

	best := ""
	bestScore := 0.0
	for _, b := range colsB {
		fb := fold(b)
		if fb == "" {
			continue
		}
		score := Similarity(fa, fb)
		if score > bestScore {
			best, bestScore = b, score
		}
	}
	if bestScore >= SimilarityThreshold {
		return best
	}
	return ""
}

// Similarity is the Levenshtein ratio 1 - distance/maxLen over the two
// strings; identical strings score 1, disjoint ones approach 0.
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 1.0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(dist)/float64(maxLen)
}

// fold lowercases and removes all whitespace, so "Policy No" and
// "PolicyNumber" compare on "policyno" vs "policynumber".
func fold(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "")
}
