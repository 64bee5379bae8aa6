package core

import (
	"sort"

	"github.com/agnivade/levenshtein"
)

// SimilarityCutoff is the minimum similarity a candidate needs to be
// offered as a close match by the search operation.
const SimilarityCutoff = 0.6

// Similarity scores two strings in [0, 1]: 1 for identical strings,
// falling with edit distance relative to the longer string. The metric
// is pure and deterministic so search output is reproducible.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 1
	}
	distance := levenshtein.ComputeDistance(a, b)
	return 1 - float64(distance)/float64(longest)
}

// RankMatches returns the candidates scoring at or above the cutoff,
// best first, ties broken alphabetically.
func RankMatches(query string, candidates []string) []string {
	type scored struct {
		value string
		score float64
	}
	var qualifying []scored
	for _, candidate := range candidates {
		if score := Similarity(query, candidate); score >= SimilarityCutoff {
			qualifying = append(qualifying, scored{value: candidate, score: score})
		}
	}
	sort.Slice(qualifying, func(i, j int) bool {
		if qualifying[i].score != qualifying[j].score {
			return qualifying[i].score > qualifying[j].score
		}
		return qualifying[i].value < qualifying[j].value
	})
	out := make([]string, 0, len(qualifying))
	for _, match := range qualifying {
		out = append(out, match.value)
	}
	return out
}
