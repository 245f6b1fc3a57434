package internal

import (
	"slices"
	"strings"
)

// Suggestion limits for undefined variables
const (
	MaxVariableSuggestions = 3
	minSuggestionDistance  = 2
)

// SimilarNames returns up to limit candidates close to target by Levenshtein
// distance, closest first. Candidates at equal distance stay in input order.
func SimilarNames(target string, candidates []string, limit int) []string {
	if len(candidates) == 0 || limit <= 0 {
		return nil
	}

	maxDistance := max(len(target)/2, minSuggestionDistance)

	type scored struct {
		name     string
		distance int
	}
	var similar []scored
	for _, candidate := range candidates {
		if candidate == target {
			continue
		}
		if d := levenshteinDistance(target, candidate); d <= maxDistance {
			similar = append(similar, scored{name: candidate, distance: d})
		}
	}
	slices.SortStableFunc(similar, func(a, b scored) int {
		return a.distance - b.distance
	})

	names := make([]string, 0, min(limit, len(similar)))
	for i := 0; i < len(similar) && i < limit; i++ {
		names = append(names, similar[i].name)
	}
	return names
}

// levenshteinDistance is the minimum number of single-byte edits that turn
// a into b. Variable names are ASCII.
func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// FormatVariableSuggestions renders names as "did you mean @A, @B or @C?"
func FormatVariableSuggestions(names []string) string {
	if len(names) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(SuggestionPrefix)
	for i, name := range names {
		if i > 0 {
			if i == len(names)-1 {
				sb.WriteString(SuggestionLastSep)
			} else {
				sb.WriteString(SuggestionSep)
			}
		}
		sb.WriteByte('@')
		sb.WriteString(name)
	}
	sb.WriteByte('?')
	return sb.String()
}

// suggestVariables proposes defined names for an undefined one
func suggestVariables(name string, table map[string]int) string {
	if len(table) == 0 {
		return ""
	}
	keys := make([]string, 0, len(table))
	for key := range table {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return FormatVariableSuggestions(SimilarNames(name, keys, MaxVariableSuggestions))
}
