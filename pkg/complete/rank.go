package complete

import (
	"sort"
	"strings"
)

// Match scores.
const (
	scoreExact     = 1.0
	scorePrefix    = 0.9
	scoreSubstring = 0.7
	// subsequence matches score in (0, scoreSubsequence]
	scoreSubsequence = 0.6
	noMatch          = -1.0
)

// Score rates how well candidate matches query: 1 for an exact match, 0.9
// for a prefix, 0.7 for a substring, a value in (0, 0.6] when the query
// is a subsequence, and -1 otherwise.
func Score(query, candidate string, caseSensitive bool) float64 {
	if !caseSensitive {
		query = strings.ToLower(query)
		candidate = strings.ToLower(candidate)
	}
	switch {
	case query == candidate:
		return scoreExact
	case strings.HasPrefix(candidate, query):
		return scorePrefix
	case strings.Contains(candidate, query):
		return scoreSubstring
	}
	return subsequence(query, candidate)
}

// subsequence scores query as a scattered subsequence of candidate. Tighter
// spans score higher; the first character matching adds a bonus.
func subsequence(query, candidate string) float64 {
	if query == "" {
		return noMatch
	}
	first, last, qi := -1, -1, 0
	for ci := 0; ci < len(candidate) && qi < len(query); ci++ {
		if candidate[ci] != query[qi] {
			continue
		}
		if first < 0 {
			first = ci
		}
		last = ci
		qi++
	}
	if qi < len(query) {
		return noMatch
	}
	density := float64(len(query)) / float64(last-first+1)
	score := scoreSubsequence * 0.8 * density
	if first == 0 {
		score += scoreSubsequence * 0.2
	}
	return score
}

// rank filters and orders items for the typed token.
//
// With fuzzy matching every item is scored and non-matches dropped, then
// items sort by score, priority, label length and label. Without it, items
// must start with the token. With no token nothing is filtered.
func rank(items []Completion, current string, fuzzy, caseSensitive bool) []Completion {
	if current == "" {
		sortByPriority(items)
		return items
	}

	if !fuzzy {
		prefix := current
		if !caseSensitive {
			prefix = strings.ToLower(prefix)
		}
		out := items[:0]
		for _, it := range items {
			text := it.text()
			if !caseSensitive {
				text = strings.ToLower(text)
			}
			if strings.HasPrefix(text, prefix) {
				out = append(out, it)
			}
		}
		sortByPriority(out)
		return out
	}

	out := items[:0]
	for _, it := range items {
		it.Score = Score(current, it.text(), caseSensitive)
		if it.Score >= 0 {
			out = append(out, it)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.SortPriority != b.SortPriority {
			return a.SortPriority < b.SortPriority
		}
		if len(a.Label) != len(b.Label) {
			return len(a.Label) < len(b.Label)
		}
		return a.Label < b.Label
	})
	return out
}

func sortByPriority(items []Completion) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].SortPriority != items[j].SortPriority {
			return items[i].SortPriority < items[j].SortPriority
		}
		return items[i].Label < items[j].Label
	})
}
