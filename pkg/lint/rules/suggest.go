package rules

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// suggestSimilar returns the candidate closest to input within maxDistance
// edits, ignoring case. Ties keep the earlier candidate.
func suggestSimilar(input string, candidates []string, maxDistance int) (string, bool) {
	inputLower := strings.ToLower(input)
	best, bestDist := "", maxDistance+1
	for _, candidate := range candidates {
		dist := levenshtein.ComputeDistance(inputLower, strings.ToLower(candidate))
		if dist > 0 && dist < bestDist {
			best, bestDist = candidate, dist
		}
	}
	return best, best != ""
}

// maxEdits scales the allowed typo distance with the name length.
func maxEdits(name string) int {
	switch n := len(name); {
	case n <= 3:
		return 1
	case n <= 8:
		return 2
	default:
		return 3
	}
}
