package util

import (
	"strings"

	"github.com/antzucaro/matchr"
)

// maxSuggestDistance is the largest edit distance for which Closest still
// reports a match. Anything further away is more likely a different word than
// a typo.
const maxSuggestDistance = 2

// Closest returns the candidate nearest to word by case-insensitive
// Levenshtein distance, and whether it is close enough to be worth
// suggesting. Ties go to the earlier candidate.
func Closest(word string, candidates []string) (string, bool) {
	var (
		best     string
		bestDist = -1
	)
	w := strings.ToLower(strings.TrimSpace(word))
	for _, c := range candidates {
		d := matchr.Levenshtein(w, strings.ToLower(c))
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	if bestDist < 0 || bestDist > maxSuggestDistance {
		return "", false
	}
	return best, true
}
