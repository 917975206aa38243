package multiselect

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// bestMatch returns the index of the text closest to query. Prefix matches
// win; otherwise the smallest edit distance against an equally long prefix of
// each text is used. Ties go to the earliest index. Returns -1 for no texts.
func bestMatch(query string, texts []string) int {
	if len(texts) == 0 || query == "" {
		return -1
	}
	q := strings.ToLower(query)
	for i, t := range texts {
		if strings.HasPrefix(strings.ToLower(t), q) {
			return i
		}
	}

	best, bestDist := -1, 0
	for i, t := range texts {
		d := levenshtein.ComputeDistance(q, prefixRunes(strings.ToLower(t), utf8.RuneCountInString(q)))
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func prefixRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
