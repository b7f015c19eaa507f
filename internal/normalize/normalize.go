package normalize

import (
	"regexp"
	"strings"
)

var (
	multiSpace = regexp.MustCompile(`\s+`)
	digitRuns  = regexp.MustCompile(`\d+`)
)

// Clean lowercases, trims, and collapses internal whitespace runs to single
// spaces. Idempotent; whitespace-only input yields "".
func Clean(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = strings.ToLower(s)
	return multiSpace.ReplaceAllString(s, " ")
}

// Digits returns the ordered maximal digit runs of s, e.g.
// "123 Main St Ste 4" -> ["123", "4"]. Runs are compared positionally when
// deciding whether two addresses can refer to the same place.
func Digits(s string) []string {
	return digitRuns.FindAllString(s, -1)
}

// StripDigits removes all digit characters and re-collapses whitespace.
// Used so edit-distance ratios are not dominated by house numbers.
func StripDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < '0' || r > '9' {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(multiSpace.ReplaceAllString(b.String(), " "))
}
