// Package similarity implements the address-field comparison used by the
// fuzzy matchers: a digit-run invariant layered over an edit-distance ratio.
package similarity

import (
	"github.com/agnivade/levenshtein"
	"github.com/xrash/smetrics"

	"github.com/gyeh/loclink/internal/normalize"
)

// Default thresholds. Address lines and concatenated addresses tolerate more
// drift than the short city/state/zip fields.
const (
	AddressThreshold = 0.7
	FieldThreshold   = 0.8
)

// Ratio returns an edit-distance similarity in [0,1]:
// 1 - levenshtein(a,b)/max(len). Two empty strings are identical.
func Ratio(a, b string) float64 {
	if a == b {
		return 1
	}
	la, lb := len([]rune(a)), len([]rune(b))
	max := la
	if lb > max {
		max = lb
	}
	if max == 0 {
		return 1
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(max)
}

// Similar reports whether two address values refer to the same thing.
//
// Digit runs are extracted from the ORIGINAL inputs: two values that both
// carry numbers only match when the number sequences are identical, no
// matter how alike the rest looks ("123 Main St" never matches
// "124 Main St"). With digits stripped, an empty side degrades the
// comparison to exact equality of the cleaned values; otherwise the
// edit-distance ratio of the stripped values decides against threshold.
func Similar(a, b string, threshold float64) bool {
	ca, cb := normalize.Clean(a), normalize.Clean(b)

	da, db := normalize.Digits(a), normalize.Digits(b)
	if len(da) > 0 && len(db) > 0 && !equalRuns(da, db) {
		return false
	}

	sa, sb := normalize.StripDigits(ca), normalize.StripDigits(cb)
	if sa == "" || sb == "" {
		return ca == cb
	}
	if sa == sb {
		return true
	}
	return Ratio(sa, sb) >= threshold
}

// Confidence scores how alike two values are for ranking and reporting,
// independent of the Similar predicate. Jaro-Winkler favors shared prefixes,
// which suits street addresses where the house number leads.
func Confidence(a, b string) float64 {
	ca, cb := normalize.Clean(a), normalize.Clean(b)
	if ca == "" && cb == "" {
		return 0
	}
	return smetrics.JaroWinkler(ca, cb, 0.7, 4)
}

func equalRuns(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
