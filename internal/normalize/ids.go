package normalize

import "strings"

// CleanID trims an identifier and strips a trailing ".0" left behind by
// spreadsheet float round-trips ("12345.0" -> "12345"). Every ID comparison
// and every emitted ID goes through this.
func CleanID(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, ".0")
	return s
}

// ZeroPadZip left-pads a purely numeric ZIP shorter than five digits with
// zeros ("501" -> "00501"). Non-numeric or already-long values pass through.
func ZeroPadZip(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || len(s) >= 5 {
		return s
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return s
		}
	}
	return strings.Repeat("0", 5-len(s)) + s
}
