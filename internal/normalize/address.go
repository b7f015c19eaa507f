package normalize

import (
	"regexp"
	"strings"
)

// directionals maps spelled-out compass words to their postal abbreviations.
var directionals = map[string]string{
	"north":     "N",
	"south":     "S",
	"east":      "E",
	"west":      "W",
	"northeast": "NE",
	"northwest": "NW",
	"southeast": "SE",
	"southwest": "SW",
}

// streetSuffixes maps common spelled-out street suffixes to the USPS
// standard abbreviation.
var streetSuffixes = map[string]string{
	"alley":     "Aly",
	"avenue":    "Ave",
	"boulevard": "Blvd",
	"circle":    "Cir",
	"court":     "Ct",
	"crossing":  "Xing",
	"drive":     "Dr",
	"expressway": "Expy",
	"freeway":   "Fwy",
	"highway":   "Hwy",
	"lane":      "Ln",
	"parkway":   "Pkwy",
	"place":     "Pl",
	"plaza":     "Plz",
	"road":      "Rd",
	"route":     "Rte",
	"square":    "Sq",
	"street":    "St",
	"terrace":   "Ter",
	"trail":     "Trl",
	"turnpike":  "Tpke",
}

// unitDesignators maps secondary-unit words to their abbreviations.
var unitDesignators = map[string]string{
	"apartment": "Apt",
	"building":  "Bldg",
	"department": "Dept",
	"floor":     "Fl",
	"room":      "Rm",
	"suite":     "Ste",
	"unit":      "Unit",
}

// AbbreviateAddress rewrites directional words, street suffixes, and unit
// designators to their postal abbreviations and title-cases the rest.
// "165 west Broadway street" -> "165 W Broadway St".
func AbbreviateAddress(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		key := strings.ToLower(strings.Trim(w, ".,"))
		switch {
		case directionals[key] != "":
			words[i] = directionals[key]
		case streetSuffixes[key] != "":
			words[i] = streetSuffixes[key]
		case unitDesignators[key] != "":
			words[i] = unitDesignators[key]
		default:
			words[i] = capitalize(w)
		}
	}
	return strings.Join(words, " ")
}

// line2Patterns mark the start of a secondary-unit portion inside a combined
// address line, ordered most specific first.
var line2Patterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\d+\w*\s*(ST|ND|RD|TH)\s+FLOOR`),
	regexp.MustCompile(`(?i)\d+\w*\s*(ST|ND|RD|TH)\s+FL\.?`),
	regexp.MustCompile(`(?i)\bSTE\s+\d+`),
	regexp.MustCompile(`(?i)\bSUITE\s+\d+`),
	regexp.MustCompile(`(?i)\bAPT\s+\d+`),
	regexp.MustCompile(`(?i)\bAPARTMENT\s+\d+`),
	regexp.MustCompile(`(?i)\bUNIT\s+\d+`),
	regexp.MustCompile(`(?i)\bSTE\b`),
	regexp.MustCompile(`(?i)\bSUITE\b`),
	regexp.MustCompile(`(?i)\bFLOOR\b`),
	regexp.MustCompile(`(?i)\bFL\.?\b`),
	regexp.MustCompile(`(?i)\bAPT\.?\b`),
	regexp.MustCompile(`(?i)\bAPARTMENT\b`),
	regexp.MustCompile(`(?i)\bUNIT\b`),
	regexp.MustCompile(`(?i)\bBLDG\b`),
	regexp.MustCompile(`(?i)\bBUILDING\b`),
}

// SplitAddressLine splits a combined address line 1 into street and
// secondary-unit parts:
//
//	"4 CENTURY DR STE 100"        -> ("4 Century Dr", "Ste 100")
//	"165 Broadway, 23rd floor"    -> ("165 Broadway", "23rd Floor")
//	"175 E Hawthorn Pkwy"         -> ("175 E Hawthorn Pkwy", "")
//
// Used when the input carries no Address Line 2 column.
func SplitAddressLine(s string) (string, string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ""
	}

	// Drop trailing city/state/zip segments after a comma that follows the
	// unit portion; only the first comma segment pair matters here.
	head := s
	var tail string
	if i := strings.Index(s, ","); i >= 0 {
		head = strings.TrimSpace(s[:i])
		tail = strings.TrimSpace(s[i+1:])
		if j := strings.Index(tail, ","); j >= 0 {
			tail = strings.TrimSpace(tail[:j])
		}
		if tail != "" && matchesLine2(tail) {
			return titleWords(head), titleWords(tail)
		}
		// Comma present but no unit keyword after it: fall through and scan
		// the whole original string.
		head = s
	}

	for _, pat := range line2Patterns {
		loc := pat.FindStringIndex(head)
		if loc != nil && loc[0] > 0 {
			return titleWords(head[:loc[0]]), titleWords(head[loc[0]:])
		}
	}
	return head, ""
}

func matchesLine2(s string) bool {
	for _, pat := range line2Patterns {
		if pat.MatchString(s) {
			return true
		}
	}
	return false
}

func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

func capitalize(w string) string {
	if w == "" {
		return w
	}
	r := []rune(strings.ToLower(w))
	if r[0] >= 'a' && r[0] <= 'z' {
		r[0] = r[0] - 'a' + 'A'
	}
	return string(r)
}
