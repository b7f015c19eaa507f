// Package classify derives the canonical location type (In Person, Virtual,
// Both) from the free-text values practices put in their spreadsheets.
package classify

import "strings"

const (
	InPerson = "In Person"
	Virtual  = "Virtual"
	Both     = "Both"
)

// virtualKeywords are substrings that mark a value as describing virtual
// care. "vv" shows up as shorthand for "virtual visit".
var virtualKeywords = []string{"virtual", "telehealth", "tele-health", "telemedicine", "video", "online"}

// inPersonKeywords mark a value as describing physical care.
var inPersonKeywords = []string{"in person", "in-person", "inperson", "office", "on site", "on-site", "onsite", "clinic"}

// LocationType classifies a raw location-type cell. Blank stays blank so
// direct-ID datasets without a type column pass through untouched; anything
// unrecognized defaults to In Person.
func LocationType(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return ""
	}

	virtual := containsAny(s, virtualKeywords) || isVVToken(s)
	inPerson := containsAny(s, inPersonKeywords)

	switch {
	case virtual && inPerson:
		return Both
	case strings.Contains(s, "both"):
		return Both
	case virtual:
		return Virtual
	default:
		return InPerson
	}
}

// FromVirtualFlag maps the catalog's is_virtual boolean to a location type.
// A nil flag yields blank.
func FromVirtualFlag(isVirtual *bool) string {
	if isVirtual == nil {
		return ""
	}
	if *isVirtual {
		return Virtual
	}
	return InPerson
}

func containsAny(s string, keys []string) bool {
	for _, k := range keys {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// isVVToken reports whether "vv" appears as a standalone token, as in
// "VV only" or "in office / vv".
func isVVToken(s string) bool {
	for _, f := range strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '/' || r == ',' || r == ';' || r == '(' || r == ')'
	}) {
		if f == "vv" {
			return true
		}
	}
	return false
}
