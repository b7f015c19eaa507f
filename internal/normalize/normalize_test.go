package normalize

import (
	"reflect"
	"testing"
)

func TestClean(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"Main Street", "main street"},
		{"  123   MAIN   st  ", "123 main st"},
		{"one\ttwo\n three", "one two three"},
	}
	for _, tc := range cases {
		if got := Clean(tc.in); got != tc.want {
			t.Errorf("Clean(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestClean_Idempotent(t *testing.T) {
	for _, s := range []string{"  123  Main St ", "ALREADY CLEAN", "a  b\tc"} {
		once := Clean(s)
		if twice := Clean(once); twice != once {
			t.Errorf("Clean not idempotent for %q: %q != %q", s, once, twice)
		}
	}
}

func TestDigits(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"123 Main St Ste 4", []string{"123", "4"}},
		{"no numbers here", nil},
		{"12ab34", []string{"12", "34"}},
	}
	for _, tc := range cases {
		if got := Digits(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("Digits(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestStripDigits(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"123 main st", "main st"},
		{"main st", "main st"},
		{"12345", ""},
		{"4 5 6", ""},
	}
	for _, tc := range cases {
		if got := StripDigits(tc.in); got != tc.want {
			t.Errorf("StripDigits(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCleanID(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"12345.0", "12345"},
		{" 12345.0 ", "12345"},
		{"12345", "12345"},
		{"12345.05", "12345.05"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := CleanID(tc.in); got != tc.want {
			t.Errorf("CleanID(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestZeroPadZip(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"501", "00501"},
		{"7030", "07030"},
		{"10006", "10006"},
		{"10006-1234", "10006-1234"},
		{"K1A", "K1A"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := ZeroPadZip(tc.in); got != tc.want {
			t.Errorf("ZeroPadZip(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestAbbreviateAddress(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"165 west Broadway street", "165 W Broadway St"},
		{"175 East Hawthorn Parkway", "175 E Hawthorn Pkwy"},
		{"4 century drive suite 100", "4 Century Dr Ste 100"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := AbbreviateAddress(tc.in); got != tc.want {
			t.Errorf("AbbreviateAddress(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSplitAddressLine(t *testing.T) {
	cases := []struct {
		in    string
		line1 string
		line2 string
	}{
		{"4 CENTURY DR STE 100", "4 Century Dr", "Ste 100"},
		{"165 Broadway, 23rd floor", "165 Broadway", "23rd Floor"},
		{"165 Broadway 23rd floor", "165 Broadway", "23rd Floor"},
		{"175 E Hawthorn Pkwy", "175 E Hawthorn Pkwy", ""},
		{"", "", ""},
	}
	for _, tc := range cases {
		l1, l2 := SplitAddressLine(tc.in)
		if l1 != tc.line1 || l2 != tc.line2 {
			t.Errorf("SplitAddressLine(%q) = (%q, %q), want (%q, %q)", tc.in, l1, l2, tc.line1, tc.line2)
		}
	}
}
