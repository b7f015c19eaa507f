package classify

import "testing"

func TestLocationType(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"In Person", InPerson},
		{"in-person", InPerson},
		{"Office visit", InPerson},
		{"Virtual", Virtual},
		{"Telehealth", Virtual},
		{"video visits", Virtual},
		{"VV only", Virtual},
		{"Both", Both},
		{"In office / VV", Both},
		{"In person and virtual", Both},
		{"something unrecognized", InPerson},
	}
	for _, tc := range cases {
		if got := LocationType(tc.in); got != tc.want {
			t.Errorf("LocationType(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFromVirtualFlag(t *testing.T) {
	tr, fa := true, false
	if got := FromVirtualFlag(&tr); got != Virtual {
		t.Errorf("true flag = %q, want %q", got, Virtual)
	}
	if got := FromVirtualFlag(&fa); got != InPerson {
		t.Errorf("false flag = %q, want %q", got, InPerson)
	}
	if got := FromVirtualFlag(nil); got != "" {
		t.Errorf("nil flag = %q, want blank", got)
	}
}
