package match

import (
	"reflect"
	"testing"

	"github.com/gyeh/loclink/internal/model"
)

func TestExpandHeader(t *testing.T) {
	h := ExpandHeader(2, []string{"Notes"})
	want := []string{
		"NPI Number", "First Name", "Last Name", "Address Line 1", "Address Line 2",
		"City", "State", "ZIP", "Practice ID", "Location Type",
		"Location Monolith ID 1", "Location Cloud ID 1", "Practice Monolith ID 1",
		"Practice Cloud ID 1", "Location Type 1",
		"Location Monolith ID 2", "Location Cloud ID 2", "Practice Monolith ID 2",
		"Practice Cloud ID 2", "Location Type 2",
		"Notes",
	}
	if !reflect.DeepEqual(h, want) {
		t.Errorf("header layout wrong:\n got %v\nwant %v", h, want)
	}
}

func TestExpandHeader_GrowsAppendOnly(t *testing.T) {
	before := ExpandHeader(1, nil)
	after := ExpandHeader(3, nil)
	if !reflect.DeepEqual(after[:len(before)], before) {
		t.Error("adding slots must only append columns")
	}
}

func TestExpandRow(t *testing.T) {
	row := &model.InputRow{
		NPI: "1234567890", FirstName: "Ada", LastName: "Li",
		AddressLine1: "165 Broadway", City: "New York", State: "NY", Zip: "10006",
		PracticeID: "900", LocationType: "Both",
		ExtraValues: []string{"keep me"},
	}
	matches := []model.Match{
		{Slot: 1, LocationMonolithID: "10", LocationCloudID: "c-10", PracticeMonolithID: "900", PracticeCloudID: "pc-900", LocationType: "In Person"},
		{Slot: 3, LocationCloudID: "v-ny", PracticeCloudID: "pc-900", LocationType: "Virtual"},
	}

	got := ExpandRow(row, matches, 3)
	want := []string{
		"1234567890", "Ada", "Li", "165 Broadway", "", "New York", "NY", "10006", "900", "Both",
		"10", "c-10", "900", "pc-900", "In Person",
		"", "", "", "", "",
		"", "v-ny", "", "pc-900", "Virtual",
		"keep me",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("row expansion wrong:\n got %v\nwant %v", got, want)
	}
}

func TestMaxSlot(t *testing.T) {
	matches := map[int64][]model.Match{
		1: {{Slot: 1}, {Slot: 2}},
		2: {{Slot: 1}, {Slot: 5}},
	}
	if got := MaxSlot(matches); got != 5 {
		t.Errorf("MaxSlot = %d, want 5", got)
	}
	if got := MaxSlot(nil); got != 0 {
		t.Errorf("MaxSlot(nil) = %d, want 0", got)
	}
}
