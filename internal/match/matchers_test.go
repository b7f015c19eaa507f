package match

import (
	"testing"

	"github.com/gyeh/loclink/internal/catalog"
	"github.com/gyeh/loclink/internal/classify"
	"github.com/gyeh/loclink/internal/model"
)

func loc(opts ...func(*model.CatalogLocation)) *model.CatalogLocation {
	l := &model.CatalogLocation{
		PracticeMonolithID: "900",
		PracticeCloudID:    "pc-900",
		LocationType:       classify.InPerson,
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

func TestDirectIDMatcher(t *testing.T) {
	idx := catalog.NewIndex([]*model.CatalogLocation{
		loc(func(l *model.CatalogLocation) {
			l.LocationMonolithID = "1001"
			l.LocationCloudID = "c-1001"
		}),
	})
	row := &model.InputRow{LocationIDs: []string{"1001.0", "1001", "2002"}}

	ms := DirectIDMatcher{}.Match(row, idx)
	if len(ms) != 2 {
		t.Fatalf("expected 2 matches (dupes collapse), got %d", len(ms))
	}
	if ms[0].Slot != 1 || ms[0].LocationMonolithID != "1001" || ms[0].LocationCloudID != "c-1001" {
		t.Errorf("first match not enriched: %+v", ms[0])
	}
	if ms[0].PracticeCloudID != "pc-900" {
		t.Errorf("practice ids should come from the catalog: %+v", ms[0])
	}
	// Unknown IDs keep the monolith ID and nothing else.
	if ms[1].Slot != 2 || ms[1].LocationMonolithID != "2002" || ms[1].LocationCloudID != "" {
		t.Errorf("unmatched id should be preserved bare: %+v", ms[1])
	}
}

func TestStateOnlyMatcher(t *testing.T) {
	first := loc(func(l *model.CatalogLocation) {
		l.State = "NY"
		l.LocationCloudID = "ny-first"
	})
	idx := catalog.NewIndex([]*model.CatalogLocation{
		first,
		loc(func(l *model.CatalogLocation) { l.State = "NY"; l.LocationCloudID = "ny-second" }),
		loc(func(l *model.CatalogLocation) { l.State = "NJ"; l.LocationCloudID = "nj-first" }),
	})
	row := &model.InputRow{State: "NY, NJ, ny"}

	ms := StateOnlyMatcher{}.Match(row, idx)
	if len(ms) != 2 {
		t.Fatalf("expected one match per distinct state, got %d", len(ms))
	}
	if ms[0].LocationCloudID != "ny-first" || ms[1].LocationCloudID != "nj-first" {
		t.Errorf("expected first catalog record per state: %+v", ms)
	}
	for _, m := range ms {
		if m.LocationType != "" {
			t.Errorf("state-only match must carry a blank location type: %+v", m)
		}
	}
}

func TestStateOnlyMatcher_UnknownState(t *testing.T) {
	idx := catalog.NewIndex([]*model.CatalogLocation{
		loc(func(l *model.CatalogLocation) { l.State = "NY" }),
	})
	ms := StateOnlyMatcher{}.Match(&model.InputRow{State: "AK"}, idx)
	if len(ms) != 0 {
		t.Fatalf("unknown state should yield no matches, got %d", len(ms))
	}
}

func fuzzyFixtures() *catalog.Index {
	return catalog.NewIndex([]*model.CatalogLocation{
		loc(func(l *model.CatalogLocation) {
			l.LocationMonolithID = "10"
			l.LocationCloudID = "c-10"
			l.AddressLine1 = "165 Broadway"
			l.City = "New York"
			l.State = "NY"
			l.Zip = "10006"
		}),
		loc(func(l *model.CatalogLocation) {
			l.LocationMonolithID = "11"
			l.LocationCloudID = "c-11"
			l.AddressLine1 = "165 Broadway"
			l.AddressLine2 = "Ste 200"
			l.City = "New York"
			l.State = "NY"
			l.Zip = "10006"
		}),
		loc(func(l *model.CatalogLocation) {
			l.PracticeMonolithID = "901"
			l.LocationMonolithID = "12"
			l.LocationCloudID = "c-12"
			l.AddressLine1 = "9 Elm Court"
			l.City = "Albany"
			l.State = "NY"
			l.Zip = "12207"
		}),
	})
}

func TestFieldFuzzyMatcher_Line2PresenceExact(t *testing.T) {
	m := FieldFuzzyMatcher{Thresholds: DefaultThresholds()}
	idx := fuzzyFixtures()

	// No suite on the input row: only the suite-less record survives.
	ms := m.Match(&model.InputRow{
		AddressLine1: "165 Broadway", City: "New York", State: "NY", Zip: "10006",
	}, idx)
	if len(ms) != 1 || ms[0].LocationCloudID != "c-10" {
		t.Fatalf("expected the suite-less record, got %+v", ms)
	}
	if ms[0].Relaxed {
		t.Error("fully narrowed match should not be relaxed")
	}

	// Suite on the input row: only the suite record survives.
	ms = m.Match(&model.InputRow{
		AddressLine1: "165 Broadway", AddressLine2: "ste 200",
		City: "New York", State: "NY", Zip: "10006",
	}, idx)
	if len(ms) != 1 || ms[0].LocationCloudID != "c-11" {
		t.Fatalf("expected the suite record, got %+v", ms)
	}
}

func TestFieldFuzzyMatcher_Line2MismatchIsTerminal(t *testing.T) {
	m := FieldFuzzyMatcher{Thresholds: DefaultThresholds()}
	idx := catalog.NewIndex([]*model.CatalogLocation{
		loc(func(l *model.CatalogLocation) {
			l.LocationCloudID = "c-77"
			l.AddressLine1 = "4 Century Dr"
			l.AddressLine2 = "Ste 100"
			l.City = "Parsippany"
			l.State = "NJ"
			l.Zip = "07054"
		}),
	})

	// The sole candidate has a suite the input row lacks: zero matches, not
	// a relaxed one.
	ms := m.Match(&model.InputRow{
		AddressLine1: "4 Century Dr", City: "Parsippany", State: "NJ", Zip: "07054",
	}, idx)
	if len(ms) != 0 {
		t.Fatalf("suite mismatch must yield no matches, got %+v", ms)
	}

	// And the other direction: the input has a suite no candidate carries.
	ms = m.Match(&model.InputRow{
		AddressLine1: "4 Century Dr", AddressLine2: "Ste 900",
		City: "Parsippany", State: "NJ", Zip: "07054",
	}, idx)
	if len(ms) != 0 {
		t.Fatalf("unmatched suite must yield no matches, got %+v", ms)
	}
}

func TestFieldFuzzyMatcher_EmptyFieldsDoNotNarrow(t *testing.T) {
	m := FieldFuzzyMatcher{Thresholds: DefaultThresholds()}
	// Only address line 1 and state populated: the empty city and zip
	// filters must not run, and the match must not be flagged relaxed.
	ms := m.Match(&model.InputRow{
		AddressLine1: "165 Broadway", State: "NY",
	}, fuzzyFixtures())
	if len(ms) != 1 || ms[0].LocationCloudID != "c-10" {
		t.Fatalf("expected the suite-less record, got %+v", ms)
	}
	if ms[0].Relaxed {
		t.Error("skipping an empty input field is not a relaxed narrowing")
	}
}

func TestFieldFuzzyMatcher_AddressLine1IsTerminal(t *testing.T) {
	m := FieldFuzzyMatcher{Thresholds: DefaultThresholds()}
	ms := m.Match(&model.InputRow{
		AddressLine1: "999 Nowhere Lane", City: "New York", State: "NY", Zip: "10006",
	}, fuzzyFixtures())
	if len(ms) != 0 {
		t.Fatalf("failed first filter must be terminal, got %+v", ms)
	}
}

func TestFieldFuzzyMatcher_RelaxedNarrowing(t *testing.T) {
	m := FieldFuzzyMatcher{Thresholds: DefaultThresholds()}
	// City disagrees with every candidate: the city filter is skipped and
	// the surviving match is flagged.
	ms := m.Match(&model.InputRow{
		AddressLine1: "165 Broadway", City: "Brooklyn", State: "NY", Zip: "10006",
	}, fuzzyFixtures())
	if len(ms) != 1 {
		t.Fatalf("expected one relaxed match, got %d", len(ms))
	}
	if !ms[0].Relaxed {
		t.Error("match surviving a skipped filter must be flagged relaxed")
	}
}

func TestFieldFuzzyMatcher_PracticeScope(t *testing.T) {
	m := FieldFuzzyMatcher{Thresholds: DefaultThresholds()}
	// Practice 901 owns only the Elm Court record.
	ms := m.Match(&model.InputRow{
		PracticeID:   "901",
		AddressLine1: "9 Elm Court", City: "Albany", State: "NY", Zip: "12207",
	}, fuzzyFixtures())
	if len(ms) != 1 || ms[0].LocationCloudID != "c-12" {
		t.Fatalf("expected the practice-scoped record, got %+v", ms)
	}
}

func TestConcatMatcher(t *testing.T) {
	m := ConcatMatcher{Thresholds: DefaultThresholds()}
	idx := fuzzyFixtures()

	ms := m.Match(&model.InputRow{
		AddressLine1: "165 Broadway Ste 200 New York NY 10006",
	}, idx)
	if len(ms) != 1 || ms[0].LocationCloudID != "c-11" {
		t.Fatalf("expected the concatenated match, got %+v", ms)
	}
	if ms[0].Confidence != 1 {
		t.Errorf("identical concatenation should score 1, got %v", ms[0].Confidence)
	}
}

func TestConcatMatcher_OrdersByConfidence(t *testing.T) {
	m := ConcatMatcher{Thresholds: DefaultThresholds()}
	idx := catalog.NewIndex([]*model.CatalogLocation{
		loc(func(l *model.CatalogLocation) {
			l.LocationCloudID = "close"
			l.AddressLine1 = "165 Broadway"
			l.City = "New York City"
			l.State = "NY"
			l.Zip = "10006"
		}),
		loc(func(l *model.CatalogLocation) {
			l.LocationCloudID = "exact"
			l.AddressLine1 = "165 Broadway"
			l.AddressLine2 = "New York NY"
			l.Zip = "10006"
		}),
	})
	ms := m.Match(&model.InputRow{
		AddressLine1: "165 Broadway New York NY 10006",
	}, idx)
	if len(ms) < 1 || ms[0].LocationCloudID != "exact" {
		t.Fatalf("best concatenation should come first, got %+v", ms)
	}
	for i, mm := range ms {
		if mm.Slot != int32(i+1) {
			t.Errorf("slots must be contiguous from 1: %+v", ms)
		}
	}
}

func TestReplaceAddress(t *testing.T) {
	row := &model.InputRow{
		AddressLine1: "old", AddressLine2: "old2", City: "oldcity", State: "XX", Zip: "99999",
	}
	ReplaceAddress(row, &model.CatalogLocation{
		AddressLine1: "165 Broadway", City: "New York", State: "NY", Zip: "501",
	})
	if row.AddressLine1 != "165 Broadway" || row.AddressLine2 != "" {
		t.Errorf("address not replaced: %+v", row)
	}
	if row.Zip != "00501" {
		t.Errorf("replacement zip must be zero-padded, got %q", row.Zip)
	}
}
