package match

import (
	"strings"

	"github.com/gyeh/loclink/internal/catalog"
	"github.com/gyeh/loclink/internal/model"
	"github.com/gyeh/loclink/internal/similarity"
)

// FieldFuzzyMatcher is the default strategy: cascading per-field narrowing
// of the candidate set.
type FieldFuzzyMatcher struct {
	Thresholds Thresholds
}

func (FieldFuzzyMatcher) Name() string { return string(model.StrategyFieldFuzzy) }

// Match narrows candidates field by field.
//
// The address line filters are terminal: no candidate surviving them means
// no match. The city/state/zip filters narrow conditionally: if one would
// empty the candidate set it is skipped instead, and the surviving matches
// are flagged Relaxed so consumers can see a weaker link. A filter whose
// input field is empty does not run at all.
func (m FieldFuzzyMatcher) Match(row *model.InputRow, idx *catalog.Index) []model.Match {
	cands := idx.ForPractice(row.PracticeID)

	cands = filter(cands, func(loc *model.CatalogLocation) bool {
		return similarity.Similar(row.AddressLine1, loc.AddressLine1, m.Thresholds.Address)
	})
	if len(cands) == 0 {
		return nil
	}

	// Address line 2 is presence-exact and strict: an input without a suite
	// must match a record without one, an input with a suite must match a
	// record whose suite is similar. "Suite 200" and the bare building are
	// different places, so a mismatch here means no match, never a relaxed
	// one.
	if strings.TrimSpace(row.AddressLine2) == "" {
		cands = filter(cands, func(loc *model.CatalogLocation) bool {
			return strings.TrimSpace(loc.AddressLine2) == ""
		})
	} else {
		cands = filter(cands, func(loc *model.CatalogLocation) bool {
			return strings.TrimSpace(loc.AddressLine2) != "" &&
				similarity.Similar(row.AddressLine2, loc.AddressLine2, m.Thresholds.Address)
		})
	}
	if len(cands) == 0 {
		return nil
	}

	relaxed := false
	narrow := func(field string, keep func(*model.CatalogLocation) bool) {
		if strings.TrimSpace(field) == "" {
			return
		}
		next := filter(cands, keep)
		if len(next) > 0 {
			cands = next
		} else {
			relaxed = true
		}
	}

	narrow(row.City, func(loc *model.CatalogLocation) bool {
		return similarity.Similar(row.City, loc.City, m.Thresholds.Field)
	})
	narrow(row.State, func(loc *model.CatalogLocation) bool {
		return similarity.Similar(row.State, loc.State, m.Thresholds.Field)
	})
	narrow(row.Zip, func(loc *model.CatalogLocation) bool {
		return similarity.Similar(row.Zip, loc.Zip, m.Thresholds.Field)
	})

	out := make([]model.Match, 0, len(cands))
	for _, loc := range cands {
		mm := fromLocation(loc)
		mm.Slot = int32(len(out) + 1)
		mm.Confidence = similarity.Confidence(row.AddressLine1, loc.AddressLine1)
		mm.Relaxed = relaxed
		out = append(out, mm)
	}
	return out
}

func filter(locs []*model.CatalogLocation, keep func(*model.CatalogLocation) bool) []*model.CatalogLocation {
	var out []*model.CatalogLocation
	for _, loc := range locs {
		if keep(loc) {
			out = append(out, loc)
		}
	}
	return out
}
