// Package match implements dataset-wide strategy selection and the four
// matchers that link input rows to catalog locations, plus the virtual
// backfill pass and the output column expansion.
package match

import (
	"strings"

	"github.com/gyeh/loclink/internal/catalog"
	"github.com/gyeh/loclink/internal/input"
	"github.com/gyeh/loclink/internal/model"
	"github.com/gyeh/loclink/internal/normalize"
	"github.com/gyeh/loclink/internal/similarity"
)

// Thresholds carries the similarity cutoffs used by the fuzzy matchers.
type Thresholds struct {
	// Address applies to address lines and concatenated addresses.
	Address float64
	// Field applies to the short city/state/zip fields.
	Field float64
}

// DefaultThresholds returns the standard cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Address: similarity.AddressThreshold,
		Field:   similarity.FieldThreshold,
	}
}

// Matcher links one input row to zero or more catalog locations. Slots in
// the returned matches start at 1; RunID and RowNum are filled in by the
// caller.
type Matcher interface {
	Name() string
	Match(row *model.InputRow, idx *catalog.Index) []model.Match
}

// ForStrategy returns the matcher implementing the given strategy.
func ForStrategy(s model.Strategy, t Thresholds) Matcher {
	switch s {
	case model.StrategyDirectID:
		return DirectIDMatcher{}
	case model.StrategyStateOnly:
		return StateOnlyMatcher{}
	case model.StrategyConcatAddress:
		return ConcatMatcher{Thresholds: t}
	default:
		return FieldFuzzyMatcher{Thresholds: t}
	}
}

// DefaultDirectIDShare is the materiality threshold for choosing the
// direct-ID strategy: some location-ID column must be more than 20%
// populated.
const DefaultDirectIDShare = 0.2

// DetectStrategy picks exactly one strategy for the whole dataset from its
// column population stats. Evaluated in priority order; FieldFuzzy is the
// default.
func DetectStrategy(stats input.ColumnStats, directIDShare float64) model.Strategy {
	if stats.LocationIDShare > directIDShare {
		return model.StrategyDirectID
	}
	if stats.StateShare > 0 &&
		stats.AddressLine1Share == 0 && stats.AddressLine2Share == 0 &&
		stats.CityShare == 0 && stats.ZipShare == 0 {
		return model.StrategyStateOnly
	}
	if stats.AddressLine1Share > 0 &&
		stats.CityShare == 0 && stats.StateShare == 0 && stats.ZipShare == 0 {
		return model.StrategyConcatAddress
	}
	return model.StrategyFieldFuzzy
}

// splitStates splits a state cell that may hold a comma-separated list into
// cleaned, deduplicated entries.
func splitStates(s string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(s, ",") {
		st := normalize.Clean(part)
		if st == "" || seen[st] {
			continue
		}
		seen[st] = true
		out = append(out, st)
	}
	return out
}

// fromLocation builds the match fields shared by all matchers.
func fromLocation(loc *model.CatalogLocation) model.Match {
	return model.Match{
		LocationMonolithID: normalize.CleanID(loc.LocationMonolithID),
		LocationCloudID:    normalize.CleanID(loc.LocationCloudID),
		LocationType:       loc.LocationType,
		PracticeMonolithID: normalize.CleanID(loc.PracticeMonolithID),
		PracticeCloudID:    normalize.CleanID(loc.PracticeCloudID),
		Source:             model.SourceMatch,
	}
}

// ReplaceAddress overwrites the row's address fields from a matched catalog
// record. Replacement is unconditional: the catalog is the source of truth
// once a location matched. Zips are zero-padded back to five digits.
func ReplaceAddress(row *model.InputRow, loc *model.CatalogLocation) {
	row.AddressLine1 = strings.TrimSpace(loc.AddressLine1)
	row.AddressLine2 = strings.TrimSpace(loc.AddressLine2)
	row.City = strings.TrimSpace(loc.City)
	row.State = strings.TrimSpace(loc.State)
	row.Zip = normalize.ZeroPadZip(normalize.CleanID(loc.Zip))
}
