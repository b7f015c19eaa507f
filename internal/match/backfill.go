package match

import (
	"strings"

	"github.com/gyeh/loclink/internal/catalog"
	"github.com/gyeh/loclink/internal/classify"
	"github.com/gyeh/loclink/internal/model"
	"github.com/gyeh/loclink/internal/normalize"
)

// VirtualSentinel is the address line 1 value the catalog uses for
// state-wide virtual locations that have no street address.
const VirtualSentinel = "--"

// Backfill appends state-wide virtual catalog locations to rows whose
// location type is Both or Virtual. It runs over RELOADED state — rows and
// matches as persisted by the primary pass — and returns only the matches it
// adds.
//
// Each state contributes at most one record: the first sentinel in fetch
// order. A virtual location already present among a row's matches (compared
// by cleaned cloud location ID) is skipped, so re-running backfill adds
// nothing. New slots continue after the row's current maximum.
func Backfill(rows []*model.InputRow, matches map[int64][]model.Match, idx *catalog.Index) []model.Match {
	var added []model.Match

	for _, row := range rows {
		if row.LocationType != classify.Both && row.LocationType != classify.Virtual {
			continue
		}
		if strings.TrimSpace(row.State) == "" {
			continue
		}

		existing := make(map[string]bool)
		var maxSlot int32
		for _, m := range matches[row.RowNum] {
			if id := normalize.CleanID(m.LocationCloudID); id != "" {
				existing[id] = true
			}
			if m.Slot > maxSlot {
				maxSlot = m.Slot
			}
		}

		for _, st := range splitStates(row.State) {
			loc := firstSentinel(idx.ByState(st))
			if loc == nil {
				continue
			}
			cloudID := normalize.CleanID(loc.LocationCloudID)
			if cloudID == "" || existing[cloudID] {
				continue
			}
			existing[cloudID] = true
			maxSlot++

			m := fromLocation(loc)
			m.RowNum = row.RowNum
			m.Slot = maxSlot
			m.Confidence = 1
			m.Source = model.SourceBackfill
			added = append(added, m)
		}
	}
	return added
}

// firstSentinel returns the first state-wide virtual record, or nil.
func firstSentinel(locs []*model.CatalogLocation) *model.CatalogLocation {
	for _, loc := range locs {
		if strings.TrimSpace(loc.AddressLine1) == VirtualSentinel {
			return loc
		}
	}
	return nil
}
