package match

import (
	"fmt"

	"github.com/gyeh/loclink/internal/model"
)

// baseColumns lead the output in fixed order, before the per-slot groups.
var baseColumns = []string{
	"NPI Number",
	"First Name",
	"Last Name",
	"Address Line 1",
	"Address Line 2",
	"City",
	"State",
	"ZIP",
	"Practice ID",
	"Location Type",
}

// slotColumns is the five-column group emitted once per match slot.
func slotColumns(slot int32) []string {
	return []string{
		fmt.Sprintf("Location Monolith ID %d", slot),
		fmt.Sprintf("Location Cloud ID %d", slot),
		fmt.Sprintf("Practice Monolith ID %d", slot),
		fmt.Sprintf("Practice Cloud ID %d", slot),
		fmt.Sprintf("Location Type %d", slot),
	}
}

// MaxSlot returns the highest slot across all matches.
func MaxSlot(matches map[int64][]model.Match) int32 {
	var max int32
	for _, ms := range matches {
		for _, m := range ms {
			if m.Slot > max {
				max = m.Slot
			}
		}
	}
	return max
}

// ExpandHeader builds the output header: base columns, then one group per
// slot up to maxSlot, then the passthrough extras in their input order.
// The layout is a pure function of maxSlot and extras, so re-expanding
// after backfill only ever appends groups.
func ExpandHeader(maxSlot int32, extraHeaders []string) []string {
	out := make([]string, 0, len(baseColumns)+int(maxSlot)*5+len(extraHeaders))
	out = append(out, baseColumns...)
	for slot := int32(1); slot <= maxSlot; slot++ {
		out = append(out, slotColumns(slot)...)
	}
	out = append(out, extraHeaders...)
	return out
}

// ExpandRow renders one output record matching ExpandHeader's layout. Slots
// the row does not fill stay empty.
func ExpandRow(row *model.InputRow, matches []model.Match, maxSlot int32) []string {
	out := make([]string, 0, len(baseColumns)+int(maxSlot)*5+len(row.ExtraValues))
	out = append(out,
		row.NPI,
		row.FirstName,
		row.LastName,
		row.AddressLine1,
		row.AddressLine2,
		row.City,
		row.State,
		row.Zip,
		row.PracticeID,
		row.LocationType,
	)

	bySlot := make(map[int32]model.Match, len(matches))
	for _, m := range matches {
		bySlot[m.Slot] = m
	}
	for slot := int32(1); slot <= maxSlot; slot++ {
		if m, ok := bySlot[slot]; ok {
			out = append(out,
				m.LocationMonolithID,
				m.LocationCloudID,
				m.PracticeMonolithID,
				m.PracticeCloudID,
				m.LocationType,
			)
		} else {
			out = append(out, "", "", "", "", "")
		}
	}

	out = append(out, row.ExtraValues...)
	return out
}
