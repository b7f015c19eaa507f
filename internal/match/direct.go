package match

import (
	"github.com/gyeh/loclink/internal/catalog"
	"github.com/gyeh/loclink/internal/model"
	"github.com/gyeh/loclink/internal/normalize"
)

// DirectIDMatcher joins the input's own location IDs against the catalog's
// monolith location IDs. Used when a location-ID column is materially
// populated; fuzzy matching would only add noise on top of exact keys.
type DirectIDMatcher struct{}

func (DirectIDMatcher) Name() string { return string(model.StrategyDirectID) }

// Match emits one slot per distinct input ID, in input order. IDs the
// catalog knows are enriched with cloud and practice IDs; IDs it does not
// know keep only the monolith ID so nothing the practice supplied is lost.
func (DirectIDMatcher) Match(row *model.InputRow, idx *catalog.Index) []model.Match {
	seen := make(map[string]bool)
	var out []model.Match

	for _, raw := range row.LocationIDs {
		id := normalize.CleanID(raw)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true

		loc := idx.ByMonolithID(id)
		if loc == nil {
			out = append(out, model.Match{
				Slot:               int32(len(out) + 1),
				LocationMonolithID: id,
				Source:             model.SourceMatch,
			})
			continue
		}

		m := fromLocation(loc)
		m.Slot = int32(len(out) + 1)
		m.Confidence = 1
		out = append(out, m)
	}
	return out
}
