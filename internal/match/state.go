package match

import (
	"github.com/gyeh/loclink/internal/catalog"
	"github.com/gyeh/loclink/internal/model"
)

// StateOnlyMatcher handles datasets where state is the only populated
// address component: each state entry (the cell may hold a comma-separated
// list) matches the first catalog location in that state.
type StateOnlyMatcher struct{}

func (StateOnlyMatcher) Name() string { return string(model.StrategyStateOnly) }

// Match returns one match per distinct state entry. The match's location
// type is left blank on purpose: a state-level link says nothing about how
// care is delivered there, and downstream consumers key off the blank.
func (StateOnlyMatcher) Match(row *model.InputRow, idx *catalog.Index) []model.Match {
	var out []model.Match
	for _, st := range splitStates(row.State) {
		locs := idx.ByState(st)
		if len(locs) == 0 {
			continue
		}
		m := fromLocation(locs[0])
		m.Slot = int32(len(out) + 1)
		m.LocationType = ""
		m.Confidence = 1
		out = append(out, m)
	}
	return out
}
