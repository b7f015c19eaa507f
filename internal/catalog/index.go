package catalog

import (
	"github.com/gyeh/loclink/internal/model"
	"github.com/gyeh/loclink/internal/normalize"
)

// Index holds the fetched catalog with the lookups the matchers need.
// Keys are cleaned: IDs via CleanID, states via Clean.
type Index struct {
	all          []*model.CatalogLocation
	byMonolithID map[string]*model.CatalogLocation
	byCloudID    map[string]*model.CatalogLocation
	byState      map[string][]*model.CatalogLocation
}

// NewIndex builds an Index over the given records. For duplicate monolith
// location IDs the first record wins.
func NewIndex(locs []*model.CatalogLocation) *Index {
	idx := &Index{
		all:          locs,
		byMonolithID: make(map[string]*model.CatalogLocation),
		byCloudID:    make(map[string]*model.CatalogLocation),
		byState:      make(map[string][]*model.CatalogLocation),
	}
	for _, loc := range locs {
		if id := normalize.CleanID(loc.LocationMonolithID); id != "" {
			if _, ok := idx.byMonolithID[id]; !ok {
				idx.byMonolithID[id] = loc
			}
		}
		if id := normalize.CleanID(loc.LocationCloudID); id != "" {
			if _, ok := idx.byCloudID[id]; !ok {
				idx.byCloudID[id] = loc
			}
		}
		if st := normalize.Clean(loc.State); st != "" {
			idx.byState[st] = append(idx.byState[st], loc)
		}
	}
	return idx
}

// All returns every record in fetch order.
func (i *Index) All() []*model.CatalogLocation {
	return i.all
}

// Len returns the number of indexed records.
func (i *Index) Len() int {
	return len(i.all)
}

// ByMonolithID returns the record for a cleaned monolith location ID, or nil.
func (i *Index) ByMonolithID(id string) *model.CatalogLocation {
	return i.byMonolithID[normalize.CleanID(id)]
}

// ByCloudID returns the record for a cleaned cloud location ID, or nil.
func (i *Index) ByCloudID(id string) *model.CatalogLocation {
	return i.byCloudID[normalize.CleanID(id)]
}

// ByState returns records whose cleaned state equals the given value.
func (i *Index) ByState(state string) []*model.CatalogLocation {
	return i.byState[normalize.Clean(state)]
}

// ForPractice returns records belonging to the given practice ID, accepting
// either the monolith or the cloud form (union of both). An empty ID returns
// the whole catalog.
func (i *Index) ForPractice(practiceID string) []*model.CatalogLocation {
	id := normalize.CleanID(practiceID)
	if id == "" {
		return i.all
	}
	var out []*model.CatalogLocation
	for _, loc := range i.all {
		if normalize.CleanID(loc.PracticeMonolithID) == id || normalize.CleanID(loc.PracticeCloudID) == id {
			out = append(out, loc)
		}
	}
	return out
}
