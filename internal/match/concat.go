package match

import (
	"sort"
	"strings"

	"github.com/gyeh/loclink/internal/catalog"
	"github.com/gyeh/loclink/internal/model"
	"github.com/gyeh/loclink/internal/similarity"
)

// ConcatMatcher handles datasets whose address line 1 holds the entire
// address ("165 Broadway 23rd Floor New York NY 10006"): both sides are
// compared as one concatenated string.
type ConcatMatcher struct {
	Thresholds Thresholds
}

func (ConcatMatcher) Name() string { return string(model.StrategyConcatAddress) }

// Match compares the row's concatenated address against each candidate's,
// ordering survivors by confidence, best first.
func (m ConcatMatcher) Match(row *model.InputRow, idx *catalog.Index) []model.Match {
	rowText := joinNonEmpty(row.AddressLine1, row.AddressLine2, row.City, row.State, row.Zip)
	if rowText == "" {
		return nil
	}

	type scored struct {
		loc  *model.CatalogLocation
		conf float64
	}
	var hits []scored
	for _, loc := range idx.ForPractice(row.PracticeID) {
		candText := joinNonEmpty(loc.AddressLine1, loc.AddressLine2, loc.City, loc.State, loc.Zip)
		if candText == "" {
			continue
		}
		if !similarity.Similar(rowText, candText, m.Thresholds.Address) {
			continue
		}
		hits = append(hits, scored{loc: loc, conf: similarity.Confidence(rowText, candText)})
	}

	// Best candidate first; ties keep fetch order.
	sort.SliceStable(hits, func(a, b int) bool {
		return hits[a].conf > hits[b].conf
	})

	out := make([]model.Match, 0, len(hits))
	for _, h := range hits {
		mm := fromLocation(h.loc)
		mm.Slot = int32(len(out) + 1)
		mm.Confidence = h.conf
		out = append(out, mm)
	}
	return out
}

func joinNonEmpty(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
