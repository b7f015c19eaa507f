package pipeline

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/loclink/internal/catalog"
	"github.com/gyeh/loclink/internal/match"
	"github.com/gyeh/loclink/internal/model"
)

// MatchResult holds metrics from the primary match phase.
type MatchResult struct {
	RowsMatched int64
	Matches     int64
	Relaxed     int64
	Duration    time.Duration
}

// MatchRows runs the selected matcher over the STAGED rows. Rows and
// catalog are read back from the database rather than reused from memory so
// the phase operates on exactly what was persisted.
func MatchRows(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, pf *PreflightResult) (*MatchResult, error) {
	start := time.Now()

	rows, err := loadRows(ctx, pool, pf.RunID)
	if err != nil {
		return nil, err
	}
	cat, err := loadCatalog(ctx, pool, pf.RunID)
	if err != nil {
		return nil, err
	}
	idx := catalog.NewIndex(cat)
	matcher := match.ForStrategy(pf.Strategy, pf.Thresholds)

	var (
		allMatches []model.Match
		updated    []*model.InputRow
		relaxed    int64
	)

	for _, row := range rows {
		ms := matcher.Match(row, idx)
		if len(ms) == 0 {
			log.Debug().Int64("row", row.RowNum).Msg("no candidate")
			continue
		}

		// The first match's catalog record becomes the row's address.
		first := idx.ByMonolithID(ms[0].LocationMonolithID)
		if first == nil {
			first = idx.ByCloudID(ms[0].LocationCloudID)
		}
		if first != nil {
			match.ReplaceAddress(row, first)
		}

		// A state-level link says nothing about delivery mode; the main
		// location type is cleared along with the per-slot types.
		if pf.Strategy == model.StrategyStateOnly {
			row.LocationType = ""
		}

		for i := range ms {
			ms[i].RunID = pf.RunID
			ms[i].RowNum = row.RowNum
			if ms[i].Relaxed {
				relaxed++
			}
		}
		allMatches = append(allMatches, ms...)
		updated = append(updated, row)
	}

	if err := updateMatchedRows(ctx, pool, updated); err != nil {
		return nil, err
	}
	copied, err := copyMatches(ctx, pool, allMatches)
	if err != nil {
		return nil, err
	}

	dur := time.Since(start)
	log.Info().
		Int("rows", len(rows)).
		Int("rows_matched", len(updated)).
		Int64("matches", copied).
		Int64("relaxed", relaxed).
		Str("matcher", matcher.Name()).
		Str("duration", dur.String()).
		Msg("match complete")

	return &MatchResult{
		RowsMatched: int64(len(updated)),
		Matches:     copied,
		Relaxed:     relaxed,
		Duration:    dur,
	}, nil
}
