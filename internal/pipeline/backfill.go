package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/loclink/internal/catalog"
	"github.com/gyeh/loclink/internal/match"
	"github.com/gyeh/loclink/internal/model"
)

// RunState is the persisted state of a run as read back from the database.
type RunState struct {
	Rows    []*model.InputRow
	Matches map[int64][]model.Match
	Index   *catalog.Index
}

// ReloadState discards any in-memory view and reads rows, matches, and the
// catalog snapshot back from the database.
func ReloadState(ctx context.Context, pool *pgxpool.Pool, runID uuid.UUID) (*RunState, error) {
	rows, err := loadRows(ctx, pool, runID)
	if err != nil {
		return nil, err
	}
	matches, err := loadMatches(ctx, pool, runID)
	if err != nil {
		return nil, err
	}
	cat, err := loadCatalog(ctx, pool, runID)
	if err != nil {
		return nil, err
	}
	return &RunState{
		Rows:    rows,
		Matches: matches,
		Index:   catalog.NewIndex(cat),
	}, nil
}

// BackfillResult holds metrics from the virtual backfill phase.
type BackfillResult struct {
	Added    int64
	Duration time.Duration
}

// BackfillVirtual appends state-wide virtual locations to eligible rows and
// persists the additions.
func BackfillVirtual(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, runID uuid.UUID, state *RunState) (*BackfillResult, error) {
	start := time.Now()

	added := match.Backfill(state.Rows, state.Matches, state.Index)
	for i := range added {
		added[i].RunID = runID
	}

	n, err := copyMatches(ctx, pool, added)
	if err != nil {
		return nil, err
	}

	dur := time.Since(start)
	log.Info().
		Int64("matches_added", n).
		Str("duration", dur.String()).
		Msg("virtual backfill complete")

	return &BackfillResult{Added: n, Duration: dur}, nil
}
