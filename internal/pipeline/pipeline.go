// Package pipeline orchestrates a full enrichment run: preflight → fetch →
// stage → match → reload → backfill → export, with per-phase status updates
// persisted on the run row.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/loclink/internal/catalog"
	"github.com/gyeh/loclink/internal/config"
	"github.com/gyeh/loclink/internal/model"
)

// PipelineError wraps an error with the phase where it occurred.
type PipelineError struct {
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Run executes the full enrichment pipeline.
//
// The reload between match and backfill is deliberate: backfill must only
// ever see what the primary pass persisted, so that re-running it against
// the stored run is exactly equivalent.
func Run(ctx context.Context, pool *pgxpool.Pool, client *catalog.Client, log zerolog.Logger, cfg *config.Config) (*model.RunSummary, error) {
	totalStart := time.Now()

	// Phase 1: Preflight
	log.Info().Str("file", cfg.FilePath).Msg("starting preflight")
	pf, err := Preflight(ctx, pool, log, cfg)
	if err != nil {
		return nil, &PipelineError{Phase: "preflight", Err: err}
	}

	if pf.AlreadyExported {
		log.Info().
			Str("sha256", pf.FileSHA256).
			Msg("file already exported, skipping (use --force to re-run)")
		return &model.RunSummary{
			FilePath:      pf.FilePath,
			FileSHA256:    pf.FileSHA256,
			RunID:         pf.RunID.String(),
			Strategy:      pf.Strategy,
			DurationTotal: time.Since(totalStart),
		}, nil
	}

	fail := func(phase string, err error) (*model.RunSummary, error) {
		_ = UpdateStatus(ctx, pool, pf.RunID, "failed")
		return nil, &PipelineError{Phase: phase, Err: err}
	}

	// Phase 2: Fetch catalog
	log.Info().Msg("fetching location catalog")
	if err := UpdateStatus(ctx, pool, pf.RunID, "fetching"); err != nil {
		return fail("fetch", err)
	}
	fetchRes, err := FetchCatalog(ctx, pool, client, log, pf)
	if err != nil {
		return fail("fetch", err)
	}

	// Phase 3: Stage input rows
	log.Info().Msg("staging input rows")
	stageRes, err := Stage(ctx, pool, log, pf)
	if err != nil {
		return fail("stage", err)
	}
	if err := UpdateStatus(ctx, pool, pf.RunID, "staged"); err != nil {
		return fail("stage", err)
	}

	// Phase 4: Match
	log.Info().Str("strategy", string(pf.Strategy)).Msg("starting match")
	if err := UpdateStatus(ctx, pool, pf.RunID, "matching"); err != nil {
		return fail("match", err)
	}
	matchRes, err := MatchRows(ctx, pool, log, pf)
	if err != nil {
		return fail("match", err)
	}
	if err := UpdateStatus(ctx, pool, pf.RunID, "matched"); err != nil {
		return fail("match", err)
	}

	// Phase 5: Reload. In-memory state from the match phase is discarded;
	// backfill reads back exactly what was persisted.
	state, err := ReloadState(ctx, pool, pf.RunID)
	if err != nil {
		return fail("reload", err)
	}

	// Phase 6: Backfill virtual locations
	backfillRes, err := BackfillVirtual(ctx, pool, log, pf.RunID, state)
	if err != nil {
		return fail("backfill", err)
	}
	if err := UpdateStatus(ctx, pool, pf.RunID, "backfilled"); err != nil {
		return fail("backfill", err)
	}

	// Phase 7: Export
	log.Info().Str("out", cfg.OutPath).Msg("exporting")
	exportRes, err := Export(ctx, pool, log, pf.RunID, cfg.OutPath)
	if err != nil {
		return fail("export", err)
	}
	if err := UpdateStatus(ctx, pool, pf.RunID, "exported"); err != nil {
		return fail("export", err)
	}

	// Cleanup the fetched catalog snapshot unless asked to keep it.
	if !cfg.KeepStaging {
		if err := CleanupCatalog(ctx, pool, log, pf.RunID); err != nil {
			log.Warn().Err(err).Msg("catalog cleanup failed (non-fatal)")
		}
	}

	summary := &model.RunSummary{
		FilePath:         pf.FilePath,
		FileSHA256:       pf.FileSHA256,
		RunID:            pf.RunID.String(),
		Strategy:         pf.Strategy,
		RowsRead:         int64(len(pf.Dataset.Rows)),
		RowsStaged:       stageRes.RowsStaged,
		RowsMatched:      matchRes.RowsMatched,
		CatalogLocations: fetchRes.Locations,
		Matches:          matchRes.Matches,
		BackfillMatches:  backfillRes.Added,
		MaxSlot:          exportRes.MaxSlot,
		OutputPath:       cfg.OutPath,
		DurationFetch:    fetchRes.Duration,
		DurationStage:    stageRes.Duration,
		DurationMatch:    matchRes.Duration,
		DurationBackfill: backfillRes.Duration,
		DurationExport:   exportRes.Duration,
		DurationTotal:    time.Since(totalStart),
	}

	log.Info().
		Int64("rows", summary.RowsRead).
		Int64("rows_matched", summary.RowsMatched).
		Int64("matches", summary.Matches).
		Int64("backfill_matches", summary.BackfillMatches).
		Int32("max_slot", summary.MaxSlot).
		Str("strategy", string(summary.Strategy)).
		Str("total_duration", summary.DurationTotal.String()).
		Msg("enrichment pipeline complete")

	return summary, nil
}
