package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/loclink/internal/classify"
	"github.com/gyeh/loclink/internal/config"
	"github.com/gyeh/loclink/internal/input"
	"github.com/gyeh/loclink/internal/match"
	"github.com/gyeh/loclink/internal/model"
	"github.com/gyeh/loclink/internal/normalize"
)

// PreflightResult holds all context resolved during the preflight phase.
type PreflightResult struct {
	// FilePath is the original path passed in, stored as-is.
	FilePath string
	// FileSHA256 is the hex-encoded SHA-256 digest of the input file.
	FileSHA256 string
	// FileSize is the file size in bytes from os.Stat.
	FileSize int64
	// RunID is a freshly generated UUIDv4 identifying this run; it tags
	// every staged row, catalog record, and match.
	RunID uuid.UUID
	// Dataset is the fully loaded input with classification applied.
	Dataset *input.Dataset
	// Strategy is the dataset-wide match strategy chosen from column stats.
	Strategy model.Strategy
	// Thresholds are the similarity cutoffs in effect for this run.
	Thresholds match.Thresholds
	// AlreadyExported is true when a run with the same file digest already
	// reached exported status and force mode is off.
	AlreadyExported bool
}

// Preflight hashes and loads the input, applies location-type
// classification and address preparation, picks the match strategy, and
// registers the run.
func Preflight(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, cfg *config.Config) (*PreflightResult, error) {
	start := time.Now()

	sha, err := normalize.FileHash(cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("preflight hash: %w", err)
	}

	stat, err := os.Stat(cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("preflight stat: %w", err)
	}

	ds, err := input.Load(cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("preflight load: %w", err)
	}

	// Schema drift is a warning: rows pass through the stages that would
	// have used the absent columns.
	for _, col := range ds.MissingColumns {
		log.Warn().Str("column", col).Msg("input column missing, passing through")
	}

	strategy := match.DetectStrategy(ds.Stats, cfg.DirectIDShare)
	prepareRows(ds, cfg, strategy)

	log.Info().
		Str("file", filepath.Base(cfg.FilePath)).
		Str("sha256", sha).
		Int("rows", len(ds.Rows)).
		Str("strategy", string(strategy)).
		Float64("location_id_share", ds.Stats.LocationIDShare).
		Dur("duration", time.Since(start)).
		Msg("preflight complete")

	pf := &PreflightResult{
		FilePath:   cfg.FilePath,
		FileSHA256: sha,
		FileSize:   stat.Size(),
		RunID:      uuid.New(),
		Dataset:    ds,
		Strategy:   strategy,
		Thresholds: match.Thresholds{Address: cfg.AddressThreshold, Field: cfg.FieldThreshold},
	}

	if !cfg.Force {
		exported, err := hasExportedRun(ctx, pool, sha)
		if err != nil {
			return nil, fmt.Errorf("preflight lookup: %w", err)
		}
		if exported {
			pf.AlreadyExported = true
			return pf, nil
		}
	}

	if err := registerRun(ctx, pool, pf); err != nil {
		return nil, fmt.Errorf("preflight register run: %w", err)
	}
	return pf, nil
}

// prepareRows applies per-row preparation: location-type classification,
// splitting a combined address line when the input had no line-2 column,
// and optional postal abbreviation.
func prepareRows(ds *input.Dataset, cfg *config.Config, strategy model.Strategy) {
	noLine2Column := false
	for _, col := range ds.MissingColumns {
		if col == "Address Line 2" {
			noLine2Column = true
		}
	}

	for _, row := range ds.Rows {
		row.LocationType = classify.LocationType(row.LocationTypeRaw)
		// Rows with no stated type default to in-person, except under the
		// direct-ID strategy where the input's own IDs speak for themselves
		// and the type stays blank.
		if row.LocationType == "" && strategy != model.StrategyDirectID {
			row.LocationType = classify.InPerson
		}

		if noLine2Column && row.AddressLine1 != "" {
			line1, line2 := normalize.SplitAddressLine(row.AddressLine1)
			if line2 != "" {
				row.AddressLine1 = line1
				row.AddressLine2 = line2
			}
		}

		if cfg.AbbreviateAddresses {
			row.AddressLine1 = normalize.AbbreviateAddress(row.AddressLine1)
			row.AddressLine2 = normalize.AbbreviateAddress(row.AddressLine2)
		}

		row.Zip = normalize.ZeroPadZip(normalize.CleanID(row.Zip))
	}
}

func hasExportedRun(ctx context.Context, pool *pgxpool.Pool, sha string) (bool, error) {
	var runID uuid.UUID
	err := pool.QueryRow(ctx,
		"SELECT run_id FROM loclink.runs WHERE source_sha256 = $1 AND status = 'exported' LIMIT 1",
		sha,
	).Scan(&runID)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func registerRun(ctx context.Context, pool *pgxpool.Pool, pf *PreflightResult) error {
	_, err := pool.Exec(ctx,
		`INSERT INTO loclink.runs (run_id, source_file, source_sha256, file_size_bytes, strategy, status)
		 VALUES ($1, $2, $3, $4, $5, 'pending')`,
		pf.RunID, filepath.Base(pf.FilePath), pf.FileSHA256, pf.FileSize, string(pf.Strategy),
	)
	return err
}

// UpdateStatus updates the run status.
func UpdateStatus(ctx context.Context, pool *pgxpool.Pool, runID uuid.UUID, status string) error {
	_, err := pool.Exec(ctx,
		"UPDATE loclink.runs SET status = $2 WHERE run_id = $1",
		runID, status,
	)
	return err
}

// distinctPracticeIDs returns the unique, cleaned practice IDs of the
// dataset in first-seen order.
func distinctPracticeIDs(rows []*model.InputRow) []string {
	var out []string
	seen := make(map[string]bool)
	for _, row := range rows {
		id := normalize.CleanID(strings.TrimSpace(row.PracticeID))
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
