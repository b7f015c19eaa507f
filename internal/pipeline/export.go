package pipeline

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/loclink/internal/match"
)

// ExportResult holds metrics from the export phase.
type ExportResult struct {
	RowsWritten int64
	MaxSlot     int32
	Duration    time.Duration
}

// Export reads the final rows and matches back from the database, expands
// the per-slot columns, and writes the output CSV. Reading fresh here means
// the export always reflects the backfilled state.
func Export(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, runID uuid.UUID, outPath string) (*ExportResult, error) {
	start := time.Now()

	rows, err := loadRows(ctx, pool, runID)
	if err != nil {
		return nil, err
	}
	matches, err := loadMatches(ctx, pool, runID)
	if err != nil {
		return nil, err
	}
	maxSlot := match.MaxSlot(matches)

	var extraHeaders []string
	if len(rows) > 0 {
		extraHeaders = rows[0].ExtraHeaders
	}

	f, err := os.Create(outPath)
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(match.ExpandHeader(maxSlot, extraHeaders)); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(match.ExpandRow(row, matches[row.RowNum], maxSlot)); err != nil {
			return nil, fmt.Errorf("write row %d: %w", row.RowNum, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush output: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close output: %w", err)
	}

	dur := time.Since(start)
	log.Info().
		Int("rows", len(rows)).
		Int32("max_slot", maxSlot).
		Str("out", outPath).
		Str("duration", dur.String()).
		Msg("export complete")

	return &ExportResult{
		RowsWritten: int64(len(rows)),
		MaxSlot:     maxSlot,
		Duration:    dur,
	}, nil
}
