package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/loclink/internal/db"
	"github.com/gyeh/loclink/internal/model"
)

const stageBatchSize = 1024

// StageResult holds metrics from the staging phase.
type StageResult struct {
	RowsStaged int64
	Duration   time.Duration
}

// Stage COPY-loads the prepared input rows into loclink.input_rows via a
// channel-backed CopyFromSource.
func Stage(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, pf *PreflightResult) (*StageResult, error) {
	start := time.Now()

	ch := make(chan *model.InputRow, stageBatchSize)
	errCh := make(chan error, 1)

	// Producer goroutine: tag rows with the run ID and push to the channel.
	go func() {
		defer close(ch)
		for _, row := range pf.Dataset.Rows {
			row.RunID = pf.RunID
			select {
			case ch <- row:
			case <-ctx.Done():
				errCh <- ctx.Err()
				return
			}
		}
		errCh <- nil
	}()

	rowsStaged, err := pool.CopyFrom(ctx,
		pgx.Identifier{"loclink", "input_rows"},
		model.InputRowColumns(),
		db.NewChannelSource(ch),
	)

	prodErr := <-errCh
	if prodErr != nil {
		return nil, fmt.Errorf("stage producer: %w", prodErr)
	}
	if err != nil {
		return nil, fmt.Errorf("stage copy: %w", err)
	}

	dur := time.Since(start)
	log.Info().
		Int64("rows_staged", rowsStaged).
		Str("duration", dur.String()).
		Msg("staging complete")

	return &StageResult{RowsStaged: rowsStaged, Duration: dur}, nil
}
