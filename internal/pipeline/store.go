package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/loclink/internal/db"
	"github.com/gyeh/loclink/internal/model"
)

func loadRows(ctx context.Context, pool *pgxpool.Pool, runID uuid.UUID) ([]*model.InputRow, error) {
	rows, err := pool.Query(ctx,
		`SELECT row_num, npi, first_name, last_name, address_line1, address_line2,
		        city, state, zip, practice_id, location_type_raw, location_type,
		        location_ids, extra_headers, extra_values
		 FROM loclink.input_rows WHERE run_id = $1 ORDER BY row_num`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("load input rows: %w", err)
	}
	defer rows.Close()

	var out []*model.InputRow
	for rows.Next() {
		r := &model.InputRow{RunID: runID}
		err := rows.Scan(
			&r.RowNum, &r.NPI, &r.FirstName, &r.LastName, &r.AddressLine1, &r.AddressLine2,
			&r.City, &r.State, &r.Zip, &r.PracticeID, &r.LocationTypeRaw, &r.LocationType,
			&r.LocationIDs, &r.ExtraHeaders, &r.ExtraValues,
		)
		if err != nil {
			return nil, fmt.Errorf("scan input row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func loadCatalog(ctx context.Context, pool *pgxpool.Pool, runID uuid.UUID) ([]*model.CatalogLocation, error) {
	rows, err := pool.Query(ctx,
		`SELECT practice_monolith_id, practice_cloud_id, location_monolith_id,
		        location_cloud_id, address_line1, address_line2, city, state, zip,
		        is_virtual, location_type
		 FROM loclink.catalog_locations WHERE run_id = $1 ORDER BY seq`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	defer rows.Close()

	var out []*model.CatalogLocation
	for rows.Next() {
		c := &model.CatalogLocation{RunID: runID}
		err := rows.Scan(
			&c.PracticeMonolithID, &c.PracticeCloudID, &c.LocationMonolithID,
			&c.LocationCloudID, &c.AddressLine1, &c.AddressLine2, &c.City, &c.State, &c.Zip,
			&c.IsVirtual, &c.LocationType,
		)
		if err != nil {
			return nil, fmt.Errorf("scan catalog row: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func loadMatches(ctx context.Context, pool *pgxpool.Pool, runID uuid.UUID) (map[int64][]model.Match, error) {
	rows, err := pool.Query(ctx,
		`SELECT row_num, slot, location_monolith_id, location_cloud_id, location_type,
		        practice_monolith_id, practice_cloud_id, confidence, relaxed, source
		 FROM loclink.matches WHERE run_id = $1 ORDER BY row_num, slot`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("load matches: %w", err)
	}
	defer rows.Close()

	out := make(map[int64][]model.Match)
	for rows.Next() {
		m := model.Match{RunID: runID}
		var source string
		err := rows.Scan(
			&m.RowNum, &m.Slot, &m.LocationMonolithID, &m.LocationCloudID, &m.LocationType,
			&m.PracticeMonolithID, &m.PracticeCloudID, &m.Confidence, &m.Relaxed, &source,
		)
		if err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		m.Source = model.MatchSource(source)
		out[m.RowNum] = append(out[m.RowNum], m)
	}
	return out, rows.Err()
}

func copyMatches(ctx context.Context, pool *pgxpool.Pool, matches []model.Match) (int64, error) {
	if len(matches) == 0 {
		return 0, nil
	}
	ch := make(chan *model.Match, len(matches))
	for i := range matches {
		ch <- &matches[i]
	}
	close(ch)

	n, err := pool.CopyFrom(ctx,
		pgx.Identifier{"loclink", "matches"},
		model.MatchColumns(),
		db.NewChannelSource(ch),
	)
	if err != nil {
		return 0, fmt.Errorf("copy matches: %w", err)
	}
	return n, nil
}

// updateMatchedRows writes back the address replacement and location-type
// changes for rows that matched.
func updateMatchedRows(ctx context.Context, pool *pgxpool.Pool, rows []*model.InputRow) error {
	if len(rows) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, r := range rows {
		batch.Queue(
			`UPDATE loclink.input_rows
			 SET address_line1 = $3, address_line2 = $4, city = $5, state = $6,
			     zip = $7, location_type = $8
			 WHERE run_id = $1 AND row_num = $2`,
			r.RunID, r.RowNum, r.AddressLine1, r.AddressLine2, r.City, r.State,
			r.Zip, r.LocationType,
		)
	}
	br := pool.SendBatch(ctx, batch)
	defer br.Close()
	for range rows {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("update matched row: %w", err)
		}
	}
	return nil
}

// CleanupCatalog deletes the fetched catalog snapshot for a run.
func CleanupCatalog(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, runID uuid.UUID) error {
	start := time.Now()
	tag, err := pool.Exec(ctx,
		"DELETE FROM loclink.catalog_locations WHERE run_id = $1",
		runID,
	)
	if err != nil {
		return err
	}
	log.Info().
		Int64("rows_deleted", tag.RowsAffected()).
		Dur("duration", time.Since(start)).
		Msg("catalog cleanup complete")
	return nil
}
