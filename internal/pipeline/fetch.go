package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/loclink/internal/catalog"
	"github.com/gyeh/loclink/internal/classify"
	"github.com/gyeh/loclink/internal/db"
	"github.com/gyeh/loclink/internal/model"
	"github.com/gyeh/loclink/internal/normalize"
)

// FetchResult holds metrics from the catalog fetch phase.
type FetchResult struct {
	Practices int64
	Locations int64
	Duration  time.Duration
}

// FetchCatalog resolves the dataset's practice IDs to cloud IDs, fetches
// every location for them, and persists the snapshot. Any lookup failure is
// fatal for the run: matching against a partial catalog would silently
// produce wrong links.
func FetchCatalog(ctx context.Context, pool *pgxpool.Pool, client *catalog.Client, log zerolog.Logger, pf *PreflightResult) (*FetchResult, error) {
	start := time.Now()

	monolithIDs := distinctPracticeIDs(pf.Dataset.Rows)
	if len(monolithIDs) == 0 {
		log.Warn().Msg("no practice ids in input; catalog will be empty")
		return &FetchResult{Duration: time.Since(start)}, nil
	}

	cloudByMonolith, err := client.ResolveCloudIDs(ctx, monolithIDs)
	if err != nil {
		return nil, err
	}

	// IDs the service could not resolve are assumed to already be cloud IDs.
	type practiceRef struct {
		monolithID string
		cloudID    string
	}
	refs := make([]practiceRef, 0, len(monolithIDs))
	for _, id := range monolithIDs {
		if cloud, ok := cloudByMonolith[id]; ok {
			refs = append(refs, practiceRef{monolithID: id, cloudID: cloud})
		} else {
			refs = append(refs, practiceRef{cloudID: id})
		}
	}

	var locations []*model.CatalogLocation
	for _, ref := range refs {
		locs, err := client.Locations(ctx, ref.cloudID)
		if err != nil {
			return nil, err
		}
		for i := range locs {
			locations = append(locations, toCatalogLocation(&locs[i], pf, ref.monolithID, ref.cloudID))
		}
	}

	if err := copyCatalog(ctx, pool, locations); err != nil {
		return nil, fmt.Errorf("persist catalog: %w", err)
	}

	dur := time.Since(start)
	log.Info().
		Int("practices", len(refs)).
		Int("locations", len(locations)).
		Str("duration", dur.String()).
		Msg("catalog fetch complete")

	return &FetchResult{
		Practices: int64(len(refs)),
		Locations: int64(len(locations)),
		Duration:  dur,
	}, nil
}

func toCatalogLocation(loc *catalog.Location, pf *PreflightResult, monolithID, cloudID string) *model.CatalogLocation {
	practiceCloud := normalize.CleanID(string(loc.PracticeID))
	if practiceCloud == "" {
		practiceCloud = cloudID
	}
	return &model.CatalogLocation{
		RunID:              pf.RunID,
		PracticeMonolithID: monolithID,
		PracticeCloudID:    practiceCloud,
		LocationMonolithID: normalize.CleanID(string(loc.MonolithLocationID)),
		LocationCloudID:    normalize.CleanID(string(loc.LocationID)),
		AddressLine1:       loc.AddressLine1,
		AddressLine2:       loc.AddressLine2,
		City:               loc.City,
		State:              loc.State,
		Zip:                normalize.CleanID(string(loc.Zip)),
		IsVirtual:          loc.IsVirtual,
		LocationType:       classify.FromVirtualFlag(loc.IsVirtual),
	}
}

func copyCatalog(ctx context.Context, pool *pgxpool.Pool, locations []*model.CatalogLocation) error {
	if len(locations) == 0 {
		return nil
	}
	ch := make(chan *model.CatalogLocation, len(locations))
	for _, loc := range locations {
		ch <- loc
	}
	close(ch)

	_, err := pool.CopyFrom(ctx,
		pgx.Identifier{"loclink", "catalog_locations"},
		model.CatalogColumns(),
		db.NewChannelSource(ch),
	)
	return err
}
