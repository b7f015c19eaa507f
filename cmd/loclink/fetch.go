package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/loclink/internal/catalog"
	"github.com/gyeh/loclink/internal/db"
	"github.com/gyeh/loclink/internal/exitcode"
	"github.com/gyeh/loclink/internal/logging"
	"github.com/gyeh/loclink/internal/pipeline"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch and persist the location catalog for an input file's practices",
	RunE:  runFetch,
}

func init() {
	fetchCmd.Flags().StringVar(&cfg.FilePath, "file", "", "Path to input CSV or Parquet file (required)")
	_ = fetchCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()
	cfg.ApplyDefaults()
	cfg.Force = true // fetch always registers a fresh run

	if err := cfg.ValidateWithDSN(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}
	if cfg.CatalogURL == "" {
		log.Error().Msg("--catalog-url or CATALOG_BASE_URL is required")
		os.Exit(exitcode.UsageError)
	}

	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	pf, err := pipeline.Preflight(ctx, pool, log, &cfg)
	if err != nil {
		log.Error().Err(err).Msg("preflight failed")
		os.Exit(exitcode.ValidationError)
	}

	client := catalog.NewClient(cfg.CatalogURL, log)
	res, err := pipeline.FetchCatalog(ctx, pool, client, log, pf)
	if err != nil {
		log.Error().Err(err).Msg("catalog fetch failed")
		os.Exit(exitcode.LookupError)
	}

	fmt.Printf("Fetched %d locations across %d practices (run %s)\n",
		res.Locations, res.Practices, pf.RunID)
	return nil
}
