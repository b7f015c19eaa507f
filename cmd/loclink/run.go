package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/loclink/internal/catalog"
	"github.com/gyeh/loclink/internal/db"
	"github.com/gyeh/loclink/internal/exitcode"
	"github.com/gyeh/loclink/internal/logging"
	"github.com/gyeh/loclink/internal/pipeline"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full enrichment pipeline on an input file",
	RunE:  runRun,
}

func init() {
	f := runCmd.Flags()
	f.StringVar(&cfg.FilePath, "file", "", "Path to input CSV or Parquet file (required)")
	f.StringVar(&cfg.OutPath, "out", "", "Path for the enriched output CSV (required)")
	f.StringVar(&configFile, "config", "", "Optional YAML file with matching tunables")
	f.BoolVar(&cfg.Force, "force", false, "Re-run even if this file was already exported")
	f.BoolVar(&cfg.KeepStaging, "keep-catalog", false, "Keep the fetched catalog snapshot after export")
	f.BoolVar(&cfg.AbbreviateAddresses, "abbreviate-addresses", false, "Rewrite directionals and street suffixes to postal abbreviations before matching")
	_ = runCmd.MarkFlagRequired("file")
	_ = runCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(runCmd)
}

var configFile string

func runRun(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	if configFile != "" {
		if err := cfg.LoadFromFile(configFile); err != nil {
			log.Error().Err(err).Msg("config file invalid")
			os.Exit(exitcode.UsageError)
		}
	}
	cfg.ApplyDefaults()

	if err := cfg.ValidateForRun(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	client := catalog.NewClient(cfg.CatalogURL, log)

	summary, err := pipeline.Run(ctx, pool, client, log, &cfg)
	if err != nil {
		var pe *pipeline.PipelineError
		if errors.As(err, &pe) {
			log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("run failed")
			switch pe.Phase {
			case "preflight":
				os.Exit(exitcode.ValidationError)
			case "fetch":
				os.Exit(exitcode.LookupError)
			case "stage":
				os.Exit(exitcode.CopyError)
			default:
				os.Exit(exitcode.MatchError)
			}
		}
		log.Error().Err(err).Msg("run failed")
		os.Exit(exitcode.MatchError)
	}

	fmt.Printf("Run complete: %d rows, %d matched, %d matches (+%d backfilled), strategy %s (%.1fs)\n",
		summary.RowsRead, summary.RowsMatched, summary.Matches, summary.BackfillMatches,
		summary.Strategy, summary.DurationTotal.Seconds())
	return nil
}
