package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/loclink/internal/classify"
	"github.com/gyeh/loclink/internal/exitcode"
	"github.com/gyeh/loclink/internal/input"
	"github.com/gyeh/loclink/internal/logging"
	"github.com/gyeh/loclink/internal/match"
	"github.com/gyeh/loclink/internal/normalize"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Dry-run validation and stats (no writes, no network)",
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().StringVar(&cfg.FilePath, "file", "", "Path to input CSV or Parquet file (required)")
	_ = planCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	sha, err := normalize.FileHash(cfg.FilePath)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash file")
		os.Exit(exitcode.ValidationError)
	}

	stat, err := os.Stat(cfg.FilePath)
	if err != nil {
		log.Error().Err(err).Msg("failed to stat file")
		os.Exit(exitcode.ValidationError)
	}

	ds, err := input.Load(cfg.FilePath)
	if err != nil {
		log.Error().Err(err).Msg("failed to load input")
		os.Exit(exitcode.ValidationError)
	}

	strategy := match.DetectStrategy(ds.Stats, cfg.DirectIDShare)

	typeCounts := make(map[string]int)
	practiceIDs := make(map[string]bool)
	for _, row := range ds.Rows {
		typeCounts[classify.LocationType(row.LocationTypeRaw)]++
		if id := normalize.CleanID(row.PracticeID); id != "" {
			practiceIDs[id] = true
		}
	}

	fmt.Println("=== loclink plan ===")
	fmt.Printf("File:       %s\n", cfg.FilePath)
	fmt.Printf("SHA-256:    %s\n", sha)
	fmt.Printf("Size:       %d bytes\n", stat.Size())
	fmt.Printf("Total rows: %d\n", len(ds.Rows))
	fmt.Printf("Practices:  %d\n", len(practiceIDs))
	fmt.Printf("Strategy:   %s\n", strategy)
	fmt.Println()
	fmt.Println("Column population:")
	fmt.Printf("  %-16s %5.1f%%\n", "Location IDs", ds.Stats.LocationIDShare*100)
	fmt.Printf("  %-16s %5.1f%%\n", "Address Line 1", ds.Stats.AddressLine1Share*100)
	fmt.Printf("  %-16s %5.1f%%\n", "Address Line 2", ds.Stats.AddressLine2Share*100)
	fmt.Printf("  %-16s %5.1f%%\n", "City", ds.Stats.CityShare*100)
	fmt.Printf("  %-16s %5.1f%%\n", "State", ds.Stats.StateShare*100)
	fmt.Printf("  %-16s %5.1f%%\n", "ZIP", ds.Stats.ZipShare*100)
	fmt.Println()
	fmt.Println("Location types (classified):")
	for _, name := range []string{classify.InPerson, classify.Virtual, classify.Both, ""} {
		if n := typeCounts[name]; n > 0 {
			label := name
			if label == "" {
				label = "(blank)"
			}
			fmt.Printf("  %-12s %d\n", label, n)
		}
	}
	if len(ds.MissingColumns) > 0 {
		fmt.Println()
		fmt.Println("Missing columns (passthrough):")
		for _, col := range ds.MissingColumns {
			fmt.Printf("  %s\n", col)
		}
	}

	return nil
}
