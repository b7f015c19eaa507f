package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/loclink/internal/config"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "loclink",
	Short: "Practitioner location record-linkage and enrichment engine",
	Long:  "Reconciles practitioner/location datasets against the practice location catalog, enriching rows with canonical location IDs and location types.",
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.DSN, "dsn", os.Getenv("DATABASE_URL"), "Postgres connection string (or set DATABASE_URL)")
	pf.StringVar(&cfg.CatalogURL, "catalog-url", os.Getenv("CATALOG_BASE_URL"), "Provider reference service base URL (or set CATALOG_BASE_URL)")
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
}
