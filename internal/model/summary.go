package model

import "time"

// RunSummary captures metrics from a single enrichment run.
type RunSummary struct {
	FilePath   string
	FileSHA256 string
	RunID      string
	Strategy   Strategy

	RowsRead         int64
	RowsStaged       int64
	RowsMatched      int64
	CatalogLocations int64
	Matches          int64
	BackfillMatches  int64
	MaxSlot          int32
	OutputPath       string

	DurationFetch    time.Duration
	DurationStage    time.Duration
	DurationMatch    time.Duration
	DurationBackfill time.Duration
	DurationExport   time.Duration
	DurationTotal    time.Duration
}
