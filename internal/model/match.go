package model

import "github.com/google/uuid"

// Strategy selects which matcher runs for the whole dataset. Strategies are
// mutually exclusive and chosen once, from column population stats.
type Strategy string

const (
	// StrategyDirectID joins on location IDs already present in the input.
	StrategyDirectID Strategy = "direct_id"
	// StrategyStateOnly matches the first catalog location per state when
	// state is the only populated address component.
	StrategyStateOnly Strategy = "state_only"
	// StrategyConcatAddress compares whole concatenated address strings when
	// only address line 1 is populated.
	StrategyConcatAddress Strategy = "concat_address"
	// StrategyFieldFuzzy is the default per-field cascading fuzzy match.
	StrategyFieldFuzzy Strategy = "field_fuzzy"
)

// MatchSource records which pass produced a match.
type MatchSource string

const (
	SourceMatch    MatchSource = "match"
	SourceBackfill MatchSource = "backfill"
)

// Match links one input row to one catalog location, occupying a numbered
// slot on the row. Slots start at 1 and only ever grow.
type Match struct {
	RunID  uuid.UUID
	RowNum int64
	Slot   int32

	LocationMonolithID string
	LocationCloudID    string

	// LocationType is intentionally blank for state-only matches.
	LocationType string

	PracticeMonolithID string
	PracticeCloudID    string

	// Confidence is a Jaro-Winkler score over the compared address text;
	// Relaxed marks matches where a narrowing filter was skipped because it
	// would have emptied the candidate set.
	Confidence float64
	Relaxed    bool

	Source MatchSource
}

// MatchColumns returns the ordered column names for COPY into loclink.matches.
func MatchColumns() []string {
	return []string{
		"run_id",
		"row_num",
		"slot",
		"location_monolith_id",
		"location_cloud_id",
		"location_type",
		"practice_monolith_id",
		"practice_cloud_id",
		"confidence",
		"relaxed",
		"source",
	}
}

// CopyValues returns the match values in MatchColumns() order.
func (m *Match) CopyValues() []any {
	return []any{
		m.RunID,
		m.RowNum,
		m.Slot,
		m.LocationMonolithID,
		m.LocationCloudID,
		m.LocationType,
		m.PracticeMonolithID,
		m.PracticeCloudID,
		m.Confidence,
		m.Relaxed,
		string(m.Source),
	}
}
