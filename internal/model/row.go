package model

import (
	"github.com/google/uuid"
)

// InputRow is the normalized, DB-ready representation of a single
// practitioner/location row from the input dataset.
type InputRow struct {
	RunID  uuid.UUID
	RowNum int64

	NPI       string
	FirstName string
	LastName  string

	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	Zip          string

	PracticeID string

	// LocationTypeRaw is the value as it appeared in the input; LocationType
	// is the classified value (In Person / Virtual / Both / blank).
	LocationTypeRaw string
	LocationType    string

	// LocationIDs holds any non-empty direct location IDs carried by the
	// input's numbered "Location ID n" columns, cleaned of trailing ".0".
	LocationIDs []string

	// ExtraHeaders/ExtraValues carry unrecognized input columns through to
	// the output untouched, in their original order. Parallel slices so the
	// ordering survives the database round trip.
	ExtraHeaders []string
	ExtraValues  []string
}

// InputRowColumns returns the ordered column names for COPY into
// loclink.input_rows.
func InputRowColumns() []string {
	return []string{
		"run_id",
		"row_num",
		"npi",
		"first_name",
		"last_name",
		"address_line1",
		"address_line2",
		"city",
		"state",
		"zip",
		"practice_id",
		"location_type_raw",
		"location_type",
		"location_ids",
		"extra_headers",
		"extra_values",
	}
}

// CopyValues returns the row values in the same order as InputRowColumns(),
// suitable for pgx CopyFromSource.
func (r *InputRow) CopyValues() []any {
	return []any{
		r.RunID,
		r.RowNum,
		r.NPI,
		r.FirstName,
		r.LastName,
		r.AddressLine1,
		r.AddressLine2,
		r.City,
		r.State,
		r.Zip,
		r.PracticeID,
		r.LocationTypeRaw,
		r.LocationType,
		r.LocationIDs,
		r.ExtraHeaders,
		r.ExtraValues,
	}
}
