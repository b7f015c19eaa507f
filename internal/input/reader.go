// Package input loads the practitioner/location dataset from CSV or Parquet
// into normalized rows plus the column population stats that drive strategy
// selection.
package input

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gyeh/loclink/internal/model"
	"github.com/gyeh/loclink/internal/normalize"
)

// Dataset is a fully loaded input file.
type Dataset struct {
	Rows  []*model.InputRow
	Stats ColumnStats

	// MissingColumns lists canonical optional columns the file did not
	// carry. Schema drift is a warning, not an error; affected stages pass
	// the rows through unmodified.
	MissingColumns []string
}

// ColumnStats holds per-column non-empty fractions over the whole dataset.
type ColumnStats struct {
	Total int64

	// LocationIDShare is the highest non-empty fraction across the numbered
	// location-ID columns, checked against the direct-ID materiality share.
	LocationIDShare float64

	AddressLine1Share float64
	AddressLine2Share float64
	CityShare         float64
	StateShare        float64
	ZipShare          float64
}

// Load reads the dataset at path, dispatching on file extension.
func Load(path string) (*Dataset, error) {
	if strings.EqualFold(filepath.Ext(path), ".parquet") {
		return loadParquet(path)
	}
	return loadCSV(path)
}

// column kinds produced by header canonicalization.
type colKind int

const (
	colExtra colKind = iota
	colNPI
	colFirstName
	colLastName
	colAddressLine1
	colAddressLine2
	colCity
	colState
	colZip
	colPracticeID
	colLocationType
	colLocationID
)

var canonicalNames = map[colKind]string{
	colNPI:          "NPI Number",
	colFirstName:    "First Name",
	colLastName:     "Last Name",
	colAddressLine1: "Address Line 1",
	colAddressLine2: "Address Line 2",
	colCity:         "City",
	colState:        "State",
	colZip:          "ZIP",
	colPracticeID:   "Practice ID",
	colLocationType: "Location Type",
}

var headerAliases = map[string]colKind{
	"npi":            colNPI,
	"npi number":     colNPI,
	"first name":     colFirstName,
	"firstname":      colFirstName,
	"last name":      colLastName,
	"lastname":       colLastName,
	"address line 1": colAddressLine1,
	"address line1":  colAddressLine1,
	"address 1":      colAddressLine1,
	"address1":       colAddressLine1,
	"address line 2": colAddressLine2,
	"address line2":  colAddressLine2,
	"address 2":      colAddressLine2,
	"address2":       colAddressLine2,
	"city":           colCity,
	"state":          colState,
	"zip":            colZip,
	"zip code":       colZip,
	"zipcode":        colZip,
	"postal code":    colZip,
	"practice id":    colPracticeID,
	"location type":  colLocationType,
}

// Numbered direct-ID columns: "Location ID 1", "Location Monolith ID 2", ...
// An unnumbered "Location ID" counts too.
var locationIDHeader = regexp.MustCompile(`^location (monolith )?id( \d+)?$`)

func classifyHeader(h string) colKind {
	key := normalize.Clean(h)
	if kind, ok := headerAliases[key]; ok {
		return kind
	}
	if locationIDHeader.MatchString(key) {
		return colLocationID
	}
	return colExtra
}

// missingColumns reports which canonical columns the header lacked, in a
// stable order.
func missingColumns(present map[colKind]bool) []string {
	order := []colKind{
		colNPI, colFirstName, colLastName, colAddressLine1, colAddressLine2,
		colCity, colState, colZip, colPracticeID, colLocationType,
	}
	var out []string
	for _, kind := range order {
		if !present[kind] {
			out = append(out, canonicalNames[kind])
		}
	}
	return out
}

func validateRequired(present map[colKind]bool) error {
	if !present[colNPI] {
		return fmt.Errorf("input has no NPI column")
	}
	return nil
}
