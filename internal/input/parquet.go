package input

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/gyeh/loclink/internal/model"
	"github.com/gyeh/loclink/internal/normalize"
)

const parquetBatchSize = 1024

// parquetRow mirrors the Parquet schema for one practitioner/location row.
// Numbered location-ID columns cap at five, matching the spreadsheet
// template the files are exported from.
type parquetRow struct {
	NPI string `parquet:"npi"`

	FirstName *string `parquet:"first_name,optional"`
	LastName  *string `parquet:"last_name,optional"`

	AddressLine1 *string `parquet:"address_line1,optional"`
	AddressLine2 *string `parquet:"address_line2,optional"`
	City         *string `parquet:"city,optional"`
	State        *string `parquet:"state,optional"`
	Zip          *string `parquet:"zip,optional"`

	PracticeID   *string `parquet:"practice_id,optional"`
	LocationType *string `parquet:"location_type,optional"`

	LocationID1 *string `parquet:"location_id_1,optional"`
	LocationID2 *string `parquet:"location_id_2,optional"`
	LocationID3 *string `parquet:"location_id_3,optional"`
	LocationID4 *string `parquet:"location_id_4,optional"`
	LocationID5 *string `parquet:"location_id_5,optional"`
}

func loadParquet(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat input: %w", err)
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("open parquet: %w", err)
	}

	reader := parquet.NewGenericReader[parquetRow](pf)
	defer reader.Close()

	present, err := parquetColumns(reader.Schema())
	if err != nil {
		return nil, err
	}

	var (
		rows       []*model.InputRow
		counts     = make(map[colKind]int64)
		locIDCount = make(map[int]int64)
		rowNum     int64
	)

	buf := make([]parquetRow, parquetBatchSize)
	for {
		n, readErr := reader.Read(buf)
		for i := 0; i < n; i++ {
			rowNum++
			rows = append(rows, fromParquetRow(&buf[i], rowNum, counts, locIDCount))
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("read parquet at row %d: %w", rowNum, readErr)
		}
	}

	return &Dataset{
		Rows:           rows,
		Stats:          buildStats(rowNum, counts, locIDCount),
		MissingColumns: missingColumns(present),
	}, nil
}

func fromParquetRow(p *parquetRow, rowNum int64, counts map[colKind]int64, locIDCount map[int]int64) *model.InputRow {
	row := &model.InputRow{
		RowNum:          rowNum,
		NPI:             strings.TrimSpace(p.NPI),
		FirstName:       deref(p.FirstName),
		LastName:        deref(p.LastName),
		AddressLine1:    deref(p.AddressLine1),
		AddressLine2:    deref(p.AddressLine2),
		City:            deref(p.City),
		State:           deref(p.State),
		Zip:             deref(p.Zip),
		PracticeID:      normalize.CleanID(deref(p.PracticeID)),
		LocationTypeRaw: deref(p.LocationType),
	}

	count := func(kind colKind, v string) {
		if v != "" {
			counts[kind]++
		}
	}
	count(colAddressLine1, row.AddressLine1)
	count(colAddressLine2, row.AddressLine2)
	count(colCity, row.City)
	count(colState, row.State)
	count(colZip, row.Zip)

	for i, ptr := range []*string{p.LocationID1, p.LocationID2, p.LocationID3, p.LocationID4, p.LocationID5} {
		if id := normalize.CleanID(deref(ptr)); id != "" {
			row.LocationIDs = append(row.LocationIDs, id)
			locIDCount[i]++
		}
	}
	return row
}

// parquetColumns maps the schema onto canonical columns and validates that
// the required NPI column exists.
func parquetColumns(schema *parquet.Schema) (map[colKind]bool, error) {
	present := make(map[colKind]bool)
	for _, field := range schema.Fields() {
		name := strings.ReplaceAll(strings.ToLower(field.Name()), "_", " ")
		if k := classifyHeader(name); k != colExtra {
			present[k] = true
		}
	}
	if err := validateRequired(present); err != nil {
		return nil, err
	}
	return present, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
