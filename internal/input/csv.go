package input

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gyeh/loclink/internal/model"
	"github.com/gyeh/loclink/internal/normalize"
)

func loadCSV(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	kinds := make([]colKind, len(header))
	present := make(map[colKind]bool)
	idxOf := make(map[colKind]int)
	var locIDCols []int
	var extraCols []int

	for i, h := range header {
		k := classifyHeader(h)
		// Duplicate canonical columns: first occurrence wins, the rest pass
		// through as extras.
		if k != colExtra && k != colLocationID && present[k] {
			k = colExtra
		}
		kinds[i] = k
		switch k {
		case colExtra:
			extraCols = append(extraCols, i)
		case colLocationID:
			present[k] = true
			locIDCols = append(locIDCols, i)
		default:
			present[k] = true
			idxOf[k] = i
		}
	}

	if err := validateRequired(present); err != nil {
		return nil, err
	}

	cell := func(record []string, kind colKind) string {
		i, ok := idxOf[kind]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var (
		rows       []*model.InputRow
		counts     = make(map[colKind]int64)
		locIDCount = make(map[int]int64)
		rowNum     int64
	)

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", rowNum+1, err)
		}
		rowNum++

		row := &model.InputRow{
			RowNum:          rowNum,
			NPI:             cell(record, colNPI),
			FirstName:       cell(record, colFirstName),
			LastName:        cell(record, colLastName),
			AddressLine1:    cell(record, colAddressLine1),
			AddressLine2:    cell(record, colAddressLine2),
			City:            cell(record, colCity),
			State:           cell(record, colState),
			Zip:             cell(record, colZip),
			PracticeID:      normalize.CleanID(cell(record, colPracticeID)),
			LocationTypeRaw: cell(record, colLocationType),
		}

		for kind := range idxOf {
			if cell(record, kind) != "" {
				counts[kind]++
			}
		}

		for _, i := range locIDCols {
			if i >= len(record) {
				continue
			}
			if id := normalize.CleanID(record[i]); id != "" {
				row.LocationIDs = append(row.LocationIDs, id)
				locIDCount[i]++
			}
		}

		for _, i := range extraCols {
			v := ""
			if i < len(record) {
				v = record[i]
			}
			row.ExtraHeaders = append(row.ExtraHeaders, header[i])
			row.ExtraValues = append(row.ExtraValues, v)
		}

		rows = append(rows, row)
	}

	return &Dataset{
		Rows:           rows,
		Stats:          buildStats(rowNum, counts, locIDCount),
		MissingColumns: missingColumns(present),
	}, nil
}

func buildStats(total int64, counts map[colKind]int64, locIDCount map[int]int64) ColumnStats {
	stats := ColumnStats{Total: total}
	if total == 0 {
		return stats
	}
	share := func(kind colKind) float64 {
		return float64(counts[kind]) / float64(total)
	}
	stats.AddressLine1Share = share(colAddressLine1)
	stats.AddressLine2Share = share(colAddressLine2)
	stats.CityShare = share(colCity)
	stats.StateShare = share(colState)
	stats.ZipShare = share(colZip)
	for _, n := range locIDCount {
		if s := float64(n) / float64(total); s > stats.LocationIDShare {
			stats.LocationIDShare = s
		}
	}
	return stats
}
