// mkfixture creates a small representative CSV fixture from a larger input
// file. Rows are bucketed by trait (direct IDs, virtual types, practice IDs)
// so the fixture exercises every match path.
// Usage: go run ./cmd/mkfixture --in testdata/providers.csv --out testdata/providers-small.csv --rows 200
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/gyeh/loclink/internal/classify"
	"github.com/gyeh/loclink/internal/input"
)

func main() {
	in := flag.String("in", "testdata/providers.csv", "input csv")
	out := flag.String("out", "testdata/providers-small.csv", "output csv")
	maxRows := flag.Int("rows", 200, "max rows to output")
	checkOnly := flag.Bool("check", false, "only print stats, don't write")
	flag.Parse()

	ds, err := input.Load(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load input: %v\n", err)
		os.Exit(1)
	}

	type bucket struct {
		name string
		keep []int64
		want int
	}
	buckets := []*bucket{
		{name: "direct_id", want: *maxRows / 4},
		{name: "virtual", want: *maxRows / 4},
		{name: "practice", want: *maxRows / 4},
		{name: "general", want: 0},
	}

	for _, row := range ds.Rows {
		var b *bucket
		switch {
		case len(row.LocationIDs) > 0:
			b = buckets[0]
		case classify.LocationType(row.LocationTypeRaw) != classify.InPerson &&
			strings.TrimSpace(row.LocationTypeRaw) != "":
			b = buckets[1]
		case row.PracticeID != "":
			b = buckets[2]
		default:
			b = buckets[3]
		}
		b.keep = append(b.keep, row.RowNum)
	}

	if *checkOnly {
		for _, b := range buckets {
			fmt.Printf("%-10s %d rows\n", b.name, len(b.keep))
		}
		return
	}

	selected := make(map[int64]bool)
	remaining := *maxRows
	for _, b := range buckets[:3] {
		n := b.want
		if n > len(b.keep) {
			n = len(b.keep)
		}
		for _, rowNum := range b.keep[:n] {
			selected[rowNum] = true
		}
		remaining -= n
	}
	for _, rowNum := range buckets[3].keep {
		if remaining <= 0 {
			break
		}
		selected[rowNum] = true
		remaining--
	}

	// Re-read the raw file so the fixture keeps the original columns.
	src, err := os.Open(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open input: %v\n", err)
		os.Exit(1)
	}
	defer src.Close()
	r := csv.NewReader(src)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "read input: %v\n", err)
		os.Exit(1)
	}

	dst, err := os.Create(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create output: %v\n", err)
		os.Exit(1)
	}
	defer dst.Close()
	w := csv.NewWriter(dst)
	_ = w.Write(records[0])
	written := 0
	for i, record := range records[1:] {
		if selected[int64(i+1)] {
			_ = w.Write(record)
			written++
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		fmt.Fprintf(os.Stderr, "write output: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %d rows to %s\n", written, *out)
}
