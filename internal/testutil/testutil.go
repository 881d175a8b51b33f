// Package testutil provides Parquet fixture helpers for tests.
//
// Fixtures mirror the shape of the Yellow Taxi trip files: identifier
// columns plus a nullable trip_distance column.
package testutil

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
)

// TripRow mirrors the columns the pipeline reads and writes.
type TripRow struct {
	VendorID     int32    `parquet:"VendorID"`
	PULocationID int32    `parquet:"PULocationID"`
	DOLocationID int32    `parquet:"DOLocationID"`
	TripDistance *float64 `parquet:"trip_distance,optional"`
}

// Dist returns a pointer to d, for building fixture rows inline.
// A nil TripDistance produces a NULL cell.
func Dist(d float64) *float64 {
	return &d
}

// Rows builds trip rows with the given distances and synthetic identifier
// columns (vendor alternates 1/2, locations count up from 100/200).
func Rows(distances ...*float64) []TripRow {
	rows := make([]TripRow, len(distances))
	for i, d := range distances {
		rows[i] = TripRow{
			VendorID:     int32(i%2 + 1),
			PULocationID: int32(100 + i),
			DOLocationID: int32(200 + i),
			TripDistance: d,
		}
	}
	return rows
}

// WriteTrips writes rows to a Parquet file at path.
func WriteTrips(t *testing.T, path string, rows []TripRow) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture %s: %v", path, err)
	}

	w := parquet.NewGenericWriter[TripRow](f)
	if len(rows) > 0 {
		if _, err := w.Write(rows); err != nil {
			t.Fatalf("write fixture rows: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close fixture writer: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close fixture file: %v", err)
	}
}

// TripFixture writes a trip file with the given distances into dir and
// returns its path.
func TripFixture(t *testing.T, dir string, distances ...float64) string {
	t.Helper()

	ptrs := make([]*float64, len(distances))
	for i := range distances {
		ptrs[i] = &distances[i]
	}

	path := filepath.Join(dir, "trips.parquet")
	WriteTrips(t, path, Rows(ptrs...))
	return path
}

// ReadTrips reads all rows back from a Parquet file.
func ReadTrips(t *testing.T, path string) []TripRow {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()

	r := parquet.NewGenericReader[TripRow](f)
	defer r.Close()

	var rows []TripRow
	buf := make([]TripRow, 64)
	for {
		n, err := r.Read(buf)
		rows = append(rows, buf[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("read %s: %v", path, err)
		}
	}
	return rows
}
