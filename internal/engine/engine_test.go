package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/adelamch/tripstats/internal/errors"
)

func TestOpenClose(t *testing.T) {
	e, err := Open(Options{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := e.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestOpen_MemoryLimit(t *testing.T) {
	e, err := Open(Options{MemoryLimit: "512MB"})
	if err != nil {
		t.Fatalf("Open with memory limit: %v", err)
	}
	defer e.Close()

	var one int
	if err := e.QueryRowContext(context.Background(), "SELECT 1").Scan(&one); err != nil {
		t.Fatalf("query: %v", err)
	}
	if one != 1 {
		t.Errorf("got %d, want 1", one)
	}
}

func TestPrepare_LocalPathIsNoop(t *testing.T) {
	e, err := Open(Options{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer e.Close()

	// Local paths never touch httpfs, so this must succeed offline.
	if err := e.Prepare(context.Background(), filepath.Join(t.TempDir(), "x.parquet")); err != nil {
		t.Fatalf("Prepare local path: %v", err)
	}
}

func TestIsRemote(t *testing.T) {
	tests := []struct {
		address string
		want    bool
	}{
		{"https://d37ci6vzurychx.cloudfront.net/trip-data/yellow_tripdata_2024-01.parquet", true},
		{"http://localhost:8080/x.parquet", true},
		{"/tmp/trips.parquet", false},
		{"trips.parquet", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsRemote(tt.address); got != tt.want {
			t.Errorf("IsRemote(%q) = %v, want %v", tt.address, got, tt.want)
		}
	}
}

func TestClassifyRead(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"missing file", fmt.Errorf("IO Error: No files found that match the pattern \"x.parquet\""), errors.ErrSourceUnreadable},
		{"http 404", fmt.Errorf("HTTP Error: Unable to connect to URL: 404 (Not Found)"), errors.ErrSourceUnreadable},
		{"bad magic", fmt.Errorf("Invalid Input Error: No magic bytes found at end of file"), errors.ErrSourceUnreadable},
		{"refused", fmt.Errorf("IO Error: Connection refused"), errors.ErrNetworkFailure},
		{"dns", fmt.Errorf("IO Error: Could not establish connection: could not resolve host"), errors.ErrNetworkFailure},
		{"timeout", fmt.Errorf("HTTP Error: request timed out"), errors.ErrNetworkFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyRead(tt.err, "x.parquet")
			if tt.want == nil {
				if got != nil {
					t.Fatalf("ClassifyRead(nil) = %v", got)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Errorf("ClassifyRead(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestClassifyCopy(t *testing.T) {
	src := "/data/trips.parquet"
	dst := "/out/result.parquet"

	writeErr := fmt.Errorf("IO Error: Cannot open file \"/out/result.parquet\": Permission denied")
	if got := ClassifyCopy(writeErr, src, dst); !errors.Is(got, errors.ErrWriteFailure) {
		t.Errorf("ClassifyCopy(write error) = %v, want ErrWriteFailure", got)
	}

	readErr := fmt.Errorf("IO Error: No files found that match the pattern \"/data/trips.parquet\"")
	if got := ClassifyCopy(readErr, src, dst); !errors.Is(got, errors.ErrSourceUnreadable) {
		t.Errorf("ClassifyCopy(read error) = %v, want ErrSourceUnreadable", got)
	}

	if got := ClassifyCopy(nil, src, dst); got != nil {
		t.Errorf("ClassifyCopy(nil) = %v", got)
	}
}

func TestQueryMissingLocalFile(t *testing.T) {
	e, err := Open(Options{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer e.Close()

	missing := filepath.Join(t.TempDir(), "nope.parquet")

	var n int64
	err = e.QueryRowContext(context.Background(),
		"SELECT count(*) FROM read_parquet(?)", missing).Scan(&n)
	if err == nil {
		t.Fatal("expected error for missing file")
	}

	if classified := ClassifyRead(err, missing); !errors.Is(classified, errors.ErrSourceUnreadable) {
		t.Errorf("classified = %v, want ErrSourceUnreadable", classified)
	}
}
