// Package export extracts qualifying trips and persists them as a single
// Parquet file.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/adelamch/tripstats/internal/engine"
	"github.com/adelamch/tripstats/internal/errors"
	"github.com/adelamch/tripstats/internal/logging"
)

// Exporter writes trips whose distance strictly exceeds a threshold.
type Exporter struct {
	engine  *engine.Engine
	columns []string
	log     *slog.Logger
}

// New creates an exporter selecting the given columns. The column names
// must already be validated against the trip schema (see config).
func New(e *engine.Engine, columns []string) *Exporter {
	return &Exporter{
		engine:  e,
		columns: columns,
		log:     logging.Component("export"),
	}
}

// Export selects the configured columns for every row in the file at
// address with trip_distance strictly above threshold (NULL distances
// excluded) and writes them to a single Parquet file at outputPath. It
// returns the persisted row count, read from the written file's footer.
// Zero qualifying rows is not an error; a valid empty file is written.
//
// The result goes to a temporary file first. Only after the copy has
// succeeded are prior entries in the output directory removed and the
// temporary file renamed into place, so a failed run never destroys the
// previous output and at most one result file remains afterwards.
func (x *Exporter) Export(ctx context.Context, address string, threshold float64, outputPath string) (int64, error) {
	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("create output directory %s: %v: %w", dir, err, errors.ErrWriteFailure)
	}

	tmpPath := outputPath + ".tmp"
	x.log.Debug("extracting qualifying trips", "address", address, "threshold", threshold)

	// DuckDB does not support parameterized file names in COPY TO.
	stmt := fmt.Sprintf(`
		COPY (
			SELECT %s
			FROM read_parquet(?, union_by_name=true)
			WHERE trip_distance IS NOT NULL AND trip_distance > ?
		) TO '%s' (FORMAT PARQUET)
	`, strings.Join(x.columns, ", "), sqlQuote(tmpPath))

	if _, err := x.engine.ExecContext(ctx, stmt, address, threshold); err != nil {
		os.Remove(tmpPath)
		return 0, engine.ClassifyCopy(err, address, tmpPath)
	}

	count, err := rowCount(tmpPath)
	if err != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("inspect result file: %v: %w", err, errors.ErrWriteFailure)
	}

	if err := clearDir(dir, tmpPath); err != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("clear output directory: %v: %w", err, errors.ErrWriteFailure)
	}
	if err := os.Rename(tmpPath, outputPath); err != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("rename result file: %v: %w", err, errors.ErrWriteFailure)
	}

	if count == 0 {
		x.log.Warn("no trips above threshold", "threshold", threshold)
	}
	x.log.Info("export complete", "rows", count, "output", outputPath)
	return count, nil
}

// rowCount reads the row count from a Parquet file's footer.
func rowCount(path string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return 0, err
	}

	pf, err := parquet.OpenFile(f, st.Size())
	if err != nil {
		return 0, err
	}
	return pf.NumRows(), nil
}

// clearDir removes every entry in dir except keep.
func clearDir(dir, keep string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if path == keep {
			continue
		}
		if err := os.RemoveAll(path); err != nil {
			return err
		}
	}
	return nil
}

// sqlQuote escapes single quotes for use inside a SQL string literal.
func sqlQuote(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
