// Package engine wraps DuckDB as the analytical query engine.
//
// The engine runs read-only queries against Parquet files addressed either
// by local path or by http(s) URL. Remote files are read through DuckDB's
// httpfs extension using range requests, so a query never downloads the
// whole file.
package engine

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/adelamch/tripstats/internal/errors"
	"github.com/adelamch/tripstats/internal/logging"
)

// Options configures the engine.
type Options struct {
	// MemoryLimit is the DuckDB memory limit, e.g. "2GB". Empty keeps the
	// engine default.
	MemoryLimit string
}

// Engine executes read-only queries against Parquet files.
type Engine struct {
	db          *sql.DB
	log         *slog.Logger
	httpfsReady bool
}

// Open opens an in-memory DuckDB database.
func Open(opts Options) (*Engine, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	if opts.MemoryLimit != "" {
		if _, err := db.Exec(fmt.Sprintf("SET memory_limit='%s'", opts.MemoryLimit)); err != nil {
			db.Close()
			return nil, fmt.Errorf("set memory limit: %w", err)
		}
	}

	return &Engine{
		db:  db,
		log: logging.Component("engine"),
	}, nil
}

// Close closes the engine.
func (e *Engine) Close() error {
	if e.db != nil {
		return e.db.Close()
	}
	return nil
}

// IsRemote reports whether an address is fetched over HTTP.
func IsRemote(address string) bool {
	return strings.HasPrefix(address, "http://") || strings.HasPrefix(address, "https://")
}

// Prepare readies the engine for reading the given address. Remote
// addresses need the httpfs extension; installing it is itself a network
// operation, so a failure here classifies as ErrNetworkFailure. Local
// paths need no preparation.
func (e *Engine) Prepare(ctx context.Context, address string) error {
	if !IsRemote(address) || e.httpfsReady {
		return nil
	}

	e.log.Debug("loading httpfs extension")
	if _, err := e.db.ExecContext(ctx, "INSTALL httpfs; LOAD httpfs;"); err != nil {
		return fmt.Errorf("load httpfs extension: %v: %w", err, errors.ErrNetworkFailure)
	}

	e.httpfsReady = true
	return nil
}

// QueryRowContext executes a query expected to return at most one row.
func (e *Engine) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return e.db.QueryRowContext(ctx, query, args...)
}

// ExecContext executes a statement without returning rows.
func (e *Engine) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return e.db.ExecContext(ctx, query, args...)
}
