// Package quantile computes the distance threshold for one dataset file.
package quantile

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/adelamch/tripstats/internal/engine"
	"github.com/adelamch/tripstats/internal/errors"
	"github.com/adelamch/tripstats/internal/logging"
)

// Threshold computes the continuous q-quantile of trip_distance in the
// file at address. Rows with a NULL distance are excluded from the
// population before the quantile is taken; zeros and outliers stay in.
//
// percentile_cont interpolates linearly between the two bracketing order
// statistics, so the threshold is exact for the population rather than a
// nearest-rank pick. Returns ErrEmptyPopulation when the file has no
// non-null distance values.
func Threshold(ctx context.Context, e *engine.Engine, address string, q float64) (float64, error) {
	log := logging.Component("quantile")
	log.Debug("computing threshold", "address", address, "quantile", q)

	var v sql.NullFloat64
	err := e.QueryRowContext(ctx, `
		SELECT percentile_cont(?) WITHIN GROUP (ORDER BY trip_distance) AS p
		FROM read_parquet(?, union_by_name=true)
		WHERE trip_distance IS NOT NULL
	`, q, address).Scan(&v)
	if err != nil {
		return 0, engine.ClassifyRead(err, address)
	}

	if !v.Valid {
		return 0, fmt.Errorf("no non-null trip_distance values in %s: %w",
			address, errors.ErrEmptyPopulation)
	}

	log.Info("threshold computed", "quantile", q, "threshold", v.Float64)
	return v.Float64, nil
}
