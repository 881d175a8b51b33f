// Package dataset resolves a (year, month) pair to the public NYC Yellow
// Taxi trip record file for that month.
package dataset

import (
	"fmt"
	"time"

	"github.com/adelamch/tripstats/internal/errors"
)

const (
	// MinYear is the first year with published Yellow Taxi trip data.
	MinYear = 2009

	// DefaultBaseURL is the TLC trip record data mirror.
	DefaultBaseURL = "https://d37ci6vzurychx.cloudfront.net/trip-data"
)

// Reference identifies one month of trip data.
type Reference struct {
	Year  int
	Month int
}

// String returns the period formatted as YYYY-MM.
func (r Reference) String() string {
	return fmt.Sprintf("%04d-%02d", r.Year, r.Month)
}

// LatestAvailable returns the most recent period expected to be published
// at the given time. The publisher uploads a month's file two full months
// after the month ends, so the current month and the two before it are not
// yet available.
func LatestAvailable(now time.Time) (year, month int) {
	idx := now.Year()*12 + int(now.Month()) - 1 - 3
	return idx / 12, idx%12 + 1
}

// Validate checks the reference against the dataset's availability window.
// It returns ErrInvalidPeriod when the month is out of range, the year
// predates the dataset, or the period is not yet published as of now.
func (r Reference) Validate(now time.Time) error {
	if r.Month < 1 || r.Month > 12 {
		return errors.NewInvalidPeriodf("month must be between 1 and 12, got %d", r.Month)
	}
	if r.Year < MinYear {
		return errors.NewInvalidPeriodf("year must be >= %d, got %d", MinYear, r.Year)
	}

	maxYear, maxMonth := LatestAvailable(now)
	if r.Year*12+r.Month > maxYear*12+maxMonth {
		return errors.NewInvalidPeriodf(
			"period %s is too recent, latest published is %04d-%02d (two full months delay)",
			r, maxYear, maxMonth)
	}

	return nil
}

// URL returns the address of the month's Parquet file under baseURL.
// No validation and no network access.
func (r Reference) URL(baseURL string) string {
	return fmt.Sprintf("%s/yellow_tripdata_%04d-%02d.parquet", baseURL, r.Year, r.Month)
}
