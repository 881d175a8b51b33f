package engine

import (
	"fmt"
	"strings"

	"github.com/adelamch/tripstats/internal/errors"
)

// DuckDB surfaces httpfs and Parquet failures as plain error strings
// through database/sql, so classification is keyword based. Connectivity
// problems are checked first; everything else on a read means the source
// is missing or not valid Parquet.
var networkIndicators = []string{
	"could not establish connection",
	"connection refused",
	"connection reset",
	"connection error",
	"timed out",
	"timeout",
	"no route to host",
	"could not resolve",
	"name resolution",
	"network is unreachable",
	"ssl connection",
}

// ClassifyRead maps a driver error from reading address onto the error
// taxonomy: ErrNetworkFailure for connectivity problems, ErrSourceUnreadable
// for a missing or malformed file.
func ClassifyRead(err error, address string) error {
	if err == nil {
		return nil
	}

	msg := strings.ToLower(err.Error())
	for _, ind := range networkIndicators {
		if strings.Contains(msg, ind) {
			return fmt.Errorf("read %s: %v: %w", address, err, errors.ErrNetworkFailure)
		}
	}

	return fmt.Errorf("read %s: %v: %w", address, err, errors.ErrSourceUnreadable)
}

// ClassifyCopy maps a driver error from a COPY of address to outputPath.
// An error naming the destination path is a write failure; anything else is
// classified as a read failure of the source.
func ClassifyCopy(err error, address, outputPath string) error {
	if err == nil {
		return nil
	}

	if strings.Contains(err.Error(), outputPath) {
		return fmt.Errorf("write %s: %v: %w", outputPath, err, errors.ErrWriteFailure)
	}

	return ClassifyRead(err, address)
}
