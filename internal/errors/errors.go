// Package errors defines the error taxonomy for the trip filter pipeline.
//
// Every failure of a pipeline stage wraps one of the sentinel errors below,
// so callers can classify failures with errors.Is without parsing message
// text. All of them are terminal for the current execution; nothing in the
// pipeline retries internally.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for pipeline failures.
var (
	// ErrInvalidPeriod means the requested year/month is malformed, in the
	// future, or inside the publisher's submission-delay window.
	ErrInvalidPeriod = errors.New("invalid period")

	// ErrSourceUnreadable means the remote dataset file does not exist or
	// cannot be parsed as Parquet.
	ErrSourceUnreadable = errors.New("source unreadable")

	// ErrNetworkFailure means the remote resource could not be reached.
	ErrNetworkFailure = errors.New("network failure")

	// ErrEmptyPopulation means the source contains no non-null distance
	// values, so the percentile is undefined.
	ErrEmptyPopulation = errors.New("empty population")

	// ErrWriteFailure means the output destination is not writable.
	ErrWriteFailure = errors.New("write failure")
)

// Is is a convenience wrapper for errors.Is
var Is = errors.Is

// As is a convenience wrapper for errors.As
var As = errors.As

// New is a convenience wrapper for errors.New
var New = errors.New

// IsRetriable reports whether a failure could be retried by an outer layer.
// Only connectivity failures qualify; a missing file or a bad period stays
// missing or bad no matter how often it is retried.
func IsRetriable(err error) bool {
	return errors.Is(err, ErrNetworkFailure)
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// NewInvalidPeriod creates an ErrInvalidPeriod with a reason.
func NewInvalidPeriod(reason string) error {
	return fmt.Errorf("%s: %w", reason, ErrInvalidPeriod)
}

// NewInvalidPeriodf creates an ErrInvalidPeriod with a formatted reason.
func NewInvalidPeriodf(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidPeriod)
}
