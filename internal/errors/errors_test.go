package errors

import (
	"fmt"
	"testing"
)

func TestWrapPreservesSentinel(t *testing.T) {
	err := Wrapf(ErrSourceUnreadable, "stage %s", "computing threshold")
	if !Is(err, ErrSourceUnreadable) {
		t.Errorf("wrapped error lost sentinel: %v", err)
	}
	if got := err.Error(); got != "stage computing threshold: source unreadable" {
		t.Errorf("message = %q", got)
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil, "anything") != nil {
		t.Error("Wrap(nil) != nil")
	}
	if Wrapf(nil, "anything %d", 1) != nil {
		t.Error("Wrapf(nil) != nil")
	}
}

func TestIsRetriable(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{ErrNetworkFailure, true},
		{Wrap(ErrNetworkFailure, "read source"), true},
		{ErrSourceUnreadable, false},
		{ErrInvalidPeriod, false},
		{ErrEmptyPopulation, false},
		{ErrWriteFailure, false},
		{fmt.Errorf("unrelated"), false},
	}

	for _, tt := range tests {
		if got := IsRetriable(tt.err); got != tt.want {
			t.Errorf("IsRetriable(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestNewInvalidPeriod(t *testing.T) {
	err := NewInvalidPeriodf("month must be between 1 and 12, got %d", 13)
	if !Is(err, ErrInvalidPeriod) {
		t.Errorf("error lost sentinel: %v", err)
	}
}
