package pipeline

import "fmt"

// State identifies the stage a pipeline run is in.
//
// Runs move strictly forward: Idle → Locating → ComputingThreshold →
// Extracting → Done. Failed is reachable from any non-terminal state and,
// like Done, is terminal; there are no retries between states.
type State int

const (
	StateIdle State = iota
	StateLocating
	StateComputingThreshold
	StateExtracting
	StateDone
	StateFailed
)

// String returns the stage name used in logs and error messages.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLocating:
		return "locating"
	case StateComputingThreshold:
		return "computing threshold"
	case StateExtracting:
		return "extracting"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}
