package lvc

import (
	"lvc-go/services/lvc/timebase"
	"lvc-go/types"
)

// State is the controller's tagged state.
type State uint8

const (
	// StateActive: load connected, watching for a trip.
	StateActive State = iota
	// StateCutoffPending: load disconnected, waiting out the dwell window.
	StateCutoffPending
	// StateShutdown: terminal and absorbing.
	StateShutdown
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "ACTIVE"
	case StateCutoffPending:
		return "CUTOFF_PENDING"
	case StateShutdown:
		return "SHUTDOWN"
	default:
		return "UNKNOWN"
	}
}

// Wire returns the bus-facing name.
func (s State) Wire() types.LVCState {
	switch s {
	case StateCutoffPending:
		return types.LVCCutoffPending
	case StateShutdown:
		return types.LVCShutdown
	default:
		return types.LVCActive
	}
}

// Reason names why a transition happened.
type Reason string

const (
	ReasonNone       Reason = ""
	ReasonTripped    Reason = "below_load_threshold"
	ReasonRecovered  Reason = "recovered"
	ReasonTimeout    Reason = "timeout"
	ReasonCycleLimit Reason = "cycle_limit"
)

// Transition is the outcome of one Step. From == To with ReasonNone means the
// cycle changed nothing.
type Transition struct {
	From, To State
	Reason   Reason
	Sample   Sample         // reading taken this cycle; 0 if none was taken
	Sampled  bool           // false when the cycle decided without sampling
	Dwell    timebase.Ticks // time spent in CutoffPending so far
	Cycles   uint32         // CutoffCycleCount after the step
}

// Changed reports a state change.
func (t Transition) Changed() bool { return t.From != t.To }

// Status is a snapshot of the controller.
type Status struct {
	State         State
	Cycles        uint32
	CutoffStart   timebase.Ticks // valid in StateCutoffPending
	LoadConnected bool
}
