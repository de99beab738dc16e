package auth

import "time"

// State is the observable state of a [Gate].
type State int

const (
	// StateIdle means no check has run yet, or the gate was locked again.
	StateIdle State = iota
	// StatePrompting means a check is in progress.
	StatePrompting
	// StateAuthorized means the last check succeeded.
	StateAuthorized
	// StateDenied means the last check failed, was dismissed, timed out or
	// the gate is locked out.
	StateDenied
	// StateError means the identity check could not run at all.
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePrompting:
		return "prompting"
	case StateAuthorized:
		return "authorized"
	case StateDenied:
		return "denied"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Decision is the outcome of one [AccessGate.CheckAccess] call. It is never
// persisted.
type Decision struct {
	Authorized bool
	State      State
	Reason     string
	Timestamp  time.Time
}

// Reasons reported in [Decision.Reason].
const (
	ReasonAuthorized  = "authorized"
	ReasonGraceWindow = "authorized within grace window"
	ReasonNotMatched  = "identity not recognized"
	ReasonDismissed   = "prompt dismissed"
	ReasonTimedOut    = "prompt timed out"
	ReasonCancelled   = "cancelled"
	ReasonLockedOut   = "locked out"
	ReasonUnavailable = "identity check unavailable"
	ReasonCheckFailed = "identity check failed"
)
