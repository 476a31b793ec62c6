// Package present drives the banner presentation lifecycle: attaching a
// banner to a host, the enter animation, timed and tap dismissal, the exit
// animation and teardown. All work runs on a single anim.Loop.
package present

import "errors"

// State is a point in the presentation lifecycle.
type State int

const (
	StateIdle State = iota
	StatePresenting
	StateVisible
	StateDismissing
	StateDismissed
)

// String returns the string representation of State.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePresenting:
		return "presenting"
	case StateVisible:
		return "visible"
	case StateDismissing:
		return "dismissing"
	case StateDismissed:
		return "dismissed"
	default:
		return "unknown"
	}
}

// Cause records what dismissed a banner.
type Cause int

const (
	CauseNone Cause = iota
	CauseTimer
	CauseTap
	CauseExternal
)

// String returns the string representation of Cause.
func (c Cause) String() string {
	switch c {
	case CauseTimer:
		return "timer"
	case CauseTap:
		return "tap"
	case CauseExternal:
		return "external"
	default:
		return "none"
	}
}

var (
	// ErrAlreadyPresented is returned when Present is called on a banner
	// that has left the idle state.
	ErrAlreadyPresented = errors.New("banner already presented")

	// ErrNilHost is returned when Present is called without a host.
	ErrNilHost = errors.New("host is nil")

	// ErrHostGone is returned when Present is called with a host that
	// reports it is no longer alive.
	ErrHostGone = errors.New("host is gone")
)
