// Package session owns the dashboard's authentication state machine. The
// Manager is the only component that mutates session state; everything
// else reads immutable snapshots or subscribes to transitions.
package session

import "github.com/clinops/wardview/internal/principal"

// State identifies where the session is in its lifecycle.
type State int

const (
	// StateUninitialized means no attempt has been made to restore state.
	StateUninitialized State = iota
	// StateInitializing means restoration is in flight; no protected
	// render may proceed until the session settles.
	StateInitializing
	// StateAuthenticated means a valid credential is held.
	StateAuthenticated
	// StateAnonymous means no valid credential is held.
	StateAnonymous
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// Session is an immutable snapshot of the authentication state. Principal
// and Token are set only while authenticated; an Anonymous snapshot never
// carries stale principal data.
type Session struct {
	State     State
	Principal *principal.Principal
	Token     string
}

// Settled reports whether the session has reached Authenticated or
// Anonymous.
func (s Session) Settled() bool {
	return s.State == StateAuthenticated || s.State == StateAnonymous
}

// IsAuthenticated reports whether a valid credential is held.
func (s Session) IsAuthenticated() bool {
	return s.State == StateAuthenticated
}
