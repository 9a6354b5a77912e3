package model

// SessionState represents the state of a synchronization session
type SessionState string

const (
	// SessionStateUninitialized means no session has been attached yet
	SessionStateUninitialized SessionState = "Uninitialized"

	// SessionStateInitializing means the session is attached but still inside
	// the guard window; inbound volume notifications are ignored
	SessionStateInitializing SessionState = "Initializing"

	// SessionStateSynchronized means the guard window has elapsed and the
	// secondary element mirrors the primary
	SessionStateSynchronized SessionState = "Synchronized"

	// SessionStateDetached means the session was torn down; no transition
	// leaves this state
	SessionStateDetached SessionState = "Detached"
)

// String returns the string representation of SessionState
func (ss SessionState) String() string {
	return string(ss)
}

// IsActive returns true if the session currently owns a secondary element
func (ss SessionState) IsActive() bool {
	return ss == SessionStateInitializing || ss == SessionStateSynchronized
}

// IsFinished returns true once the session has been torn down
func (ss SessionState) IsFinished() bool {
	return ss == SessionStateDetached
}
