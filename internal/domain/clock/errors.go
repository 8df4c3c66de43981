package clock

import "errors"

// Clock session domain errors
var (
	// Conflict
	ErrAlreadyClockedIn = errors.New("you are already clocked in elsewhere")
	ErrAlreadyLinked    = errors.New("clock session is already linked to a provisional shift")

	// Invalid state
	ErrSessionClosed    = errors.New("clock session is already clocked out")
	ErrNotActive        = errors.New("clock session is not active")
	ErrNotOnBreak       = errors.New("clock session is not on break")
	ErrSessionStillOpen = errors.New("clock out time can only be corrected on a clocked out session")

	// Invalid role
	ErrShiftRoleMismatch = errors.New("shift role does not belong to the session's job role")

	// Not found
	ErrSessionNotFound = errors.New("clock session not found")
)
