package clock

import (
	"context"
	"time"
)

// ClockSessionRepository defines data access for clock sessions.
// Every lookup is scoped by companyID.
type ClockSessionRepository interface {
	// Create inserts a session. Returns ErrAlreadyClockedIn if the user already has an open one.
	Create(ctx context.Context, session ClockSession) (ClockSession, error)

	// GetByID returns ErrSessionNotFound when missing
	GetByID(ctx context.Context, id string, companyID string) (ClockSession, error)

	// GetOpenByUser returns the user's non-terminal session, or nil when there is none
	GetOpenByUser(ctx context.Context, userID string, companyID string) (*ClockSession, error)

	Update(ctx context.Context, session ClockSession) error

	// ListOpen returns non-terminal sessions of one company
	ListOpen(ctx context.Context, companyID string, filter ActiveSessionFilter) ([]ClockSession, error)

	// ListOpenAllCompanies is used by the background sweep
	ListOpenAllCompanies(ctx context.Context) ([]ClockSession, error)

	// ListClockedInBetween returns sessions in any state whose clock-in falls in [from, to)
	ListClockedInBetween(ctx context.Context, companyID string, from, to time.Time) ([]ClockSession, error)

	// LockUser serializes state changes for one user until the surrounding transaction ends
	LockUser(ctx context.Context, companyID string, userID string) error
}

type CorrectionRepository interface {
	Create(ctx context.Context, correction Correction) (Correction, error)
	ListBySession(ctx context.Context, sessionID string, companyID string) ([]Correction, error)
}
