package clock

import (
	"context"
)

// ClockService owns the per-user session state machine.
type ClockService interface {
	// ClockIn opens a session and suggests nearby provisional shifts (never links them)
	ClockIn(ctx context.Context, req ClockInRequest) (ClockInResponse, error)

	StartBreak(ctx context.Context, req BreakRequest) (ClockSessionResponse, error)
	EndBreak(ctx context.Context, req BreakRequest) (ClockSessionResponse, error)
	ChangeShiftRole(ctx context.Context, req ChangeShiftRoleRequest) (ClockSessionResponse, error)

	// ClockOut closes the session; it is immutable afterwards
	ClockOut(ctx context.Context, req ClockOutRequest) (ClockSessionResponse, error)

	// LinkProvisionalShift confirms an operator-chosen candidate
	LinkProvisionalShift(ctx context.Context, req LinkProvisionalShiftRequest) (ClockSessionResponse, error)

	// EditSessionTimes is the audited administrative correction
	EditSessionTimes(ctx context.Context, req EditSessionTimesRequest) (ClockSessionResponse, error)

	GetClockStatus(ctx context.Context, actor Actor) (ClockStatusResponse, error)
	GetSession(ctx context.Context, actor Actor, id string) (ClockSessionResponse, error)
	ListActiveSessions(ctx context.Context, companyID string, filter ActiveSessionFilter) ([]ClockSessionResponse, error)
	ListCorrections(ctx context.Context, actor Actor, sessionID string) ([]CorrectionResponse, error)
}
