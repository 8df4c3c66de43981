package shift

import "time"

// ProvisionalShift is a rota entry handed to the engine as already-decided data.
// ShiftDate carries the calendar day; StartTime carries only the wall-clock time.
type ProvisionalShift struct {
	ID               string
	CompanyID        string
	UserID           string
	ShiftDate        time.Time
	StartTime        time.Time
	Hours            float64
	ShiftLeaveTypeID *string
	JobRoleID        string
	ShiftRoleID      string
	DepartmentID     *string
	LocationID       *string

	// DTO
	UserDisplayName *string
	UserPhone       *string
	JobRoleName     *string
	ShiftRoleName   *string
}

// StartsAt combines ShiftDate and StartTime in loc.
func (p ProvisionalShift) StartsAt(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(
		p.ShiftDate.Year(), p.ShiftDate.Month(), p.ShiftDate.Day(),
		p.StartTime.Hour(), p.StartTime.Minute(), p.StartTime.Second(), 0,
		loc,
	)
}
