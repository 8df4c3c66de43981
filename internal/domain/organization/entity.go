package organization

import "time"

type Role string

const (
	RoleOwner    Role = "owner"    // Company owner - full access
	RoleManager  Role = "manager"  // Runs the floor: now-board, corrections, rollover
	RoleEmployee Role = "employee" // Clocks in and out for themselves
)

// JobRole is reference data owned by the organisation service.
type JobRole struct {
	ID        string
	CompanyID string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ShiftRole always belongs to exactly one JobRole.
type ShiftRole struct {
	ID          string
	CompanyID   string
	JobRoleID   string
	Name        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	JobRoleName *string
}

// BelongsTo reports whether the shift role is subordinate to jobRoleID.
func (s ShiftRole) BelongsTo(jobRoleID string) bool {
	return s.JobRoleID != "" && s.JobRoleID == jobRoleID
}
