package clock

import (
	"time"

	"github.com/cmlabs-hris/clock-backend-go/internal/pkg/validator"
)

// Actor is the caller as resolved from the access token.
type Actor struct {
	CompanyID string
	UserID    string
	CanManage bool
}

// CanAccess reports whether the actor may act on a session owned by userID.
func (a Actor) CanAccess(userID string) bool {
	return a.CanManage || a.UserID == userID
}

// ========================================
// CLOCK SESSION DTOs
// ========================================

type ClockInRequest struct {
	Actor        Actor   `json:"-"`
	JobRoleID    string  `json:"job_role_id"`
	ShiftRoleID  string  `json:"shift_role_id"`
	LocationID   *string `json:"location_id,omitempty"`
	DepartmentID *string `json:"department_id,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

func (r *ClockInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.JobRoleID) {
		errs = append(errs, validator.ValidationError{
			Field:   "job_role_id",
			Message: "job_role_id is required",
		})
	}

	if validator.IsEmpty(r.ShiftRoleID) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_role_id",
			Message: "shift_role_id is required",
		})
	}

	if r.LocationID != nil && validator.IsEmpty(*r.LocationID) {
		r.LocationID = nil
	}
	if r.DepartmentID != nil && validator.IsEmpty(*r.DepartmentID) {
		r.DepartmentID = nil
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// BreakRequest drives start-break and end-break.
type BreakRequest struct {
	Actor     Actor   `json:"-"`
	SessionID string  `json:"-"`
	Notes     *string `json:"notes,omitempty"`
}

type ChangeShiftRoleRequest struct {
	Actor       Actor   `json:"-"`
	SessionID   string  `json:"-"`
	ShiftRoleID string  `json:"shift_role_id"`
	Notes       *string `json:"notes,omitempty"`
}

func (r *ChangeShiftRoleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ShiftRoleID) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_role_id",
			Message: "shift_role_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ClockOutRequest struct {
	Actor        Actor   `json:"-"`
	SessionID    string  `json:"-"`
	ClockOutTime *string `json:"clock_out_time,omitempty"` // RFC3339, operator correction only
	Notes        *string `json:"notes,omitempty"`

	ClockOutAt *time.Time `json:"-"`
}

// Validate parses ClockOutTime into ClockOutAt. An explicit time needs notes.
func (r *ClockOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ClockOutTime != nil && !validator.IsEmpty(*r.ClockOutTime) {
		t, ok := validator.IsValidDateTime(*r.ClockOutTime)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_out_time",
				Message: "clock_out_time must be an RFC3339 timestamp",
			})
		} else {
			r.ClockOutAt = &t
		}

		if validator.IsBlankPtr(r.Notes) {
			errs = append(errs, validator.ValidationError{
				Field:   "notes",
				Message: "notes are required when clock_out_time is supplied",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LinkProvisionalShiftRequest struct {
	Actor         Actor  `json:"-"`
	ClockRecordID string `json:"clock_record_id"`
	ShiftRecordID string `json:"shift_record_id"`
}

func (r *LinkProvisionalShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ClockRecordID) {
		errs = append(errs, validator.ValidationError{
			Field:   "clock_record_id",
			Message: "clock_record_id is required",
		})
	}

	if validator.IsEmpty(r.ShiftRecordID) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_record_id",
			Message: "shift_record_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// EditSessionTimesRequest for manager/owner to fix clock times after the fact.
// Each changed field is recorded as a Correction.
type EditSessionTimesRequest struct {
	Actor        Actor   `json:"-"`
	SessionID    string  `json:"-"`
	ClockInTime  *string `json:"clock_in_time,omitempty"`  // RFC3339
	ClockOutTime *string `json:"clock_out_time,omitempty"` // RFC3339
	Notes        string  `json:"notes"`

	ClockInAt  *time.Time `json:"-"`
	ClockOutAt *time.Time `json:"-"`
}

func (r *EditSessionTimesRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Notes) {
		errs = append(errs, validator.ValidationError{
			Field:   "notes",
			Message: "notes are required when correcting clock times",
		})
	}

	if validator.IsBlankPtr(r.ClockInTime) && validator.IsBlankPtr(r.ClockOutTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "clock_in_time",
			Message: "clock_in_time or clock_out_time is required",
		})
	}

	if !validator.IsBlankPtr(r.ClockInTime) {
		if t, ok := validator.IsValidDateTime(*r.ClockInTime); ok {
			r.ClockInAt = &t
		} else {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_in_time",
				Message: "clock_in_time must be an RFC3339 timestamp",
			})
		}
	}

	if !validator.IsBlankPtr(r.ClockOutTime) {
		if t, ok := validator.IsValidDateTime(*r.ClockOutTime); ok {
			r.ClockOutAt = &t
		} else {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_out_time",
				Message: "clock_out_time must be an RFC3339 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ActiveSessionFilter struct {
	LocationID   *string `json:"location_id,omitempty"`
	DepartmentID *string `json:"department_id,omitempty"`
}

type ClockSessionResponse struct {
	ID                       string   `json:"id"`
	UserID                   string   `json:"user_id"`
	UserDisplayName          *string  `json:"user_display_name,omitempty"`
	JobRoleID                string   `json:"job_role_id"`
	ShiftRoleID              string   `json:"shift_role_id"`
	LocationID               *string  `json:"location_id,omitempty"`
	DepartmentID             *string  `json:"department_id,omitempty"`
	State                    State    `json:"state"`
	ClockInTime              string   `json:"clock_in_time"`
	ClockOutTime             *string  `json:"clock_out_time,omitempty"`
	BreakStartedAt           *string  `json:"break_started_at,omitempty"`
	LinkedProvisionalShiftID *string  `json:"linked_provisional_shift_id"`
	Notes                    *string  `json:"notes,omitempty"`
	ElapsedHours             *float64 `json:"elapsed_hours,omitempty"`
	WarningLevel             *string  `json:"warning_level,omitempty"`
	CreatedAt                string   `json:"created_at"`
	UpdatedAt                string   `json:"updated_at"`
}

type ProvisionalShiftCandidate struct {
	ID               string  `json:"id"`
	ShiftDate        string  `json:"shift_date"`
	StartTime        string  `json:"start_time"`
	StartsAt         string  `json:"starts_at"`
	Hours            float64 `json:"hours"`
	ShiftLeaveTypeID *string `json:"shift_leave_type_id,omitempty"`
	OffsetMinutes    int     `json:"offset_minutes"`
}

type ClockInResponse struct {
	Session                 ClockSessionResponse        `json:"session"`
	ProvisionalShiftsNearby []ProvisionalShiftCandidate `json:"provisional_shifts_nearby"`
}

// ClockStatusResponse exposes the single State plus the flags older clients still read.
type ClockStatusResponse struct {
	State       State                 `json:"state"`
	IsClockedIn bool                  `json:"is_clocked_in"`
	IsOnBreak   bool                  `json:"is_on_break"`
	Session     *ClockSessionResponse `json:"session,omitempty"`
	Message     string                `json:"message"`
}

type CorrectionResponse struct {
	ID          string  `json:"id"`
	SessionID   string  `json:"session_id"`
	Field       string  `json:"field"`
	OldValue    *string `json:"old_value,omitempty"`
	NewValue    string  `json:"new_value"`
	Notes       string  `json:"notes"`
	CorrectedBy string  `json:"corrected_by"`
	CorrectedAt string  `json:"corrected_at"`
}

// LongSessionWarning is pushed to managers when an open session crosses a threshold.
type LongSessionWarning struct {
	SessionID       string       `json:"session_id"`
	UserID          string       `json:"user_id"`
	UserDisplayName *string      `json:"user_display_name,omitempty"`
	ClockInTime     string       `json:"clock_in_time"`
	ElapsedHours    float64      `json:"elapsed_hours"`
	WarningLevel    WarningLevel `json:"warning_level"`
}
