package nowboard

import (
	"time"

	"github.com/cmlabs-hris/clock-backend-go/internal/pkg/validator"
)

// ========================================
// NOW-BOARD DTOs
// ========================================

type NowBoardRequest struct {
	CompanyID    string  `json:"-"`
	Date         string  `json:"date"` // YYYY-MM-DD, empty means today in the company timezone
	DepartmentID *string `json:"department_id,omitempty"`

	DateValue *time.Time `json:"-"`
}

func (r *NowBoardRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsEmpty(r.Date) {
		if d, ok := validator.IsValidDate(r.Date); ok {
			r.DateValue = &d
		} else {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if r.DepartmentID != nil && validator.IsEmpty(*r.DepartmentID) {
		r.DepartmentID = nil
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type WeeklySummaryRequest struct {
	CompanyID    string  `json:"-"`
	WeekStart    string  `json:"week_start"` // YYYY-MM-DD, empty means the Monday of the current week
	DepartmentID *string `json:"department_id,omitempty"`

	WeekStartValue *time.Time `json:"-"`
}

func (r *WeeklySummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsEmpty(r.WeekStart) {
		if d, ok := validator.IsValidDate(r.WeekStart); ok {
			r.WeekStartValue = &d
		} else {
			errs = append(errs, validator.ValidationError{
				Field:   "week_start",
				Message: "week_start must be in YYYY-MM-DD format",
			})
		}
	}

	if r.DepartmentID != nil && validator.IsEmpty(*r.DepartmentID) {
		r.DepartmentID = nil
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type MissingUser struct {
	UserID      string  `json:"user_id"`
	DisplayName string  `json:"display_name"`
	Phone       *string `json:"phone,omitempty"`
}

type RoleGroupCoverage struct {
	ShiftRoleID    string        `json:"shift_role_id"`
	ShiftRoleName  *string       `json:"shift_role_name,omitempty"`
	JobRoleID      string        `json:"job_role_id"`
	JobRoleName    *string       `json:"job_role_name,omitempty"`
	ExpectedCount  int           `json:"expected_count"`
	CheckedInCount int           `json:"checked_in_count"`
	MissingCount   int           `json:"missing_count"`
	Status         Status        `json:"status"`
	Missing        []MissingUser `json:"missing"`
}

type Totals struct {
	Expected  int `json:"expected"`
	CheckedIn int `json:"checked_in"`
	Missing   int `json:"missing"`
}

type NowBoardResponse struct {
	Date         string              `json:"date"`
	DepartmentID *string             `json:"department_id,omitempty"`
	Groups       []RoleGroupCoverage `json:"groups"`
	Totals       Totals              `json:"totals"`
}

type DailyTotals struct {
	Date string `json:"date"`
	Totals
}

type WeeklySummaryResponse struct {
	WeekStart    string        `json:"week_start"`
	WeekEnd      string        `json:"week_end"`
	DepartmentID *string       `json:"department_id,omitempty"`
	Days         []DailyTotals `json:"days"`
}
