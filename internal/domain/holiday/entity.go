package holiday

import (
	"fmt"
	"time"
)

// HolidayYear is an organisation's leave-accounting period. At most one is active per company.
type HolidayYear struct {
	ID        string
	CompanyID string
	YearName  string
	StartDate time.Time
	EndDate   time.Time
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HolidayEntitlement is one user's balance within one holiday year.
type HolidayEntitlement struct {
	ID                   string
	CompanyID            string
	HolidayYearID        string
	UserID               string
	AnnualAllowanceHours float64
	UsedHours            float64
	PendingHours         float64
	CarriedForwardHours  float64
	CreatedAt            time.Time
	UpdatedAt            time.Time

	// DTO
	UserDisplayName *string
}

// RemainingHours = allowance + carried forward - used - pending.
func (e HolidayEntitlement) RemainingHours() float64 {
	return e.AnnualAllowanceHours + e.CarriedForwardHours - e.UsedHours - e.PendingHours
}

// SuccessorBounds returns the dates of the year following one that ends on end.
func SuccessorBounds(end time.Time, lengthMonths int) (time.Time, time.Time) {
	if lengthMonths <= 0 {
		lengthMonths = 12
	}
	start := time.Date(end.Year(), end.Month(), end.Day()+1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, lengthMonths, -1)
}

// YearName is "2025" for a calendar year, otherwise "2025/2026".
func YearName(start, end time.Time) string {
	if start.Year() == end.Year() {
		return fmt.Sprintf("%d", start.Year())
	}
	return fmt.Sprintf("%d/%d", start.Year(), end.Year())
}
