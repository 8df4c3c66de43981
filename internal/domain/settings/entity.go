package settings

import (
	"time"
)

const (
	DefaultHolidayYearStartDate         = "01-01"
	DefaultHoursPerDay                  = 7.5
	DefaultLinkWindowHours              = 2.0
	DefaultWarningThresholdHours        = 8.0
	DefaultAutoClockOutThresholdHours   = 12.0
	DefaultTimezone                     = "UTC"
	DefaultHolidayYearLengthMonths      = 12
	DefaultStandardAnnualAllowanceHours = 0.0
)

// AttendanceSettings is the organisation-wide configuration every other component reads.
type AttendanceSettings struct {
	CompanyID                       string
	HolidayYearStartDate            string // MM-DD
	DefaultHoursPerDay              float64
	AllowNegativeHolidayBalance     bool
	ProvisionalShiftLinkWindowHours float64
	ClockWarningThresholdHours      float64
	ClockAutoClockOutThresholdHours float64
	Timezone                        string
	StandardAnnualAllowanceHours    float64
	HolidayYearLengthMonths         int
	CreatedAt                       time.Time
	UpdatedAt                       time.Time
}

// Defaults returns the settings used for a company that has never saved any.
func Defaults(companyID string) AttendanceSettings {
	return AttendanceSettings{
		CompanyID:                       companyID,
		HolidayYearStartDate:            DefaultHolidayYearStartDate,
		DefaultHoursPerDay:              DefaultHoursPerDay,
		AllowNegativeHolidayBalance:     false,
		ProvisionalShiftLinkWindowHours: DefaultLinkWindowHours,
		ClockWarningThresholdHours:      DefaultWarningThresholdHours,
		ClockAutoClockOutThresholdHours: DefaultAutoClockOutThresholdHours,
		Timezone:                        DefaultTimezone,
		StandardAnnualAllowanceHours:    DefaultStandardAnnualAllowanceHours,
		HolidayYearLengthMonths:         DefaultHolidayYearLengthMonths,
	}
}

// LinkWindow is the shift-link tolerance as a duration.
func (s AttendanceSettings) LinkWindow() time.Duration {
	return hoursToDuration(s.ProvisionalShiftLinkWindowHours)
}

// Location resolves Timezone, falling back to UTC.
func (s AttendanceSettings) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil || s.Timezone == "" {
		return time.UTC
	}
	return loc
}

func hoursToDuration(h float64) time.Duration {
	return time.Duration(h * float64(time.Hour))
}
