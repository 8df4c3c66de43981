package settings

import (
	"github.com/cmlabs-hris/clock-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE SETTINGS DTOs
// ========================================

type ClockSettings struct {
	WarningThresholdHours      float64 `json:"warning_threshold_hours"`
	AutoClockOutThresholdHours float64 `json:"auto_clock_out_threshold_hours"`
}

type SettingsResponse struct {
	HolidayYearStartDate            string        `json:"holiday_year_start_date"`
	DefaultHoursPerDay              float64       `json:"default_hours_per_day"`
	AllowNegativeHolidayBalance     bool          `json:"allow_negative_holiday_balance"`
	ProvisionalShiftLinkWindowHours float64       `json:"provisional_shift_link_window_hours"`
	Clock                           ClockSettings `json:"clock"`
	Timezone                        string        `json:"timezone"`
	StandardAnnualAllowanceHours    float64       `json:"standard_annual_allowance_hours"`
	HolidayYearLengthMonths         int           `json:"holiday_year_length_months"`
}

func ToResponse(s AttendanceSettings) SettingsResponse {
	return SettingsResponse{
		HolidayYearStartDate:            s.HolidayYearStartDate,
		DefaultHoursPerDay:              s.DefaultHoursPerDay,
		AllowNegativeHolidayBalance:     s.AllowNegativeHolidayBalance,
		ProvisionalShiftLinkWindowHours: s.ProvisionalShiftLinkWindowHours,
		Clock: ClockSettings{
			WarningThresholdHours:      s.ClockWarningThresholdHours,
			AutoClockOutThresholdHours: s.ClockAutoClockOutThresholdHours,
		},
		Timezone:                     s.Timezone,
		StandardAnnualAllowanceHours: s.StandardAnnualAllowanceHours,
		HolidayYearLengthMonths:      s.HolidayYearLengthMonths,
	}
}

type UpdateClockSettings struct {
	WarningThresholdHours      *float64 `json:"warning_threshold_hours,omitempty"`
	AutoClockOutThresholdHours *float64 `json:"auto_clock_out_threshold_hours,omitempty"`
}

// UpdateSettingsRequest is a partial update: nil fields keep their stored value.
type UpdateSettingsRequest struct {
	CompanyID                       string               `json:"-"`
	HolidayYearStartDate            *string              `json:"holiday_year_start_date,omitempty"`
	DefaultHoursPerDay              *float64             `json:"default_hours_per_day,omitempty"`
	AllowNegativeHolidayBalance     *bool                `json:"allow_negative_holiday_balance,omitempty"`
	ProvisionalShiftLinkWindowHours *float64             `json:"provisional_shift_link_window_hours,omitempty"`
	Clock                           *UpdateClockSettings `json:"clock,omitempty"`
	Timezone                        *string              `json:"timezone,omitempty"`
	StandardAnnualAllowanceHours    *float64             `json:"standard_annual_allowance_hours,omitempty"`
	HolidayYearLengthMonths         *int                 `json:"holiday_year_length_months,omitempty"`
}

// Validate checks the fields present in the request.
func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.HolidayYearStartDate != nil && !validator.IsValidMonthDay(*r.HolidayYearStartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "holiday_year_start_date",
			Message: "holiday_year_start_date must be in MM-DD format",
		})
	}

	if r.DefaultHoursPerDay != nil && !validator.IsInRange(*r.DefaultHoursPerDay, 0.5, 24) {
		errs = append(errs, validator.ValidationError{
			Field:   "default_hours_per_day",
			Message: "default_hours_per_day must be between 0.5 and 24",
		})
	}

	if r.ProvisionalShiftLinkWindowHours != nil && !validator.IsInRange(*r.ProvisionalShiftLinkWindowHours, 0.5, 24) {
		errs = append(errs, validator.ValidationError{
			Field:   "provisional_shift_link_window_hours",
			Message: "provisional_shift_link_window_hours must be between 0.5 and 24",
		})
	}

	if r.Clock != nil {
		if r.Clock.WarningThresholdHours != nil && *r.Clock.WarningThresholdHours <= 0 {
			errs = append(errs, validator.ValidationError{
				Field:   "clock.warning_threshold_hours",
				Message: "clock.warning_threshold_hours must be greater than 0",
			})
		}
		if r.Clock.AutoClockOutThresholdHours != nil && *r.Clock.AutoClockOutThresholdHours <= 0 {
			errs = append(errs, validator.ValidationError{
				Field:   "clock.auto_clock_out_threshold_hours",
				Message: "clock.auto_clock_out_threshold_hours must be greater than 0",
			})
		}
	}

	if r.Timezone != nil && !validator.IsValidTimezone(*r.Timezone) {
		errs = append(errs, validator.ValidationError{
			Field:   "timezone",
			Message: "timezone must be a valid IANA time zone name",
		})
	}

	if r.StandardAnnualAllowanceHours != nil && *r.StandardAnnualAllowanceHours < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "standard_annual_allowance_hours",
			Message: "standard_annual_allowance_hours must not be negative",
		})
	}

	if r.HolidayYearLengthMonths != nil && (*r.HolidayYearLengthMonths < 1 || *r.HolidayYearLengthMonths > 24) {
		errs = append(errs, validator.ValidationError{
			Field:   "holiday_year_length_months",
			Message: "holiday_year_length_months must be between 1 and 24",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Apply copies the present fields onto s and checks the cross-field rules of the result.
func (r *UpdateSettingsRequest) Apply(s AttendanceSettings) (AttendanceSettings, error) {
	if r.HolidayYearStartDate != nil {
		s.HolidayYearStartDate = *r.HolidayYearStartDate
	}
	if r.DefaultHoursPerDay != nil {
		s.DefaultHoursPerDay = *r.DefaultHoursPerDay
	}
	if r.AllowNegativeHolidayBalance != nil {
		s.AllowNegativeHolidayBalance = *r.AllowNegativeHolidayBalance
	}
	if r.ProvisionalShiftLinkWindowHours != nil {
		s.ProvisionalShiftLinkWindowHours = *r.ProvisionalShiftLinkWindowHours
	}
	if r.Clock != nil {
		if r.Clock.WarningThresholdHours != nil {
			s.ClockWarningThresholdHours = *r.Clock.WarningThresholdHours
		}
		if r.Clock.AutoClockOutThresholdHours != nil {
			s.ClockAutoClockOutThresholdHours = *r.Clock.AutoClockOutThresholdHours
		}
	}
	if r.Timezone != nil {
		s.Timezone = *r.Timezone
	}
	if r.StandardAnnualAllowanceHours != nil {
		s.StandardAnnualAllowanceHours = *r.StandardAnnualAllowanceHours
	}
	if r.HolidayYearLengthMonths != nil {
		s.HolidayYearLengthMonths = *r.HolidayYearLengthMonths
	}

	if s.ClockWarningThresholdHours > s.ClockAutoClockOutThresholdHours {
		return s, validator.ValidationErrors{{
			Field:   "clock.warning_threshold_hours",
			Message: "clock.warning_threshold_hours must not exceed clock.auto_clock_out_threshold_hours",
		}}
	}

	return s, nil
}
