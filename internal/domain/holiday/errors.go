package holiday

import "errors"

var (
	ErrHolidayYearNotFound = errors.New("holiday year not found")
	ErrNoActiveHolidayYear = errors.New("no active holiday year")

	// Conflict
	ErrHolidayYearNotActive = errors.New("holiday year is not the active year")
	ErrSuccessorYearExists  = errors.New("a holiday year already starts after this one")
	ErrRolloverInProgress   = errors.New("a rollover for this holiday year is already in progress")

	// Validation
	ErrNegativeBalance = errors.New("rollover would leave a negative holiday balance; set allow_negative_holiday_balance to true in attendance settings to permit it")
)
