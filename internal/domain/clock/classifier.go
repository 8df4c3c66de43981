package clock

import (
	"time"

	"github.com/cmlabs-hris/clock-backend-go/internal/domain/settings"
)

// Classify derives elapsed hours and the warning level of a session that started at clockIn.
// It never clocks anyone out; the level is advisory only.
func Classify(clockIn, now time.Time, th Thresholds) Elapsed {
	hours := now.Sub(clockIn).Hours()
	if hours < 0 {
		hours = 0
	}

	level := WarningNormal
	switch {
	case hours >= th.AutoClockOutHours:
		level = WarningVeryLongSession
	case hours >= th.WarningHours:
		level = WarningLongSession
	}

	return Elapsed{Hours: hours, Level: level}
}

// ThresholdsFrom reads the classifier thresholds out of the attendance settings.
func ThresholdsFrom(s settings.AttendanceSettings) Thresholds {
	return Thresholds{
		WarningHours:      s.ClockWarningThresholdHours,
		AutoClockOutHours: s.ClockAutoClockOutThresholdHours,
	}
}
