package clock

import "time"

type State string

const (
	StateClockedOut State = "clocked_out"
	StateActive     State = "active"
	StateOnBreak    State = "on_break"
)

// IsTerminal reports whether no further transitions are accepted.
func (s State) IsTerminal() bool {
	return s == StateClockedOut
}

// ClockSession is one continuous work period for one person.
type ClockSession struct {
	ID                       string
	CompanyID                string
	UserID                   string
	JobRoleID                string
	ShiftRoleID              string
	LocationID               *string
	DepartmentID             *string
	State                    State
	ClockInTime              time.Time
	ClockOutTime             *time.Time
	BreakStartedAt           *time.Time
	LinkedProvisionalShiftID *string
	Notes                    *string
	CreatedAt                time.Time
	UpdatedAt                time.Time

	// DTO
	UserDisplayName *string
}

// AppendNote adds note on its own line. Blank notes are ignored.
func (s *ClockSession) AppendNote(note *string) {
	if note == nil || *note == "" {
		return
	}
	if s.Notes == nil || *s.Notes == "" {
		n := *note
		s.Notes = &n
		return
	}
	n := *s.Notes + "\n" + *note
	s.Notes = &n
}

type CorrectionField string

const (
	CorrectionFieldClockIn  CorrectionField = "clock_in_time"
	CorrectionFieldClockOut CorrectionField = "clock_out_time"
)

// Correction records one administrative edit of a session timestamp.
type Correction struct {
	ID          string
	SessionID   string
	CompanyID   string
	Field       CorrectionField
	OldValue    *time.Time
	NewValue    time.Time
	Notes       string
	CorrectedBy string
	CorrectedAt time.Time
}

type WarningLevel string

const (
	WarningNormal          WarningLevel = "normal"
	WarningLongSession     WarningLevel = "long_session"
	WarningVeryLongSession WarningLevel = "very_long_session"
)

// Thresholds feed the elapsed-time classifier.
type Thresholds struct {
	WarningHours      float64
	AutoClockOutHours float64
}

// Elapsed is the classifier output for one session at one instant.
type Elapsed struct {
	Hours float64
	Level WarningLevel
}
