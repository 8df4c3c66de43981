package nowboard

// Status is the traffic light of one role-group.
type Status string

const (
	StatusMuted Status = "muted" // nobody expected
	StatusGreen Status = "green" // everyone expected is in
	StatusRed   Status = "red"   // nobody expected is in
	StatusAmber Status = "amber" // partial coverage
)

// DeriveStatus applies muted, green, red, amber in that order.
func DeriveStatus(expected, checkedIn, missing int) Status {
	switch {
	case expected == 0:
		return StatusMuted
	case missing == 0:
		return StatusGreen
	case checkedIn == 0:
		return StatusRed
	default:
		return StatusAmber
	}
}

// GroupKey identifies a role-group on the board.
type GroupKey struct {
	ShiftRoleID string
	JobRoleID   string
}
