package shift

import "errors"

var (
	ErrProvisionalShiftNotFound = errors.New("provisional shift not found")
)
