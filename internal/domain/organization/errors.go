package organization

import "errors"

var (
	ErrJobRoleNotFound         = errors.New("job role not found")
	ErrShiftRoleNotFound       = errors.New("shift role not found")
	ErrOwnerAccessRequired     = errors.New("owner access required")
	ErrManagerAccessRequired   = errors.New("manager access required")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrCompanyIDRequired       = errors.New("company ID is required")
	ErrInvalidToken            = errors.New("invalid token")
)
