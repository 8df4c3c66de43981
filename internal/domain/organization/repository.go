package organization

import "context"

// RoleRepository reads job and shift roles. Writes belong to the organisation service.
type RoleRepository interface {
	GetJobRole(ctx context.Context, id string, companyID string) (JobRole, error)
	GetShiftRole(ctx context.Context, id string, companyID string) (ShiftRole, error)
}
