package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/clock-backend-go/internal/domain/organization"
	"github.com/cmlabs-hris/clock-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type roleRepository struct {
	db *database.DB
}

// GetJobRole implements organization.RoleRepository.
func (r *roleRepository) GetJobRole(ctx context.Context, id string, companyID string) (organization.JobRole, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, created_at, updated_at
		FROM job_roles
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL
	`

	var jr organization.JobRole
	err := q.QueryRow(ctx, query, id, companyID).Scan(&jr.ID, &jr.CompanyID, &jr.Name, &jr.CreatedAt, &jr.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return organization.JobRole{}, organization.ErrJobRoleNotFound
		}
		return organization.JobRole{}, fmt.Errorf("failed to get job role: %w", err)
	}

	return jr, nil
}

// GetShiftRole implements organization.RoleRepository.
func (r *roleRepository) GetShiftRole(ctx context.Context, id string, companyID string) (organization.ShiftRole, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT sr.id, sr.company_id, sr.job_role_id, sr.name, sr.created_at, sr.updated_at, jr.name
		FROM shift_roles sr
		LEFT JOIN job_roles jr ON jr.id = sr.job_role_id
		WHERE sr.id = $1 AND sr.company_id = $2 AND sr.deleted_at IS NULL
	`

	var sr organization.ShiftRole
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&sr.ID, &sr.CompanyID, &sr.JobRoleID, &sr.Name, &sr.CreatedAt, &sr.UpdatedAt, &sr.JobRoleName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return organization.ShiftRole{}, organization.ErrShiftRoleNotFound
		}
		return organization.ShiftRole{}, fmt.Errorf("failed to get shift role: %w", err)
	}

	return sr, nil
}

func NewRoleRepository(db *database.DB) organization.RoleRepository {
	return &roleRepository{db: db}
}
