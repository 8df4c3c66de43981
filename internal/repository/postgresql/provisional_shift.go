package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/clock-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/clock-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type provisionalShiftRepository struct {
	db *database.DB
}

// start_time is a TIME column; it is read as shift_date + start_time so it scans into time.Time.
const provisionalShiftColumns = `
	ps.id, ps.company_id, ps.user_id, ps.shift_date, (ps.shift_date + ps.start_time) AS starts_at,
	ps.hours, ps.shift_leave_type_id, ps.job_role_id, ps.shift_role_id, ps.department_id, ps.location_id,
	u.full_name, u.phone, jr.name, sr.name
`

const provisionalShiftJoins = `
	FROM provisional_shifts ps
	LEFT JOIN users u ON u.id = ps.user_id
	LEFT JOIN job_roles jr ON jr.id = ps.job_role_id
	LEFT JOIN shift_roles sr ON sr.id = ps.shift_role_id
`

func scanProvisionalShift(row pgx.Row) (shift.ProvisionalShift, error) {
	var p shift.ProvisionalShift
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.UserID, &p.ShiftDate, &p.StartTime,
		&p.Hours, &p.ShiftLeaveTypeID, &p.JobRoleID, &p.ShiftRoleID, &p.DepartmentID, &p.LocationID,
		&p.UserDisplayName, &p.UserPhone, &p.JobRoleName, &p.ShiftRoleName,
	)
	return p, err
}

// GetByID implements shift.ProvisionalShiftRepository.
func (r *provisionalShiftRepository) GetByID(ctx context.Context, id string, companyID string) (shift.ProvisionalShift, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + provisionalShiftColumns + provisionalShiftJoins + `
		WHERE ps.id = $1 AND ps.company_id = $2
	`

	p, err := scanProvisionalShift(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.ProvisionalShift{}, shift.ErrProvisionalShiftNotFound
		}
		return shift.ProvisionalShift{}, fmt.Errorf("failed to get provisional shift: %w", err)
	}

	return p, nil
}

// ListByDate implements shift.ProvisionalShiftRepository.
func (r *provisionalShiftRepository) ListByDate(ctx context.Context, companyID string, date time.Time, filter shift.ShiftFilter) ([]shift.ProvisionalShift, error) {
	q := GetQuerier(ctx, r.db)

	where := `WHERE ps.company_id = $1 AND ps.shift_date = $2`
	args := []interface{}{companyID, date.Format("2006-01-02")}
	argIdx := 3

	if filter.UserID != nil {
		where += fmt.Sprintf(" AND ps.user_id = $%d", argIdx)
		args = append(args, *filter.UserID)
		argIdx++
	}
	if filter.DepartmentID != nil {
		where += fmt.Sprintf(" AND ps.department_id = $%d", argIdx)
		args = append(args, *filter.DepartmentID)
		argIdx++
	}

	query := `SELECT ` + provisionalShiftColumns + provisionalShiftJoins + where + `
		ORDER BY ps.start_time, ps.user_id
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list provisional shifts: %w", err)
	}
	defer rows.Close()

	var shifts []shift.ProvisionalShift
	for rows.Next() {
		p, err := scanProvisionalShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan provisional shift: %w", err)
		}
		shifts = append(shifts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate provisional shifts: %w", err)
	}

	return shifts, nil
}

func NewProvisionalShiftRepository(db *database.DB) shift.ProvisionalShiftRepository {
	return &provisionalShiftRepository{db: db}
}
