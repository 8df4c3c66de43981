package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/clock-backend-go/internal/domain/clock"
	"github.com/cmlabs-hris/clock-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const openSessionConstraint = "clock_sessions_one_open_per_user"

type clockSessionRepository struct {
	db *database.DB
}

const clockSessionColumns = `
	cs.id, cs.company_id, cs.user_id, cs.job_role_id, cs.shift_role_id, cs.location_id, cs.department_id,
	cs.state, cs.clock_in_time, cs.clock_out_time, cs.break_started_at, cs.linked_provisional_shift_id,
	cs.notes, cs.created_at, cs.updated_at, u.full_name
`

const clockSessionFrom = `
	FROM clock_sessions cs
	LEFT JOIN users u ON u.id = cs.user_id
`

func scanClockSession(row pgx.Row) (clock.ClockSession, error) {
	var s clock.ClockSession
	err := row.Scan(
		&s.ID, &s.CompanyID, &s.UserID, &s.JobRoleID, &s.ShiftRoleID, &s.LocationID, &s.DepartmentID,
		&s.State, &s.ClockInTime, &s.ClockOutTime, &s.BreakStartedAt, &s.LinkedProvisionalShiftID,
		&s.Notes, &s.CreatedAt, &s.UpdatedAt, &s.UserDisplayName,
	)
	return s, err
}

func (r *clockSessionRepository) list(ctx context.Context, query string, args ...interface{}) ([]clock.ClockSession, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []clock.ClockSession
	for rows.Next() {
		s, err := scanClockSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// Create implements clock.ClockSessionRepository.
func (r *clockSessionRepository) Create(ctx context.Context, session clock.ClockSession) (clock.ClockSession, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO clock_sessions (
			id, company_id, user_id, job_role_id, shift_role_id, location_id, department_id,
			state, clock_in_time, notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		session.ID,
		session.CompanyID,
		session.UserID,
		session.JobRoleID,
		session.ShiftRoleID,
		session.LocationID,
		session.DepartmentID,
		session.State,
		session.ClockInTime,
		session.Notes,
		session.CreatedAt,
		session.UpdatedAt,
	).Scan(&session.CreatedAt, &session.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, openSessionConstraint) {
			return clock.ClockSession{}, clock.ErrAlreadyClockedIn
		}
		return clock.ClockSession{}, fmt.Errorf("failed to create clock session: %w", err)
	}

	return session, nil
}

// GetByID implements clock.ClockSessionRepository.
func (r *clockSessionRepository) GetByID(ctx context.Context, id string, companyID string) (clock.ClockSession, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + clockSessionColumns + clockSessionFrom + `
		WHERE cs.id = $1 AND cs.company_id = $2
	`

	s, err := scanClockSession(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return clock.ClockSession{}, clock.ErrSessionNotFound
		}
		return clock.ClockSession{}, fmt.Errorf("failed to get clock session: %w", err)
	}

	return s, nil
}

// GetOpenByUser implements clock.ClockSessionRepository.
func (r *clockSessionRepository) GetOpenByUser(ctx context.Context, userID string, companyID string) (*clock.ClockSession, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + clockSessionColumns + clockSessionFrom + `
		WHERE cs.user_id = $1 AND cs.company_id = $2 AND cs.state <> 'clocked_out'
		LIMIT 1
	`

	s, err := scanClockSession(q.QueryRow(ctx, query, userID, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get open clock session: %w", err)
	}

	return &s, nil
}

// Update implements clock.ClockSessionRepository.
func (r *clockSessionRepository) Update(ctx context.Context, session clock.ClockSession) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE clock_sessions SET
			shift_role_id = $3,
			state = $4,
			clock_in_time = $5,
			clock_out_time = $6,
			break_started_at = $7,
			linked_provisional_shift_id = $8,
			notes = $9,
			updated_at = $10
		WHERE id = $1 AND company_id = $2
	`

	tag, err := q.Exec(ctx, query,
		session.ID,
		session.CompanyID,
		session.ShiftRoleID,
		session.State,
		session.ClockInTime,
		session.ClockOutTime,
		session.BreakStartedAt,
		session.LinkedProvisionalShiftID,
		session.Notes,
		session.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update clock session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return clock.ErrSessionNotFound
	}

	return nil
}

// ListOpen implements clock.ClockSessionRepository.
func (r *clockSessionRepository) ListOpen(ctx context.Context, companyID string, filter clock.ActiveSessionFilter) ([]clock.ClockSession, error) {
	where := `WHERE cs.company_id = $1 AND cs.state <> 'clocked_out'`
	args := []interface{}{companyID}
	argIdx := 2

	if filter.LocationID != nil {
		where += fmt.Sprintf(" AND cs.location_id = $%d", argIdx)
		args = append(args, *filter.LocationID)
		argIdx++
	}
	if filter.DepartmentID != nil {
		where += fmt.Sprintf(" AND cs.department_id = $%d", argIdx)
		args = append(args, *filter.DepartmentID)
		argIdx++
	}

	query := `SELECT ` + clockSessionColumns + clockSessionFrom + where + `
		ORDER BY cs.clock_in_time
	`

	sessions, err := r.list(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list open clock sessions: %w", err)
	}
	return sessions, nil
}

// ListOpenAllCompanies implements clock.ClockSessionRepository.
func (r *clockSessionRepository) ListOpenAllCompanies(ctx context.Context) ([]clock.ClockSession, error) {
	query := `SELECT ` + clockSessionColumns + clockSessionFrom + `
		WHERE cs.state <> 'clocked_out'
		ORDER BY cs.company_id, cs.clock_in_time
	`

	sessions, err := r.list(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list open clock sessions: %w", err)
	}
	return sessions, nil
}

// ListClockedInBetween implements clock.ClockSessionRepository.
func (r *clockSessionRepository) ListClockedInBetween(ctx context.Context, companyID string, from, to time.Time) ([]clock.ClockSession, error) {
	query := `SELECT ` + clockSessionColumns + clockSessionFrom + `
		WHERE cs.company_id = $1 AND cs.clock_in_time >= $2 AND cs.clock_in_time < $3
		ORDER BY cs.clock_in_time
	`

	sessions, err := r.list(ctx, query, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list clock sessions between %s and %s: %w", from.Format(time.RFC3339), to.Format(time.RFC3339), err)
	}
	return sessions, nil
}

// LockUser implements clock.ClockSessionRepository. Must run inside a transaction.
func (r *clockSessionRepository) LockUser(ctx context.Context, companyID string, userID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, "clock:"+companyID+":"+userID)
	if err != nil {
		return fmt.Errorf("failed to take user clock lock: %w", err)
	}
	return nil
}

func NewClockSessionRepository(db *database.DB) clock.ClockSessionRepository {
	return &clockSessionRepository{db: db}
}
