package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/clock-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/clock-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const holidayYearStartConstraint = "holiday_years_company_start_key"

type holidayYearRepository struct {
	db *database.DB
}

const holidayYearColumns = `id, company_id, year_name, start_date, end_date, is_active, created_at, updated_at`

func scanHolidayYear(row pgx.Row) (holiday.HolidayYear, error) {
	var y holiday.HolidayYear
	err := row.Scan(&y.ID, &y.CompanyID, &y.YearName, &y.StartDate, &y.EndDate, &y.IsActive, &y.CreatedAt, &y.UpdatedAt)
	return y, err
}

// GetByID implements holiday.HolidayYearRepository.
func (r *holidayYearRepository) GetByID(ctx context.Context, id string, companyID string) (holiday.HolidayYear, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + holidayYearColumns + ` FROM holiday_years WHERE id = $1 AND company_id = $2`

	y, err := scanHolidayYear(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return holiday.HolidayYear{}, holiday.ErrHolidayYearNotFound
		}
		return holiday.HolidayYear{}, fmt.Errorf("failed to get holiday year: %w", err)
	}
	return y, nil
}

// GetActive implements holiday.HolidayYearRepository.
func (r *holidayYearRepository) GetActive(ctx context.Context, companyID string) (holiday.HolidayYear, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + holidayYearColumns + ` FROM holiday_years WHERE company_id = $1 AND is_active`

	y, err := scanHolidayYear(q.QueryRow(ctx, query, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return holiday.HolidayYear{}, holiday.ErrNoActiveHolidayYear
		}
		return holiday.HolidayYear{}, fmt.Errorf("failed to get active holiday year: %w", err)
	}
	return y, nil
}

// GetByStartDate implements holiday.HolidayYearRepository.
func (r *holidayYearRepository) GetByStartDate(ctx context.Context, companyID string, date time.Time) (*holiday.HolidayYear, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + holidayYearColumns + ` FROM holiday_years WHERE company_id = $1 AND start_date = $2`

	y, err := scanHolidayYear(q.QueryRow(ctx, query, companyID, date.Format("2006-01-02")))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get holiday year by start date: %w", err)
	}
	return &y, nil
}

// Create implements holiday.HolidayYearRepository.
func (r *holidayYearRepository) Create(ctx context.Context, year holiday.HolidayYear) (holiday.HolidayYear, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO holiday_years (id, company_id, year_name, start_date, end_date, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		year.ID,
		year.CompanyID,
		year.YearName,
		year.StartDate.Format("2006-01-02"),
		year.EndDate.Format("2006-01-02"),
		year.IsActive,
		year.CreatedAt,
		year.UpdatedAt,
	).Scan(&year.CreatedAt, &year.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, holidayYearStartConstraint) {
			return holiday.HolidayYear{}, holiday.ErrSuccessorYearExists
		}
		return holiday.HolidayYear{}, fmt.Errorf("failed to create holiday year: %w", err)
	}
	return year, nil
}

// SetActive implements holiday.HolidayYearRepository.
func (r *holidayYearRepository) SetActive(ctx context.Context, id string, companyID string, active bool) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE holiday_years SET is_active = $3, updated_at = NOW()
		WHERE id = $1 AND company_id = $2
	`, id, companyID, active)
	if err != nil {
		return fmt.Errorf("failed to update holiday year: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return holiday.ErrHolidayYearNotFound
	}
	return nil
}

// TryLockRollover implements holiday.HolidayYearRepository. Must run inside a transaction.
func (r *holidayYearRepository) TryLockRollover(ctx context.Context, yearID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var locked bool
	if err := q.QueryRow(ctx, `SELECT pg_try_advisory_xact_lock(hashtext($1))`, "holiday-rollover:"+yearID).Scan(&locked); err != nil {
		return false, fmt.Errorf("failed to take rollover lock: %w", err)
	}
	return locked, nil
}

func NewHolidayYearRepository(db *database.DB) holiday.HolidayYearRepository {
	return &holidayYearRepository{db: db}
}

type holidayEntitlementRepository struct {
	db *database.DB
}

// ListByYear implements holiday.HolidayEntitlementRepository.
func (r *holidayEntitlementRepository) ListByYear(ctx context.Context, yearID string, companyID string) ([]holiday.HolidayEntitlement, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT he.id, he.company_id, he.holiday_year_id, he.user_id, he.annual_allowance_hours,
			   he.used_hours, he.pending_hours, he.carried_forward_hours, he.created_at, he.updated_at,
			   u.full_name
		FROM holiday_entitlements he
		LEFT JOIN users u ON u.id = he.user_id
		WHERE he.holiday_year_id = $1 AND he.company_id = $2
		ORDER BY he.user_id
	`

	rows, err := q.Query(ctx, query, yearID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list holiday entitlements: %w", err)
	}
	defer rows.Close()

	var entitlements []holiday.HolidayEntitlement
	for rows.Next() {
		var e holiday.HolidayEntitlement
		if err := rows.Scan(
			&e.ID, &e.CompanyID, &e.HolidayYearID, &e.UserID, &e.AnnualAllowanceHours,
			&e.UsedHours, &e.PendingHours, &e.CarriedForwardHours, &e.CreatedAt, &e.UpdatedAt,
			&e.UserDisplayName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan holiday entitlement: %w", err)
		}
		entitlements = append(entitlements, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate holiday entitlements: %w", err)
	}

	return entitlements, nil
}

// Create implements holiday.HolidayEntitlementRepository.
func (r *holidayEntitlementRepository) Create(ctx context.Context, e holiday.HolidayEntitlement) (holiday.HolidayEntitlement, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO holiday_entitlements (
			id, company_id, holiday_year_id, user_id, annual_allowance_hours,
			used_hours, pending_hours, carried_forward_hours, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		e.ID,
		e.CompanyID,
		e.HolidayYearID,
		e.UserID,
		e.AnnualAllowanceHours,
		e.UsedHours,
		e.PendingHours,
		e.CarriedForwardHours,
		e.CreatedAt,
		e.UpdatedAt,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return holiday.HolidayEntitlement{}, fmt.Errorf("failed to create holiday entitlement: %w", err)
	}
	return e, nil
}

func NewHolidayEntitlementRepository(db *database.DB) holiday.HolidayEntitlementRepository {
	return &holidayEntitlementRepository{db: db}
}
