package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/clock-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/clock-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type settingsRepository struct {
	db *database.DB
}

// Get implements settings.SettingsRepository.
func (r *settingsRepository) Get(ctx context.Context, companyID string) (settings.AttendanceSettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT company_id, holiday_year_start_date, default_hours_per_day, allow_negative_holiday_balance,
			   provisional_shift_link_window_hours, clock_warning_threshold_hours,
			   clock_auto_clock_out_threshold_hours, timezone, standard_annual_allowance_hours,
			   holiday_year_length_months, created_at, updated_at
		FROM attendance_settings
		WHERE company_id = $1
	`

	var s settings.AttendanceSettings
	err := q.QueryRow(ctx, query, companyID).Scan(
		&s.CompanyID, &s.HolidayYearStartDate, &s.DefaultHoursPerDay, &s.AllowNegativeHolidayBalance,
		&s.ProvisionalShiftLinkWindowHours, &s.ClockWarningThresholdHours,
		&s.ClockAutoClockOutThresholdHours, &s.Timezone, &s.StandardAnnualAllowanceHours,
		&s.HolidayYearLengthMonths, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return settings.AttendanceSettings{}, settings.ErrSettingsNotFound
		}
		return settings.AttendanceSettings{}, fmt.Errorf("failed to get attendance settings: %w", err)
	}

	return s, nil
}

// Upsert implements settings.SettingsRepository.
func (r *settingsRepository) Upsert(ctx context.Context, s settings.AttendanceSettings) (settings.AttendanceSettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_settings (
			company_id, holiday_year_start_date, default_hours_per_day, allow_negative_holiday_balance,
			provisional_shift_link_window_hours, clock_warning_threshold_hours,
			clock_auto_clock_out_threshold_hours, timezone, standard_annual_allowance_hours,
			holiday_year_length_months
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (company_id) DO UPDATE SET
			holiday_year_start_date = EXCLUDED.holiday_year_start_date,
			default_hours_per_day = EXCLUDED.default_hours_per_day,
			allow_negative_holiday_balance = EXCLUDED.allow_negative_holiday_balance,
			provisional_shift_link_window_hours = EXCLUDED.provisional_shift_link_window_hours,
			clock_warning_threshold_hours = EXCLUDED.clock_warning_threshold_hours,
			clock_auto_clock_out_threshold_hours = EXCLUDED.clock_auto_clock_out_threshold_hours,
			timezone = EXCLUDED.timezone,
			standard_annual_allowance_hours = EXCLUDED.standard_annual_allowance_hours,
			holiday_year_length_months = EXCLUDED.holiday_year_length_months,
			updated_at = NOW()
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		s.CompanyID,
		s.HolidayYearStartDate,
		s.DefaultHoursPerDay,
		s.AllowNegativeHolidayBalance,
		s.ProvisionalShiftLinkWindowHours,
		s.ClockWarningThresholdHours,
		s.ClockAutoClockOutThresholdHours,
		s.Timezone,
		s.StandardAnnualAllowanceHours,
		s.HolidayYearLengthMonths,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return settings.AttendanceSettings{}, fmt.Errorf("failed to upsert attendance settings: %w", err)
	}

	return s, nil
}

// LockCompany implements settings.SettingsRepository. Must run inside a transaction.
func (r *settingsRepository) LockCompany(ctx context.Context, companyID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, "settings:"+companyID)
	if err != nil {
		return fmt.Errorf("failed to take settings lock: %w", err)
	}
	return nil
}

func NewSettingsRepository(db *database.DB) settings.SettingsRepository {
	return &settingsRepository{db: db}
}
