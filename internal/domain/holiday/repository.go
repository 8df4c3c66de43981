package holiday

import (
	"context"
	"time"
)

type HolidayYearRepository interface {
	// GetByID returns ErrHolidayYearNotFound when missing
	GetByID(ctx context.Context, id string, companyID string) (HolidayYear, error)

	// GetActive returns ErrNoActiveHolidayYear when the company has none
	GetActive(ctx context.Context, companyID string) (HolidayYear, error)

	// GetByStartDate returns nil when no year starts on date
	GetByStartDate(ctx context.Context, companyID string, date time.Time) (*HolidayYear, error)

	Create(ctx context.Context, year HolidayYear) (HolidayYear, error)
	SetActive(ctx context.Context, id string, companyID string, active bool) error

	// TryLockRollover takes a transaction-scoped lock on the year; false when another holder has it
	TryLockRollover(ctx context.Context, yearID string) (bool, error)
}

type HolidayEntitlementRepository interface {
	ListByYear(ctx context.Context, yearID string, companyID string) ([]HolidayEntitlement, error)
	Create(ctx context.Context, e HolidayEntitlement) (HolidayEntitlement, error)
}
