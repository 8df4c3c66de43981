package settings

import "context"

type SettingsRepository interface {
	// Get returns ErrSettingsNotFound when the company has no saved row.
	Get(ctx context.Context, companyID string) (AttendanceSettings, error)

	// Upsert writes the full row.
	Upsert(ctx context.Context, s AttendanceSettings) (AttendanceSettings, error)

	// LockCompany serializes settings writes for one company until the surrounding transaction ends.
	// It works whether or not the company already has a saved row.
	LockCompany(ctx context.Context, companyID string) error
}
