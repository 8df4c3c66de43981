package settings

import "context"

type SettingsService interface {
	// GetSettings returns the stored settings, or the defaults when none are saved
	GetSettings(ctx context.Context, companyID string) (AttendanceSettings, error)

	// UpdateSettings applies a partial update; unspecified fields are unchanged
	UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (SettingsResponse, error)
}
