package settings

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/clock-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/clock-backend-go/internal/pkg/keylock"
	"github.com/cmlabs-hris/clock-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSettingsRepo struct {
	mu       sync.Mutex
	rows     map[string]settings.AttendanceSettings
	upserts  int
	locks    int
	getDelay time.Duration
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{rows: map[string]settings.AttendanceSettings{}}
}

func (f *fakeSettingsRepo) Get(ctx context.Context, companyID string) (settings.AttendanceSettings, error) {
	f.mu.Lock()
	s, ok := f.rows[companyID]
	delay := f.getDelay
	f.mu.Unlock()

	// widen the read-merge-write window
	time.Sleep(delay)

	if !ok {
		return settings.AttendanceSettings{}, settings.ErrSettingsNotFound
	}
	return s, nil
}

func (f *fakeSettingsRepo) Upsert(ctx context.Context, s settings.AttendanceSettings) (settings.AttendanceSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserts++
	f.rows[s.CompanyID] = s
	return s, nil
}

func (f *fakeSettingsRepo) LockCompany(ctx context.Context, companyID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.locks++
	return nil
}

func (f *fakeSettingsRepo) row(companyID string) settings.AttendanceSettings {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows[companyID]
}

type fakeTransactor struct{}

func (fakeTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newService(repo *fakeSettingsRepo) settings.SettingsService {
	return NewSettingsService(fakeTransactor{}, repo, keylock.New())
}

func float(v float64) *float64 { return &v }
func str(v string) *string     { return &v }

func TestGetSettings_DefaultsWhenMissing(t *testing.T) {
	svc := newService(newFakeSettingsRepo())

	got, err := svc.GetSettings(context.Background(), "company-1")
	require.NoError(t, err)
	assert.Equal(t, settings.Defaults("company-1"), got)
	assert.Equal(t, 8.0, got.ClockWarningThresholdHours)
	assert.Equal(t, 12.0, got.ClockAutoClockOutThresholdHours)
}

func TestUpdateSettings_PartialUpdateKeepsOtherFields(t *testing.T) {
	repo := newFakeSettingsRepo()
	stored := settings.Defaults("company-1")
	stored.HolidayYearStartDate = "04-06"
	stored.AllowNegativeHolidayBalance = true
	repo.rows["company-1"] = stored

	svc := newService(repo)
	resp, err := svc.UpdateSettings(context.Background(), settings.UpdateSettingsRequest{
		CompanyID:          "company-1",
		DefaultHoursPerDay: float(8),
	})
	require.NoError(t, err)

	assert.Equal(t, 8.0, resp.DefaultHoursPerDay)
	assert.Equal(t, "04-06", resp.HolidayYearStartDate)
	assert.True(t, resp.AllowNegativeHolidayBalance)
	assert.Equal(t, 2.0, resp.ProvisionalShiftLinkWindowHours)
	assert.Equal(t, 8.0, repo.rows["company-1"].DefaultHoursPerDay)
}

func TestUpdateSettings_Validation(t *testing.T) {
	tests := []struct {
		name  string
		req   settings.UpdateSettingsRequest
		field string
	}{
		{"bad month day", settings.UpdateSettingsRequest{HolidayYearStartDate: str("4-6")}, "holiday_year_start_date"},
		{"impossible day", settings.UpdateSettingsRequest{HolidayYearStartDate: str("02-30")}, "holiday_year_start_date"},
		{"hours too low", settings.UpdateSettingsRequest{DefaultHoursPerDay: float(0.25)}, "default_hours_per_day"},
		{"window too high", settings.UpdateSettingsRequest{ProvisionalShiftLinkWindowHours: float(25)}, "provisional_shift_link_window_hours"},
		{"unknown timezone", settings.UpdateSettingsRequest{Timezone: str("Nowhere/Special")}, "timezone"},
		{
			"warning above auto clock out",
			settings.UpdateSettingsRequest{Clock: &settings.UpdateClockSettings{WarningThresholdHours: float(13)}},
			"clock.warning_threshold_hours",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeSettingsRepo()
			svc := newService(repo)

			tt.req.CompanyID = "company-1"
			_, err := svc.UpdateSettings(context.Background(), tt.req)

			var verrs validator.ValidationErrors
			require.True(t, errors.As(err, &verrs), "expected validation errors, got %v", err)
			assert.Contains(t, verrs.ToMap(), tt.field)
			assert.Zero(t, repo.upserts)
		})
	}
}

func TestUpdateSettings_BoundaryValuesAccepted(t *testing.T) {
	svc := newService(newFakeSettingsRepo())

	resp, err := svc.UpdateSettings(context.Background(), settings.UpdateSettingsRequest{
		CompanyID:                       "company-1",
		DefaultHoursPerDay:              float(0.5),
		ProvisionalShiftLinkWindowHours: float(24),
		HolidayYearStartDate:            str("02-29"),
	})
	require.NoError(t, err)
	assert.Equal(t, 0.5, resp.DefaultHoursPerDay)
	assert.Equal(t, 24.0, resp.ProvisionalShiftLinkWindowHours)
	assert.Equal(t, "02-29", resp.HolidayYearStartDate)
}

func TestUpdateSettings_ConcurrentPartialUpdatesKeepBothFields(t *testing.T) {
	repo := newFakeSettingsRepo()
	repo.rows["company-1"] = settings.Defaults("company-1")
	repo.getDelay = 20 * time.Millisecond
	svc := newService(repo)

	reqs := []settings.UpdateSettingsRequest{
		{CompanyID: "company-1", DefaultHoursPerDay: float(6)},
		{CompanyID: "company-1", HolidayYearStartDate: str("04-06")},
	}

	var wg sync.WaitGroup
	errs := make([]error, len(reqs))
	for i, req := range reqs {
		wg.Add(1)
		go func(i int, req settings.UpdateSettingsRequest) {
			defer wg.Done()
			_, errs[i] = svc.UpdateSettings(context.Background(), req)
		}(i, req)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	got := repo.row("company-1")
	assert.Equal(t, 6.0, got.DefaultHoursPerDay)
	assert.Equal(t, "04-06", got.HolidayYearStartDate)
	assert.Equal(t, 2, repo.upserts)
	assert.Equal(t, 2, repo.locks)
}
