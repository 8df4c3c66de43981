package postgresql_test

import (
	"context"
	"sync"
	"testing"

	"github.com/cmlabs-hris/clock-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/clock-backend-go/internal/pkg/keylock"
	"github.com/cmlabs-hris/clock-backend-go/internal/repository/postgresql"
	settingsService "github.com/cmlabs-hris/clock-backend-go/internal/service/settings"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsRepository_UpsertRoundTripsNumerics(t *testing.T) {
	db := requireDB(t)
	ctx := context.Background()
	repo := postgresql.NewSettingsRepository(db)

	companyID := uuid.NewString()
	_, err := repo.Get(ctx, companyID)
	assert.ErrorIs(t, err, settings.ErrSettingsNotFound)

	s := settings.Defaults(companyID)
	s.DefaultHoursPerDay = 7.25
	s.ProvisionalShiftLinkWindowHours = 1.5
	s.ClockWarningThresholdHours = 9.75
	s.StandardAnnualAllowanceHours = 187.5
	s.HolidayYearStartDate = "04-06"

	_, err = repo.Upsert(ctx, s)
	require.NoError(t, err)

	got, err := repo.Get(ctx, companyID)
	require.NoError(t, err)
	assert.Equal(t, 7.25, got.DefaultHoursPerDay)
	assert.Equal(t, 1.5, got.ProvisionalShiftLinkWindowHours)
	assert.Equal(t, 9.75, got.ClockWarningThresholdHours)
	assert.Equal(t, 12.0, got.ClockAutoClockOutThresholdHours)
	assert.Equal(t, 187.5, got.StandardAnnualAllowanceHours)
	assert.Equal(t, "04-06", got.HolidayYearStartDate)
}

func TestSettingsService_ConcurrentPartialUpdatesAcrossInstances(t *testing.T) {
	db := requireDB(t)
	ctx := context.Background()
	tr := postgresql.NewTransactor(db)
	repo := postgresql.NewSettingsRepository(db)

	companyID := uuid.NewString()
	_, err := repo.Upsert(ctx, settings.Defaults(companyID))
	require.NoError(t, err)

	// Separate lockers so only the database lock serializes the writers.
	reqs := []settings.UpdateSettingsRequest{
		{CompanyID: companyID, DefaultHoursPerDay: floatPtr(6)},
		{CompanyID: companyID, HolidayYearStartDate: stringPtr("04-06")},
		{CompanyID: companyID, ProvisionalShiftLinkWindowHours: floatPtr(3)},
	}

	var wg sync.WaitGroup
	errs := make([]error, len(reqs))
	for i, req := range reqs {
		wg.Add(1)
		go func(i int, req settings.UpdateSettingsRequest) {
			defer wg.Done()
			svc := settingsService.NewSettingsService(tr, repo, keylock.New())
			_, errs[i] = svc.UpdateSettings(ctx, req)
		}(i, req)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	got, err := repo.Get(ctx, companyID)
	require.NoError(t, err)
	assert.Equal(t, 6.0, got.DefaultHoursPerDay)
	assert.Equal(t, "04-06", got.HolidayYearStartDate)
	assert.Equal(t, 3.0, got.ProvisionalShiftLinkWindowHours)
}

func floatPtr(v float64) *float64 { return &v }
func stringPtr(v string) *string  { return &v }
