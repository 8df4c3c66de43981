package settings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/clock-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/clock-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/clock-backend-go/internal/pkg/keylock"
)

type SettingsServiceImpl struct {
	tx database.Transactor
	settings.SettingsRepository
	locks *keylock.Locker
}

// GetSettings implements settings.SettingsService.
func (s *SettingsServiceImpl) GetSettings(ctx context.Context, companyID string) (settings.AttendanceSettings, error) {
	stored, err := s.SettingsRepository.Get(ctx, companyID)
	if err != nil {
		if errors.Is(err, settings.ErrSettingsNotFound) {
			return settings.Defaults(companyID), nil
		}
		return settings.AttendanceSettings{}, fmt.Errorf("failed to get attendance settings: %w", err)
	}
	return stored, nil
}

// UpdateSettings implements settings.SettingsService. The read-merge-write runs under a
// per-company lock so concurrent partial updates never drop each other's fields.
func (s *SettingsServiceImpl) UpdateSettings(ctx context.Context, req settings.UpdateSettingsRequest) (settings.SettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return settings.SettingsResponse{}, err
	}

	unlock := s.locks.Lock("settings:" + req.CompanyID)
	defer unlock()

	var saved settings.AttendanceSettings
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.SettingsRepository.LockCompany(txCtx, req.CompanyID); err != nil {
			return err
		}

		current, err := s.GetSettings(txCtx, req.CompanyID)
		if err != nil {
			return err
		}

		next, err := req.Apply(current)
		if err != nil {
			return err
		}

		saved, err = s.SettingsRepository.Upsert(txCtx, next)
		if err != nil {
			return fmt.Errorf("failed to save attendance settings: %w", err)
		}
		return nil
	})
	if err != nil {
		return settings.SettingsResponse{}, err
	}

	slog.Info("attendance settings updated", "company_id", req.CompanyID)

	return settings.ToResponse(saved), nil
}

func NewSettingsService(tx database.Transactor, settingsRepo settings.SettingsRepository, locks *keylock.Locker) settings.SettingsService {
	return &SettingsServiceImpl{
		tx:                 tx,
		SettingsRepository: settingsRepo,
		locks:              locks,
	}
}
