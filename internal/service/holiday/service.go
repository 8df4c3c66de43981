package holiday

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/clock-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/clock-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/clock-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/clock-backend-go/internal/pkg/keylock"
	"github.com/google/uuid"
)

type HolidayYearServiceImpl struct {
	tx database.Transactor
	holiday.HolidayYearRepository
	holiday.HolidayEntitlementRepository
	settingsService settings.SettingsService
	locks           *keylock.Locker
	now             func() time.Time
}

// Rollover implements holiday.HolidayYearService.
//
// Either every entitlement is copied and the active flag moves to the new year, or nothing changes.
func (s *HolidayYearServiceImpl) Rollover(ctx context.Context, req holiday.RolloverRequest) (holiday.RolloverResponse, error) {
	cfg, err := s.settingsService.GetSettings(ctx, req.CompanyID)
	if err != nil {
		return holiday.RolloverResponse{}, err
	}

	source, err := s.sourceYear(ctx, req)
	if err != nil {
		return holiday.RolloverResponse{}, err
	}

	unlock, ok := s.locks.TryLock("holiday-rollover:" + source.ID)
	if !ok {
		return holiday.RolloverResponse{}, holiday.ErrRolloverInProgress
	}
	defer unlock()

	var resp holiday.RolloverResponse
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		locked, err := s.HolidayYearRepository.TryLockRollover(txCtx, source.ID)
		if err != nil {
			return fmt.Errorf("failed to lock holiday year: %w", err)
		}
		if !locked {
			return holiday.ErrRolloverInProgress
		}

		current, err := s.HolidayYearRepository.GetByID(txCtx, source.ID, req.CompanyID)
		if err != nil {
			return err
		}
		if !current.IsActive {
			return holiday.ErrHolidayYearNotActive
		}

		start, end := holiday.SuccessorBounds(current.EndDate, cfg.HolidayYearLengthMonths)
		existing, err := s.HolidayYearRepository.GetByStartDate(txCtx, req.CompanyID, start)
		if err != nil {
			return fmt.Errorf("failed to check successor holiday year: %w", err)
		}
		if existing != nil {
			return holiday.ErrSuccessorYearExists
		}

		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate holiday year id: %w", err)
		}
		nowUTC := s.now().UTC()

		// Inactive until the predecessor is deactivated.
		next, err := s.HolidayYearRepository.Create(txCtx, holiday.HolidayYear{
			ID:        id.String(),
			CompanyID: req.CompanyID,
			YearName:  holiday.YearName(start, end),
			StartDate: start,
			EndDate:   end,
			IsActive:  false,
			CreatedAt: nowUTC,
			UpdatedAt: nowUTC,
		})
		if err != nil {
			if errors.Is(err, holiday.ErrSuccessorYearExists) {
				return err
			}
			return fmt.Errorf("failed to create holiday year: %w", err)
		}

		entitlements, err := s.HolidayEntitlementRepository.ListByYear(txCtx, current.ID, req.CompanyID)
		if err != nil {
			return fmt.Errorf("failed to list holiday entitlements: %w", err)
		}

		carried := make([]holiday.EntitlementResponse, 0, len(entitlements))
		for _, e := range entitlements {
			carryForward := e.RemainingHours()
			if carryForward < 0 && !req.AllowNegativeCarryForward {
				carryForward = 0
			}

			entitlementID, err := uuid.NewV7()
			if err != nil {
				return fmt.Errorf("failed to generate holiday entitlement id: %w", err)
			}

			copied := holiday.HolidayEntitlement{
				ID:                   entitlementID.String(),
				CompanyID:            req.CompanyID,
				HolidayYearID:        next.ID,
				UserID:               e.UserID,
				AnnualAllowanceHours: cfg.StandardAnnualAllowanceHours,
				UsedHours:            0,
				PendingHours:         0,
				CarriedForwardHours:  carryForward,
				CreatedAt:            nowUTC,
				UpdatedAt:            nowUTC,
				UserDisplayName:      e.UserDisplayName,
			}
			if copied.RemainingHours() < 0 && !cfg.AllowNegativeHolidayBalance {
				return fmt.Errorf("user %s would have %.2f remaining hours: %w", e.UserID, copied.RemainingHours(), holiday.ErrNegativeBalance)
			}

			created, err := s.HolidayEntitlementRepository.Create(txCtx, copied)
			if err != nil {
				return fmt.Errorf("failed to copy holiday entitlement for user %s: %w", e.UserID, err)
			}
			created.UserDisplayName = e.UserDisplayName
			carried = append(carried, holiday.ToEntitlementResponse(created))
		}

		if err := s.HolidayYearRepository.SetActive(txCtx, current.ID, req.CompanyID, false); err != nil {
			return fmt.Errorf("failed to deactivate holiday year: %w", err)
		}
		if err := s.HolidayYearRepository.SetActive(txCtx, next.ID, req.CompanyID, true); err != nil {
			return fmt.Errorf("failed to activate holiday year: %w", err)
		}
		current.IsActive = false
		next.IsActive = true

		resp = holiday.RolloverResponse{
			PreviousYear: holiday.ToYearResponse(current),
			NewYear:      holiday.ToYearResponse(next),
			Entitlements: carried,
		}
		return nil
	})
	if err != nil {
		slog.Warn("holiday year rollover failed", "company_id", req.CompanyID, "holiday_year_id", source.ID, "error", err)
		return holiday.RolloverResponse{}, err
	}

	slog.Info("holiday year rolled over",
		"company_id", req.CompanyID,
		"from", resp.PreviousYear.YearName,
		"to", resp.NewYear.YearName,
		"entitlements", len(resp.Entitlements),
	)

	return resp, nil
}

func (s *HolidayYearServiceImpl) sourceYear(ctx context.Context, req holiday.RolloverRequest) (holiday.HolidayYear, error) {
	if req.HolidayYearID != nil && *req.HolidayYearID != "" {
		year, err := s.HolidayYearRepository.GetByID(ctx, *req.HolidayYearID, req.CompanyID)
		if err != nil {
			if errors.Is(err, holiday.ErrHolidayYearNotFound) {
				return holiday.HolidayYear{}, err
			}
			return holiday.HolidayYear{}, fmt.Errorf("failed to get holiday year: %w", err)
		}
		return year, nil
	}

	year, err := s.HolidayYearRepository.GetActive(ctx, req.CompanyID)
	if err != nil {
		if errors.Is(err, holiday.ErrNoActiveHolidayYear) {
			return holiday.HolidayYear{}, err
		}
		return holiday.HolidayYear{}, fmt.Errorf("failed to get active holiday year: %w", err)
	}
	return year, nil
}

// GetActiveYear implements holiday.HolidayYearService.
func (s *HolidayYearServiceImpl) GetActiveYear(ctx context.Context, companyID string) (holiday.HolidayYearResponse, error) {
	year, err := s.HolidayYearRepository.GetActive(ctx, companyID)
	if err != nil {
		if errors.Is(err, holiday.ErrNoActiveHolidayYear) {
			return holiday.HolidayYearResponse{}, err
		}
		return holiday.HolidayYearResponse{}, fmt.Errorf("failed to get active holiday year: %w", err)
	}
	return holiday.ToYearResponse(year), nil
}

// ListEntitlements implements holiday.HolidayYearService.
func (s *HolidayYearServiceImpl) ListEntitlements(ctx context.Context, companyID string, yearID string) ([]holiday.EntitlementResponse, error) {
	year, err := s.HolidayYearRepository.GetByID(ctx, yearID, companyID)
	if err != nil {
		if errors.Is(err, holiday.ErrHolidayYearNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get holiday year: %w", err)
	}

	entitlements, err := s.HolidayEntitlementRepository.ListByYear(ctx, year.ID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list holiday entitlements: %w", err)
	}

	responses := make([]holiday.EntitlementResponse, 0, len(entitlements))
	for _, e := range entitlements {
		responses = append(responses, holiday.ToEntitlementResponse(e))
	}
	return responses, nil
}

func NewHolidayYearService(
	tx database.Transactor,
	yearRepo holiday.HolidayYearRepository,
	entitlementRepo holiday.HolidayEntitlementRepository,
	settingsService settings.SettingsService,
	locks *keylock.Locker,
) holiday.HolidayYearService {
	return &HolidayYearServiceImpl{
		tx:                           tx,
		HolidayYearRepository:        yearRepo,
		HolidayEntitlementRepository: entitlementRepo,
		settingsService:              settingsService,
		locks:                        locks,
		now:                          time.Now,
	}
}
