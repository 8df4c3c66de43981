package clock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/clock-backend-go/internal/domain/clock"
	"github.com/cmlabs-hris/clock-backend-go/internal/domain/organization"
	"github.com/cmlabs-hris/clock-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/clock-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/clock-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/clock-backend-go/internal/pkg/keylock"
	"github.com/cmlabs-hris/clock-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
)

type ClockServiceImpl struct {
	tx database.Transactor
	clock.ClockSessionRepository
	clock.CorrectionRepository
	shift.ProvisionalShiftRepository
	organization.RoleRepository
	settingsService settings.SettingsService
	locks           *keylock.Locker
	now             func() time.Time
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.UTC().Format(time.RFC3339)
	return &format
}

func userKey(companyID, userID string) string {
	return companyID + ":" + userID
}

// withUserLock serializes fn against every other state change for the same user,
// in this process and across instances sharing the database.
func (s *ClockServiceImpl) withUserLock(ctx context.Context, companyID, userID string, fn func(ctx context.Context) error) error {
	unlock := s.locks.Lock(userKey(companyID, userID))
	defer unlock()

	return s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.ClockSessionRepository.LockUser(txCtx, companyID, userID); err != nil {
			return fmt.Errorf("failed to lock user: %w", err)
		}
		return fn(txCtx)
	})
}

// loadSession fetches a session the actor is allowed to see. Sessions of other users
// are reported as not found to non-managers.
func (s *ClockServiceImpl) loadSession(ctx context.Context, actor clock.Actor, sessionID string) (clock.ClockSession, error) {
	session, err := s.ClockSessionRepository.GetByID(ctx, sessionID, actor.CompanyID)
	if err != nil {
		if errors.Is(err, clock.ErrSessionNotFound) {
			return clock.ClockSession{}, err
		}
		return clock.ClockSession{}, fmt.Errorf("failed to get clock session: %w", err)
	}
	if !actor.CanAccess(session.UserID) {
		return clock.ClockSession{}, clock.ErrSessionNotFound
	}
	return session, nil
}

// mutateSession re-reads the session under the owner's lock, applies fn and persists the result.
func (s *ClockServiceImpl) mutateSession(ctx context.Context, actor clock.Actor, sessionID string, fn func(ctx context.Context, session *clock.ClockSession) error) (clock.ClockSession, error) {
	session, err := s.loadSession(ctx, actor, sessionID)
	if err != nil {
		return clock.ClockSession{}, err
	}

	var updated clock.ClockSession
	err = s.withUserLock(ctx, session.CompanyID, session.UserID, func(txCtx context.Context) error {
		current, err := s.ClockSessionRepository.GetByID(txCtx, sessionID, session.CompanyID)
		if err != nil {
			return err
		}

		if err := fn(txCtx, &current); err != nil {
			return err
		}

		current.UpdatedAt = s.now().UTC()
		if err := s.ClockSessionRepository.Update(txCtx, current); err != nil {
			return fmt.Errorf("failed to update clock session: %w", err)
		}
		updated = current
		return nil
	})
	if err != nil {
		return clock.ClockSession{}, err
	}

	return updated, nil
}

func (s *ClockServiceImpl) thresholds(ctx context.Context, companyID string) (settings.AttendanceSettings, clock.Thresholds, error) {
	cfg, err := s.settingsService.GetSettings(ctx, companyID)
	if err != nil {
		return settings.AttendanceSettings{}, clock.Thresholds{}, err
	}
	return cfg, clock.ThresholdsFrom(cfg), nil
}

func (s *ClockServiceImpl) toResponse(session clock.ClockSession, th clock.Thresholds) clock.ClockSessionResponse {
	until := s.now().UTC()
	if session.ClockOutTime != nil {
		until = *session.ClockOutTime
	}
	elapsed := clock.Classify(session.ClockInTime, until, th)
	level := string(elapsed.Level)

	return clock.ClockSessionResponse{
		ID:                       session.ID,
		UserID:                   session.UserID,
		UserDisplayName:          session.UserDisplayName,
		JobRoleID:                session.JobRoleID,
		ShiftRoleID:              session.ShiftRoleID,
		LocationID:               session.LocationID,
		DepartmentID:             session.DepartmentID,
		State:                    session.State,
		ClockInTime:              session.ClockInTime.UTC().Format(time.RFC3339),
		ClockOutTime:             timePtrToString(session.ClockOutTime),
		BreakStartedAt:           timePtrToString(session.BreakStartedAt),
		LinkedProvisionalShiftID: session.LinkedProvisionalShiftID,
		Notes:                    session.Notes,
		ElapsedHours:             &elapsed.Hours,
		WarningLevel:             &level,
		CreatedAt:                session.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:                session.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// ClockIn implements clock.ClockService.
func (s *ClockServiceImpl) ClockIn(ctx context.Context, req clock.ClockInRequest) (clock.ClockInResponse, error) {
	if err := req.Validate(); err != nil {
		return clock.ClockInResponse{}, err
	}
	companyID, userID := req.Actor.CompanyID, req.Actor.UserID

	if _, err := s.RoleRepository.GetJobRole(ctx, req.JobRoleID, companyID); err != nil {
		return clock.ClockInResponse{}, err
	}
	shiftRole, err := s.RoleRepository.GetShiftRole(ctx, req.ShiftRoleID, companyID)
	if err != nil {
		return clock.ClockInResponse{}, err
	}
	if !shiftRole.BelongsTo(req.JobRoleID) {
		return clock.ClockInResponse{}, clock.ErrShiftRoleMismatch
	}

	cfg, th, err := s.thresholds(ctx, companyID)
	if err != nil {
		return clock.ClockInResponse{}, err
	}

	var created clock.ClockSession
	err = s.withUserLock(ctx, companyID, userID, func(txCtx context.Context) error {
		open, err := s.ClockSessionRepository.GetOpenByUser(txCtx, userID, companyID)
		if err != nil {
			return fmt.Errorf("failed to check open clock session: %w", err)
		}
		if open != nil {
			return clock.ErrAlreadyClockedIn
		}

		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate clock session id: %w", err)
		}

		nowUTC := s.now().UTC()
		session := clock.ClockSession{
			ID:           id.String(),
			CompanyID:    companyID,
			UserID:       userID,
			JobRoleID:    req.JobRoleID,
			ShiftRoleID:  req.ShiftRoleID,
			LocationID:   req.LocationID,
			DepartmentID: req.DepartmentID,
			State:        clock.StateActive,
			ClockInTime:  nowUTC,
			CreatedAt:    nowUTC,
			UpdatedAt:    nowUTC,
		}
		session.AppendNote(req.Notes)

		created, err = s.ClockSessionRepository.Create(txCtx, session)
		if err != nil {
			if errors.Is(err, clock.ErrAlreadyClockedIn) {
				return err
			}
			return fmt.Errorf("failed to create clock session: %w", err)
		}
		return nil
	})
	if err != nil {
		return clock.ClockInResponse{}, err
	}

	slog.Info("clocked in", "company_id", companyID, "user_id", userID, "session_id", created.ID)

	return clock.ClockInResponse{
		Session:                 s.toResponse(created, th),
		ProvisionalShiftsNearby: s.nearbyShifts(ctx, cfg, created),
	}, nil
}

// nearbyShifts suggests today's provisional shifts for the user. A lookup failure leaves the
// clock-in standing and returns no suggestions.
func (s *ClockServiceImpl) nearbyShifts(ctx context.Context, cfg settings.AttendanceSettings, session clock.ClockSession) []clock.ProvisionalShiftCandidate {
	loc := cfg.Location()
	local := session.ClockInTime.In(loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)

	userID := session.UserID
	shifts, err := s.ProvisionalShiftRepository.ListByDate(ctx, session.CompanyID, today, shift.ShiftFilter{UserID: &userID})
	if err != nil {
		slog.Warn("failed to list provisional shifts for clock-in", "session_id", session.ID, "error", err)
		return []clock.ProvisionalShiftCandidate{}
	}

	return FindCandidates(session.ClockInTime, shifts, cfg.LinkWindow(), loc)
}

// StartBreak implements clock.ClockService.
func (s *ClockServiceImpl) StartBreak(ctx context.Context, req clock.BreakRequest) (clock.ClockSessionResponse, error) {
	updated, err := s.mutateSession(ctx, req.Actor, req.SessionID, func(ctx context.Context, session *clock.ClockSession) error {
		if session.State.IsTerminal() {
			return clock.ErrSessionClosed
		}
		if session.State != clock.StateActive {
			return clock.ErrNotActive
		}

		nowUTC := s.now().UTC()
		session.State = clock.StateOnBreak
		session.BreakStartedAt = &nowUTC
		session.AppendNote(req.Notes)
		return nil
	})
	if err != nil {
		return clock.ClockSessionResponse{}, err
	}

	_, th, err := s.thresholds(ctx, req.Actor.CompanyID)
	if err != nil {
		return clock.ClockSessionResponse{}, err
	}
	return s.toResponse(updated, th), nil
}

// EndBreak implements clock.ClockService.
func (s *ClockServiceImpl) EndBreak(ctx context.Context, req clock.BreakRequest) (clock.ClockSessionResponse, error) {
	updated, err := s.mutateSession(ctx, req.Actor, req.SessionID, func(ctx context.Context, session *clock.ClockSession) error {
		if session.State.IsTerminal() {
			return clock.ErrSessionClosed
		}
		if session.State != clock.StateOnBreak {
			return clock.ErrNotOnBreak
		}

		session.State = clock.StateActive
		session.BreakStartedAt = nil
		session.AppendNote(req.Notes)
		return nil
	})
	if err != nil {
		return clock.ClockSessionResponse{}, err
	}

	_, th, err := s.thresholds(ctx, req.Actor.CompanyID)
	if err != nil {
		return clock.ClockSessionResponse{}, err
	}
	return s.toResponse(updated, th), nil
}

// ChangeShiftRole implements clock.ClockService.
func (s *ClockServiceImpl) ChangeShiftRole(ctx context.Context, req clock.ChangeShiftRoleRequest) (clock.ClockSessionResponse, error) {
	if err := req.Validate(); err != nil {
		return clock.ClockSessionResponse{}, err
	}

	updated, err := s.mutateSession(ctx, req.Actor, req.SessionID, func(ctx context.Context, session *clock.ClockSession) error {
		if session.State.IsTerminal() {
			return clock.ErrSessionClosed
		}

		shiftRole, err := s.RoleRepository.GetShiftRole(ctx, req.ShiftRoleID, session.CompanyID)
		if err != nil {
			return err
		}
		if !shiftRole.BelongsTo(session.JobRoleID) {
			return clock.ErrShiftRoleMismatch
		}

		session.ShiftRoleID = shiftRole.ID
		session.AppendNote(req.Notes)
		return nil
	})
	if err != nil {
		return clock.ClockSessionResponse{}, err
	}

	_, th, err := s.thresholds(ctx, req.Actor.CompanyID)
	if err != nil {
		return clock.ClockSessionResponse{}, err
	}
	return s.toResponse(updated, th), nil
}

// ClockOut implements clock.ClockService.
func (s *ClockServiceImpl) ClockOut(ctx context.Context, req clock.ClockOutRequest) (clock.ClockSessionResponse, error) {
	if err := req.Validate(); err != nil {
		return clock.ClockSessionResponse{}, err
	}

	updated, err := s.mutateSession(ctx, req.Actor, req.SessionID, func(ctx context.Context, session *clock.ClockSession) error {
		if session.State.IsTerminal() {
			return clock.ErrSessionClosed
		}

		nowUTC := s.now().UTC()
		clockOutAt := nowUTC
		if req.ClockOutAt != nil {
			clockOutAt = req.ClockOutAt.UTC()
			if clockOutAt.Before(session.ClockInTime) {
				return validator.ValidationErrors{{
					Field:   "clock_out_time",
					Message: "clock_out_time must not be before clock_in_time",
				}}
			}
			if clockOutAt.After(nowUTC) {
				return validator.ValidationErrors{{
					Field:   "clock_out_time",
					Message: "clock_out_time must not be in the future",
				}}
			}
		}

		if req.ClockOutAt != nil {
			var notes string
			if req.Notes != nil {
				notes = *req.Notes
			}
			if err := s.recordCorrection(ctx, req.Actor, notes, session, clock.CorrectionFieldClockOut, nil, clockOutAt); err != nil {
				return err
			}
		}

		session.State = clock.StateClockedOut
		session.ClockOutTime = &clockOutAt
		session.BreakStartedAt = nil
		session.AppendNote(req.Notes)
		return nil
	})
	if err != nil {
		return clock.ClockSessionResponse{}, err
	}

	slog.Info("clocked out", "company_id", updated.CompanyID, "user_id", updated.UserID, "session_id", updated.ID)

	_, th, err := s.thresholds(ctx, req.Actor.CompanyID)
	if err != nil {
		return clock.ClockSessionResponse{}, err
	}
	return s.toResponse(updated, th), nil
}

// LinkProvisionalShift implements clock.ClockService.
func (s *ClockServiceImpl) LinkProvisionalShift(ctx context.Context, req clock.LinkProvisionalShiftRequest) (clock.ClockSessionResponse, error) {
	if err := req.Validate(); err != nil {
		return clock.ClockSessionResponse{}, err
	}

	updated, err := s.mutateSession(ctx, req.Actor, req.ClockRecordID, func(ctx context.Context, session *clock.ClockSession) error {
		if session.State.IsTerminal() {
			return clock.ErrSessionClosed
		}

		provisional, err := s.ProvisionalShiftRepository.GetByID(ctx, req.ShiftRecordID, session.CompanyID)
		if err != nil {
			if errors.Is(err, shift.ErrProvisionalShiftNotFound) {
				return err
			}
			return fmt.Errorf("failed to get provisional shift: %w", err)
		}
		if provisional.UserID != session.UserID {
			return shift.ErrProvisionalShiftNotFound
		}

		if session.LinkedProvisionalShiftID != nil {
			return clock.ErrAlreadyLinked
		}

		session.LinkedProvisionalShiftID = &provisional.ID
		return nil
	})
	if err != nil {
		return clock.ClockSessionResponse{}, err
	}

	_, th, err := s.thresholds(ctx, req.Actor.CompanyID)
	if err != nil {
		return clock.ClockSessionResponse{}, err
	}
	return s.toResponse(updated, th), nil
}

// EditSessionTimes implements clock.ClockService.
func (s *ClockServiceImpl) EditSessionTimes(ctx context.Context, req clock.EditSessionTimesRequest) (clock.ClockSessionResponse, error) {
	if !req.Actor.CanManage {
		return clock.ClockSessionResponse{}, organization.ErrManagerAccessRequired
	}
	if err := req.Validate(); err != nil {
		return clock.ClockSessionResponse{}, err
	}

	updated, err := s.mutateSession(ctx, req.Actor, req.SessionID, func(ctx context.Context, session *clock.ClockSession) error {
		if req.ClockOutAt != nil && !session.State.IsTerminal() {
			return clock.ErrSessionStillOpen
		}

		nowUTC := s.now().UTC()
		newIn := session.ClockInTime
		if req.ClockInAt != nil {
			newIn = req.ClockInAt.UTC()
		}
		newOut := session.ClockOutTime
		if req.ClockOutAt != nil {
			out := req.ClockOutAt.UTC()
			newOut = &out
		}

		if newIn.After(nowUTC) {
			return validator.ValidationErrors{{
				Field:   "clock_in_time",
				Message: "clock_in_time must not be in the future",
			}}
		}
		if newOut != nil && newOut.Before(newIn) {
			return validator.ValidationErrors{{
				Field:   "clock_out_time",
				Message: "clock_out_time must not be before clock_in_time",
			}}
		}
		if newOut != nil && newOut.After(nowUTC) {
			return validator.ValidationErrors{{
				Field:   "clock_out_time",
				Message: "clock_out_time must not be in the future",
			}}
		}

		if !newIn.Equal(session.ClockInTime) {
			oldIn := session.ClockInTime
			if err := s.recordCorrection(ctx, req.Actor, req.Notes, session, clock.CorrectionFieldClockIn, &oldIn, newIn); err != nil {
				return err
			}
			session.ClockInTime = newIn
		}
		if newOut != nil && (session.ClockOutTime == nil || !newOut.Equal(*session.ClockOutTime)) {
			if err := s.recordCorrection(ctx, req.Actor, req.Notes, session, clock.CorrectionFieldClockOut, session.ClockOutTime, *newOut); err != nil {
				return err
			}
			session.ClockOutTime = newOut
		}

		session.AppendNote(&req.Notes)
		return nil
	})
	if err != nil {
		return clock.ClockSessionResponse{}, err
	}

	slog.Info("clock session times corrected", "company_id", updated.CompanyID, "session_id", updated.ID, "corrected_by", req.Actor.UserID)

	_, th, err := s.thresholds(ctx, req.Actor.CompanyID)
	if err != nil {
		return clock.ClockSessionResponse{}, err
	}
	return s.toResponse(updated, th), nil
}

func (s *ClockServiceImpl) recordCorrection(ctx context.Context, actor clock.Actor, notes string, session *clock.ClockSession, field clock.CorrectionField, oldValue *time.Time, newValue time.Time) error {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("failed to generate correction id: %w", err)
	}

	_, err = s.CorrectionRepository.Create(ctx, clock.Correction{
		ID:          id.String(),
		SessionID:   session.ID,
		CompanyID:   session.CompanyID,
		Field:       field,
		OldValue:    oldValue,
		NewValue:    newValue,
		Notes:       notes,
		CorrectedBy: actor.UserID,
		CorrectedAt: s.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to record clock correction: %w", err)
	}
	return nil
}

// GetClockStatus implements clock.ClockService.
func (s *ClockServiceImpl) GetClockStatus(ctx context.Context, actor clock.Actor) (clock.ClockStatusResponse, error) {
	open, err := s.ClockSessionRepository.GetOpenByUser(ctx, actor.UserID, actor.CompanyID)
	if err != nil {
		return clock.ClockStatusResponse{}, fmt.Errorf("failed to get open clock session: %w", err)
	}

	if open == nil {
		return clock.ClockStatusResponse{
			State:   clock.StateClockedOut,
			Message: "You are not clocked in",
		}, nil
	}

	_, th, err := s.thresholds(ctx, actor.CompanyID)
	if err != nil {
		return clock.ClockStatusResponse{}, err
	}

	resp := s.toResponse(*open, th)
	message := "You are clocked in"
	if open.State == clock.StateOnBreak {
		message = "You are on a break"
	}

	return clock.ClockStatusResponse{
		State:       open.State,
		IsClockedIn: true,
		IsOnBreak:   open.State == clock.StateOnBreak,
		Session:     &resp,
		Message:     message,
	}, nil
}

// GetSession implements clock.ClockService.
func (s *ClockServiceImpl) GetSession(ctx context.Context, actor clock.Actor, id string) (clock.ClockSessionResponse, error) {
	session, err := s.loadSession(ctx, actor, id)
	if err != nil {
		return clock.ClockSessionResponse{}, err
	}

	_, th, err := s.thresholds(ctx, actor.CompanyID)
	if err != nil {
		return clock.ClockSessionResponse{}, err
	}
	return s.toResponse(session, th), nil
}

// ListActiveSessions implements clock.ClockService.
func (s *ClockServiceImpl) ListActiveSessions(ctx context.Context, companyID string, filter clock.ActiveSessionFilter) ([]clock.ClockSessionResponse, error) {
	sessions, err := s.ClockSessionRepository.ListOpen(ctx, companyID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list active clock sessions: %w", err)
	}

	_, th, err := s.thresholds(ctx, companyID)
	if err != nil {
		return nil, err
	}

	responses := make([]clock.ClockSessionResponse, 0, len(sessions))
	for _, session := range sessions {
		responses = append(responses, s.toResponse(session, th))
	}
	return responses, nil
}

// ListCorrections implements clock.ClockService.
func (s *ClockServiceImpl) ListCorrections(ctx context.Context, actor clock.Actor, sessionID string) ([]clock.CorrectionResponse, error) {
	session, err := s.loadSession(ctx, actor, sessionID)
	if err != nil {
		return nil, err
	}

	corrections, err := s.CorrectionRepository.ListBySession(ctx, session.ID, session.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list clock corrections: %w", err)
	}

	responses := make([]clock.CorrectionResponse, 0, len(corrections))
	for _, c := range corrections {
		responses = append(responses, clock.CorrectionResponse{
			ID:          c.ID,
			SessionID:   c.SessionID,
			Field:       string(c.Field),
			OldValue:    timePtrToString(c.OldValue),
			NewValue:    c.NewValue.UTC().Format(time.RFC3339),
			Notes:       c.Notes,
			CorrectedBy: c.CorrectedBy,
			CorrectedAt: c.CorrectedAt.UTC().Format(time.RFC3339),
		})
	}
	return responses, nil
}

func NewClockService(
	tx database.Transactor,
	sessionRepo clock.ClockSessionRepository,
	correctionRepo clock.CorrectionRepository,
	shiftRepo shift.ProvisionalShiftRepository,
	roleRepo organization.RoleRepository,
	settingsService settings.SettingsService,
	locks *keylock.Locker,
) clock.ClockService {
	return &ClockServiceImpl{
		tx:                         tx,
		ClockSessionRepository:     sessionRepo,
		CorrectionRepository:       correctionRepo,
		ProvisionalShiftRepository: shiftRepo,
		RoleRepository:             roleRepo,
		settingsService:            settingsService,
		locks:                      locks,
		now:                        time.Now,
	}
}
