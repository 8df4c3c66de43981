package cron

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/cmlabs-hris/clock-backend-go/internal/domain/clock"
	"github.com/cmlabs-hris/clock-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/clock-backend-go/internal/pkg/sse"
)

const EventLongSession = "long_session"

// ClockJobs sweeps open sessions and warns about long ones. It never clocks anyone out.
type ClockJobs struct {
	sessionRepo     clock.ClockSessionRepository
	settingsService settings.SettingsService
	hub             *sse.Hub
	interval        time.Duration
	now             func() time.Time

	mu     sync.Mutex
	warned map[string]clock.WarningLevel
}

func NewClockJobs(
	sessionRepo clock.ClockSessionRepository,
	settingsService settings.SettingsService,
	hub *sse.Hub,
	interval time.Duration,
) *ClockJobs {
	return &ClockJobs{
		sessionRepo:     sessionRepo,
		settingsService: settingsService,
		hub:             hub,
		interval:        interval,
		now:             time.Now,
		warned:          make(map[string]clock.WarningLevel),
	}
}

func (j *ClockJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("classify_long_sessions", j.interval, j.ClassifyLongSessions)
}

// ClassifyLongSessions logs and publishes a warning the first time each open session
// reaches a higher warning level.
func (j *ClockJobs) ClassifyLongSessions(ctx context.Context) error {
	sessions, err := j.sessionRepo.ListOpenAllCompanies(ctx)
	if err != nil {
		return fmt.Errorf("failed to list open sessions: %w", err)
	}

	now := j.now()
	thresholds := make(map[string]clock.Thresholds)
	open := make(map[string]struct{}, len(sessions))
	published := 0

	j.mu.Lock()
	defer j.mu.Unlock()

	for _, session := range sessions {
		open[session.ID] = struct{}{}

		th, ok := thresholds[session.CompanyID]
		if !ok {
			cfg, err := j.settingsService.GetSettings(ctx, session.CompanyID)
			if err != nil {
				slog.Error("Cron: failed to load attendance settings", "company_id", session.CompanyID, "error", err)
				continue
			}
			th = clock.ThresholdsFrom(cfg)
			thresholds[session.CompanyID] = th
		}

		elapsed := clock.Classify(session.ClockInTime, now, th)
		if elapsed.Level == clock.WarningNormal || levelRank(elapsed.Level) <= levelRank(j.warned[session.ID]) {
			continue
		}
		j.warned[session.ID] = elapsed.Level

		slog.Warn("Cron: long clock session",
			"company_id", session.CompanyID,
			"session_id", session.ID,
			"user_id", session.UserID,
			"elapsed_hours", elapsed.Hours,
			"warning_level", elapsed.Level,
		)

		if j.hub != nil {
			j.hub.Publish(sse.Event{
				CompanyID: session.CompanyID,
				Event:     EventLongSession,
				Data: clock.LongSessionWarning{
					SessionID:       session.ID,
					UserID:          session.UserID,
					UserDisplayName: session.UserDisplayName,
					ClockInTime:     session.ClockInTime.UTC().Format(time.RFC3339),
					ElapsedHours:    math.Round(elapsed.Hours*100) / 100,
					WarningLevel:    elapsed.Level,
				},
			})
		}
		published++
	}

	// Forget sessions that have since been clocked out.
	for id := range j.warned {
		if _, ok := open[id]; !ok {
			delete(j.warned, id)
		}
	}

	if published > 0 {
		slog.Info("Cron: long session sweep finished", "open_sessions", len(sessions), "warnings", published)
	}
	return nil
}

func levelRank(level clock.WarningLevel) int {
	switch level {
	case clock.WarningLongSession:
		return 1
	case clock.WarningVeryLongSession:
		return 2
	default:
		return 0
	}
}
