package nowboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/cmlabs-hris/clock-backend-go/internal/domain/clock"
	"github.com/cmlabs-hris/clock-backend-go/internal/domain/nowboard"
	"github.com/cmlabs-hris/clock-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/clock-backend-go/internal/domain/shift"
	"golang.org/x/sync/errgroup"
)

const dateLayout = "2006-01-02"

type NowBoardServiceImpl struct {
	shift.ProvisionalShiftRepository
	clock.ClockSessionRepository
	settingsService settings.SettingsService
	now             func() time.Time
}

// calendarDay truncates t to its date in loc, expressed as UTC midnight like shift_date.
func calendarDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// GetNowBoard implements nowboard.NowBoardService.
func (s *NowBoardServiceImpl) GetNowBoard(ctx context.Context, req nowboard.NowBoardRequest) (nowboard.NowBoardResponse, error) {
	if err := req.Validate(); err != nil {
		return nowboard.NowBoardResponse{}, err
	}

	cfg, err := s.settingsService.GetSettings(ctx, req.CompanyID)
	if err != nil {
		return nowboard.NowBoardResponse{}, err
	}

	date := calendarDay(s.now(), cfg.Location())
	if req.DateValue != nil {
		date = *req.DateValue
	}

	return s.board(ctx, cfg, date, req.DepartmentID)
}

// GetWeeklySummary implements nowboard.NowBoardService.
func (s *NowBoardServiceImpl) GetWeeklySummary(ctx context.Context, req nowboard.WeeklySummaryRequest) (nowboard.WeeklySummaryResponse, error) {
	if err := req.Validate(); err != nil {
		return nowboard.WeeklySummaryResponse{}, err
	}

	cfg, err := s.settingsService.GetSettings(ctx, req.CompanyID)
	if err != nil {
		return nowboard.WeeklySummaryResponse{}, err
	}

	weekStart := startOfWeek(calendarDay(s.now(), cfg.Location()))
	if req.WeekStartValue != nil {
		weekStart = *req.WeekStartValue
	}

	days := make([]nowboard.DailyTotals, 7)
	g, gctx := errgroup.WithContext(ctx)
	for i := range days {
		i := i
		date := weekStart.AddDate(0, 0, i)
		g.Go(func() error {
			board, err := s.board(gctx, cfg, date, req.DepartmentID)
			if err != nil {
				return err
			}
			days[i] = nowboard.DailyTotals{Date: board.Date, Totals: board.Totals}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nowboard.WeeklySummaryResponse{}, err
	}

	return nowboard.WeeklySummaryResponse{
		WeekStart:    weekStart.Format(dateLayout),
		WeekEnd:      weekStart.AddDate(0, 0, 6).Format(dateLayout),
		DepartmentID: req.DepartmentID,
		Days:         days,
	}, nil
}

// startOfWeek returns the Monday on or before day.
func startOfWeek(day time.Time) time.Time {
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func (s *NowBoardServiceImpl) board(ctx context.Context, cfg settings.AttendanceSettings, date time.Time, departmentID *string) (nowboard.NowBoardResponse, error) {
	shifts, err := s.ProvisionalShiftRepository.ListByDate(ctx, cfg.CompanyID, date, shift.ShiftFilter{DepartmentID: departmentID})
	if err != nil {
		return nowboard.NowBoardResponse{}, fmt.Errorf("failed to list provisional shifts: %w", err)
	}

	sessions, err := s.checkedIn(ctx, cfg, date)
	if err != nil {
		return nowboard.NowBoardResponse{}, err
	}

	resp := aggregate(shifts, sessions)
	resp.Date = date.Format(dateLayout)
	resp.DepartmentID = departmentID
	return resp, nil
}

// checkedIn returns the sessions that count as present on date. Today that is every open
// session; for a past day it is every session clocked in during that day; a future day has none.
func (s *NowBoardServiceImpl) checkedIn(ctx context.Context, cfg settings.AttendanceSettings, date time.Time) ([]clock.ClockSession, error) {
	loc := cfg.Location()
	today := calendarDay(s.now(), loc)

	switch {
	case date.Equal(today):
		sessions, err := s.ClockSessionRepository.ListOpen(ctx, cfg.CompanyID, clock.ActiveSessionFilter{})
		if err != nil {
			return nil, fmt.Errorf("failed to list open clock sessions: %w", err)
		}
		return sessions, nil
	case date.Before(today):
		from := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
		sessions, err := s.ClockSessionRepository.ListClockedInBetween(ctx, cfg.CompanyID, from, from.AddDate(0, 0, 1))
		if err != nil {
			return nil, fmt.Errorf("failed to list clock sessions for %s: %w", date.Format(dateLayout), err)
		}
		return sessions, nil
	default:
		return nil, nil
	}
}

type roleGroup struct {
	coverage  nowboard.RoleGroupCoverage
	roster    []nowboard.MissingUser
	expected  map[string]bool
	checkedIn map[string]bool
}

// aggregate joins expected staffing against checked-in sessions per (shift role, job role).
// For every group checked_in_count + missing_count == expected_count.
func aggregate(shifts []shift.ProvisionalShift, sessions []clock.ClockSession) nowboard.NowBoardResponse {
	groups := make(map[nowboard.GroupKey]*roleGroup)
	var order []*roleGroup

	for _, ps := range shifts {
		key := nowboard.GroupKey{ShiftRoleID: ps.ShiftRoleID, JobRoleID: ps.JobRoleID}
		g, ok := groups[key]
		if !ok {
			g = &roleGroup{
				coverage: nowboard.RoleGroupCoverage{
					ShiftRoleID:   ps.ShiftRoleID,
					ShiftRoleName: ps.ShiftRoleName,
					JobRoleID:     ps.JobRoleID,
					JobRoleName:   ps.JobRoleName,
				},
				expected:  make(map[string]bool),
				checkedIn: make(map[string]bool),
			}
			groups[key] = g
			order = append(order, g)
		}
		if g.expected[ps.UserID] {
			continue
		}
		g.expected[ps.UserID] = true

		name := ps.UserID
		if ps.UserDisplayName != nil && *ps.UserDisplayName != "" {
			name = *ps.UserDisplayName
		}
		g.roster = append(g.roster, nowboard.MissingUser{UserID: ps.UserID, DisplayName: name, Phone: ps.UserPhone})
	}

	for _, session := range sessions {
		g, ok := groups[nowboard.GroupKey{ShiftRoleID: session.ShiftRoleID, JobRoleID: session.JobRoleID}]
		if !ok || !g.expected[session.UserID] {
			continue
		}
		g.checkedIn[session.UserID] = true
	}

	sort.SliceStable(order, func(i, j int) bool {
		a, b := order[i].coverage, order[j].coverage
		if an, bn := deref(a.JobRoleName), deref(b.JobRoleName); an != bn {
			return an < bn
		}
		if an, bn := deref(a.ShiftRoleName), deref(b.ShiftRoleName); an != bn {
			return an < bn
		}
		if a.JobRoleID != b.JobRoleID {
			return a.JobRoleID < b.JobRoleID
		}
		return a.ShiftRoleID < b.ShiftRoleID
	})

	resp := nowboard.NowBoardResponse{Groups: make([]nowboard.RoleGroupCoverage, 0, len(order))}
	for _, g := range order {
		coverage := g.coverage
		coverage.Missing = []nowboard.MissingUser{}
		for _, member := range g.roster {
			if !g.checkedIn[member.UserID] {
				coverage.Missing = append(coverage.Missing, member)
			}
		}

		coverage.ExpectedCount = len(g.roster)
		coverage.CheckedInCount = len(g.checkedIn)
		coverage.MissingCount = len(coverage.Missing)
		coverage.Status = nowboard.DeriveStatus(coverage.ExpectedCount, coverage.CheckedInCount, coverage.MissingCount)

		resp.Totals.Expected += coverage.ExpectedCount
		resp.Totals.CheckedIn += coverage.CheckedInCount
		resp.Totals.Missing += coverage.MissingCount
		resp.Groups = append(resp.Groups, coverage)
	}

	return resp
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func NewNowBoardService(
	shiftRepo shift.ProvisionalShiftRepository,
	sessionRepo clock.ClockSessionRepository,
	settingsService settings.SettingsService,
) nowboard.NowBoardService {
	return &NowBoardServiceImpl{
		ProvisionalShiftRepository: shiftRepo,
		ClockSessionRepository:     sessionRepo,
		settingsService:            settingsService,
		now:                        time.Now,
	}
}
