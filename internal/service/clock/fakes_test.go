package clock

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/clock-backend-go/internal/domain/clock"
	"github.com/cmlabs-hris/clock-backend-go/internal/domain/organization"
	"github.com/cmlabs-hris/clock-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/clock-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/clock-backend-go/internal/pkg/keylock"
)

// fakeTx journals undo steps so a failed unit of work leaves the store untouched.
type fakeTx struct {
	mu    sync.Mutex
	undo  []func()
	locks []func()
}

type fakeTxKey struct{}

func (tx *fakeTx) onRollback(fn func()) {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	tx.undo = append(tx.undo, fn)
}

func txFrom(ctx context.Context) *fakeTx {
	tx, _ := ctx.Value(fakeTxKey{}).(*fakeTx)
	return tx
}

type fakeTransactor struct{}

func (fakeTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFrom(ctx) != nil {
		return fn(ctx)
	}

	tx := &fakeTx{}
	err := fn(context.WithValue(ctx, fakeTxKey{}, tx))
	if err != nil {
		for i := len(tx.undo) - 1; i >= 0; i-- {
			tx.undo[i]()
		}
	}
	for i := len(tx.locks) - 1; i >= 0; i-- {
		tx.locks[i]()
	}
	return err
}

// store stands in for the clock tables.
type store struct {
	mu          sync.Mutex
	sessions    map[string]clock.ClockSession
	corrections []clock.Correction
	advisory    *keylock.Locker
	lockCalls   int
}

func newStore() *store {
	return &store{
		sessions: make(map[string]clock.ClockSession),
		advisory: keylock.New(),
	}
}

func (s *store) open(userID string) []clock.ClockSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []clock.ClockSession
	for _, session := range s.sessions {
		if session.UserID == userID && !session.State.IsTerminal() {
			out = append(out, session)
		}
	}
	return out
}

type fakeSessionRepo struct{ *store }

func (r fakeSessionRepo) Create(ctx context.Context, session clock.ClockSession) (clock.ClockSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.sessions {
		if existing.CompanyID == session.CompanyID && existing.UserID == session.UserID && !existing.State.IsTerminal() {
			return clock.ClockSession{}, clock.ErrAlreadyClockedIn
		}
	}
	r.sessions[session.ID] = session
	if tx := txFrom(ctx); tx != nil {
		tx.onRollback(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			delete(r.sessions, session.ID)
		})
	}
	return session, nil
}

func (r fakeSessionRepo) GetByID(ctx context.Context, id string, companyID string) (clock.ClockSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok || session.CompanyID != companyID {
		return clock.ClockSession{}, clock.ErrSessionNotFound
	}
	return session, nil
}

func (r fakeSessionRepo) GetOpenByUser(ctx context.Context, userID string, companyID string) (*clock.ClockSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, session := range r.sessions {
		if session.CompanyID == companyID && session.UserID == userID && !session.State.IsTerminal() {
			found := session
			return &found, nil
		}
	}
	return nil, nil
}

func (r fakeSessionRepo) Update(ctx context.Context, session clock.ClockSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	previous, ok := r.sessions[session.ID]
	if !ok {
		return clock.ErrSessionNotFound
	}
	r.sessions[session.ID] = session
	if tx := txFrom(ctx); tx != nil {
		tx.onRollback(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.sessions[session.ID] = previous
		})
	}
	return nil
}

func (r fakeSessionRepo) ListOpen(ctx context.Context, companyID string, filter clock.ActiveSessionFilter) ([]clock.ClockSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []clock.ClockSession
	for _, session := range r.sessions {
		if session.CompanyID != companyID || session.State.IsTerminal() {
			continue
		}
		if filter.LocationID != nil && (session.LocationID == nil || *session.LocationID != *filter.LocationID) {
			continue
		}
		if filter.DepartmentID != nil && (session.DepartmentID == nil || *session.DepartmentID != *filter.DepartmentID) {
			continue
		}
		out = append(out, session)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ClockInTime.Before(out[j].ClockInTime) })
	return out, nil
}

func (r fakeSessionRepo) ListOpenAllCompanies(ctx context.Context) ([]clock.ClockSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []clock.ClockSession
	for _, session := range r.sessions {
		if !session.State.IsTerminal() {
			out = append(out, session)
		}
	}
	return out, nil
}

func (r fakeSessionRepo) ListClockedInBetween(ctx context.Context, companyID string, from, to time.Time) ([]clock.ClockSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []clock.ClockSession
	for _, session := range r.sessions {
		if session.CompanyID == companyID && !session.ClockInTime.Before(from) && session.ClockInTime.Before(to) {
			out = append(out, session)
		}
	}
	return out, nil
}

// LockUser mimics pg_advisory_xact_lock: held until the surrounding transaction ends.
func (r fakeSessionRepo) LockUser(ctx context.Context, companyID string, userID string) error {
	r.mu.Lock()
	r.lockCalls++
	r.mu.Unlock()

	unlock := r.advisory.Lock(userKey(companyID, userID))
	if tx := txFrom(ctx); tx != nil {
		tx.locks = append(tx.locks, unlock)
		return nil
	}
	unlock()
	return nil
}

type fakeCorrectionRepo struct{ *store }

func (r fakeCorrectionRepo) Create(ctx context.Context, c clock.Correction) (clock.Correction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.corrections = append(r.corrections, c)
	n := len(r.corrections)
	if tx := txFrom(ctx); tx != nil {
		tx.onRollback(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.corrections = r.corrections[:n-1]
		})
	}
	return c, nil
}

func (r fakeCorrectionRepo) ListBySession(ctx context.Context, sessionID string, companyID string) ([]clock.Correction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []clock.Correction
	for _, c := range r.corrections {
		if c.SessionID == sessionID && c.CompanyID == companyID {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeShiftRepo struct {
	shifts []shift.ProvisionalShift
	err    error
}

func (r *fakeShiftRepo) GetByID(ctx context.Context, id string, companyID string) (shift.ProvisionalShift, error) {
	for _, s := range r.shifts {
		if s.ID == id && s.CompanyID == companyID {
			return s, nil
		}
	}
	return shift.ProvisionalShift{}, shift.ErrProvisionalShiftNotFound
}

func (r *fakeShiftRepo) ListByDate(ctx context.Context, companyID string, date time.Time, filter shift.ShiftFilter) ([]shift.ProvisionalShift, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []shift.ProvisionalShift
	for _, s := range r.shifts {
		if s.CompanyID != companyID || !s.ShiftDate.Equal(date) {
			continue
		}
		if filter.UserID != nil && s.UserID != *filter.UserID {
			continue
		}
		if filter.DepartmentID != nil && (s.DepartmentID == nil || *s.DepartmentID != *filter.DepartmentID) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

type fakeRoleRepo struct {
	jobRoles   map[string]organization.JobRole
	shiftRoles map[string]organization.ShiftRole
}

func (r *fakeRoleRepo) GetJobRole(ctx context.Context, id string, companyID string) (organization.JobRole, error) {
	jr, ok := r.jobRoles[id]
	if !ok || jr.CompanyID != companyID {
		return organization.JobRole{}, organization.ErrJobRoleNotFound
	}
	return jr, nil
}

func (r *fakeRoleRepo) GetShiftRole(ctx context.Context, id string, companyID string) (organization.ShiftRole, error) {
	sr, ok := r.shiftRoles[id]
	if !ok || sr.CompanyID != companyID {
		return organization.ShiftRole{}, organization.ErrShiftRoleNotFound
	}
	return sr, nil
}

type fakeSettingsService struct {
	cfg settings.AttendanceSettings
}

func (f *fakeSettingsService) GetSettings(ctx context.Context, companyID string) (settings.AttendanceSettings, error) {
	cfg := f.cfg
	cfg.CompanyID = companyID
	return cfg, nil
}

func (f *fakeSettingsService) UpdateSettings(ctx context.Context, req settings.UpdateSettingsRequest) (settings.SettingsResponse, error) {
	return settings.ToResponse(f.cfg), nil
}

// testClock is a settable wall clock.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

const (
	companyID = "company-1"
	userID    = "user-1"
)

type fixture struct {
	svc      *ClockServiceImpl
	store    *store
	shifts   *fakeShiftRepo
	settings *fakeSettingsService
	clock    *testClock
}

func newFixture(start time.Time) *fixture {
	st := newStore()
	shifts := &fakeShiftRepo{}
	cfg := &fakeSettingsService{cfg: settings.Defaults(companyID)}
	clk := &testClock{now: start}

	roles := &fakeRoleRepo{
		jobRoles: map[string]organization.JobRole{
			"jr-retail":  {ID: "jr-retail", CompanyID: companyID, Name: "Retail"},
			"jr-kitchen": {ID: "jr-kitchen", CompanyID: companyID, Name: "Kitchen"},
		},
		shiftRoles: map[string]organization.ShiftRole{
			"sr-till":  {ID: "sr-till", CompanyID: companyID, JobRoleID: "jr-retail", Name: "Till"},
			"sr-floor": {ID: "sr-floor", CompanyID: companyID, JobRoleID: "jr-retail", Name: "Shop floor"},
			"sr-grill": {ID: "sr-grill", CompanyID: companyID, JobRoleID: "jr-kitchen", Name: "Grill"},
		},
	}

	svc := NewClockService(fakeTransactor{}, fakeSessionRepo{st}, fakeCorrectionRepo{st}, shifts, roles, cfg, keylock.New()).(*ClockServiceImpl)
	svc.now = clk.Now

	return &fixture{svc: svc, store: st, shifts: shifts, settings: cfg, clock: clk}
}

func employee(user string) clock.Actor {
	return clock.Actor{CompanyID: companyID, UserID: user}
}

func manager() clock.Actor {
	return clock.Actor{CompanyID: companyID, UserID: "manager-1", CanManage: true}
}

func ptr[T any](v T) *T { return &v }
