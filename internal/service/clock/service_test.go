package clock

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/clock-backend-go/internal/domain/clock"
	"github.com/cmlabs-hris/clock-backend-go/internal/domain/organization"
	"github.com/cmlabs-hris/clock-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/clock-backend-go/internal/pkg/keylock"
	"github.com/cmlabs-hris/clock-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var nineAM = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

func clockInRetail(t *testing.T, f *fixture, user string) clock.ClockInResponse {
	t.Helper()
	resp, err := f.svc.ClockIn(context.Background(), clock.ClockInRequest{
		Actor:       employee(user),
		JobRoleID:   "jr-retail",
		ShiftRoleID: "sr-till",
	})
	require.NoError(t, err)
	return resp
}

func TestClockIn_CreatesActiveSession(t *testing.T) {
	f := newFixture(nineAM)

	resp := clockInRetail(t, f, userID)

	assert.Equal(t, clock.StateActive, resp.Session.State)
	assert.Equal(t, "2025-03-14T09:00:00Z", resp.Session.ClockInTime)
	assert.Nil(t, resp.Session.ClockOutTime)
	assert.Nil(t, resp.Session.LinkedProvisionalShiftID)
	assert.Nil(t, resp.Session.LocationID)
	assert.NotNil(t, resp.ProvisionalShiftsNearby)
	assert.Len(t, f.store.open(userID), 1)
	assert.Equal(t, 1, f.store.lockCalls)
}

func TestClockIn_AlreadyClockedIn(t *testing.T) {
	f := newFixture(nineAM)
	clockInRetail(t, f, userID)

	_, err := f.svc.ClockIn(context.Background(), clock.ClockInRequest{
		Actor:       employee(userID),
		JobRoleID:   "jr-kitchen",
		ShiftRoleID: "sr-grill",
	})
	assert.ErrorIs(t, err, clock.ErrAlreadyClockedIn)
	assert.Equal(t, "you are already clocked in elsewhere", err.Error())
}

func TestClockIn_Roles(t *testing.T) {
	f := newFixture(nineAM)

	_, err := f.svc.ClockIn(context.Background(), clock.ClockInRequest{Actor: employee(userID), JobRoleID: "jr-retail", ShiftRoleID: "sr-grill"})
	assert.ErrorIs(t, err, clock.ErrShiftRoleMismatch)

	_, err = f.svc.ClockIn(context.Background(), clock.ClockInRequest{Actor: employee(userID), JobRoleID: "jr-missing", ShiftRoleID: "sr-till"})
	assert.ErrorIs(t, err, organization.ErrJobRoleNotFound)

	_, err = f.svc.ClockIn(context.Background(), clock.ClockInRequest{Actor: employee(userID), JobRoleID: "jr-retail"})
	var verrs validator.ValidationErrors
	assert.True(t, errors.As(err, &verrs))

	assert.Empty(t, f.store.open(userID))
}

func TestClockIn_ConcurrentCallsYieldOneOpenSession(t *testing.T) {
	f := newFixture(nineAM)

	const callers = 32
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.ClockIn(context.Background(), clock.ClockInRequest{
				Actor:       employee(userID),
				JobRoleID:   "jr-retail",
				ShiftRoleID: "sr-till",
			})

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, clock.ErrAlreadyClockedIn):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, callers-1, conflicts)
	assert.Len(t, f.store.open(userID), 1)
	assert.Zero(t, f.svc.locks.Len())
}

func TestClockIn_ConcurrentAcrossInstancesYieldOneOpenSession(t *testing.T) {
	f := newFixture(nineAM)

	// A second process sharing the same database but not the in-memory lock.
	other := *f.svc
	other.locks = keylock.New()

	var wg sync.WaitGroup
	errs := make([]error, 20)
	for i := range errs {
		svc := f.svc
		if i%2 == 1 {
			svc = &other
		}
		wg.Add(1)
		go func(i int, svc *ClockServiceImpl) {
			defer wg.Done()
			_, errs[i] = svc.ClockIn(context.Background(), clock.ClockInRequest{
				Actor:       employee(userID),
				JobRoleID:   "jr-retail",
				ShiftRoleID: "sr-till",
			})
		}(i, svc)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, clock.ErrAlreadyClockedIn)
	}
	assert.Equal(t, 1, succeeded)
	assert.Len(t, f.store.open(userID), 1)
}

func TestClockIn_DifferentUsersAreIndependent(t *testing.T) {
	f := newFixture(nineAM)

	clockInRetail(t, f, "user-a")
	clockInRetail(t, f, "user-b")

	assert.Len(t, f.store.open("user-a"), 1)
	assert.Len(t, f.store.open("user-b"), 1)
}

func TestBreaks(t *testing.T) {
	f := newFixture(nineAM)
	ctx := context.Background()
	session := clockInRetail(t, f, userID).Session

	_, err := f.svc.EndBreak(ctx, clock.BreakRequest{Actor: employee(userID), SessionID: session.ID})
	assert.ErrorIs(t, err, clock.ErrNotOnBreak)

	f.clock.Set(nineAM.Add(3 * time.Hour))
	onBreak, err := f.svc.StartBreak(ctx, clock.BreakRequest{Actor: employee(userID), SessionID: session.ID, Notes: ptr("lunch")})
	require.NoError(t, err)
	assert.Equal(t, clock.StateOnBreak, onBreak.State)
	require.NotNil(t, onBreak.BreakStartedAt)
	assert.Equal(t, "2025-03-14T12:00:00Z", *onBreak.BreakStartedAt)
	assert.Equal(t, "lunch", *onBreak.Notes)

	_, err = f.svc.StartBreak(ctx, clock.BreakRequest{Actor: employee(userID), SessionID: session.ID})
	assert.ErrorIs(t, err, clock.ErrNotActive)

	f.clock.Set(nineAM.Add(3*time.Hour + 30*time.Minute))
	back, err := f.svc.EndBreak(ctx, clock.BreakRequest{Actor: employee(userID), SessionID: session.ID})
	require.NoError(t, err)
	assert.Equal(t, clock.StateActive, back.State)
	assert.Nil(t, back.BreakStartedAt)
	assert.Equal(t, "2025-03-14T09:00:00Z", back.ClockInTime)
}

func TestChangeShiftRole(t *testing.T) {
	f := newFixture(nineAM)
	ctx := context.Background()
	session := clockInRetail(t, f, userID).Session

	_, err := f.svc.ChangeShiftRole(ctx, clock.ChangeShiftRoleRequest{Actor: employee(userID), SessionID: session.ID, ShiftRoleID: "sr-grill"})
	assert.ErrorIs(t, err, clock.ErrShiftRoleMismatch)

	_, err = f.svc.StartBreak(ctx, clock.BreakRequest{Actor: employee(userID), SessionID: session.ID})
	require.NoError(t, err)

	changed, err := f.svc.ChangeShiftRole(ctx, clock.ChangeShiftRoleRequest{Actor: employee(userID), SessionID: session.ID, ShiftRoleID: "sr-floor"})
	require.NoError(t, err)
	assert.Equal(t, "sr-floor", changed.ShiftRoleID)
	assert.Equal(t, clock.StateOnBreak, changed.State)

	_, err = f.svc.ChangeShiftRole(ctx, clock.ChangeShiftRoleRequest{Actor: employee(userID), SessionID: session.ID, ShiftRoleID: "sr-unknown"})
	assert.ErrorIs(t, err, organization.ErrShiftRoleNotFound)
}

func TestClockOut_LongDayScenario(t *testing.T) {
	f := newFixture(nineAM)
	f.settings.cfg.ClockWarningThresholdHours = 6
	f.settings.cfg.ClockAutoClockOutThresholdHours = 8
	ctx := context.Background()

	session := clockInRetail(t, f, userID).Session

	f.clock.Set(time.Date(2025, 3, 14, 17, 5, 0, 0, time.UTC))
	status, err := f.svc.GetClockStatus(ctx, employee(userID))
	require.NoError(t, err)
	require.NotNil(t, status.Session)
	assert.Equal(t, string(clock.WarningVeryLongSession), *status.Session.WarningLevel)

	f.clock.Set(time.Date(2025, 3, 14, 17, 6, 0, 0, time.UTC))
	out, err := f.svc.ClockOut(ctx, clock.ClockOutRequest{Actor: employee(userID), SessionID: session.ID})
	require.NoError(t, err)
	assert.Equal(t, clock.StateClockedOut, out.State)
	require.NotNil(t, out.ClockOutTime)
	assert.Equal(t, "2025-03-14T17:06:00Z", *out.ClockOutTime)

	_, err = f.svc.StartBreak(ctx, clock.BreakRequest{Actor: employee(userID), SessionID: session.ID})
	assert.ErrorIs(t, err, clock.ErrSessionClosed)
}

func TestClockOut_SecondCallFails(t *testing.T) {
	f := newFixture(nineAM)
	ctx := context.Background()
	session := clockInRetail(t, f, userID).Session

	_, err := f.svc.ClockOut(ctx, clock.ClockOutRequest{Actor: employee(userID), SessionID: session.ID})
	require.NoError(t, err)

	_, err = f.svc.ClockOut(ctx, clock.ClockOutRequest{Actor: employee(userID), SessionID: session.ID})
	assert.ErrorIs(t, err, clock.ErrSessionClosed)

	for _, op := range []func() error{
		func() error {
			_, err := f.svc.EndBreak(ctx, clock.BreakRequest{Actor: employee(userID), SessionID: session.ID})
			return err
		},
		func() error {
			_, err := f.svc.ChangeShiftRole(ctx, clock.ChangeShiftRoleRequest{Actor: employee(userID), SessionID: session.ID, ShiftRoleID: "sr-floor"})
			return err
		},
	} {
		assert.ErrorIs(t, op(), clock.ErrSessionClosed)
	}

	status, err := f.svc.GetClockStatus(ctx, employee(userID))
	require.NoError(t, err)
	assert.Equal(t, clock.StateClockedOut, status.State)
	assert.False(t, status.IsClockedIn)
	assert.Nil(t, status.Session)
}

func TestClockOut_FromBreakClearsBreak(t *testing.T) {
	f := newFixture(nineAM)
	ctx := context.Background()
	session := clockInRetail(t, f, userID).Session

	_, err := f.svc.StartBreak(ctx, clock.BreakRequest{Actor: employee(userID), SessionID: session.ID})
	require.NoError(t, err)

	out, err := f.svc.ClockOut(ctx, clock.ClockOutRequest{Actor: employee(userID), SessionID: session.ID})
	require.NoError(t, err)
	assert.Equal(t, clock.StateClockedOut, out.State)
	assert.Nil(t, out.BreakStartedAt)
}

func TestClockOut_ExplicitTime(t *testing.T) {
	f := newFixture(nineAM)
	ctx := context.Background()
	session := clockInRetail(t, f, userID).Session
	f.clock.Set(nineAM.Add(10 * time.Hour))

	var verrs validator.ValidationErrors

	_, err := f.svc.ClockOut(ctx, clock.ClockOutRequest{Actor: employee(userID), SessionID: session.ID, ClockOutTime: ptr("2025-03-14T17:00:00Z")})
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs.ToMap(), "notes")

	_, err = f.svc.ClockOut(ctx, clock.ClockOutRequest{Actor: employee(userID), SessionID: session.ID, ClockOutTime: ptr("2025-03-14T08:00:00Z"), Notes: ptr("left early")})
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs.ToMap(), "clock_out_time")

	_, err = f.svc.ClockOut(ctx, clock.ClockOutRequest{Actor: employee(userID), SessionID: session.ID, ClockOutTime: ptr("2025-03-14T23:00:00Z"), Notes: ptr("future")})
	require.True(t, errors.As(err, &verrs))

	assert.Len(t, f.store.open(userID), 1)

	out, err := f.svc.ClockOut(ctx, clock.ClockOutRequest{Actor: employee(userID), SessionID: session.ID, ClockOutTime: ptr("2025-03-14T17:00:00Z"), Notes: ptr("forgot to clock out")})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-14T17:00:00Z", *out.ClockOutTime)
	assert.Equal(t, "forgot to clock out", *out.Notes)
	assert.InDelta(t, 8.0, *out.ElapsedHours, 1e-9)
}

func TestClockOut_ExplicitTimeRecordsCorrection(t *testing.T) {
	f := newFixture(nineAM)
	ctx := context.Background()
	session := clockInRetail(t, f, userID).Session
	f.clock.Set(nineAM.Add(10 * time.Hour))

	_, err := f.svc.ClockOut(ctx, clock.ClockOutRequest{Actor: employee(userID), SessionID: session.ID, ClockOutTime: ptr("2025-03-14T08:00:00Z"), Notes: ptr("left early")})
	require.Error(t, err)
	assert.Empty(t, f.store.corrections)

	_, err = f.svc.ClockOut(ctx, clock.ClockOutRequest{Actor: employee(userID), SessionID: session.ID, ClockOutTime: ptr("2025-03-14T17:00:00Z"), Notes: ptr("forgot to clock out")})
	require.NoError(t, err)

	require.Len(t, f.store.corrections, 1)
	c := f.store.corrections[0]
	assert.Equal(t, session.ID, c.SessionID)
	assert.Equal(t, clock.CorrectionFieldClockOut, c.Field)
	assert.Nil(t, c.OldValue)
	assert.Equal(t, time.Date(2025, 3, 14, 17, 0, 0, 0, time.UTC), c.NewValue)
	assert.Equal(t, "forgot to clock out", c.Notes)
	assert.Equal(t, userID, c.CorrectedBy)
	assert.Equal(t, nineAM.Add(10*time.Hour), c.CorrectedAt)
}

func TestClockOut_ImplicitTimeRecordsNoCorrection(t *testing.T) {
	f := newFixture(nineAM)
	ctx := context.Background()
	session := clockInRetail(t, f, userID).Session
	f.clock.Set(nineAM.Add(8 * time.Hour))

	_, err := f.svc.ClockOut(ctx, clock.ClockOutRequest{Actor: employee(userID), SessionID: session.ID, Notes: ptr("done")})
	require.NoError(t, err)
	assert.Empty(t, f.store.corrections)
}

func TestClockIn_SuggestsNearbyShiftWithoutLinking(t *testing.T) {
	f := newFixture(nineAM)
	f.shifts.shifts = []shift.ProvisionalShift{
		provisional("ps-0930", nineAM, 9, 30),
		provisional("ps-1500", nineAM, 15, 0),
	}
	ctx := context.Background()

	resp := clockInRetail(t, f, userID)
	require.Len(t, resp.ProvisionalShiftsNearby, 1)
	assert.Equal(t, "ps-0930", resp.ProvisionalShiftsNearby[0].ID)
	assert.Equal(t, 30, resp.ProvisionalShiftsNearby[0].OffsetMinutes)
	assert.Nil(t, resp.Session.LinkedProvisionalShiftID)

	f.clock.Set(nineAM.Add(6 * time.Hour))
	later, err := f.svc.GetSession(ctx, employee(userID), resp.Session.ID)
	require.NoError(t, err)
	assert.Nil(t, later.LinkedProvisionalShiftID)
}

func TestClockIn_ShiftLookupFailureStillClocksIn(t *testing.T) {
	f := newFixture(nineAM)
	f.shifts.err = errors.New("rota service unavailable")

	resp := clockInRetail(t, f, userID)
	assert.Empty(t, resp.ProvisionalShiftsNearby)
	assert.Len(t, f.store.open(userID), 1)
}

func TestLinkProvisionalShift(t *testing.T) {
	f := newFixture(nineAM)
	other := provisional("ps-other", nineAM, 9, 0)
	other.UserID = "user-2"
	f.shifts.shifts = []shift.ProvisionalShift{provisional("ps-0930", nineAM, 9, 30), provisional("ps-1000", nineAM, 10, 0), other}
	ctx := context.Background()

	session := clockInRetail(t, f, userID).Session

	_, err := f.svc.LinkProvisionalShift(ctx, clock.LinkProvisionalShiftRequest{Actor: employee(userID), ClockRecordID: session.ID, ShiftRecordID: "ps-other"})
	assert.ErrorIs(t, err, shift.ErrProvisionalShiftNotFound)

	_, err = f.svc.LinkProvisionalShift(ctx, clock.LinkProvisionalShiftRequest{Actor: employee(userID), ClockRecordID: session.ID, ShiftRecordID: "ps-missing"})
	assert.ErrorIs(t, err, shift.ErrProvisionalShiftNotFound)

	linked, err := f.svc.LinkProvisionalShift(ctx, clock.LinkProvisionalShiftRequest{Actor: employee(userID), ClockRecordID: session.ID, ShiftRecordID: "ps-0930"})
	require.NoError(t, err)
	require.NotNil(t, linked.LinkedProvisionalShiftID)
	assert.Equal(t, "ps-0930", *linked.LinkedProvisionalShiftID)

	_, err = f.svc.LinkProvisionalShift(ctx, clock.LinkProvisionalShiftRequest{Actor: employee(userID), ClockRecordID: session.ID, ShiftRecordID: "ps-1000"})
	assert.ErrorIs(t, err, clock.ErrAlreadyLinked)

	_, err = f.svc.ClockOut(ctx, clock.ClockOutRequest{Actor: employee(userID), SessionID: session.ID})
	require.NoError(t, err)

	_, err = f.svc.LinkProvisionalShift(ctx, clock.LinkProvisionalShiftRequest{Actor: employee(userID), ClockRecordID: session.ID, ShiftRecordID: "ps-1000"})
	assert.ErrorIs(t, err, clock.ErrSessionClosed)
}

func TestSessionAccess(t *testing.T) {
	f := newFixture(nineAM)
	ctx := context.Background()
	session := clockInRetail(t, f, userID).Session

	_, err := f.svc.GetSession(ctx, employee("user-2"), session.ID)
	assert.ErrorIs(t, err, clock.ErrSessionNotFound)

	_, err = f.svc.StartBreak(ctx, clock.BreakRequest{Actor: employee("user-2"), SessionID: session.ID})
	assert.ErrorIs(t, err, clock.ErrSessionNotFound)

	_, err = f.svc.GetSession(ctx, clock.Actor{CompanyID: "company-2", UserID: userID}, session.ID)
	assert.ErrorIs(t, err, clock.ErrSessionNotFound)

	got, err := f.svc.GetSession(ctx, manager(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, got.ID)

	onBreak, err := f.svc.StartBreak(ctx, clock.BreakRequest{Actor: manager(), SessionID: session.ID})
	require.NoError(t, err)
	assert.Equal(t, clock.StateOnBreak, onBreak.State)
}

func TestEditSessionTimes(t *testing.T) {
	f := newFixture(nineAM)
	ctx := context.Background()
	session := clockInRetail(t, f, userID).Session

	_, err := f.svc.EditSessionTimes(ctx, clock.EditSessionTimesRequest{Actor: employee(userID), SessionID: session.ID, ClockInTime: ptr("2025-03-14T08:30:00Z"), Notes: "x"})
	assert.ErrorIs(t, err, organization.ErrManagerAccessRequired)

	_, err = f.svc.EditSessionTimes(ctx, clock.EditSessionTimesRequest{Actor: manager(), SessionID: session.ID, ClockInTime: ptr("2025-03-14T08:30:00Z")})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs.ToMap(), "notes")

	_, err = f.svc.EditSessionTimes(ctx, clock.EditSessionTimesRequest{Actor: manager(), SessionID: session.ID, ClockOutTime: ptr("2025-03-14T08:30:00Z"), Notes: "x"})
	assert.ErrorIs(t, err, clock.ErrSessionStillOpen)

	edited, err := f.svc.EditSessionTimes(ctx, clock.EditSessionTimesRequest{Actor: manager(), SessionID: session.ID, ClockInTime: ptr("2025-03-14T08:30:00Z"), Notes: "badge reader down"})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-14T08:30:00Z", edited.ClockInTime)
	assert.Equal(t, clock.StateActive, edited.State)

	f.clock.Set(nineAM.Add(9 * time.Hour))
	_, err = f.svc.ClockOut(ctx, clock.ClockOutRequest{Actor: employee(userID), SessionID: session.ID})
	require.NoError(t, err)

	edited, err = f.svc.EditSessionTimes(ctx, clock.EditSessionTimesRequest{Actor: manager(), SessionID: session.ID, ClockOutTime: ptr("2025-03-14T17:00:00Z"), Notes: "left at five"})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-14T17:00:00Z", *edited.ClockOutTime)
	assert.Equal(t, "badge reader down\nleft at five", *edited.Notes)

	corrections, err := f.svc.ListCorrections(ctx, manager(), session.ID)
	require.NoError(t, err)
	require.Len(t, corrections, 2)
	assert.Equal(t, string(clock.CorrectionFieldClockIn), corrections[0].Field)
	assert.Equal(t, "2025-03-14T09:00:00Z", *corrections[0].OldValue)
	assert.Equal(t, "2025-03-14T08:30:00Z", corrections[0].NewValue)
	assert.Equal(t, "manager-1", corrections[0].CorrectedBy)
	assert.Equal(t, string(clock.CorrectionFieldClockOut), corrections[1].Field)
	assert.Equal(t, "2025-03-14T18:00:00Z", *corrections[1].OldValue)
}

func TestEditSessionTimes_RejectedEditLeavesNoCorrection(t *testing.T) {
	f := newFixture(nineAM)
	ctx := context.Background()
	session := clockInRetail(t, f, userID).Session

	f.clock.Set(nineAM.Add(8 * time.Hour))
	_, err := f.svc.ClockOut(ctx, clock.ClockOutRequest{Actor: employee(userID), SessionID: session.ID})
	require.NoError(t, err)

	// New clock-in is valid on its own but after the existing clock-out.
	_, err = f.svc.EditSessionTimes(ctx, clock.EditSessionTimesRequest{Actor: manager(), SessionID: session.ID, ClockInTime: ptr("2025-03-14T16:30:00Z"), ClockOutTime: ptr("2025-03-14T16:00:00Z"), Notes: "typo"})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))

	corrections, err := f.svc.ListCorrections(ctx, manager(), session.ID)
	require.NoError(t, err)
	assert.Empty(t, corrections)

	got, err := f.svc.GetSession(ctx, manager(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-14T09:00:00Z", got.ClockInTime)
}

func TestListActiveSessions(t *testing.T) {
	f := newFixture(nineAM)
	ctx := context.Background()

	_, err := f.svc.ClockIn(ctx, clock.ClockInRequest{Actor: employee("user-a"), JobRoleID: "jr-retail", ShiftRoleID: "sr-till", LocationID: ptr("loc-north")})
	require.NoError(t, err)
	f.clock.Set(nineAM.Add(time.Minute))
	b := clockInRetail(t, f, "user-b")
	f.clock.Set(nineAM.Add(2 * time.Minute))
	c := clockInRetail(t, f, "user-c")

	_, err = f.svc.StartBreak(ctx, clock.BreakRequest{Actor: employee("user-b"), SessionID: b.Session.ID})
	require.NoError(t, err)
	_, err = f.svc.ClockOut(ctx, clock.ClockOutRequest{Actor: employee("user-c"), SessionID: c.Session.ID})
	require.NoError(t, err)

	all, err := f.svc.ListActiveSessions(ctx, companyID, clock.ActiveSessionFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "user-a", all[0].UserID)
	assert.Equal(t, clock.StateOnBreak, all[1].State)

	north, err := f.svc.ListActiveSessions(ctx, companyID, clock.ActiveSessionFilter{LocationID: ptr("loc-north")})
	require.NoError(t, err)
	require.Len(t, north, 1)
	assert.Equal(t, "user-a", north[0].UserID)
}
