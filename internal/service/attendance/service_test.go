package attendance

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/showroom-hq/backoffice-go/internal/domain/attendance"
	"github.com/showroom-hq/backoffice-go/internal/domain/penalty"
)

// memAttendanceRepo is an in-memory attendance.Repository so the state
// machine can be exercised through whole-day flows.
type memAttendanceRepo struct {
	mu      sync.Mutex
	records map[string]attendance.Record
}

func newMemAttendanceRepo() *memAttendanceRepo {
	return &memAttendanceRepo{records: map[string]attendance.Record{}}
}

func (m *memAttendanceRepo) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[record.ID] = record
	return record, nil
}

func (m *memAttendanceRepo) GetByID(ctx context.Context, id, businessUnitID string) (attendance.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[id]
	if !ok || r.BusinessUnitID != businessUnitID {
		return attendance.Record{}, attendance.ErrRecordNotFound
	}
	return r, nil
}

func (m *memAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, businessUnitID string) (*attendance.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.records {
		if r.BusinessUnitID == businessUnitID && r.EmployeeID == employeeID && r.Date.Equal(date) {
			found := r
			return &found, nil
		}
	}
	return nil, nil
}

func (m *memAttendanceRepo) Update(ctx context.Context, record attendance.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[record.ID]; !ok {
		return attendance.ErrRecordNotFound
	}
	m.records[record.ID] = record
	return nil
}

func (m *memAttendanceRepo) Delete(ctx context.Context, id, businessUnitID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, id)
	return nil
}

func (m *memAttendanceRepo) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time, businessUnitID string) ([]attendance.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []attendance.Record
	for _, r := range m.records {
		if r.BusinessUnitID == businessUnitID && r.EmployeeID == employeeID && !r.Date.Before(from) && !r.Date.After(to) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memAttendanceRepo) ListByDate(ctx context.Context, date time.Time, businessUnitID string) ([]attendance.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []attendance.Record
	for _, r := range m.records {
		if r.BusinessUnitID == businessUnitID && r.Date.Equal(date) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memAttendanceRepo) CountLeaveDaysInMonth(ctx context.Context, employeeID string, date time.Time, businessUnitID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	monthStart := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
	for _, r := range m.records {
		if r.BusinessUnitID == businessUnitID && r.EmployeeID == employeeID &&
			r.Status == attendance.StatusOnLeave && !r.Date.Before(monthStart) && r.Date.Before(date) {
			count++
		}
	}
	return count, nil
}

type fakeApplier struct {
	checkoutCalls []attendance.Record
	leaveCalls    []attendance.Record
	err           error
}

func (f *fakeApplier) ApplyForCheckout(ctx context.Context, record attendance.Record) ([]penalty.Penalty, error) {
	f.checkoutCalls = append(f.checkoutCalls, record)
	return nil, f.err
}

func (f *fakeApplier) ApplyForLeave(ctx context.Context, record attendance.Record) ([]penalty.Penalty, error) {
	f.leaveCalls = append(f.leaveCalls, record)
	return nil, f.err
}

type fakeLifecycle struct {
	removeLeaveCalls int
	lastActor        string
	lastReason       string
}

func (f *fakeLifecycle) CreateManual(ctx context.Context, req penalty.CreateManualRequest) (penalty.PenaltyResponse, error) {
	return penalty.PenaltyResponse{}, nil
}

func (f *fakeLifecycle) RemoveSingle(ctx context.Context, req penalty.RemoveRequest) (penalty.PenaltyResponse, error) {
	return penalty.PenaltyResponse{}, nil
}

func (f *fakeLifecycle) RemoveForDay(ctx context.Context, req penalty.RemoveForDayRequest) ([]penalty.PenaltyResponse, error) {
	return nil, nil
}

func (f *fakeLifecycle) RemoveForMonth(ctx context.Context, req penalty.RemoveForMonthRequest) ([]penalty.PenaltyResponse, error) {
	return nil, nil
}

func (f *fakeLifecycle) RemoveLeaveForDay(ctx context.Context, employeeID string, date time.Time, actor, reason string) ([]penalty.PenaltyResponse, error) {
	f.removeLeaveCalls++
	f.lastActor = actor
	f.lastReason = reason
	return nil, nil
}

func (f *fakeLifecycle) List(ctx context.Context, filter penalty.ListFilter) ([]penalty.PenaltyResponse, error) {
	return nil, nil
}

type fakeNotifier struct {
	checkIns int
	leaves   int
	cancels  int
	err      error
}

func (f *fakeNotifier) OnCheckIn(ctx context.Context, employeeID string, date time.Time) error {
	f.checkIns++
	return f.err
}

func (f *fakeNotifier) OnLeaveMarked(ctx context.Context, employeeID string, date time.Time) error {
	f.leaves++
	return f.err
}

func (f *fakeNotifier) OnLeaveCancelled(ctx context.Context, employeeID string, date time.Time) error {
	f.cancels++
	return f.err
}

func authedContext(t *testing.T, businessUnitID, userID string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"business_unit_id": businessUnitID,
		"user_id":          userID,
		"type":             "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

type fixture struct {
	svc       attendance.Service
	repo      *memAttendanceRepo
	applier   *fakeApplier
	lifecycle *fakeLifecycle
	notifier  *fakeNotifier
}

func newFixture() *fixture {
	f := &fixture{
		repo:      newMemAttendanceRepo(),
		applier:   &fakeApplier{},
		lifecycle: &fakeLifecycle{},
		notifier:  &fakeNotifier{},
	}
	f.svc = NewAttendanceService(f.repo, f.applier, f.lifecycle, f.notifier)
	return f
}

func checkIn(t *testing.T, ctx context.Context, svc attendance.Service, employeeID, date, clock string) attendance.RecordResponse {
	t.Helper()
	resp, err := svc.CheckIn(ctx, attendance.CheckInRequest{
		EmployeeID:   employeeID,
		EmployeeName: "Asha",
		Date:         date,
		Time:         clock,
	})
	require.NoError(t, err)
	return resp
}

func TestService_FullDayFlow(t *testing.T) {
	t.Parallel()
	ctx := authedContext(t, "bu-1", "user-1")
	f := newFixture()

	rec := checkIn(t, ctx, f.svc, "emp-1", "2025-06-02", "09:00")
	assert.Equal(t, attendance.StatusCheckedIn, rec.Status)
	assert.Equal(t, 1, f.notifier.checkIns)

	_, err := f.svc.StartBreak(ctx, attendance.BreakRequest{RecordID: rec.ID, Time: "12:00"})
	require.NoError(t, err)

	afterBreak, err := f.svc.EndBreak(ctx, attendance.BreakRequest{RecordID: rec.ID, Time: "13:00"})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusCheckedIn, afterBreak.Status)
	assert.Equal(t, 60, afterBreak.BreakMinutes)

	out, err := f.svc.CheckOut(ctx, attendance.CheckOutRequest{RecordID: rec.ID, Time: "18:00"})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusCheckedOut, out.Status)
	assert.Equal(t, 60, out.BreakMinutes)
	assert.Equal(t, 8*60, out.WorkMinutes)

	// The finalized record reaches the penalty engine once.
	require.Len(t, f.applier.checkoutCalls, 1)
	assert.Equal(t, 8*60, f.applier.checkoutCalls[0].WorkMinutes)
}

func TestService_CheckIn_DuplicateDay(t *testing.T) {
	t.Parallel()
	ctx := authedContext(t, "bu-1", "user-1")
	f := newFixture()

	checkIn(t, ctx, f.svc, "emp-1", "2025-06-02", "09:00")

	_, err := f.svc.CheckIn(ctx, attendance.CheckInRequest{
		EmployeeID: "emp-1",
		Date:       "2025-06-02",
		Time:       "09:05",
	})
	assert.ErrorIs(t, err, attendance.ErrRecordExists)

	// Leave and attendance are mutually exclusive on a day.
	_, err = f.svc.MarkLeave(ctx, attendance.MarkLeaveRequest{
		EmployeeID:  "emp-1",
		Date:        "2025-06-02",
		LeaveType:   "sick",
		LeaveReason: "flu",
	})
	assert.ErrorIs(t, err, attendance.ErrRecordExists)
}

func TestService_CheckOut_OutOfOrder(t *testing.T) {
	t.Parallel()
	ctx := authedContext(t, "bu-1", "user-1")
	f := newFixture()

	rec := checkIn(t, ctx, f.svc, "emp-1", "2025-06-02", "09:00")

	// Before check-in time.
	_, err := f.svc.CheckOut(ctx, attendance.CheckOutRequest{RecordID: rec.ID, Time: "08:00"})
	assert.ErrorIs(t, err, attendance.ErrCheckOutBeforeCheckIn)

	// With a break still open.
	_, err = f.svc.StartBreak(ctx, attendance.BreakRequest{RecordID: rec.ID, Time: "12:00"})
	require.NoError(t, err)
	_, err = f.svc.CheckOut(ctx, attendance.CheckOutRequest{RecordID: rec.ID, Time: "18:00"})
	assert.ErrorIs(t, err, attendance.ErrBreakInProgress)

	_, err = f.svc.EndBreak(ctx, attendance.BreakRequest{RecordID: rec.ID, Time: "12:30"})
	require.NoError(t, err)
	_, err = f.svc.CheckOut(ctx, attendance.CheckOutRequest{RecordID: rec.ID, Time: "18:00"})
	require.NoError(t, err)

	// Twice.
	_, err = f.svc.CheckOut(ctx, attendance.CheckOutRequest{RecordID: rec.ID, Time: "19:00"})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestService_Breaks_NoOverlap(t *testing.T) {
	t.Parallel()
	ctx := authedContext(t, "bu-1", "user-1")
	f := newFixture()

	rec := checkIn(t, ctx, f.svc, "emp-1", "2025-06-02", "09:00")

	// Ending with no open break.
	_, err := f.svc.EndBreak(ctx, attendance.BreakRequest{RecordID: rec.ID, Time: "12:00"})
	assert.ErrorIs(t, err, attendance.ErrNoActiveBreak)

	_, err = f.svc.StartBreak(ctx, attendance.BreakRequest{RecordID: rec.ID, Time: "12:00"})
	require.NoError(t, err)

	// Starting a second while one is open.
	_, err = f.svc.StartBreak(ctx, attendance.BreakRequest{RecordID: rec.ID, Time: "12:10"})
	assert.ErrorIs(t, err, attendance.ErrBreakInProgress)

	// A second sequential break is fine.
	_, err = f.svc.EndBreak(ctx, attendance.BreakRequest{RecordID: rec.ID, Time: "12:30"})
	require.NoError(t, err)
	_, err = f.svc.StartBreak(ctx, attendance.BreakRequest{RecordID: rec.ID, Time: "16:00"})
	require.NoError(t, err)
	resp, err := f.svc.EndBreak(ctx, attendance.BreakRequest{RecordID: rec.ID, Time: "16:15"})
	require.NoError(t, err)
	assert.Equal(t, 45, resp.BreakMinutes)
}

func TestService_StartBreak_BeforeCheckIn(t *testing.T) {
	t.Parallel()
	ctx := authedContext(t, "bu-1", "user-1")
	f := newFixture()

	rec := checkIn(t, ctx, f.svc, "emp-1", "2025-06-02", "09:00")

	_, err := f.svc.StartBreak(ctx, attendance.BreakRequest{RecordID: rec.ID, Time: "08:30"})
	assert.ErrorIs(t, err, attendance.ErrTimeBeforeCheckIn)
}

func TestService_Leave_MarkAndCancel(t *testing.T) {
	t.Parallel()
	ctx := authedContext(t, "bu-1", "user-1")
	f := newFixture()

	rec, err := f.svc.MarkLeave(ctx, attendance.MarkLeaveRequest{
		EmployeeID:  "emp-1",
		Date:        "2025-06-02",
		LeaveType:   "casual",
		LeaveReason: "family visit",
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusOnLeave, rec.Status)
	assert.Len(t, f.applier.leaveCalls, 1)
	assert.Equal(t, 1, f.notifier.leaves)

	// A leave day rejects check-out attempts outright.
	_, err = f.svc.CheckOut(ctx, attendance.CheckOutRequest{RecordID: rec.ID, Time: "18:00"})
	assert.ErrorIs(t, err, attendance.ErrOnLeave)

	err = f.svc.CancelLeave(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, f.notifier.cancels)
	assert.Equal(t, 1, f.lifecycle.removeLeaveCalls)
	assert.Equal(t, "user-1", f.lifecycle.lastActor)

	// The day is clear again.
	checkIn(t, ctx, f.svc, "emp-1", "2025-06-02", "10:00")
}

func TestService_CancelLeave_NotOnLeave(t *testing.T) {
	t.Parallel()
	ctx := authedContext(t, "bu-1", "user-1")
	f := newFixture()

	rec := checkIn(t, ctx, f.svc, "emp-1", "2025-06-02", "09:00")

	err := f.svc.CancelLeave(ctx, rec.ID)
	assert.ErrorIs(t, err, attendance.ErrNotOnLeave)
}

func TestService_NotifierFailureDoesNotBlock(t *testing.T) {
	t.Parallel()
	ctx := authedContext(t, "bu-1", "user-1")
	f := newFixture()
	f.notifier.err = context.DeadlineExceeded

	rec, err := f.svc.CheckIn(ctx, attendance.CheckInRequest{
		EmployeeID: "emp-1",
		Date:       "2025-06-02",
		Time:       "09:00",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
}

func TestService_ListForDate(t *testing.T) {
	t.Parallel()
	ctx := authedContext(t, "bu-1", "user-1")
	f := newFixture()

	checkIn(t, ctx, f.svc, "emp-1", "2025-06-02", "09:00")
	checkIn(t, ctx, f.svc, "emp-2", "2025-06-02", "09:15")
	checkIn(t, ctx, f.svc, "emp-3", "2025-06-03", "09:00")

	resp, err := f.svc.ListForDate(ctx, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, resp.Records, 2)
	for _, rec := range resp.Records {
		assert.Equal(t, "2025-06-02", rec.Date)
	}

	// Other business units see nothing for the day.
	other := authedContext(t, "bu-2", "user-9")
	resp, err = f.svc.ListForDate(other, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, resp.Records)
}

func TestService_BusinessUnitIsolation(t *testing.T) {
	t.Parallel()
	f := newFixture()

	ctxA := authedContext(t, "bu-a", "user-1")
	ctxB := authedContext(t, "bu-b", "user-2")

	rec := checkIn(t, ctxA, f.svc, "emp-1", "2025-06-02", "09:00")

	// Another business unit cannot see or mutate the record.
	_, err := f.svc.Get(ctxB, rec.ID)
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)
	_, err = f.svc.CheckOut(ctxB, attendance.CheckOutRequest{RecordID: rec.ID, Time: "18:00"})
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)

	// The same employee ID is a separate day in a separate unit.
	checkIn(t, ctxB, f.svc, "emp-1", "2025-06-02", "09:30")
}
