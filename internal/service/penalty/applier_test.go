package penalty

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/showroom-hq/backoffice-go/internal/domain/attendance"
	"github.com/showroom-hq/backoffice-go/internal/domain/penalty"
)

type fakeSettingsRepo struct {
	getFn    func(ctx context.Context, businessUnitID string) (penalty.Settings, error)
	upsertFn func(ctx context.Context, s penalty.Settings) (penalty.Settings, error)
}

func (f *fakeSettingsRepo) Get(ctx context.Context, businessUnitID string) (penalty.Settings, error) {
	return f.getFn(ctx, businessUnitID)
}

func (f *fakeSettingsRepo) Upsert(ctx context.Context, s penalty.Settings) (penalty.Settings, error) {
	return f.upsertFn(ctx, s)
}

type fakeAttendanceRepo struct {
	createFn                func(ctx context.Context, record attendance.Record) (attendance.Record, error)
	getByIDFn               func(ctx context.Context, id, businessUnitID string) (attendance.Record, error)
	getByEmployeeAndDateFn  func(ctx context.Context, employeeID string, date time.Time, businessUnitID string) (*attendance.Record, error)
	updateFn                func(ctx context.Context, record attendance.Record) error
	deleteFn                func(ctx context.Context, id, businessUnitID string) error
	listByEmployeeFn        func(ctx context.Context, employeeID string, from, to time.Time, businessUnitID string) ([]attendance.Record, error)
	listByDateFn            func(ctx context.Context, date time.Time, businessUnitID string) ([]attendance.Record, error)
	countLeaveDaysInMonthFn func(ctx context.Context, employeeID string, date time.Time, businessUnitID string) (int, error)
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	return f.createFn(ctx, record)
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id, businessUnitID string) (attendance.Record, error) {
	return f.getByIDFn(ctx, id, businessUnitID)
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, businessUnitID string) (*attendance.Record, error) {
	return f.getByEmployeeAndDateFn(ctx, employeeID, date, businessUnitID)
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, record attendance.Record) error {
	return f.updateFn(ctx, record)
}

func (f *fakeAttendanceRepo) Delete(ctx context.Context, id, businessUnitID string) error {
	return f.deleteFn(ctx, id, businessUnitID)
}

func (f *fakeAttendanceRepo) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time, businessUnitID string) ([]attendance.Record, error) {
	return f.listByEmployeeFn(ctx, employeeID, from, to, businessUnitID)
}

func (f *fakeAttendanceRepo) ListByDate(ctx context.Context, date time.Time, businessUnitID string) ([]attendance.Record, error) {
	return f.listByDateFn(ctx, date, businessUnitID)
}

func (f *fakeAttendanceRepo) CountLeaveDaysInMonth(ctx context.Context, employeeID string, date time.Time, businessUnitID string) (int, error) {
	return f.countLeaveDaysInMonthFn(ctx, employeeID, date, businessUnitID)
}

func defaultSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{
		getFn: func(ctx context.Context, businessUnitID string) (penalty.Settings, error) {
			return penalty.Settings{}, penalty.ErrSettingsNotFound
		},
	}
}

func TestApplier_ApplyForCheckout_PersistsRoundedAmounts(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var created []penalty.Penalty
	penaltyRepo := &fakePenaltyRepo{}
	penaltyRepo.createFn = func(ctx context.Context, p penalty.Penalty) (penalty.Penalty, error) {
		p.ID = "pen-1"
		created = append(created, p)
		return p, nil
	}

	applier := NewApplier(NewEngine(), penaltyRepo, defaultSettingsRepo(), &fakeAttendanceRepo{})

	// 20 excess late minutes at rate 50 is 16.666..., stored as 16.67.
	record := checkedOutRecord(workday, 9, 35, 18, 35, 60)
	record.BusinessUnitID = "bu-1"

	applied, err := applier.ApplyForCheckout(ctx, record)
	require.NoError(t, err)
	require.Len(t, applied, 1)

	require.Len(t, created, 1)
	assert.Equal(t, penalty.TypeLateArrival, created[0].Type)
	assert.Equal(t, "bu-1", created[0].BusinessUnitID)
	assert.Equal(t, penalty.StatusActive, created[0].Status)
	assert.True(t, created[0].Amount.Equal(decimal.RequireFromString("16.67")), "got %s", created[0].Amount)
}

func TestApplier_ApplyForCheckout_AutoApplyDisabled(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	settingsRepo := &fakeSettingsRepo{
		getFn: func(ctx context.Context, businessUnitID string) (penalty.Settings, error) {
			s := penalty.DefaultSettings(businessUnitID)
			s.AutoApplyPenalties = false
			return s, nil
		},
	}

	penaltyRepo := &fakePenaltyRepo{}
	penaltyRepo.createFn = func(ctx context.Context, p penalty.Penalty) (penalty.Penalty, error) {
		t.Fatal("no penalty should be persisted when auto apply is off")
		return p, nil
	}

	applier := NewApplier(NewEngine(), penaltyRepo, settingsRepo, &fakeAttendanceRepo{})

	record := checkedOutRecord(workday, 11, 0, 15, 0, 0)
	applied, err := applier.ApplyForCheckout(ctx, record)
	require.NoError(t, err)
	assert.Empty(t, applied)
}

func TestApplier_ApplyForLeave_UsesPriorLeaveCount(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	attendanceRepo := &fakeAttendanceRepo{}
	attendanceRepo.countLeaveDaysInMonthFn = func(ctx context.Context, employeeID string, date time.Time, businessUnitID string) (int, error) {
		return 2, nil
	}

	var created []penalty.Penalty
	penaltyRepo := &fakePenaltyRepo{}
	penaltyRepo.createFn = func(ctx context.Context, p penalty.Penalty) (penalty.Penalty, error) {
		created = append(created, p)
		return p, nil
	}

	applier := NewApplier(NewEngine(), penaltyRepo, defaultSettingsRepo(), attendanceRepo)

	record := attendance.Record{
		BusinessUnitID: "bu-1",
		EmployeeID:     "emp-1",
		Date:           workday,
		Status:         attendance.StatusOnLeave,
	}

	applied, err := applier.ApplyForLeave(ctx, record)
	require.NoError(t, err)
	require.Len(t, applied, 1)
	assert.Equal(t, penalty.TypeLeave, created[0].Type)
	assert.True(t, created[0].Amount.Equal(decimal.NewFromInt(500)), "got %s", created[0].Amount)
}

func TestApplier_ApplyForLeave_WithinQuota(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	attendanceRepo := &fakeAttendanceRepo{}
	attendanceRepo.countLeaveDaysInMonthFn = func(ctx context.Context, employeeID string, date time.Time, businessUnitID string) (int, error) {
		return 1, nil
	}

	applier := NewApplier(NewEngine(), &fakePenaltyRepo{}, defaultSettingsRepo(), attendanceRepo)

	record := attendance.Record{
		BusinessUnitID: "bu-1",
		EmployeeID:     "emp-1",
		Date:           workday,
		Status:         attendance.StatusOnLeave,
	}

	applied, err := applier.ApplyForLeave(ctx, record)
	require.NoError(t, err)
	assert.Empty(t, applied)
}
