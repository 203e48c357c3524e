package salary

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/showroom-hq/backoffice-go/internal/domain/attendance"
	"github.com/showroom-hq/backoffice-go/internal/domain/penalty"
	"github.com/showroom-hq/backoffice-go/internal/domain/salary"
)

type stubAttendanceRepo struct {
	attendance.Repository
	records []attendance.Record
}

func (s *stubAttendanceRepo) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time, businessUnitID string) ([]attendance.Record, error) {
	return s.records, nil
}

type stubPenaltyRepo struct {
	penalty.PenaltyRepository
	active []penalty.Penalty
}

func (s *stubPenaltyRepo) ListActiveForRange(ctx context.Context, employeeID string, from, to time.Time, businessUnitID string) ([]penalty.Penalty, error) {
	return s.active, nil
}

func authedContext(t *testing.T, businessUnitID string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"business_unit_id": businessUnitID,
		"type":             "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func pen(typ penalty.Type, amount int64) penalty.Penalty {
	return penalty.Penalty{
		Type:   typ,
		Amount: decimal.NewFromInt(amount),
		Status: penalty.StatusActive,
	}
}

func TestCalculator_BreakdownAndTotals(t *testing.T) {
	t.Parallel()
	ctx := authedContext(t, "bu-1")

	attendanceRepo := &stubAttendanceRepo{records: []attendance.Record{
		{Status: attendance.StatusCheckedOut, WorkMinutes: 480},
		{Status: attendance.StatusCheckedOut, WorkMinutes: 420},
		{Status: attendance.StatusOnLeave},
	}}
	penaltyRepo := &stubPenaltyRepo{active: []penalty.Penalty{
		pen(penalty.TypeIncompleteHours, 100),
		pen(penalty.TypeLateArrival, 50),
		pen(penalty.TypeLeave, 500),
		pen(penalty.TypeManual, 200),
	}}

	calc := NewCalculator(attendanceRepo, penaltyRepo)
	result, err := calc.Calculate(ctx, salary.CalculateRequest{
		EmployeeID: "emp-1",
		BaseSalary: decimal.NewFromInt(30000),
		StartDate:  "2025-06-01",
		EndDate:    "2025-06-30",
	})
	require.NoError(t, err)

	assert.True(t, result.TotalPenalties.Equal(decimal.NewFromInt(850)), "got %s", result.TotalPenalties)
	assert.True(t, result.FinalSalary.Equal(decimal.NewFromInt(29150)), "got %s", result.FinalSalary)
	assert.True(t, result.Breakdown.Hourly.Equal(decimal.NewFromInt(150)), "got %s", result.Breakdown.Hourly)
	assert.True(t, result.Breakdown.Leave.Equal(decimal.NewFromInt(500)), "got %s", result.Breakdown.Leave)
	assert.True(t, result.Breakdown.Manual.Equal(decimal.NewFromInt(200)), "got %s", result.Breakdown.Manual)
	assert.Equal(t, 2, result.PresentDays)
	assert.Equal(t, 1, result.LeaveDays)
	assert.Equal(t, 900, result.WorkedMinutes)
}

func TestCalculator_FlooredAtZero(t *testing.T) {
	t.Parallel()
	ctx := authedContext(t, "bu-1")

	penaltyRepo := &stubPenaltyRepo{active: []penalty.Penalty{
		pen(penalty.TypeManual, 35000),
	}}

	calc := NewCalculator(&stubAttendanceRepo{}, penaltyRepo)
	result, err := calc.Calculate(ctx, salary.CalculateRequest{
		EmployeeID: "emp-1",
		BaseSalary: decimal.NewFromInt(30000),
		StartDate:  "2025-06-01",
		EndDate:    "2025-06-30",
	})
	require.NoError(t, err)

	assert.True(t, result.TotalPenalties.Equal(decimal.NewFromInt(35000)), "got %s", result.TotalPenalties)
	assert.True(t, result.FinalSalary.IsZero(), "got %s", result.FinalSalary)
}

func TestCalculator_ReflectsPenaltyRemoval(t *testing.T) {
	t.Parallel()
	ctx := authedContext(t, "bu-1")

	penaltyRepo := &stubPenaltyRepo{active: []penalty.Penalty{
		pen(penalty.TypeLeave, 500),
	}}

	calc := NewCalculator(&stubAttendanceRepo{}, penaltyRepo)
	req := salary.CalculateRequest{
		EmployeeID: "emp-1",
		BaseSalary: decimal.NewFromInt(10000),
		StartDate:  "2025-06-01",
		EndDate:    "2025-06-30",
	}

	before, err := calc.Calculate(ctx, req)
	require.NoError(t, err)
	assert.True(t, before.FinalSalary.Equal(decimal.NewFromInt(9500)), "got %s", before.FinalSalary)

	// Nothing is persisted: once the penalty is removed a recompute
	// restores the full base.
	penaltyRepo.active = nil
	after, err := calc.Calculate(ctx, req)
	require.NoError(t, err)
	assert.True(t, after.FinalSalary.Equal(decimal.NewFromInt(10000)), "got %s", after.FinalSalary)
}

func TestCalculator_RejectsInvertedRange(t *testing.T) {
	t.Parallel()
	ctx := authedContext(t, "bu-1")

	calc := NewCalculator(&stubAttendanceRepo{}, &stubPenaltyRepo{})
	_, err := calc.Calculate(ctx, salary.CalculateRequest{
		EmployeeID: "emp-1",
		BaseSalary: decimal.NewFromInt(10000),
		StartDate:  "2025-06-30",
		EndDate:    "2025-06-01",
	})
	assert.Error(t, err)
}
