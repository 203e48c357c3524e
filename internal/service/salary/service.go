package salary

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"

	"github.com/showroom-hq/backoffice-go/internal/domain/attendance"
	"github.com/showroom-hq/backoffice-go/internal/domain/penalty"
	"github.com/showroom-hq/backoffice-go/internal/domain/salary"
	"github.com/showroom-hq/backoffice-go/internal/pkg/validator"
)

// CalculatorImpl combines a base salary with the period's attendance
// records and active penalties. It is stateless: every call reads
// fresh data, so penalty removals are reflected immediately.
type CalculatorImpl struct {
	attendanceRepo attendance.Repository
	penaltyRepo    penalty.PenaltyRepository
}

func NewCalculator(
	attendanceRepo attendance.Repository,
	penaltyRepo penalty.PenaltyRepository,
) salary.Calculator {
	return &CalculatorImpl{
		attendanceRepo: attendanceRepo,
		penaltyRepo:    penaltyRepo,
	}
}

// Helper to get business_unit_id from JWT context
func getClaimsFromContext(ctx context.Context) (businessUnitID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	businessUnitID, ok := claims["business_unit_id"].(string)
	if !ok || businessUnitID == "" {
		return "", fmt.Errorf("business_unit_id claim is missing or invalid")
	}

	return businessUnitID, nil
}

// hourlyBucket groups the attendance-derived penalty types together for
// the breakdown.
func hourlyBucket(t penalty.Type) bool {
	switch t {
	case penalty.TypeHourly, penalty.TypeIncompleteHours, penalty.TypeLateArrival, penalty.TypeEarlyDeparture:
		return true
	}
	return false
}

// Calculate implements salary.Calculator.
func (c *CalculatorImpl) Calculate(ctx context.Context, req salary.CalculateRequest) (salary.Calculation, error) {
	if err := req.Validate(); err != nil {
		return salary.Calculation{}, err
	}

	businessUnitID, err := getClaimsFromContext(ctx)
	if err != nil {
		return salary.Calculation{}, err
	}

	start, _ := validator.IsValidDate(req.StartDate)
	end, _ := validator.IsValidDate(req.EndDate)

	records, err := c.attendanceRepo.ListByEmployee(ctx, req.EmployeeID, start, end, businessUnitID)
	if err != nil {
		return salary.Calculation{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	penalties, err := c.penaltyRepo.ListActiveForRange(ctx, req.EmployeeID, start, end, businessUnitID)
	if err != nil {
		return salary.Calculation{}, fmt.Errorf("failed to list penalties: %w", err)
	}

	breakdown := salary.PenaltyBreakdown{
		Hourly: decimal.Zero,
		Leave:  decimal.Zero,
		Manual: decimal.Zero,
	}
	total := decimal.Zero
	for _, p := range penalties {
		total = total.Add(p.Amount)
		switch {
		case hourlyBucket(p.Type):
			breakdown.Hourly = breakdown.Hourly.Add(p.Amount)
		case p.Type == penalty.TypeLeave:
			breakdown.Leave = breakdown.Leave.Add(p.Amount)
		default:
			breakdown.Manual = breakdown.Manual.Add(p.Amount)
		}
	}

	presentDays := 0
	leaveDays := 0
	workedMinutes := 0
	for _, r := range records {
		if r.Status == attendance.StatusOnLeave {
			leaveDays++
			continue
		}
		presentDays++
		workedMinutes += r.WorkMinutes
	}

	// Deductions can exceed the base; the payout never goes negative.
	final := req.BaseSalary.Sub(total)
	if final.IsNegative() {
		final = decimal.Zero
	}

	return salary.Calculation{
		EmployeeID:     req.EmployeeID,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		BaseSalary:     req.BaseSalary,
		TotalPenalties: total,
		FinalSalary:    final,
		Breakdown:      breakdown,
		PresentDays:    presentDays,
		LeaveDays:      leaveDays,
		WorkedMinutes:  workedMinutes,
	}, nil
}
