package salary

import (
	"github.com/shopspring/decimal"
	"github.com/showroom-hq/backoffice-go/internal/pkg/validator"
)

type CalculateRequest struct {
	EmployeeID string          `json:"employee_id"`
	BaseSalary decimal.Decimal `json:"base_salary"`
	StartDate  string          `json:"start_date"`
	EndDate    string          `json:"end_date"`
}

func (r *CalculateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if r.BaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "base_salary",
			Message: "base_salary must not be negative",
		})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// PenaltyBreakdown buckets active penalty amounts by category. The
// attendance-derived types (incomplete hours, late arrival, early
// departure) all land in the hourly bucket.
type PenaltyBreakdown struct {
	Hourly decimal.Decimal `json:"hourly"`
	Leave  decimal.Decimal `json:"leave"`
	Manual decimal.Decimal `json:"manual"`
}

// Calculation is the derived salary figure for one employee and period.
// It is never persisted; callers recompute it after any penalty change.
type Calculation struct {
	EmployeeID     string           `json:"employee_id"`
	StartDate      string           `json:"start_date"`
	EndDate        string           `json:"end_date"`
	BaseSalary     decimal.Decimal  `json:"base_salary"`
	TotalPenalties decimal.Decimal  `json:"total_penalties"`
	FinalSalary    decimal.Decimal  `json:"final_salary"`
	Breakdown      PenaltyBreakdown `json:"penalty_breakdown"`
	PresentDays    int              `json:"present_days"`
	LeaveDays      int              `json:"leave_days"`
	WorkedMinutes  int              `json:"worked_minutes"`
}
