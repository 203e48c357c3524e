package penalty

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/showroom-hq/backoffice-go/internal/pkg/validator"
)

// ========================================
// SETTINGS DTOs
// ========================================

type SettingsResponse struct {
	BusinessUnitID                 string          `json:"business_unit_id"`
	HourlyPenaltyRate              decimal.Decimal `json:"hourly_penalty_rate"`
	LeavePenaltyRate               decimal.Decimal `json:"leave_penalty_rate"`
	LateArrivalThresholdMinutes    int             `json:"late_arrival_threshold_minutes"`
	EarlyDepartureThresholdMinutes int             `json:"early_departure_threshold_minutes"`
	WorkingHoursPerDay             int             `json:"working_hours_per_day"`
	ExpectedCheckInTime            string          `json:"expected_check_in_time"`
	ExpectedCheckOutTime           string          `json:"expected_check_out_time"`
	PaidLeavesPerMonth             int             `json:"paid_leaves_per_month"`
	WeekendPenaltyEnabled          bool            `json:"weekend_penalty_enabled"`
	HolidayPenaltyEnabled          bool            `json:"holiday_penalty_enabled"`
	AutoApplyPenalties             bool            `json:"auto_apply_penalties"`
}

func clockOfMinutes(m int) string {
	return time.Date(0, 1, 1, m/60, m%60, 0, 0, time.UTC).Format("15:04")
}

func SettingsToResponse(s Settings) SettingsResponse {
	return SettingsResponse{
		BusinessUnitID:                 s.BusinessUnitID,
		HourlyPenaltyRate:              s.HourlyPenaltyRate,
		LeavePenaltyRate:               s.LeavePenaltyRate,
		LateArrivalThresholdMinutes:    s.LateArrivalThresholdMinutes,
		EarlyDepartureThresholdMinutes: s.EarlyDepartureThresholdMinutes,
		WorkingHoursPerDay:             s.WorkingHoursPerDay,
		ExpectedCheckInTime:            clockOfMinutes(s.ExpectedCheckInMinutes),
		ExpectedCheckOutTime:           clockOfMinutes(s.ExpectedCheckOutMinutes),
		PaidLeavesPerMonth:             s.PaidLeavesPerMonth,
		WeekendPenaltyEnabled:          s.WeekendPenaltyEnabled,
		HolidayPenaltyEnabled:          s.HolidayPenaltyEnabled,
		AutoApplyPenalties:             s.AutoApplyPenalties,
	}
}

type UpdateSettingsRequest struct {
	HourlyPenaltyRate              *decimal.Decimal `json:"hourly_penalty_rate"`
	LeavePenaltyRate               *decimal.Decimal `json:"leave_penalty_rate"`
	LateArrivalThresholdMinutes    *int             `json:"late_arrival_threshold_minutes"`
	EarlyDepartureThresholdMinutes *int             `json:"early_departure_threshold_minutes"`
	WorkingHoursPerDay             *int             `json:"working_hours_per_day"`
	ExpectedCheckInTime            *string          `json:"expected_check_in_time"`
	ExpectedCheckOutTime           *string          `json:"expected_check_out_time"`
	PaidLeavesPerMonth             *int             `json:"paid_leaves_per_month"`
	WeekendPenaltyEnabled          *bool            `json:"weekend_penalty_enabled"`
	HolidayPenaltyEnabled          *bool            `json:"holiday_penalty_enabled"`
	AutoApplyPenalties             *bool            `json:"auto_apply_penalties"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.HourlyPenaltyRate != nil && r.HourlyPenaltyRate.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "hourly_penalty_rate",
			Message: "hourly_penalty_rate must not be negative",
		})
	}

	if r.LeavePenaltyRate != nil && r.LeavePenaltyRate.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_penalty_rate",
			Message: "leave_penalty_rate must not be negative",
		})
	}

	if r.LateArrivalThresholdMinutes != nil && *r.LateArrivalThresholdMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "late_arrival_threshold_minutes",
			Message: "late_arrival_threshold_minutes must not be negative",
		})
	}

	if r.EarlyDepartureThresholdMinutes != nil && *r.EarlyDepartureThresholdMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "early_departure_threshold_minutes",
			Message: "early_departure_threshold_minutes must not be negative",
		})
	}

	if r.WorkingHoursPerDay != nil && (*r.WorkingHoursPerDay < 1 || *r.WorkingHoursPerDay > 24) {
		errs = append(errs, validator.ValidationError{
			Field:   "working_hours_per_day",
			Message: "working_hours_per_day must be between 1 and 24",
		})
	}

	if r.ExpectedCheckInTime != nil {
		if _, ok := validator.IsValidTimeOfDay(*r.ExpectedCheckInTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "expected_check_in_time",
				Message: "expected_check_in_time must be in HH:MM format",
			})
		}
	}

	if r.ExpectedCheckOutTime != nil {
		if _, ok := validator.IsValidTimeOfDay(*r.ExpectedCheckOutTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "expected_check_out_time",
				Message: "expected_check_out_time must be in HH:MM format",
			})
		}
	}

	if r.PaidLeavesPerMonth != nil && *r.PaidLeavesPerMonth < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "paid_leaves_per_month",
			Message: "paid_leaves_per_month must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ========================================
// PENALTY DTOs
// ========================================

type PenaltyResponse struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employee_id"`
	Date          string          `json:"date"`
	Type          Type            `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Reason        string          `json:"reason"`
	Status        Status          `json:"status"`
	AppliedAt     time.Time       `json:"applied_at"`
	RemovedBy     *string         `json:"removed_by,omitempty"`
	RemovedAt     *time.Time      `json:"removed_at,omitempty"`
	RemovalReason *string         `json:"removal_reason,omitempty"`
}

func ToResponse(p Penalty) PenaltyResponse {
	return PenaltyResponse{
		ID:            p.ID,
		EmployeeID:    p.EmployeeID,
		Date:          p.Date.Format("2006-01-02"),
		Type:          p.Type,
		Amount:        p.Amount,
		Reason:        p.Reason,
		Status:        p.Status,
		AppliedAt:     p.AppliedAt,
		RemovedBy:     p.RemovedBy,
		RemovedAt:     p.RemovedAt,
		RemovalReason: p.RemovalReason,
	}
}

func ToResponses(penalties []Penalty) []PenaltyResponse {
	out := make([]PenaltyResponse, 0, len(penalties))
	for _, p := range penalties {
		out = append(out, ToResponse(p))
	}
	return out
}

type CreateManualRequest struct {
	EmployeeID string          `json:"employee_id"`
	Date       string          `json:"date"`
	Amount     decimal.Decimal `json:"amount"`
	Reason     string          `json:"reason"`
}

func (r *CreateManualRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if r.Amount.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "amount",
			Message: "amount must not be negative",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RemoveRequest struct {
	PenaltyID string `json:"-"`
	Reason    string `json:"reason"`
}

func (r *RemoveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.PenaltyID) {
		errs = append(errs, validator.ValidationError{
			Field:   "penalty_id",
			Message: "penalty_id is required",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RemoveForDayRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Reason     string `json:"reason"`
}

func (r *RemoveForDayRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RemoveForMonthRequest struct {
	EmployeeID string `json:"employee_id"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`
	Reason     string `json:"reason"`
}

func (r *RemoveForMonthRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year is out of range",
		})
	}

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListFilter struct {
	EmployeeID     string
	From           time.Time
	To             time.Time
	IncludeRemoved bool
}
