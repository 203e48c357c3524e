package penalty

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/showroom-hq/backoffice-go/internal/domain/attendance"
	"github.com/showroom-hq/backoffice-go/internal/domain/penalty"
	"github.com/showroom-hq/backoffice-go/internal/pkg/validator"
)

// Draft is a penalty the engine wants applied. Amounts are kept at full
// precision; rounding to 2 decimal places happens only at persistence
// so sub-amounts never compound rounding error.
type Draft struct {
	Type   penalty.Type
	Amount decimal.Decimal
	Reason string
}

// Engine is the pure rule evaluator. It holds no state and performs no
// I/O: callers pass it the triggering record, the business unit's
// settings and (for leave) the employee's leave count so far this
// month.
type Engine struct {
}

func NewEngine() *Engine {
	return &Engine{}
}

var minutesPerHour = decimal.NewFromInt(60)

// EvaluateCheckout runs the non-leave rules for a checked-out record.
// The rules are independent, not mutually exclusive: a short, late day
// can produce three line items. When the date is a Sunday and weekend
// penalties are disabled the whole day is waived, late arrival
// included. Sunday is the only recognized weekend day.
func (e *Engine) EvaluateCheckout(record attendance.Record, settings penalty.Settings) []Draft {
	if record.CheckInTime == nil || record.CheckOutTime == nil {
		return nil
	}

	if record.Date.Weekday() == time.Sunday && !settings.WeekendPenaltyEnabled {
		return nil
	}

	var drafts []Draft

	// Incomplete hours
	workedHours := decimal.NewFromInt(int64(record.WorkMinutes)).Div(minutesPerHour)
	expectedHours := decimal.NewFromInt(int64(settings.WorkingHoursPerDay))
	if shortfall := expectedHours.Sub(workedHours); shortfall.IsPositive() {
		drafts = append(drafts, Draft{
			Type:   penalty.TypeIncompleteHours,
			Amount: shortfall.Mul(settings.HourlyPenaltyRate),
			Reason: fmt.Sprintf("worked %d of %d expected minutes", record.WorkMinutes, settings.WorkingHoursPerDay*60),
		})
	}

	// Late arrival
	lateBy := validator.MinutesOfDay(*record.CheckInTime) - settings.ExpectedCheckInMinutes
	if lateBy > settings.LateArrivalThresholdMinutes {
		excess := lateBy - settings.LateArrivalThresholdMinutes
		drafts = append(drafts, Draft{
			Type:   penalty.TypeLateArrival,
			Amount: decimal.NewFromInt(int64(excess)).Div(minutesPerHour).Mul(settings.HourlyPenaltyRate),
			Reason: fmt.Sprintf("arrived %d minutes late (threshold %d)", lateBy, settings.LateArrivalThresholdMinutes),
		})
	}

	// Early departure
	earlyBy := settings.ExpectedCheckOutMinutes - validator.MinutesOfDay(*record.CheckOutTime)
	if earlyBy > settings.EarlyDepartureThresholdMinutes {
		excess := earlyBy - settings.EarlyDepartureThresholdMinutes
		drafts = append(drafts, Draft{
			Type:   penalty.TypeEarlyDeparture,
			Amount: decimal.NewFromInt(int64(excess)).Div(minutesPerHour).Mul(settings.HourlyPenaltyRate),
			Reason: fmt.Sprintf("left %d minutes early (threshold %d)", earlyBy, settings.EarlyDepartureThresholdMinutes),
		})
	}

	return drafts
}

// EvaluateLeave runs the leave-quota rule. priorLeaveDays is the count
// of leave days already taken this calendar month, not counting the one
// being evaluated. The first paidLeavesPerMonth days in a month are
// free; every day past the quota is charged the flat leave rate.
func (e *Engine) EvaluateLeave(date time.Time, priorLeaveDays int, settings penalty.Settings) []Draft {
	if priorLeaveDays < settings.PaidLeavesPerMonth {
		return nil
	}

	return []Draft{{
		Type:   penalty.TypeLeave,
		Amount: settings.LeavePenaltyRate,
		Reason: fmt.Sprintf("leave day %d exceeds monthly paid quota of %d", priorLeaveDays+1, settings.PaidLeavesPerMonth),
	}}
}
