package penalty

import (
	"time"

	"github.com/shopspring/decimal"
)

type Type string

const (
	TypeHourly          Type = "hourly"
	TypeLeave           Type = "leave"
	TypeManual          Type = "manual"
	TypeLateArrival     Type = "late_arrival"
	TypeEarlyDeparture  Type = "early_departure"
	TypeIncompleteHours Type = "incomplete_hours"
)

type Status string

const (
	StatusActive  Status = "active"
	StatusRemoved Status = "removed"
	StatusExpired Status = "expired"
)

// Penalty is one monetary deduction candidate tied to an attendance
// event. Removal is a soft delete: the row is kept for audit with the
// removing actor and reason stamped on it.
type Penalty struct {
	ID             string
	BusinessUnitID string
	EmployeeID     string
	Date           time.Time
	Type           Type
	Amount         decimal.Decimal
	Reason         string
	Status         Status
	AppliedAt      time.Time
	RemovedBy      *string
	RemovedAt      *time.Time
	RemovalReason  *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Settings is the per-business-unit penalty configuration, read on
// every checkout/leave event and every salary computation. Expected
// clock times are minutes since midnight.
type Settings struct {
	ID                             string
	BusinessUnitID                 string
	HourlyPenaltyRate              decimal.Decimal
	LeavePenaltyRate               decimal.Decimal
	LateArrivalThresholdMinutes    int
	EarlyDepartureThresholdMinutes int
	WorkingHoursPerDay             int
	ExpectedCheckInMinutes         int
	ExpectedCheckOutMinutes        int
	PaidLeavesPerMonth             int
	WeekendPenaltyEnabled          bool
	HolidayPenaltyEnabled          bool
	AutoApplyPenalties             bool
	CreatedAt                      time.Time
	UpdatedAt                      time.Time
}

// DefaultSettings are created on a business unit's first settings read.
func DefaultSettings(businessUnitID string) Settings {
	return Settings{
		BusinessUnitID:                 businessUnitID,
		HourlyPenaltyRate:              decimal.NewFromInt(50),
		LeavePenaltyRate:               decimal.NewFromInt(500),
		LateArrivalThresholdMinutes:    15,
		EarlyDepartureThresholdMinutes: 15,
		WorkingHoursPerDay:             8,
		ExpectedCheckInMinutes:         9 * 60,
		ExpectedCheckOutMinutes:        18 * 60,
		PaidLeavesPerMonth:             2,
		WeekendPenaltyEnabled:          false,
		HolidayPenaltyEnabled:          false,
		AutoApplyPenalties:             true,
	}
}
