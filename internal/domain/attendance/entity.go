package attendance

import (
	"time"
)

// Status is the state of an employee's day. Absence of a record means
// the employee has not checked in; that state is never persisted.
type Status string

const (
	StatusCheckedIn  Status = "checked_in"
	StatusOnBreak    Status = "on_break"
	StatusCheckedOut Status = "checked_out"
	StatusOnLeave    Status = "on_leave"
)

// Record is one employee's attendance for one calendar day.
type Record struct {
	ID             string
	BusinessUnitID string
	EmployeeID     string
	EmployeeName   string
	Date           time.Time // calendar day, midnight UTC, immutable once set
	CheckInTime    *time.Time
	CheckOutTime   *time.Time
	PhotoURL       *string
	CheckInLat     *float64
	CheckInLng     *float64
	CheckOutLat    *float64
	CheckOutLng    *float64
	Breaks         []Break
	BreakMinutes   int // derived, sum of finished break durations
	WorkMinutes    int // derived, (checkout - checkin) - BreakMinutes, floored at 0
	Status         Status
	LeaveType      *string
	LeaveReason    *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Break is a pause within a working day. A nil EndTime means the break
// is still in progress; at most one such break may exist per record.
type Break struct {
	ID              string
	RecordID        string
	StartTime       time.Time
	EndTime         *time.Time
	DurationMinutes int
	CreatedAt       time.Time
}

// OpenBreak returns the in-progress break, or nil if every break has
// ended.
func (r *Record) OpenBreak() *Break {
	for i := range r.Breaks {
		if r.Breaks[i].EndTime == nil {
			return &r.Breaks[i]
		}
	}
	return nil
}

// TotalBreakMinutes sums the durations of all finished breaks.
func (r *Record) TotalBreakMinutes() int {
	total := 0
	for _, b := range r.Breaks {
		if b.EndTime == nil {
			continue
		}
		total += b.DurationMinutes
	}
	return total
}

// WorkedMinutes computes worked time for a checked-out record:
// (checkout - checkin) - break time, never negative.
func (r *Record) WorkedMinutes() int {
	if r.CheckInTime == nil || r.CheckOutTime == nil {
		return 0
	}
	worked := int(r.CheckOutTime.Sub(*r.CheckInTime).Minutes()) - r.TotalBreakMinutes()
	if worked < 0 {
		return 0
	}
	return worked
}
