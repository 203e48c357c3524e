package attendance

import "errors"

// Attendance domain errors
var (
	// State machine errors
	ErrRecordExists          = errors.New("attendance already recorded for this day")
	ErrRecordNotFound        = errors.New("attendance record not found")
	ErrAlreadyCheckedOut     = errors.New("you have already checked out")
	ErrBreakInProgress       = errors.New("a break is already in progress")
	ErrNoActiveBreak         = errors.New("no break is in progress")
	ErrOnLeave               = errors.New("this day is marked as leave")
	ErrNotOnLeave            = errors.New("record is not a leave record")
	ErrCheckOutBeforeCheckIn = errors.New("check-out time is before check-in time")
	ErrTimeBeforeCheckIn     = errors.New("time is before check-in time")
)
