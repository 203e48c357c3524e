package response

import (
	"errors"
	"net/http"

	"github.com/showroom-hq/backoffice-go/internal/domain/attendance"
	"github.com/showroom-hq/backoffice-go/internal/domain/penalty"
	"github.com/showroom-hq/backoffice-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Attendance domain errors
	switch {
	case errors.Is(err, attendance.ErrRecordExists):
		Conflict(w, "Attendance already recorded for this day")
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out for this day")
	case errors.Is(err, attendance.ErrBreakInProgress):
		BadRequest(w, "A break is already in progress", nil)
	case errors.Is(err, attendance.ErrNoActiveBreak):
		BadRequest(w, "No break is in progress", nil)
	case errors.Is(err, attendance.ErrOnLeave):
		BadRequest(w, "This day is marked as leave", nil)
	case errors.Is(err, attendance.ErrNotOnLeave):
		BadRequest(w, "Record is not a leave record", nil)
	case errors.Is(err, attendance.ErrCheckOutBeforeCheckIn):
		BadRequest(w, "Check-out time is before check-in time", nil)
	case errors.Is(err, attendance.ErrTimeBeforeCheckIn):
		BadRequest(w, "Time is before check-in time", nil)

	// Penalty domain errors
	case errors.Is(err, penalty.ErrPenaltyNotFound):
		NotFound(w, "Penalty not found")
	case errors.Is(err, penalty.ErrPenaltyAlreadyRemoved):
		Conflict(w, "Penalty has already been removed")
	case errors.Is(err, penalty.ErrSettingsNotFound):
		NotFound(w, "Penalty settings not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
