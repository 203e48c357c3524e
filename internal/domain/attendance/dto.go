package attendance

import (
	"time"

	"github.com/showroom-hq/backoffice-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

// Requests carry the calendar day as "2006-01-02" and wall-clock times
// as "15:04". Cross-midnight shifts are not supported: every time is
// interpreted on the request's date.

type CheckInRequest struct {
	EmployeeID   string   `json:"employee_id"`
	EmployeeName string   `json:"employee_name"`
	Date         string   `json:"date"`
	Time         string   `json:"time"`
	PhotoURL     *string  `json:"photo_url"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
}

func (r *CheckInRequest) Validate() error {
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

	if _, ok := validator.IsValidTimeOfDay(r.Time); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "time",
			Message: "time must be in HH:MM format",
		})
	}

	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CheckOutRequest struct {
	RecordID  string   `json:"-"`
	Time      string   `json:"time"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RecordID) {
		errs = append(errs, validator.ValidationError{
			Field:   "record_id",
			Message: "record_id is required",
		})
	}

	if _, ok := validator.IsValidTimeOfDay(r.Time); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "time",
			Message: "time must be in HH:MM format",
		})
	}

	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type BreakRequest struct {
	RecordID string `json:"-"`
	Time     string `json:"time"`
}

func (r *BreakRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RecordID) {
		errs = append(errs, validator.ValidationError{
			Field:   "record_id",
			Message: "record_id is required",
		})
	}

	if _, ok := validator.IsValidTimeOfDay(r.Time); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "time",
			Message: "time must be in HH:MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type MarkLeaveRequest struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Date         string `json:"date"`
	LeaveType    string `json:"leave_type"`
	LeaveReason  string `json:"leave_reason"`
}

var leaveTypes = []string{"sick", "casual", "earned", "unpaid", "other"}

func (r *MarkLeaveRequest) Validate() error {
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

	if !validator.IsInSlice(r.LeaveType, leaveTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must be one of sick, casual, earned, unpaid, other",
		})
	}

	if validator.IsEmpty(r.LeaveReason) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_reason",
			Message: "leave_reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListFilter struct {
	EmployeeID string
	From       time.Time
	To         time.Time
}

// ========================================
// RESPONSES
// ========================================

type BreakResponse struct {
	ID              string  `json:"id"`
	StartTime       string  `json:"start_time"`
	EndTime         *string `json:"end_time"`
	DurationMinutes int     `json:"duration_minutes"`
}

type RecordResponse struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	Date         string          `json:"date"`
	Status       Status          `json:"status"`
	CheckInTime  *string         `json:"check_in_time"`
	CheckOutTime *string         `json:"check_out_time"`
	Breaks       []BreakResponse `json:"breaks"`
	BreakMinutes int             `json:"break_minutes"`
	WorkMinutes  int             `json:"work_minutes"`
	LeaveType    *string         `json:"leave_type,omitempty"`
	LeaveReason  *string         `json:"leave_reason,omitempty"`
}

type ListRecordsResponse struct {
	Records []RecordResponse `json:"records"`
}

func clockString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("15:04")
	return &s
}

// ToResponse maps a record to its transport shape.
func ToResponse(r Record) RecordResponse {
	breaks := make([]BreakResponse, 0, len(r.Breaks))
	for _, b := range r.Breaks {
		breaks = append(breaks, BreakResponse{
			ID:              b.ID,
			StartTime:       b.StartTime.Format("15:04"),
			EndTime:         clockString(b.EndTime),
			DurationMinutes: b.DurationMinutes,
		})
	}

	return RecordResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		Date:         r.Date.Format("2006-01-02"),
		Status:       r.Status,
		CheckInTime:  clockString(r.CheckInTime),
		CheckOutTime: clockString(r.CheckOutTime),
		Breaks:       breaks,
		BreakMinutes: r.BreakMinutes,
		WorkMinutes:  r.WorkMinutes,
		LeaveType:    r.LeaveType,
		LeaveReason:  r.LeaveReason,
	}
}
