package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/showroom-hq/backoffice-go/internal/domain/attendance"
	"github.com/showroom-hq/backoffice-go/internal/handler/http/response"
	"github.com/showroom-hq/backoffice-go/internal/pkg/validator"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	StartBreak(w http.ResponseWriter, r *http.Request)
	EndBreak(w http.ResponseWriter, r *http.Request)
	MarkLeave(w http.ResponseWriter, r *http.Request)
	CancelLeave(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.Service
}

func NewAttendanceHandler(attendanceService attendance.Service) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.CheckIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Check-in successful", result)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.RecordID = chi.URLParam(r, "id")

	result, err := h.attendanceService.CheckOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Check-out successful", result)
}

// StartBreak implements AttendanceHandler.
func (h *attendanceHandlerImpl) StartBreak(w http.ResponseWriter, r *http.Request) {
	var req attendance.BreakRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.RecordID = chi.URLParam(r, "id")

	result, err := h.attendanceService.StartBreak(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Break started", result)
}

// EndBreak implements AttendanceHandler.
func (h *attendanceHandlerImpl) EndBreak(w http.ResponseWriter, r *http.Request) {
	var req attendance.BreakRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.RecordID = chi.URLParam(r, "id")

	result, err := h.attendanceService.EndBreak(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Break ended", result)
}

// MarkLeave implements AttendanceHandler.
func (h *attendanceHandlerImpl) MarkLeave(w http.ResponseWriter, r *http.Request) {
	var req attendance.MarkLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.MarkLeave(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave marked", result)
}

// CancelLeave implements AttendanceHandler.
func (h *attendanceHandlerImpl) CancelLeave(w http.ResponseWriter, r *http.Request) {
	recordID := chi.URLParam(r, "id")

	if err := h.attendanceService.CancelLeave(r.Context(), recordID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave cancelled", nil)
}

// Get implements AttendanceHandler.
func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	recordID := chi.URLParam(r, "id")

	result, err := h.attendanceService.Get(r.Context(), recordID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements AttendanceHandler. A date query lists every
// employee's record for that day; otherwise employee_id with a range
// is required.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		date, ok := validator.IsValidDate(dateStr)
		if !ok {
			response.HandleError(w, validator.ValidationErrors{{Field: "date", Message: "date must be in YYYY-MM-DD format"}})
			return
		}

		result, err := h.attendanceService.ListForDate(r.Context(), date)
		if err != nil {
			response.HandleError(w, err)
			return
		}

		response.Success(w, result)
		return
	}

	employeeID := r.URL.Query().Get("employee_id")
	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")

	var errs validator.ValidationErrors
	if validator.IsEmpty(employeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	from, ok := validator.IsValidDate(fromStr)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "from", Message: "from must be in YYYY-MM-DD format"})
	}
	to, ok := validator.IsValidDate(toStr)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "to", Message: "to must be in YYYY-MM-DD format"})
	}
	if len(errs) > 0 {
		response.HandleError(w, errs)
		return
	}

	result, err := h.attendanceService.List(r.Context(), attendance.ListFilter{
		EmployeeID: employeeID,
		From:       from,
		To:         to,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
