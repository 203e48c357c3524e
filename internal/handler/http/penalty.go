package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/showroom-hq/backoffice-go/internal/domain/penalty"
	"github.com/showroom-hq/backoffice-go/internal/handler/http/response"
	"github.com/showroom-hq/backoffice-go/internal/pkg/validator"
)

type PenaltyHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	CreateManual(w http.ResponseWriter, r *http.Request)
	RemoveSingle(w http.ResponseWriter, r *http.Request)
	RemoveForDay(w http.ResponseWriter, r *http.Request)
	RemoveForMonth(w http.ResponseWriter, r *http.Request)
}

type penaltyHandlerImpl struct {
	lifecycleService penalty.LifecycleService
}

func NewPenaltyHandler(lifecycleService penalty.LifecycleService) PenaltyHandler {
	return &penaltyHandlerImpl{
		lifecycleService: lifecycleService,
	}
}

// List implements PenaltyHandler.
func (h *penaltyHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")
	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")
	includeRemoved := r.URL.Query().Get("include_removed") == "true"

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

	result, err := h.lifecycleService.List(r.Context(), penalty.ListFilter{
		EmployeeID:     employeeID,
		From:           from,
		To:             to,
		IncludeRemoved: includeRemoved,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CreateManual implements PenaltyHandler.
func (h *penaltyHandlerImpl) CreateManual(w http.ResponseWriter, r *http.Request) {
	var req penalty.CreateManualRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.lifecycleService.CreateManual(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Penalty created", result)
}

// RemoveSingle implements PenaltyHandler.
func (h *penaltyHandlerImpl) RemoveSingle(w http.ResponseWriter, r *http.Request) {
	var req penalty.RemoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.PenaltyID = chi.URLParam(r, "id")

	result, err := h.lifecycleService.RemoveSingle(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Penalty removed", result)
}

// RemoveForDay implements PenaltyHandler.
func (h *penaltyHandlerImpl) RemoveForDay(w http.ResponseWriter, r *http.Request) {
	var req penalty.RemoveForDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.lifecycleService.RemoveForDay(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Penalties removed", result)
}

// RemoveForMonth implements PenaltyHandler.
func (h *penaltyHandlerImpl) RemoveForMonth(w http.ResponseWriter, r *http.Request) {
	var req penalty.RemoveForMonthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.lifecycleService.RemoveForMonth(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Penalties removed", result)
}
