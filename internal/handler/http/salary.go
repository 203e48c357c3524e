package http

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/showroom-hq/backoffice-go/internal/domain/salary"
	"github.com/showroom-hq/backoffice-go/internal/handler/http/response"
	"github.com/showroom-hq/backoffice-go/internal/pkg/validator"
)

type SalaryHandler interface {
	Calculate(w http.ResponseWriter, r *http.Request)
}

type salaryHandlerImpl struct {
	calculator salary.Calculator
}

func NewSalaryHandler(calculator salary.Calculator) SalaryHandler {
	return &salaryHandlerImpl{
		calculator: calculator,
	}
}

// Calculate implements SalaryHandler.
func (h *salaryHandlerImpl) Calculate(w http.ResponseWriter, r *http.Request) {
	baseSalaryStr := r.URL.Query().Get("base_salary")
	baseSalary, err := decimal.NewFromString(baseSalaryStr)
	if err != nil {
		response.HandleError(w, validator.ValidationErrors{{
			Field:   "base_salary",
			Message: "base_salary must be a number",
		}})
		return
	}

	req := salary.CalculateRequest{
		EmployeeID: r.URL.Query().Get("employee_id"),
		BaseSalary: baseSalary,
		StartDate:  r.URL.Query().Get("start_date"),
		EndDate:    r.URL.Query().Get("end_date"),
	}

	result, err := h.calculator.Calculate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
