package handler

import (
	"net/http"

	"github.com/worktrack/worktrack/internal/api/middleware"
	"github.com/worktrack/worktrack/internal/api/response"
	"github.com/worktrack/worktrack/internal/api/validation"
)

// EmployeeHandler handles /add_employee.
type EmployeeHandler struct {
	roster RosterService
}

// NewEmployeeHandler creates a new EmployeeHandler.
func NewEmployeeHandler(r RosterService) *EmployeeHandler {
	return &EmployeeHandler{roster: r}
}

// AddForm handles GET /add_employee.
func (h *EmployeeHandler) AddForm(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, formDescription{
		Fields:    []string{"name"},
		CSRFToken: csrfToken(r),
	}, middleware.GetRequestID(r.Context()))
}

// Add handles POST /add_employee.
func (h *EmployeeHandler) Add(w http.ResponseWriter, r *http.Request) {
	manager, ok := currentManager(w, r)
	if !ok {
		return
	}

	values, err := formValues(r)
	if err != nil {
		badBody(w, r)
		return
	}

	form := validation.EmployeeForm{Name: values["name"]}
	if fieldErrors := validation.ValidateEmployeeForm(form); len(fieldErrors) > 0 {
		response.ValidationFailed(w, fieldErrors, form, middleware.GetRequestID(r.Context()))
		return
	}

	if _, err := h.roster.AddEmployee(r.Context(), manager.UserID, form.Name); err != nil {
		rosterError(w, r, err, "add employee")
		return
	}

	redirectToDashboard(w, r, "Employee added")
}
