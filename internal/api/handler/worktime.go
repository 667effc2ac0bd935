package handler

import (
	"net/http"

	"github.com/worktrack/worktrack/internal/api/middleware"
	"github.com/worktrack/worktrack/internal/api/response"
	"github.com/worktrack/worktrack/internal/api/validation"
	"github.com/worktrack/worktrack/internal/worktime"
)

// WorkTimeHandler handles the add, edit and delete work-time routes.
type WorkTimeHandler struct {
	roster RosterService
}

// NewWorkTimeHandler creates a new WorkTimeHandler.
func NewWorkTimeHandler(r RosterService) *WorkTimeHandler {
	return &WorkTimeHandler{roster: r}
}

type workTimeFormResponse struct {
	Employee  employeeResponse        `json:"employee"`
	WorkTime  *workTimeResponse       `json:"workTime,omitempty"`
	Values    validation.WorkTimeForm `json:"values"`
	Statuses  []worktime.Status       `json:"statuses"`
	CSRFToken string                  `json:"csrfToken"`
}

func workTimeFormFrom(values map[string]string) validation.WorkTimeForm {
	return validation.WorkTimeForm{
		Date:      values["date"],
		StartTime: values["start_time"],
		EndTime:   values["end_time"],
		Status:    values["status"],
		Comment:   values["comment"],
	}
}

// AddForm handles GET /add_worktime/{employeeID}.
func (h *WorkTimeHandler) AddForm(w http.ResponseWriter, r *http.Request) {
	manager, ok := currentManager(w, r)
	if !ok {
		return
	}
	employeeID, ok := pathID(w, r, "employeeID")
	if !ok {
		return
	}

	e, err := h.roster.EmployeeOwnedBy(r.Context(), manager.UserID, employeeID)
	if err != nil {
		rosterError(w, r, err, "load employee")
		return
	}

	response.Success(w, http.StatusOK, workTimeFormResponse{
		Employee:  toEmployeeResponse(*e),
		Statuses:  worktime.Statuses,
		CSRFToken: csrfToken(r),
	}, middleware.GetRequestID(r.Context()))
}

// Add handles POST /add_worktime/{employeeID}.
func (h *WorkTimeHandler) Add(w http.ResponseWriter, r *http.Request) {
	manager, ok := currentManager(w, r)
	if !ok {
		return
	}
	employeeID, ok := pathID(w, r, "employeeID")
	if !ok {
		return
	}

	if _, err := h.roster.EmployeeOwnedBy(r.Context(), manager.UserID, employeeID); err != nil {
		rosterError(w, r, err, "load employee")
		return
	}

	values, err := formValues(r)
	if err != nil {
		badBody(w, r)
		return
	}

	form := workTimeFormFrom(values)
	in, fieldErrors := validation.ValidateWorkTimeForm(form)
	if len(fieldErrors) > 0 {
		response.ValidationFailed(w, fieldErrors, form, middleware.GetRequestID(r.Context()))
		return
	}

	if _, err := h.roster.AddWorkTime(r.Context(), manager.UserID, employeeID, in); err != nil {
		rosterError(w, r, err, "add work time")
		return
	}

	redirectToDashboard(w, r, "Work time added")
}

// EditForm handles GET /edit_worktime/{worktimeID} and returns the stored values.
func (h *WorkTimeHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	manager, ok := currentManager(w, r)
	if !ok {
		return
	}
	workTimeID, ok := pathID(w, r, "worktimeID")
	if !ok {
		return
	}

	wt, err := h.roster.WorkTimeOwnedBy(r.Context(), manager.UserID, workTimeID)
	if err != nil {
		rosterError(w, r, err, "load work time")
		return
	}

	current := toWorkTimeResponse(wt)
	response.Success(w, http.StatusOK, workTimeFormResponse{
		Employee:  employeeResponse{ID: wt.EmployeeID, Name: wt.EmployeeName},
		WorkTime:  &current,
		Values:    validation.FormFromWorkTime(wt),
		Statuses:  worktime.Statuses,
		CSRFToken: csrfToken(r),
	}, middleware.GetRequestID(r.Context()))
}

// Edit handles POST /edit_worktime/{worktimeID}.
func (h *WorkTimeHandler) Edit(w http.ResponseWriter, r *http.Request) {
	manager, ok := currentManager(w, r)
	if !ok {
		return
	}
	workTimeID, ok := pathID(w, r, "worktimeID")
	if !ok {
		return
	}

	if _, err := h.roster.WorkTimeOwnedBy(r.Context(), manager.UserID, workTimeID); err != nil {
		rosterError(w, r, err, "load work time")
		return
	}

	values, err := formValues(r)
	if err != nil {
		badBody(w, r)
		return
	}

	form := workTimeFormFrom(values)
	in, fieldErrors := validation.ValidateWorkTimeForm(form)
	if len(fieldErrors) > 0 {
		response.ValidationFailed(w, fieldErrors, form, middleware.GetRequestID(r.Context()))
		return
	}

	if _, err := h.roster.EditWorkTime(r.Context(), manager.UserID, workTimeID, in); err != nil {
		rosterError(w, r, err, "edit work time")
		return
	}

	redirectToDashboard(w, r, "Work time updated")
}

// Delete handles POST /delete_worktime/{worktimeID}.
func (h *WorkTimeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	manager, ok := currentManager(w, r)
	if !ok {
		return
	}
	workTimeID, ok := pathID(w, r, "worktimeID")
	if !ok {
		return
	}

	if err := h.roster.DeleteWorkTime(r.Context(), manager.UserID, workTimeID); err != nil {
		rosterError(w, r, err, "delete work time")
		return
	}

	redirectToDashboard(w, r, "Work time deleted")
}
