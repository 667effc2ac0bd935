package handler

import (
	"net/http"

	"github.com/worktrack/worktrack/internal/api/middleware"
	"github.com/worktrack/worktrack/internal/api/response"
)

// DashboardHandler handles GET /dashboard.
type DashboardHandler struct {
	roster RosterService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(r RosterService) *DashboardHandler {
	return &DashboardHandler{roster: r}
}

type managerResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type dateGroupResponse struct {
	Date      string             `json:"date"`
	WorkTimes []workTimeResponse `json:"workTimes"`
}

type dashboardResponse struct {
	Manager         managerResponse     `json:"manager"`
	Employees       []employeeResponse  `json:"employees"`
	WorkTimesByDate []dateGroupResponse `json:"workTimesByDate"`
	CSRFToken       string              `json:"csrfToken"`
}

// ServeHTTP lists the manager's employees and their work-times grouped by date.
func (h *DashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	manager, ok := currentManager(w, r)
	if !ok {
		return
	}

	d, err := h.roster.Dashboard(r.Context(), manager.UserID)
	if err != nil {
		rosterError(w, r, err, "load dashboard")
		return
	}

	resp := dashboardResponse{
		Manager:         managerResponse{ID: manager.UserID, Username: manager.Username},
		Employees:       make([]employeeResponse, 0, len(d.Employees)),
		WorkTimesByDate: make([]dateGroupResponse, 0, len(d.Groups)),
		CSRFToken:       csrfToken(r),
	}
	for _, e := range d.Employees {
		resp.Employees = append(resp.Employees, toEmployeeResponse(e))
	}
	for _, g := range d.Groups {
		group := dateGroupResponse{Date: g.Key, WorkTimes: make([]workTimeResponse, 0, len(g.WorkTimes))}
		for i := range g.WorkTimes {
			group.WorkTimes = append(group.WorkTimes, toWorkTimeResponse(&g.WorkTimes[i]))
		}
		resp.WorkTimesByDate = append(resp.WorkTimesByDate, group)
	}

	response.SuccessWithFlash(w, http.StatusOK, resp, popFlash(w, r), requestID)
}
