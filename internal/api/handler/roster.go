package handler

import (
	"context"

	"github.com/worktrack/worktrack/internal/employee"
	"github.com/worktrack/worktrack/internal/roster"
	"github.com/worktrack/worktrack/internal/worktime"
)

// RosterService is the manager-scoped roster used by the session handlers.
type RosterService interface {
	EmployeeOwnedBy(ctx context.Context, managerID, employeeID int64) (*employee.Employee, error)
	WorkTimeOwnedBy(ctx context.Context, managerID, workTimeID int64) (*worktime.WorkTime, error)
	AddEmployee(ctx context.Context, managerID int64, name string) (*employee.Employee, error)
	AddWorkTime(ctx context.Context, managerID, employeeID int64, in worktime.Input) (*worktime.WorkTime, error)
	EditWorkTime(ctx context.Context, managerID, workTimeID int64, in worktime.Input) (*worktime.WorkTime, error)
	DeleteWorkTime(ctx context.Context, managerID, workTimeID int64) error
	Dashboard(ctx context.Context, managerID int64) (*roster.Dashboard, error)
}

type employeeResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func toEmployeeResponse(e employee.Employee) employeeResponse {
	return employeeResponse{ID: e.ID, Name: e.Name}
}

type workTimeResponse struct {
	ID           int64   `json:"id"`
	EmployeeID   int64   `json:"employeeId"`
	EmployeeName string  `json:"employeeName,omitempty"`
	Date         string  `json:"date"`
	StartTime    *string `json:"startTime"`
	EndTime      *string `json:"endTime"`
	Status       string  `json:"status"`
	Comment      string  `json:"comment"`
}

func clockString(c *worktime.Clock) *string {
	if c == nil {
		return nil
	}
	s := c.String()
	return &s
}

func toWorkTimeResponse(wt *worktime.WorkTime) workTimeResponse {
	return workTimeResponse{
		ID:           wt.ID,
		EmployeeID:   wt.EmployeeID,
		EmployeeName: wt.EmployeeName,
		Date:         wt.Date.Format("2006-01-02"),
		StartTime:    clockString(wt.StartTime),
		EndTime:      clockString(wt.EndTime),
		Status:       string(wt.Status),
		Comment:      wt.Comment,
	}
}
