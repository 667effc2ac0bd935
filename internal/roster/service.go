// Package roster scopes every employee and work-time operation to the signed-in manager.
//
// A manager owns an employee when the employee is a member of a team whose manager_id is the
// manager's user id. Work-times are owned through their employee. Every read and write here
// checks that relation first; a record that exists but is owned by someone else is reported
// exactly like one that does not exist.
package roster

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/worktrack/worktrack/internal/database"
	"github.com/worktrack/worktrack/internal/employee"
	"github.com/worktrack/worktrack/internal/team"
	"github.com/worktrack/worktrack/internal/worktime"
)

// ErrNotFound is returned when the target does not exist or is not owned by the manager.
var ErrNotFound = errors.New("not found")

// ErrNoTeam is returned when a manager without a team tries to add an employee.
var ErrNoTeam = errors.New("manager has no team")

// Dashboard is the manager's roster and their work-times grouped by date.
type Dashboard struct {
	Employees []employee.Employee
	Groups    []worktime.DateGroup
}

// Service applies the ownership filter around the roster repositories.
type Service struct {
	employees employee.Repository
	workTimes worktime.Repository
	teams     team.Repository
	tx        database.Transactor
}

// NewService creates a new roster Service.
func NewService(employees employee.Repository, workTimes worktime.Repository, teams team.Repository, tx database.Transactor) *Service {
	return &Service{
		employees: employees,
		workTimes: workTimes,
		teams:     teams,
		tx:        tx,
	}
}

// EmployeesOwnedBy returns every employee in any team managed by managerID.
func (s *Service) EmployeesOwnedBy(ctx context.Context, managerID int64) ([]employee.Employee, error) {
	employees, err := s.employees.ListByManager(ctx, managerID)
	if err != nil {
		return nil, fmt.Errorf("listing employees: %w", err)
	}
	return employees, nil
}

// EmployeeOwnedBy returns the employee if managerID owns it.
func (s *Service) EmployeeOwnedBy(ctx context.Context, managerID, employeeID int64) (*employee.Employee, error) {
	e, err := s.employees.GetByManager(ctx, managerID, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetching employee: %w", err)
	}
	return e, nil
}

// CanActOn reports whether managerID owns employeeID.
func (s *Service) CanActOn(ctx context.Context, managerID, employeeID int64) (bool, error) {
	_, err := s.EmployeeOwnedBy(ctx, managerID, employeeID)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// WorkTimeOwnedBy returns the work-time if its employee is owned by managerID.
func (s *Service) WorkTimeOwnedBy(ctx context.Context, managerID, workTimeID int64) (*worktime.WorkTime, error) {
	wt, err := s.workTimes.GetByID(ctx, workTimeID)
	if err != nil {
		if errors.Is(err, worktime.ErrWorkTimeNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetching work time: %w", err)
	}

	ok, err := s.CanActOn(ctx, managerID, wt.EmployeeID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}

	return wt, nil
}

// AddEmployee creates an employee in the manager's team.
func (s *Service) AddEmployee(ctx context.Context, managerID int64, name string) (*employee.Employee, error) {
	e := &employee.Employee{Name: strings.TrimSpace(name)}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		t, err := s.teams.GetByManager(ctx, managerID)
		if err != nil {
			if errors.Is(err, team.ErrTeamNotFound) {
				return ErrNoTeam
			}
			return fmt.Errorf("fetching team: %w", err)
		}
		return s.employees.CreateInTeam(ctx, t.ID, e)
	})
	if err != nil {
		return nil, err
	}

	return e, nil
}

// AddWorkTime records a new work-time for an employee owned by managerID.
func (s *Service) AddWorkTime(ctx context.Context, managerID, employeeID int64, in worktime.Input) (*worktime.WorkTime, error) {
	wt := &worktime.WorkTime{EmployeeID: employeeID}
	in.Apply(wt)

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		e, err := s.EmployeeOwnedBy(ctx, managerID, employeeID)
		if err != nil {
			return err
		}
		wt.EmployeeName = e.Name
		return s.workTimes.Create(ctx, wt)
	})
	if err != nil {
		return nil, err
	}

	return wt, nil
}

// EditWorkTime replaces every editable field of an owned work-time.
func (s *Service) EditWorkTime(ctx context.Context, managerID, workTimeID int64, in worktime.Input) (*worktime.WorkTime, error) {
	var wt *worktime.WorkTime

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		wt, err = s.WorkTimeOwnedBy(ctx, managerID, workTimeID)
		if err != nil {
			return err
		}
		in.Apply(wt)
		if err := s.workTimes.Update(ctx, wt); err != nil {
			if errors.Is(err, worktime.ErrWorkTimeNotFound) {
				return ErrNotFound
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return wt, nil
}

// DeleteWorkTime permanently removes an owned work-time.
func (s *Service) DeleteWorkTime(ctx context.Context, managerID, workTimeID int64) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.WorkTimeOwnedBy(ctx, managerID, workTimeID); err != nil {
			return err
		}
		if err := s.workTimes.Delete(ctx, workTimeID); err != nil {
			if errors.Is(err, worktime.ErrWorkTimeNotFound) {
				return ErrNotFound
			}
			return err
		}
		return nil
	})
}

// Dashboard returns the manager's employees and their work-times grouped by date.
func (s *Service) Dashboard(ctx context.Context, managerID int64) (*Dashboard, error) {
	employees, err := s.EmployeesOwnedBy(ctx, managerID)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, len(employees))
	for i, e := range employees {
		ids[i] = e.ID
	}

	items, err := s.workTimes.ListByEmployees(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("listing work times: %w", err)
	}

	return &Dashboard{
		Employees: employees,
		Groups:    worktime.GroupByDate(items),
	}, nil
}
