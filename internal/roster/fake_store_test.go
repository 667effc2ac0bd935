package roster_test

import (
	"context"
	"sort"

	"github.com/worktrack/worktrack/internal/employee"
	"github.com/worktrack/worktrack/internal/team"
	"github.com/worktrack/worktrack/internal/worktime"
)

// store is an in-memory stand-in for the team, employee and work_time tables.
type store struct {
	teams      map[int64]team.Team
	employees  map[int64]employee.Employee
	membership map[int64][]int64 // employee id -> team ids
	workTimes  map[int64]worktime.WorkTime
	nextID     int64

	failCreate error
	txCalls    int
}

func newStore() *store {
	return &store{
		teams:      make(map[int64]team.Team),
		employees:  make(map[int64]employee.Employee),
		membership: make(map[int64][]int64),
		workTimes:  make(map[int64]worktime.WorkTime),
	}
}

func (s *store) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *store) addTeam(name string, managerID int64) team.Team {
	t := team.Team{ID: s.id(), Name: name, ManagerID: managerID}
	s.teams[t.ID] = t
	return t
}

func (s *store) addEmployee(name string, teamIDs ...int64) employee.Employee {
	e := employee.Employee{ID: s.id(), Name: name}
	s.employees[e.ID] = e
	s.membership[e.ID] = teamIDs
	return e
}

func (s *store) addWorkTime(wt worktime.WorkTime) worktime.WorkTime {
	wt.ID = s.id()
	s.workTimes[wt.ID] = wt
	return wt
}

func (s *store) owns(managerID, employeeID int64) bool {
	for _, tid := range s.membership[employeeID] {
		if s.teams[tid].ManagerID == managerID {
			return true
		}
	}
	return false
}

// --- team.Repository ---

type teamRepo struct{ *store }

func (r teamRepo) Create(_ context.Context, t *team.Team) error {
	*t = r.addTeam(t.Name, t.ManagerID)
	return nil
}

func (r teamRepo) GetByManager(_ context.Context, managerID int64) (*team.Team, error) {
	for _, t := range r.teams {
		if t.ManagerID == managerID {
			return &t, nil
		}
	}
	return nil, team.ErrTeamNotFound
}

// --- employee.Repository ---

type employeeRepo struct{ *store }

func (r employeeRepo) ListByManager(_ context.Context, managerID int64) ([]employee.Employee, error) {
	out := []employee.Employee{}
	for id, e := range r.employees {
		if r.owns(managerID, id) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r employeeRepo) GetByManager(_ context.Context, managerID, employeeID int64) (*employee.Employee, error) {
	e, ok := r.employees[employeeID]
	if !ok || !r.owns(managerID, employeeID) {
		return nil, employee.ErrEmployeeNotFound
	}
	return &e, nil
}

func (r employeeRepo) CreateInTeam(_ context.Context, teamID int64, e *employee.Employee) error {
	*e = r.addEmployee(e.Name, teamID)
	return nil
}

// --- worktime.Repository ---

type workTimeRepo struct{ *store }

func (r workTimeRepo) ListByEmployees(_ context.Context, employeeIDs []int64) ([]worktime.WorkTime, error) {
	out := []worktime.WorkTime{}
	for _, eid := range employeeIDs {
		var rows []worktime.WorkTime
		for _, wt := range r.workTimes {
			if wt.EmployeeID == eid {
				rows = append(rows, wt)
			}
		}
		sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
		out = append(out, rows...)
	}
	return out, nil
}

func (r workTimeRepo) GetByID(_ context.Context, id int64) (*worktime.WorkTime, error) {
	wt, ok := r.workTimes[id]
	if !ok {
		return nil, worktime.ErrWorkTimeNotFound
	}
	return &wt, nil
}

func (r workTimeRepo) Create(_ context.Context, wt *worktime.WorkTime) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	*wt = r.addWorkTime(*wt)
	return nil
}

func (r workTimeRepo) Update(_ context.Context, wt *worktime.WorkTime) error {
	if _, ok := r.workTimes[wt.ID]; !ok {
		return worktime.ErrWorkTimeNotFound
	}
	r.workTimes[wt.ID] = *wt
	return nil
}

func (r workTimeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.workTimes[id]; !ok {
		return worktime.ErrWorkTimeNotFound
	}
	delete(r.workTimes, id)
	return nil
}

func (r workTimeRepo) ListAll(ctx context.Context) ([]worktime.WorkTime, error) {
	ids := make([]int64, 0, len(r.employees))
	for id := range r.employees {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return r.ListByEmployees(ctx, ids)
}

// --- database.Transactor ---

func (s *store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txCalls++
	return fn(ctx)
}
