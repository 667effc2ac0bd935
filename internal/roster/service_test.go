package roster_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worktrack/worktrack/internal/employee"
	"github.com/worktrack/worktrack/internal/roster"
	"github.com/worktrack/worktrack/internal/worktime"
)

const (
	managerA int64 = 1001
	managerB int64 = 1002
	managerC int64 = 1003 // no team
)

type fixture struct {
	svc   *roster.Service
	store *store

	alice, bob, carol employee.Employee
	aliceDay1         worktime.WorkTime
	carolDay1         worktime.WorkTime
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// newFixture builds two managers: A owns Alice and Bob, B owns Carol.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := newStore()
	teamA := s.addTeam("team1", managerA)
	teamB := s.addTeam("team2", managerB)

	f := &fixture{store: s}
	f.alice = s.addEmployee("Alice", teamA.ID)
	f.bob = s.addEmployee("Bob", teamA.ID)
	f.carol = s.addEmployee("Carol", teamB.ID)
	f.aliceDay1 = s.addWorkTime(worktime.WorkTime{EmployeeID: f.alice.ID, Date: day(2024, 1, 1), Status: worktime.StatusAbsent})
	f.carolDay1 = s.addWorkTime(worktime.WorkTime{EmployeeID: f.carol.ID, Date: day(2024, 1, 1), Status: worktime.StatusIll})

	f.svc = roster.NewService(employeeRepo{s}, workTimeRepo{s}, teamRepo{s}, s)
	return f
}

func employeeIDs(es []employee.Employee) []int64 {
	out := make([]int64, len(es))
	for i, e := range es {
		out[i] = e.ID
	}
	return out
}

func holiday(d time.Time) worktime.Input {
	return worktime.Input{Date: d, Status: worktime.StatusHoliday}
}

// --- EmployeesOwnedBy ---

func TestEmployeesOwnedBy_DisjointAcrossManagers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.svc.EmployeesOwnedBy(ctx, managerA)
	require.NoError(t, err)
	b, err := f.svc.EmployeesOwnedBy(ctx, managerB)
	require.NoError(t, err)

	assert.Equal(t, []int64{f.alice.ID, f.bob.ID}, employeeIDs(a))
	assert.Equal(t, []int64{f.carol.ID}, employeeIDs(b))
	for _, id := range employeeIDs(a) {
		assert.NotContains(t, employeeIDs(b), id)
	}
}

func TestEmployeesOwnedBy_ManagerWithoutTeam(t *testing.T) {
	f := newFixture(t)

	got, err := f.svc.EmployeesOwnedBy(context.Background(), managerC)

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEmployeesOwnedBy_SharedEmployeeVisibleToBoth(t *testing.T) {
	f := newFixture(t)
	teamA, _ := teamRepo{f.store}.GetByManager(context.Background(), managerA)
	teamB, _ := teamRepo{f.store}.GetByManager(context.Background(), managerB)
	shared := f.store.addEmployee("Dana", teamA.ID, teamB.ID)

	a, err := f.svc.EmployeesOwnedBy(context.Background(), managerA)
	require.NoError(t, err)
	b, err := f.svc.EmployeesOwnedBy(context.Background(), managerB)
	require.NoError(t, err)

	assert.Contains(t, employeeIDs(a), shared.ID)
	assert.Contains(t, employeeIDs(b), shared.ID)
}

// --- EmployeeOwnedBy / CanActOn ---

func TestEmployeeOwnedBy(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	e, err := f.svc.EmployeeOwnedBy(ctx, managerA, f.bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bob", e.Name)

	_, err = f.svc.EmployeeOwnedBy(ctx, managerA, f.carol.ID)
	assert.ErrorIs(t, err, roster.ErrNotFound)

	_, err = f.svc.EmployeeOwnedBy(ctx, managerA, 999999)
	assert.ErrorIs(t, err, roster.ErrNotFound)
}

func TestCanActOn(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name       string
		managerID  int64
		employeeID int64
		want       bool
	}{
		{"own employee", managerA, f.alice.ID, true},
		{"other manager's employee", managerA, f.carol.ID, false},
		{"reverse direction", managerB, f.alice.ID, false},
		{"unknown employee", managerB, 424242, false},
		{"manager without team", managerC, f.alice.ID, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := f.svc.CanActOn(ctx, tt.managerID, tt.employeeID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

// --- WorkTimeOwnedBy ---

func TestWorkTimeOwnedBy_ForeignAndMissingAreIndistinguishable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	wt, err := f.svc.WorkTimeOwnedBy(ctx, managerA, f.aliceDay1.ID)
	require.NoError(t, err)
	assert.Equal(t, f.aliceDay1.ID, wt.ID)

	_, errForeign := f.svc.WorkTimeOwnedBy(ctx, managerA, f.carolDay1.ID)
	_, errMissing := f.svc.WorkTimeOwnedBy(ctx, managerA, 987654)

	assert.ErrorIs(t, errForeign, roster.ErrNotFound)
	assert.ErrorIs(t, errMissing, roster.ErrNotFound)
	assert.Equal(t, errMissing.Error(), errForeign.Error())
}

// --- AddEmployee ---

func TestAddEmployee(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	e, err := f.svc.AddEmployee(ctx, managerB, "  Erin ")
	require.NoError(t, err)
	assert.Equal(t, "Erin", e.Name)
	assert.Equal(t, 1, f.store.txCalls)

	ok, err := f.svc.CanActOn(ctx, managerB, e.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.svc.CanActOn(ctx, managerA, e.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAddEmployee_NoTeam(t *testing.T) {
	f := newFixture(t)

	e, err := f.svc.AddEmployee(context.Background(), managerC, "Frank")

	assert.Nil(t, e)
	assert.ErrorIs(t, err, roster.ErrNoTeam)
}

// --- AddWorkTime ---

func TestAddWorkTime(t *testing.T) {
	f := newFixture(t)
	start := &worktime.Clock{Hour: 9}
	end := &worktime.Clock{Hour: 17, Minute: 30}

	wt, err := f.svc.AddWorkTime(context.Background(), managerA, f.bob.ID, worktime.Input{
		Date:      day(2024, 1, 2),
		StartTime: start,
		EndTime:   end,
		Status:    worktime.StatusPresent,
		Comment:   "on site",
	})

	require.NoError(t, err)
	assert.NotZero(t, wt.ID)
	assert.Equal(t, f.bob.ID, wt.EmployeeID)
	assert.Equal(t, "Bob", wt.EmployeeName)
	stored := f.store.workTimes[wt.ID]
	assert.Equal(t, start, stored.StartTime)
	assert.Equal(t, "on site", stored.Comment)
}

func TestAddWorkTime_ForeignEmployeeTouchesNothing(t *testing.T) {
	f := newFixture(t)
	before := len(f.store.workTimes)

	wt, err := f.svc.AddWorkTime(context.Background(), managerA, f.carol.ID, holiday(day(2024, 1, 5)))

	assert.Nil(t, wt)
	assert.ErrorIs(t, err, roster.ErrNotFound)
	assert.Len(t, f.store.workTimes, before)
}

func TestAddWorkTime_StorageFailure(t *testing.T) {
	f := newFixture(t)
	f.store.failCreate = errors.New("disk full")

	_, err := f.svc.AddWorkTime(context.Background(), managerA, f.alice.ID, holiday(day(2024, 1, 5)))

	require.Error(t, err)
	assert.NotErrorIs(t, err, roster.ErrNotFound)
}

// --- EditWorkTime ---

func TestEditWorkTime_ReplacesAllFields(t *testing.T) {
	f := newFixture(t)
	f.store.workTimes[f.aliceDay1.ID] = worktime.WorkTime{
		ID:         f.aliceDay1.ID,
		EmployeeID: f.alice.ID,
		Date:       day(2024, 1, 1),
		StartTime:  &worktime.Clock{Hour: 8},
		EndTime:    &worktime.Clock{Hour: 16},
		Status:     worktime.StatusPresent,
		Comment:    "old",
	}

	wt, err := f.svc.EditWorkTime(context.Background(), managerA, f.aliceDay1.ID, holiday(day(2024, 1, 9)))

	require.NoError(t, err)
	stored := f.store.workTimes[f.aliceDay1.ID]
	assert.Equal(t, *wt, stored)
	assert.Equal(t, day(2024, 1, 9), stored.Date)
	assert.Nil(t, stored.StartTime)
	assert.Nil(t, stored.EndTime)
	assert.Equal(t, worktime.StatusHoliday, stored.Status)
	assert.Empty(t, stored.Comment)
	assert.Equal(t, f.alice.ID, stored.EmployeeID)
}

func TestEditWorkTime_ForeignIsNotFoundAndUnchanged(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.EditWorkTime(context.Background(), managerA, f.carolDay1.ID, holiday(day(2024, 2, 2)))

	assert.ErrorIs(t, err, roster.ErrNotFound)
	assert.Equal(t, f.carolDay1, f.store.workTimes[f.carolDay1.ID])
}

// --- DeleteWorkTime ---

func TestDeleteWorkTime_ThenFetchIsNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	other := f.store.addWorkTime(worktime.WorkTime{EmployeeID: f.alice.ID, Date: day(2024, 1, 2), Status: worktime.StatusAbsent})

	require.NoError(t, f.svc.DeleteWorkTime(ctx, managerA, f.aliceDay1.ID))

	_, err := f.svc.WorkTimeOwnedBy(ctx, managerA, f.aliceDay1.ID)
	assert.ErrorIs(t, err, roster.ErrNotFound)

	_, err = f.svc.WorkTimeOwnedBy(ctx, managerA, other.ID)
	assert.NoError(t, err, "only the targeted row is removed")
	assert.Contains(t, f.store.workTimes, f.carolDay1.ID)

	assert.ErrorIs(t, f.svc.DeleteWorkTime(ctx, managerA, f.aliceDay1.ID), roster.ErrNotFound)
}

func TestDeleteWorkTime_Foreign(t *testing.T) {
	f := newFixture(t)

	err := f.svc.DeleteWorkTime(context.Background(), managerA, f.carolDay1.ID)

	assert.ErrorIs(t, err, roster.ErrNotFound)
	assert.Contains(t, f.store.workTimes, f.carolDay1.ID)
}

// --- Dashboard ---

func TestDashboard(t *testing.T) {
	f := newFixture(t)
	bob3 := f.store.addWorkTime(worktime.WorkTime{EmployeeID: f.bob.ID, Date: day(2024, 1, 3), Status: worktime.StatusAbsent})
	bob1 := f.store.addWorkTime(worktime.WorkTime{EmployeeID: f.bob.ID, Date: day(2024, 1, 1), Status: worktime.StatusAbsent})
	alice2 := f.store.addWorkTime(worktime.WorkTime{EmployeeID: f.alice.ID, Date: day(2024, 1, 2), Status: worktime.StatusAbsent})

	d, err := f.svc.Dashboard(context.Background(), managerA)
	require.NoError(t, err)

	assert.Equal(t, []int64{f.alice.ID, f.bob.ID}, employeeIDs(d.Employees))
	require.Len(t, d.Groups, 3)
	assert.Equal(t, "01.01.2024", d.Groups[0].Key)
	assert.Equal(t, "02.01.2024", d.Groups[1].Key)
	assert.Equal(t, "03.01.2024", d.Groups[2].Key)

	first := d.Groups[0].WorkTimes
	require.Len(t, first, 2)
	assert.Equal(t, f.aliceDay1.ID, first[0].ID)
	assert.Equal(t, bob1.ID, first[1].ID)
	assert.Equal(t, alice2.ID, d.Groups[1].WorkTimes[0].ID)
	assert.Equal(t, bob3.ID, d.Groups[2].WorkTimes[0].ID)

	for _, g := range d.Groups {
		for _, wt := range g.WorkTimes {
			assert.NotEqual(t, f.carol.ID, wt.EmployeeID)
		}
	}
}

func TestDashboard_Empty(t *testing.T) {
	f := newFixture(t)

	d, err := f.svc.Dashboard(context.Background(), managerC)

	require.NoError(t, err)
	assert.Empty(t, d.Employees)
	assert.Empty(t, d.Groups)
}
