package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/worktrack/worktrack/internal/api/middleware"
	"github.com/worktrack/worktrack/internal/auth"
	"github.com/worktrack/worktrack/internal/employee"
	"github.com/worktrack/worktrack/internal/roster"
	"github.com/worktrack/worktrack/internal/worktime"
)

const testManagerID int64 = 1

// mockRoster implements handler.RosterService for testing.
type mockRoster struct {
	employeeOwnedByFn func(ctx context.Context, managerID, employeeID int64) (*employee.Employee, error)
	workTimeOwnedByFn func(ctx context.Context, managerID, workTimeID int64) (*worktime.WorkTime, error)
	addEmployeeFn     func(ctx context.Context, managerID int64, name string) (*employee.Employee, error)
	addWorkTimeFn     func(ctx context.Context, managerID, employeeID int64, in worktime.Input) (*worktime.WorkTime, error)
	editWorkTimeFn    func(ctx context.Context, managerID, workTimeID int64, in worktime.Input) (*worktime.WorkTime, error)
	deleteWorkTimeFn  func(ctx context.Context, managerID, workTimeID int64) error
	dashboardFn       func(ctx context.Context, managerID int64) (*roster.Dashboard, error)
}

func (m *mockRoster) EmployeeOwnedBy(ctx context.Context, managerID, employeeID int64) (*employee.Employee, error) {
	return m.employeeOwnedByFn(ctx, managerID, employeeID)
}

func (m *mockRoster) WorkTimeOwnedBy(ctx context.Context, managerID, workTimeID int64) (*worktime.WorkTime, error) {
	return m.workTimeOwnedByFn(ctx, managerID, workTimeID)
}

func (m *mockRoster) AddEmployee(ctx context.Context, managerID int64, name string) (*employee.Employee, error) {
	return m.addEmployeeFn(ctx, managerID, name)
}

func (m *mockRoster) AddWorkTime(ctx context.Context, managerID, employeeID int64, in worktime.Input) (*worktime.WorkTime, error) {
	return m.addWorkTimeFn(ctx, managerID, employeeID, in)
}

func (m *mockRoster) EditWorkTime(ctx context.Context, managerID, workTimeID int64, in worktime.Input) (*worktime.WorkTime, error) {
	return m.editWorkTimeFn(ctx, managerID, workTimeID, in)
}

func (m *mockRoster) DeleteWorkTime(ctx context.Context, managerID, workTimeID int64) error {
	return m.deleteWorkTimeFn(ctx, managerID, workTimeID)
}

func (m *mockRoster) Dashboard(ctx context.Context, managerID int64) (*roster.Dashboard, error) {
	return m.dashboardFn(ctx, managerID)
}

// ownsEmployee accepts only the given employee for the test manager.
func ownsEmployee(id int64, name string) func(context.Context, int64, int64) (*employee.Employee, error) {
	return func(_ context.Context, managerID, employeeID int64) (*employee.Employee, error) {
		if managerID == testManagerID && employeeID == id {
			return &employee.Employee{ID: id, Name: name}, nil
		}
		return nil, roster.ErrNotFound
	}
}

// ownsWorkTime accepts only the given work-time for the test manager.
func ownsWorkTime(wt worktime.WorkTime) func(context.Context, int64, int64) (*worktime.WorkTime, error) {
	return func(_ context.Context, managerID, workTimeID int64) (*worktime.WorkTime, error) {
		if managerID == testManagerID && workTimeID == wt.ID {
			c := wt
			return &c, nil
		}
		return nil, roster.ErrNotFound
	}
}

// signedIn attaches the manager identity, a session, and chi URL params to req.
func signedIn(req *http.Request, params map[string]string) *http.Request {
	ctx := middleware.WithIdentity(req.Context(), &auth.Identity{UserID: testManagerID, Username: "admin"})
	ctx = middleware.WithSession(ctx, &auth.Session{UserID: testManagerID, Username: "admin", CSRFToken: "csrf-tok"})

	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)

	return req.WithContext(ctx)
}

func formRequest(method, target string, values url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func parseEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var env map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func apiError(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	apiErr, ok := parseEnvelope(t, w)["error"].(map[string]any)
	require.True(t, ok, "response should carry an error object")
	return apiErr
}

func detailFields(t *testing.T, apiErr map[string]any) []string {
	t.Helper()
	details, ok := apiErr["details"].([]any)
	require.True(t, ok)
	out := make([]string, 0, len(details))
	for _, d := range details {
		out = append(out, d.(map[string]any)["field"].(string))
	}
	return out
}

func cookieNamed(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
