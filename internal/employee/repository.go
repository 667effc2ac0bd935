package employee

import (
	"context"
	"errors"
)

// ErrEmployeeNotFound is returned when an employee does not exist or is not in any of the
// manager's teams.
var ErrEmployeeNotFound = errors.New("employee not found")

// Repository provides manager-scoped access to the employee and team_employee tables.
type Repository interface {
	ListByManager(ctx context.Context, managerID int64) ([]Employee, error)
	GetByManager(ctx context.Context, managerID, employeeID int64) (*Employee, error)
	// CreateInTeam inserts the employee and its membership row. Callers run it inside a
	// transaction so both rows land together.
	CreateInTeam(ctx context.Context, teamID int64, e *Employee) error
}
