package employee

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/worktrack/worktrack/internal/database"
)

// PostgresRepository implements Repository on top of a pgx pool.
type PostgresRepository struct {
	pool database.Queryer
}

// NewRepository creates a new Repository backed by the given connection pool.
func NewRepository(pool database.Queryer) Repository {
	return &PostgresRepository{pool: pool}
}

// ListByManager returns every employee in any team owned by managerID, ordered by name.
func (r *PostgresRepository) ListByManager(ctx context.Context, managerID int64) ([]Employee, error) {
	query := `
		SELECT DISTINCT e.id, e.name
		FROM employee e
		JOIN team_employee te ON te.employee_id = e.id
		JOIN team t ON t.id = te.team_id
		WHERE t.manager_id = $1
		ORDER BY e.name, e.id`

	q := database.QueryerFrom(ctx, r.pool)
	rows, err := q.Query(ctx, query, managerID)
	if err != nil {
		return nil, fmt.Errorf("querying employees: %w", err)
	}

	employees, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Employee, error) {
		var e Employee
		err := row.Scan(&e.ID, &e.Name)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning employees: %w", err)
	}

	return employees, nil
}

// GetByManager returns the employee only if it belongs to one of managerID's teams.
func (r *PostgresRepository) GetByManager(ctx context.Context, managerID, employeeID int64) (*Employee, error) {
	query := `
		SELECT e.id, e.name
		FROM employee e
		JOIN team_employee te ON te.employee_id = e.id
		JOIN team t ON t.id = te.team_id
		WHERE t.manager_id = $1 AND e.id = $2
		LIMIT 1`

	var e Employee
	q := database.QueryerFrom(ctx, r.pool)
	err := q.QueryRow(ctx, query, managerID, employeeID).Scan(&e.ID, &e.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("querying employee: %w", err)
	}

	return &e, nil
}

// CreateInTeam inserts a new employee and adds it to teamID.
func (r *PostgresRepository) CreateInTeam(ctx context.Context, teamID int64, e *Employee) error {
	q := database.QueryerFrom(ctx, r.pool)

	err := q.QueryRow(ctx, `INSERT INTO employee (name) VALUES ($1) RETURNING id`, e.Name).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("inserting employee: %w", err)
	}

	_, err = q.Exec(ctx, `INSERT INTO team_employee (team_id, employee_id) VALUES ($1, $2)`, teamID, e.ID)
	if err != nil {
		return fmt.Errorf("inserting team membership: %w", err)
	}

	return nil
}
