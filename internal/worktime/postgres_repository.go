package worktime

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/worktrack/worktrack/internal/database"
)

const selectColumns = `
		SELECT w.id, w.employee_id, e.name, w.date, w.start_time, w.end_time,
			COALESCE(w.status, ''), COALESCE(w.comment, '')
		FROM work_time w
		JOIN employee e ON e.id = w.employee_id`

// PostgresRepository implements Repository on top of a pgx pool.
type PostgresRepository struct {
	pool database.Queryer
}

// NewRepository creates a new Repository backed by the given connection pool.
func NewRepository(pool database.Queryer) Repository {
	return &PostgresRepository{pool: pool}
}

// ListByEmployees returns the work-times of the given employees, grouped by employee in the
// order of employeeIDs and by insertion within each employee.
func (r *PostgresRepository) ListByEmployees(ctx context.Context, employeeIDs []int64) ([]WorkTime, error) {
	if len(employeeIDs) == 0 {
		return []WorkTime{}, nil
	}

	query := selectColumns + `
		WHERE w.employee_id = ANY($1)
		ORDER BY array_position($1, w.employee_id), w.id`

	return r.list(ctx, query, employeeIDs)
}

// ListAll returns every work-time row ordered by id.
func (r *PostgresRepository) ListAll(ctx context.Context) ([]WorkTime, error) {
	return r.list(ctx, selectColumns+`
		ORDER BY w.id`)
}

// GetByID retrieves a single work-time by id.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*WorkTime, error) {
	q := database.QueryerFrom(ctx, r.pool)
	row := q.QueryRow(ctx, selectColumns+`
		WHERE w.id = $1`, id)

	wt, err := scanWorkTime(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWorkTimeNotFound
		}
		return nil, fmt.Errorf("querying work time: %w", err)
	}

	return &wt, nil
}

// Create inserts a new work-time record.
func (r *PostgresRepository) Create(ctx context.Context, wt *WorkTime) error {
	query := `
		INSERT INTO work_time (employee_id, date, start_time, end_time, status, comment)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	q := database.QueryerFrom(ctx, r.pool)
	err := q.QueryRow(ctx, query,
		wt.EmployeeID,
		pgtype.Date{Time: wt.Date, Valid: true},
		clockToPG(wt.StartTime),
		clockToPG(wt.EndTime),
		string(wt.Status),
		wt.Comment,
	).Scan(&wt.ID)
	if err != nil {
		return fmt.Errorf("inserting work time: %w", err)
	}

	return nil
}

// Update replaces every editable field of the record identified by wt.ID.
func (r *PostgresRepository) Update(ctx context.Context, wt *WorkTime) error {
	query := `
		UPDATE work_time
		SET date = $2, start_time = $3, end_time = $4, status = $5, comment = $6
		WHERE id = $1`

	q := database.QueryerFrom(ctx, r.pool)
	tag, err := q.Exec(ctx, query,
		wt.ID,
		pgtype.Date{Time: wt.Date, Valid: true},
		clockToPG(wt.StartTime),
		clockToPG(wt.EndTime),
		string(wt.Status),
		wt.Comment,
	)
	if err != nil {
		return fmt.Errorf("updating work time: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrWorkTimeNotFound
	}

	return nil
}

// Delete permanently removes a work-time record.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	q := database.QueryerFrom(ctx, r.pool)
	tag, err := q.Exec(ctx, `DELETE FROM work_time WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting work time: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrWorkTimeNotFound
	}

	return nil
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]WorkTime, error) {
	q := database.QueryerFrom(ctx, r.pool)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying work times: %w", err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (WorkTime, error) {
		return scanWorkTime(row)
	})
	if err != nil {
		return nil, fmt.Errorf("scanning work times: %w", err)
	}

	return items, nil
}

func scanWorkTime(row pgx.Row) (WorkTime, error) {
	var (
		wt         WorkTime
		start, end pgtype.Time
		status     string
	)
	err := row.Scan(&wt.ID, &wt.EmployeeID, &wt.EmployeeName, &wt.Date, &start, &end, &status, &wt.Comment)
	if err != nil {
		return WorkTime{}, err
	}
	wt.StartTime = clockFromPG(start)
	wt.EndTime = clockFromPG(end)
	wt.Status = Status(status)
	return wt, nil
}
