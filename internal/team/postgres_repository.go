package team

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

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

// Create inserts a new team record.
func (r *PostgresRepository) Create(ctx context.Context, t *Team) error {
	query := `
		INSERT INTO team (name, manager_id)
		VALUES ($1, $2)
		RETURNING id`

	q := database.QueryerFrom(ctx, r.pool)
	err := q.QueryRow(ctx, query, t.Name, t.ManagerID).Scan(&t.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if pgErr.ConstraintName == "team_manager_id_key" {
				return ErrManagerHasTeam
			}
			return ErrDuplicateTeamName
		}
		return fmt.Errorf("inserting team: %w", err)
	}

	return nil
}

// GetByManager retrieves the team owned by the given manager.
func (r *PostgresRepository) GetByManager(ctx context.Context, managerID int64) (*Team, error) {
	query := `
		SELECT id, name, manager_id
		FROM team
		WHERE manager_id = $1`

	var t Team
	q := database.QueryerFrom(ctx, r.pool)
	err := q.QueryRow(ctx, query, managerID).Scan(&t.ID, &t.Name, &t.ManagerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("querying team: %w", err)
	}

	return &t, nil
}
