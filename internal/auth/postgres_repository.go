package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/worktrack/worktrack/internal/database"
)

// PostgresRepository implements UserRepository on top of a pgx pool.
type PostgresRepository struct {
	pool database.Queryer
}

// NewRepository creates a new UserRepository backed by the given connection pool.
func NewRepository(pool database.Queryer) UserRepository {
	return &PostgresRepository{pool: pool}
}

// Create inserts a new user record.
func (r *PostgresRepository) Create(ctx context.Context, u *User) error {
	query := `
		INSERT INTO users (username, password)
		VALUES ($1, $2)
		RETURNING id`

	q := database.QueryerFrom(ctx, r.pool)
	err := q.QueryRow(ctx, query, u.Username, u.PasswordHash).Scan(&u.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateUsername
		}
		return fmt.Errorf("inserting user: %w", err)
	}

	return nil
}

// GetByID retrieves a single user by id.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	query := `
		SELECT id, username, password
		FROM users
		WHERE id = $1`

	return r.scanOne(ctx, query, id)
}

// GetByUsername retrieves a single user by username.
func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	query := `
		SELECT id, username, password
		FROM users
		WHERE username = $1`

	return r.scanOne(ctx, query, username)
}

// CountAll returns the total number of users in the table.
func (r *PostgresRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	q := database.QueryerFrom(ctx, r.pool)
	err := q.QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return count, nil
}

func (r *PostgresRepository) scanOne(ctx context.Context, query string, args ...any) (*User, error) {
	var u User
	q := database.QueryerFrom(ctx, r.pool)
	err := q.QueryRow(ctx, query, args...).Scan(&u.ID, &u.Username, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("querying user: %w", err)
	}
	return &u, nil
}
