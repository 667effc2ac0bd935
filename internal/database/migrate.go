package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

// Migrate runs a goose command ("up", "status" or "down") against the embedded
// migrations. For "down", a positive target rolls back to that version; otherwise only
// the latest migration is reverted.
func Migrate(ctx context.Context, databaseURL, command string, target int64) error {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("opening sql connection: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("pinging sql connection: %w", err)
	}

	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("configuring goose: %w", err)
	}

	switch command {
	case "up":
		slog.Info("applying migrations")
		if err := goose.UpContext(ctx, db, migrationsDir); err != nil {
			return fmt.Errorf("applying migrations: %w", err)
		}
	case "status":
		if err := goose.StatusContext(ctx, db, migrationsDir); err != nil {
			return fmt.Errorf("migration status: %w", err)
		}
	case "down":
		if target > 0 {
			slog.Info("rolling back migrations", "target", target)
			err = goose.DownToContext(ctx, db, migrationsDir, target)
		} else {
			slog.Info("rolling back latest migration")
			err = goose.DownContext(ctx, db, migrationsDir)
		}
		if err != nil {
			return fmt.Errorf("rolling back migrations: %w", err)
		}
	default:
		return fmt.Errorf("unsupported migrate command %q", command)
	}

	return nil
}
