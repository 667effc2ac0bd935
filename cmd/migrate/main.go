package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/worktrack/worktrack/internal/config"
	"github.com/worktrack/worktrack/internal/database"
)

func main() {
	command := flag.String("command", "up", "goose command: up, status or down")
	target := flag.Int64("target", 0, "version to roll back to with -command=down (0 reverts only the latest)")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall timeout")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	databaseURL := config.NormalizeDatabaseURL(os.Getenv("DATABASE_URL"))
	if databaseURL == "" {
		slog.Error("DATABASE_URL is required")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := database.Migrate(ctx, databaseURL, *command, *target); err != nil {
		slog.Error("migration failed", "command", *command, "error", err)
		os.Exit(1)
	}
	slog.Info("migration finished", "command", *command)
}
