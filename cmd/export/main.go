package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/worktrack/worktrack/internal/config"
	"github.com/worktrack/worktrack/internal/database"
	"github.com/worktrack/worktrack/internal/export"
	"github.com/worktrack/worktrack/internal/worktime"
)

func main() {
	formatFlag := flag.String("format", "csv", "output format: csv or xlsx")
	out := flag.String("out", "", "output file (default daily_data_export.<format>)")
	timeout := flag.Duration("timeout", time.Minute, "overall timeout")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	format, err := export.ParseFormat(*formatFlag)
	if err != nil {
		slog.Error("invalid flags", "error", err)
		os.Exit(2)
	}
	path := *out
	if path == "" {
		path = "daily_data_export." + string(format)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	n, err := run(ctx, config.NormalizeDatabaseURL(os.Getenv("DATABASE_URL")), format, path)
	if err != nil {
		slog.Error("export failed", "error", err)
		os.Exit(1)
	}
	slog.Info("data retrieved and saved", "rows", n, "path", path)
}

func run(ctx context.Context, databaseURL string, format export.Format, path string) (int, error) {
	if databaseURL == "" {
		return 0, errors.New("DATABASE_URL is required")
	}

	db, err := database.New(ctx, databaseURL)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	rows, err := worktime.NewRepository(db.Pool()).ListAll(ctx)
	if err != nil {
		return 0, err
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("creating %s: %w", path, err)
	}
	if err := export.Write(f, format, rows); err != nil {
		f.Close()
		return 0, err
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("closing %s: %w", path, err)
	}
	return len(rows), nil
}
