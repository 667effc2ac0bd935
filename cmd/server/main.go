package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	specpkg "github.com/worktrack/worktrack/api"
	"github.com/worktrack/worktrack/internal/api"
	"github.com/worktrack/worktrack/internal/auth"
	"github.com/worktrack/worktrack/internal/config"
	"github.com/worktrack/worktrack/internal/database"
	"github.com/worktrack/worktrack/internal/employee"
	"github.com/worktrack/worktrack/internal/ratelimit"
	"github.com/worktrack/worktrack/internal/roster"
	"github.com/worktrack/worktrack/internal/team"
	"github.com/worktrack/worktrack/internal/worktime"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.LogLevel)

	if err := run(cfg); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.AutoMigrate {
		if err := database.Migrate(ctx, cfg.DatabaseURL, "up", 0); err != nil {
			return err
		}
	}

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	pool := db.Pool()
	txm := database.NewTxManager(pool)
	userRepo := auth.NewRepository(pool)
	teamRepo := team.NewRepository(pool)
	employeeRepo := employee.NewRepository(pool)
	workTimeRepo := worktime.NewRepository(pool)

	authService := auth.NewService(userRepo, teamRepo, txm, cfg.BcryptCost)
	if cfg.SeedDemoManagers {
		created, err := authService.BootstrapManagers(ctx)
		if err != nil {
			return fmt.Errorf("seeding demo managers: %w", err)
		}
		if created > 0 {
			slog.Warn("seeded demo managers with the default password; change it before exposing the service", "count", created)
		}
	}

	limiter, err := newLoginLimiter(ctx, cfg)
	if err != nil {
		return err
	}
	defer limiter.Close()

	router, err := api.NewRouter(api.RouterDeps{
		DBPinger:     db,
		Version:      cfg.Version,
		Auth:         authService,
		Sessions:     auth.NewSessionManager(cfg.SecretKey, cfg.SessionTTL, cfg.IsProduction()),
		Roster:       roster.NewService(employeeRepo, workTimeRepo, teamRepo, txm),
		LoginLimiter: limiter,
		Production:   cfg.IsProduction(),
		OpenAPISpec:  specpkg.OpenAPISpec,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting worktrack server", "port", cfg.Port, "version", cfg.Version, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down server")
	case err := <-serverErr:
		return fmt.Errorf("serving http: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

// newLoginLimiter uses Redis when configured so the limit holds across replicas.
func newLoginLimiter(ctx context.Context, cfg *config.Config) (ratelimit.Limiter, error) {
	if cfg.RedisAddr == "" {
		return ratelimit.NewMemory(cfg.LoginRateLimit, cfg.LoginRateWindow), nil
	}
	rl, err := ratelimit.DialRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.LoginRateLimit, cfg.LoginRateWindow)
	if err != nil {
		return nil, fmt.Errorf("connecting rate limit redis: %w", err)
	}
	slog.Info("login rate limit backed by redis", "addr", cfg.RedisAddr)
	return rl, nil
}

func setupLogger(level string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}
