package api

import (
	"fmt"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/worktrack/worktrack/internal/api/handler"
	"github.com/worktrack/worktrack/internal/api/middleware"
	"github.com/worktrack/worktrack/internal/auth"
	"github.com/worktrack/worktrack/internal/ratelimit"
)

// AuthService verifies credentials and resolves sessions to identities.
type AuthService interface {
	handler.Authenticator
	middleware.IdentityResolver
}

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	DBPinger     handler.DBPinger
	Version      string
	Auth         AuthService
	Sessions     *auth.SessionManager
	Roster       handler.RosterService
	LoginLimiter ratelimit.Limiter
	Production   bool
	OpenAPISpec  []byte
}

// NewRouter creates and configures a Chi router with all middleware and routes.
func NewRouter(deps RouterDeps) (*chi.Mux, error) {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery)
	r.Use(chimiddleware.Logger)
	r.Use(middleware.SecurityHeaders(deps.Production))
	r.Use(middleware.LimitBody(middleware.MaxBodyBytes))

	healthHandler := handler.NewHealthHandler(deps.DBPinger, deps.Version)
	r.Get("/health", healthHandler.ServeHTTP)

	if len(deps.OpenAPISpec) > 0 {
		openapiHandler, err := handler.NewOpenAPIHandler(deps.OpenAPISpec)
		if err != nil {
			return nil, fmt.Errorf("building openapi handler: %w", err)
		}
		r.Get("/openapi.json", openapiHandler.ServeHTTP)
	}

	authHandler := handler.NewAuthHandler(deps.Auth, deps.Sessions)
	r.Get("/", authHandler.Index)

	login := r.With()
	if deps.LoginLimiter != nil {
		login = r.With(middleware.RateLimit(deps.LoginLimiter, "login"))
	}
	login = login.With(middleware.RequireLoginCSRF(deps.Sessions))
	login.Get("/login", authHandler.LoginForm)
	login.Post("/login", authHandler.Login)

	dashboardHandler := handler.NewDashboardHandler(deps.Roster)
	employeeHandler := handler.NewEmployeeHandler(deps.Roster)
	workTimeHandler := handler.NewWorkTimeHandler(deps.Roster)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession(deps.Sessions, deps.Auth))
		r.Use(middleware.RequireCSRF)

		r.Get("/logout", authHandler.Logout)
		r.Get("/dashboard", dashboardHandler.ServeHTTP)

		r.Get("/add_employee", employeeHandler.AddForm)
		r.Post("/add_employee", employeeHandler.Add)

		r.Get("/add_worktime/{employeeID}", workTimeHandler.AddForm)
		r.Post("/add_worktime/{employeeID}", workTimeHandler.Add)
		r.Get("/edit_worktime/{worktimeID}", workTimeHandler.EditForm)
		r.Post("/edit_worktime/{worktimeID}", workTimeHandler.Edit)
		r.Post("/delete_worktime/{worktimeID}", workTimeHandler.Delete)
	})

	return r, nil
}
