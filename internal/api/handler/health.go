package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/worktrack/worktrack/internal/api/middleware"
	"github.com/worktrack/worktrack/internal/api/response"
)

const healthPingTimeout = 2 * time.Second

// DBPinger reports whether the database is reachable.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles the GET /health endpoint.
type HealthHandler struct {
	db      DBPinger
	version string
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db DBPinger, version string) *HealthHandler {
	return &HealthHandler{
		db:      db,
		version: version,
	}
}

type databaseStatus struct {
	Connected bool `json:"connected"`
}

type healthData struct {
	Status   string         `json:"status"`
	Version  string         `json:"version"`
	Database databaseStatus `json:"database"`
}

// ServeHTTP handles the health check request. An unreachable database reports "degraded"
// with 503.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()

	connected := h.db != nil && h.db.Ping(ctx) == nil

	status, code := "healthy", http.StatusOK
	if !connected {
		status, code = "degraded", http.StatusServiceUnavailable
	}

	response.Success(w, code, healthData{
		Status:   status,
		Version:  h.version,
		Database: databaseStatus{Connected: connected},
	}, requestID)
}
