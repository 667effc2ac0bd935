package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/worktrack/worktrack/internal/api/middleware"
	"github.com/worktrack/worktrack/internal/api/response"
	"github.com/worktrack/worktrack/internal/api/validation"
	"github.com/worktrack/worktrack/internal/auth"
)

// DashboardPath is where successful logins and mutations land.
const DashboardPath = "/dashboard"

// Authenticator verifies manager credentials.
type Authenticator interface {
	Verify(ctx context.Context, username, password string) (*auth.Identity, error)
}

// AuthHandler handles login and logout.
type AuthHandler struct {
	auth     Authenticator
	sessions *auth.SessionManager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(a Authenticator, sessions *auth.SessionManager) *AuthHandler {
	return &AuthHandler{auth: a, sessions: sessions}
}

type formDescription struct {
	Fields    []string `json:"fields"`
	CSRFToken string   `json:"csrfToken,omitempty"`
}

// Index handles GET /.
func (h *AuthHandler) Index(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, middleware.LoginPath, http.StatusFound)
}

// LoginForm handles GET /login. It hands out the pre-session CSRF token that POST /login
// must echo back.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	token, err := h.sessions.IssueLoginToken(w)
	if err != nil {
		slog.Error("failed to issue login token", "error", err, "requestId", requestID)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", requestID)
		return
	}

	response.Success(w, http.StatusOK, formDescription{
		Fields:    []string{"username", "password"},
		CSRFToken: token,
	}, requestID)
}

// Login handles POST /login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	values, err := formValues(r)
	if err != nil {
		badBody(w, r)
		return
	}

	form := validation.LoginForm{Username: values["username"], Password: values["password"]}
	if fieldErrors := validation.ValidateLoginForm(form); len(fieldErrors) > 0 {
		response.ValidationFailed(w, fieldErrors, map[string]string{"username": form.Username}, requestID)
		return
	}

	identity, err := h.auth.Verify(r.Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			response.Err(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials", requestID)
			return
		}
		slog.Error("failed to verify credentials", "error", err, "requestId", requestID)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", requestID)
		return
	}

	if _, err := h.sessions.Issue(w, identity); err != nil {
		slog.Error("failed to issue session", "error", err, "requestId", requestID)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", requestID)
		return
	}

	h.sessions.ClearLoginToken(w)

	slog.Info("manager logged in", "userId", identity.UserID, "requestId", requestID)
	http.Redirect(w, r, DashboardPath, http.StatusSeeOther)
}

// Logout handles GET /logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w)
	http.Redirect(w, r, middleware.LoginPath, http.StatusFound)
}
