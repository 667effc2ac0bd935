package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/worktrack/worktrack/internal/api/middleware"
	"github.com/worktrack/worktrack/internal/api/response"
	"github.com/worktrack/worktrack/internal/auth"
	"github.com/worktrack/worktrack/internal/roster"
)

var errBadBody = errors.New("malformed request body")

// formValues reads a submission as a urlencoded form, a multipart form or a flat JSON
// object of strings. The body size is capped by middleware.LimitBody.
func formValues(r *http.Request) (map[string]string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/json":
		values := map[string]string{}
		if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
			return nil, errBadBody
		}
		return values, nil
	case "multipart/form-data":
		if err := r.ParseMultipartForm(middleware.MaxBodyBytes); err != nil {
			return nil, errBadBody
		}
	default:
		if err := r.ParseForm(); err != nil {
			return nil, errBadBody
		}
	}
	values := make(map[string]string, len(r.PostForm))
	for k := range r.PostForm {
		values[k] = r.PostForm.Get(k)
	}
	return values, nil
}

// pathID parses a numeric chi URL parameter. Non-numeric ids are reported like unknown ones.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		notFound(w, r)
		return 0, false
	}
	return id, true
}

// currentManager returns the identity set by the session middleware.
func currentManager(w http.ResponseWriter, r *http.Request) (*auth.Identity, bool) {
	id := middleware.GetIdentity(r.Context())
	if id == nil {
		http.Redirect(w, r, middleware.LoginPath, http.StatusFound)
		return nil, false
	}
	return id, true
}

func csrfToken(r *http.Request) string {
	if sess := middleware.GetSession(r.Context()); sess != nil {
		return sess.CSRFToken
	}
	return ""
}

func notFound(w http.ResponseWriter, r *http.Request) {
	response.Err(w, http.StatusNotFound, "NOT_FOUND", "Not found", middleware.GetRequestID(r.Context()))
}

func badBody(w http.ResponseWriter, r *http.Request) {
	response.Err(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be a form or a JSON object of strings", middleware.GetRequestID(r.Context()))
}

// rosterError maps roster failures to responses. Ownership failures are plain 404s.
func rosterError(w http.ResponseWriter, r *http.Request, err error, action string) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, roster.ErrNotFound):
		notFound(w, r)
	case errors.Is(err, roster.ErrNoTeam):
		response.Err(w, http.StatusConflict, "NO_TEAM", "You do not manage a team", requestID)
	default:
		slog.Error("failed to "+action, "error", err, "requestId", requestID)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", requestID)
	}
}

// redirectToDashboard finishes a successful mutation.
func redirectToDashboard(w http.ResponseWriter, r *http.Request, flash string) {
	setFlash(w, flash)
	http.Redirect(w, r, DashboardPath, http.StatusSeeOther)
}
