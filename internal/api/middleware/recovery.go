package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/worktrack/worktrack/internal/api/response"
)

// Recovery turns a handler panic into a logged 500. http.ErrAbortHandler is re-raised so
// net/http can abort the connection quietly.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(rec)
			}

			requestID := GetRequestID(r.Context())
			slog.Error("panic recovered",
				"error", rec,
				"method", r.Method,
				"path", r.URL.Path,
				"requestId", requestID,
				"stack", string(debug.Stack()),
			)
			response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", requestID)
		}()
		next.ServeHTTP(w, r)
	})
}
