package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/worktrack/worktrack/internal/api/response"
	"github.com/worktrack/worktrack/internal/auth"
)

const (
	identityKey contextKey = "identity"
	sessionKey  contextKey = "session"
)

// LoginPath is where unauthenticated requests are sent.
const LoginPath = "/login"

// IdentityResolver loads the live identity behind a session's user id.
type IdentityResolver interface {
	Resolve(ctx context.Context, userID int64) (*auth.Identity, error)
}

// RequireSession is middleware that validates the session cookie and resolves it to an
// Identity. Requests without a valid session are redirected to the login page.
func RequireSession(sessions *auth.SessionManager, resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := sessions.Parse(r)
			if err != nil {
				http.Redirect(w, r, LoginPath, http.StatusFound)
				return
			}

			identity, err := resolver.Resolve(r.Context(), sess.UserID)
			if err != nil {
				if errors.Is(err, auth.ErrUserNotFound) {
					sessions.Clear(w)
					http.Redirect(w, r, LoginPath, http.StatusFound)
					return
				}
				requestID := GetRequestID(r.Context())
				slog.Error("failed to resolve session", "error", err, "requestId", requestID)
				response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Authentication failed", requestID)
				return
			}

			ctx := WithIdentity(r.Context(), identity)
			ctx = WithSession(ctx, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithIdentity returns a copy of ctx carrying identity.
func WithIdentity(ctx context.Context, identity *auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// WithSession returns a copy of ctx carrying sess.
func WithSession(ctx context.Context, sess *auth.Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

// GetIdentity retrieves the authenticated Identity from the request context.
func GetIdentity(ctx context.Context) *auth.Identity {
	if id, ok := ctx.Value(identityKey).(*auth.Identity); ok {
		return id
	}
	return nil
}

// GetSession retrieves the parsed session from the request context.
func GetSession(ctx context.Context) *auth.Session {
	if s, ok := ctx.Value(sessionKey).(*auth.Session); ok {
		return s
	}
	return nil
}
