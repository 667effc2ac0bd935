package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/worktrack/worktrack/internal/api/response"
	"github.com/worktrack/worktrack/internal/auth"
)

const (
	// CSRFHeader carries the token for non-form submissions.
	CSRFHeader = "X-CSRF-Token"
	// CSRFField carries the token in form submissions.
	CSRFField = "csrf_token"
)

// RequireCSRF rejects state-changing requests whose token does not match the session's.
// It must run after RequireSession.
func RequireCSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if safeMethod(r.Method) {
			next.ServeHTTP(w, r)
			return
		}

		var want string
		if sess := GetSession(r.Context()); sess != nil {
			want = sess.CSRFToken
		}
		if !tokenMatches(r, want) {
			csrfInvalid(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireLoginCSRF protects the login form before a session exists. The expected token is
// the one sealed in the login cookie handed out with the form.
func RequireLoginCSRF(sessions *auth.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if safeMethod(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			want, err := sessions.LoginToken(r)
			if err != nil || !tokenMatches(r, want) {
				csrfInvalid(w, r)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func safeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

func tokenMatches(r *http.Request, want string) bool {
	if want == "" {
		return false
	}
	token := r.Header.Get(CSRFHeader)
	if token == "" {
		token = r.PostFormValue(CSRFField)
	}
	return token != "" && subtle.ConstantTimeCompare([]byte(token), []byte(want)) == 1
}

func csrfInvalid(w http.ResponseWriter, r *http.Request) {
	response.Err(w, http.StatusForbidden, "CSRF_INVALID", "CSRF token missing or invalid", GetRequestID(r.Context()))
}
