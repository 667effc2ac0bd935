package middleware

import "net/http"

// MaxBodyBytes caps every request body.
const MaxBodyBytes = 1 << 20

// LimitBody caps the request body at n bytes. It must run before anything that reads the
// body, including the CSRF checks.
func LimitBody(n int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, n)
			next.ServeHTTP(w, r)
		})
	}
}
