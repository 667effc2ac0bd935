package middleware

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/worktrack/worktrack/internal/api/response"
	"github.com/worktrack/worktrack/internal/ratelimit"
)

// RateLimit is middleware that limits requests per client IP under the given scope.
// Requests over the limit get 429 with a Retry-After header.
func RateLimit(limiter ratelimit.Limiter, scope string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d := limiter.Allow(r.Context(), scope+":"+clientKey(r))
			if !d.Allowed {
				retry := int(time.Until(d.ResetAt).Seconds()) + 1
				if retry < 1 {
					retry = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(retry))
				response.Err(w, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests, please try again later", GetRequestID(r.Context()))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if host == "" {
		host = "unknown"
	}
	return "ip:" + host
}
