// Package ratelimit counts requests per key in fixed windows.
package ratelimit

import (
	"context"
	"time"
)

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed bool
	Count   int
	ResetAt time.Time
}

// Limiter admits at most a fixed number of requests per key within a window.
type Limiter interface {
	Allow(ctx context.Context, key string) Decision
	Close() error
}
