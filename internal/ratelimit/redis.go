package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "worktrack:ratelimit:"

// Redis is a fixed-window limiter shared by every process using the same Redis.
// Redis errors admit the request and are logged.
type Redis struct {
	client  *redis.Client
	limit   int
	window  time.Duration
	timeout time.Duration
}

// DialRedis connects to Redis, verifies the connection, and returns a limiter.
func DialRedis(ctx context.Context, addr, password string, db, limit int, win time.Duration) (*Redis, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return NewRedis(client, limit, win), nil
}

// NewRedis wraps an existing client.
func NewRedis(client *redis.Client, limit int, win time.Duration) *Redis {
	if win <= 0 {
		win = time.Minute
	}
	return &Redis{
		client:  client,
		limit:   limit,
		window:  win,
		timeout: 250 * time.Millisecond,
	}
}

// Allow increments the counter for key and reports whether it is within the limit.
func (r *Redis) Allow(ctx context.Context, key string) Decision {
	if r.limit <= 0 {
		return Decision{Allowed: true}
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	redisKey := redisKeyPrefix + key
	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.ExpireNX(ctx, redisKey, r.window)
	ttl := pipe.PTTL(ctx, redisKey)
	if _, err := pipe.Exec(ctx); err != nil {
		slog.Error("redis rate limiter error", "op", "exec", "error", err)
		return Decision{Allowed: true}
	}

	remaining := ttl.Val()
	if remaining <= 0 {
		remaining = r.window
	}
	count := int(incr.Val())

	return Decision{
		Allowed: count <= r.limit,
		Count:   count,
		ResetAt: time.Now().Add(remaining),
	}
}

// Close closes the underlying client.
func (r *Redis) Close() error {
	return r.client.Close()
}
