package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestRedis_UnreachableServerAdmits(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	r := NewRedis(client, 1, time.Minute)
	t.Cleanup(func() { _ = r.Close() })

	for range 3 {
		assert.True(t, r.Allow(context.Background(), "k").Allowed)
	}
}

func TestRedis_ZeroLimitSkipsRedis(t *testing.T) {
	r := NewRedis(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}), 0, time.Minute)
	t.Cleanup(func() { _ = r.Close() })

	d := r.Allow(context.Background(), "k")

	assert.True(t, d.Allowed)
	assert.Zero(t, d.Count)
}

func TestDialRedis_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	r, err := DialRedis(ctx, "127.0.0.1:1", "", 0, 5, time.Minute)

	assert.Nil(t, r)
	assert.Error(t, err)
}
