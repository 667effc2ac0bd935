package ratelimit

import (
	"context"
	"sync"
	"time"
)

const sweepInterval = 5 * time.Minute

type window struct {
	count int
	end   time.Time
}

// Memory is an in-process fixed-window limiter. Counts are per process.
type Memory struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	entries map[string]window
	stopCh  chan struct{}
	once    sync.Once
}

// NewMemory creates a Memory limiter admitting limit requests per key per window and starts
// a goroutine that drops expired keys until Close is called.
func NewMemory(limit int, win time.Duration) *Memory {
	if win <= 0 {
		win = time.Minute
	}
	m := &Memory{
		limit:   limit,
		window:  win,
		now:     time.Now,
		entries: make(map[string]window),
		stopCh:  make(chan struct{}),
	}
	go m.sweepLoop()
	return m
}

// Allow records a request for key and reports whether it is within the limit.
func (m *Memory) Allow(_ context.Context, key string) Decision {
	if m.limit <= 0 {
		return Decision{Allowed: true}
	}
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.entries[key]
	if !ok || !now.Before(w.end) {
		w = window{count: 1, end: now.Add(m.window)}
		m.entries[key] = w
		return Decision{Allowed: true, Count: 1, ResetAt: w.end}
	}
	if w.count >= m.limit {
		return Decision{Allowed: false, Count: w.count, ResetAt: w.end}
	}
	w.count++
	m.entries[key] = w
	return Decision{Allowed: true, Count: w.count, ResetAt: w.end}
}

func (m *Memory) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			m.sweep(m.now())
		case <-m.stopCh:
			return
		}
	}
}

func (m *Memory) sweep(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, w := range m.entries {
		if !now.Before(w.end) {
			delete(m.entries, key)
		}
	}
}

// Close stops the sweep goroutine.
func (m *Memory) Close() error {
	m.once.Do(func() { close(m.stopCh) })
	return nil
}
