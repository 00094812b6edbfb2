// Package ratelimit counts requests per key inside a time window.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Memory is a per-process sliding-window limiter.
type Memory struct {
	mu       sync.Mutex
	requests map[string][]time.Time
	limit    int
	window   time.Duration
	now      func() time.Time
	swept    time.Time
}

func NewMemory(limit int, window time.Duration) *Memory {
	return &Memory{
		requests: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
		now:      time.Now,
	}
}

func (m *Memory) Allow(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	cutoff := now.Add(-m.window)
	if now.Sub(m.swept) >= m.window {
		m.sweep(cutoff)
		m.swept = now
	}

	var valid []time.Time
	for _, t := range m.requests[key] {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}

	if len(valid) >= m.limit {
		m.requests[key] = valid
		return false, nil
	}

	m.requests[key] = append(valid, now)
	return true, nil
}

// sweep drops keys whose last hit is older than cutoff.
func (m *Memory) sweep(cutoff time.Time) {
	for key, hits := range m.requests {
		if len(hits) == 0 || !hits[len(hits)-1].After(cutoff) {
			delete(m.requests, key)
		}
	}
}

// Len reports how many keys are tracked.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}
