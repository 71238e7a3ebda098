// Package ratelimit implements a fixed-window request limiter keyed by
// client, used to keep one chatty client from monopolizing the API.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter tracks request counts in fixed windows per key.
type Limiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	limits map[string]*window
}

type window struct {
	count     int
	windowEnd time.Time
}

// NewLimiter creates a limiter allowing limit requests per windowDuration
// for each key.
func NewLimiter(limit int, windowDuration time.Duration) *Limiter {
	return &Limiter{
		limit:  limit,
		window: windowDuration,
		limits: make(map[string]*window),
	}
}

// Allow returns true if the keyed request is within the configured limit.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	win := l.limits[key]
	if win == nil || now.After(win.windowEnd) {
		l.limits[key] = &window{
			count:     1,
			windowEnd: now.Add(l.window),
		}
		return true
	}

	if win.count < l.limit {
		win.count++
		return true
	}

	return false
}

// StartCleanup periodically evicts stale windows to limit memory usage.
func (l *Limiter) StartCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		for range ticker.C {
			l.mu.Lock()
			now := time.Now()
			for key, win := range l.limits {
				if now.After(win.windowEnd.Add(5 * time.Minute)) {
					delete(l.limits, key)
				}
			}
			l.mu.Unlock()
		}
	}()
}
