// Package ratelimit implements a rolling-window counter keyed by client
// identity (here, IP address). The window slides continuously rather than
// resetting on calendar boundaries, and only accepted operations count
// against the quota.
package ratelimit

import (
	"sync"
	"time"
)

// Result describes the outcome of one Allow call.
type Result struct {
	Allowed    bool
	Remaining  int           // quota left in the current window
	Reset      time.Time     // when the oldest counted hit leaves the window
	RetryAfter time.Duration // zero when allowed
}

type Limiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	hits   map[string][]time.Time
	now    func() time.Time
}

// New creates a limiter allowing `limit` accepted operations per key per
// rolling `window`, and starts a janitor that drops idle keys.
func New(limit int, window time.Duration) *Limiter {
	l := NewWithClock(limit, window, time.Now)
	go l.janitor()
	return l
}

// NewWithClock is New with an injectable clock and no janitor goroutine.
func NewWithClock(limit int, window time.Duration, now func() time.Time) *Limiter {
	return &Limiter{
		limit:  limit,
		window: window,
		hits:   make(map[string][]time.Time),
		now:    now,
	}
}

// Allow checks the key's quota and, when there is room, records the hit.
// Rejected calls are not recorded, so a client hammering a full window does
// not push its own reset further out.
func (l *Limiter) Allow(key string) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	recent := l.hits[key][:0]
	for _, t := range l.hits[key] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}

	if len(recent) >= l.limit {
		l.hits[key] = recent
		reset := recent[0].Add(l.window)
		return Result{
			Allowed:    false,
			Remaining:  0,
			Reset:      reset,
			RetryAfter: reset.Sub(now),
		}
	}

	recent = append(recent, now)
	l.hits[key] = recent

	return Result{
		Allowed:   true,
		Remaining: l.limit - len(recent),
		Reset:     recent[0].Add(l.window),
	}
}

// Cleanup drops keys whose every hit has aged out of the window and
// returns how many keys remain.
func (l *Limiter) Cleanup() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.window)
	for key, times := range l.hits {
		live := false
		for _, t := range times {
			if t.After(cutoff) {
				live = true
				break
			}
		}
		if !live {
			delete(l.hits, key)
		}
	}
	return len(l.hits)
}

func (l *Limiter) janitor() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()
	for range ticker.C {
		l.Cleanup()
	}
}
