package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func TestAllowWithinLimit(t *testing.T) {
	clock := newFakeClock()
	l := NewWithClock(5, time.Hour, clock.Now)

	for i := 0; i < 5; i++ {
		result := l.Allow("1.2.3.4")
		require.True(t, result.Allowed, "request %d should be allowed", i+1)
		assert.Equal(t, 4-i, result.Remaining)
	}
}

func TestRejectsSixthRequest(t *testing.T) {
	clock := newFakeClock()
	l := NewWithClock(5, time.Hour, clock.Now)

	for i := 0; i < 5; i++ {
		l.Allow("1.2.3.4")
	}

	result := l.Allow("1.2.3.4")
	require.False(t, result.Allowed)
	assert.Equal(t, 0, result.Remaining)
	assert.Equal(t, time.Hour, result.RetryAfter)
	assert.Equal(t, clock.Now().Add(time.Hour), result.Reset)
}

func TestRejectionDoesNotExtendWindow(t *testing.T) {
	clock := newFakeClock()
	l := NewWithClock(5, time.Hour, clock.Now)

	for i := 0; i < 5; i++ {
		l.Allow("1.2.3.4")
	}

	// hammering a full window must not push the reset further out
	clock.Advance(30 * time.Minute)
	result := l.Allow("1.2.3.4")
	require.False(t, result.Allowed)
	assert.Equal(t, 30*time.Minute, result.RetryAfter)
}

func TestWindowRollsOver(t *testing.T) {
	clock := newFakeClock()
	l := NewWithClock(5, time.Hour, clock.Now)

	for i := 0; i < 5; i++ {
		l.Allow("1.2.3.4")
	}
	require.False(t, l.Allow("1.2.3.4").Allowed)

	// once the oldest hit ages out, one slot opens up
	clock.Advance(time.Hour + time.Second)
	result := l.Allow("1.2.3.4")
	assert.True(t, result.Allowed)
}

func TestKeysAreIndependent(t *testing.T) {
	clock := newFakeClock()
	l := NewWithClock(5, time.Hour, clock.Now)

	for i := 0; i < 5; i++ {
		l.Allow("1.2.3.4")
	}
	require.False(t, l.Allow("1.2.3.4").Allowed)

	assert.True(t, l.Allow("5.6.7.8").Allowed)
}

func TestPartialRollover(t *testing.T) {
	clock := newFakeClock()
	l := NewWithClock(3, time.Hour, clock.Now)

	l.Allow("k")
	clock.Advance(20 * time.Minute)
	l.Allow("k")
	clock.Advance(20 * time.Minute)
	l.Allow("k")
	require.False(t, l.Allow("k").Allowed)

	// first hit falls out at t+60m
	clock.Advance(21 * time.Minute)
	assert.True(t, l.Allow("k").Allowed)
	assert.False(t, l.Allow("k").Allowed)
}

func TestCleanupDropsIdleKeys(t *testing.T) {
	clock := newFakeClock()
	l := NewWithClock(5, time.Hour, clock.Now)

	l.Allow("a")
	l.Allow("b")
	assert.Equal(t, 2, l.Cleanup())

	clock.Advance(2 * time.Hour)
	l.Allow("c")
	assert.Equal(t, 1, l.Cleanup())
}

func TestConcurrentAllow(t *testing.T) {
	l := New(100, time.Hour)

	var wg sync.WaitGroup
	allowed := make([]int, 8)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				if l.Allow("shared").Allowed {
					allowed[g]++
				}
			}
		}(g)
	}
	wg.Wait()

	total := 0
	for _, n := range allowed {
		total += n
	}
	assert.Equal(t, 100, total, "exactly the limit should be admitted under concurrency")
}
