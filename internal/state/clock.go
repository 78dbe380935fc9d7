package state

import (
	"sync"
	"time"
)

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// FakeClock only moves when told to.
type FakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{t: start}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}

func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

// IsDue reports whether interval has fully elapsed since last (unix millis).
func IsDue(now time.Time, last int64, interval time.Duration) bool {
	return now.UnixMilli()-last >= interval.Milliseconds()
}

// Remaining is the time left until IsDue flips, never negative.
func Remaining(now time.Time, last int64, interval time.Duration) time.Duration {
	left := interval - time.Duration(now.UnixMilli()-last)*time.Millisecond
	if left < 0 {
		return 0
	}
	return left
}
