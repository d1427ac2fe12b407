// Package timekeep centralizes wall-clock concerns for the engine: an
// injectable clock, calendar-day keys, and cooldown arithmetic. All
// day-boundary comparisons in the booster economy and streak logic go
// through this package so that the clock can be substituted in tests.
package timekeep

import (
	"fmt"
	"sync"
	"time"
)

// DayKey identifies a calendar day as a count of days since the Unix epoch,
// evaluated in UTC. Integer keys avoid the locale pitfalls of formatted
// date strings in persisted state.
type DayKey int64

// Yesterday returns the key of the preceding day.
func (d DayKey) Yesterday() DayKey { return d - 1 }

// Clock supplies the current time. Production code uses SystemClock;
// tests use Manual.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time { return time.Now().UTC() }

// Manual is a settable clock for tests. The zero value starts at the zero
// time; use Set or Advance to move it.
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

// NewManual returns a Manual clock frozen at the given instant.
func NewManual(now time.Time) *Manual {
	return &Manual{now: now}
}

// Now implements Clock.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Set moves the clock to an absolute instant.
func (m *Manual) Set(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

// Advance moves the clock forward by d.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// DayOf returns the calendar-day key of an instant.
func DayOf(t time.Time) DayKey {
	t = t.UTC()
	return DayKey(t.Unix() / int64(24*time.Hour/time.Second))
}

// Today returns the current calendar-day key.
func Today(clock Clock) DayKey {
	return DayOf(clock.Now())
}

// ElapsedSince returns how much time has passed since t. Negative results
// (t in the future, e.g. after clock skew) clamp to zero.
func ElapsedSince(clock Clock, t time.Time) time.Duration {
	d := clock.Now().Sub(t)
	if d < 0 {
		return 0
	}
	return d
}

// Remaining returns how long until deadline, clamped to zero once passed.
func Remaining(clock Clock, deadline time.Time) time.Duration {
	d := deadline.Sub(clock.Now())
	if d < 0 {
		return 0
	}
	return d
}

// FormatCountdown renders a duration as HH:MM:SS for cooldown display.
func FormatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
