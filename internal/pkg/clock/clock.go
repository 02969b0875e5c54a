package clock

import (
	"sync"
	"time"

	"cloud.google.com/go/civil"
)

// Clock is a small abstraction for obtaining the current time.
// Use this in your application code to make time testable.
type Clock interface {
	Now() time.Time
}

// RealClock returns the real current time.
type RealClock struct{}

// Now returns the current time in UTC.
func (RealClock) Now() time.Time {
	return time.Now().UTC()
}

// Zoned keeps reporting instants from Clock but takes the calendar day in
// Location. Expiration is judged against that day.
type Zoned struct {
	Clock
	Location *time.Location
}

// Today returns the calendar day of c.Now(): in c.Location for a Zoned clock,
// in the instant's own location otherwise.
func Today(c Clock) civil.Date {
	if z, ok := c.(Zoned); ok && z.Location != nil {
		return civil.DateOf(z.Now().In(z.Location))
	}
	return civil.DateOf(c.Now())
}

// FakeClock is a controllable clock for tests. It is safe for concurrent use.
type FakeClock struct {
	mu  sync.RWMutex
	now time.Time
}

// NewFake creates a FakeClock set to the given time (expected in UTC).
func NewFake(t time.Time) *FakeClock {
	return &FakeClock{now: t}
}

// Now returns the fake current time.
func (f *FakeClock) Now() time.Time {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.now
}

// Set sets the fake clock to a specific time.
func (f *FakeClock) Set(t time.Time) {
	f.mu.Lock()
	f.now = t
	f.mu.Unlock()
}

// Advance moves the fake clock forward by duration d.
func (f *FakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

// AdvanceDays moves the fake clock forward by n calendar days.
func (f *FakeClock) AdvanceDays(n int) {
	f.mu.Lock()
	f.now = f.now.AddDate(0, 0, n)
	f.mu.Unlock()
}
