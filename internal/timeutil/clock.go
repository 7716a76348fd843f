// Package timeutil provides clock and duration helpers shared by the countdown packages.
package timeutil

import (
	"sync"
	"time"
)

// Clock provides the current time. Use RealClock in production and MockClock in tests.
type Clock interface {
	Now() time.Time
}

// RealClock uses the actual system time.
type RealClock struct{}

// Now returns the current system time.
func (RealClock) Now() time.Time { return time.Now() }

// MockClock returns a controllable time. Safe for use from ticker goroutines.
type MockClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{now: t}
}

// NewMockClockFromString panics on an invalid RFC3339 string; tests only.
func NewMockClockFromString(s string) *MockClock {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic("invalid time string: " + err.Error())
	}
	return NewMockClock(t)
}

func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *MockClock) Set(t time.Time) {
	m.mu.Lock()
	m.now = t
	m.mu.Unlock()
}

func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}

// UnixMilli is the clock's current instant in epoch milliseconds.
func UnixMilli(c Clock) int64 {
	return c.Now().UnixMilli()
}

var (
	_ Clock = RealClock{}
	_ Clock = (*MockClock)(nil)
)
