// Package timeutil provides the clock abstraction and calendar helpers used by
// the query planner and the daily call budget.
package timeutil

import (
	"sync"
	"time"
)

// Clock abstracts time.Now so day boundaries can be tested.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system time.
type RealClock struct{}

// NewRealClock creates a RealClock.
func NewRealClock() *RealClock {
	return &RealClock{}
}

// Now returns the current system time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// MockClock is a settable clock for tests. It is safe for concurrent use.
type MockClock struct {
	mu  sync.RWMutex
	now time.Time
}

// NewMockClock creates a mock clock stopped at t.
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{now: t}
}

// NewMockClockFromString creates a mock clock from an RFC3339 string.
// It panics on a malformed value and is meant for tests only.
func NewMockClockFromString(value string) *MockClock {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic("invalid time string: " + err.Error())
	}
	return NewMockClock(t)
}

// Now returns the current mock time.
func (m *MockClock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// Set moves the clock to t.
func (m *MockClock) Set(t time.Time) {
	m.mu.Lock()
	m.now = t
	m.mu.Unlock()
}

// Advance moves the clock forward by d.
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}

// AdvanceDays moves the clock forward by whole days.
func (m *MockClock) AdvanceDays(days int) {
	m.Advance(time.Duration(days) * 24 * time.Hour)
}

var (
	_ Clock = (*RealClock)(nil)
	_ Clock = (*MockClock)(nil)
)
