package budget

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/award-search/award-flight-finder/internal/infrastructure/timeutil"
)

// window is the counter of one calendar day.
type window struct {
	day  string
	used atomic.Int64
}

// Memory is a process-local budget. Reserve is lock-free: the day window is
// swapped with compare-and-swap and the counter never exceeds the limit.
type Memory struct {
	limit int64
	loc   *time.Location
	clock timeutil.Clock
	state atomic.Pointer[window]
}

// NewMemory creates a budget of limit calls per day in loc.
// A nil clock uses the system time; a nil loc uses UTC.
func NewMemory(limit int64, loc *time.Location, clock timeutil.Clock) *Memory {
	if clock == nil {
		clock = timeutil.NewRealClock()
	}
	if loc == nil {
		loc = time.UTC
	}
	m := &Memory{limit: limit, loc: loc, clock: clock}
	m.state.Store(&window{day: timeutil.DayKey(clock.Now(), loc)})
	return m
}

// Reserve implements Budget.
func (m *Memory) Reserve(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	w := m.current()
	for {
		used := w.used.Load()
		if used >= m.limit {
			return ErrExhausted
		}
		if w.used.CompareAndSwap(used, used+1) {
			return nil
		}
	}
}

// Remaining implements Budget.
func (m *Memory) Remaining(context.Context) (int64, error) {
	left := m.limit - m.current().used.Load()
	if left < 0 {
		left = 0
	}
	return left, nil
}

// current returns today's window, rolling over when the day has changed.
func (m *Memory) current() *window {
	day := timeutil.DayKey(m.clock.Now(), m.loc)
	for {
		w := m.state.Load()
		if w.day == day {
			return w
		}
		next := &window{day: day}
		if m.state.CompareAndSwap(w, next) {
			return next
		}
	}
}

var _ Budget = (*Memory)(nil)
