package testutil

import (
	"sync"
	"time"

	"github.com/vnykmshr/shellkit/pkg/timing"
)

// MockClock implements timing.Clock with controllable time. Timers scheduled
// through AfterFunc only fire from Advance, synchronously and in deadline
// order, so tests never sleep.
type MockClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*mockTimer
	nextID int
}

type mockTimer struct {
	clock  *MockClock
	id     int
	when   time.Time
	f      func()
	active bool
}

// NewMockClock creates a new MockClock starting at the given time.
// If zero time is provided, uses current time.
func NewMockClock(start time.Time) *MockClock {
	if start.IsZero() {
		start = time.Now()
	}
	return &MockClock{now: start}
}

// Now returns the current mock time.
func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// AfterFunc schedules f to run once the clock has been advanced by d.
func (m *MockClock) AfterFunc(d time.Duration, f func()) timing.Timer {
	m.mu.Lock()
	defer m.mu.Unlock()

	if d < 0 {
		d = 0
	}
	m.nextID++
	t := &mockTimer{
		clock:  m,
		id:     m.nextID,
		when:   m.now.Add(d),
		f:      f,
		active: true,
	}
	m.timers = append(m.timers, t)
	return t
}

// Stop implements timing.Timer.
func (t *mockTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	if !t.active {
		return false
	}
	t.clock.remove(t)
	return true
}

// Advance moves the mock clock forward by d, firing every timer that comes
// due on the way, including timers scheduled by the callbacks themselves.
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	for {
		m.mu.Lock()
		next := m.due(target)
		if next == nil {
			if target.After(m.now) {
				m.now = target
			}
			m.mu.Unlock()
			return
		}
		if next.when.After(m.now) {
			m.now = next.when
		}
		m.remove(next)
		m.mu.Unlock()

		next.f()
	}
}

// Set sets the mock clock to a specific time without firing timers.
func (m *MockClock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}

// PendingTimers returns the number of scheduled timers that have not fired.
func (m *MockClock) PendingTimers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}

// due returns the earliest active timer with a deadline at or before target.
// Callers must hold m.mu.
func (m *MockClock) due(target time.Time) *mockTimer {
	var next *mockTimer
	for _, t := range m.timers {
		if t.when.After(target) {
			continue
		}
		if next == nil || t.when.Before(next.when) || (t.when.Equal(next.when) && t.id < next.id) {
			next = t
		}
	}
	return next
}

// remove deactivates t and drops it from the schedule. Callers must hold m.mu.
func (m *MockClock) remove(t *mockTimer) {
	t.active = false
	for i, other := range m.timers {
		if other == t {
			m.timers = append(m.timers[:i], m.timers[i+1:]...)
			return
		}
	}
}
