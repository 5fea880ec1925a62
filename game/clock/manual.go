package clock

import (
	"sort"
	"sync"
	"time"
)

// Manual is a Scheduler driven by Advance, for deterministic tests.
// Callbacks run on the goroutine calling Advance, in deadline order;
// timers with equal deadlines fire in scheduling order.
type Manual struct {
	mu    sync.Mutex
	now   time.Time
	seq   uint64
	queue []*manualTimer
}

type manualTimer struct {
	m        *Manual
	deadline time.Time
	seq      uint64
	fn       func()
	done     bool
}

func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) AfterFunc(d time.Duration, fn func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()

	if d < 0 {
		d = 0
	}
	m.seq++
	t := &manualTimer{m: m, deadline: m.now.Add(d), seq: m.seq, fn: fn}
	m.queue = append(m.queue, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()

	if t.done {
		return false
	}
	t.done = true
	t.m.remove(t)
	return true
}

func (m *Manual) remove(t *manualTimer) {
	for i, q := range m.queue {
		if q == t {
			m.queue = append(m.queue[:i], m.queue[i+1:]...)
			return
		}
	}
}

// Advance moves time forward by d, firing every timer that comes due,
// including timers scheduled by callbacks within the window
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	for {
		t := m.popDue(target)
		if t == nil {
			break
		}
		t.fn()
	}

	m.mu.Lock()
	m.now = target
	m.mu.Unlock()
}

func (m *Manual) popDue(target time.Time) *manualTimer {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.queue) == 0 {
		return nil
	}
	sort.SliceStable(m.queue, func(i, j int) bool {
		if !m.queue[i].deadline.Equal(m.queue[j].deadline) {
			return m.queue[i].deadline.Before(m.queue[j].deadline)
		}
		return m.queue[i].seq < m.queue[j].seq
	})
	next := m.queue[0]
	if next.deadline.After(target) {
		return nil
	}
	m.queue = m.queue[1:]
	next.done = true
	m.now = next.deadline
	return next
}

// Pending returns the number of scheduled timers
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}
