package clock

import (
	"sort"
	"time"
)

// Key names a tracked timer. Scheduling a key that is already pending
// replaces the previous timer.
type Key string

// Timers tracks every outstanding timer of one game session so state
// transitions can cancel, suspend or resume them as a group
type Timers struct {
	sched     Scheduler
	entries   map[Key]*entry
	suspended bool
}

type entry struct {
	key       Key
	fn        func()
	period    time.Duration // repeating when > 0
	restart   bool          // resume with a full period instead of the time left
	deadline  time.Time
	remaining time.Duration // set while suspended
	handle    Timer
}

func NewTimers(s Scheduler) *Timers {
	return &Timers{
		sched:   s,
		entries: make(map[Key]*entry),
	}
}

// Scheduler returns the underlying scheduler
func (t *Timers) Scheduler() Scheduler {
	return t.sched
}

// Now returns the scheduler time
func (t *Timers) Now() time.Time {
	return t.sched.Now()
}

// After runs fn once after d
func (t *Timers) After(key Key, d time.Duration, fn func()) {
	t.add(&entry{key: key, fn: fn}, d)
}

// Every runs fn every period until canceled. After a suspension the
// current period continues with the time it had left.
func (t *Timers) Every(key Key, period time.Duration, fn func()) {
	t.add(&entry{key: key, fn: fn, period: period}, period)
}

// Ticker is like Every, but Resume restarts it with a full period
func (t *Timers) Ticker(key Key, period time.Duration, fn func()) {
	t.add(&entry{key: key, fn: fn, period: period, restart: true}, period)
}

func (t *Timers) add(e *entry, d time.Duration) {
	t.Cancel(e.key)
	t.entries[e.key] = e
	if t.suspended {
		e.remaining = d
		return
	}
	t.arm(e, d)
}

func (t *Timers) arm(e *entry, d time.Duration) {
	e.deadline = t.sched.Now().Add(d)
	e.remaining = 0
	e.handle = t.sched.AfterFunc(d, func() { t.fire(e) })
}

func (t *Timers) fire(e *entry) {
	if t.entries[e.key] != e {
		return
	}
	if e.period > 0 {
		t.arm(e, e.period)
	} else {
		delete(t.entries, e.key)
	}
	e.fn()
}

// Cancel stops the timer registered under key, if any
func (t *Timers) Cancel(key Key) {
	e, ok := t.entries[key]
	if !ok {
		return
	}
	if e.handle != nil {
		e.handle.Stop()
	}
	delete(t.entries, key)
}

// CancelAll stops every tracked timer and leaves the group running
func (t *Timers) CancelAll() {
	for key := range t.entries {
		t.Cancel(key)
	}
	t.suspended = false
}

// Active reports whether key is scheduled or suspended
func (t *Timers) Active(key Key) bool {
	_, ok := t.entries[key]
	return ok
}

// Period returns the interval of a repeating timer, zero for one-shots or unknown keys
func (t *Timers) Period(key Key) time.Duration {
	if e, ok := t.entries[key]; ok {
		return e.period
	}
	return 0
}

// Remaining returns the time left before key fires
func (t *Timers) Remaining(key Key) time.Duration {
	e, ok := t.entries[key]
	if !ok {
		return 0
	}
	if t.suspended {
		return e.remaining
	}
	left := e.deadline.Sub(t.sched.Now())
	if left < 0 {
		return 0
	}
	return left
}

// Len returns the number of tracked timers
func (t *Timers) Len() int {
	return len(t.entries)
}

// Suspend stops all timers and remembers the time each had left
func (t *Timers) Suspend() {
	if t.suspended {
		return
	}
	now := t.sched.Now()
	for _, e := range t.entries {
		e.handle.Stop()
		e.handle = nil
		e.remaining = e.deadline.Sub(now)
		if e.remaining < 0 {
			e.remaining = 0
		}
	}
	t.suspended = true
}

// Resume rearms suspended timers with the time they had left. Tickers
// restart with a full period.
func (t *Timers) Resume() {
	if !t.suspended {
		return
	}
	t.suspended = false
	pending := make([]*entry, 0, len(t.entries))
	for _, e := range t.entries {
		pending = append(pending, e)
	}
	sort.Slice(pending, func(i, j int) bool {
		if pending[i].remaining != pending[j].remaining {
			return pending[i].remaining < pending[j].remaining
		}
		return pending[i].key < pending[j].key
	})
	for _, e := range pending {
		d := e.remaining
		if e.restart {
			d = e.period
		}
		t.arm(e, d)
	}
}

// Suspended reports whether the group is suspended
func (t *Timers) Suspended() bool {
	return t.suspended
}
