package clock

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestManualFiresInDeadlineOrder(t *testing.T) {
	m := NewManual(epoch)
	var order []string

	m.AfterFunc(30*time.Millisecond, func() { order = append(order, "c") })
	m.AfterFunc(10*time.Millisecond, func() { order = append(order, "a") })
	m.AfterFunc(10*time.Millisecond, func() { order = append(order, "b") })

	m.Advance(20 * time.Millisecond)
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Fatalf("order after 20ms = %v", order)
	}
	if got := m.Now().Sub(epoch); got != 20*time.Millisecond {
		t.Errorf("now = %v, want 20ms", got)
	}

	m.Advance(10 * time.Millisecond)
	if len(order) != 3 || order[2] != "c" {
		t.Fatalf("order after 30ms = %v", order)
	}
}

func TestManualNestedScheduling(t *testing.T) {
	m := NewManual(epoch)
	var fired []time.Duration

	var again func()
	again = func() {
		fired = append(fired, m.Now().Sub(epoch))
		if len(fired) < 3 {
			m.AfterFunc(10*time.Millisecond, again)
		}
	}
	m.AfterFunc(10*time.Millisecond, again)
	m.Advance(time.Second)

	want := []time.Duration{10 * time.Millisecond, 20 * time.Millisecond, 30 * time.Millisecond}
	if len(fired) != len(want) {
		t.Fatalf("fired = %v", fired)
	}
	for i := range want {
		if fired[i] != want[i] {
			t.Errorf("fired[%d] = %v, want %v", i, fired[i], want[i])
		}
	}
}

func TestManualStop(t *testing.T) {
	m := NewManual(epoch)
	ran := false
	tm := m.AfterFunc(time.Millisecond, func() { ran = true })
	if !tm.Stop() {
		t.Fatal("Stop on a pending timer should report true")
	}
	if tm.Stop() {
		t.Error("second Stop should report false")
	}
	m.Advance(time.Second)
	if ran || m.Pending() != 0 {
		t.Error("stopped timer must not fire")
	}
}

func TestTimersReplaceKey(t *testing.T) {
	m := NewManual(epoch)
	tm := NewTimers(m)
	var hits []string

	tm.After("k", 10*time.Millisecond, func() { hits = append(hits, "first") })
	tm.After("k", 20*time.Millisecond, func() { hits = append(hits, "second") })
	m.Advance(time.Second)

	if len(hits) != 1 || hits[0] != "second" {
		t.Fatalf("hits = %v", hits)
	}
	if tm.Active("k") || tm.Len() != 0 {
		t.Error("fired one-shot should be forgotten")
	}
}

func TestTimersEveryAndCancelInsideCallback(t *testing.T) {
	m := NewManual(epoch)
	tm := NewTimers(m)
	n := 0
	tm.Every("tick", 100*time.Millisecond, func() {
		n++
		if n == 3 {
			tm.Cancel("tick")
		}
	})
	if tm.Period("tick") != 100*time.Millisecond {
		t.Errorf("Period = %v", tm.Period("tick"))
	}
	m.Advance(time.Second)
	if n != 3 {
		t.Fatalf("ticks = %d, want 3", n)
	}
	if m.Pending() != 0 {
		t.Errorf("pending scheduler timers = %d", m.Pending())
	}
}

func TestTimersSuspendResume(t *testing.T) {
	m := NewManual(epoch)
	tm := NewTimers(m)
	ticks, shots := 0, 0

	tm.Ticker("tick", 100*time.Millisecond, func() { ticks++ })
	tm.After("shot", 500*time.Millisecond, func() { shots++ })

	m.Advance(250 * time.Millisecond)
	if ticks != 2 {
		t.Fatalf("ticks before pause = %d", ticks)
	}

	tm.Suspend()
	if !tm.Suspended() {
		t.Fatal("expected suspended")
	}
	if got := tm.Remaining("shot"); got != 250*time.Millisecond {
		t.Errorf("remaining while suspended = %v", got)
	}
	m.Advance(10 * time.Second)
	if ticks != 2 || shots != 0 {
		t.Fatalf("timers fired while suspended: ticks=%d shots=%d", ticks, shots)
	}

	// scheduling while suspended waits for Resume
	extra := 0
	tm.After("extra", 10*time.Millisecond, func() { extra++ })
	m.Advance(time.Second)
	if extra != 0 {
		t.Fatal("timer added while suspended fired early")
	}

	tm.Resume()
	m.Advance(100 * time.Millisecond)
	if ticks != 3 {
		t.Errorf("tick should restart with a full period, ticks = %d", ticks)
	}
	if extra != 1 {
		t.Errorf("extra = %d, want 1", extra)
	}
	m.Advance(150 * time.Millisecond)
	if shots != 1 {
		t.Errorf("one-shot should resume with its remaining time, shots = %d", shots)
	}
}

func TestTimersEveryKeepsProgressAcrossSuspend(t *testing.T) {
	m := NewManual(epoch)
	tm := NewTimers(m)
	units := 0
	tm.Every("unit", 100*time.Millisecond, func() { units++ })

	// toggling faster than the period must not starve the timer
	for i := 0; i < 10; i++ {
		m.Advance(80 * time.Millisecond)
		tm.Suspend()
		m.Advance(time.Second)
		tm.Resume()
	}
	if units != 8 {
		t.Errorf("units = %d after 800ms of running time, want 8", units)
	}

	m.Advance(30 * time.Millisecond)
	tm.Suspend()
	if got := tm.Remaining("unit"); got != 70*time.Millisecond {
		t.Fatalf("remaining while suspended = %v", got)
	}
	tm.Resume()
	if got := tm.Remaining("unit"); got != 70*time.Millisecond {
		t.Errorf("remaining after resume = %v, want 70ms", got)
	}
	m.Advance(70 * time.Millisecond)
	if units != 9 {
		t.Errorf("units = %d, want 9", units)
	}
	if got := tm.Remaining("unit"); got != 100*time.Millisecond {
		t.Errorf("next period = %v, want a full period", got)
	}
}

func TestTimersCancelAll(t *testing.T) {
	m := NewManual(epoch)
	tm := NewTimers(m)
	fired := 0
	tm.Every("a", time.Millisecond, func() { fired++ })
	tm.After("b", time.Millisecond, func() { fired++ })
	tm.Suspend()
	tm.CancelAll()

	if tm.Len() != 0 || tm.Suspended() {
		t.Fatal("CancelAll should clear every timer and the suspension")
	}
	m.Advance(time.Second)
	if fired != 0 {
		t.Errorf("fired = %d after CancelAll", fired)
	}
}

func TestLoopSerializesWork(t *testing.T) {
	l := NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- l.Run(ctx) }()

	counter := 0
	for i := 0; i < 100; i++ {
		l.Do(func() { counter++ })
	}
	var got int
	if !l.Call(func() { got = counter }) {
		t.Fatal("Call returned false on a running loop")
	}
	if got != 100 {
		t.Errorf("counter = %d, want 100", got)
	}

	cancel()
	if err := <-errc; err != context.Canceled {
		t.Errorf("Run returned %v", err)
	}
	if l.Call(func() {}) {
		t.Error("Call after shutdown should return false")
	}
}

func TestLoopStoppedTimerNeverRuns(t *testing.T) {
	l := NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go l.Run(ctx)

	var ran atomic.Bool
	fired := make(chan struct{})
	l.Call(func() {
		tm := l.AfterFunc(time.Millisecond, func() { ran.Store(true) })
		time.Sleep(5 * time.Millisecond)
		tm.Stop()
	})
	l.AfterFunc(10*time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("timer did not fire")
	}
	if ran.Load() {
		t.Error("stopped timer ran")
	}
}

func TestLoopRecoversPanics(t *testing.T) {
	l := NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go l.Run(ctx)

	l.Do(func() { panic("boom") })
	if !l.Call(func() {}) {
		t.Error("loop should survive a panicking task")
	}
}
