package clock

import (
	"context"
	"log"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

const taskBuffer = 256

// Loop is a real-time Scheduler that serializes timer callbacks and
// external commands onto the goroutine running Run
type Loop struct {
	tasks   chan func()
	done    chan struct{}
	closing sync.Once
	running atomic.Bool
	logger  *log.Logger
}

func NewLoop() *Loop {
	return &Loop{
		tasks:  make(chan func(), taskBuffer),
		done:   make(chan struct{}),
		logger: log.New(os.Stderr, "[clock] ", log.LstdFlags|log.Lmsgprefix),
	}
}

// Run executes queued work until ctx is canceled
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return nil
	}
	defer l.closing.Do(func() { close(l.done) })

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.tasks:
			l.exec(fn)
		}
	}
}

func (l *Loop) exec(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Printf("task panic: %v", r)
		}
	}()
	fn()
}

// Do queues fn for execution on the loop goroutine. Work queued after the
// loop stopped is dropped.
func (l *Loop) Do(fn func()) {
	select {
	case l.tasks <- fn:
	case <-l.done:
	}
}

// Call runs fn on the loop goroutine and waits for it to finish.
// It returns false if the loop stopped first.
func (l *Loop) Call(fn func()) bool {
	finished := make(chan struct{})
	l.Do(func() {
		defer close(finished)
		fn()
	})
	select {
	case <-finished:
		return true
	case <-l.done:
		return false
	}
}

func (l *Loop) Now() time.Time {
	return time.Now()
}

// AfterFunc schedules fn on the loop goroutine after d. A timer stopped
// from the loop goroutine never runs, even if its wall-clock timer already
// fired and the callback is waiting in the queue.
func (l *Loop) AfterFunc(d time.Duration, fn func()) Timer {
	t := &loopTimer{}
	t.timer = time.AfterFunc(d, func() {
		l.Do(func() {
			if t.fired.CompareAndSwap(false, true) {
				fn()
			}
		})
	})
	return t
}

type loopTimer struct {
	timer *time.Timer
	fired atomic.Bool
}

func (t *loopTimer) Stop() bool {
	t.timer.Stop()
	return t.fired.CompareAndSwap(false, true)
}
