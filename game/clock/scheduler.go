// Package clock provides the scheduling abstraction the game core runs on.
//
// All game state is owned by a single goroutine. Scheduler implementations
// must invoke timer callbacks on that goroutine, so callbacks and commands
// never race. Loop does this for real time, Manual for tests.
package clock

import "time"

// Timer is a cancelable handle returned by AfterFunc
type Timer interface {
	// Stop prevents the callback from running. It reports whether the call
	// stopped the timer, false if it already ran or was stopped.
	Stop() bool
}

// Scheduler issues one-shot timers and reports the current time
type Scheduler interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
}
