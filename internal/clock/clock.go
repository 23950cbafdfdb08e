// Package clock provides the timer primitives the reveal engines schedule on.
//
// Every engine talks to a Clock instead of the time package so the same code
// runs against wall time in the terminal and against a Fake in tests. A Scope
// groups the timers of one mounted engine so unmounting cancels all of them
// at once and runs the engine's release hooks.
package clock

import "time"

// Timer is a pending callback.
type Timer interface {
	// Stop prevents the callback from running. It returns false if the
	// timer already fired (one-shot) or was already stopped.
	Stop() bool
}

// Clock schedules callbacks.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
	Every(d time.Duration, fn func()) Timer
}

// Dispatcher delivers a due callback onto the host's event loop.
// The terminal host posts it as a bubbletea message so all narrative
// mutations happen on one goroutine.
type Dispatcher func(fn func())

// stoppedTimer is returned when scheduling on a closed scope.
type stoppedTimer struct{}

func (stoppedTimer) Stop() bool { return false }
