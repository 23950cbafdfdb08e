package clock

import (
	"sync"
	"time"
)

// Real schedules callbacks on wall time.
type Real struct {
	dispatch Dispatcher
}

// NewReal creates a wall clock. A nil dispatcher runs callbacks directly on
// the timer goroutine.
func NewReal(dispatch Dispatcher) *Real {
	return &Real{dispatch: dispatch}
}

// Now returns the current wall time.
func (r *Real) Now() time.Time {
	return time.Now()
}

// AfterFunc runs fn once after d.
func (r *Real) AfterFunc(d time.Duration, fn func()) Timer {
	t := &realTimer{oneShot: true}
	t.mu.Lock()
	t.timer = time.AfterFunc(d, func() { r.deliver(t, fn) })
	t.mu.Unlock()
	return t
}

// Every runs fn repeatedly, d apart. The next run is armed after fn
// returns, so a slow host loop stretches the period instead of queueing.
func (r *Real) Every(d time.Duration, fn func()) Timer {
	if d <= 0 {
		d = time.Millisecond
	}
	t := &realTimer{}
	var arm func()
	arm = func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if t.stopped {
			return
		}
		t.timer = time.AfterFunc(d, func() {
			r.deliver(t, func() {
				fn()
				arm()
			})
		})
	}
	arm()
	return t
}

func (r *Real) deliver(t *realTimer, fn func()) {
	run := func() {
		if !t.claim() {
			return
		}
		fn()
	}
	if r.dispatch != nil {
		r.dispatch(run)
		return
	}
	run()
}

type realTimer struct {
	mu      sync.Mutex
	timer   *time.Timer
	oneShot bool
	fired   bool
	stopped bool
}

// claim is checked at delivery time, after any dispatcher hop, so a Stop
// that races with a queued callback still wins.
func (t *realTimer) claim() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	if t.oneShot {
		t.fired = true
	}
	return true
}

func (t *realTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	if t.timer != nil {
		t.timer.Stop()
	}
	return true
}
