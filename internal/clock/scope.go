package clock

import (
	"sync"
	"time"
)

// Scope owns the timers and cleanup hooks of one mounted engine.
// Close cancels everything and runs the release hooks exactly once, in
// reverse registration order.
type Scope struct {
	clock Clock

	mu       sync.Mutex
	timers   map[*scopedTimer]struct{}
	releases []func()
	closed   bool
}

// NewScope creates a scope scheduling on c.
func NewScope(c Clock) *Scope {
	return &Scope{
		clock:  c,
		timers: make(map[*scopedTimer]struct{}),
	}
}

// Clock returns the underlying clock.
func (s *Scope) Clock() Clock {
	return s.clock
}

type scopedTimer struct {
	scope *Scope
	inner Timer
}

func (t *scopedTimer) Stop() bool {
	t.scope.forget(t)
	return t.inner.Stop()
}

// After schedules fn once after d. Nothing fires once the scope is closed.
func (s *Scope) After(d time.Duration, fn func()) Timer {
	return s.add(func(wrapped func()) Timer { return s.clock.AfterFunc(d, wrapped) }, fn, true)
}

// Every schedules fn every d until stopped or the scope closes.
func (s *Scope) Every(d time.Duration, fn func()) Timer {
	return s.add(func(wrapped func()) Timer { return s.clock.Every(d, wrapped) }, fn, false)
}

func (s *Scope) add(schedule func(func()) Timer, fn func(), oneShot bool) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return stoppedTimer{}
	}
	st := &scopedTimer{scope: s}
	st.inner = schedule(func() {
		if s.Closed() {
			return
		}
		if oneShot {
			s.forget(st)
		}
		fn()
	})
	s.timers[st] = struct{}{}
	return st
}

func (s *Scope) forget(t *scopedTimer) {
	s.mu.Lock()
	delete(s.timers, t)
	s.mu.Unlock()
}

// OnRelease registers fn to run when the scope closes. If the scope is
// already closed fn runs immediately.
func (s *Scope) OnRelease(fn func()) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		fn()
		return
	}
	s.releases = append(s.releases, fn)
	s.mu.Unlock()
}

// Close stops every pending timer and runs the release hooks.
// Subsequent calls do nothing.
func (s *Scope) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	timers := s.timers
	s.timers = nil
	releases := s.releases
	s.releases = nil
	s.mu.Unlock()

	for t := range timers {
		t.inner.Stop()
	}
	for i := len(releases) - 1; i >= 0; i-- {
		releases[i]()
	}
}

// Closed reports whether Close has been called.
func (s *Scope) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Pending reports how many timers the scope still tracks.
func (s *Scope) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}
