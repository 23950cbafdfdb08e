package clock

import (
	"sync"
	"time"
)

// Fake is a manually advanced clock for tests. Callbacks run synchronously
// inside Advance, in deadline order; timers due at the same instant run in
// the order they were scheduled.
type Fake struct {
	mu      sync.Mutex
	now     time.Time
	seq     uint64
	pending map[*fakeTimer]struct{}
}

// NewFake creates a fake clock positioned at start.
func NewFake(start time.Time) *Fake {
	return &Fake{
		now:     start,
		pending: make(map[*fakeTimer]struct{}),
	}
}

type fakeTimer struct {
	clock  *Fake
	at     time.Time
	period time.Duration
	seq    uint64
	fn     func()
}

// Now returns the fake time.
func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// AfterFunc schedules fn at now+d.
func (f *Fake) AfterFunc(d time.Duration, fn func()) Timer {
	return f.schedule(d, 0, fn)
}

// Every schedules fn at now+d and every d after that.
func (f *Fake) Every(d time.Duration, fn func()) Timer {
	if d <= 0 {
		d = time.Millisecond
	}
	return f.schedule(d, d, fn)
}

func (f *Fake) schedule(d, period time.Duration, fn func()) Timer {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d < 0 {
		d = 0
	}
	f.seq++
	t := &fakeTimer{clock: f, at: f.now.Add(d), period: period, seq: f.seq, fn: fn}
	f.pending[t] = struct{}{}
	return t
}

func (t *fakeTimer) Stop() bool {
	f := t.clock
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.pending[t]; !ok {
		return false
	}
	delete(f.pending, t)
	return true
}

// Advance moves the clock forward by d, firing every timer that comes due.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	target := f.now.Add(d)
	f.mu.Unlock()

	for {
		f.mu.Lock()
		next := f.nextDue(target)
		if next == nil {
			f.now = target
			f.mu.Unlock()
			return
		}
		f.now = next.at
		if next.period > 0 {
			f.seq++
			next.at = next.at.Add(next.period)
			next.seq = f.seq
		} else {
			delete(f.pending, next)
		}
		fn := next.fn
		f.mu.Unlock()

		fn()
	}
}

func (f *Fake) nextDue(target time.Time) *fakeTimer {
	var best *fakeTimer
	for t := range f.pending {
		if t.at.After(target) {
			continue
		}
		if best == nil || t.at.Before(best.at) || (t.at.Equal(best.at) && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

// Pending reports how many timers are scheduled.
func (f *Fake) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pending)
}
