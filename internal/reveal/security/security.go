// Package security drives the fake security breach: a timer started from the
// security notice, a message that appears in the inbox, a one-time toast on
// the dashboard and an easter egg that completes once the message was read
// to the end.
package security

import (
	"sync"
	"time"

	"daydream/internal/clock"
	"daydream/internal/logging"
	"daydream/internal/narrative"
	"daydream/internal/trigger"
)

// DefaultDelay is the time between starting the timer and the message.
const DefaultDelay = 30 * time.Second

// DashboardPath is the only path the toast appears on.
const DashboardPath = "/dashboard"

// EndingThreshold is the visible ratio of the message ending that counts as
// "read to the end".
const EndingThreshold = 0.5

// Severity of a toast.
type Severity string

const (
	SeverityDefault     Severity = "default"
	SeverityDestructive Severity = "destructive"
)

// Toast is a transient notification request.
type Toast struct {
	Title       string
	Description string
	Duration    time.Duration
	Severity    Severity
}

// BreachToast is shown once the security message arrived.
var BreachToast = Toast{
	Title:       "[보안경고] 비정상적인 활동 감지",
	Description: "귀하의 계정에서 보안 정책 위반이 감지되었습니다. 즉시 쪽지함을 확인하십시오.",
	Duration:    5000 * time.Millisecond,
	Severity:    SeverityDestructive,
}

// Narrative is the slice of the narrative store the progression drives.
type Narrative interface {
	Snapshot() narrative.State
	StartSecurityTimer() bool
	TriggerSecurityMessage() bool
	MarkSecurityMessageRead()
	MarkSecurityToastShown()
	CompleteSecurityEasterEgg() bool
}

// Progression owns the security timer. It lives as long as the session.
type Progression struct {
	clock clock.Clock
	store Narrative
	toast func(Toast)
	delay time.Duration

	mu    sync.Mutex
	timer clock.Timer
}

// New creates a progression. toast is the host's notification surface.
func New(c clock.Clock, store Narrative, toast func(Toast), delay time.Duration) *Progression {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Progression{clock: c, store: store, toast: toast, delay: delay}
}

// Start arms the timer. It is refused once the easter egg is done, while the
// timer runs, or after the message was triggered.
func (p *Progression) Start() bool {
	if !p.store.StartSecurityTimer() {
		return false
	}
	logging.Reveal("security timer started (%v)", p.delay)
	p.arm()
	return true
}

// Resume re-arms a timer that was active when the session was persisted.
func (p *Progression) Resume() bool {
	if !p.store.Snapshot().SecurityTimerActive {
		return false
	}
	p.mu.Lock()
	armed := p.timer != nil
	p.mu.Unlock()
	if armed {
		return false
	}
	logging.Reveal("security timer resumed")
	p.arm()
	return true
}

func (p *Progression) arm() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.timer = p.clock.AfterFunc(p.delay, p.fire)
}

func (p *Progression) fire() {
	p.mu.Lock()
	p.timer = nil
	p.mu.Unlock()
	if p.store.TriggerSecurityMessage() {
		logging.Reveal("security message triggered")
	}
}

// Stop cancels a pending timer without touching the narrative flags.
func (p *Progression) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}

// ObservePath is called on every navigation and state change. On the
// dashboard, once the message is triggered, the toast is shown one time.
func (p *Progression) ObservePath(path string) bool {
	if path != DashboardPath {
		return false
	}
	st := p.store.Snapshot()
	if !st.SecurityMessageTriggered || st.IsSecurityToastShown {
		return false
	}
	p.store.MarkSecurityToastShown()
	if p.toast != nil {
		p.toast(BreachToast)
	}
	logging.Reveal("security toast shown")
	return true
}

// Reading is one visit to the security message detail view.
type Reading struct {
	store    Narrative
	ending   *trigger.Visibility
	mu       sync.Mutex
	scrolled bool
	closed   bool
}

// OpenMessage marks the message read and starts watching its ending.
func (p *Progression) OpenMessage() *Reading {
	p.store.MarkSecurityMessageRead()
	r := &Reading{store: p.store}
	r.ending = trigger.NewVisibility(EndingThreshold, func() {
		r.mu.Lock()
		r.scrolled = true
		r.mu.Unlock()
	})
	return r
}

// ObserveEnding feeds the visible ratio of the message ending.
func (r *Reading) ObserveEnding(ratio float64) {
	r.ending.Observe(ratio)
}

// FullyScrolled reports whether the ending has been seen.
func (r *Reading) FullyScrolled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.scrolled
}

// Close ends the visit, on back navigation or unmount. If the ending was
// seen the easter egg completes. Only the first call has any effect.
func (r *Reading) Close() bool {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return false
	}
	r.closed = true
	scrolled := r.scrolled
	r.mu.Unlock()

	r.ending.Disconnect()
	if !scrolled {
		return false
	}
	if r.store.CompleteSecurityEasterEgg() {
		logging.Reveal("security easter egg complete")
		return true
	}
	return false
}
