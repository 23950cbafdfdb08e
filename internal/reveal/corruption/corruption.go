// Package corruption runs the spam message "retyping" reveal: a wave that
// overwrites the message with a different phrase, a blackout, and a forced
// return to the dashboard with the spam deleted and the user's name gone.
package corruption

import (
	"sync"
	"time"

	"daydream/internal/clock"
	"daydream/internal/content"
	"daydream/internal/logging"
	"daydream/internal/narrative"
)

// Phase is a stage of the reveal.
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseRetyping Phase = "retyping"
	PhaseBlackout Phase = "blackout"
	PhaseFadeIn   Phase = "fade-in"
	PhaseDone     Phase = "done"
)

// DashboardPath is where the reveal lands.
const DashboardPath = "/dashboard"

// Timing is the reveal schedule.
type Timing struct {
	Tick     time.Duration // one wave step
	Duration time.Duration // trigger -> blackout
	Blackout time.Duration // blackout -> fade-in
	Fade     time.Duration // fade-in -> navigate
	Dwell    time.Duration // read-to-end -> automatic trigger
}

// DefaultTiming is the scripted schedule.
func DefaultTiming() Timing {
	return Timing{
		Tick:     8 * time.Millisecond,
		Duration: 10000 * time.Millisecond,
		Blackout: 2000 * time.Millisecond,
		Fade:     500 * time.Millisecond,
		Dwell:    5000 * time.Millisecond,
	}
}

// Narrative is the slice of the narrative store the engine drives.
type Narrative interface {
	Snapshot() narrative.State
	SetNavigationDisabled(disabled bool)
	DeleteSpamMessage()
	CorruptUserName()
}

// Option configures an Engine.
type Option func(*Engine)

// WithTiming overrides the schedule.
func WithTiming(t Timing) Option {
	return func(e *Engine) { e.timing = t }
}

// WithText overrides the source and replacement texts.
func WithText(source, replacement string) Option {
	return func(e *Engine) {
		e.source = []rune(source)
		e.replacement = []rune(replacement)
	}
}

// Engine is mounted for the lifetime of one message view.
type Engine struct {
	scope       *clock.Scope
	store       Narrative
	navigate    func(path string)
	timing      Timing
	source      []rune
	replacement []rune

	mu           sync.Mutex
	phase        Phase
	replaceIndex int
	running      bool
	dwellArmed   bool
}

// Mount prepares the engine for a message view. navigate is the host router.
func Mount(c clock.Clock, store Narrative, navigate func(string), opts ...Option) *Engine {
	e := &Engine{
		scope:       clock.NewScope(c),
		store:       store,
		navigate:    navigate,
		timing:      DefaultTiming(),
		source:      []rune(content.SpamText),
		replacement: []rune(content.RetypeText),
		phase:       PhaseIdle,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Trigger starts the reveal for message id. Only the spam message triggers,
// only once, and never after the spam was deleted.
func (e *Engine) Trigger(id string) bool {
	if id != content.SpamMessageID || e.scope.Closed() {
		return false
	}
	if e.store.Snapshot().SpamMessageDeleted {
		return false
	}
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return false
	}
	e.running = true
	e.phase = PhaseRetyping
	e.mu.Unlock()

	e.store.SetNavigationDisabled(true)
	e.scope.OnRelease(func() { e.store.SetNavigationDisabled(false) })
	logging.Reveal("corruption triggered")

	ticker := e.scope.Every(e.timing.Tick, func() {
		e.mu.Lock()
		e.replaceIndex++
		e.mu.Unlock()
	})
	e.scope.After(e.timing.Duration, func() {
		ticker.Stop()
		e.store.DeleteSpamMessage()
		e.store.CorruptUserName()
		e.setPhase(PhaseBlackout)
		e.scope.After(e.timing.Blackout, func() {
			e.setPhase(PhaseFadeIn)
			e.scope.After(e.timing.Fade, e.complete)
		})
	})
	return true
}

// ArmDwell is called when the reader reached the end of the message. After
// the dwell time the reveal triggers on its own. Repeated calls are ignored.
func (e *Engine) ArmDwell(id string) bool {
	if id != content.SpamMessageID || e.scope.Closed() {
		return false
	}
	e.mu.Lock()
	if e.dwellArmed || e.running {
		e.mu.Unlock()
		return false
	}
	e.dwellArmed = true
	e.mu.Unlock()

	logging.RevealDebug("corruption dwell armed")
	e.scope.After(e.timing.Dwell, func() { e.Trigger(id) })
	return true
}

func (e *Engine) complete() {
	e.setPhase(PhaseDone)
	e.scope.Close()
	logging.Reveal("corruption complete")
	if e.navigate != nil {
		e.navigate(DashboardPath)
	}
}

func (e *Engine) setPhase(p Phase) {
	e.mu.Lock()
	e.phase = p
	e.mu.Unlock()
	logging.RevealDebug("corruption phase=%s", p)
}

// Unmount cancels the reveal at any point and releases the navigation lock.
func (e *Engine) Unmount() {
	e.scope.Close()
}

// Running reports whether the reveal was triggered.
func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase
}

// ReplaceIndex returns how many wave steps have run.
func (e *Engine) ReplaceIndex() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.replaceIndex
}

// Text renders the message at the current wave position.
func (e *Engine) Text() string {
	return Wave(e.source, e.replacement, e.ReplaceIndex())
}
