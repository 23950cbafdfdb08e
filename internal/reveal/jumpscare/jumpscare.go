// Package jumpscare runs the full-screen takeover that follows the lost and
// found notice: a beat of silence, two accelerating typing loops and a fake
// terminal session that ends by handing control back to the host.
package jumpscare

import (
	"math/rand"
	"sync"
	"time"

	"daydream/internal/clock"
	"daydream/internal/logging"
)

// Phase is a stage of the sequence.
type Phase string

const (
	PhaseSilence     Phase = "silence"
	PhaseTypingOne   Phase = "typing-phase-1"
	PhaseTypingTwo   Phase = "typing-phase-2"
	PhaseTerminalLog Phase = "terminal-log"
	PhaseEnd         Phase = "end"
)

// Phrases typed in the two typing phases.
const (
	PhraseOne = "누구야?"
	PhraseTwo = "찾았다."
)

// FinishSuffix is appended to the tracking line when the trace completes.
const FinishSuffix = " [Finish]"

// Typing describes one accelerating typing loop.
type Typing struct {
	Start  time.Duration // delay per rune on the first loop
	Factor float64       // speed multiplier applied after each loop
	Floor  time.Duration // fastest allowed delay
}

// next returns the delay for the loop after one with delay d.
func (t Typing) next(d time.Duration) time.Duration {
	n := time.Duration(float64(d) * t.Factor)
	if n < t.Floor {
		return t.Floor
	}
	return n
}

// Timing is the full schedule. Marks are measured from mount unless noted.
type Timing struct {
	Silence        time.Duration // mount -> typing-phase-1
	PhaseTwoAt     time.Duration // mount -> typing-phase-2
	TerminalAt     time.Duration // mount -> terminal-log
	TypingOne      Typing
	TypingTwo      Typing
	NormalEvery    time.Duration
	AbnormalEvery  time.Duration
	FinishAfter    time.Duration // terminal-log entry -> [Finish]
	EndAfterFinish time.Duration // [Finish] -> end
	StampOffset    time.Duration // per-line timestamp spacing
	StampJitter    time.Duration
}

// DefaultTiming is the scripted schedule.
func DefaultTiming() Timing {
	return Timing{
		Silence:        300 * time.Millisecond,
		PhaseTwoAt:     5000 * time.Millisecond,
		TerminalAt:     10000 * time.Millisecond,
		TypingOne:      Typing{Start: 120 * time.Millisecond, Factor: 0.92, Floor: 15 * time.Millisecond},
		TypingTwo:      Typing{Start: 40 * time.Millisecond, Factor: 0.88, Floor: 3 * time.Millisecond},
		NormalEvery:    80 * time.Millisecond,
		AbnormalEvery:  400 * time.Millisecond,
		FinishAfter:    12000 * time.Millisecond,
		EndAfterFinish: 3000 * time.Millisecond,
		StampOffset:    250 * time.Millisecond,
		StampJitter:    100 * time.Millisecond,
	}
}

// Lock is the navigation lock the overlay holds while mounted.
type Lock interface {
	SetNavigationDisabled(disabled bool)
}

// LogLine is one rendered line of the fake terminal.
type LogLine struct {
	Stamp    string
	Text     string
	Abnormal bool
	Blinking bool
}

// View is a snapshot for rendering.
type View struct {
	Phase Phase
	Text  string
	Lines []LogLine
}

// Option configures an Engine.
type Option func(*Engine)

// WithTiming overrides the schedule.
func WithTiming(t Timing) Option {
	return func(e *Engine) { e.timing = t }
}

// WithRand sets the random source for the cosmetic timestamps.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithPhaseHook is called on every phase change.
func WithPhaseHook(fn func(Phase)) Option {
	return func(e *Engine) { e.onPhase = fn }
}

// Engine is one mounted overlay.
type Engine struct {
	scope      *clock.Scope
	timing     Timing
	rng        *rand.Rand
	onComplete func()
	onPhase    func(Phase)

	mu        sync.Mutex
	phase     Phase
	text      []rune
	lines     []LogLine
	typing    clock.Timer
	completed bool
}

// Mount shows the overlay: the navigation lock is taken immediately and is
// released on every exit path. onComplete runs once, at the end phase.
func Mount(c clock.Clock, lock Lock, onComplete func(), opts ...Option) *Engine {
	e := &Engine{
		scope:      clock.NewScope(c),
		timing:     DefaultTiming(),
		onComplete: onComplete,
		phase:      PhaseSilence,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(c.Now().UnixNano()))
	}

	lock.SetNavigationDisabled(true)
	e.scope.OnRelease(func() { lock.SetNavigationDisabled(false) })
	logging.Reveal("jumpscare mounted")

	t := e.timing
	e.scope.After(t.Silence, func() { e.startTyping(PhaseTypingOne, []rune(PhraseOne), t.TypingOne) })
	e.scope.After(t.PhaseTwoAt, func() { e.startTyping(PhaseTypingTwo, []rune(PhraseTwo), t.TypingTwo) })
	e.scope.After(t.TerminalAt, e.startTerminal)
	return e
}

func (e *Engine) setPhase(p Phase) {
	e.mu.Lock()
	e.phase = p
	hook := e.onPhase
	e.mu.Unlock()
	logging.RevealDebug("jumpscare phase=%s", p)
	if hook != nil {
		hook(p)
	}
}

// startTyping replaces any running loop with a new one. The first rune is
// typed on entry; each completed loop adds a space and speeds up.
func (e *Engine) startTyping(p Phase, phrase []rune, typing Typing) {
	e.mu.Lock()
	if e.typing != nil {
		e.typing.Stop()
		e.typing = nil
	}
	e.text = e.text[:0]
	e.mu.Unlock()
	e.setPhase(p)

	delay := typing.Start
	pos := 0
	var step func()
	step = func() {
		e.mu.Lock()
		if e.phase != p {
			e.mu.Unlock()
			return
		}
		if pos == len(phrase) {
			e.text = append(e.text, ' ')
			pos = 0
			delay = typing.next(delay)
		}
		e.text = append(e.text, phrase[pos])
		pos++
		e.typing = e.scope.After(delay, step)
		e.mu.Unlock()
	}
	step()
}

func (e *Engine) startTerminal() {
	e.mu.Lock()
	if e.typing != nil {
		e.typing.Stop()
		e.typing = nil
	}
	e.mu.Unlock()
	e.setPhase(PhaseTerminalLog)

	t := e.timing
	next := 0
	var ticker clock.Timer
	ticker = e.scope.Every(t.NormalEvery, func() {
		if next >= len(normalLines) {
			return
		}
		e.appendLine(normalLines[next], false)
		next++
		if next == len(normalLines) {
			ticker.Stop()
			e.startAbnormal()
		}
	})

	e.scope.After(t.FinishAfter, e.finish)
}

func (e *Engine) startAbnormal() {
	next := 0
	var ticker clock.Timer
	ticker = e.scope.Every(e.timing.AbnormalEvery, func() {
		if next >= len(abnormalLines) {
			return
		}
		e.appendLine(abnormalLines[next], true)
		next++
		if next == len(abnormalLines) {
			ticker.Stop()
		}
	})
}

func (e *Engine) appendLine(text string, abnormal bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	i := len(e.lines)
	e.lines = append(e.lines, LogLine{
		Stamp:    Stamp(e.rng, e.scope.Clock().Now(), i, e.timing.StampOffset, e.timing.StampJitter),
		Text:     text,
		Abnormal: abnormal,
		Blinking: abnormal && i == len(normalLines)+len(abnormalLines)-1,
	})
}

// finish marks the tracking line and schedules the end. Lines still queued
// are flushed so the tracking line always exists.
func (e *Engine) finish() {
	e.mu.Lock()
	n := len(e.lines)
	e.mu.Unlock()
	for i := n; i < len(normalLines)+len(abnormalLines); i++ {
		if i < len(normalLines) {
			e.appendLine(normalLines[i], false)
		} else {
			e.appendLine(abnormalLines[i-len(normalLines)], true)
		}
	}

	e.mu.Lock()
	last := &e.lines[len(e.lines)-1]
	last.Text += FinishSuffix
	last.Blinking = false
	e.mu.Unlock()
	logging.RevealDebug("jumpscare trace finished")

	e.scope.After(e.timing.EndAfterFinish, e.end)
}

func (e *Engine) end() {
	e.mu.Lock()
	if e.completed {
		e.mu.Unlock()
		return
	}
	e.completed = true
	e.mu.Unlock()

	e.setPhase(PhaseEnd)
	e.scope.Close()
	logging.Reveal("jumpscare complete")
	if e.onComplete != nil {
		e.onComplete()
	}
}

// Unmount tears the overlay down at any moment. All timers stop and the
// navigation lock is released. The completion callback does not run.
func (e *Engine) Unmount() {
	e.scope.Close()
}

// Done reports whether the engine is unmounted or finished.
func (e *Engine) Done() bool {
	return e.scope.Closed()
}

// Completed reports whether the sequence reached its end.
func (e *Engine) Completed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.completed
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase
}

// View returns a render snapshot.
func (e *Engine) View() View {
	e.mu.Lock()
	defer e.mu.Unlock()
	return View{
		Phase: e.phase,
		Text:  string(e.text),
		Lines: append([]LogLine(nil), e.lines...),
	}
}
