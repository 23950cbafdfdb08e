// Package trigger implements the one-shot scroll and visibility observers
// that arm the reveal engines. Hosts feed them measurements; each observer
// fires its callback at most once and then disconnects itself.
package trigger

import (
	"sync"

	"daydream/internal/logging"
)

// DefaultScrollMargin is how close to the bottom counts as "read to the end".
const DefaultScrollMargin = 50

// Observer is a one-shot condition watcher.
type Observer interface {
	// Done reports whether the observer fired or was disconnected.
	Done() bool
	// Disconnect stops observing without firing.
	Disconnect()
}

type oneShot struct {
	mu    sync.Mutex
	name  string
	done  bool
	fired bool
	fire  func()
}

func (o *oneShot) try(cond bool) bool {
	o.mu.Lock()
	if o.done || !cond {
		o.mu.Unlock()
		return false
	}
	o.done = true
	o.fired = true
	fn := o.fire
	o.fire = nil
	o.mu.Unlock()

	logging.TriggerDebug("%s fired", o.name)
	if fn != nil {
		fn()
	}
	return true
}

// Done reports whether the observer is finished.
func (o *oneShot) Done() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.done
}

// Fired reports whether the callback ran.
func (o *oneShot) Fired() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.fired
}

// Disconnect stops the observer.
func (o *oneShot) Disconnect() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.done = true
	o.fire = nil
}

// Scroll fires once a scroll container reaches its bottom margin.
type Scroll struct {
	oneShot
	margin int
}

// NewScroll returns a scroll-threshold observer. margin <= 0 uses the default.
func NewScroll(margin int, onReached func()) *Scroll {
	if margin <= 0 {
		margin = DefaultScrollMargin
	}
	return &Scroll{oneShot: oneShot{name: "scroll", fire: onReached}, margin: margin}
}

// Observe feeds a measurement: scroll offset, visible height and content
// height, in any consistent unit. It returns true when this call fired.
func (s *Scroll) Observe(top, visible, height int) bool {
	return s.try(top+visible >= height-s.margin)
}

// Visibility fires once a sentinel is visible at or above a ratio.
type Visibility struct {
	oneShot
	threshold float64
}

// NewVisibility returns a visibility observer for the given area ratio.
func NewVisibility(threshold float64, onVisible func()) *Visibility {
	return &Visibility{oneShot: oneShot{name: "visibility", fire: onVisible}, threshold: threshold}
}

// Observe feeds the sentinel's visible ratio. It returns true when this call fired.
func (v *Visibility) Observe(ratio float64) bool {
	return v.try(ratio > 0 && ratio >= v.threshold)
}

// VisibleRatio returns the fraction of the sentinel line range
// [start, start+length) that lies inside the viewport [top, top+height).
func VisibleRatio(start, length, top, height int) float64 {
	if length <= 0 || height <= 0 {
		return 0
	}
	lo := max(start, top)
	hi := min(start+length, top+height)
	if hi <= lo {
		return 0
	}
	return float64(hi-lo) / float64(length)
}
