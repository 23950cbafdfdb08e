// Package ui provides debouncing utilities for event handling
package ui

import (
	"sync"
	"time"

	"daydream/internal/clock"
)

// Debouncer runs the last of a burst of calls once the burst settles.
type Debouncer struct {
	mu       sync.Mutex
	clock    clock.Clock
	timer    clock.Timer
	duration time.Duration
}

// NewDebouncer creates a debouncer on c with the given quiet period.
func NewDebouncer(c clock.Clock, duration time.Duration) *Debouncer {
	return &Debouncer{clock: c, duration: duration}
}

// Debounce executes fn after the quiet period has elapsed without any new
// calls. Rapid successive calls reset the timer.
func (d *Debouncer) Debounce(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = d.clock.AfterFunc(d.duration, fn)
}

// Cancel cancels any pending call
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// ResizeDebouncer coalesces window resize events.
type ResizeDebouncer struct {
	debouncer     *Debouncer
	mu            sync.Mutex
	lastWidth     int
	lastHeight    int
	pendingWidth  int
	pendingHeight int
}

// NewResizeDebouncer creates a debouncer for resize events
func NewResizeDebouncer(c clock.Clock, duration time.Duration) *ResizeDebouncer {
	return &ResizeDebouncer{debouncer: NewDebouncer(c, duration)}
}

// Resize records a size and calls handler once resizing settles.
func (rd *ResizeDebouncer) Resize(width, height int, handler func(int, int)) {
	rd.mu.Lock()
	rd.pendingWidth, rd.pendingHeight = width, height
	rd.mu.Unlock()

	rd.debouncer.Debounce(func() {
		rd.mu.Lock()
		w, h := rd.pendingWidth, rd.pendingHeight
		rd.lastWidth, rd.lastHeight = w, h
		rd.mu.Unlock()
		handler(w, h)
	})
}

// LastSize returns the last processed size
func (rd *ResizeDebouncer) LastSize() (width, height int) {
	rd.mu.Lock()
	defer rd.mu.Unlock()
	return rd.lastWidth, rd.lastHeight
}

// Cancel cancels any pending resize
func (rd *ResizeDebouncer) Cancel() {
	rd.debouncer.Cancel()
}

// DefaultResizeDuration is the recommended debounce duration for resize events
const DefaultResizeDuration = 150 * time.Millisecond
