package clock

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

// TestMain ensures stopped real timers leave no goroutines behind.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestReal_AfterFuncFires(t *testing.T) {
	c := NewReal(nil)
	done := make(chan struct{})
	c.AfterFunc(5*time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timer never fired")
	}
}

func TestReal_StopPreventsCallback(t *testing.T) {
	c := NewReal(nil)
	var called atomic.Int32
	tm := c.AfterFunc(20*time.Millisecond, func() { called.Add(1) })
	assert.True(t, tm.Stop())
	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, called.Load())
	assert.False(t, tm.Stop())
}

func TestReal_DispatcherStopWinsOverQueuedCallback(t *testing.T) {
	queue := make(chan func(), 4)
	c := NewReal(func(fn func()) { queue <- fn })

	var called atomic.Int32
	tm := c.AfterFunc(time.Millisecond, func() { called.Add(1) })

	var fn func()
	select {
	case fn = <-queue:
	case <-time.After(time.Second):
		t.Fatal("callback never dispatched")
	}
	tm.Stop()
	fn()
	assert.Zero(t, called.Load())
}

func TestReal_EveryStops(t *testing.T) {
	c := NewReal(nil)
	var n atomic.Int32
	tm := c.Every(2*time.Millisecond, func() { n.Add(1) })

	assert.Eventually(t, func() bool { return n.Load() >= 3 }, time.Second, time.Millisecond)
	tm.Stop()
	seen := n.Load()
	time.Sleep(20 * time.Millisecond)
	assert.LessOrEqual(t, n.Load(), seen+1)
}
