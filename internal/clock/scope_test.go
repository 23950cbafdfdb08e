package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScope_CloseCancelsTimersAndReleasesOnce(t *testing.T) {
	c := NewFake(epoch)
	s := NewScope(c)

	fired := 0
	ticks := 0
	released := 0
	s.After(100*time.Millisecond, func() { fired++ })
	s.Every(10*time.Millisecond, func() { ticks++ })
	s.OnRelease(func() { released++ })

	c.Advance(25 * time.Millisecond)
	assert.Equal(t, 2, ticks)

	s.Close()
	s.Close()
	c.Advance(time.Second)

	assert.Zero(t, fired)
	assert.Equal(t, 2, ticks)
	assert.Equal(t, 1, released)
	assert.Zero(t, c.Pending())
	assert.True(t, s.Closed())
}

func TestScope_ReleaseOrderIsLIFO(t *testing.T) {
	s := NewScope(NewFake(epoch))
	var order []int
	s.OnRelease(func() { order = append(order, 1) })
	s.OnRelease(func() { order = append(order, 2) })
	s.Close()
	assert.Equal(t, []int{2, 1}, order)
}

func TestScope_ClosedScopeIgnoresNewWork(t *testing.T) {
	c := NewFake(epoch)
	s := NewScope(c)
	s.Close()

	fired := false
	tm := s.After(time.Millisecond, func() { fired = true })
	c.Advance(time.Second)
	assert.False(t, fired)
	assert.False(t, tm.Stop())

	ran := false
	s.OnRelease(func() { ran = true })
	assert.True(t, ran)
}

func TestScope_FiredOneShotsAreForgotten(t *testing.T) {
	c := NewFake(epoch)
	s := NewScope(c)
	for i := 0; i < 50; i++ {
		s.After(time.Duration(i)*time.Millisecond, func() {})
	}
	c.Advance(time.Second)
	assert.Zero(t, s.Pending())
}

func TestScope_CloseFromInsideCallback(t *testing.T) {
	c := NewFake(epoch)
	s := NewScope(c)
	later := false
	s.After(10*time.Millisecond, func() { s.Close() })
	s.After(10*time.Millisecond, func() { later = true })
	c.Advance(time.Second)
	assert.False(t, later)
}
