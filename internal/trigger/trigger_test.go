package trigger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	_ Observer = (*Scroll)(nil)
	_ Observer = (*Visibility)(nil)
)

func TestScroll_FiresOnceNearBottom(t *testing.T) {
	calls := 0
	s := NewScroll(0, func() { calls++ })

	assert.False(t, s.Observe(0, 100, 1000))
	assert.False(t, s.Observe(849, 100, 1000))
	assert.True(t, s.Observe(850, 100, 1000), "within the 50 margin")
	assert.False(t, s.Observe(900, 100, 1000), "already fired")
	assert.Equal(t, 1, calls)
	assert.True(t, s.Done())
	assert.True(t, s.Fired())
}

func TestScroll_ShortContentFiresImmediately(t *testing.T) {
	calls := 0
	s := NewScroll(2, func() { calls++ })
	assert.True(t, s.Observe(0, 40, 20))
	assert.Equal(t, 1, calls)
}

func TestVisibility(t *testing.T) {
	calls := 0
	v := NewVisibility(0.5, func() { calls++ })

	assert.False(t, v.Observe(0))
	assert.False(t, v.Observe(0.49))
	assert.True(t, v.Observe(0.5))
	assert.False(t, v.Observe(1))
	assert.Equal(t, 1, calls)
}

func TestVisibility_ZeroThresholdNeedsSomeArea(t *testing.T) {
	v := NewVisibility(0, nil)
	assert.False(t, v.Observe(0))
	assert.True(t, v.Observe(0.01))
}

func TestDisconnect(t *testing.T) {
	calls := 0
	v := NewVisibility(0.1, func() { calls++ })
	v.Disconnect()
	assert.True(t, v.Done())
	assert.False(t, v.Observe(1))
	assert.False(t, v.Fired())
	assert.Zero(t, calls)
}

func TestVisibleRatio(t *testing.T) {
	tests := []struct {
		name                       string
		start, length, top, height int
		want                       float64
	}{
		{"above viewport", 0, 2, 10, 5, 0},
		{"below viewport", 20, 2, 10, 5, 0},
		{"fully inside", 11, 2, 10, 5, 1},
		{"half at bottom edge", 14, 2, 10, 5, 0.5},
		{"half at top edge", 9, 2, 10, 5, 0.5},
		{"empty sentinel", 10, 0, 10, 5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, VisibleRatio(tt.start, tt.length, tt.top, tt.height), 1e-9)
		})
	}
}
