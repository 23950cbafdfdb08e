package jumpscare

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"daydream/internal/clock"
	"daydream/internal/narrative"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2025, 11, 3, 9, 0, 0, 0, time.UTC)

func mount(t *testing.T) (*Engine, *clock.Fake, *narrative.Store, *int) {
	t.Helper()
	fc := clock.NewFake(epoch)
	st := narrative.New()
	completions := 0
	e := Mount(fc, st, func() { completions++ }, WithRand(rand.New(rand.NewSource(7))))
	return e, fc, st, &completions
}

func TestFullSequence(t *testing.T) {
	e, fc, st, completions := mount(t)

	assert.Equal(t, PhaseSilence, e.Phase())
	assert.True(t, st.Snapshot().IsNavigationDisabled)

	fc.Advance(299 * time.Millisecond)
	assert.Equal(t, PhaseSilence, e.Phase())
	fc.Advance(1 * time.Millisecond)
	assert.Equal(t, PhaseTypingOne, e.Phase())
	assert.Equal(t, "누", e.View().Text)

	fc.Advance(360 * time.Millisecond) // three more runes at 120ms
	assert.Equal(t, PhraseOne, e.View().Text)
	fc.Advance(120 * time.Millisecond) // loop wraps
	assert.Equal(t, PhraseOne+" 누", e.View().Text)

	fc.Advance(5000*time.Millisecond - 780*time.Millisecond)
	assert.Equal(t, PhaseTypingTwo, e.Phase())
	assert.Equal(t, "찾", e.View().Text, "text restarts for the second phrase")

	fc.Advance(120 * time.Millisecond) // three runes at 40ms
	assert.Equal(t, PhraseTwo, e.View().Text)

	fc.Advance(10000*time.Millisecond - 5120*time.Millisecond)
	assert.Equal(t, PhaseTerminalLog, e.Phase())
	assert.Empty(t, e.View().Lines)

	fc.Advance(80 * time.Millisecond)
	require.Len(t, e.View().Lines, 1)
	assert.False(t, e.View().Lines[0].Abnormal)

	fc.Advance(12000*time.Millisecond - 80*time.Millisecond - time.Millisecond)
	lines := e.View().Lines
	require.Len(t, lines, len(normalLines)+len(abnormalLines))
	tracking := lines[len(lines)-1]
	assert.True(t, tracking.Abnormal)
	assert.True(t, tracking.Blinking)
	assert.False(t, strings.HasSuffix(tracking.Text, FinishSuffix))

	fc.Advance(time.Millisecond)
	tracking = e.View().Lines[len(lines)-1]
	assert.True(t, strings.HasSuffix(tracking.Text, "[Finish]"))
	assert.False(t, tracking.Blinking)
	assert.Equal(t, PhaseTerminalLog, e.Phase())
	assert.True(t, st.Snapshot().IsNavigationDisabled)

	fc.Advance(3000*time.Millisecond - time.Millisecond)
	assert.Zero(t, *completions)
	fc.Advance(time.Millisecond)
	assert.Equal(t, PhaseEnd, e.Phase())
	assert.Equal(t, 1, *completions)
	assert.True(t, e.Completed())
	assert.True(t, e.Done())
	assert.False(t, st.Snapshot().IsNavigationDisabled)
	assert.Zero(t, fc.Pending())

	fc.Advance(time.Minute)
	e.Unmount()
	assert.Equal(t, 1, *completions)
}

func TestAbnormalLinesFollowNormalLines(t *testing.T) {
	e, fc, _, _ := mount(t)
	fc.Advance(10000 * time.Millisecond)

	fc.Advance(time.Duration(len(normalLines)) * 80 * time.Millisecond)
	require.Len(t, e.View().Lines, len(normalLines))

	fc.Advance(399 * time.Millisecond)
	require.Len(t, e.View().Lines, len(normalLines))
	fc.Advance(time.Millisecond)
	lines := e.View().Lines
	require.Len(t, lines, len(normalLines)+1)
	assert.True(t, lines[len(lines)-1].Abnormal)
}

func TestTypingAccelerates(t *testing.T) {
	ty := DefaultTiming().TypingOne
	d := ty.Start
	prev := d
	for i := 0; i < 100; i++ {
		d = ty.next(d)
		assert.LessOrEqual(t, d, prev)
		assert.GreaterOrEqual(t, d, ty.Floor)
		prev = d
	}
	assert.Equal(t, ty.Floor, d)
	assert.Equal(t, 3*time.Millisecond, DefaultTiming().TypingTwo.next(time.Millisecond))
}

func TestUnmountAtAnyTickReleasesLock(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	total := int64(26 * time.Second)
	for i := 0; i < 150; i++ {
		at := time.Duration(rng.Int63n(total))
		t.Run(at.String(), func(t *testing.T) {
			e, fc, st, completions := mount(t)
			fc.Advance(at)
			e.Unmount()

			assert.False(t, st.Snapshot().IsNavigationDisabled)
			assert.Zero(t, fc.Pending())
			before := *completions
			fc.Advance(time.Minute)
			assert.Equal(t, before, *completions, "nothing runs after unmount")
			assert.LessOrEqual(t, *completions, 1)
		})
	}
}

func TestUnmountTwice(t *testing.T) {
	e, _, st, completions := mount(t)
	e.Unmount()
	e.Unmount()
	assert.False(t, st.Snapshot().IsNavigationDisabled)
	assert.Zero(t, *completions)
}

func TestPhaseHook(t *testing.T) {
	fc := clock.NewFake(epoch)
	var phases []Phase
	Mount(fc, narrative.New(), nil, WithPhaseHook(func(p Phase) { phases = append(phases, p) }))
	fc.Advance(30 * time.Second)
	assert.Equal(t, []Phase{PhaseTypingOne, PhaseTypingTwo, PhaseTerminalLog, PhaseEnd}, phases)
}

func TestStamp(t *testing.T) {
	now := epoch
	rng := rand.New(rand.NewSource(1))

	for i := 1; i < 50; i++ {
		if i%3 == 0 {
			continue
		}
		got, err := time.ParseInLocation(StampLayout, Stamp(rng, now, i, 250*time.Millisecond, 100*time.Millisecond), time.UTC)
		require.NoError(t, err)
		lo := now.Add(time.Duration(i) * 250 * time.Millisecond).Truncate(time.Second)
		hi := now.Add(time.Duration(i)*250*time.Millisecond + 100*time.Millisecond)
		assert.False(t, got.Before(lo) || got.After(hi), "line %d stamped %v", i, got)
	}

	old, current := 0, 0
	for i := 0; i < 400; i++ {
		got, err := time.ParseInLocation(StampLayout, Stamp(rng, now, 0, 0, 0), time.UTC)
		require.NoError(t, err)
		if got.Year() < 2020 {
			old++
		} else {
			current++
		}
	}
	assert.Positive(t, old)
	assert.Positive(t, current)
}
