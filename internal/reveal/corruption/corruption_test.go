package corruption

import (
	"math/rand"
	"testing"
	"time"

	"daydream/internal/clock"
	"daydream/internal/content"
	"daydream/internal/narrative"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2025, 11, 3, 9, 0, 0, 0, time.UTC)

type router struct{ paths []string }

func (r *router) navigate(p string) { r.paths = append(r.paths, p) }

func setup(t *testing.T) (*Engine, *clock.Fake, *narrative.Store, *router) {
	t.Helper()
	fc := clock.NewFake(epoch)
	st := narrative.New()
	st.Login(narrative.Protagonist)
	r := &router{}
	return Mount(fc, st, r.navigate), fc, st, r
}

func inboxIDs(st *narrative.Store) []string {
	var ids []string
	for _, m := range content.Inbox(epoch, st.Snapshot()) {
		ids = append(ids, m.ID)
	}
	return ids
}

func TestTrigger_Guards(t *testing.T) {
	e, _, st, _ := setup(t)
	assert.False(t, e.Trigger("1"))
	assert.False(t, e.Trigger(content.SecurityMessageID))
	assert.False(t, e.Running())
	assert.False(t, st.Snapshot().IsNavigationDisabled)

	assert.True(t, e.Trigger(content.SpamMessageID))
	assert.False(t, e.Trigger(content.SpamMessageID), "already running")
	assert.True(t, st.Snapshot().IsNavigationDisabled)
}

func TestTrigger_NoopOnceDeleted(t *testing.T) {
	e, _, st, _ := setup(t)
	st.DeleteSpamMessage()
	assert.False(t, e.Trigger(content.SpamMessageID))
}

func TestScenario_BackNavigation(t *testing.T) {
	e, fc, st, r := setup(t)
	require.Contains(t, inboxIDs(st), content.SpamMessageID)

	require.True(t, e.Trigger(content.SpamMessageID))
	assert.Equal(t, PhaseRetyping, e.Phase())

	prev := e.ReplaceIndex()
	for elapsed := time.Duration(0); elapsed < 10000*time.Millisecond-8*time.Millisecond; elapsed += 8 * time.Millisecond {
		fc.Advance(8 * time.Millisecond)
		cur := e.ReplaceIndex()
		require.Equal(t, prev+1, cur, "one step per tick")
		require.True(t, st.Snapshot().IsNavigationDisabled)
		prev = cur
	}
	assert.Equal(t, PhaseRetyping, e.Phase())
	assert.Contains(t, inboxIDs(st), content.SpamMessageID)

	fc.Advance(8 * time.Millisecond) // exactly 10000ms
	assert.Equal(t, PhaseBlackout, e.Phase())
	assert.NotContains(t, inboxIDs(st), content.SpamMessageID)
	assert.Equal(t, narrative.CorruptedName, st.Snapshot().UserName)
	frozen := e.ReplaceIndex()

	fc.Advance(2000 * time.Millisecond)
	assert.Equal(t, PhaseFadeIn, e.Phase())
	assert.Equal(t, frozen, e.ReplaceIndex(), "wave stopped")
	assert.Empty(t, r.paths)
	assert.True(t, st.Snapshot().IsNavigationDisabled)

	fc.Advance(500 * time.Millisecond)
	assert.Equal(t, PhaseDone, e.Phase())
	assert.Equal(t, []string{DashboardPath}, r.paths)
	assert.False(t, st.Snapshot().IsNavigationDisabled)
	assert.Zero(t, fc.Pending())
}

func TestDwellPath(t *testing.T) {
	e, fc, st, _ := setup(t)

	assert.False(t, e.ArmDwell("1"))
	assert.True(t, e.ArmDwell(content.SpamMessageID))
	assert.False(t, e.ArmDwell(content.SpamMessageID))

	fc.Advance(4999 * time.Millisecond)
	assert.False(t, e.Running())
	fc.Advance(time.Millisecond)
	assert.True(t, e.Running())
	assert.True(t, st.Snapshot().IsNavigationDisabled)
}

func TestDwellAfterBackDoesNotRestart(t *testing.T) {
	e, fc, _, r := setup(t)
	e.ArmDwell(content.SpamMessageID)
	fc.Advance(time.Second)
	require.True(t, e.Trigger(content.SpamMessageID))
	fc.Advance(time.Minute)
	assert.Equal(t, []string{DashboardPath}, r.paths)
}

func TestUnmountAtAnyTickReleasesLock(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 150; i++ {
		at := time.Duration(rng.Int63n(int64(13 * time.Second)))
		t.Run(at.String(), func(t *testing.T) {
			e, fc, st, r := setup(t)
			require.True(t, e.Trigger(content.SpamMessageID))
			fc.Advance(at)
			e.Unmount()

			assert.False(t, st.Snapshot().IsNavigationDisabled)
			assert.Zero(t, fc.Pending())
			idx := e.ReplaceIndex()
			fc.Advance(time.Minute)
			assert.Equal(t, idx, e.ReplaceIndex())
			assert.LessOrEqual(t, len(r.paths), 1)
		})
	}
}

func TestUnmountBeforeTrigger(t *testing.T) {
	e, _, st, _ := setup(t)
	e.Unmount()
	assert.False(t, e.Trigger(content.SpamMessageID))
	assert.False(t, e.ArmDwell(content.SpamMessageID))
	assert.False(t, st.Snapshot().IsNavigationDisabled)
}

func TestTextFollowsWave(t *testing.T) {
	fc := clock.NewFake(epoch)
	st := narrative.New()
	e := Mount(fc, st, nil, WithText("abcd", "Z"), WithTiming(Timing{
		Tick: 10 * time.Millisecond, Duration: time.Second, Blackout: time.Second, Fade: time.Second, Dwell: time.Second,
	}))
	assert.Equal(t, "abcd", e.Text())
	e.Trigger(content.SpamMessageID)
	fc.Advance(20 * time.Millisecond)
	assert.Equal(t, "ZZcd", e.Text())
	fc.Advance(40 * time.Millisecond)
	assert.Equal(t, "ZZZZZZ", e.Text())
}
