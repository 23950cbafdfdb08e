package mall

import (
	"testing"
	"time"

	"daydream/internal/clock"
	"daydream/internal/narrative"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type router struct{ paths []string }

func (r *router) navigate(p string) { r.paths = append(r.paths, p) }

func setup(t *testing.T) (*Mall, *clock.Fake, *narrative.Store, *router) {
	t.Helper()
	fc := clock.NewFake(time.Date(2025, 11, 3, 9, 0, 0, 0, time.UTC))
	st := narrative.New()
	st.Login(narrative.Protagonist)
	r := &router{}
	return Mount(fc, st, r.navigate), fc, st, r
}

func TestLoginFlow(t *testing.T) {
	m, _, st, r := setup(t)
	assert.True(t, m.NeedsLogin())

	m.CancelLogin()
	assert.Equal(t, []string{DashboardPath}, r.paths)

	assert.True(t, m.Login("someone", "pw"))
	assert.False(t, m.NeedsLogin())
	assert.Equal(t, "someone", st.Snapshot().WelfareMallLoginID)
}

func TestBack_OrdinaryLoginLeaves(t *testing.T) {
	m, _, st, r := setup(t)
	m.Login("someone", "pw")
	assert.True(t, m.Back())
	assert.Equal(t, []string{DashboardPath}, r.paths)
	assert.Zero(t, st.Snapshot().BackButtonCount)
}

func TestBack_HiddenUnlock(t *testing.T) {
	m, _, st, r := setup(t)
	m.Login(narrative.HiddenMallLoginID, "pw")

	for i := 1; i < narrative.HiddenMallBackPresses; i++ {
		assert.False(t, m.Back())
		assert.False(t, m.HiddenAvailable())
	}
	assert.False(t, m.Back())
	assert.True(t, m.HiddenAvailable())
	assert.True(t, st.Snapshot().WelfareMallHiddenAccess)
	assert.Empty(t, r.paths)

	// The next press leaves and resets the counter; access stays.
	assert.True(t, m.Back())
	assert.Zero(t, st.Snapshot().BackButtonCount)
	assert.True(t, m.HiddenAvailable())
}

func TestHiddenMall(t *testing.T) {
	m, fc, st, r := setup(t)
	assert.False(t, m.EnterHidden())
	assert.False(t, m.ViewHiddenItems())

	st.UnlockWelfareMallHiddenAccess()
	require.True(t, m.EnterHidden())
	assert.Equal(t, ViewHidden, m.View())
	assert.True(t, st.Snapshot().IsPointGlitching)

	require.True(t, m.ViewHiddenItems())
	assert.Equal(t, ViewTerminated, m.View())
	fc.Advance(TerminateAfter - time.Millisecond)
	assert.Empty(t, r.paths)
	fc.Advance(time.Millisecond)
	assert.Equal(t, []string{GatewayPath}, r.paths)
	assert.False(t, st.Snapshot().IsPointGlitching)
}

func TestBackInsideHiddenMall(t *testing.T) {
	m, _, st, r := setup(t)
	st.UnlockWelfareMallHiddenAccess()
	require.True(t, m.EnterHidden())

	assert.False(t, m.Back())
	assert.Equal(t, ViewStore, m.View())
	assert.False(t, st.Snapshot().IsPointGlitching)
	assert.Empty(t, r.paths)

	m.EnterHidden()
	m.ViewHiddenItems()
	assert.False(t, m.Back(), "error screen ignores back")
	assert.Equal(t, ViewTerminated, m.View())
}

func TestUnmountStopsGlitch(t *testing.T) {
	m, fc, st, r := setup(t)
	st.UnlockWelfareMallHiddenAccess()
	m.EnterHidden()
	m.ViewHiddenItems()
	m.Unmount()
	fc.Advance(time.Minute)
	assert.False(t, st.Snapshot().IsPointGlitching)
	assert.Empty(t, r.paths)
}

func TestByCategory(t *testing.T) {
	assert.Len(t, ByCategory(""), len(Catalog))
	for _, p := range ByCategory(CategoryService) {
		assert.Equal(t, CategoryService, p.Category)
	}
}
