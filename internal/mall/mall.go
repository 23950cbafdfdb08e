// Package mall is the employee welfare mall and its hidden easter egg: the
// right login id plus enough presses of the back button reveal a second
// mall, during which the points display glitches.
package mall

import (
	"sync"
	"time"

	"daydream/internal/clock"
	"daydream/internal/logging"
	"daydream/internal/narrative"
)

// Paths the mall navigates to.
const (
	DashboardPath = "/dashboard"
	GatewayPath   = "/"
)

// TerminateAfter is how long the hidden mall's error screen stays up.
const TerminateAfter = 3000 * time.Millisecond

// Narrative is the slice of the narrative store the mall drives.
type Narrative interface {
	Snapshot() narrative.State
	LoginToWelfareMall(id, password string) bool
	IncrementBackButton() int
	ResetBackButton()
	UnlockWelfareMallHiddenAccess()
	SetPointGlitching(on bool)
}

// View is the mall's visible state.
type View int

const (
	ViewStore      View = iota // public catalog
	ViewHidden                 // the hidden mall
	ViewTerminated             // connection terminated screen
)

// Mall is mounted while the user is on the welfare mall page.
type Mall struct {
	scope    *clock.Scope
	store    Narrative
	navigate func(string)

	mu   sync.Mutex
	view View
}

// Mount opens the mall page.
func Mount(c clock.Clock, store Narrative, navigate func(string)) *Mall {
	m := &Mall{scope: clock.NewScope(c), store: store, navigate: navigate}
	m.scope.OnRelease(func() { store.SetPointGlitching(false) })
	return m
}

// NeedsLogin reports whether the login modal should be shown.
func (m *Mall) NeedsLogin() bool {
	return !m.store.Snapshot().HasWelfareMallAccess
}

// Login signs in to the mall. Every credential is accepted.
func (m *Mall) Login(id, password string) bool {
	ok := m.store.LoginToWelfareMall(id, password)
	logging.UI("welfare mall login %q", id)
	return ok
}

// CancelLogin closes the login modal without signing in.
func (m *Mall) CancelLogin() {
	if m.NeedsLogin() {
		m.navigate(DashboardPath)
	}
}

// HiddenAvailable reports whether the hidden mall entrance is shown.
func (m *Mall) HiddenAvailable() bool {
	st := m.store.Snapshot()
	return st.WelfareMallHiddenAccess ||
		(st.WelfareMallLoginID == narrative.HiddenMallLoginID && st.BackButtonCount >= narrative.HiddenMallBackPresses)
}

// Back handles the mall's back button. Inside the hidden mall it returns to
// the store, and on the error screen it does nothing. For the chosen login
// the first presses are swallowed and counted; otherwise the counter resets
// and the user goes back to the dashboard. It reports whether navigation
// happened.
func (m *Mall) Back() bool {
	switch m.View() {
	case ViewHidden:
		m.LeaveHidden()
		return false
	case ViewTerminated:
		return false
	}
	st := m.store.Snapshot()
	if st.WelfareMallLoginID == narrative.HiddenMallLoginID && st.BackButtonCount < narrative.HiddenMallBackPresses {
		if n := m.store.IncrementBackButton(); n >= narrative.HiddenMallBackPresses {
			m.store.UnlockWelfareMallHiddenAccess()
			logging.UI("hidden mall unlocked")
		}
		return false
	}
	m.store.ResetBackButton()
	m.navigate(DashboardPath)
	return true
}

// EnterHidden opens the hidden mall if it is available.
func (m *Mall) EnterHidden() bool {
	if !m.HiddenAvailable() {
		return false
	}
	m.mu.Lock()
	m.view = ViewHidden
	m.mu.Unlock()
	m.store.SetPointGlitching(true)
	return true
}

// LeaveHidden returns from the hidden mall to the store.
func (m *Mall) LeaveHidden() {
	m.mu.Lock()
	if m.view != ViewHidden {
		m.mu.Unlock()
		return
	}
	m.view = ViewStore
	m.mu.Unlock()
	m.store.SetPointGlitching(false)
}

// ViewHiddenItems shows the error screen, then throws the user out to the
// login gateway.
func (m *Mall) ViewHiddenItems() bool {
	m.mu.Lock()
	if m.view != ViewHidden {
		m.mu.Unlock()
		return false
	}
	m.view = ViewTerminated
	m.mu.Unlock()

	m.scope.After(TerminateAfter, func() {
		m.scope.Close()
		m.navigate(GatewayPath)
	})
	return true
}

// View returns the current screen.
func (m *Mall) View() View {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view
}

// Unmount leaves the mall page. The points display stops glitching.
func (m *Mall) Unmount() {
	m.scope.Close()
}
