package app

import (
	"errors"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"daydream/internal/content"
	"daydream/internal/intranet"
	"daydream/internal/logging"
	"daydream/internal/mall"
	"daydream/internal/reveal/corruption"
)

// menuItem is one sidebar entry.
type menuItem struct {
	key   string
	label string
	path  string
}

var menu = []menuItem{
	{"1", "대시보드", intranet.PathDashboard},
	{"2", "쪽지함", intranet.PathMessages},
	{"3", "공지사항", intranet.PathNotices},
	{"4", "그림자 관리", intranet.PathShadows},
	{"5", "복지몰", intranet.PathMall},
}

const logoutKey = "0"

// handleKey routes a key press. It reports whether the program should quit.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	// A running reveal owns the screen.
	if m.session.Overlay() != nil || m.revealing() {
		return nil, false
	}

	route := m.session.Route()
	if m.typing() {
		return m.handleForm(msg), false
	}

	switch msg.String() {
	case "q":
		return nil, true
	case "esc", "backspace", "b":
		m.report(m.session.Back())
		return nil, false
	case logoutKey:
		m.report(m.session.Logout())
		return nil, false
	}
	for _, it := range menu {
		if msg.String() == it.key {
			m.report(m.session.Navigate(it.path))
			return nil, false
		}
	}

	switch route.Page {
	case intranet.PageMessages:
		inbox := m.session.Inbox()
		if m.moveCursor(msg, len(inbox)) {
			return nil, false
		}
		if msg.String() == "enter" && m.cursor < len(inbox) {
			m.report(m.session.Navigate(intranet.MessagePath(inbox[m.cursor].ID)))
		}
	case intranet.PageNotices:
		notices := m.session.Notices()
		if m.moveCursor(msg, len(notices)) {
			return nil, false
		}
		if msg.String() == "enter" && m.cursor < len(notices) {
			m.report(m.session.Navigate(intranet.NoticePath(notices[m.cursor].ID)))
		}
	case intranet.PageShadows:
		shadows := m.session.Shadows()
		if m.moveCursor(msg, len(shadows)) {
			return nil, false
		}
		if (msg.String() == "enter" || msg.String() == "a") && m.cursor < len(shadows) {
			m.report(m.session.AssignShadow(shadows[m.cursor].Code))
		}
	case intranet.PageMessage, intranet.PageNotice:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		m.observeScroll()
		return cmd, false
	case intranet.PageMall:
		m.handleMall(msg)
	}
	return nil, false
}

func (m *Model) handleMall(msg tea.KeyMsg) {
	mm := m.session.Mall()
	if mm == nil {
		return
	}
	switch mm.View() {
	case mall.ViewStore:
		if m.moveCursor(msg, len(mall.Catalog)) {
			return
		}
		if msg.String() == "h" && mm.EnterHidden() {
			logging.UI("hidden mall entered")
		}
	case mall.ViewHidden:
		if msg.String() == "enter" {
			mm.ViewHiddenItems()
		}
	}
}

// typing reports whether a text form has focus.
func (m *Model) typing() bool {
	switch m.session.Route().Page {
	case intranet.PageGateway:
		return !m.session.LoggingIn()
	case intranet.PageMall:
		mm := m.session.Mall()
		return mm != nil && mm.NeedsLogin()
	}
	return false
}

func (m *Model) handleForm(msg tea.KeyMsg) tea.Cmd {
	page := m.session.Route().Page
	switch msg.Type {
	case tea.KeyEsc:
		if page == intranet.PageMall {
			m.session.Mall().CancelLogin()
		} else if m.formStep == 1 {
			m.resetForm()
		}
		return nil
	case tea.KeyEnter:
		id, pw, done := m.submitForm()
		if !done {
			return textinput.Blink
		}
		if page == intranet.PageMall {
			m.session.Mall().Login(id, pw)
			return nil
		}
		if m.session.SubmitLogin(id, pw) {
			return m.spinner.Tick
		}
		return nil
	}

	var cmd tea.Cmd
	if m.formStep == 0 {
		m.idInput, cmd = m.idInput.Update(msg)
	} else {
		m.pwInput, cmd = m.pwInput.Update(msg)
	}
	return cmd
}

// moveCursor handles list navigation keys.
func (m *Model) moveCursor(msg tea.KeyMsg, n int) bool {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return true
	case "down", "j":
		if m.cursor < n-1 {
			m.cursor++
		}
		return true
	}
	return false
}

// revealing reports whether the corruption blacked out the screen.
func (m *Model) revealing() bool {
	spam := m.session.Spam()
	if spam == nil {
		return false
	}
	ph := spam.Phase()
	return ph == corruption.PhaseBlackout || ph == corruption.PhaseFadeIn
}

// report shows an action error in the footer.
func (m *Model) report(err error) {
	switch {
	case err == nil:
		m.status = ""
	case errors.Is(err, intranet.ErrNavigationLocked):
		m.status = "지금은 이동할 수 없습니다."
	case errors.Is(err, content.ErrNotFound):
		m.status = "삭제되었거나 존재하지 않는 글입니다."
	default:
		m.status = err.Error()
	}
	if err != nil {
		logging.UIDebug("action failed: %v", err)
	}
}
