// Package app is the bubbletea front end of the intranet. It renders an
// intranet.Session and forwards keys to it; every narrative decision is made
// by the session.
package app

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"daydream/cmd/daydream/ui"
	"daydream/internal/clock"
	"daydream/internal/intranet"
	"daydream/internal/logging"
	"daydream/internal/reveal/corruption"
)

// glitchEvery is the redraw rate of the glitching points display.
const glitchEvery = 90 * time.Millisecond

type glitchTickMsg struct{}

// Options configures the model.
type Options struct {
	Styles   ui.Styles
	MaxWidth int
	// Clock drives UI-only timers (resize debounce). Its callbacks must be
	// dispatched through the same Bridge as the session's.
	Clock clock.Clock
}

// Model is the root bubbletea model.
type Model struct {
	session *intranet.Session
	bridge  *Bridge
	styles  ui.Styles
	layout  ui.LayoutConfig
	resize  *ui.ResizeDebouncer
	md      *markdown

	width, height int
	ready         bool

	// gateway and mall login forms
	idInput  textinput.Model
	pwInput  textinput.Model
	formStep int
	spinner  spinner.Model

	viewport viewport.Model
	doc      document
	cursor   int

	lastPath  string
	lastSpam  int
	glitching bool
	status    string
}

// New creates the model for a running session.
func New(session *intranet.Session, bridge *Bridge, opts Options) *Model {
	id := textinput.New()
	id.Placeholder = "사번 또는 아이디"
	id.CharLimit = 32
	id.Focus()

	pw := textinput.New()
	pw.Placeholder = "비밀번호"
	pw.EchoMode = textinput.EchoPassword
	pw.EchoCharacter = '•'
	pw.CharLimit = 64

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = opts.Styles.Spinner

	c := opts.Clock
	if c == nil {
		c = clock.NewReal(bridge.Dispatch)
	}

	m := &Model{
		session:  session,
		bridge:   bridge,
		styles:   opts.Styles,
		resize:   ui.NewResizeDebouncer(c, ui.DefaultResizeDuration),
		md:       newMarkdown(opts.Styles.Theme.IsDark),
		idInput:  id,
		pwInput:  pw,
		spinner:  sp,
		viewport: viewport.New(60, 10),
		lastPath: session.Path(),
		lastSpam: -1,
	}
	m.layout = ui.NewLayoutConfig(80, 24, opts.MaxWidth)
	m.loadDocument()
	return m
}

// Init starts listening for clock callbacks.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.bridge.Wait(), textinput.Blink)
}

// Update handles one message.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case callbackMsg:
		msg()
		cmds = append(cmds, m.bridge.Wait())

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout = ui.NewLayoutConfig(msg.Width, msg.Height, m.layout.MaxWidth)
		m.resizeViewport()
		rewrap := func(w, h int) {
			m.md.setWidth(m.layout.ContentWidth())
			m.loadDocument()
			logging.UIDebug("content rewrapped for %dx%d", w, h)
		}
		if !m.ready {
			m.ready = true
			rewrap(msg.Width, msg.Height)
		} else {
			m.resize.Resize(msg.Width, msg.Height, rewrap)
		}

	case glitchTickMsg:
		if m.session.State().IsPointGlitching {
			cmds = append(cmds, glitchTick())
		} else {
			m.glitching = false
		}

	case spinner.TickMsg:
		if m.session.LoggingIn() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		cmd, quit := m.handleKey(msg)
		if quit {
			return m, tea.Quit
		}
		cmds = append(cmds, cmd)
	}

	cmds = append(cmds, m.sync())
	return m, tea.Batch(cmds...)
}

// sync reacts to changes the session made on its own: navigation by an
// engine, the corruption wave and the points glitch.
func (m *Model) sync() tea.Cmd {
	var cmds []tea.Cmd
	m.resizeViewport()
	if p := m.session.Path(); p != m.lastPath {
		logging.UIDebug("path %s -> %s", m.lastPath, p)
		m.lastPath = p
		m.cursor = 0
		m.status = ""
		m.resetForm()
		m.loadDocument()
		m.viewport.GotoTop()
		m.observeScroll()
	}
	if spam := m.session.Spam(); spam != nil && spam.Running() && spam.Phase() == corruption.PhaseRetyping {
		if idx := spam.ReplaceIndex(); idx != m.lastSpam {
			m.lastSpam = idx
			m.loadDocument()
		}
	} else {
		m.lastSpam = -1
	}
	if m.session.State().IsPointGlitching && !m.glitching {
		m.glitching = true
		cmds = append(cmds, glitchTick())
	}
	return tea.Batch(cmds...)
}

func glitchTick() tea.Cmd {
	return tea.Tick(glitchEvery, func(time.Time) tea.Msg { return glitchTickMsg{} })
}

func (m *Model) resetForm() {
	m.formStep = 0
	m.idInput.SetValue("")
	m.pwInput.SetValue("")
	m.idInput.Focus()
	m.pwInput.Blur()
}

func (m *Model) resizeViewport() {
	h := m.layout.ContentHeight()
	if n := len(m.session.Toasts()); n > 0 {
		h -= 4 * n
	}
	m.viewport.Width = m.layout.ContentWidth()
	m.viewport.Height = max(h, 3)
}

// observeScroll feeds the message viewport position to the session.
func (m *Model) observeScroll() {
	if m.session.Route().Page != intranet.PageMessage {
		return
	}
	m.session.ScrollMessage(intranet.Viewport{
		Top:         m.viewport.YOffset,
		Visible:     m.viewport.Height,
		Height:      m.viewport.TotalLineCount(),
		EndingStart: m.doc.endingStart,
		EndingLen:   m.doc.endingLen,
	})
}

// submitForm advances a two step id/password form. It returns the
// credentials once both were entered.
func (m *Model) submitForm() (id, pw string, done bool) {
	if m.formStep == 0 {
		m.formStep = 1
		m.idInput.Blur()
		m.pwInput.Focus()
		return "", "", false
	}
	id, pw = strings.TrimSpace(m.idInput.Value()), m.pwInput.Value()
	m.resetForm()
	return id, pw, true
}
