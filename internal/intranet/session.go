// Package intranet is the page controller of the simulated intranet. It owns
// the current path, mounts the reveal engines for the page being shown and
// turns user actions (open, back, scroll, logout) into narrative operations.
// Rendering lives elsewhere; the terminal UI only reads from a Session and
// forwards input to it.
//
// A Session is not safe for concurrent use. The host calls it from one
// goroutine, and its clock delivers timer callbacks on that same goroutine.
package intranet

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"daydream/internal/clock"
	"daydream/internal/content"
	"daydream/internal/logging"
	"daydream/internal/mall"
	"daydream/internal/narrative"
	"daydream/internal/reveal/corruption"
	"daydream/internal/reveal/jumpscare"
	"daydream/internal/reveal/security"
	"daydream/internal/shadow"
	"daydream/internal/trigger"
)

var (
	// ErrNavigationLocked is returned while a reveal holds the navigation lock.
	ErrNavigationLocked = errors.New("navigation is locked")
	// ErrUnknownPage is returned for a path nothing renders.
	ErrUnknownPage = errors.New("unknown page")
)

// Settings are the tunable delays of a session.
type Settings struct {
	SecurityDelay  time.Duration
	SpamTick       time.Duration
	JumpscareDelay time.Duration
	LoginDelay     time.Duration
}

// DefaultSettings is the scripted pacing.
func DefaultSettings() Settings {
	return Settings{
		SecurityDelay:  security.DefaultDelay,
		SpamTick:       corruption.DefaultTiming().Tick,
		JumpscareDelay: 5000 * time.Millisecond,
		LoginDelay:     800 * time.Millisecond,
	}
}

// Option configures a Session.
type Option func(*Session)

// WithSettings overrides the pacing. Zero fields keep their defaults.
func WithSettings(st Settings) Option {
	return func(s *Session) {
		d := DefaultSettings()
		if st.SecurityDelay > 0 {
			d.SecurityDelay = st.SecurityDelay
		}
		if st.SpamTick > 0 {
			d.SpamTick = st.SpamTick
		}
		if st.JumpscareDelay > 0 {
			d.JumpscareDelay = st.JumpscareDelay
		}
		if st.LoginDelay > 0 {
			d.LoginDelay = st.LoginDelay
		}
		s.settings = d
	}
}

// WithPhaseHook observes jumpscare phase changes, for audio.
func WithPhaseHook(fn func(jumpscare.Phase)) Option {
	return func(s *Session) { s.phaseHook = fn }
}

// WithRand sets the source for cosmetic randomness.
func WithRand(r *rand.Rand) Option {
	return func(s *Session) { s.rng = r }
}

// ActiveToast is a toast currently on screen.
type ActiveToast struct {
	ID int
	security.Toast
}

// page holds whatever is mounted for the current path. Closing its scope
// tears all of it down.
type page struct {
	route   Route
	scope   *clock.Scope
	overlay *jumpscare.Engine
	spam    *corruption.Engine
	reading *security.Reading
	scroll  *trigger.Scroll
	mall    *mall.Mall
}

// Session is one running intranet.
type Session struct {
	clock     clock.Clock
	store     *narrative.Store
	shadows   *shadow.Store
	security  *security.Progression
	settings  Settings
	phaseHook func(jumpscare.Phase)
	rng       *rand.Rand

	path   string
	page   *page
	toasts []ActiveToast
	nextID int
	scope  *clock.Scope // session lifetime: toasts

	loggingIn   bool
	unsubscribe func()
}

// New starts a session on top of the narrative store. The shadow roster is
// reset together with the narrative. A security timer that was running when
// the previous session ended is re-armed.
func New(c clock.Clock, store *narrative.Store, shadows *shadow.Store, opts ...Option) *Session {
	s := &Session{
		clock:    c,
		store:    store,
		shadows:  shadows,
		settings: DefaultSettings(),
		scope:    clock.NewScope(c),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(c.Now().UnixNano()))
	}
	if shadows != nil {
		store.AddDependent(shadows)
	}
	s.security = security.New(c, store, s.pushToast, s.settings.SecurityDelay)
	s.unsubscribe = store.Subscribe(func(narrative.State) {
		s.security.ObservePath(s.path)
	})
	s.security.Resume()

	start := PathGateway
	if store.Snapshot().IsLoggedIn {
		start = PathDashboard
	}
	s.enter(start)
	return s
}

// Close unmounts the current page and stops every timer of the session.
func (s *Session) Close() {
	s.leave()
	s.security.Stop()
	s.scope.Close()
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

// Store returns the narrative store.
func (s *Session) Store() *narrative.Store { return s.store }

// State returns the current narrative state.
func (s *Session) State() narrative.State { return s.store.Snapshot() }

// Path returns the current path.
func (s *Session) Path() string { return s.path }

// Route returns the parsed current path.
func (s *Session) Route() Route { return s.page.route }

// Locked reports whether navigation is disabled.
func (s *Session) Locked() bool { return s.store.Snapshot().IsNavigationDisabled }

// Navigate moves to path. It is refused while a reveal holds the lock.
// Signed-out sessions always land on the gateway.
func (s *Session) Navigate(path string) error {
	if s.Locked() {
		logging.UIDebug("navigation to %s refused: locked", path)
		return ErrNavigationLocked
	}
	r := ParseRoute(path)
	if r.Page == PageUnknown {
		return fmt.Errorf("%s: %w", path, ErrUnknownPage)
	}
	if !s.store.Snapshot().IsLoggedIn && r.Page != PageGateway {
		path, r = PathGateway, Route{Page: PageGateway}
	}
	switch r.Page {
	case PageMessage:
		if _, err := content.FindMessage(s.Inbox(), r.ID); err != nil {
			return err
		}
	case PageNotice:
		if _, err := content.FindNotice(s.clock.Now(), r.ID); err != nil {
			return err
		}
	}
	s.leave()
	s.enter(path)
	return nil
}

// follow is the navigate callback handed to engines. They release the lock
// before calling it.
func (s *Session) follow(path string) {
	if err := s.Navigate(path); err != nil {
		logging.Get(logging.CategoryUI).Warn("engine navigation to %s failed: %v", path, err)
	}
}

// leave unmounts the current page. The page record stays until enter
// replaces it; everything on it is closed.
func (s *Session) leave() {
	p := s.page
	if p == nil {
		return
	}
	if p.reading != nil {
		p.reading.Close()
	}
	if p.spam != nil {
		p.spam.Unmount()
	}
	if p.overlay != nil {
		p.overlay.Unmount()
	}
	if p.mall != nil {
		p.mall.Unmount()
	}
	p.scope.Close()
}

func (s *Session) enter(path string) {
	r := ParseRoute(path)
	p := &page{route: r, scope: clock.NewScope(s.clock)}
	s.page = p
	s.path = path
	s.loggingIn = false
	logging.UIDebug("enter %s", path)

	switch r.Page {
	case PageMessage:
		s.mountMessage(p)
	case PageNotice:
		s.mountNotice(p)
	case PageMall:
		p.mall = mall.Mount(s.clock, s.store, s.follow)
	}
	s.security.ObservePath(path)
}

func (s *Session) mountMessage(p *page) {
	timing := corruption.DefaultTiming()
	timing.Tick = s.settings.SpamTick
	p.spam = corruption.Mount(s.clock, s.store, s.follow, corruption.WithTiming(timing))
	id := p.route.ID
	p.scroll = trigger.NewScroll(ScrollMargin, func() { p.spam.ArmDwell(id) })
	if id == content.SecurityMessageID {
		p.reading = s.security.OpenMessage()
	}
}

func (s *Session) mountNotice(p *page) {
	switch p.route.ID {
	case content.SecurityNoticeID:
		if s.security.Start() {
			logging.Narrative("security timer started from notice %s", p.route.ID)
		}
	case content.JumpscareNoticeID:
		if s.store.Snapshot().JumpscareViewed {
			return
		}
		p.scope.After(s.settings.JumpscareDelay, func() { s.mountJumpscare(p) })
	}
}

func (s *Session) mountJumpscare(p *page) {
	opts := []jumpscare.Option{jumpscare.WithRand(s.rng)}
	if s.phaseHook != nil {
		opts = append(opts, jumpscare.WithPhaseHook(s.phaseHook))
	}
	p.overlay = jumpscare.Mount(s.clock, s.store, func() {
		s.store.SetJumpscareViewed()
		s.follow(PathNotices)
	}, opts...)
}

// Back is the page's back action. On the spam message the first press starts
// the corruption instead of leaving; in the mall it feeds the back counter.
func (s *Session) Back() error {
	if s.Locked() {
		return ErrNavigationLocked
	}
	p := s.page
	switch p.route.Page {
	case PageGateway:
		return nil
	case PageMessage:
		if p.spam.Trigger(p.route.ID) {
			return nil
		}
		return s.Navigate(PathMessages)
	case PageNotice:
		return s.Navigate(PathNotices)
	case PageMall:
		p.mall.Back()
		return nil
	}
	return s.Navigate(PathDashboard)
}

// SubmitLogin verifies the credentials for a moment and signs in. Every
// credential is accepted. It reports false if a login is already pending.
func (s *Session) SubmitLogin(id, password string) bool {
	if s.loggingIn || s.page.route.Page != PageGateway {
		return false
	}
	s.loggingIn = true
	id = strings.TrimSpace(id)
	p := s.page
	p.scope.After(s.settings.LoginDelay, func() {
		s.loggingIn = false
		s.store.Login(id)
		s.follow(PathDashboard)
	})
	logging.Session("login submitted for %q", id)
	return true
}

// LoggingIn reports whether the login spinner is showing.
func (s *Session) LoggingIn() bool { return s.loggingIn }

// Logout discards the whole narrative and returns to the gateway.
func (s *Session) Logout() error {
	if s.Locked() {
		return ErrNavigationLocked
	}
	s.leave()
	s.security.Stop()
	s.store.Reset()
	s.enter(PathGateway)
	return nil
}

// ScrollMargin is how close to the bottom, in lines, counts as the end of a
// message.
const ScrollMargin = 2

// Viewport describes the scroll position of a message detail view, in lines.
// The ending is the line range holding the message's last paragraph.
type Viewport struct {
	Top         int
	Visible     int
	Height      int
	EndingStart int
	EndingLen   int
}

// ScrollMessage feeds the message view's scroll position to the triggers.
func (s *Session) ScrollMessage(v Viewport) {
	p := s.page
	if p.route.Page != PageMessage {
		return
	}
	p.scroll.Observe(v.Top, v.Visible, v.Height)
	if p.reading != nil {
		p.reading.ObserveEnding(trigger.VisibleRatio(v.EndingStart, v.EndingLen, v.Top, v.Visible))
	}
}

// Overlay returns the mounted jumpscare, or nil.
func (s *Session) Overlay() *jumpscare.Engine {
	if s.page.overlay == nil || s.page.overlay.Done() {
		return nil
	}
	return s.page.overlay
}

// Spam returns the corruption engine of the message page, or nil.
func (s *Session) Spam() *corruption.Engine { return s.page.spam }

// Mall returns the mall controller of the mall page, or nil.
func (s *Session) Mall() *mall.Mall { return s.page.mall }

// Inbox lists the messages for the current state.
func (s *Session) Inbox() []content.Message {
	return content.Inbox(s.clock.Now(), s.store.Snapshot())
}

// Message returns the message of the current detail page.
func (s *Session) Message() (content.Message, error) {
	if s.page.route.Page != PageMessage {
		return content.Message{}, content.ErrNotFound
	}
	return content.FindMessage(s.Inbox(), s.page.route.ID)
}

// Notices lists the notice board.
func (s *Session) Notices() []content.Notice {
	return content.Notices(s.clock.Now())
}

// Notice returns the notice of the current detail page.
func (s *Session) Notice() (content.Notice, error) {
	if s.page.route.Page != PageNotice {
		return content.Notice{}, content.ErrNotFound
	}
	return content.FindNotice(s.clock.Now(), s.page.route.ID)
}

// Shadows lists the managed entities.
func (s *Session) Shadows() []shadow.Entity {
	if s.shadows == nil {
		return nil
	}
	return s.shadows.All()
}

// AssignShadow assigns a shadow to the signed-in user.
func (s *Session) AssignShadow(code string) error {
	if s.shadows == nil {
		return shadow.ErrUnknownCode
	}
	st := s.store.Snapshot()
	return s.shadows.Assign(code, st.UserName, st.Team)
}

// Points renders the welfare point balance. While the points glitch the
// digits are noise.
func (s *Session) Points() string {
	st := s.store.Snapshot()
	if st.IsPointGlitching {
		digits := make([]byte, 6)
		for i := range digits {
			digits[i] = byte('0' + s.rng.Intn(10))
		}
		return string(digits) + " P"
	}
	return groupThousands(st.Points) + " P"
}

func groupThousands(n int) string {
	raw := strconv.Itoa(n)
	neg := strings.HasPrefix(raw, "-")
	raw = strings.TrimPrefix(raw, "-")
	var b strings.Builder
	for i, r := range raw {
		if i > 0 && (len(raw)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

func (s *Session) pushToast(t security.Toast) {
	s.nextID++
	id := s.nextID
	s.toasts = append(s.toasts, ActiveToast{ID: id, Toast: t})
	logging.UI("toast %q", t.Title)
	s.scope.After(t.Duration, func() { s.DismissToast(id) })
}

// Toasts returns the toasts on screen, oldest first.
func (s *Session) Toasts() []ActiveToast {
	return append([]ActiveToast(nil), s.toasts...)
}

// DismissToast removes a toast.
func (s *Session) DismissToast(id int) {
	for i, t := range s.toasts {
		if t.ID == id {
			s.toasts = append(s.toasts[:i], s.toasts[i+1:]...)
			return
		}
	}
}
