package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"daydream/cmd/daydream/ui"
	"daydream/internal/content"
	"daydream/internal/intranet"
	"daydream/internal/mall"
	"daydream/internal/reveal/corruption"
	"daydream/internal/reveal/jumpscare"
	"daydream/internal/reveal/security"
)

// View renders the whole screen.
func (m *Model) View() string {
	if m.layout.TooSmall() {
		return m.styles.Warning.Render(fmt.Sprintf("터미널이 너무 작습니다 (최소 %dx%d)",
			ui.MinimumTerminalWidth, ui.MinimumTerminalHeight))
	}
	if ov := m.session.Overlay(); ov != nil {
		return m.overlayView(ov.View())
	}
	if spam := m.session.Spam(); spam != nil {
		switch spam.Phase() {
		case corruption.PhaseBlackout:
			return m.fill(m.styles.Blackout, "")
		case corruption.PhaseFadeIn:
			return m.fill(m.styles.Terminal, m.styles.Muted.Render("..."))
		}
	}
	if mm := m.session.Mall(); mm != nil && mm.View() == mall.ViewTerminated {
		return m.fill(m.styles.Horror, m.styles.Horror.Render("ERROR 404\n\nCONNECTION TERMINATED"))
	}

	if m.session.Route().Page == intranet.PageGateway {
		return m.gatewayView()
	}

	header := m.headerView()
	footer := m.footerView()
	main := m.pageView()
	if toasts := m.toastsView(); toasts != "" {
		main = lipgloss.JoinVertical(lipgloss.Left, toasts, main)
	}
	body := m.styles.Content.
		Width(m.layout.ContentWidth() + ui.ContentPaddingH*2).
		Height(m.layout.ContentHeight() + ui.ContentPaddingV*2).
		Render(main)
	if m.layout.SidebarWidth() > 0 {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.sidebarView(), body)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// fill paints the full terminal with style and centers text on it.
func (m *Model) fill(style lipgloss.Style, text string) string {
	w, h := m.layout.TerminalWidth, m.layout.TerminalHeight
	return style.Width(w).Height(h).Render(
		lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, text,
			lipgloss.WithWhitespaceBackground(ui.HorrorBlack)))
}

func (m *Model) overlayView(v jumpscare.View) string {
	switch v.Phase {
	case jumpscare.PhaseSilence:
		return m.fill(m.styles.Blackout, "")
	case jumpscare.PhaseTypingOne, jumpscare.PhaseTypingTwo:
		return m.fill(m.styles.Horror, m.styles.Horror.Render(v.Text))
	}

	h := m.layout.TerminalHeight
	lines := v.Lines
	if len(lines) > h {
		lines = lines[len(lines)-h:]
	}
	rows := make([]string, 0, len(lines))
	for _, l := range lines {
		style := m.styles.Terminal
		if l.Abnormal {
			style = m.styles.Abnormal
		}
		if l.Blinking {
			style = style.Blink(true)
		}
		rows = append(rows, style.Render(fmt.Sprintf("[%s] %s", l.Stamp, l.Text)))
	}
	return m.styles.Terminal.
		Width(m.layout.TerminalWidth).
		Height(h).
		Render(strings.Join(rows, "\n"))
}

func (m *Model) gatewayView() string {
	var form string
	if m.session.LoggingIn() {
		form = m.spinner.View() + " 인증 중..."
	} else {
		form = m.formView("사내 인트라넷 로그인")
	}
	w, h := m.layout.TerminalWidth, m.layout.TerminalHeight
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, ui.Logo(m.styles), "", form, "", m.statusLine()))
}

func (m *Model) formView(title string) string {
	rows := []string{
		m.styles.Title.Render(title),
		"아이디   " + m.idInput.View(),
	}
	if m.formStep == 1 {
		rows = append(rows, "비밀번호 "+m.pwInput.View())
	}
	rows = append(rows, m.styles.Muted.Render("enter 다음 · esc 취소"))
	return m.styles.Card.Render(strings.Join(rows, "\n"))
}

func (m *Model) headerView() string {
	st := m.session.State()
	left := "(주)백일몽 인트라넷"
	right := fmt.Sprintf("%s %s · %s · %s", st.Team, st.Rank, st.UserName, m.session.Points())
	gap := m.layout.TerminalWidth - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if gap < 1 {
		gap = 1
	}
	return m.styles.Header.Width(m.layout.TerminalWidth).Render(left + strings.Repeat(" ", gap) + right)
}

func (m *Model) sidebarView() string {
	locked := m.session.Locked()
	current := m.session.Path()
	rows := make([]string, 0, len(menu)+2)
	for _, it := range menu {
		label := it.key + " " + it.label
		switch {
		case locked:
			rows = append(rows, m.styles.NavDisabled.Render(label))
		case strings.HasPrefix(current, it.path):
			rows = append(rows, m.styles.NavActive.Render(label))
		default:
			rows = append(rows, m.styles.NavItem.Render(label))
		}
	}
	rows = append(rows, "")
	if locked {
		rows = append(rows, m.styles.NavDisabled.Render(logoutKey+" 로그아웃"))
	} else {
		rows = append(rows, m.styles.NavItem.Render(logoutKey+" 로그아웃"))
	}
	return m.styles.Sidebar.
		Width(ui.SidebarWidth).
		Height(m.layout.ContentHeight() + ui.ContentPaddingV*2).
		Render(strings.Join(rows, "\n"))
}

func (m *Model) footerView() string {
	hint := "↑↓ 이동 · enter 열기 · b 뒤로 · q 종료"
	if m.layout.IsCompact {
		hint = "1-5 메뉴 · 0 로그아웃 · " + hint
	}
	if s := m.statusLine(); s != "" {
		hint = s + "  " + hint
	}
	return m.styles.Footer.Render(ui.Truncate(hint, m.layout.TerminalWidth-4))
}

func (m *Model) statusLine() string {
	if m.status == "" {
		return ""
	}
	return m.styles.Warning.Render(m.status)
}

func (m *Model) toastsView() string {
	toasts := m.session.Toasts()
	if len(toasts) == 0 {
		return ""
	}
	rows := make([]string, 0, len(toasts))
	for _, t := range toasts {
		style := m.styles.Toast
		if t.Severity == security.SeverityDestructive {
			style = m.styles.ToastDestructive
		}
		rows = append(rows, style.Width(ui.ToastWidth).Render(t.Title+"\n"+t.Description))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *Model) pageView() string {
	switch m.session.Route().Page {
	case intranet.PageDashboard:
		return m.dashboardView()
	case intranet.PageMessages:
		return m.inboxView()
	case intranet.PageNotices:
		return m.noticesView()
	case intranet.PageMessage, intranet.PageNotice:
		return m.viewport.View()
	case intranet.PageShadows:
		return m.shadowsView()
	case intranet.PageMall:
		return m.mallView()
	}
	return m.styles.Error.Render("페이지를 찾을 수 없습니다.")
}

func (m *Model) dashboardView() string {
	st := m.session.State()
	w := m.layout.ContentWidth()
	unread := 0
	for _, msg := range m.session.Inbox() {
		if msg.ID == content.SecurityMessageID && !st.IsSecurityMessageRead {
			unread++
		}
	}
	rows := []string{
		m.styles.Title.Render(fmt.Sprintf("안녕하세요, %s 님", st.UserName)),
		fmt.Sprintf("소속  %s · %s", st.Team, st.Rank),
		fmt.Sprintf("복지 포인트  %s", m.session.Points()),
		fmt.Sprintf("새 쪽지  %d건", unread),
		"",
		m.styles.Subtitle.Render("최근 공지"),
	}
	notices := m.session.Notices()
	for i, n := range notices {
		if i == 3 {
			break
		}
		rows = append(rows, ui.Truncate(fmt.Sprintf("[%s] %s", n.Tag, n.Title), w))
	}
	if assigned := m.assignedShadows(st.UserName); assigned != "" {
		rows = append(rows, "", m.styles.Subtitle.Render("담당 그림자"), assigned)
	}
	return strings.Join(rows, "\n")
}

func (m *Model) assignedShadows(name string) string {
	var codes []string
	for _, e := range m.session.Shadows() {
		if e.IsAssigned && e.AssigneeName == name {
			codes = append(codes, e.Code)
		}
	}
	return strings.Join(codes, ", ")
}

func (m *Model) inboxView() string {
	t := ui.NewSimpleTable("쪽지함", "보낸 사람", "제목", "날짜")
	t.MaxWidth = m.layout.ContentWidth()
	t.Selected = m.cursor
	for _, msg := range m.session.Inbox() {
		title := msg.Title
		if msg.IsSpam {
			title = "[스팸] " + title
		}
		t.AddRow(msg.Sender, title, msg.Date)
	}
	if len(t.Rows) == 0 {
		return m.styles.Muted.Render("받은 쪽지가 없습니다.")
	}
	return t.View(m.styles)
}

func (m *Model) noticesView() string {
	t := ui.NewSimpleTable("공지사항", "분류", "제목", "작성자", "날짜")
	t.MaxWidth = m.layout.ContentWidth()
	t.Selected = m.cursor
	for _, n := range m.session.Notices() {
		t.AddRow(n.Tag, n.Title, n.Author, n.Date)
	}
	return t.View(m.styles)
}

func (m *Model) shadowsView() string {
	t := ui.NewSimpleTable("그림자 관리 현황", "코드", "이름", "등급", "위치", "담당")
	t.MaxWidth = m.layout.ContentWidth()
	t.Selected = m.cursor
	for _, e := range m.session.Shadows() {
		owner := "미배정"
		if e.IsAssigned {
			owner = e.AssigneeName + " (" + e.AssigneeTeam + ")"
		}
		t.AddRow(e.Code, e.Name, string(e.Grade), e.LocationText, owner)
	}
	return t.View(m.styles) + "\n" + m.styles.Muted.Render("a 담당 배정")
}

func (m *Model) mallView() string {
	mm := m.session.Mall()
	if mm == nil {
		return ""
	}
	if mm.NeedsLogin() {
		return m.formView("복지몰 로그인")
	}
	if mm.View() == mall.ViewHidden {
		return lipgloss.JoinVertical(lipgloss.Left,
			m.styles.Horror.Render("임직원 전용관"),
			"",
			m.styles.Abnormal.Render("이 페이지는 승인된 인원만 열람할 수 있습니다."),
			m.styles.Muted.Render("enter 물품 보기 · b 나가기"),
		)
	}

	t := ui.NewSimpleTable("복지몰", "분류", "상품", "가격", "재고")
	t.MaxWidth = m.layout.ContentWidth()
	t.Selected = m.cursor
	for _, p := range mall.Catalog {
		name := p.Name
		if p.Tag != "" {
			name = "[" + p.Tag + "] " + name
		}
		t.AddRow(string(p.Category), name, strconv.Itoa(p.Price)+" P", strconv.Itoa(p.Stock))
	}
	rows := []string{t.View(m.styles)}
	if m.cursor < len(mall.Catalog) {
		rows = append(rows, m.styles.Muted.Render(ui.Truncate(mall.Catalog[m.cursor].Description, m.layout.ContentWidth())))
	}
	if mm.HiddenAvailable() {
		rows = append(rows, m.styles.Abnormal.Render("h 임직원 전용관"))
	}
	return strings.Join(rows, "\n")
}
