package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"daydream/cmd/daydream/ui"
	"daydream/internal/intranet"
	"daydream/internal/reveal/corruption"
)

// document is the scrollable text of a detail page. The ending is the line
// range of the body's last paragraph.
type document struct {
	lines       []string
	endingStart int
	endingLen   int
}

// loadDocument rebuilds the viewport content for the current route.
func (m *Model) loadDocument() {
	m.doc = document{}
	width := m.layout.ContentWidth()

	switch m.session.Route().Page {
	case intranet.PageMessage:
		msg, err := m.session.Message()
		if err != nil {
			break
		}
		head := []string{
			m.styles.Title.UnsetMarginBottom().Render(ui.Truncate(msg.Title, width)),
			m.styles.Muted.Render(fmt.Sprintf("보낸 사람  %s (%s)", msg.Sender, msg.SenderDept)),
			m.styles.Muted.Render("받는 사람  " + msg.Receiver),
			m.styles.Muted.Render(fmt.Sprintf("%s %s", msg.Date, msg.Time)),
			m.styles.RenderDivider(width),
		}
		if spam := m.session.Spam(); spam != nil && spam.Running() && spam.Phase() == corruption.PhaseRetyping {
			m.doc = document{lines: append(head, ui.Wrap(spam.Text(), width)...)}
			break
		}
		m.doc = m.bodyDocument(head, msg.Body)

	case intranet.PageNotice:
		n, err := m.session.Notice()
		if err != nil {
			break
		}
		badge := m.styles.Badge.Render(n.Tag)
		head := []string{
			badge + " " + m.styles.Bold.Render(ui.Truncate(n.Title, width-lipgloss.Width(badge)-1)),
			m.styles.Muted.Render(fmt.Sprintf("%s · %s", n.Author, n.Date)),
			m.styles.RenderDivider(width),
		}
		m.doc = m.bodyDocument(head, n.Body)
	}

	offset := m.viewport.YOffset
	m.viewport.SetContent(strings.Join(m.doc.lines, "\n"))
	m.viewport.SetYOffset(offset)
}

// bodyDocument renders a markdown body below head and marks its last
// paragraph as the ending.
func (m *Model) bodyDocument(head []string, body string) document {
	main, ending := body, ""
	if i := strings.LastIndex(body, "\n\n"); i >= 0 {
		main, ending = body[:i], body[i+2:]
	}
	lines := append([]string(nil), head...)
	lines = append(lines, m.md.render(main)...)
	doc := document{endingStart: len(lines)}
	if ending != "" {
		end := m.md.render(ending)
		lines = append(lines, end...)
		doc.endingLen = len(end)
	}
	doc.lines = lines
	return doc
}
