package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"

	"daydream/internal/clock"
)

func TestThemeFor(t *testing.T) {
	assert.True(t, ThemeFor("dark").IsDark)
	assert.False(t, ThemeFor("LIGHT").IsDark)

	t.Setenv("COLORFGBG", "15;0")
	assert.True(t, ThemeFor("auto").IsDark)
	t.Setenv("COLORFGBG", "0;15")
	assert.False(t, ThemeFor("auto").IsDark)
	t.Setenv("COLORFGBG", "")
	assert.False(t, DetectTheme().IsDark)
}

func TestLayoutConfig(t *testing.T) {
	l := NewLayoutConfig(200, 40, 100)
	assert.Equal(t, 100, l.TerminalWidth)
	assert.False(t, l.IsCompact)
	assert.Equal(t, SidebarWidth, l.SidebarWidth())
	assert.Equal(t, 100-SidebarWidth-ContentPaddingH*2-1, l.ContentWidth())
	assert.Equal(t, 40-HeaderHeight-FooterHeight-ContentPaddingV*2, l.ContentHeight())

	c := NewLayoutConfig(70, 20, 0)
	assert.True(t, c.IsCompact)
	assert.Zero(t, c.SidebarWidth())
	assert.False(t, c.TooSmall())
	assert.True(t, NewLayoutConfig(40, 10, 0).TooSmall())
}

func TestResizeDebouncer(t *testing.T) {
	fc := clock.NewFake(time.Unix(0, 0))
	rd := NewResizeDebouncer(fc, DefaultResizeDuration)
	var calls [][2]int
	handler := func(w, h int) { calls = append(calls, [2]int{w, h}) }

	rd.Resize(80, 24, handler)
	fc.Advance(DefaultResizeDuration / 2)
	rd.Resize(100, 30, handler)
	fc.Advance(DefaultResizeDuration / 2)
	assert.Empty(t, calls)
	fc.Advance(DefaultResizeDuration / 2)
	assert.Equal(t, [][2]int{{100, 30}}, calls)
	w, h := rd.LastSize()
	assert.Equal(t, 100, w)
	assert.Equal(t, 30, h)

	rd.Resize(120, 40, handler)
	rd.Cancel()
	fc.Advance(time.Second)
	assert.Len(t, calls, 1)
}

func TestTruncateWideRunes(t *testing.T) {
	s := "보안경고 비정상적인 활동"
	out := Truncate(s, 9)
	assert.LessOrEqual(t, runewidth.StringWidth(out), 9)
	assert.True(t, strings.HasSuffix(out, "…"))
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Empty(t, Truncate("abc", 0))
	assert.Equal(t, 6, runewidth.StringWidth(PadRight("가", 6)))
}

func TestWrap(t *testing.T) {
	lines := Wrap("가나다라마\nab", 4)
	assert.Equal(t, []string{"가나", "다라", "마", "ab"}, lines)
}

func TestSimpleTable(t *testing.T) {
	tbl := NewSimpleTable("상품", "이름", "가격")
	assert.Empty(t, tbl.View(DefaultStyles()))

	tbl.AddRow("탈모약", "100")
	tbl.AddRow("특수 격리용 알루미늄 케이스", "2000")
	tbl.Selected = 1
	tbl.MaxWidth = 30
	out := tbl.View(NewStyles(LightTheme()))
	assert.Contains(t, out, "탈모약")
	assert.Contains(t, out, "2000")
	for _, line := range strings.Split(out, "\n")[1:] {
		assert.LessOrEqual(t, runewidth.StringWidth(stripANSI(line)), 30, line)
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	inEsc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEsc = true
		case inEsc && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'):
			inEsc = false
		case !inEsc:
			b.WriteRune(r)
		}
	}
	return b.String()
}
