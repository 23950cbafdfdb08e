package app

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"daydream/cmd/daydream/ui"
	"daydream/internal/logging"
)

// markdown renders message and notice bodies. The renderer is rebuilt
// lazily when the wrap width changes.
type markdown struct {
	dark  bool
	width int
	r     *glamour.TermRenderer
}

func newMarkdown(dark bool) *markdown {
	return &markdown{dark: dark, width: 60}
}

func (md *markdown) setWidth(w int) {
	if w == md.width {
		return
	}
	md.width = w
	md.r = nil
}

// render returns the rendered lines of src. Without a renderer the text is
// wrapped as is.
func (md *markdown) render(src string) []string {
	if md.r == nil {
		style := "light"
		if md.dark {
			style = "dark"
		}
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(md.width),
		)
		if err != nil {
			logging.Get(logging.CategoryUI).Warn("markdown renderer: %v", err)
		} else {
			md.r = r
		}
	}
	if md.r != nil {
		out, err := md.r.Render(src)
		if err == nil {
			return strings.Split(strings.Trim(out, "\n"), "\n")
		}
		logging.Get(logging.CategoryUI).Warn("markdown render: %v", err)
	}
	return ui.Wrap(src, md.width)
}
