package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// SimpleTable renders static rows with aligned columns.
type SimpleTable struct {
	Title    string
	Headers  []string
	Rows     [][]string
	Selected int // highlighted row, -1 for none
	MaxWidth int // total width cap, 0 for none
}

// NewSimpleTable creates a table with the given title and headers.
func NewSimpleTable(title string, headers ...string) *SimpleTable {
	return &SimpleTable{Title: title, Headers: headers, Selected: -1}
}

// AddRow adds a row to the table.
func (t *SimpleTable) AddRow(row ...string) {
	t.Rows = append(t.Rows, row)
}

// View renders the table using the provided styles.
func (t *SimpleTable) View(styles Styles) string {
	if len(t.Rows) == 0 {
		return ""
	}

	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], runewidth.StringWidth(cell))
			}
		}
	}
	t.fit(widths)

	var sb strings.Builder
	if t.Title != "" {
		sb.WriteString(styles.Title.Render(t.Title))
		sb.WriteString("\n")
	}
	sb.WriteString(styles.Bold.Render(t.line(t.Headers, widths)))
	sb.WriteString("\n")
	total := len(widths) - 1
	for _, w := range widths {
		total += w + 2
	}
	sb.WriteString(styles.RenderDivider(total))
	sb.WriteString("\n")
	for i, row := range t.Rows {
		line := t.line(row, widths)
		if i == t.Selected {
			sb.WriteString(styles.Selected.Render(line))
		} else {
			sb.WriteString(styles.Body.Render(line))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// fit shrinks the widest column until the table fits MaxWidth.
func (t *SimpleTable) fit(widths []int) {
	if t.MaxWidth <= 0 {
		return
	}
	for {
		total := len(widths) - 1
		widest := 0
		for i, w := range widths {
			total += w + 2
			if w > widths[widest] {
				widest = i
			}
		}
		if total <= t.MaxWidth || widths[widest] <= 4 {
			return
		}
		widths[widest]--
	}
}

func (t *SimpleTable) line(cells []string, widths []int) string {
	parts := make([]string, len(widths))
	for i := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		parts[i] = " " + PadRight(cell, widths[i]) + " "
	}
	return strings.Join(parts, "│")
}
