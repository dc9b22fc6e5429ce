package ui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	tint "github.com/lrstanley/bubbletint"
	"github.com/mattn/go-runewidth"
)

// MinColumnWidth keeps narrow columns readable once their header glyph is added.
const MinColumnWidth = 4

// NewTable creates a new bubbles/table with standard initial settings
func NewTable(columns []table.Column, theme tint.Tint) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.BrightBlack()).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(theme.BrightWhite()).
		Background(Accent(theme)).
		Bold(false)
	t.SetStyles(s)

	return t
}

// UpdateTableTheme refreshes a table's styles based on the current layout theme
func UpdateTableTheme(t *table.Model, width, height int) {
	theme := GetLayout().Theme()

	rows := t.Rows()
	cursor := t.Cursor()
	cols := t.Columns()

	*t = NewTable(cols, theme)
	t.SetRows(rows)
	t.SetCursor(cursor)
	t.SetWidth(width)
	t.SetHeight(GetTableHeight(height))
}

// GetTableHeight returns the appropriate table height based on available screen space
func GetTableHeight(totalHeight int) int {
	return max(totalHeight-FrameOverhead-ChromeHeight, 1)
}

// FitColumns sizes one table column per header to its widest cell, then
// shrinks the widest columns until everything fits in width. Cells wider
// than their column are truncated with Ellipsis.
func FitColumns(headers []string, rows [][]string, width int) ([]table.Column, []table.Row) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = max(runewidth.StringWidth(h), MinColumnWidth)
	}
	for _, r := range rows {
		for i := range headers {
			if i < len(r) {
				widths[i] = max(widths[i], runewidth.StringWidth(r[i]))
			}
		}
	}

	// bubbles/table pads each cell by one on either side
	budget := width - 2*len(headers)
	for width > 0 && sum(widths) > budget {
		widest := 0
		for i := range widths {
			if widths[i] > widths[widest] {
				widest = i
			}
		}
		if widths[widest] <= MinColumnWidth {
			break
		}
		widths[widest]--
	}

	cols := make([]table.Column, len(headers))
	for i, h := range headers {
		cols[i] = table.Column{Title: Ellipsis(h, widths[i]), Width: widths[i]}
	}
	out := make([]table.Row, len(rows))
	for j, r := range rows {
		cells := make(table.Row, len(headers))
		for i := range headers {
			if i < len(r) {
				cells[i] = Ellipsis(r[i], widths[i])
			}
		}
		out[j] = cells
	}
	return cols, out
}

func sum(ns []int) int {
	total := 0
	for _, n := range ns {
		total += n
	}
	return total
}
