package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Overlay centers overlay on top of base within a width x height screen.
// Rows covered by the overlay are replaced whole so escape sequences in base
// are never split.
func Overlay(base, overlay string, width, height int) string {
	if base == "" {
		return overlay
	}

	overlayLines := strings.Split(overlay, "\n")
	startY := (height - lipgloss.Height(overlay)) / 2

	lines := strings.Split(base, "\n")
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}

	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	for y, line := range overlayLines {
		at := startY + y
		if at < 0 || at >= len(lines) {
			continue
		}
		lines[at] = center.Render(line)
	}

	return strings.Join(lines, "\n")
}

// Ellipsis truncates a string to a max width and adds ... if needed.
func Ellipsis(s string, maxWidth int) string {
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return strings.Repeat(".", max(maxWidth, 0))
	}
	return runewidth.Truncate(s, maxWidth, "...")
}
