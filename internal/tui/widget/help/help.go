package help

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	tint "github.com/lrstanley/bubbletint"
	"github.com/ygelfand/kogrid/internal/ui"
)

// HelpOverlayModel lists key bindings until esc, q or ? closes it
type HelpOverlayModel struct {
	title  string
	keys   []ui.HelpKey
	theme  tint.Tint
	width  int
	height int
}

func NewHelpOverlayModel(title string, provider ui.HelpProvider, theme tint.Tint) *HelpOverlayModel {
	return &HelpOverlayModel{
		title: title,
		keys:  provider.HelpKeys(),
		theme: theme,
	}
}

func (m *HelpOverlayModel) Init() tea.Cmd {
	return nil
}

func (m *HelpOverlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case ui.ThemeChangedMsg:
		m.theme = msg.Theme
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q", "?":
			return nil, nil
		}
	}
	return m, nil
}

func (m *HelpOverlayModel) View() string {
	var sb strings.Builder
	accent := ui.Accent(m.theme)

	keyWidth := 10
	for _, k := range m.keys {
		keyWidth = max(keyWidth, lipgloss.Width(k.Key)+2)
	}
	keyStyle := lipgloss.NewStyle().
		Foreground(m.theme.BrightCyan()).
		Bold(true).
		Width(keyWidth)
	descStyle := ui.ValueStyle(m.theme)

	sb.WriteString(lipgloss.NewStyle().Foreground(accent).Bold(true).Render(" " + strings.ToUpper(m.title) + " "))
	sb.WriteString("\n\n")
	for _, k := range m.keys {
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			keyStyle.Render(k.Key),
			descStyle.Render(k.Desc),
		) + "\n")
	}
	sb.WriteString("\n" + ui.MutedStyle(m.theme).Render(" Press esc, q, or ? to close "))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Background(m.theme.Bg()).
		Padding(1, 2).
		Width(max(m.width/2, 45)).
		Render(sb.String())
}
