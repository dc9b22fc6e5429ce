package search

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	tint "github.com/lrstanley/bubbletint"
	"github.com/sahilm/fuzzy"
	"github.com/ygelfand/kogrid/internal/ui"
)

// maxResults caps the result list
const maxResults = 20

// Entry is one column offered by the finder
type Entry struct {
	Index  int
	Header string
	Hidden bool
}

// ColumnChosenMsg reports the column picked with enter
type ColumnChosenMsg struct {
	Entry Entry
}

type resultItem struct {
	entry Entry
}

func (i resultItem) Title() string { return i.entry.Header }
func (i resultItem) Description() string {
	if i.entry.Hidden {
		return "hidden"
	}
	return "visible"
}
func (i resultItem) FilterValue() string { return i.entry.Header }

// SearchOverlayModel fuzzy-finds a column by header
type SearchOverlayModel struct {
	textInput textinput.Model
	list      list.Model
	width     int
	height    int
	theme     tint.Tint
	entries   []Entry
}

func NewSearchOverlayModel(entries []Entry, theme tint.Tint) *SearchOverlayModel {
	ti := textinput.New()
	ti.Placeholder = "Find a column..."
	ti.Focus()
	ti.Prompt = "/ "

	l := list.New(nil, list.NewDefaultDelegate(), 40, 12)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	m := &SearchOverlayModel{
		textInput: ti,
		list:      l,
		theme:     theme,
		entries:   entries,
	}
	m.runSearch()
	return m
}

func (m *SearchOverlayModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *SearchOverlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(max(m.width/3, 40), max(m.height/2, 8))
		return m, nil
	case ui.ThemeChangedMsg:
		m.theme = msg.Theme
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return nil, nil
		case "enter":
			if item, ok := m.list.SelectedItem().(resultItem); ok {
				return nil, func() tea.Msg { return ColumnChosenMsg{Entry: item.entry} }
			}
			return m, nil
		case "up", "down":
			var lCmd tea.Cmd
			m.list, lCmd = m.list.Update(msg)
			return m, lCmd
		}
	}

	var tiCmd tea.Cmd
	m.textInput, tiCmd = m.textInput.Update(msg)
	cmds = append(cmds, tiCmd)
	m.runSearch()

	return m, tea.Batch(cmds...)
}

// runSearch lists every column for an empty query, fuzzy matches otherwise
func (m *SearchOverlayModel) runSearch() {
	var items []list.Item
	if query := m.textInput.Value(); query == "" {
		for _, e := range m.entries {
			items = append(items, resultItem{entry: e})
		}
	} else {
		for _, match := range fuzzy.FindFrom(query, entrySource(m.entries)) {
			items = append(items, resultItem{entry: m.entries[match.Index]})
		}
	}
	if len(items) > maxResults {
		items = items[:maxResults]
	}
	m.list.SetItems(items)
	m.list.ResetSelected()
}

type entrySource []Entry

func (s entrySource) String(i int) string { return s[i].Header }
func (s entrySource) Len() int            { return len(s) }

func (m *SearchOverlayModel) View() string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.Accent(m.theme)).
		Background(m.theme.Bg()).
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left,
			m.textInput.View(),
			"",
			m.list.View(),
		))
}
