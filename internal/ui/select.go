package ui

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var ErrNoSelection = errors.New("no selection made")

// Option is one choice offered by Choose.
type Option struct {
	Title string
	Desc  string
	Value string
}

func (o Option) FilterValue() string { return o.Title + " " + o.Desc }

type optionDelegate struct{}

func (d optionDelegate) Height() int                               { return 1 }
func (d optionDelegate) Spacing() int                              { return 0 }
func (d optionDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d optionDelegate) Render(w io.Writer, m list.Model, index int, li list.Item) {
	o, ok := li.(Option)
	if !ok {
		return
	}

	line := o.Title
	if o.Desc != "" {
		line = fmt.Sprintf("%s (%s)", o.Title, o.Desc)
	}
	if index == m.Index() {
		fmt.Fprint(w, lipgloss.NewStyle().PaddingLeft(2).Foreground(Accent(CurrentTheme())).Render("> "+line))
		return
	}
	fmt.Fprint(w, lipgloss.NewStyle().PaddingLeft(4).Render(line))
}

type chooser struct {
	list   list.Model
	choice string
	done   bool
}

func (m chooser) Init() tea.Cmd {
	return nil
}

func (m chooser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.done = true
			return m, tea.Quit
		case "enter":
			if o, ok := m.list.SelectedItem().(Option); ok {
				m.choice = o.Value
			}
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m chooser) View() string {
	if m.done {
		return ""
	}
	return "\n" + m.list.View()
}

func newChooser(title string, options []Option) chooser {
	items := make([]list.Item, len(options))
	for i, o := range options {
		items[i] = o
	}

	l := list.New(items, optionDelegate{}, 60, min(len(options)+4, 16))
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = TitleStyle(CurrentTheme())
	return chooser{list: l}
}

// Choose presents options in an inline list and returns the chosen value
func Choose(title string, options []Option, opts ...tea.ProgramOption) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("no options provided")
	}

	final, err := tea.NewProgram(newChooser(title, options), opts...).Run()
	if err != nil {
		return "", err
	}

	if res := final.(chooser).choice; res != "" {
		return res, nil
	}
	return "", ErrNoSelection
}
