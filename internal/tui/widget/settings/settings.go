package settings

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	tint "github.com/lrstanley/bubbletint"
	"github.com/ygelfand/kogrid/internal/config"
	"github.com/ygelfand/kogrid/internal/ui"
)

// SettingsFinishedMsg is sent when the overlay closes
type SettingsFinishedMsg struct {
	Config *config.Config
	Err    error
}

const (
	settingTheme = "theme"
	settingIcons = "icon_type"
	settingSave  = "save"
)

type settingItem struct {
	id          string
	title       string
	description string
	current     string
}

func (i settingItem) Title() string { return i.title }
func (i settingItem) Description() string {
	if i.current == "" {
		return i.description
	}
	return i.description + " (Current: " + i.current + ")"
}
func (i settingItem) FilterValue() string { return i.title }

type selectionItem struct {
	id    string
	value string
}

func (i selectionItem) Title() string       { return i.value }
func (i selectionItem) Description() string { return "" }
func (i selectionItem) FilterValue() string { return i.value }

// SettingsOverlayModel edits the display settings of the running grid. Theme
// changes are previewed while moving through the list.
type SettingsOverlayModel struct {
	list          list.Model
	selectionList list.Model
	width, height int
	theme         tint.Tint
	tints         []tint.Tint
	isSelecting   bool
	activeSetting string
	save          func() error
	saveErr       error
}

// NewSettingsOverlayModel builds the overlay. save persists config.Get() and
// only runs when the user picks the write entry.
func NewSettingsOverlayModel(theme tint.Tint, save func() error) *SettingsOverlayModel {
	l := list.New(nil, list.NewDefaultDelegate(), 68, 14)
	l.Title = "Grid Settings"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	s := list.New(nil, list.NewDefaultDelegate(), 68, 14)
	s.SetShowStatusBar(false)
	s.SetFilteringEnabled(false)
	s.SetShowHelp(false)

	m := &SettingsOverlayModel{
		list:          l,
		selectionList: s,
		theme:         theme,
		tints:         ui.Themes(),
		save:          save,
	}
	m.updateItems()
	return m
}

func (m *SettingsOverlayModel) updateItems() {
	cfg := config.Get()
	m.list.SetItems([]list.Item{
		settingItem{id: settingTheme, title: "Theme", description: "Color scheme", current: m.theme.ID()},
		settingItem{id: settingIcons, title: "Icon Mode", description: "Sort and pager glyphs", current: string(cfg.IconType)},
		settingItem{id: settingSave, title: "Write Config", description: "Save these settings to the config file"},
	})
}

func (m *SettingsOverlayModel) Init() tea.Cmd {
	return nil
}

func (m *SettingsOverlayModel) finished() tea.Msg {
	return SettingsFinishedMsg{Config: config.Get(), Err: m.saveErr}
}

func (m *SettingsOverlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		listW := max(min(m.width-8, 68), 20)
		listH := max(min(m.height-10, 14), 6)
		m.list.SetSize(listW, listH)
		m.selectionList.SetSize(listW, listH)
		return m, nil
	case ui.ThemeChangedMsg:
		m.theme = msg.Theme
		return m, nil
	}

	if m.isSelecting {
		if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
			m.isSelecting = false
			return m, nil
		}

		oldIndex := m.selectionList.Index()
		m.selectionList, cmd = m.selectionList.Update(msg)
		newIndex := m.selectionList.Index()

		if m.activeSetting == settingTheme && oldIndex != newIndex {
			selected := m.tints[newIndex]
			m.theme = selected
			config.Get().Theme = selected.ID()
			return m, tea.Batch(cmd, func() tea.Msg { return ui.ThemeChangedMsg{Theme: selected} })
		}

		if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" {
			if selected, ok := m.selectionList.SelectedItem().(selectionItem); ok {
				m.applySetting(m.activeSetting, selected.id)
			}
			m.isSelecting = false
			m.updateItems()
		}
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "q", "o":
			return nil, m.finished
		case "enter":
			item, ok := m.list.SelectedItem().(settingItem)
			if !ok {
				return m, nil
			}
			if item.id == settingSave {
				if m.save != nil {
					m.saveErr = m.save()
				}
				return nil, m.finished
			}
			m.prepareSelection(item.id)
			m.isSelecting = true
			return m, nil
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *SettingsOverlayModel) prepareSelection(id string) {
	m.activeSetting = id
	var items []list.Item
	current := ""

	switch id {
	case settingTheme:
		m.selectionList.Title = "Choose Theme"
		for _, t := range m.tints {
			items = append(items, selectionItem{id: t.ID(), value: t.DisplayName()})
		}
		current = m.theme.ID()
	case settingIcons:
		m.selectionList.Title = "Choose Icon Mode"
		items = []list.Item{
			selectionItem{id: string(config.IconTypeASCII), value: "ASCII"},
			selectionItem{id: string(config.IconTypeEmoji), value: "Emoji"},
			selectionItem{id: string(config.IconTypeNerdFonts), value: "Nerd Fonts"},
		}
		current = string(config.Get().IconType)
	}

	m.selectionList.SetItems(items)
	for i, it := range items {
		if it.(selectionItem).id == current {
			m.selectionList.Select(i)
			break
		}
	}
}

func (m *SettingsOverlayModel) applySetting(setting, value string) {
	cfg := config.Get()
	switch setting {
	case settingTheme:
		cfg.Theme = value
	case settingIcons:
		cfg.IconType = config.IconType(value)
	}
}

func (m *SettingsOverlayModel) View() string {
	content := m.list.View()
	if m.isSelecting {
		content = m.selectionList.View()
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder(), true).
		BorderForeground(ui.Accent(m.theme)).
		Background(m.theme.Bg()).
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left,
			content,
			ui.MutedStyle(m.theme).Render("\n [enter] change | [esc] back | [q/o] close"),
		))
}
