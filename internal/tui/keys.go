package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/ygelfand/kogrid/internal/ui"
)

// KeyMap holds the grid key bindings
type KeyMap struct {
	Next      key.Binding
	Prev      key.Binding
	PageLink  key.Binding
	FocusNext key.Binding
	FocusPrev key.Binding
	Sort      key.Binding
	Find      key.Binding
	Hide      key.Binding
	ShowAll   key.Binding
	Yank      key.Binding
	Theme     key.Binding
	Settings  key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next:      key.NewBinding(key.WithKeys("n", "right"), key.WithHelp("n/→", "next page")),
		Prev:      key.NewBinding(key.WithKeys("p", "left"), key.WithHelp("p/←", "previous page")),
		PageLink:  key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "jump to pager link")),
		FocusNext: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus next column")),
		FocusPrev: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "focus previous column")),
		Sort:      key.NewBinding(key.WithKeys("s", "enter"), key.WithHelp("s/enter", "sort focused column")),
		Find:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "find column")),
		Hide:      key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "hide focused column")),
		ShowAll:   key.NewBinding(key.WithKeys("V"), key.WithHelp("V", "show all columns")),
		Yank:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy row")),
		Theme:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "next theme")),
		Settings:  key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "settings")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// HelpKeys lists the bindings for the help overlay
func (k KeyMap) HelpKeys() []ui.HelpKey {
	bindings := []key.Binding{
		k.Next, k.Prev, k.PageLink, k.FocusNext, k.FocusPrev, k.Sort, k.Find,
		k.Hide, k.ShowAll, k.Yank, k.Theme, k.Settings, k.Help, k.Quit,
	}
	keys := make([]ui.HelpKey, 0, len(bindings)+1)
	for _, b := range bindings {
		h := b.Help()
		keys = append(keys, ui.HelpKey{Key: h.Key, Desc: h.Desc})
	}
	return append(keys, ui.HelpKey{Key: "↑/↓", Desc: "move row cursor"})
}
