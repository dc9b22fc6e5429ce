package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	tint "github.com/lrstanley/bubbletint"
	"github.com/ygelfand/kogrid/internal/ui"
)

// Overlay is a model drawn on top of the grid. Returning a nil model from
// Update dismisses it.
type Overlay interface {
	tea.Model
}

// Navigator keeps the stack of overlays above the grid
type Navigator struct {
	overlays []Overlay
	theme    tint.Tint
	width    int
	height   int
}

func NewNavigator(theme tint.Tint) *Navigator {
	return &Navigator{
		theme: theme,
	}
}

func (n *Navigator) Push(o Overlay) tea.Cmd {
	n.overlays = append(n.overlays, o)
	cmds := []tea.Cmd{o.Init()}
	if n.width > 0 && n.height > 0 {
		_, cmd := o.Update(tea.WindowSizeMsg{Width: n.width, Height: n.height})
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (n *Navigator) Pop() {
	if len(n.overlays) > 0 {
		n.overlays = n.overlays[:len(n.overlays)-1]
	}
}

// Depth is the number of open overlays
func (n *Navigator) Depth() int {
	return len(n.overlays)
}

func (n *Navigator) ActiveOverlay() Overlay {
	if len(n.overlays) == 0 {
		return nil
	}
	return n.overlays[len(n.overlays)-1]
}

// Update routes msg to the top overlay. The bool reports whether the overlay
// consumed it, which is always the case for key and mouse input.
func (n *Navigator) Update(msg tea.Msg) (tea.Cmd, bool) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		n.width = size.Width
		n.height = size.Height
	}

	overlay := n.ActiveOverlay()
	if overlay == nil {
		return nil, false
	}

	newModel, cmd := overlay.Update(msg)
	if newModel == nil {
		n.Pop()
		return cmd, true
	}
	n.overlays[len(n.overlays)-1] = newModel.(Overlay)

	switch msg.(type) {
	case tea.KeyMsg, tea.MouseMsg:
		return cmd, true
	}
	return cmd, false
}

func (n *Navigator) Render(base string) string {
	for _, o := range n.overlays {
		base = ui.Overlay(base, o.View(), n.width, n.height)
	}
	return base
}

func (n *Navigator) SetTheme(theme tint.Tint) {
	n.theme = theme
}

func IsKey(msg tea.KeyMsg, binding key.Binding) bool {
	return key.Matches(msg, binding)
}
