package tui

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	tint "github.com/lrstanley/bubbletint"
	"github.com/ygelfand/kogrid/internal/config"
	"github.com/ygelfand/kogrid/internal/grid"
	"github.com/ygelfand/kogrid/internal/presenters"
	"github.com/ygelfand/kogrid/internal/tui/widget/help"
	"github.com/ygelfand/kogrid/internal/tui/widget/search"
	"github.com/ygelfand/kogrid/internal/tui/widget/settings"
	"github.com/ygelfand/kogrid/internal/ui"
	"go.dalton.dog/bubbleup"
	"golang.org/x/term"
)

const (
	alertError = "error"
	alertInfo  = "info"

	focusMarker = "›"
)

// Controller is the interactive grid. It re-renders from the view-model's
// change notifications, so every key handler only drives the view-model.
type Controller struct {
	vm    *grid.ViewModel
	name  string
	icons config.IconType
	theme tint.Tint
	keys  KeyMap

	table     table.Model
	navigator *Navigator
	alert     bubbleup.AlertModel

	focus       int
	clipboard   func(string) error
	save        func() error
	unsubscribe func()
}

type Option func(*Controller)

// WithClipboard replaces the system clipboard used by the copy key
func WithClipboard(fn func(string) error) Option {
	return func(c *Controller) {
		c.clipboard = fn
	}
}

// WithConfigSaver replaces the function the settings overlay persists with
func WithConfigSaver(fn func() error) Option {
	return func(c *Controller) {
		c.save = fn
	}
}

func WithIcons(icons config.IconType) Option {
	return func(c *Controller) {
		c.icons = icons
	}
}

func NewController(vm *grid.ViewModel, name string, opts ...Option) *Controller {
	theme := ui.CurrentTheme()
	ui.GetLayout().SetTheme(theme)

	alert := bubbleup.NewAlertModel(40, true, 10*time.Second).
		WithPosition(bubbleup.TopRightPosition)
	alert.RegisterNewAlertType(bubbleup.AlertDefinition{
		Key:       alertError,
		ForeColor: "#FF0000",
		Prefix:    "x ",
	})
	alert.RegisterNewAlertType(bubbleup.AlertDefinition{
		Key:       alertInfo,
		ForeColor: "#2ec4b6",
		Prefix:    "> ",
	})

	c := &Controller{
		vm:        vm,
		name:      name,
		icons:     config.Get().IconType,
		theme:     theme,
		keys:      DefaultKeyMap(),
		table:     ui.NewTable(nil, theme),
		navigator: NewNavigator(theme),
		alert:     alert,
		clipboard: clipboard.WriteAll,
		save:      config.Get().Save,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.unsubscribe = vm.Subscribe(func(ch grid.Change) {
		slog.Log(context.Background(), config.LevelTrace, "TUI: grid changed", "change", ch)
		c.refresh()
		if ch.Has(grid.ChangePage) || ch.Has(grid.ChangeSort) {
			c.resetCursor()
		}
	})
	c.refresh()
	return c
}

// Run shows the grid full screen until the user quits
func Run(ctx context.Context, vm *grid.ViewModel, name string, opts ...Option) error {
	c := NewController(vm, name, opts...)
	defer c.Close()

	progOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		// rows came from a pipe, read keys from the terminal instead
		progOpts = append(progOpts, tea.WithInputTTY())
	}
	p := tea.NewProgram(c, progOpts...)
	if _, err := p.Run(); err != nil {
		slog.Error("TUI: Program run failed", "error", err)
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	slog.Info("TUI Finished normally")
	return nil
}

// Close detaches the controller from the view-model
func (c *Controller) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}

func (c *Controller) Init() tea.Cmd {
	return c.alert.Init()
}

func (c *Controller) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case ui.ErrorMsg:
		slog.Error("TUI error", "error", msg.Err)
		cmds = append(cmds, c.alert.NewAlertCmd(alertError, msg.Err.Error()))
	case error:
		slog.Error("TUI error", "error", msg)
		cmds = append(cmds, c.alert.NewAlertCmd(alertError, msg.Error()))

	case tea.WindowSizeMsg:
		ui.GetLayout().Update(msg.Width, msg.Height)
		c.table.SetWidth(ui.GetLayout().InnerWidth())
		c.table.SetHeight(ui.GetTableHeight(msg.Height))
		c.refresh()

	case settings.SettingsFinishedMsg:
		c.icons = msg.Config.IconType
		c.refresh()
		if msg.Err != nil {
			return c, c.alert.NewAlertCmd(alertError, fmt.Sprintf("failed to write config: %v", msg.Err))
		}
		return c, nil

	case search.ColumnChosenMsg:
		c.focusColumn(msg.Entry.Index)
		return c, nil

	case ui.ThemeChangedMsg:
		ui.GetLayout().SetTheme(msg.Theme)
		c.theme = msg.Theme
		c.navigator.SetTheme(msg.Theme)
		layout := ui.GetLayout()
		ui.UpdateTableTheme(&c.table, layout.InnerWidth(), layout.TotalHeight())
		c.navigator.Update(msg)
		return c, nil
	}

	if navCmd, captured := c.navigator.Update(msg); captured {
		return c, navCmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		slog.Log(context.Background(), config.LevelTrace, "TUI: key press", "key", msg.String())
		switch {
		case IsKey(msg, c.keys.Quit):
			return c, tea.Quit
		case IsKey(msg, c.keys.Help):
			return c, c.navigator.Push(help.NewHelpOverlayModel(c.name+" keys", c.keys, c.theme))
		case IsKey(msg, c.keys.Next):
			c.vm.NextPage()
			return c, nil
		case IsKey(msg, c.keys.Prev):
			c.vm.PrevPage()
			return c, nil
		case IsKey(msg, c.keys.PageLink):
			c.vm.GoToPage(c.vm.StartPage() + int(msg.Runes[0]-'1'))
			return c, nil
		case IsKey(msg, c.keys.FocusNext):
			c.moveFocus(1)
			return c, nil
		case IsKey(msg, c.keys.FocusPrev):
			c.moveFocus(-1)
			return c, nil
		case IsKey(msg, c.keys.Find):
			return c, c.navigator.Push(search.NewSearchOverlayModel(c.columnEntries(), c.theme))
		case IsKey(msg, c.keys.Sort):
			return c, c.sortFocused()
		case IsKey(msg, c.keys.Hide):
			return c, c.hideFocused()
		case IsKey(msg, c.keys.ShowAll):
			c.showAll()
			return c, nil
		case IsKey(msg, c.keys.Yank):
			return c, c.copySelected()
		case IsKey(msg, c.keys.Theme):
			return c, c.nextTheme()
		case IsKey(msg, c.keys.Settings):
			return c, c.navigator.Push(settings.NewSettingsOverlayModel(c.theme, c.save))
		}
	}

	alertModel, alertCmd := c.alert.Update(msg)
	c.alert = alertModel.(bubbleup.AlertModel)
	cmds = append(cmds, alertCmd)

	var tableCmd tea.Cmd
	c.table, tableCmd = c.table.Update(msg)
	cmds = append(cmds, tableCmd)

	return c, tea.Batch(cmds...)
}

func (c *Controller) presenter() *presenters.GridPresenter {
	return &presenters.GridPresenter{VM: c.vm, Name: c.name, Icons: c.icons, SortGlyphs: true}
}

// refresh rebuilds the table from the current page
func (c *Controller) refresh() {
	p := c.presenter()
	headers := p.Headers()
	c.focus = min(c.focus, max(len(headers)-1, 0))
	if c.focus < len(headers) {
		headers[c.focus] = focusMarker + headers[c.focus]
	}

	cols, rows := ui.FitColumns(headers, p.Rows(), ui.GetLayout().InnerWidth())
	cursor := c.table.Cursor()
	// rows must never have fewer cells than columns while either is swapped
	c.table.SetRows(nil)
	c.table.SetColumns(cols)
	c.table.SetRows(rows)
	if len(rows) > 0 {
		c.table.SetCursor(min(max(cursor, 0), len(rows)-1))
	}
}

func (c *Controller) resetCursor() {
	if len(c.table.Rows()) > 0 {
		c.table.SetCursor(0)
	}
}

func (c *Controller) moveFocus(delta int) {
	n := len(c.vm.VisibleColumns())
	if n == 0 {
		return
	}
	c.focus = ((c.focus+delta)%n + n) % n
	c.refresh()
}

// FocusedColumn is the visible column the sort and hide keys act on
func (c *Controller) FocusedColumn() (grid.Column, bool) {
	visible := c.vm.VisibleColumns()
	if c.focus >= len(visible) {
		return grid.Column{}, false
	}
	return visible[c.focus], true
}

func (c *Controller) columnEntries() []search.Entry {
	cols := c.vm.Columns()
	entries := make([]search.Entry, len(cols))
	for i, col := range cols {
		entries[i] = search.Entry{Index: i, Header: col.HeaderText, Hidden: !col.Visible}
	}
	return entries
}

// focusColumn shows the column at index i of the full column set and moves
// the focus onto it
func (c *Controller) focusColumn(i int) {
	c.vm.SetColumnVisible(i, true)
	pos := 0
	for j, col := range c.vm.Columns() {
		if j == i {
			break
		}
		if col.Visible {
			pos++
		}
	}
	c.focus = pos
	c.refresh()
}

func (c *Controller) sortFocused() tea.Cmd {
	col, ok := c.FocusedColumn()
	if !ok {
		return nil
	}
	if !col.Sortable {
		return c.alert.NewAlertCmd(alertError, fmt.Sprintf("%s is not sortable", col.HeaderText))
	}
	c.vm.SortBy(col)
	return nil
}

func (c *Controller) hideFocused() tea.Cmd {
	col, ok := c.FocusedColumn()
	if !ok {
		return nil
	}
	if len(c.vm.VisibleColumns()) == 1 {
		return c.alert.NewAlertCmd(alertError, "cannot hide the last column")
	}
	for i, other := range c.vm.Columns() {
		if other.HeaderText == col.HeaderText && other.Visible {
			c.vm.SetColumnVisible(i, false)
			break
		}
	}
	return nil
}

func (c *Controller) showAll() {
	for i := range c.vm.Columns() {
		c.vm.SetColumnVisible(i, true)
	}
}

// copySelected puts the row under the cursor on the clipboard, one
// tab-separated cell per visible column
func (c *Controller) copySelected() tea.Cmd {
	items := c.vm.ItemsOnCurrentPage()
	cursor := c.table.Cursor()
	if cursor < 0 || cursor >= len(items) {
		return nil
	}

	cols := c.vm.VisibleColumns()
	cells := make([]string, len(cols))
	for i, col := range cols {
		cells[i] = col.Text(items[cursor])
	}
	if err := c.clipboard(strings.Join(cells, "\t")); err != nil {
		return c.alert.NewAlertCmd(alertError, fmt.Sprintf("copy failed: %v", err))
	}
	return c.alert.NewAlertCmd(alertInfo, fmt.Sprintf("copied row %d", cursor+1))
}

func (c *Controller) nextTheme() tea.Cmd {
	themes := ui.Themes()
	next := themes[0]
	for i, t := range themes {
		if t.ID() == c.theme.ID() {
			next = themes[(i+1)%len(themes)]
			break
		}
	}
	config.Get().Theme = next.ID()
	return func() tea.Msg {
		return ui.ThemeChangedMsg{Theme: next}
	}
}

func (c *Controller) View() string {
	base := c.renderBaseView()
	base = c.navigator.Render(base)
	return c.alert.Render(base)
}

func (c *Controller) renderBaseView() string {
	layout := ui.GetLayout()
	if layout.TotalWidth() == 0 {
		return "Initializing..."
	}

	p := c.presenter()
	title := ui.TitleStyle(c.theme).MarginBottom(0).Render(p.Title())

	body := c.table.View()
	if c.vm.MaxPageIndex() < 0 {
		body = ui.MutedStyle(c.theme).Height(c.table.Height()).Render("No rows to display")
	}

	pager := ""
	if len(c.vm.PagerLinks()) > 0 {
		pager = ui.AccentStyle(c.theme).Render(p.Caption())
	}

	window := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder(), true).
		BorderForeground(c.theme.BrightBlack()).
		Width(layout.InnerWidth()).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, body, pager))

	footer := lipgloss.NewStyle().
		Width(layout.TotalWidth()).
		Background(c.theme.BrightBlack()).
		Foreground(c.theme.White()).
		Padding(0, 1).
		Render(" q: quit | n/p: page | tab: column | s: sort | v: hide | y: copy | o: settings | ?: help ")

	return lipgloss.JoinVertical(lipgloss.Left, window, footer)
}
