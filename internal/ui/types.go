package ui

import (
	tint "github.com/lrstanley/bubbletint"
)

type HelpKey struct {
	Key  string
	Desc string
}

type HelpProvider interface {
	HelpKeys() []HelpKey
}

type ThemeChangedMsg struct {
	Theme tint.Tint
}

// ErrorMsg surfaces a failure as an alert inside the TUI.
type ErrorMsg struct {
	Err error
}
