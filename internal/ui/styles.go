package ui

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/TylerBrock/colorjson"
	"github.com/charmbracelet/lipgloss"
	tint "github.com/lrstanley/bubbletint"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/ygelfand/kogrid/internal/config"
	"gopkg.in/yaml.v3"
)

var GridTeal = lipgloss.Color("#2ec4b6")

type KogridTint struct{}

func (t *KogridTint) DisplayName() string { return "Kogrid" }
func (t *KogridTint) ID() string          { return "kogrid" }
func (t *KogridTint) About() string       { return "Kogrid default theme" }

func (t *KogridTint) Fg() lipgloss.TerminalColor          { return lipgloss.Color("#d0d0d0") }
func (t *KogridTint) Bg() lipgloss.TerminalColor          { return lipgloss.Color("#161b22") }
func (t *KogridTint) SelectionBg() lipgloss.TerminalColor { return lipgloss.Color("#30363d") }
func (t *KogridTint) Cursor() lipgloss.TerminalColor      { return GridTeal }

func (t *KogridTint) BrightBlack() lipgloss.TerminalColor  { return lipgloss.Color("#484f58") }
func (t *KogridTint) BrightBlue() lipgloss.TerminalColor   { return lipgloss.Color("#79c0ff") }
func (t *KogridTint) BrightCyan() lipgloss.TerminalColor   { return lipgloss.Color("#56d4dd") }
func (t *KogridTint) BrightGreen() lipgloss.TerminalColor  { return lipgloss.Color("#56d364") }
func (t *KogridTint) BrightPurple() lipgloss.TerminalColor { return lipgloss.Color("#d2a8ff") }
func (t *KogridTint) BrightRed() lipgloss.TerminalColor    { return lipgloss.Color("#ff7b72") }
func (t *KogridTint) BrightWhite() lipgloss.TerminalColor  { return lipgloss.Color("#ffffff") }
func (t *KogridTint) BrightYellow() lipgloss.TerminalColor { return lipgloss.Color("#e3b341") }

func (t *KogridTint) Black() lipgloss.TerminalColor  { return lipgloss.Color("#000000") }
func (t *KogridTint) Blue() lipgloss.TerminalColor   { return lipgloss.Color("#388bfd") }
func (t *KogridTint) Cyan() lipgloss.TerminalColor   { return lipgloss.Color("#39c5cf") }
func (t *KogridTint) Green() lipgloss.TerminalColor  { return lipgloss.Color("#3fb950") }
func (t *KogridTint) Purple() lipgloss.TerminalColor { return lipgloss.Color("#bc8cff") }
func (t *KogridTint) Red() lipgloss.TerminalColor    { return lipgloss.Color("#f85149") }
func (t *KogridTint) White() lipgloss.TerminalColor  { return lipgloss.Color("#d0d0d0") }
func (t *KogridTint) Yellow() lipgloss.TerminalColor { return lipgloss.Color("#d29922") }

var KogridTheme = &KogridTint{}

// Themes lists every selectable theme, ours first.
func Themes() []tint.Tint {
	return append([]tint.Tint{KogridTheme}, tint.DefaultTints()...)
}

// CurrentTheme returns the theme currently configured in config.Get()
func CurrentTheme() tint.Tint {
	cfg := config.Get()
	for _, t := range Themes() {
		if t.ID() == cfg.Theme {
			return t
		}
	}
	return KogridTheme
}

// Accent returns the primary accent color for the theme
func Accent(t tint.Tint) lipgloss.TerminalColor {
	if t.ID() == KogridTheme.ID() {
		return GridTeal
	}
	return t.BrightCyan()
}

func AccentStyle(t tint.Tint) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Accent(t))
}

func TitleStyle(t tint.Tint) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(Accent(t)).
		MarginBottom(1)
}

func LabelStyle(t tint.Tint) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.BrightWhite()).
		Width(20)
}

func ValueStyle(t tint.Tint) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.White())
}

func MutedStyle(t tint.Tint) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.BrightBlack())
}

func ErrorStyle(t tint.Tint) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.BrightRed()).
		Bold(true)
}

func SuccessStyle(t tint.Tint) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.BrightGreen()).
		Bold(true)
}

// RenderError prints a styled error message
func RenderError(err error) {
	fmt.Fprintf(os.Stderr, "%s %v\n", ErrorStyle(CurrentTheme()).Render("Error:"), err)
}

// RenderSuccess prints a styled success message
func RenderSuccess(w io.Writer, msg string) {
	fmt.Fprintln(w, SuccessStyle(CurrentTheme()).Render(msg))
}

// OutputData represents data that can be printed in multiple formats
type OutputData struct {
	Title   string
	Headers []string
	Rows    [][]string
	// Caption is printed under tables and text output, e.g. the pager line.
	Caption string
	Raw     any // Used for JSON/YAML
}

// Decorated reports whether format is meant for people rather than other
// programs. Only decorated output carries glyphs such as sort indicators.
func Decorated(format string) bool {
	switch strings.Trim(strings.ToLower(format), "\"") {
	case "json", "json-pretty", "yaml", "csv":
		return false
	}
	return true
}

// Write renders the data to w in the given format
func (d OutputData) Write(w io.Writer, format string) error {
	// Robustly handle potentially quoted format strings from config
	format = strings.Trim(strings.ToLower(format), "\"")

	switch format {
	case "json":
		return d.writeJSON(w)
	case "json-pretty":
		return d.writeJSONPretty(w)
	case "yaml":
		return d.writeYAML(w)
	case "csv":
		return d.writeCSV(w)
	case "txt", "text":
		return d.writeText(w)
	case "table":
		fallthrough
	default:
		return d.writeTable(w)
	}
}

func (d OutputData) writeJSONPretty(w io.Writer) error {
	rawJSON, err := json.Marshal(d.Raw)
	if err != nil {
		return err
	}
	var obj any
	if err := json.Unmarshal(rawJSON, &obj); err != nil {
		return err
	}

	f := colorjson.NewFormatter()
	f.Indent = 2
	b, err := f.Marshal(obj)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func (d OutputData) writeJSON(w io.Writer) error {
	b, err := json.Marshal(d.Raw)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func (d OutputData) writeYAML(w io.Writer) error {
	b, err := yaml.Marshal(d.Raw)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

func (d OutputData) writeCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(d.Headers); err != nil {
		return err
	}
	// WriteAll flushes
	return cw.WriteAll(d.Rows)
}

func (d OutputData) writeText(w io.Writer) error {
	theme := CurrentTheme()
	if d.Title != "" {
		fmt.Fprintln(w, TitleStyle(theme).Render(d.Title))
	}
	for _, row := range d.Rows {
		for i, val := range row {
			if i < len(d.Headers) {
				fmt.Fprintf(w, "%s %s\n", LabelStyle(theme).Render(d.Headers[i]+":"), ValueStyle(theme).Render(val))
			}
		}
		fmt.Fprintln(w)
	}
	if d.Caption != "" {
		fmt.Fprintln(w, d.Caption)
	}
	return nil
}

func (d OutputData) writeTable(w io.Writer) error {
	if d.Title != "" {
		fmt.Fprintln(w, TitleStyle(CurrentTheme()).Render(d.Title))
	}

	table := tablewriter.NewWriter(w)
	table.Header(d.Headers)
	if err := table.Bulk(d.Rows); err != nil {
		return err
	}
	if d.Caption != "" {
		table.Caption(tw.Caption{Text: d.Caption})
	}
	return table.Render()
}
