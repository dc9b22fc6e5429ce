package presenters

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ygelfand/kogrid/internal/config"
	"github.com/ygelfand/kogrid/internal/grid"
	"github.com/ygelfand/kogrid/internal/ui"
)

// GridPresenter formats the current page of a grid
type GridPresenter struct {
	VM    *grid.ViewModel
	Name  string
	Icons config.IconType
	// SortGlyphs marks the sorted header with an order indicator. Leave it
	// off for machine formats so headers stay the column names.
	SortGlyphs bool
}

// PageDocument is the machine-readable form of one page
type PageDocument struct {
	Page      int        `json:"page" yaml:"page"`
	MaxPage   int        `json:"max_page" yaml:"max_page"`
	StartPage int        `json:"start_page" yaml:"start_page"`
	EndPage   int        `json:"end_page" yaml:"end_page"`
	PageSize  int        `json:"page_size" yaml:"page_size"`
	Total     int        `json:"total" yaml:"total"`
	SortedBy  string     `json:"sorted_by,omitempty" yaml:"sorted_by,omitempty"`
	Order     string     `json:"order,omitempty" yaml:"order,omitempty"`
	Items     []grid.Row `json:"items" yaml:"items"`
}

func (p *GridPresenter) Title() string {
	if p.VM.MaxPageIndex() < 0 {
		return fmt.Sprintf("%s (empty)", p.Name)
	}
	return fmt.Sprintf("%s: page %d of %d (%d rows)", p.Name,
		p.VM.CurrentPageIndex()+1, p.VM.MaxPageIndex()+1, p.VM.Data().Len())
}

func (p *GridPresenter) Headers() []string {
	sortedBy, order, sorted := p.VM.SortedBy()
	var headers []string
	for _, c := range p.VM.VisibleColumns() {
		h := c.HeaderText
		if p.SortGlyphs && sorted && h == sortedBy {
			h += " " + ui.SortGlyph(p.Icons, order)
		}
		headers = append(headers, h)
	}
	return headers
}

func (p *GridPresenter) Rows() [][]string {
	cols := p.VM.VisibleColumns()
	var rows [][]string
	for _, r := range p.VM.ItemsOnCurrentPage() {
		cells := make([]string, len(cols))
		for i, c := range cols {
			cells[i] = c.Text(r)
		}
		rows = append(rows, cells)
	}
	return rows
}

func (p *GridPresenter) Raw() interface{} {
	doc := PageDocument{
		Page:      p.VM.CurrentPageIndex() + 1,
		MaxPage:   p.VM.MaxPageIndex() + 1,
		StartPage: p.VM.StartPage(),
		EndPage:   p.VM.EndPage(),
		PageSize:  p.VM.PageSize(),
		Total:     p.VM.Data().Len(),
		Items:     p.VM.ItemsOnCurrentPage(),
	}
	if header, order, ok := p.VM.SortedBy(); ok {
		doc.SortedBy = header
		doc.Order = order.String()
	}
	return doc
}

func (p *GridPresenter) SortableColumns() []string {
	var cols []string
	for _, c := range p.VM.Columns() {
		if c.Sortable {
			cols = append(cols, c.HeaderText)
		}
	}
	return cols
}

func (p *GridPresenter) SortBy(column string) bool {
	return p.VM.SortByHeader(column)
}

func (p *GridPresenter) DefaultSort() string {
	return ""
}

// Caption is the pager line shown under the page
func (p *GridPresenter) Caption() string {
	return PagerLine(p.VM, p.Icons)
}

// PagerLine renders the pager window, e.g. "< 1 [2] 3 >". The arrows are
// only drawn when the view-model shows the pager row.
func PagerLine(vm *grid.ViewModel, icons config.IconType) string {
	links := vm.PagerLinks()
	parts := make([]string, 0, len(links)+2)
	prev, next := ui.PagerArrows(icons)
	if vm.ShowPagerRow() {
		parts = append(parts, prev)
	}
	for _, l := range links {
		n := strconv.Itoa(l.Number)
		if l.Selected {
			n = "[" + n + "]"
		}
		parts = append(parts, n)
	}
	if vm.ShowPagerRow() {
		parts = append(parts, next)
	}
	return strings.Join(parts, " ")
}

// ColumnsPresenter lists the resolved column set of a grid
type ColumnsPresenter struct {
	VM *grid.ViewModel
}

// ColumnInfo describes one column for JSON/YAML output
type ColumnInfo struct {
	Header   string `json:"header" yaml:"header"`
	Field    string `json:"field,omitempty" yaml:"field,omitempty"`
	Computed bool   `json:"computed" yaml:"computed"`
	Visible  bool   `json:"visible" yaml:"visible"`
	Bound    bool   `json:"bound" yaml:"bound"`
	Sortable bool   `json:"sortable" yaml:"sortable"`
}

func (p *ColumnsPresenter) info() []ColumnInfo {
	cols := p.VM.Columns()
	out := make([]ColumnInfo, len(cols))
	for i, c := range cols {
		out[i] = ColumnInfo{
			Header:   c.HeaderText,
			Field:    c.RowText.Name(),
			Computed: c.RowText.IsComputed(),
			Visible:  c.Visible,
			Bound:    c.Bound,
			Sortable: c.Sortable,
		}
	}
	return out
}

func (p *ColumnsPresenter) Title() string {
	return "Columns"
}

func (p *ColumnsPresenter) Headers() []string {
	return []string{"#", "HEADER", "FIELD", "VISIBLE", "BOUND", "SORTABLE"}
}

func (p *ColumnsPresenter) Rows() [][]string {
	var rows [][]string
	for i, c := range p.info() {
		field := c.Field
		if c.Computed {
			field = "(computed)"
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			c.Header,
			field,
			strconv.FormatBool(c.Visible),
			strconv.FormatBool(c.Bound),
			strconv.FormatBool(c.Sortable),
		})
	}
	return rows
}

func (p *ColumnsPresenter) Raw() interface{} {
	return p.info()
}

func (p *ColumnsPresenter) SortableColumns() []string {
	return []string{}
}

func (p *ColumnsPresenter) SortBy(column string) bool {
	return false
}

func (p *ColumnsPresenter) DefaultSort() string {
	return ""
}
