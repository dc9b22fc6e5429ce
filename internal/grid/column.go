package grid

import (
	"fmt"

	"github.com/spf13/cast"
)

type accessorKind int

const (
	accessorField accessorKind = iota
	accessorComputed
)

// Accessor reads a column's display value off a row: either a named field or
// a computed function.
type Accessor struct {
	kind accessorKind
	name string
	fn   func(Row) any
}

// Field reads the named row field.
func Field(name string) Accessor {
	return Accessor{kind: accessorField, name: name}
}

// Computed derives the value from the whole row.
func Computed(fn func(Row) any) Accessor {
	return Accessor{kind: accessorComputed, fn: fn}
}

// Value resolves the accessor against a row. Missing fields resolve to nil.
func (a Accessor) Value(r Row) any {
	switch a.kind {
	case accessorComputed:
		if a.fn == nil {
			return nil
		}
		return a.fn(r)
	default:
		v, _ := r.Get(a.name)
		return v
	}
}

// Name is the field name for field accessors and "" for computed ones.
func (a Accessor) Name() string {
	if a.kind == accessorComputed {
		return ""
	}
	return a.name
}

func (a Accessor) IsComputed() bool {
	return a.kind == accessorComputed
}

// ColumnDef is a caller-supplied column definition. Nil flags default to true.
type ColumnDef struct {
	HeaderText string
	RowText    Accessor
	// Content is rendered instead of the row value when Bound is false.
	Content  string
	Visible  *bool
	Bound    *bool
	Sortable *bool
}

// Column is a resolved column definition.
type Column struct {
	HeaderText string
	RowText    Accessor
	Content    string
	Visible    bool
	Bound      bool
	Sortable   bool
}

// Value is what the column displays for a row: the accessor's value for bound
// columns, Content otherwise.
func (c Column) Value(r Row) any {
	if !c.Bound {
		return c.Content
	}
	return c.RowText.Value(r)
}

// Text is Value formatted for display.
func (c Column) Text(r Row) string {
	return FormatValue(c.Value(r))
}

// FormatValue renders a cell value as text. nil renders as "".
func FormatValue(v any) string {
	if v == nil {
		return ""
	}
	if s, err := cast.ToStringE(v); err == nil {
		return s
	}
	return fmt.Sprint(v)
}

// BuildColumns resolves the column set. A non-nil supplied slice is used as
// is, with unset flags defaulting to true; an empty one stays empty. With no
// supplied columns, one column is scaffolded per field of the first row.
func BuildColumns(supplied []ColumnDef, data DataSource) []Column {
	if supplied != nil {
		cols := make([]Column, 0, len(supplied))
		for _, def := range supplied {
			cols = append(cols, Column{
				HeaderText: def.HeaderText,
				RowText:    def.RowText,
				Content:    def.Content,
				Visible:    flagOrDefault(def.Visible),
				Bound:      flagOrDefault(def.Bound),
				Sortable:   flagOrDefault(def.Sortable),
			})
		}
		return cols
	}
	return scaffoldColumns(data)
}

func scaffoldColumns(data DataSource) []Column {
	if data == nil || data.Len() == 0 {
		return []Column{}
	}
	first := data.Slice(0, 1)[0]
	cols := make([]Column, 0, first.Len())
	for _, name := range first.Fields() {
		cols = append(cols, Column{
			HeaderText: name,
			RowText:    Field(name),
			Visible:    true,
			Bound:      true,
			Sortable:   true,
		})
	}
	return cols
}

func flagOrDefault(b *bool) bool {
	if b == nil {
		return true
	}
	return *b
}
