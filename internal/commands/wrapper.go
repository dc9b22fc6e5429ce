package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/template"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/ygelfand/kogrid/internal/cache"
	"github.com/ygelfand/kogrid/internal/config"
	"github.com/ygelfand/kogrid/internal/dataset"
	"github.com/ygelfand/kogrid/internal/grid"
	"github.com/ygelfand/kogrid/internal/presenters"
	"github.com/ygelfand/kogrid/internal/ui"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var ErrNoSources = errors.New("at least one data source is required")

// RunnerFunc defines the signature for a command handler that receives a ready grid
type RunnerFunc func(ctx context.Context, vm *grid.ViewModel, cmd *cobra.Command, args []string, opts *GridOptions) error

// OptionsFromViper collects the shared flags after config, env and flags are merged
func OptionsFromViper() *GridOptions {
	return &GridOptions{
		OutputFormat: viper.GetString("output"),
		Verbosity:    viper.GetInt("verbose"),
		Sort:         viper.GetString("sort"),
		Page:         viper.GetInt("page"),
		PageSize:     viper.GetInt("page_size"),
		PagerCount:   viper.GetInt("pager_count"),
	}
}

// RunWithGrid wraps a cobra command RunE function to load the data sources
// named in args and inject a view-model over them, sorted as requested.
func RunWithGrid(runner RunnerFunc) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return ErrNoSources
		}
		opts := OptionsFromViper()
		cfg := config.Get()

		rows, err := LoadRows(cmd.Context(), cfg, cmd.InOrStdin(), args)
		if err != nil {
			return err
		}
		vm, err := BuildViewModel(rows, cfg, opts)
		if err != nil {
			return err
		}
		if opts.Sort != "" {
			if err := ApplySort(vm, opts.Sort); err != nil {
				return err
			}
		}
		return runner(cmd.Context(), vm, cmd, args, opts)
	}
}

// LoadRows reads every source, caching URL bodies unless caching is off
func LoadRows(ctx context.Context, cfg *config.Config, stdin io.Reader, sources []string) ([]grid.Row, error) {
	loader := &dataset.Loader{Stdin: stdin, TTL: cfg.CacheTTL}
	if !cfg.NoCache {
		m, err := cache.Get(cfg.CacheDir)
		if err != nil {
			slog.Warn("Commands: cache unavailable, fetching directly", "dir", cfg.CacheDir, "error", err)
		} else {
			loader.Cache = m
		}
	}
	return loader.LoadAll(ctx, sources)
}

// BuildViewModel wraps rows in a reactive source and configures a grid over
// them from the config file and flags. Flags win over config.
func BuildViewModel(rows []grid.Row, cfg *config.Config, opts *GridOptions) (*grid.ViewModel, error) {
	cols, err := ColumnDefs(cfg.Columns)
	if err != nil {
		return nil, err
	}
	cmp, err := Comparator(cfg.Collation)
	if err != nil {
		return nil, err
	}

	pageSize, pagerCount := cfg.PageSize, cfg.PagerCount
	if opts.PageSize > 0 {
		pageSize = opts.PageSize
	}
	if opts.PagerCount > 0 {
		pagerCount = opts.PagerCount
	}

	return grid.New(&grid.Options{
		Data:       grid.NewObservableRows(rows),
		Columns:    cols,
		PageSize:   pageSize,
		PagerCount: pagerCount,
		Compare:    cmp,
		Logger:     slog.Default(),
	})
}

// ColumnDefs converts configured columns. No configured columns means the
// grid scaffolds them. A column without row_text or template reads the field
// named like its header.
func ColumnDefs(cfgs []config.ColumnConfig) ([]grid.ColumnDef, error) {
	if len(cfgs) == 0 {
		return nil, nil
	}
	defs := make([]grid.ColumnDef, 0, len(cfgs))
	for _, c := range cfgs {
		def := grid.ColumnDef{
			HeaderText: c.HeaderText,
			Content:    c.Content,
			Visible:    c.Visible,
			Bound:      c.Bound,
			Sortable:   c.Sortable,
		}
		switch {
		case c.Template != "":
			acc, err := TemplateAccessor(c.HeaderText, c.Template)
			if err != nil {
				return nil, err
			}
			def.RowText = acc
		case c.RowText != "":
			def.RowText = grid.Field(c.RowText)
		default:
			def.RowText = grid.Field(c.HeaderText)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// TemplateAccessor compiles a text/template over a row's fields into a
// computed accessor. Execution errors render as an empty cell.
func TemplateAccessor(name, text string) (grid.Accessor, error) {
	tmpl, err := template.New(name).Option("missingkey=zero").Parse(text)
	if err != nil {
		return grid.Accessor{}, fmt.Errorf("column %q template: %w", name, err)
	}
	return grid.Computed(func(r grid.Row) any {
		var b strings.Builder
		if err := tmpl.Execute(&b, r.Map()); err != nil {
			slog.Debug("Commands: template failed", "column", name, "error", err)
			return ""
		}
		return b.String()
	}), nil
}

// Comparator returns the sort comparator for a collation tag. Strings are
// compared with the locale's collation rules; all other values fall back to
// grid.CompareValues. An empty tag keeps the default bytewise order.
func Comparator(tag string) (grid.CompareFunc, error) {
	if tag == "" {
		return grid.CompareValues, nil
	}
	lang, err := language.Parse(tag)
	if err != nil {
		return nil, fmt.Errorf("invalid collation %q: %w", tag, err)
	}
	c := collate.New(lang)
	return func(a, b any) int {
		as, aok := a.(string)
		bs, bok := b.(string)
		if aok && bok {
			return c.CompareString(as, bs)
		}
		return grid.CompareValues(a, b)
	}, nil
}

// ResolveColumn finds a column by header: exact, then case-insensitive, then
// the best fuzzy match.
func ResolveColumn(vm *grid.ViewModel, name string) (grid.Column, error) {
	cols := vm.Columns()
	for _, c := range cols {
		if c.HeaderText == name {
			return c, nil
		}
	}
	for _, c := range cols {
		if strings.EqualFold(c.HeaderText, name) {
			return c, nil
		}
	}

	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.HeaderText
	}
	if matches := fuzzy.Find(name, headers); len(matches) > 0 {
		slog.Debug("Commands: fuzzy column match", "query", name, "column", matches[0].Str, "score", matches[0].Score)
		return cols[matches[0].Index], nil
	}
	return grid.Column{}, fmt.Errorf("unknown column %q. Available: %s", name, strings.Join(headers, ", "))
}

// ApplySort sorts by the named column. A bare name sorts in the grid's
// current order, so repeating it toggles. A leading "-" forces descending and
// "+" ascending. Either way listeners see one change.
func ApplySort(vm *grid.ViewModel, key string) error {
	name := strings.TrimLeft(key, "+-")
	col, err := ResolveColumn(vm, name)
	if err != nil {
		return err
	}
	if !col.Sortable {
		return fmt.Errorf("column %q is not sortable", col.HeaderText)
	}
	vm.Batch(func() {
		if name != key {
			want := grid.Ascending
			if key[0] == '-' {
				want = grid.Descending
			}
			if vm.SortOrder() != want {
				vm.SortBy(col)
			}
		}
		vm.SortBy(col)
	})
	return nil
}

// SeekPage reaches page (one-based) by stepping forward, so the pager window
// ends up where a user paging by hand would leave it.
func SeekPage(vm *grid.ViewModel, page int) error {
	last := max(vm.MaxPageIndex()+1, 1)
	if page < 1 || page > last {
		return fmt.Errorf("page %d out of range (1-%d)", page, last)
	}
	for vm.CurrentPageIndex() < page-1 {
		vm.NextPage()
	}
	return nil
}

// Print formats and prints data using the provided Presenter
func Print(w io.Writer, p presenters.Presenter, opts *GridOptions) error {
	data := ui.OutputData{
		Title:   p.Title(),
		Headers: p.Headers(),
		Rows:    p.Rows(),
		Raw:     p.Raw(),
	}
	if c, ok := p.(presenters.Captioner); ok {
		data.Caption = c.Caption()
	}
	return data.Write(w, opts.OutputFormat)
}

// OutputRenderer draws the current page in one of the output formats. It is
// the renderer the line-oriented commands bind to a grid.
type OutputRenderer struct {
	Name   string
	Format string
	Icons  config.IconType
}

func (r OutputRenderer) Render(vm *grid.ViewModel, w io.Writer) error {
	p := &presenters.GridPresenter{VM: vm, Name: r.Name, Icons: r.Icons, SortGlyphs: ui.Decorated(r.Format)}
	return Print(w, p, &GridOptions{OutputFormat: r.Format})
}
