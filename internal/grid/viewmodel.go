// Package grid is the view-model behind a paginated, sortable data grid.
//
// A ViewModel pages over an externally owned DataSource, keeps a sliding
// window of pager links around the current page, and toggles the sort order
// every time a column is sorted. Rendering is left to the host: it subscribes
// to change notifications and reads the derived queries, or hands a Renderer
// to Bind.
package grid

import (
	"errors"
	"log/slog"
)

const (
	DefaultPageSize   = 5
	DefaultPagerCount = 5
)

var (
	ErrNoOptions = errors.New("grid: no options supplied")
	ErrNoData    = errors.New("grid: options have no data source")
)

// Options configures a ViewModel.
type Options struct {
	// Data is required.
	Data DataSource
	// Columns nil means scaffold from the first row.
	Columns []ColumnDef
	// PageSize <= 0 means DefaultPageSize.
	PageSize int
	// PagerCount <= 0 means DefaultPagerCount.
	PagerCount int
	// Compare nil means CompareValues.
	Compare CompareFunc
	// Logger nil means slog.Default().
	Logger *slog.Logger
}

// Change is a bitmask of what a notification covers.
type Change uint8

const (
	ChangePage Change = 1 << iota
	ChangeWindow
	ChangeData
	ChangeSort
	ChangeColumns
)

// Has reports whether c includes every bit of other.
func (c Change) Has(other Change) bool {
	return c&other == other
}

// PageLink is one entry of the pager window.
type PageLink struct {
	Number   int
	Selected bool
}

// ViewModel is the grid state machine. It is not safe for concurrent use.
type ViewModel struct {
	data       DataSource
	columns    []Column
	pageSize   int
	pagerCount int
	compare    CompareFunc
	logger     *slog.Logger

	currentPageIndex *Value[int]
	startPage        *Value[int]
	order            *Value[SortOrder]
	sorted           *sortedBy

	changes listeners[Change]
	depth   int
	pending Change
}

type sortedBy struct {
	header string
	order  SortOrder
}

// New builds a view-model. It returns ErrNoOptions or ErrNoData instead of a
// half-configured grid.
func New(opts *Options) (*ViewModel, error) {
	if opts == nil {
		return nil, ErrNoOptions
	}
	if opts.Data == nil {
		return nil, ErrNoData
	}

	vm := &ViewModel{
		data:             opts.Data,
		pageSize:         opts.PageSize,
		pagerCount:       opts.PagerCount,
		compare:          opts.Compare,
		logger:           opts.Logger,
		currentPageIndex: NewValue(0),
		startPage:        NewValue(1),
		order:            NewValue(Ascending),
	}
	if vm.pageSize <= 0 {
		vm.pageSize = DefaultPageSize
	}
	if vm.pagerCount <= 0 {
		vm.pagerCount = DefaultPagerCount
	}
	if vm.compare == nil {
		vm.compare = CompareValues
	}
	if vm.logger == nil {
		vm.logger = slog.Default()
	}
	vm.columns = BuildColumns(opts.Columns, opts.Data)

	vm.currentPageIndex.Subscribe(func(int) { vm.record(ChangePage) })
	vm.startPage.Subscribe(func(int) { vm.record(ChangeWindow) })
	vm.order.Subscribe(func(SortOrder) { vm.record(ChangeSort) })
	if sub, ok := opts.Data.(Subscriber); ok {
		sub.Subscribe(vm.dataChanged)
	}

	vm.logger.Debug("Grid: created", "rows", opts.Data.Len(), "columns", len(vm.columns),
		"page_size", vm.pageSize, "pager_count", vm.pagerCount)
	return vm, nil
}

// Subscribe registers fn for change notifications. Notifications are
// delivered once a command has completed, with every change it made
// combined into one mask.
func (vm *ViewModel) Subscribe(fn func(Change)) func() {
	return vm.changes.add(fn)
}

// mutate runs fn as one command: changes recorded while it runs are flushed
// together when the outermost mutate returns.
func (vm *ViewModel) mutate(fn func()) {
	vm.depth++
	fn()
	vm.depth--
	if vm.depth == 0 && vm.pending != 0 {
		c := vm.pending
		vm.pending = 0
		vm.changes.notify(c)
	}
}

// Batch runs fn as one command. Listeners get a single notification covering
// every change fn makes.
func (vm *ViewModel) Batch(fn func()) {
	vm.mutate(fn)
}

func (vm *ViewModel) record(c Change) {
	if vm.depth > 0 {
		vm.pending |= c
		return
	}
	vm.changes.notify(c)
}

// dataChanged keeps the cursor and window valid when a reactive source
// grows or shrinks underneath the grid.
func (vm *ViewModel) dataChanged() {
	vm.mutate(func() {
		vm.record(ChangeData)

		idx := vm.currentPageIndex.Get()
		if last := max(vm.MaxPageIndex(), 0); idx > last {
			vm.logger.Debug("Grid: clamping page after data change", "from", idx, "to", last)
			idx = last
			vm.currentPageIndex.Set(idx)
		}
		if vm.startPage.Get() > idx+1 {
			vm.startPage.Set(max(1, idx+2-vm.pagerCount))
		}
	})
}

// Data returns the data source the grid was built over.
func (vm *ViewModel) Data() DataSource {
	return vm.data
}

// Columns returns a copy of the column set.
func (vm *ViewModel) Columns() []Column {
	out := make([]Column, len(vm.columns))
	copy(out, vm.columns)
	return out
}

// VisibleColumns returns the columns currently shown.
func (vm *ViewModel) VisibleColumns() []Column {
	var out []Column
	for _, c := range vm.columns {
		if c.Visible {
			out = append(out, c)
		}
	}
	return out
}

// SetColumnVisible flips the visibility of the column at index i. It is the
// only column mutation allowed after construction. Out of range is a no-op.
func (vm *ViewModel) SetColumnVisible(i int, visible bool) {
	if i < 0 || i >= len(vm.columns) || vm.columns[i].Visible == visible {
		return
	}
	vm.mutate(func() {
		vm.columns[i].Visible = visible
		vm.record(ChangeColumns)
	})
}

func (vm *ViewModel) PageSize() int {
	return vm.pageSize
}

func (vm *ViewModel) PagerCount() int {
	return vm.pagerCount
}
