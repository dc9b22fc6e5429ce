package grid

import "slices"

// DataSource is the externally owned row collection a view-model pages over.
// The view-model keeps a reference to it and never copies it: sorting
// reorders it in place and pages are sliced from it on demand.
type DataSource interface {
	Len() int
	// Slice returns rows [start, end) clamped to the collection bounds.
	Slice(start, end int) []Row
	// SortStableFunc reorders the collection in place, keeping equal rows
	// in their current relative order.
	SortStableFunc(cmp func(a, b Row) int)
}

// Subscriber is implemented by reactive data sources.
type Subscriber interface {
	Subscribe(fn func()) func()
}

// Rows is a plain, non-reactive data source. Sorting reorders the caller's
// backing array.
type Rows []Row

func (r Rows) Len() int {
	return len(r)
}

func (r Rows) Slice(start, end int) []Row {
	start, end = clampRange(start, end, len(r))
	return slices.Clone(r[start:end])
}

func (r Rows) SortStableFunc(cmp func(a, b Row) int) {
	slices.SortStableFunc(r, cmp)
}

// ObservableRows is a reactive data source. Every mutation notifies
// subscribers synchronously after it has been applied.
type ObservableRows struct {
	rows []Row
	subs listeners[struct{}]
}

// NewObservableRows wraps rows. The slice is owned by the collection afterwards.
func NewObservableRows(rows []Row) *ObservableRows {
	return &ObservableRows{rows: rows}
}

func (o *ObservableRows) Len() int {
	return len(o.rows)
}

// At returns the row at index i.
func (o *ObservableRows) At(i int) Row {
	return o.rows[i]
}

// All returns a copy of every row in the current order.
func (o *ObservableRows) All() []Row {
	return slices.Clone(o.rows)
}

func (o *ObservableRows) Slice(start, end int) []Row {
	start, end = clampRange(start, end, len(o.rows))
	return slices.Clone(o.rows[start:end])
}

func (o *ObservableRows) SortStableFunc(cmp func(a, b Row) int) {
	slices.SortStableFunc(o.rows, cmp)
	o.changed()
}

// Push appends rows.
func (o *ObservableRows) Push(rows ...Row) {
	if len(rows) == 0 {
		return
	}
	o.rows = append(o.rows, rows...)
	o.changed()
}

// Replace swaps the whole contents.
func (o *ObservableRows) Replace(rows []Row) {
	o.rows = rows
	o.changed()
}

// Subscribe registers fn for every mutation. The returned func unsubscribes.
func (o *ObservableRows) Subscribe(fn func()) func() {
	return o.subs.add(func(struct{}) { fn() })
}

func (o *ObservableRows) changed() {
	o.subs.notify(struct{}{})
}

func clampRange(start, end, n int) (int, int) {
	start = min(max(start, 0), n)
	end = min(max(end, start), n)
	return start, end
}
