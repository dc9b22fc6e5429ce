package grid

// SortOrder is the direction the next sort will use.
type SortOrder int

const (
	Ascending SortOrder = iota
	Descending
)

func (o SortOrder) String() string {
	if o == Descending {
		return "desc"
	}
	return "asc"
}

// Flip returns the opposite order.
func (o SortOrder) Flip() SortOrder {
	if o == Ascending {
		return Descending
	}
	return Ascending
}

// SortOrder is the order the next SortBy call will apply.
func (vm *ViewModel) SortOrder() SortOrder {
	return vm.order.Get()
}

// SortedBy returns the header and order of the last sort applied.
func (vm *ViewModel) SortedBy() (string, SortOrder, bool) {
	if vm.sorted == nil {
		return "", Ascending, false
	}
	return vm.sorted.header, vm.sorted.order, true
}

// SortBy stably sorts the data source in place by the column's accessor, in
// the current order, then flips the order for the next call no matter which
// column that will be. Unsortable columns are ignored and leave the order
// untouched. The page cursor and window are kept as they are.
func (vm *ViewModel) SortBy(col Column) {
	if !col.Sortable {
		return
	}
	vm.mutate(func() {
		order := vm.order.Get()
		vm.sorted = &sortedBy{header: col.HeaderText, order: order}
		vm.data.SortStableFunc(func(a, b Row) int {
			c := vm.compare(col.RowText.Value(a), col.RowText.Value(b))
			if order == Descending {
				return -c
			}
			return c
		})
		if _, ok := vm.data.(Subscriber); !ok {
			vm.record(ChangeData)
		}
		vm.order.Set(order.Flip())
		vm.logger.Debug("Grid: sorted", "column", col.HeaderText, "order", order.String())
	})
}

// SortFunction returns a handler that sorts by col, for binding to a header.
func (vm *ViewModel) SortFunction(col Column) func() {
	return func() { vm.SortBy(col) }
}

// SortByHeader sorts by the first column whose header matches. It reports
// whether such a column exists.
func (vm *ViewModel) SortByHeader(header string) bool {
	for _, c := range vm.columns {
		if c.HeaderText == header {
			vm.SortBy(c)
			return true
		}
	}
	return false
}
