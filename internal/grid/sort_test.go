package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(rows []Row) []any {
	out := make([]any, len(rows))
	for i, r := range rows {
		out[i], _ = r.Get("id")
	}
	return out
}

func TestSortTogglesOrder(t *testing.T) {
	data := NewObservableRows([]Row{
		RowOf("id", 1, "score", 30),
		RowOf("id", 2, "score", 10),
		RowOf("id", 3, "score", 20),
	})
	vm := newGrid(t, data, 5, 5)
	score := vm.Columns()[1]

	vm.SortBy(score)
	assert.Equal(t, []any{2, 3, 1}, ids(data.All()))
	assert.Equal(t, Descending, vm.SortOrder())
	header, order, ok := vm.SortedBy()
	assert.True(t, ok)
	assert.Equal(t, "score", header)
	assert.Equal(t, Ascending, order)

	vm.SortBy(score)
	assert.Equal(t, []any{1, 3, 2}, ids(data.All()))
	assert.Equal(t, Ascending, vm.SortOrder())
}

func TestSortIsStable(t *testing.T) {
	data := NewObservableRows([]Row{
		RowOf("id", 1, "group", "b"),
		RowOf("id", 2, "group", "a"),
		RowOf("id", 3, "group", "b"),
		RowOf("id", 4, "group", "a"),
	})
	vm := newGrid(t, data, 5, 5)

	require.True(t, vm.SortByHeader("group"))
	assert.Equal(t, []any{2, 4, 1, 3}, ids(data.All()))

	require.True(t, vm.SortByHeader("group"))
	assert.Equal(t, []any{1, 3, 2, 4}, ids(data.All()))
}

func TestSortOrderIsShared(t *testing.T) {
	data := NewObservableRows([]Row{
		RowOf("id", 1, "name", "c"),
		RowOf("id", 2, "name", "a"),
		RowOf("id", 3, "name", "b"),
	})
	vm := newGrid(t, data, 5, 5)

	vm.SortByHeader("id")
	assert.Equal(t, Descending, vm.SortOrder())

	vm.SortByHeader("name")
	assert.Equal(t, []any{1, 3, 2}, ids(data.All()))
	assert.Equal(t, Ascending, vm.SortOrder())
}

func TestUnsortableColumnIsIgnored(t *testing.T) {
	data := NewObservableRows([]Row{
		RowOf("id", 2),
		RowOf("id", 1),
	})
	vm, err := New(&Options{
		Data: data,
		Columns: []ColumnDef{
			{HeaderText: "ID", RowText: Field("id"), Sortable: boolPtr(false)},
		},
	})
	require.NoError(t, err)

	var notified int
	vm.Subscribe(func(Change) { notified++ })

	vm.SortBy(vm.Columns()[0])
	assert.Equal(t, []any{2, 1}, ids(data.All()))
	assert.Equal(t, Ascending, vm.SortOrder())
	assert.Equal(t, 0, notified)
	_, _, ok := vm.SortedBy()
	assert.False(t, ok)
}

func TestSortByUnknownHeader(t *testing.T) {
	vm := newGrid(t, NewObservableRows(makeRows(3)), 5, 5)
	assert.False(t, vm.SortByHeader("missing"))
	assert.Equal(t, Ascending, vm.SortOrder())
}

func TestSortKeepsPage(t *testing.T) {
	vm := newGrid(t, NewObservableRows(makeRows(30)), 5, 2)
	vm.NextPage()
	vm.NextPage()

	vm.SortByHeader("id")
	assert.Equal(t, 2, vm.CurrentPageIndex())
	assert.Equal(t, 2, vm.StartPage())
}

func TestSortPlainRowsInPlace(t *testing.T) {
	rows := Rows{RowOf("id", 3), RowOf("id", 1), RowOf("id", 2)}
	vm := newGrid(t, rows, 5, 5)

	var changes []Change
	vm.Subscribe(func(c Change) { changes = append(changes, c) })

	vm.SortByHeader("id")
	assert.Equal(t, []any{1, 2, 3}, ids(rows))
	require.Len(t, changes, 1)
	assert.True(t, changes[0].Has(ChangeData|ChangeSort))
}

func TestSortFunction(t *testing.T) {
	data := NewObservableRows([]Row{RowOf("id", 2), RowOf("id", 1)})
	vm := newGrid(t, data, 5, 5)

	sortByID := vm.SortFunction(vm.Columns()[0])
	sortByID()
	assert.Equal(t, []any{1, 2}, ids(data.All()))
	sortByID()
	assert.Equal(t, []any{2, 1}, ids(data.All()))
}

func TestSortWithCustomComparator(t *testing.T) {
	data := NewObservableRows([]Row{
		RowOf("id", 1, "name", "bob"),
		RowOf("id", 2, "name", "Alice"),
	})
	byLength := func(a, b any) int {
		return len(a.(string)) - len(b.(string))
	}
	vm, err := New(&Options{Data: data, Compare: byLength})
	require.NoError(t, err)

	vm.SortByHeader("name")
	assert.Equal(t, []any{1, 2}, ids(data.All()))
}

func TestSortComputedColumn(t *testing.T) {
	data := NewObservableRows([]Row{
		RowOf("id", 1, "w", 2, "h", 5),
		RowOf("id", 2, "w", 3, "h", 1),
	})
	area := Computed(func(r Row) any {
		w, _ := r.Get("w")
		h, _ := r.Get("h")
		return w.(int) * h.(int)
	})
	vm, err := New(&Options{Data: data, Columns: []ColumnDef{{HeaderText: "Area", RowText: area}}})
	require.NoError(t, err)

	vm.SortByHeader("Area")
	assert.Equal(t, []any{2, 1}, ids(data.All()))
}
