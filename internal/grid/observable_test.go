package grid

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue(t *testing.T) {
	v := NewValue(1)
	var seen []int
	unsubscribe := v.Subscribe(func(n int) { seen = append(seen, n) })

	v.Set(1)
	v.Set(2)
	v.Set(3)
	unsubscribe()
	v.Set(4)

	assert.Equal(t, []int{2, 3}, seen)
	assert.Equal(t, 4, v.Get())
}

func TestListenerMayUnsubscribeItself(t *testing.T) {
	v := NewValue("a")
	var calls int
	var unsubscribe func()
	unsubscribe = v.Subscribe(func(string) {
		calls++
		unsubscribe()
	})
	other := 0
	v.Subscribe(func(string) { other++ })

	v.Set("b")
	v.Set("c")
	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, other)
}

func TestObservableRows(t *testing.T) {
	data := NewObservableRows(makeRows(2))
	var calls int
	unsubscribe := data.Subscribe(func() { calls++ })

	data.Push(makeRows(1)...)
	data.Push()
	assert.Equal(t, 3, data.Len())
	assert.Equal(t, 1, calls)

	data.Replace(makeRows(5))
	assert.Equal(t, 2, calls)
	assert.Len(t, data.Slice(3, 10), 2)
	assert.Empty(t, data.Slice(9, 12))

	unsubscribe()
	data.Push(makeRows(1)...)
	assert.Equal(t, 2, calls)
}

func TestChangesAreBatched(t *testing.T) {
	vm := newGrid(t, NewObservableRows(makeRows(30)), 5, 2)
	var changes []Change
	vm.Subscribe(func(c Change) { changes = append(changes, c) })

	vm.NextPage()
	require.Len(t, changes, 1)
	assert.Equal(t, ChangePage, changes[0])

	vm.NextPage()
	require.Len(t, changes, 2)
	assert.Equal(t, ChangePage|ChangeWindow, changes[1])

	vm.SetColumnVisible(0, false)
	vm.SetColumnVisible(0, false)
	vm.SetColumnVisible(9, true)
	require.Len(t, changes, 3)
	assert.Equal(t, ChangeColumns, changes[2])
	assert.Len(t, vm.VisibleColumns(), 1)
}

func TestBatch(t *testing.T) {
	vm := newGrid(t, NewObservableRows(makeRows(30)), 5, 2)
	var changes []Change
	vm.Subscribe(func(c Change) { changes = append(changes, c) })

	vm.Batch(func() {
		vm.NextPage()
		vm.NextPage()
		vm.SortBy(vm.Columns()[0])
		assert.Empty(t, changes)
	})
	require.Len(t, changes, 1)
	assert.True(t, changes[0].Has(ChangePage|ChangeWindow|ChangeSort|ChangeData))

	vm.Batch(func() {})
	assert.Len(t, changes, 1)
}

func TestDataChangeClampsPage(t *testing.T) {
	data := NewObservableRows(makeRows(30))
	vm := newGrid(t, data, 5, 2)
	for range 5 {
		vm.NextPage()
	}
	require.Equal(t, 5, vm.CurrentPageIndex())
	require.Equal(t, 5, vm.StartPage())

	var changes []Change
	vm.Subscribe(func(c Change) { changes = append(changes, c) })

	data.Replace(makeRows(7))
	assert.Equal(t, 1, vm.CurrentPageIndex())
	assert.Equal(t, 1, vm.StartPage())
	assert.Equal(t, 2, vm.EndPage())
	require.Len(t, changes, 1)
	assert.True(t, changes[0].Has(ChangeData|ChangePage|ChangeWindow))

	data.Replace(nil)
	assert.Equal(t, 0, vm.CurrentPageIndex())
	assert.Equal(t, 1, vm.StartPage())
	assert.Empty(t, vm.ItemsOnCurrentPage())
}

func TestDataGrowthKeepsPage(t *testing.T) {
	data := NewObservableRows(makeRows(6))
	vm := newGrid(t, data, 5, 5)
	vm.NextPage()

	var changes []Change
	vm.Subscribe(func(c Change) { changes = append(changes, c) })

	data.Push(makeRows(10)...)
	assert.Equal(t, 1, vm.CurrentPageIndex())
	assert.Equal(t, 3, vm.MaxPageIndex())
	require.Len(t, changes, 1)
	assert.Equal(t, ChangeData, changes[0])
}

func TestBind(t *testing.T) {
	vm := newGrid(t, NewObservableRows(makeRows(12)), 5, 5)
	var buf bytes.Buffer
	r := RendererFunc(func(vm *ViewModel, w io.Writer) error {
		_, err := fmt.Fprintf(w, "page %d;", vm.CurrentPageIndex()+1)
		return err
	})

	b, err := Bind(vm, r, &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, b.Renders())
	assert.Equal(t, "page 1;", buf.String())

	vm.NextPage()
	assert.Equal(t, 2, b.Renders())
	assert.Equal(t, "page 1;page 2;", buf.String())
	assert.NoError(t, b.Err())

	b.Close()
	b.Close()
	vm.NextPage()
	assert.Equal(t, 2, b.Renders())
}

func TestBindRenderErrors(t *testing.T) {
	vm := newGrid(t, NewObservableRows(makeRows(12)), 5, 5)
	boom := errors.New("boom")

	_, err := Bind(vm, RendererFunc(func(*ViewModel, io.Writer) error { return boom }), io.Discard)
	assert.ErrorIs(t, err, boom)

	fail := false
	b, err := Bind(vm, RendererFunc(func(*ViewModel, io.Writer) error {
		if fail {
			return boom
		}
		return nil
	}), io.Discard)
	require.NoError(t, err)
	fail = true
	vm.NextPage()
	assert.ErrorIs(t, b.Err(), boom)
}

func TestCompareValuesMixedColumnIsTotal(t *testing.T) {
	values := []any{"10a", 9, nil, 10.5, "b", true, "10a", 2}
	slices.SortStableFunc(values, CompareValues)
	assert.Equal(t, []any{nil, true, 2, 9, 10.5, "10a", "10a", "b"}, values)

	for _, a := range values {
		for _, b := range values {
			for _, c := range values {
				if CompareValues(a, b) <= 0 && CompareValues(b, c) <= 0 {
					assert.LessOrEqual(t, CompareValues(a, c), 0, "%v <= %v <= %v", a, b, c)
				}
			}
		}
	}
}

func TestCompareValues(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name string
		a, b any
		want int
	}{
		{name: "nils", a: nil, b: nil, want: 0},
		{name: "nil first", a: nil, b: 1, want: -1},
		{name: "nil last", a: "x", b: nil, want: 1},
		{name: "strings", a: "apple", b: "banana", want: -1},
		{name: "numeric strings stay strings", a: "10", b: "9", want: -1},
		{name: "ints", a: 10, b: 9, want: 1},
		{name: "mixed numbers", a: 1.5, b: int64(2), want: -1},
		{name: "equal numbers", a: 2, b: 2.0, want: 0},
		{name: "times", a: now, b: now.Add(time.Second), want: -1},
		{name: "bools", a: true, b: false, want: 1},
		{name: "fallback text", a: []int{2}, b: []int{1}, want: 1},
		{name: "numbers before strings", a: 9, b: "10a", want: -1},
		{name: "strings after numbers", a: "10a", b: 10.5, want: 1},
		{name: "numbers before times", a: 1e12, b: now, want: -1},
		{name: "times before strings", a: now, b: "a", want: -1},
		{name: "strings before other", a: "z", b: []int{1}, want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompareValues(tt.a, tt.b))
		})
	}
}
