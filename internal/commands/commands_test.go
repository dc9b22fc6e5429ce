package commands

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ygelfand/kogrid/internal/config"
	"github.com/ygelfand/kogrid/internal/grid"
	"github.com/ygelfand/kogrid/internal/presenters"
)

func rows(n int) []grid.Row {
	out := make([]grid.Row, n)
	for i := range out {
		out[i] = grid.RowOf("id", i+1, "name", fmt.Sprintf("user%02d", n-i), "created_at", "2024-01-01")
	}
	return out
}

func buildVM(t *testing.T, n int, opts *GridOptions) *grid.ViewModel {
	t.Helper()
	if opts == nil {
		opts = &GridOptions{}
	}
	vm, err := BuildViewModel(rows(n), config.Default(), opts)
	require.NoError(t, err)
	return vm
}

func TestBuildViewModel(t *testing.T) {
	cfg := config.Default()
	cfg.PageSize = 3
	cfg.PagerCount = 4

	vm, err := BuildViewModel(rows(10), cfg, &GridOptions{PagerCount: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, vm.PageSize())
	assert.Equal(t, 2, vm.PagerCount())
	assert.Len(t, vm.Columns(), 3)
	assert.Len(t, vm.ItemsOnCurrentPage(), 3)

	cfg.Collation = "!!"
	_, err = BuildViewModel(rows(1), cfg, &GridOptions{})
	assert.Error(t, err)
}

func TestColumnDefs(t *testing.T) {
	hidden := false
	defs, err := ColumnDefs([]config.ColumnConfig{
		{HeaderText: "id"},
		{HeaderText: "Who", RowText: "name"},
		{HeaderText: "Label", Template: "{{.id}}-{{.name}}"},
		{HeaderText: "Secret", RowText: "id", Visible: &hidden},
	})
	require.NoError(t, err)
	require.Len(t, defs, 4)

	row := grid.RowOf("id", 7, "name", "ada")
	assert.Equal(t, 7, defs[0].RowText.Value(row))
	assert.Equal(t, "ada", defs[1].RowText.Value(row))
	assert.True(t, defs[2].RowText.IsComputed())
	assert.Equal(t, "7-ada", defs[2].RowText.Value(row))
	assert.Same(t, &hidden, defs[3].Visible)

	defs, err = ColumnDefs(nil)
	require.NoError(t, err)
	assert.Nil(t, defs)

	_, err = ColumnDefs([]config.ColumnConfig{{HeaderText: "Bad", Template: "{{.id"}})
	assert.ErrorContains(t, err, "Bad")
}

func TestComparator(t *testing.T) {
	bytewise, err := Comparator("")
	require.NoError(t, err)
	assert.Equal(t, 1, bytewise("a", "B"))

	english, err := Comparator("en")
	require.NoError(t, err)
	assert.Equal(t, -1, english("a", "B"))
	assert.Equal(t, -1, english(1, 2))
	assert.Equal(t, -1, english(nil, "a"))

	_, err = Comparator("!!")
	assert.Error(t, err)
}

func TestResolveColumn(t *testing.T) {
	vm := buildVM(t, 3, nil)

	tests := []struct {
		query   string
		want    string
		wantErr bool
	}{
		{query: "name", want: "name"},
		{query: "NAME", want: "name"},
		{query: "crt", want: "created_at"},
		{query: "zzz", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			col, err := ResolveColumn(vm, tt.query)
			if tt.wantErr {
				assert.ErrorContains(t, err, "Available: id, name, created_at")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, col.HeaderText)
		})
	}
}

func TestApplySort(t *testing.T) {
	vm := buildVM(t, 3, nil)
	data := vm.Data().(*grid.ObservableRows)

	require.NoError(t, ApplySort(vm, "name"))
	first, _ := data.At(0).Get("name")
	assert.Equal(t, "user01", first)

	require.NoError(t, ApplySort(vm, "-id"))
	first, _ = data.At(0).Get("id")
	assert.Equal(t, 3, first)
	_, order, _ := vm.SortedBy()
	assert.Equal(t, grid.Descending, order)

	require.NoError(t, ApplySort(vm, "+id"))
	first, _ = data.At(0).Get("id")
	assert.Equal(t, 1, first)

	assert.Error(t, ApplySort(vm, "zzz"))

	locked := false
	vm, err := grid.New(&grid.Options{
		Data:    grid.NewObservableRows(rows(2)),
		Columns: []grid.ColumnDef{{HeaderText: "id", RowText: grid.Field("id"), Sortable: &locked}},
	})
	require.NoError(t, err)
	assert.ErrorContains(t, ApplySort(vm, "id"), "not sortable")
}

func TestSeekPage(t *testing.T) {
	vm := buildVM(t, 30, &GridOptions{PageSize: 5, PagerCount: 2})

	require.NoError(t, SeekPage(vm, 1))
	assert.Equal(t, 0, vm.CurrentPageIndex())
	assert.ErrorContains(t, SeekPage(vm, 0), "page 0 out of range (1-6)")
	assert.ErrorContains(t, SeekPage(vm, -3), "page -3 out of range (1-6)")
	assert.Equal(t, 0, vm.CurrentPageIndex())

	require.NoError(t, SeekPage(vm, 4))
	assert.Equal(t, 3, vm.CurrentPageIndex())
	assert.Equal(t, 3, vm.StartPage())
	assert.Equal(t, 4, vm.EndPage())

	assert.ErrorContains(t, SeekPage(vm, 7), "out of range (1-6)")

	empty := buildVM(t, 0, nil)
	assert.NoError(t, SeekPage(empty, 1))
	assert.ErrorContains(t, SeekPage(empty, 2), "out of range (1-1)")
}

func TestPrint(t *testing.T) {
	vm := buildVM(t, 12, &GridOptions{PageSize: 5, PagerCount: 2})
	p := &presenters.GridPresenter{VM: vm, Name: "users", Icons: config.IconTypeASCII}

	var buf bytes.Buffer
	require.NoError(t, Print(&buf, p, &GridOptions{OutputFormat: "csv"}))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "id,name,created_at", lines[0])
	assert.Equal(t, "1,user12,2024-01-01", lines[1])

	buf.Reset()
	require.NoError(t, Print(&buf, p, &GridOptions{OutputFormat: "table"}))
	assert.Contains(t, buf.String(), "< [1] 2 >")

	buf.Reset()
	require.NoError(t, OutputRenderer{Name: "users", Format: "json"}.Render(vm, &buf))
	assert.Contains(t, buf.String(), `"page":1`)
	assert.Contains(t, buf.String(), `"items":[{"id":1,"name":"user12","created_at":"2024-01-01"}`)
}

func TestOutputRendererSortGlyphs(t *testing.T) {
	vm := buildVM(t, 3, nil)
	require.NoError(t, ApplySort(vm, "id"))

	var buf bytes.Buffer
	require.NoError(t, OutputRenderer{Name: "users", Format: "csv", Icons: config.IconTypeASCII}.Render(vm, &buf))
	assert.True(t, strings.HasPrefix(buf.String(), "id,name,created_at\n"), buf.String())

	buf.Reset()
	require.NoError(t, OutputRenderer{Name: "users", Format: "table", Icons: config.IconTypeASCII}.Render(vm, &buf))
	assert.Contains(t, buf.String(), "^")
}

func TestBrowse(t *testing.T) {
	vm := buildVM(t, 12, &GridOptions{PageSize: 5, PagerCount: 5})
	r := grid.RendererFunc(func(vm *grid.ViewModel, w io.Writer) error {
		_, err := fmt.Fprintf(w, "[page %d cols %d]\n", vm.CurrentPageIndex()+1, len(vm.VisibleColumns()))
		return err
	})

	in := strings.NewReader("n\nn\nn\n\ng 1\ng 9\ns name\nh created\nbogus\nq\nn\n")
	var out bytes.Buffer
	require.NoError(t, Browse(vm, r, in, &out))

	got := out.String()
	assert.Equal(t, 6, strings.Count(got, "[page "))
	assert.Contains(t, got, "[page 3 cols 3]")
	assert.Contains(t, got, "[page 1 cols 2]")
	assert.Contains(t, got, `page "9" is not in the pager window (1-3)`)
	assert.Equal(t, 0, vm.CurrentPageIndex())
	assert.Equal(t, 2, strings.Count(got, browseHelp))
}

func TestBrowseStopsOnRenderError(t *testing.T) {
	vm := buildVM(t, 12, nil)
	calls := 0
	r := grid.RendererFunc(func(*grid.ViewModel, io.Writer) error {
		calls++
		if calls > 1 {
			return fmt.Errorf("render failed")
		}
		return nil
	})

	err := Browse(vm, r, strings.NewReader("n\nn\n"), io.Discard)
	assert.ErrorContains(t, err, "render failed")
	assert.Equal(t, 2, calls)
}
