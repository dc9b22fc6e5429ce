package dataset

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ygelfand/kogrid/internal/cache"
	"github.com/ygelfand/kogrid/internal/grid"
)

func field(t *testing.T, r grid.Row, name string) any {
	t.Helper()
	v, ok := r.Get(name)
	require.True(t, ok, "missing field %q", name)
	return v
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{path: "people.json", want: FormatJSON},
		{path: "people.YAML", want: FormatYAML},
		{path: "dir/people.yml", want: FormatYAML},
		{path: "people.csv", want: FormatCSV},
		{path: "https://example.com/rows.json?token=x", want: FormatJSON},
		{path: "-", want: FormatYAML},
		{path: "people.txt", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		format  Format
		fields  []string
		rows    int
		wantErr bool
	}{
		{
			name:   "json list keeps key order",
			input:  `[{"zeta": 1, "alpha": "a"}, {"zeta": 2, "alpha": "b"}]`,
			format: FormatJSON,
			fields: []string{"zeta", "alpha"},
			rows:   2,
		},
		{
			name:   "json data envelope",
			input:  `{"total": 1, "data": [{"id": 1}]}`,
			format: FormatJSON,
			fields: []string{"id"},
			rows:   1,
		},
		{
			name:   "yaml rows envelope",
			input:  "rows:\n  - name: ada\n    age: 36\n",
			format: FormatYAML,
			fields: []string{"name", "age"},
			rows:   1,
		},
		{
			name:   "empty document",
			input:  "",
			format: FormatYAML,
			rows:   0,
		},
		{
			name:    "scalar list",
			input:   "[1, 2]",
			format:  FormatJSON,
			wantErr: true,
		},
		{
			name:    "mapping without rows",
			input:   `{"items": []}`,
			format:  FormatJSON,
			wantErr: true,
		},
		{
			name:   "csv header",
			input:  "name,age\nada,36\nalan,41\n",
			format: FormatCSV,
			fields: []string{"name", "age"},
			rows:   2,
		},
		{
			name:   "csv header only",
			input:  "name,age\n",
			format: FormatCSV,
			rows:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := Decode(strings.NewReader(tt.input), tt.format)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, rows)
			require.Len(t, rows, tt.rows)
			if tt.rows > 0 {
				assert.Equal(t, tt.fields, rows[0].Fields())
			}
		})
	}
}

func TestDecodeTypes(t *testing.T) {
	rows, err := Decode(strings.NewReader(`[{"n": 3, "f": 1.5, "s": "x", "b": true, "z": null}]`), FormatJSON)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 3, field(t, rows[0], "n"))
	assert.Equal(t, 1.5, field(t, rows[0], "f"))
	assert.Equal(t, "x", field(t, rows[0], "s"))
	assert.Equal(t, true, field(t, rows[0], "b"))
	assert.Nil(t, field(t, rows[0], "z"))
}

func TestInferCell(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{in: "", want: nil},
		{in: "42", want: 42},
		{in: "-7", want: -7},
		{in: "2.5", want: 2.5},
		{in: "TRUE", want: true},
		{in: "false", want: false},
		{in: "t", want: "t"},
		{in: "hello", want: "hello"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, inferCell(tt.in), "cell %q", tt.in)
	}
}

func TestLoadFileAndStdin(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "people.csv")
	require.NoError(t, os.WriteFile(path, []byte("name,age\nada,36\n"), 0o644))

	l := &Loader{Stdin: strings.NewReader(`[{"name": "alan"}]`)}

	rows, err := l.Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 36, field(t, rows[0], "age"))

	rows, err = l.Load(context.Background(), "-")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "alan", field(t, rows[0], "name"))

	_, err = l.Load(context.Background(), filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestLoadURLIsCached(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path == "/missing.json" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`[{"id": 1}, {"id": 2}]`))
	}))
	t.Cleanup(srv.Close)

	m, err := cache.New(t.TempDir())
	require.NoError(t, err)
	l := &Loader{Cache: m, TTL: time.Minute, Client: srv.Client()}

	for range 2 {
		rows, err := l.Load(context.Background(), srv.URL+"/rows.json")
		require.NoError(t, err)
		assert.Len(t, rows, 2)
	}
	assert.Equal(t, int32(1), hits.Load())

	_, err = l.Load(context.Background(), srv.URL+"/missing.json")
	assert.ErrorContains(t, err, "404")
}

func TestLoadAllKeepsArgumentOrder(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.json")
	b := filepath.Join(dir, "b.yaml")
	require.NoError(t, os.WriteFile(a, []byte(`[{"id": 1}, {"id": 2}]`), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("- id: 3\n"), 0o644))

	l := &Loader{}
	rows, err := l.LoadAll(context.Background(), []string{b, a})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, 3, field(t, rows[0], "id"))
	assert.Equal(t, 1, field(t, rows[1], "id"))

	_, err = l.LoadAll(context.Background(), []string{a, filepath.Join(dir, "nope.csv")})
	assert.Error(t, err)

	rows, err = l.LoadAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
