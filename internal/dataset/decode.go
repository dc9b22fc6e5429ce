package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ygelfand/kogrid/internal/grid"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
)

var ErrShape = errors.New("expected a list of records or a mapping with a data or rows list")

// FormatFromPath picks the decoder for a file name or URL path. Stdin ("-")
// is read as YAML, which also accepts JSON.
func FormatFromPath(path string) (Format, error) {
	if path == "-" {
		return FormatYAML, nil
	}
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".csv":
		return FormatCSV, nil
	}
	return "", fmt.Errorf("unknown data format for %q", path)
}

// Decode reads rows in the given format. Field order follows the source.
func Decode(r io.Reader, format Format) ([]grid.Row, error) {
	switch format {
	case FormatJSON, FormatYAML:
		return decodeDocument(r)
	case FormatCSV:
		return decodeCSV(r)
	}
	return nil, fmt.Errorf("unsupported format %q", format)
}

func decodeDocument(r io.Reader) ([]grid.Row, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return []grid.Row{}, nil
		}
		return nil, fmt.Errorf("decode: %w", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind == yaml.MappingNode {
		list := lookup(root, "data")
		if list == nil {
			list = lookup(root, "rows")
		}
		if list == nil {
			return nil, ErrShape
		}
		root = list
	}
	if root.Kind != yaml.SequenceNode {
		return nil, ErrShape
	}

	rows := make([]grid.Row, 0, len(root.Content))
	for i, item := range root.Content {
		if item.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("record %d: %w", i, ErrShape)
		}
		var row grid.Row
		for j := 0; j+1 < len(item.Content); j += 2 {
			var v any
			if err := item.Content[j+1].Decode(&v); err != nil {
				return nil, fmt.Errorf("record %d field %q: %w", i, item.Content[j].Value, err)
			}
			row.Set(item.Content[j].Value, v)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func lookup(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

func decodeCSV(r io.Reader) ([]grid.Row, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return []grid.Row{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	var rows []grid.Row
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		var row grid.Row
		for i, name := range header {
			var v any
			if i < len(record) {
				v = inferCell(record[i])
			}
			row.Set(name, v)
		}
		rows = append(rows, row)
	}
	if rows == nil {
		rows = []grid.Row{}
	}
	return rows, nil
}

// inferCell types a CSV cell as int, float or bool, falling back to the raw
// text. Empty cells are nil.
func inferCell(s string) any {
	if s == "" {
		return nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return int(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}
	return s
}
