package grid

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Row is a schemaless record. Field order is insertion order, which is the
// order scaffolding derives columns in.
type Row struct {
	names  []string
	values map[string]any
}

// RowOf builds a row from alternating name/value pairs.
// A trailing name without a value is stored as nil.
func RowOf(pairs ...any) Row {
	var r Row
	for i := 0; i < len(pairs); i += 2 {
		name := fmt.Sprint(pairs[i])
		var v any
		if i+1 < len(pairs) {
			v = pairs[i+1]
		}
		r.Set(name, v)
	}
	return r
}

// Set stores a field value, appending the name if it is new.
func (r *Row) Set(name string, v any) {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	if _, ok := r.values[name]; !ok {
		r.names = append(r.names, name)
	}
	r.values[name] = v
}

// Get returns the value of a field and whether it exists.
func (r Row) Get(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Fields returns the field names in order.
func (r Row) Fields() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

func (r Row) Len() int {
	return len(r.names)
}

// Map returns the fields as a plain map, for templates and other consumers
// that do not care about order.
func (r Row) Map() map[string]any {
	out := make(map[string]any, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// MarshalJSON encodes the row as an object with fields in order.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range r.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(r.values[name])
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes the row as a mapping node with fields in order.
func (r Row) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, name := range r.names {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name}
		val := &yaml.Node{}
		if err := val.Encode(r.values[name]); err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		node.Content = append(node.Content, key, val)
	}
	return node, nil
}
