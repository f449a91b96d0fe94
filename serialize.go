package moderr

import (
	"bytes"
	"cmp"
	"encoding/json"
	"iter"
	"log/slog"
	"maps"
	"slices"
)

type (
	// Field is a single key-value pair of a serialized error.
	Field struct {
		Key   string
		Value any
	}

	// Fields is the serializable representation of an error: a plain list of
	// key-value pairs sorted by key.
	Fields []Field
)

var (
	_ json.Marshaler = Fields(nil)
	_ slog.LogValuer = Fields(nil)
)

// Serialize returns the serializable representation of the error: every
// property in the bag plus the keys listed in the type's SerializeKeys,
// sorted by key. A stack trace is rendered to its string form.
//
// The serialize keys are read from the type on every call, so changing them
// affects errors created before the change.
func (e *Error) Serialize() Fields {
	result := e.props.Clone()
	for _, key := range e.typ.SerializeKeys() {
		v, ok := e.Get(key)
		if !ok {
			continue
		}
		if s, ok := v.(Stack); ok {
			v = s.String()
		}
		result[key] = v
	}
	return sortedFields(result)
}

func sortedFields(m map[string]any) Fields {
	fields := make(Fields, 0, len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		fields = append(fields, Field{Key: k, Value: m[k]})
	}
	return fields
}

// Get returns the value stored under key.
func (f Fields) Get(key string) (any, bool) {
	i, ok := slices.BinarySearchFunc(f, key, func(field Field, key string) int {
		return cmp.Compare(field.Key, key)
	})
	if !ok {
		return nil, false
	}
	return f[i].Value, true
}

// Keys returns the keys in order.
func (f Fields) Keys() []string {
	keys := make([]string, len(f))
	for i, field := range f {
		keys[i] = field.Key
	}
	return keys
}

// All returns an iterator over all key-value pairs in key order.
func (f Fields) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, field := range f {
			if !yield(field.Key, field.Value) {
				return
			}
		}
	}
}

// Map returns the fields as a map.
func (f Fields) Map() map[string]any {
	m := make(map[string]any, len(f))
	for _, field := range f {
		m[field.Key] = field.Value
	}
	return m
}

// MarshalJSON encodes the fields as a JSON object, keeping their order.
func (f Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, field := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(field.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(field.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (f Fields) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(f))
	for _, field := range f {
		attrs = append(attrs, slog.Any(field.Key, field.Value))
	}
	return slog.GroupValue(attrs...)
}
