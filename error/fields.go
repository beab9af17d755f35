package error

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"

	"go.uber.org/zap/zapcore"
)

// Field is a single path/message entry of a field-error map.
type Field struct {
	Path    string
	Message string
}

// Fields is an immutable, insertion-ordered map from a field path (a field
// name or dotted path) to a message describing the problem at that path.
//
// The zero value is an empty map. Re-inserting an existing path replaces its
// message but keeps its original position.
type Fields struct {
	entries []Field
	index   map[string]int
}

// NewFields builds a Fields from entries in order.
func NewFields(fields ...Field) Fields {
	var f Fields
	for _, fe := range fields {
		f.set(fe.Path, fe.Message)
	}
	return f
}

// Len returns the number of entries.
func (f Fields) Len() int { return len(f.entries) }

// Get returns the message recorded for path.
func (f Fields) Get(path string) (string, bool) {
	i, ok := f.index[path]
	if !ok {
		return "", false
	}
	return f.entries[i].Message, true
}

// Keys returns the paths in insertion order.
func (f Fields) Keys() []string {
	if len(f.entries) == 0 {
		return nil
	}
	keys := make([]string, len(f.entries))
	for i, fe := range f.entries {
		keys[i] = fe.Path
	}
	return keys
}

// Entries returns a copy of the entries in insertion order.
func (f Fields) Entries() []Field {
	if len(f.entries) == 0 {
		return nil
	}
	return append([]Field(nil), f.entries...)
}

// All yields path/message pairs in insertion order.
func (f Fields) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, fe := range f.entries {
			if !yield(fe.Path, fe.Message) {
				return
			}
		}
	}
}

// With returns a copy of f with path set to message.
func (f Fields) With(path, message string) Fields {
	out := f.clone()
	out.set(path, message)
	return out
}

// MapKeys returns a copy of f with every path rewritten by mapper. When two
// paths map to the same result, the later message wins at the earlier
// position.
func (f Fields) MapKeys(mapper func(string) string) Fields {
	var out Fields
	for _, fe := range f.entries {
		out.set(mapper(fe.Path), fe.Message)
	}
	return out
}

// MapValues returns a copy of f with every message rewritten by mapper.
func (f Fields) MapValues(mapper func(string) string) Fields {
	var out Fields
	for _, fe := range f.entries {
		out.set(fe.Path, mapper(fe.Message))
	}
	return out
}

func (f Fields) clone() Fields {
	out := Fields{
		entries: make([]Field, len(f.entries), len(f.entries)+1),
		index:   make(map[string]int, len(f.entries)+1),
	}
	copy(out.entries, f.entries)
	for k, v := range f.index {
		out.index[k] = v
	}
	return out
}

// set must only be called on a Fields nobody else holds yet.
func (f *Fields) set(path, message string) {
	if i, ok := f.index[path]; ok {
		f.entries[i].Message = message
		return
	}
	if f.index == nil {
		f.index = map[string]int{}
	}
	f.index[path] = len(f.entries)
	f.entries = append(f.entries, Field{Path: path, Message: message})
}

// MarshalJSON encodes f as a JSON object in insertion order.
func (f Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, fe := range f.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(fe.Path)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(fe.Message)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object of strings, keeping document order.
// null decodes to an empty map. A value that is not a JSON string is an
// error; it is never stringified.
func (f *Fields) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*f = Fields{}
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("field errors: expected object, got %v", tok)
	}

	var out Fields
	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("field errors: unexpected key %v", tok)
		}
		tok, err = dec.Token()
		if err != nil {
			return err
		}
		val, ok := tok.(string)
		if !ok {
			return fmt.Errorf("field errors: value for %q is not a string", key)
		}
		out.set(key, val)
	}
	if _, err = dec.Token(); err != nil {
		return err
	}

	*f = out
	return nil
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (f Fields) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	for _, fe := range f.entries {
		enc.AddString(fe.Path, fe.Message)
	}
	return nil
}
