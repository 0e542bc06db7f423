package ledger

import (
	"encoding/json"
	"fmt"
)

// Context is ordered structured provenance attached to a change record.
// It serializes as an explicit key/value list so ordering survives transport.
type Context []Field

// Field is one provenance entry. Exactly one of Value or Group is meaningful;
// Group holds a nested keyed structure (e.g. witness breakdown).
type Field struct {
	Key   string
	Value string
	Group Context
}

// KV builds a plain key/value field.
func KV(key, value string) Field {
	return Field{Key: key, Value: value}
}

// Nested builds a field holding a nested group of fields.
func Nested(key string, fields ...Field) Field {
	return Field{Key: key, Group: Context(fields)}
}

// Clone returns a deep copy so callers can never mutate accepted provenance.
func (c Context) Clone() Context {
	if c == nil {
		return nil
	}
	out := make(Context, len(c))
	for i, f := range c {
		out[i] = Field{Key: f.Key, Value: f.Value, Group: f.Group.Clone()}
	}
	return out
}

// Get returns the value for key, or "" when absent.
func (c Context) Get(key string) string {
	for _, f := range c {
		if f.Key == key {
			return f.Value
		}
	}
	return ""
}

type fieldDoc struct {
	Key   string   `json:"key"`
	Value *string  `json:"value,omitempty"`
	Group *Context `json:"group,omitempty"`
}

// MarshalJSON encodes the field as {"key":..,"value":..} or {"key":..,"group":[..]}.
func (f Field) MarshalJSON() ([]byte, error) {
	doc := fieldDoc{Key: f.Key}
	if f.Group != nil {
		group := f.Group
		doc.Group = &group
	} else {
		value := f.Value
		doc.Value = &value
	}
	return json.Marshal(doc)
}

// UnmarshalJSON reconstructs a field from its explicit key/value form.
func (f *Field) UnmarshalJSON(data []byte) error {
	var doc fieldDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode context field: %w", err)
	}
	f.Key = doc.Key
	f.Value = ""
	f.Group = nil
	if doc.Group != nil {
		f.Group = *doc.Group
	} else if doc.Value != nil {
		f.Value = *doc.Value
	}
	return nil
}
