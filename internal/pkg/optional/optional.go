// Package optional provides a field wrapper that distinguishes "not provided"
// from "provided with the zero value" in partial update requests.
package optional

import (
	"bytes"
	"encoding/json"
)

// Field holds a value together with whether it was explicitly set.
// In JSON, an absent key and a null value both leave the field unset.
type Field[T any] struct {
	Value T
	Set   bool
}

// Of returns a field explicitly set to v.
func Of[T any](v T) Field[T] {
	return Field[T]{Value: v, Set: true}
}

// Get returns the value and whether it was set.
func (f Field[T]) Get() (T, bool) {
	return f.Value, f.Set
}

// OrElse returns the value if set, otherwise fallback.
func (f Field[T]) OrElse(fallback T) T {
	if f.Set {
		return f.Value
	}
	return fallback
}

// Ptr returns a pointer to the value, or nil when unset.
func (f Field[T]) Ptr() *T {
	if !f.Set {
		return nil
	}
	v := f.Value
	return &v
}

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		f.Value = zero
		f.Set = false
		return nil
	}
	if err := json.Unmarshal(data, &f.Value); err != nil {
		return err
	}
	f.Set = true
	return nil
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}
