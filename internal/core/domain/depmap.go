package domain

import (
	"iter"
	"slices"
)

// DependencyMap is an insertion-ordered map from package name to specifier.
// A nil map is valid, empty and read-only.
type DependencyMap struct {
	keys   []string
	values map[string]string
}

// NewDependencyMap creates an empty DependencyMap.
func NewDependencyMap() *DependencyMap {
	return &DependencyMap{values: make(map[string]string)}
}

// Set stores value under name. Existing keys keep their position.
func (m *DependencyMap) Set(name, value string) {
	if _, ok := m.values[name]; !ok {
		m.keys = append(m.keys, name)
	}
	m.values[name] = value
}

// Get returns the value stored under name.
func (m *DependencyMap) Get(name string) (string, bool) {
	if m == nil {
		return "", false
	}
	v, ok := m.values[name]
	return v, ok
}

// Len returns the number of entries.
func (m *DependencyMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns a copy of the keys in insertion order.
func (m *DependencyMap) Keys() []string {
	if m == nil {
		return nil
	}
	return slices.Clone(m.keys)
}

// All yields entries in insertion order.
func (m *DependencyMap) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if m == nil {
			return
		}
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// Clone returns an independent copy. Cloning nil returns nil.
func (m *DependencyMap) Clone() *DependencyMap {
	if m == nil {
		return nil
	}
	out := &DependencyMap{
		keys:   slices.Clone(m.keys),
		values: make(map[string]string, len(m.values)),
	}
	for k, v := range m.values {
		out.values[k] = v
	}
	return out
}

// Equal reports whether both maps hold the same entries in the same order.
func (m *DependencyMap) Equal(other *DependencyMap) bool {
	if m.Len() != other.Len() {
		return false
	}
	if m.Len() == 0 {
		return true
	}
	if !slices.Equal(m.keys, other.keys) {
		return false
	}
	for k, v := range m.values {
		if other.values[k] != v {
			return false
		}
	}
	return true
}
