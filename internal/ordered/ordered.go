// Package ordered provides a small insertion-ordered map used wherever the
// pipeline depends on deterministic iteration: collected fields, seen slugs,
// diagnostic accumulation. The order contract is explicit rather than an
// artifact of language iteration semantics: keys iterate in first-insertion
// order, and overwriting a key keeps its original position.
package ordered

// Map is an insertion-ordered association from K to V.
type Map[K comparable, V any] struct {
	keys   []K
	values map[K]V
}

// New returns an empty ordered map.
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{values: map[K]V{}}
}

// Set stores value under key. A key keeps its first-insertion position when
// overwritten.
func (m *Map[K, V]) Set(key K, value V) {
	if m.values == nil {
		m.values = map[K]V{}
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored under key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	if m == nil {
		var zero V
		return zero, false
	}
	value, ok := m.values[key]
	return value, ok
}

// Has reports whether key is present.
func (m *Map[K, V]) Has(key K) bool {
	_, ok := m.Get(key)
	return ok
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order. The slice is a copy.
func (m *Map[K, V]) Keys() []K {
	if m == nil {
		return nil
	}
	return append([]K(nil), m.keys...)
}

// Range calls fn for every entry in insertion order until fn returns false.
func (m *Map[K, V]) Range(fn func(key K, value V) bool) {
	if m == nil {
		return
	}
	for _, key := range m.keys {
		if !fn(key, m.values[key]) {
			return
		}
	}
}
