// Package orderedmap provides a key-unique associative container that
// remembers insertion order.
package orderedmap

// Entry is a single key/value pair held by a Map.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// Map is an insertion-ordered map. The zero value is not usable; construct
// with New.
type Map[K comparable, V any] struct {
	entries []Entry[K, V]
	index   map[K]int
}

// New creates an empty Map.
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{index: make(map[K]int)}
}

// Set inserts k with value v at the end of the order. If k is already
// present the Map is left untouched and Set reports false; it never
// overwrites.
func (m *Map[K, V]) Set(k K, v V) bool {
	if _, dup := m.index[k]; dup {
		return false
	}
	m.index[k] = len(m.entries)
	m.entries = append(m.entries, Entry[K, V]{Key: k, Value: v})
	return true
}

// Get returns the value stored under k.
func (m *Map[K, V]) Get(k K) (V, bool) {
	if m == nil {
		var zero V
		return zero, false
	}
	i, ok := m.index[k]
	if !ok {
		var zero V
		return zero, false
	}
	return m.entries[i].Value, true
}

// Has reports whether k is present.
func (m *Map[K, V]) Has(k K) bool {
	if m == nil {
		return false
	}
	_, ok := m.index[k]
	return ok
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Keys returns the keys in insertion order.
func (m *Map[K, V]) Keys() []K {
	if m == nil {
		return nil
	}
	keys := make([]K, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.Key
	}
	return keys
}

// Entries returns a copy of the entries in insertion order.
func (m *Map[K, V]) Entries() []Entry[K, V] {
	if m == nil {
		return nil
	}
	out := make([]Entry[K, V], len(m.entries))
	copy(out, m.entries)
	return out
}

// Union combines ms into a single Map, keeping each input's insertion order
// and concatenating left to right. A key occurring in more than one input
// fails the whole union: Union returns (nil, false) and no partial result.
// Nil inputs count as empty.
func Union[K comparable, V any](ms ...*Map[K, V]) (*Map[K, V], bool) {
	out := New[K, V]()
	for _, m := range ms {
		if m == nil {
			continue
		}
		for _, e := range m.entries {
			if !out.Set(e.Key, e.Value) {
				return nil, false
			}
		}
	}
	return out, true
}
