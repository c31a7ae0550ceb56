package evaluator

import (
	"strings"

	"github.com/funvibe/refina/internal/typesystem"
)

// keyID is the comparable identity of a key binder. Primitive-kind keys
// compare by value; everything else compares by binder identity.
type keyID struct {
	kind typesystem.Kind
	i    int64
	f    float64
	s    string
	b    bool
	ref  *Binder
}

func keyOf(k *Binder) keyID {
	switch v := k.Value.(type) {
	case *Integer:
		return keyID{kind: typesystem.INT_KIND, i: v.Value}
	case *Float:
		return keyID{kind: typesystem.FLOAT_KIND, f: v.Value}
	case *String:
		return keyID{kind: typesystem.STRING_KIND, s: v.Value}
	case *Boolean:
		return keyID{kind: typesystem.BOOLEAN_KIND, b: v.Value}
	default:
		return keyID{ref: k}
	}
}

type mapEntry struct {
	key   *Binder
	value *Binder
}

// MapValue is an insertion-ordered keyed store.
type MapValue struct {
	entries []mapEntry
	index   map[keyID]int
}

func NewMap() *MapValue {
	return &MapValue{index: make(map[keyID]int)}
}

func (m *MapValue) Kind() typesystem.Kind { return typesystem.MAP_KIND }
func (m *MapValue) Inspect() string {
	parts := make([]string, len(m.entries))
	for i, e := range m.entries {
		parts[i] = inspectQuoted(e.key) + ": " + inspectQuoted(e.value)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (m *MapValue) Size() int { return len(m.entries) }

// Get returns the value for k, or nil when absent.
func (m *MapValue) Get(k *Binder) *Binder {
	if idx, ok := m.index[keyOf(k)]; ok {
		return m.entries[idx].value
	}
	return nil
}

func (m *MapValue) Has(k *Binder) bool {
	_, ok := m.index[keyOf(k)]
	return ok
}

// Set inserts or overwrites; insertion order is kept on overwrite.
func (m *MapValue) Set(k, v *Binder) {
	id := keyOf(k)
	if idx, ok := m.index[id]; ok {
		m.entries[idx].value = v
		return
	}
	m.index[id] = len(m.entries)
	m.entries = append(m.entries, mapEntry{key: k, value: v})
}

// Delete removes k; it reports whether the key was present.
func (m *MapValue) Delete(k *Binder) bool {
	id := keyOf(k)
	idx, ok := m.index[id]
	if !ok {
		return false
	}
	m.entries = append(m.entries[:idx], m.entries[idx+1:]...)
	delete(m.index, id)
	for i := idx; i < len(m.entries); i++ {
		m.index[keyOf(m.entries[i].key)] = i
	}
	return true
}

// Keys returns the keys in insertion order.
func (m *MapValue) Keys() []*Binder {
	keys := make([]*Binder, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.key
	}
	return keys
}

// Values returns the values in insertion order.
func (m *MapValue) Values() []*Binder {
	vals := make([]*Binder, len(m.entries))
	for i, e := range m.entries {
		vals[i] = e.value
	}
	return vals
}

// Entries returns (key, value) pairs in insertion order.
func (m *MapValue) Entries() [][2]*Binder {
	out := make([][2]*Binder, len(m.entries))
	for i, e := range m.entries {
		out[i] = [2]*Binder{e.key, e.value}
	}
	return out
}

// SetValue is an insertion-ordered set with the map's key identity rules.
type SetValue struct {
	elements []*Binder
	index    map[keyID]int
}

func NewSet() *SetValue {
	return &SetValue{index: make(map[keyID]int)}
}

func (s *SetValue) Kind() typesystem.Kind { return typesystem.SET_KIND }
func (s *SetValue) Inspect() string {
	parts := make([]string, len(s.elements))
	for i, el := range s.elements {
		parts[i] = inspectQuoted(el)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (s *SetValue) Size() int { return len(s.elements) }

func (s *SetValue) Has(v *Binder) bool {
	_, ok := s.index[keyOf(v)]
	return ok
}

// Add inserts v; duplicates by key identity are ignored.
func (s *SetValue) Add(v *Binder) {
	id := keyOf(v)
	if _, ok := s.index[id]; ok {
		return
	}
	s.index[id] = len(s.elements)
	s.elements = append(s.elements, v)
}

// Delete removes v; it reports whether the element was present.
func (s *SetValue) Delete(v *Binder) bool {
	id := keyOf(v)
	idx, ok := s.index[id]
	if !ok {
		return false
	}
	s.elements = append(s.elements[:idx], s.elements[idx+1:]...)
	delete(s.index, id)
	for i := idx; i < len(s.elements); i++ {
		s.index[keyOf(s.elements[i])] = i
	}
	return true
}

// ToArray returns the elements in insertion order.
func (s *SetValue) ToArray() []*Binder {
	out := make([]*Binder, len(s.elements))
	copy(out, s.elements)
	return out
}
