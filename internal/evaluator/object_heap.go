package evaluator

import (
	"fmt"
	"strings"

	"github.com/funvibe/refina/internal/typesystem"
)

// comparePrimitive orders two primitive binders. Numerics compare
// numerically with int/float promotion, strings lexicographically. Anything
// else is not ordered.
func comparePrimitive(a, b *Binder) (int, error) {
	if isNumericValue(a) && isNumericValue(b) {
		av, bv := numericOf(a), numericOf(b)
		switch {
		case av < bv:
			return -1, nil
		case av > bv:
			return 1, nil
		default:
			return 0, nil
		}
	}
	as, aok := a.Value.(*String)
	bs, bok := b.Value.(*String)
	if aok && bok {
		return strings.Compare(as.Value, bs.Value), nil
	}
	return 0, fmt.Errorf("values of kinds %s and %s are not ordered", a.ActualKind(), b.ActualKind())
}

// isNumericValue reports whether the binder actually boxes a number.
func isNumericValue(b *Binder) bool {
	switch b.Value.(type) {
	case *Integer, *Float:
		return true
	}
	return false
}

func isNumericKind(k typesystem.Kind) bool {
	return k == typesystem.INT_KIND || k == typesystem.FLOAT_KIND
}

func numericOf(b *Binder) float64 {
	switch v := b.Value.(type) {
	case *Integer:
		return float64(v.Value)
	case *Float:
		return v.Value
	}
	return 0
}

// Heap is a binary heap over primitive elements. Min-heaps order by <,
// max-heaps by >. Ties keep no particular order.
type Heap struct {
	items []*Binder
	max   bool
}

func NewHeap(max bool) *Heap {
	return &Heap{max: max}
}

func (h *Heap) Kind() typesystem.Kind { return typesystem.HEAP_KIND }
func (h *Heap) Inspect() string {
	name := "MinHeap"
	if h.max {
		name = "MaxHeap"
	}
	return fmt.Sprintf("%s(size=%d)", name, len(h.items))
}

func (h *Heap) Size() int     { return len(h.items) }
func (h *Heap) IsEmpty() bool { return len(h.items) == 0 }

func (h *Heap) before(a, b *Binder) (bool, error) {
	cmp, err := comparePrimitive(a, b)
	if err != nil {
		return false, err
	}
	if h.max {
		return cmp > 0, nil
	}
	return cmp < 0, nil
}

func (h *Heap) Push(v *Binder) error {
	h.items = append(h.items, v)
	return h.siftUp(len(h.items) - 1)
}

// Pop removes the root; it fails when the heap is empty.
func (h *Heap) Pop() (*Binder, error) {
	if len(h.items) == 0 {
		return nil, fmt.Errorf("pop from empty heap")
	}
	root := h.items[0]
	last := len(h.items) - 1
	h.items[0] = h.items[last]
	h.items = h.items[:last]
	if len(h.items) > 0 {
		if err := h.siftDown(0); err != nil {
			return nil, err
		}
	}
	return root, nil
}

// Peek returns the root without removing it, or nil when empty.
func (h *Heap) Peek() *Binder {
	if len(h.items) == 0 {
		return nil
	}
	return h.items[0]
}

func (h *Heap) siftUp(i int) error {
	for i > 0 {
		parent := (i - 1) / 2
		first, err := h.before(h.items[i], h.items[parent])
		if err != nil {
			return err
		}
		if !first {
			return nil
		}
		h.items[i], h.items[parent] = h.items[parent], h.items[i]
		i = parent
	}
	return nil
}

func (h *Heap) siftDown(i int) error {
	n := len(h.items)
	for {
		left, right := 2*i+1, 2*i+2
		best := i
		if left < n {
			first, err := h.before(h.items[left], h.items[best])
			if err != nil {
				return err
			}
			if first {
				best = left
			}
		}
		if right < n {
			first, err := h.before(h.items[right], h.items[best])
			if err != nil {
				return err
			}
			if first {
				best = right
			}
		}
		if best == i {
			return nil
		}
		h.items[i], h.items[best] = h.items[best], h.items[i]
		i = best
	}
}

type heapMapEntry struct {
	key      *Binder
	id       keyID
	priority *Binder
}

// HeapMap is a binary heap of (key, priority) pairs ordered by priority
// only. Key identity follows the map rules.
type HeapMap struct {
	entries []*heapMapEntry
	index   map[keyID]int
	max     bool
}

func NewHeapMap(max bool) *HeapMap {
	return &HeapMap{index: make(map[keyID]int), max: max}
}

func (h *HeapMap) Kind() typesystem.Kind { return typesystem.HEAPMAP_KIND }
func (h *HeapMap) Inspect() string {
	name := "MinHeapMap"
	if h.max {
		name = "MaxHeapMap"
	}
	return fmt.Sprintf("%s(size=%d)", name, len(h.entries))
}

func (h *HeapMap) Size() int     { return len(h.entries) }
func (h *HeapMap) IsEmpty() bool { return len(h.entries) == 0 }

func (h *HeapMap) before(a, b *heapMapEntry) (bool, error) {
	cmp, err := comparePrimitive(a.priority, b.priority)
	if err != nil {
		return false, err
	}
	if h.max {
		return cmp > 0, nil
	}
	return cmp < 0, nil
}

func (h *HeapMap) Has(k *Binder) bool {
	_, ok := h.index[keyOf(k)]
	return ok
}

// GetPriority returns the priority bound to k, or nil when absent.
func (h *HeapMap) GetPriority(k *Binder) *Binder {
	if idx, ok := h.index[keyOf(k)]; ok {
		return h.entries[idx].priority
	}
	return nil
}

// Push inserts or overwrites the priority for k.
func (h *HeapMap) Push(k, priority *Binder) error {
	id := keyOf(k)
	if idx, ok := h.index[id]; ok {
		return h.reprioritize(idx, priority)
	}
	h.entries = append(h.entries, &heapMapEntry{key: k, id: id, priority: priority})
	h.index[id] = len(h.entries) - 1
	return h.siftUp(len(h.entries) - 1)
}

// Pop removes and returns the root (key, priority); it fails when empty.
func (h *HeapMap) Pop() (*Binder, *Binder, error) {
	if len(h.entries) == 0 {
		return nil, nil, fmt.Errorf("pop from empty heapmap")
	}
	root := h.entries[0]
	h.removeAt(0)
	return root.key, root.priority, nil
}

// Peek returns the root entry without removing it.
func (h *HeapMap) Peek() (*Binder, *Binder, bool) {
	if len(h.entries) == 0 {
		return nil, nil, false
	}
	return h.entries[0].key, h.entries[0].priority, true
}

// UpdatePriority rebinds k's priority and re-heapifies in the direction of
// the change. It fails when k is missing.
func (h *HeapMap) UpdatePriority(k, priority *Binder) error {
	idx, ok := h.index[keyOf(k)]
	if !ok {
		return fmt.Errorf("key %s not found in heapmap", k.Inspect())
	}
	return h.reprioritize(idx, priority)
}

func (h *HeapMap) reprioritize(idx int, priority *Binder) error {
	old := h.entries[idx].priority
	h.entries[idx].priority = priority
	cmp, err := comparePrimitive(priority, old)
	if err != nil {
		return err
	}
	up := cmp < 0
	if h.max {
		up = cmp > 0
	}
	if up {
		return h.siftUp(idx)
	}
	return h.siftDown(idx)
}

// Delete removes k; it reports whether the key was present.
func (h *HeapMap) Delete(k *Binder) (bool, error) {
	idx, ok := h.index[keyOf(k)]
	if !ok {
		return false, nil
	}
	h.removeAt(idx)
	return true, nil
}

// Entries returns (key, priority) pairs in heap-array order.
func (h *HeapMap) Entries() [][2]*Binder {
	out := make([][2]*Binder, len(h.entries))
	for i, e := range h.entries {
		out[i] = [2]*Binder{e.key, e.priority}
	}
	return out
}

// Clear drops every entry.
func (h *HeapMap) Clear() {
	h.entries = nil
	h.index = make(map[keyID]int)
}

func (h *HeapMap) removeAt(idx int) {
	last := len(h.entries) - 1
	delete(h.index, h.entries[idx].id)
	if idx != last {
		h.entries[idx] = h.entries[last]
		h.index[h.entries[idx].id] = idx
	}
	h.entries = h.entries[:last]
	if idx < len(h.entries) {
		// Displaced entry may violate either direction.
		if err := h.siftDown(idx); err == nil {
			_ = h.siftUp(idx)
		}
	}
}

func (h *HeapMap) siftUp(i int) error {
	for i > 0 {
		parent := (i - 1) / 2
		first, err := h.before(h.entries[i], h.entries[parent])
		if err != nil {
			return err
		}
		if !first {
			return nil
		}
		h.swap(i, parent)
		i = parent
	}
	return nil
}

func (h *HeapMap) siftDown(i int) error {
	n := len(h.entries)
	for {
		left, right := 2*i+1, 2*i+2
		best := i
		if left < n {
			first, err := h.before(h.entries[left], h.entries[best])
			if err != nil {
				return err
			}
			if first {
				best = left
			}
		}
		if right < n {
			first, err := h.before(h.entries[right], h.entries[best])
			if err != nil {
				return err
			}
			if first {
				best = right
			}
		}
		if best == i {
			return nil
		}
		h.swap(i, best)
		i = best
	}
}

func (h *HeapMap) swap(i, j int) {
	h.entries[i], h.entries[j] = h.entries[j], h.entries[i]
	h.index[h.entries[i].id] = i
	h.index[h.entries[j].id] = j
}
