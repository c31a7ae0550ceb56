package evaluator

import (
	"testing"
)

func TestArrayPushPopRoundTrip(t *testing.T) {
	arr := NewArray(nil)
	el := intBinder(42)
	arr.Push(el)
	popped, ok := arr.Pop()
	if !ok {
		t.Fatal("pop after push must succeed")
	}
	if popped != el {
		t.Error("pop must return the same binder that was pushed")
	}
	if arr.Len() != 0 {
		t.Errorf("push/pop sequence must return to empty, got len %d", arr.Len())
	}
	if _, ok := arr.Pop(); ok {
		t.Error("pop from empty array must fail")
	}
}

func TestArrayBounds(t *testing.T) {
	arr := NewArray([]*Binder{intBinder(1), intBinder(2)})
	if arr.Get(5) != nil {
		t.Error("reading past the end must yield nil")
	}
	if arr.Get(-1) != nil {
		t.Error("negative read must yield nil")
	}
	if arr.Set(2, intBinder(9)) {
		t.Error("writing past the end must fail")
	}
	if !arr.Set(1, intBinder(9)) {
		t.Error("in-bounds write must succeed")
	}
}

func TestMapPrimitiveKeyEquality(t *testing.T) {
	m := NewMap()
	m.Set(intBinder(1), stringBinder("one"))

	// A different binder with the same primitive value hits the same slot.
	if !m.Has(intBinder(1)) {
		t.Error("primitive keys compare by value")
	}
	m.Set(intBinder(1), stringBinder("uno"))
	if m.Size() != 1 {
		t.Errorf("overwrite must keep size 1, got %d", m.Size())
	}
	if got := m.Get(intBinder(1)); got == nil || got.Value.(*String).Value != "uno" {
		t.Error("overwrite must replace the value")
	}
}

func TestMapIdentityKeysForComplexBinders(t *testing.T) {
	m := NewMap()
	a1 := NewBinder(NewArray(nil), nil)
	a2 := NewBinder(NewArray(nil), nil)
	m.Set(a1, intBinder(1))

	if m.Has(a2) {
		t.Error("distinct complex binders must not collide")
	}
	if !m.Has(a1) {
		t.Error("the same complex binder must be found by identity")
	}
}

func TestMapInsertionOrder(t *testing.T) {
	m := NewMap()
	m.Set(intBinder(3), stringBinder("c"))
	m.Set(intBinder(1), stringBinder("a"))
	m.Set(intBinder(2), stringBinder("b"))
	m.Delete(intBinder(1))
	m.Set(intBinder(1), stringBinder("a2"))

	keys := m.Keys()
	expected := []int64{3, 2, 1}
	if len(keys) != len(expected) {
		t.Fatalf("expected %d keys, got %d", len(expected), len(keys))
	}
	for i, want := range expected {
		got, _ := intValue(keys[i])
		if got != want {
			t.Errorf("keys[%d]: expected %d, got %d", i, want, got)
		}
	}
}

func TestMapMissingKeyYieldsNil(t *testing.T) {
	m := NewMap()
	if m.Get(intBinder(404)) != nil {
		t.Error("missing key must yield nil (void at the language level)")
	}
	if m.Delete(intBinder(404)) {
		t.Error("deleting a missing key reports false")
	}
}

func TestSetSemantics(t *testing.T) {
	s := NewSet()
	s.Add(intBinder(1))
	s.Add(intBinder(1))
	s.Add(intBinder(2))
	if s.Size() != 2 {
		t.Errorf("duplicates must be ignored, got size %d", s.Size())
	}
	if !s.Has(intBinder(1)) {
		t.Error("value-equal element must be found")
	}
	if !s.Delete(intBinder(1)) {
		t.Error("delete of a present element reports true")
	}
	if s.Has(intBinder(1)) {
		t.Error("deleted element must be gone")
	}

	arr := s.ToArray()
	if len(arr) != 1 {
		t.Fatalf("expected 1 element, got %d", len(arr))
	}
	if v, _ := intValue(arr[0]); v != 2 {
		t.Errorf("expected 2, got %d", v)
	}
}

func TestRecordAccess(t *testing.T) {
	r := &Record{Fields: []recordField{
		{Key: stringBinder("x"), Value: intBinder(1)},
		{Key: stringBinder("y"), Value: intBinder(2)},
	}}
	if got := r.Get("y"); got == nil {
		t.Fatal("present field must be found")
	}
	if r.Get("z") != nil {
		t.Error("absent field must yield nil")
	}
	if !r.Set("x", intBinder(9)) {
		t.Error("present field must be settable")
	}
	if r.Set("z", intBinder(9)) {
		t.Error("absent field must not be settable")
	}
}
