package evaluator

import (
	"strings"

	"github.com/funvibe/refina/internal/typesystem"
)

// Array is a dense ordered sequence. Arrays are reference values: passing
// one to a function aliases it, mutation is visible to every holder.
type Array struct {
	Elements []*Binder
	// ElemType is the declared element type; weak for empty literals.
	ElemType typesystem.Type
}

// NewArray builds an array value over elements. The element type is the
// first element's static type, or weak when empty.
func NewArray(elements []*Binder) *Array {
	elemType := typesystem.Type(typesystem.Weak)
	if len(elements) > 0 && elements[0].Type != nil && elements[0].Type.Static != nil {
		elemType = elements[0].Type.Static
	}
	return &Array{Elements: elements, ElemType: elemType}
}

func (a *Array) Kind() typesystem.Kind { return typesystem.ARRAY_KIND }
func (a *Array) Inspect() string {
	parts := make([]string, len(a.Elements))
	for i, el := range a.Elements {
		parts[i] = inspectQuoted(el)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (a *Array) Len() int { return len(a.Elements) }

// Get returns the element at i, or nil when out of bounds. Reading past the
// end is not an error at this level; the evaluator maps nil to void.
func (a *Array) Get(i int) *Binder {
	if i < 0 || i >= len(a.Elements) {
		return nil
	}
	return a.Elements[i]
}

// Set overwrites the element at i; it reports false when i is out of bounds.
// Writing past the end fails, growth goes through Push.
func (a *Array) Set(i int, v *Binder) bool {
	if i < 0 || i >= len(a.Elements) {
		return false
	}
	a.Elements[i] = v
	return true
}

func (a *Array) Push(v *Binder) {
	a.Elements = append(a.Elements, v)
}

// Pop removes and returns the last element; ok is false when empty.
func (a *Array) Pop() (*Binder, bool) {
	if len(a.Elements) == 0 {
		return nil, false
	}
	last := a.Elements[len(a.Elements)-1]
	a.Elements = a.Elements[:len(a.Elements)-1]
	return last, true
}
