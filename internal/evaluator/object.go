package evaluator

import (
	"github.com/funvibe/refina/internal/typesystem"
)

// Value is the interface over all runtime payloads. Kind reports the tag the
// value itself carries, independent of any static annotation; Inspect renders
// the value the way print and dumps show it.
type Value interface {
	Kind() typesystem.Kind
	Inspect() string
}

// RuntimeType pairs a binder's static type with the refinement predicates
// observed or asserted for it. Refinements grow monotonically; they never
// change static dispatch.
type RuntimeType struct {
	Static      typesystem.Type
	Refinements []*Predicate
}

// NewRuntimeType wraps a static type with an empty refinement list.
func NewRuntimeType(static typesystem.Type) *RuntimeType {
	return &RuntimeType{Static: static}
}

// AddRefinement appends p unless an equal predicate is already attached.
func (rt *RuntimeType) AddRefinement(p *Predicate) {
	rendered := p.String()
	for _, existing := range rt.Refinements {
		if existing.String() == rendered {
			return
		}
	}
	rt.Refinements = append(rt.Refinements, p)
}

// Binder is the engine's unit of runtime information: a value tagged with its
// runtime type. Binders are heap-allocated and may be aliased.
type Binder struct {
	Value Value
	Type  *RuntimeType
}

// NewBinder pairs a value with a static type.
func NewBinder(v Value, static typesystem.Type) *Binder {
	return &Binder{Value: v, Type: NewRuntimeType(static)}
}

// StaticKind returns the binder's declared kind, or weak when the static
// type is absent.
func (b *Binder) StaticKind() typesystem.Kind {
	if b.Type == nil || b.Type.Static == nil {
		return typesystem.WEAK_KIND
	}
	return b.Type.Static.Kind()
}

// ActualKind resolves the kind used for dispatch. For dynamic and weak
// binders the underlying value decides; otherwise the static kind stands.
func (b *Binder) ActualKind() typesystem.Kind {
	switch b.StaticKind() {
	case typesystem.DYNAMIC_KIND, typesystem.WEAK_KIND:
		if b.Value == nil {
			return typesystem.VOID_KIND
		}
		return b.Value.Kind()
	default:
		return b.StaticKind()
	}
}

// Inspect renders the underlying value.
func (b *Binder) Inspect() string {
	if b == nil || b.Value == nil {
		return "void"
	}
	return b.Value.Inspect()
}

// IsPrimitiveKind reports whether k is one of the by-value key kinds.
func IsPrimitiveKind(k typesystem.Kind) bool {
	switch k {
	case typesystem.INT_KIND, typesystem.FLOAT_KIND, typesystem.STRING_KIND, typesystem.BOOLEAN_KIND:
		return true
	}
	return false
}
