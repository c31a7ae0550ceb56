package typesystem

import (
	"strings"
)

// Kind is the static classification tag of a type.
type Kind string

const (
	INT_KIND        Kind = "int"
	FLOAT_KIND      Kind = "float"
	STRING_KIND     Kind = "string"
	BOOLEAN_KIND    Kind = "boolean"
	VOID_KIND       Kind = "void"
	WEAK_KIND       Kind = "weak"
	DYNAMIC_KIND    Kind = "dynamic"
	RANGE_KIND      Kind = "range"
	ARRAY_KIND      Kind = "array"
	SET_KIND        Kind = "set"
	MAP_KIND        Kind = "map"
	HEAP_KIND       Kind = "heap"
	HEAPMAP_KIND    Kind = "heapmap"
	GRAPH_KIND      Kind = "graph"
	BINARYTREE_KIND Kind = "binarytree"
	TUPLE_KIND      Kind = "tuple"
	RECORD_KIND     Kind = "record"
	FUNCTION_KIND   Kind = "function"
	PREDICATE_KIND  Kind = "predicate"
)

// Type is the interface for all static types. Types are immutable once
// constructed; sharing them between binders is safe.
type Type interface {
	Kind() Kind
	String() string
}

// TPrim covers the scalar kinds plus the placeholder kinds weak/dynamic,
// void, range and predicate. One shared value per kind is enough.
type TPrim struct {
	KindVal Kind
}

func (t TPrim) Kind() Kind     { return t.KindVal }
func (t TPrim) String() string { return string(t.KindVal) }

var (
	Int       = TPrim{KindVal: INT_KIND}
	Float     = TPrim{KindVal: FLOAT_KIND}
	String    = TPrim{KindVal: STRING_KIND}
	Boolean   = TPrim{KindVal: BOOLEAN_KIND}
	Void      = TPrim{KindVal: VOID_KIND}
	Weak      = TPrim{KindVal: WEAK_KIND}
	Dynamic   = TPrim{KindVal: DYNAMIC_KIND}
	Range     = TPrim{KindVal: RANGE_KIND}
	Predicate = TPrim{KindVal: PREDICATE_KIND}
)

// TArray is array{elem}.
type TArray struct {
	Elem Type
}

func (t TArray) Kind() Kind     { return ARRAY_KIND }
func (t TArray) String() string { return "array<" + typeString(t.Elem) + ">" }

// TSet is set{elem}.
type TSet struct {
	Elem Type
}

func (t TSet) Kind() Kind     { return SET_KIND }
func (t TSet) String() string { return "set<" + typeString(t.Elem) + ">" }

// TMap is map{key, val}.
type TMap struct {
	Key   Type
	Value Type
}

func (t TMap) Kind() Kind { return MAP_KIND }
func (t TMap) String() string {
	return "map<" + typeString(t.Key) + ", " + typeString(t.Value) + ">"
}

// THeap is heap{elem}.
type THeap struct {
	Elem Type
}

func (t THeap) Kind() Kind     { return HEAP_KIND }
func (t THeap) String() string { return "heap<" + typeString(t.Elem) + ">" }

// THeapMap is heapmap{key, val}.
type THeapMap struct {
	Key   Type
	Value Type
}

func (t THeapMap) Kind() Kind { return HEAPMAP_KIND }
func (t THeapMap) String() string {
	return "heapmap<" + typeString(t.Key) + ", " + typeString(t.Value) + ">"
}

// TGraph is graph{node}.
type TGraph struct {
	Node Type
}

func (t TGraph) Kind() Kind     { return GRAPH_KIND }
func (t TGraph) String() string { return "graph<" + typeString(t.Node) + ">" }

// TTree is binarytree{elem}; it covers both plain and AVL trees, which share
// a static type and differ only in runtime balancing.
type TTree struct {
	Elem Type
}

func (t TTree) Kind() Kind     { return BINARYTREE_KIND }
func (t TTree) String() string { return "binarytree<" + typeString(t.Elem) + ">" }

// TTuple is tuple{[elems]}.
type TTuple struct {
	Elements []Type
}

func (t TTuple) Kind() Kind { return TUPLE_KIND }
func (t TTuple) String() string {
	parts := make([]string, len(t.Elements))
	for i, el := range t.Elements {
		parts[i] = typeString(el)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Field is a single named record field.
type Field struct {
	Name string
	Type Type
}

// TRecord is record{[(name, type)]}. Field order is declaration order.
type TRecord struct {
	Fields []Field
}

func (t TRecord) Kind() Kind { return RECORD_KIND }
func (t TRecord) String() string {
	parts := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		parts[i] = f.Name + ": " + typeString(f.Type)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// TFunc is function{params, return, variadic?}.
type TFunc struct {
	Params   []Type
	Return   Type
	Variadic bool
}

func (t TFunc) Kind() Kind { return FUNCTION_KIND }
func (t TFunc) String() string {
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		parts[i] = typeString(p)
	}
	suffix := ""
	if t.Variadic {
		suffix = "..."
	}
	return "fn(" + strings.Join(parts, ", ") + suffix + ") -> " + typeString(t.Return)
}

func typeString(t Type) string {
	if t == nil {
		return string(WEAK_KIND)
	}
	return t.String()
}

// ElemOf returns the element type carried by a container type, or nil when
// the type has no single element slot.
func ElemOf(t Type) Type {
	switch typ := t.(type) {
	case TArray:
		return typ.Elem
	case TSet:
		return typ.Elem
	case THeap:
		return typ.Elem
	case TTree:
		return typ.Elem
	case TGraph:
		return typ.Node
	}
	return nil
}
