package ast

// TypeAnnotation is the parser's surface syntax for a type. The resolver in
// the evaluator maps annotations to typesystem types.
type TypeAnnotation interface {
	Node
	typeAnnotation()
}

// SimpleType is a bare type name: int, float, graph, weak, ...
type SimpleType struct {
	Name string
}

func (st *SimpleType) node()           {}
func (st *SimpleType) typeAnnotation() {}

// GenericType is a parameterized name: array<int>, map<string, float>, ...
type GenericType struct {
	Name           string
	TypeParameters []TypeAnnotation
}

func (gt *GenericType) node()           {}
func (gt *GenericType) typeAnnotation() {}

// FunctionType is fn(params) -> ret.
type FunctionType struct {
	ParameterTypes []TypeAnnotation
	ReturnType     TypeAnnotation
}

func (ft *FunctionType) node()           {}
func (ft *FunctionType) typeAnnotation() {}

// TupleType is (t1, t2, ...).
type TupleType struct {
	ElementTypes []TypeAnnotation
}

func (tt *TupleType) node()           {}
func (tt *TupleType) typeAnnotation() {}

// RecordField is a single name/type pair in a record annotation.
type RecordField struct {
	Name string
	Type TypeAnnotation
}

// RecordType is {name1: t1, name2: t2, ...}.
type RecordType struct {
	FieldTypes []RecordField
}

func (rt *RecordType) node()           {}
func (rt *RecordType) typeAnnotation() {}
