package evaluator

import (
	"github.com/funvibe/refina/internal/ast"
	"github.com/funvibe/refina/internal/typesystem"
)

// resolveAnnotation maps the parser's type annotations to typesystem types.
// The static checker guarantees annotations are present and well-formed, so
// an unresolvable one is an internal error.
func (e *Evaluator) resolveAnnotation(t ast.TypeAnnotation) (typesystem.Type, *Binder) {
	switch t := t.(type) {
	case nil:
		return typesystem.Weak, nil

	case *ast.SimpleType:
		switch t.Name {
		case "int":
			return typesystem.Int, nil
		case "float":
			return typesystem.Float, nil
		case "string":
			return typesystem.String, nil
		case "boolean", "bool":
			return typesystem.Boolean, nil
		case "void":
			return typesystem.Void, nil
		case "weak":
			return typesystem.Weak, nil
		case "dynamic":
			return typesystem.Dynamic, nil
		case "range":
			return typesystem.Range, nil
		case "predicate":
			return typesystem.Predicate, nil
		case "array":
			return typesystem.TArray{Elem: typesystem.Weak}, nil
		case "set":
			return typesystem.TSet{Elem: typesystem.Weak}, nil
		case "map":
			return typesystem.TMap{Key: typesystem.Weak, Value: typesystem.Weak}, nil
		case "heap":
			return typesystem.THeap{Elem: typesystem.Weak}, nil
		case "heapmap":
			return typesystem.THeapMap{Key: typesystem.Weak, Value: typesystem.Weak}, nil
		case "graph":
			return typesystem.TGraph{Node: typesystem.Weak}, nil
		case "binarytree", "avltree":
			return typesystem.TTree{Elem: typesystem.Weak}, nil
		}
		return nil, newInternalError("unknown type name: %s", t.Name)

	case *ast.GenericType:
		params := make([]typesystem.Type, len(t.TypeParameters))
		for i, p := range t.TypeParameters {
			resolved, errBinder := e.resolveAnnotation(p)
			if errBinder != nil {
				return nil, errBinder
			}
			params[i] = resolved
		}
		one := func() typesystem.Type {
			if len(params) > 0 {
				return params[0]
			}
			return typesystem.Weak
		}
		two := func() typesystem.Type {
			if len(params) > 1 {
				return params[1]
			}
			return typesystem.Weak
		}
		switch t.Name {
		case "array":
			return typesystem.TArray{Elem: one()}, nil
		case "set":
			return typesystem.TSet{Elem: one()}, nil
		case "map":
			return typesystem.TMap{Key: one(), Value: two()}, nil
		case "heap":
			return typesystem.THeap{Elem: one()}, nil
		case "heapmap":
			return typesystem.THeapMap{Key: one(), Value: two()}, nil
		case "graph":
			return typesystem.TGraph{Node: one()}, nil
		case "binarytree", "avltree":
			return typesystem.TTree{Elem: one()}, nil
		}
		return nil, newInternalError("unknown generic type name: %s", t.Name)

	case *ast.FunctionType:
		params := make([]typesystem.Type, len(t.ParameterTypes))
		for i, p := range t.ParameterTypes {
			resolved, errBinder := e.resolveAnnotation(p)
			if errBinder != nil {
				return nil, errBinder
			}
			params[i] = resolved
		}
		ret, errBinder := e.resolveAnnotation(t.ReturnType)
		if errBinder != nil {
			return nil, errBinder
		}
		return typesystem.TFunc{Params: params, Return: ret}, nil

	case *ast.TupleType:
		elems := make([]typesystem.Type, len(t.ElementTypes))
		for i, el := range t.ElementTypes {
			resolved, errBinder := e.resolveAnnotation(el)
			if errBinder != nil {
				return nil, errBinder
			}
			elems[i] = resolved
		}
		return typesystem.TTuple{Elements: elems}, nil

	case *ast.RecordType:
		fields := make([]typesystem.Field, len(t.FieldTypes))
		for i, f := range t.FieldTypes {
			resolved, errBinder := e.resolveAnnotation(f.Type)
			if errBinder != nil {
				return nil, errBinder
			}
			fields[i] = typesystem.Field{Name: f.Name, Type: resolved}
		}
		return typesystem.TRecord{Fields: fields}, nil
	}

	return nil, newInternalError("unhandled type annotation %T", t)
}
