package evaluator

import (
	"math"

	"github.com/funvibe/refina/internal/ast"
	"github.com/funvibe/refina/internal/typesystem"
)

func methodBinder(name string, fn BuiltinFn) *Binder {
	return NewBinder(&Builtin{Name: name, Fn: fn}, typesystem.TFunc{Return: typesystem.Dynamic, Variadic: true})
}

// numBinder renders a stored weight as int when integral, float otherwise.
func numBinder(v float64) *Binder {
	if v == math.Trunc(v) && !math.IsInf(v, 0) {
		return intBinder(int64(v))
	}
	return floatBinder(v)
}

func (e *Evaluator) evalMemberExpression(node *ast.MemberExpression, env *Environment) *Binder {
	obj := e.Eval(node.Object, env)
	if isError(obj) {
		return obj
	}
	return e.memberOf(obj, node.Property.Name)
}

func (e *Evaluator) memberOf(obj *Binder, name string) *Binder {
	switch container := obj.Value.(type) {
	case *Array:
		return e.arrayMember(container, name)
	case *MapValue:
		return e.mapMember(container, name)
	case *SetValue:
		return e.setMember(container, name)
	case *Heap:
		return e.heapMember(container, name)
	case *HeapMap:
		return e.heapMapMember(container, name)
	case *Graph:
		return e.graphMember(container, name)
	case *BinaryTree:
		return e.treeMember(container, name)
	case *LazyRange:
		return e.rangeMember(container, name)
	case *String:
		if name == "length" || name == "len" {
			return methodBinder(name, func(e *Evaluator, args ...*Binder) *Binder {
				return intBinder(int64(len([]rune(container.Value))))
			})
		}
	case *Record:
		if field := container.Get(name); field != nil {
			return field
		}
		return newError("record has no field %s", name)
	case *Tuple:
		if name == "length" || name == "len" {
			return methodBinder(name, func(e *Evaluator, args ...*Binder) *Binder {
				return intBinder(int64(len(container.Elements)))
			})
		}
	}
	return newError("property %s not found on %s", name, obj.ActualKind())
}

func (e *Evaluator) arrayMember(arr *Array, name string) *Binder {
	switch name {
	case "len", "length":
		return methodBinder(name, func(e *Evaluator, args ...*Binder) *Binder {
			return intBinder(int64(arr.Len()))
		})
	case "get":
		return methodBinder(name, func(e *Evaluator, args ...*Binder) *Binder {
			if len(args) != 1 {
				return newError("get expects 1 argument, got %d", len(args))
			}
			i, ok := intValue(args[0])
			if !ok {
				return newError("array index must be int, got %s", args[0].ActualKind())
			}
			el := arr.Get(int(i))
			if el == nil {
				return voidBinder()
			}
			return el
		})
	case "set":
		return methodBinder(name, func(e *Evaluator, args ...*Binder) *Binder {
			if len(args) != 2 {
				return newError("set expects 2 arguments, got %d", len(args))
			}
			i, ok := intValue(args[0])
			if !ok {
				return newError("array index must be int, got %s", args[0].ActualKind())
			}
			if !arr.Set(int(i), args[1]) {
				return newError("array index %d out of bounds for length %d", i, arr.Len())
			}
			return voidBinder()
		})
	case "push":
		return methodBinder(name, func(e *Evaluator, args ...*Binder) *Binder {
			if len(args) != 1 {
				return newError("push expects 1 argument, got %d", len(args))
			}
			arr.Push(args[0])
			return voidBinder()
		})
	case "pop":
		return methodBinder(name, func(e *Evaluator, args ...*Binder) *Binder {
			el, ok := arr.Pop()
			if !ok {
				return newError("pop from empty array")
			}
			return el
		})
	case "forEach":
		return methodBinder(name, func(e *Evaluator, args ...*Binder) *Binder {
			if len(args) != 1 || !isCallable(args[0]) {
				return newError("forEach expects a function argument")
			}
			for _, el := range arr.Elements {
				res := e.applyFunction(args[0], []*Binder{el})
				if isError(res) {
					return res
				}
			}
			return voidBinder()
		})
	case "toString":
		return methodBinder(name, func(e *Evaluator, args ...*Binder) *Binder {
			return stringBinder(arr.Inspect())
		})
	}
	return newError("property %s not found on array", name)
}

func (e *Evaluator) mapMember(m *MapValue, name string) *Binder {
	switch name {
	case "get":
		return methodBinder(name, func(e *Evaluator, args ...*Binder) *Binder {
			if len(args) != 1 {
				return newError("get expects 1 argument, got %d", len(args))
			}
			if v := m.Get(args[0]); v != nil {
				return v
			}
			return voidBinder()
		})
	case "set":
		return methodBinder(name, func(e *Evaluator, args ...*Binder) *Binder {
			if len(args) != 2 {
				return newError("set expects 2 arguments, got %d", len(args))
			}
			m.Set(args[0], args[1])
			return voidBinder()
		})
	case "has":
		return methodBinder(name, func(e *Evaluator, args ...*Binder) *Binder {
			if len(args) != 1 {
				return newError("has expects 1 argument, got %d", len(args))
			}
			return boolBinder(m.Has(args[0]))
		})
	case "delete":
		return methodBinder(name, func(e *Evaluator, args ...*Binder) *Binder {
			if len(args) != 1 {
				return newError("delete expects 1 argument, got %d", len(args))
			}
			return boolBinder(m.Delete(args[0]))
		})
	case "size":
		return methodBinder(name, func(e *Evaluator, args ...*Binder) *Binder {
			return intBinder(int64(m.Size()))
		})
	case "keys":
		return methodBinder(name, func(e *Evaluator, args ...*Binder) *Binder {
			arr := NewArray(m.Keys())
			return NewBinder(arr, typesystem.TArray{Elem: arr.ElemType})
		})
	case "values":
		return methodBinder(name, func(e *Evaluator, args ...*Binder) *Binder {
			arr := NewArray(m.Values())
			return NewBinder(arr, typesystem.TArray{Elem: arr.ElemType})
		})
	case "entries":
		return methodBinder(name, func(e *Evaluator, args ...*Binder) *Binder {
			pairs := m.Entries()
			elements := make([]*Binder, len(pairs))
			for i, pair := range pairs {
				tuple := &Tuple{Elements: []*Binder{pair[0], pair[1]}}
				elements[i] = NewBinder(tuple, typesystem.TTuple{Elements: []typesystem.Type{pair[0].Type.Static, pair[1].Type.Static}})
			}
			arr := NewArray(elements)
			return NewBinder(arr, typesystem.TArray{Elem: arr.ElemType})
		})
	case "forEach":
		return methodBinder(name, func(e *Evaluator, args ...*Binder) *Binder {
			if len(args) != 1 || !isCallable(args[0]) {
				return newError("forEach expects a function argument")
			}
			for _, pair := range m.Entries() {
				res := e.applyFunction(args[0], []*Binder{pair[1], pair[0]})
				if isError(res) {
					return res
				}
			}
			return voidBinder()
		})
	}
	// Non-method names read properties, mirroring obj.prop = v writes.
	if v := m.Get(stringBinder(name)); v != nil {
		return v
	}
	return voidBinder()
}

func (e *Evaluator) setMember(s *SetValue, name string) *Binder {
	switch name {
	case "add":
		return methodBinder(name, func(e *Evaluator, args ...*Binder) *Binder {
			if len(args) != 1 {
				return newError("add expects 1 argument, got %d", len(args))
			}
			s.Add(args[0])
			return voidBinder()
		})
	case "has":
		return methodBinder(name, func(e *Evaluator, args ...*Binder) *Binder {
			if len(args) != 1 {
				return newError("has expects 1 argument, got %d", len(args))
			}
			return boolBinder(s.Has(args[0]))
		})
	case "delete":
		return methodBinder(name, func(e *Evaluator, args ...*Binder) *Binder {
			if len(args) != 1 {
				return newError("delete expects 1 argument, got %d", len(args))
			}
			return boolBinder(s.Delete(args[0]))
		})
	case "size":
		return methodBinder(name, func(e *Evaluator, args ...*Binder) *Binder {
			return intBinder(int64(s.Size()))
		})
	case "toArray":
		return methodBinder(name, func(e *Evaluator, args ...*Binder) *Binder {
			arr := NewArray(s.ToArray())
			return NewBinder(arr, typesystem.TArray{Elem: arr.ElemType})
		})
	case "forEach":
		return methodBinder(name, func(e *Evaluator, args ...*Binder) *Binder {
			if len(args) != 1 || !isCallable(args[0]) {
				return newError("forEach expects a function argument")
			}
			for _, el := range s.ToArray() {
				res := e.applyFunction(args[0], []*Binder{el})
				if isError(res) {
					return res
				}
			}
			return voidBinder()
		})
	}
	return newError("property %s not found on set", name)
}

func (e *Evaluator) heapMember(h *Heap, name string) *Binder {
	switch name {
	case "push":
		return methodBinder(name, func(e *Evaluator, args ...*Binder) *Binder {
			if len(args) != 1 {
				return newError("push expects 1 argument, got %d", len(args))
			}
			if err := h.Push(args[0]); err != nil {
				return newError("%s", err)
			}
			return voidBinder()
		})
	case "pop":
		return methodBinder(name, func(e *Evaluator, args ...*Binder) *Binder {
			el, err := h.Pop()
			if err != nil {
				return newError("%s", err)
			}
			return el
		})
	case "peek":
		return methodBinder(name, func(e *Evaluator, args ...*Binder) *Binder {
			if el := h.Peek(); el != nil {
				return el
			}
			return voidBinder()
		})
	case "size":
		return methodBinder(name, func(e *Evaluator, args ...*Binder) *Binder {
			return intBinder(int64(h.Size()))
		})
	case "isEmpty":
		return methodBinder(name, func(e *Evaluator, args ...*Binder) *Binder {
			return boolBinder(h.IsEmpty())
		})
	}
	return newError("property %s not found on heap", name)
}

func (e *Evaluator) heapMapMember(h *HeapMap, name string) *Binder {
	pairBinder := func(key, priority *Binder) *Binder {
		tuple := &Tuple{Elements: []*Binder{key, priority}}
		return NewBinder(tuple, typesystem.TTuple{Elements: []typesystem.Type{key.Type.Static, priority.Type.Static}})
	}
	switch name {
	case "push":
		return methodBinder(name, func(e *Evaluator, args ...*Binder) *Binder {
			if len(args) != 2 {
				return newError("push expects key and priority, got %d arguments", len(args))
			}
			if err := h.Push(args[0], args[1]); err != nil {
				return newError("%s", err)
			}
			return voidBinder()
		})
	case "pop":
		return methodBinder(name, func(e *Evaluator, args ...*Binder) *Binder {
			key, priority, err := h.Pop()
			if err != nil {
				return newError("%s", err)
			}
			return pairBinder(key, priority)
		})
	case "peek":
		return methodBinder(name, func(e *Evaluator, args ...*Binder) *Binder {
			key, priority, ok := h.Peek()
			if !ok {
				return voidBinder()
			}
			return pairBinder(key, priority)
		})
	case "has":
		return methodBinder(name, func(e *Evaluator, args ...*Binder) *Binder {
			if len(args) != 1 {
				return newError("has expects 1 argument, got %d", len(args))
			}
			return boolBinder(h.Has(args[0]))
		})
	case "getPriority":
		return methodBinder(name, func(e *Evaluator, args ...*Binder) *Binder {
			if len(args) != 1 {
				return newError("getPriority expects 1 argument, got %d", len(args))
			}
			if p := h.GetPriority(args[0]); p != nil {
				return p
			}
			return voidBinder()
		})
	case "updatePriority":
		return methodBinder(name, func(e *Evaluator, args ...*Binder) *Binder {
			if len(args) != 2 {
				return newError("updatePriority expects key and priority, got %d arguments", len(args))
			}
			if err := h.UpdatePriority(args[0], args[1]); err != nil {
				return newError("%s", err)
			}
			return voidBinder()
		})
	case "delete":
		return methodBinder(name, func(e *Evaluator, args ...*Binder) *Binder {
			if len(args) != 1 {
				return newError("delete expects 1 argument, got %d", len(args))
			}
			removed, err := h.Delete(args[0])
			if err != nil {
				return newError("%s", err)
			}
			return boolBinder(removed)
		})
	case "entries":
		return methodBinder(name, func(e *Evaluator, args ...*Binder) *Binder {
			pairs := h.Entries()
			elements := make([]*Binder, len(pairs))
			for i, pair := range pairs {
				elements[i] = pairBinder(pair[0], pair[1])
			}
			arr := NewArray(elements)
			return NewBinder(arr, typesystem.TArray{Elem: arr.ElemType})
		})
	case "clear":
		return methodBinder(name, func(e *Evaluator, args ...*Binder) *Binder {
			h.Clear()
			return voidBinder()
		})
	case "size":
		return methodBinder(name, func(e *Evaluator, args ...*Binder) *Binder {
			return intBinder(int64(h.Size()))
		})
	case "isEmpty":
		return methodBinder(name, func(e *Evaluator, args ...*Binder) *Binder {
			return boolBinder(h.IsEmpty())
		})
	}
	return newError("property %s not found on heapmap", name)
}

func (e *Evaluator) graphMember(g *Graph, name string) *Binder {
	recordBinder := func(fields []recordField, types []typesystem.Field) *Binder {
		return NewBinder(&Record{Fields: fields}, typesystem.TRecord{Fields: types})
	}
	switch name {
	case "addVertex":
		return methodBinder(name, func(e *Evaluator, args ...*Binder) *Binder {
			if len(args) != 1 {
				return newError("addVertex expects 1 argument, got %d", len(args))
			}
			g.AddVertex(args[0])
			return voidBinder()
		})
	case "addEdge":
		return methodBinder(name, func(e *Evaluator, args ...*Binder) *Binder {
			if len(args) != 2 && len(args) != 3 {
				return newError("addEdge expects from, to and an optional weight, got %d arguments", len(args))
			}
			weight := 1.0
			if len(args) == 3 {
				if !isNumericKind(args[2].ActualKind()) {
					return newError("edge weight must be numeric, got %s", args[2].ActualKind())
				}
				weight = numericOf(args[2])
			}
			g.AddEdge(args[0], args[1], weight)
			return voidBinder()
		})
	case "hasVertex":
		return methodBinder(name, func(e *Evaluator, args ...*Binder) *Binder {
			if len(args) != 1 {
				return newError("hasVertex expects 1 argument, got %d", len(args))
			}
			return boolBinder(g.HasVertex(args[0]))
		})
	case "hasEdge":
		return methodBinder(name, func(e *Evaluator, args ...*Binder) *Binder {
			if len(args) != 2 {
				return newError("hasEdge expects 2 arguments, got %d", len(args))
			}
			return boolBinder(g.HasEdge(args[0], args[1]))
		})
	case "isDirected":
		return methodBinder(name, func(e *Evaluator, args ...*Binder) *Binder {
			return boolBinder(g.IsDirected())
		})
	case "getVertices":
		return methodBinder(name, func(e *Evaluator, args ...*Binder) *Binder {
			arr := NewArray(g.GetVertices())
			return NewBinder(arr, typesystem.TArray{Elem: arr.ElemType})
		})
	case "getNeighbors":
		return methodBinder(name, func(e *Evaluator, args ...*Binder) *Binder {
			if len(args) != 1 {
				return newError("getNeighbors expects 1 argument, got %d", len(args))
			}
			neighbors := g.GetNeighbors(args[0])
			elements := make([]*Binder, len(neighbors))
			for i, n := range neighbors {
				elements[i] = recordBinder(
					[]recordField{
						{Key: stringBinder("to"), Value: n.To},
						{Key: stringBinder("weight"), Value: numBinder(n.Weight)},
					},
					[]typesystem.Field{
						{Name: "to", Type: n.To.Type.Static},
						{Name: "weight", Type: typesystem.Float},
					},
				)
			}
			arr := NewArray(elements)
			return NewBinder(arr, typesystem.TArray{Elem: arr.ElemType})
		})
	case "getEdgeWeight":
		return methodBinder(name, func(e *Evaluator, args ...*Binder) *Binder {
			if len(args) != 2 {
				return newError("getEdgeWeight expects 2 arguments, got %d", len(args))
			}
			weight, ok := g.GetEdgeWeight(args[0], args[1])
			if !ok {
				return newError("no edge from %s to %s", args[0].Inspect(), args[1].Inspect())
			}
			return numBinder(weight)
		})
	case "getEdges":
		return methodBinder(name, func(e *Evaluator, args ...*Binder) *Binder {
			edges := g.GetEdges()
			elements := make([]*Binder, len(edges))
			for i, edge := range edges {
				elements[i] = recordBinder(
					[]recordField{
						{Key: stringBinder("from"), Value: edge.From},
						{Key: stringBinder("to"), Value: edge.To},
						{Key: stringBinder("weight"), Value: numBinder(edge.Weight)},
					},
					[]typesystem.Field{
						{Name: "from", Type: edge.From.Type.Static},
						{Name: "to", Type: edge.To.Type.Static},
						{Name: "weight", Type: typesystem.Float},
					},
				)
			}
			arr := NewArray(elements)
			return NewBinder(arr, typesystem.TArray{Elem: arr.ElemType})
		})
	}
	return newError("property %s not found on graph", name)
}

func (e *Evaluator) treeMember(t *BinaryTree, name string) *Binder {
	traversal := func(values []*Binder) *Binder {
		arr := NewArray(values)
		return NewBinder(arr, typesystem.TArray{Elem: arr.ElemType})
	}
	switch name {
	case "insert":
		return methodBinder(name, func(e *Evaluator, args ...*Binder) *Binder {
			if len(args) != 1 {
				return newError("insert expects 1 argument, got %d", len(args))
			}
			if err := t.Insert(args[0]); err != nil {
				return newError("%s", err)
			}
			return voidBinder()
		})
	case "search":
		return methodBinder(name, func(e *Evaluator, args ...*Binder) *Binder {
			if len(args) != 1 {
				return newError("search expects 1 argument, got %d", len(args))
			}
			found, err := t.Search(args[0])
			if err != nil {
				return newError("%s", err)
			}
			return boolBinder(found)
		})
	case "inOrderTraversal":
		return methodBinder(name, func(e *Evaluator, args ...*Binder) *Binder {
			return traversal(t.InOrder())
		})
	case "preOrderTraversal":
		return methodBinder(name, func(e *Evaluator, args ...*Binder) *Binder {
			return traversal(t.PreOrder())
		})
	case "postOrderTraversal":
		return methodBinder(name, func(e *Evaluator, args ...*Binder) *Binder {
			return traversal(t.PostOrder())
		})
	case "getHeight":
		return methodBinder(name, func(e *Evaluator, args ...*Binder) *Binder {
			return intBinder(int64(t.GetHeight()))
		})
	case "size":
		return methodBinder(name, func(e *Evaluator, args ...*Binder) *Binder {
			return intBinder(int64(t.Size()))
		})
	}
	return newError("property %s not found on binarytree", name)
}

func (e *Evaluator) rangeMember(r *LazyRange, name string) *Binder {
	switch name {
	case "isInfinite":
		return methodBinder(name, func(e *Evaluator, args ...*Binder) *Binder {
			return boolBinder(r.IsInfinite())
		})
	case "toArray":
		return methodBinder(name, func(e *Evaluator, args ...*Binder) *Binder {
			elements, err := r.ToArray()
			if err != nil {
				return newError("%s", err)
			}
			arr := NewArray(elements)
			return NewBinder(arr, typesystem.TArray{Elem: arr.ElemType})
		})
	case "generate":
		return methodBinder(name, func(e *Evaluator, args ...*Binder) *Binder {
			// Each generate() call restarts the sequence; the returned
			// callable yields the next int, then void when exhausted.
			next := r.Generate()
			return methodBinder("next", func(e *Evaluator, args ...*Binder) *Binder {
				v, ok := next()
				if !ok {
					return voidBinder()
				}
				return intBinder(v)
			})
		})
	}
	return newError("property %s not found on range", name)
}

func (e *Evaluator) evalIndexExpression(node *ast.IndexExpression, env *Environment) *Binder {
	obj := e.Eval(node.Object, env)
	if isError(obj) {
		return obj
	}
	index := e.Eval(node.Index, env)
	if isError(index) {
		return index
	}

	switch container := obj.Value.(type) {
	case *Array:
		return e.indexArray(container, index)
	case *MapValue:
		if v := container.Get(index); v != nil {
			return v
		}
		return voidBinder()
	case *Tuple:
		i, ok := intValue(index)
		if !ok {
			return newError("tuple index must be int, got %s", index.ActualKind())
		}
		if i < 0 || int(i) >= len(container.Elements) {
			return newError("tuple index %d out of bounds for arity %d", i, len(container.Elements))
		}
		return container.Elements[int(i)]
	case *Record:
		s, ok := index.Value.(*String)
		if !ok {
			return newError("record index must be string, got %s", index.ActualKind())
		}
		if field := container.Get(s.Value); field != nil {
			return field
		}
		return newError("record has no field %s", s.Value)
	}
	return newError("indexing not supported on %s", obj.ActualKind())
}

func (e *Evaluator) indexArray(arr *Array, index *Binder) *Binder {
	switch idx := index.Value.(type) {
	case *Integer:
		// Reading past the end yields void; writes past the end fail.
		el := arr.Get(int(idx.Value))
		if el == nil {
			return voidBinder()
		}
		return el

	case *Array:
		// Gather: out-of-bounds entries are silently skipped.
		var gathered []*Binder
		for _, indexEl := range idx.Elements {
			i, ok := intValue(indexEl)
			if !ok {
				return newError("gather index must be int, got %s", indexEl.ActualKind())
			}
			if el := arr.Get(int(i)); el != nil {
				gathered = append(gathered, el)
			}
		}
		out := NewArray(gathered)
		out.ElemType = arr.ElemType
		return NewBinder(out, typesystem.TArray{Elem: out.ElemType})

	case *LazyRange:
		// Slice with both ends clamped to [0, len].
		start := idx.Start
		end := int64(arr.Len())
		if !idx.IsInfinite() {
			end = idx.Bound()
		}
		if start < 0 {
			start = 0
		}
		if end > int64(arr.Len()) {
			end = int64(arr.Len())
		}
		var sliced []*Binder
		for i := int(start); i < int(end); i++ {
			sliced = append(sliced, arr.Elements[i])
		}
		out := NewArray(sliced)
		out.ElemType = arr.ElemType
		return NewBinder(out, typesystem.TArray{Elem: out.ElemType})
	}
	return newError("array index must be int, array or range, got %s", index.ActualKind())
}
