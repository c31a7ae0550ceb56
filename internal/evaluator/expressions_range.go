package evaluator

import (
	"github.com/funvibe/refina/internal/ast"
	"github.com/funvibe/refina/internal/typesystem"
)

func (e *Evaluator) evalRangeExpression(node *ast.RangeExpression, env *Environment) *Binder {
	if node.Start == nil {
		return newError("range requires a start bound")
	}
	start := e.Eval(node.Start, env)
	if isError(start) {
		return start
	}

	var end *Binder
	if node.End != nil {
		end = e.Eval(node.End, env)
		if isError(end) {
			return end
		}
	}

	switch sv := start.Value.(type) {
	case *Integer:
		if end == nil {
			return NewBinder(&LazyRange{Start: sv.Value, Inclusive: node.Inclusive}, typesystem.Range)
		}
		ev, ok := intValue(end)
		if !ok {
			return newError("range bounds must both be int, got %s and %s", start.ActualKind(), end.ActualKind())
		}
		bound := ev
		if node.Inclusive {
			bound++
		}
		var elements []*Binder
		for i := sv.Value; i < bound; i++ {
			elements = append(elements, intBinder(i))
		}
		arr := NewArray(elements)
		arr.ElemType = typesystem.Int
		return NewBinder(arr, typesystem.TArray{Elem: typesystem.Int})

	case *String:
		if end == nil {
			return newError("string ranges require both bounds")
		}
		ev, ok := end.Value.(*String)
		if !ok {
			return newError("range bounds must both be string, got %s and %s", start.ActualKind(), end.ActualKind())
		}
		return e.evalStringRange(sv.Value, ev.Value, node.Inclusive)
	}
	return newError("range bounds must be int or string, got %s", start.ActualKind())
}

// evalStringRange generates same-length strings lexicographically: a plain
// character range for single-char bounds, an odometer increment wrapping at
// the ASCII boundary for longer ones. Generation is capped to keep ranges
// like "aaaa".."zzzz" from running away.
func (e *Evaluator) evalStringRange(start, end string, inclusive bool) *Binder {
	if len(start) != len(end) {
		return newError("string range bounds must have equal length, got %q and %q", start, end)
	}
	if start == "" {
		return newError("string range bounds must be non-empty")
	}

	var elements []*Binder
	emit := func(s string) {
		elements = append(elements, stringBinder(s))
	}
	finish := func() *Binder {
		arr := NewArray(elements)
		arr.ElemType = typesystem.String
		return NewBinder(arr, typesystem.TArray{Elem: typesystem.String})
	}

	if len(start) == 1 {
		from, to := start[0], end[0]
		bound := int(to)
		if inclusive {
			bound++
		}
		for c := int(from); c < bound; c++ {
			emit(string(rune(c)))
		}
		return finish()
	}

	current := []byte(start)
	steps := 0
	for {
		if string(current) == end {
			if inclusive {
				emit(string(current))
			}
			return finish()
		}
		emit(string(current))
		steps++
		if steps >= e.Options.StringRangeCap {
			return newError("string range from %q to %q exceeded %d steps", start, end, e.Options.StringRangeCap)
		}
		// Odometer increment, carrying when a position leaves ASCII.
		for i := len(current) - 1; i >= 0; i-- {
			current[i]++
			if current[i] < 128 {
				break
			}
			current[i] = 0
		}
	}
}
