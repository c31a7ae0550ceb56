package evaluator

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/funvibe/refina/internal/typesystem"
)

// RegisterBuiltins populates the global environment before any user code
// executes.
func RegisterBuiltins(env *Environment) {
	define := func(name string, fn BuiltinFn) {
		env.Define(name, NewBinder(&Builtin{Name: name, Fn: fn}, typesystem.TFunc{Return: typesystem.Dynamic, Variadic: true}))
	}

	define("print", func(e *Evaluator, args ...*Binder) *Binder {
		parts := make([]string, len(args))
		for i, arg := range args {
			parts[i] = ToString(arg)
		}
		line := strings.Join(parts, " ")
		e.Output = append(e.Output, line)
		if e.Out != nil {
			fmt.Fprintln(e.Out, line)
		}
		return voidBinder()
	})

	define("MinHeap", func(e *Evaluator, args ...*Binder) *Binder {
		return NewBinder(NewHeap(false), typesystem.THeap{Elem: typesystem.Weak})
	})
	define("MaxHeap", func(e *Evaluator, args ...*Binder) *Binder {
		return NewBinder(NewHeap(true), typesystem.THeap{Elem: typesystem.Weak})
	})
	define("MinHeapMap", func(e *Evaluator, args ...*Binder) *Binder {
		return NewBinder(NewHeapMap(false), typesystem.THeapMap{Key: typesystem.Weak, Value: typesystem.Weak})
	})
	define("MaxHeapMap", func(e *Evaluator, args ...*Binder) *Binder {
		return NewBinder(NewHeapMap(true), typesystem.THeapMap{Key: typesystem.Weak, Value: typesystem.Weak})
	})
	define("Map", func(e *Evaluator, args ...*Binder) *Binder {
		return NewBinder(NewMap(), typesystem.TMap{Key: typesystem.Weak, Value: typesystem.Weak})
	})
	define("Set", func(e *Evaluator, args ...*Binder) *Binder {
		return NewBinder(NewSet(), typesystem.TSet{Elem: typesystem.Weak})
	})
	define("Graph", func(e *Evaluator, args ...*Binder) *Binder {
		directed := false
		if len(args) > 0 {
			b, ok := args[0].Value.(*Boolean)
			if !ok {
				return newError("Graph expects a boolean directed flag, got %s", args[0].ActualKind())
			}
			directed = b.Value
		}
		return NewBinder(NewGraph(directed), typesystem.TGraph{Node: typesystem.Weak})
	})
	define("BinaryTree", func(e *Evaluator, args ...*Binder) *Binder {
		return NewBinder(NewBinaryTree(), typesystem.TTree{Elem: typesystem.Weak})
	})
	define("AVLTree", func(e *Evaluator, args ...*Binder) *Binder {
		return NewBinder(NewAVLTree(), typesystem.TTree{Elem: typesystem.Weak})
	})

	define("int_min", intFold("int_min", func(acc, v int64) int64 {
		if v < acc {
			return v
		}
		return acc
	}))
	define("int_max", intFold("int_max", func(acc, v int64) int64 {
		if v > acc {
			return v
		}
		return acc
	}))
	define("int_abs", func(e *Evaluator, args ...*Binder) *Binder {
		if len(args) != 1 {
			return newError("int_abs expects 1 argument, got %d", len(args))
		}
		v, ok := intValue(args[0])
		if !ok {
			return newError("int_abs expects int, got %s", args[0].ActualKind())
		}
		if v < 0 {
			v = -v
		}
		return intBinder(v)
	})

	define("float_min", floatFold("float_min", math.Min))
	define("float_max", floatFold("float_max", math.Max))
	define("float_abs", func(e *Evaluator, args ...*Binder) *Binder {
		if len(args) != 1 {
			return newError("float_abs expects 1 argument, got %d", len(args))
		}
		if !isNumericKind(args[0].ActualKind()) {
			return newError("float_abs expects numeric, got %s", args[0].ActualKind())
		}
		return floatBinder(math.Abs(numericOf(args[0])))
	})

	define("len", func(e *Evaluator, args ...*Binder) *Binder {
		if len(args) != 1 {
			return newError("len expects 1 argument, got %d", len(args))
		}
		s, ok := args[0].Value.(*String)
		if !ok {
			return newError("len expects string, got %s", args[0].ActualKind())
		}
		return intBinder(int64(utf8.RuneCountInString(s.Value)))
	})

	// Numeric infinity: ints saturate at the widest representable value.
	env.Define("int_inf", intBinder(math.MaxInt64))
	env.Define("float_inf", floatBinder(math.Inf(1)))
}

func intFold(name string, fold func(acc, v int64) int64) BuiltinFn {
	return func(e *Evaluator, args ...*Binder) *Binder {
		if len(args) == 0 {
			return newError("%s expects at least 1 argument", name)
		}
		acc, ok := intValue(args[0])
		if !ok {
			return newError("%s expects int arguments, got %s", name, args[0].ActualKind())
		}
		for _, arg := range args[1:] {
			v, ok := intValue(arg)
			if !ok {
				return newError("%s expects int arguments, got %s", name, arg.ActualKind())
			}
			acc = fold(acc, v)
		}
		return intBinder(acc)
	}
}

func floatFold(name string, fold func(a, b float64) float64) BuiltinFn {
	return func(e *Evaluator, args ...*Binder) *Binder {
		if len(args) == 0 {
			return newError("%s expects at least 1 argument", name)
		}
		if !isNumericKind(args[0].ActualKind()) {
			return newError("%s expects numeric arguments, got %s", name, args[0].ActualKind())
		}
		acc := numericOf(args[0])
		for _, arg := range args[1:] {
			if !isNumericKind(arg.ActualKind()) {
				return newError("%s expects numeric arguments, got %s", name, arg.ActualKind())
			}
			acc = fold(acc, numericOf(arg))
		}
		return floatBinder(acc)
	}
}
