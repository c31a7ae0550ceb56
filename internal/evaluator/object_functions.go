package evaluator

import (
	"github.com/funvibe/refina/internal/ast"
	"github.com/funvibe/refina/internal/typesystem"
)

// Function is a user-defined function together with the environment chain
// captured at declaration time. The chain is shared, not copied, so bindings
// added to the enclosing scope after declaration (including the function's
// own name) stay visible to the body.
type Function struct {
	Name       string
	Parameters []*ast.Parameter
	ReturnType typesystem.Type
	Body       *ast.BlockStatement
	Env        *Environment
}

func (f *Function) Kind() typesystem.Kind { return typesystem.FUNCTION_KIND }
func (f *Function) Inspect() string {
	if f.Name != "" {
		return "fn " + f.Name
	}
	return "fn"
}

// BuiltinFn is the signature of native functions; all builtins are variadic
// at this level and validate their own arity.
type BuiltinFn func(e *Evaluator, args ...*Binder) *Binder

// Builtin wraps a native callable.
type Builtin struct {
	Name string
	Fn   BuiltinFn
}

func (b *Builtin) Kind() typesystem.Kind { return typesystem.FUNCTION_KIND }
func (b *Builtin) Inspect() string       { return "builtin " + b.Name }

// PredicateValue is a first-class predicate thunk produced by evaluating
// @name(args) at a call position.
type PredicateValue struct {
	Name string
	Args []*Binder
}

func (p *PredicateValue) Kind() typesystem.Kind { return typesystem.PREDICATE_KIND }
func (p *PredicateValue) Inspect() string       { return "@" + p.Name }

// ReturnValue is the distinguished unwinding signal carried out of a
// function body. It is not an error.
type ReturnValue struct {
	Value *Binder
}

func (rv *ReturnValue) Kind() typesystem.Kind { return typesystem.VOID_KIND }
func (rv *ReturnValue) Inspect() string       { return rv.Value.Inspect() }

// Error aborts evaluation and unwinds to the driver.
type Error struct {
	Message string
	Line    int
	Column  int
	// Dump carries the rendered in-scope bindings on invariant and assert
	// violations.
	Dump string
	// IsInvariant marks invariant/assert violations for diagnostic coding.
	IsInvariant bool
	// Internal marks failures the static checker should have prevented.
	Internal bool
}

func (e *Error) Kind() typesystem.Kind { return typesystem.VOID_KIND }
func (e *Error) Inspect() string       { return "error: " + e.Message }
