package evaluator

import (
	"fmt"

	"github.com/funvibe/refina/internal/ast"
	"github.com/funvibe/refina/internal/typesystem"
)

// BlankIdentifier is the reserved "ignore" name: a declaration of it drops
// the binding, and it can never be read or assigned.
const BlankIdentifier = "_"

func newError(format string, a ...interface{}) *Binder {
	return NewBinder(&Error{Message: fmt.Sprintf(format, a...)}, typesystem.Void)
}

func newErrorAt(line, column int, format string, a ...interface{}) *Binder {
	return NewBinder(&Error{
		Message: fmt.Sprintf(format, a...),
		Line:    line,
		Column:  column,
	}, typesystem.Void)
}

// newInternalError marks failures the static checker should have prevented.
func newInternalError(format string, a ...interface{}) *Binder {
	return NewBinder(&Error{
		Message:  fmt.Sprintf(format, a...),
		Internal: true,
	}, typesystem.Void)
}

func isError(b *Binder) bool {
	if b == nil || b.Value == nil {
		return false
	}
	_, ok := b.Value.(*Error)
	return ok
}

func errorOf(b *Binder) *Error {
	if b == nil {
		return nil
	}
	err, _ := b.Value.(*Error)
	return err
}

func isReturn(b *Binder) bool {
	if b == nil || b.Value == nil {
		return false
	}
	_, ok := b.Value.(*ReturnValue)
	return ok
}

func unwrapReturnValue(b *Binder) *Binder {
	if rv, ok := b.Value.(*ReturnValue); ok {
		return rv.Value
	}
	return b
}

func (e *Evaluator) isTruthy(b *Binder) (bool, bool) {
	if boolean, ok := b.Value.(*Boolean); ok {
		return boolean.Value, true
	}
	return false, false
}

func isVoid(b *Binder) bool {
	if b == nil || b.Value == nil {
		return true
	}
	_, ok := b.Value.(*Unit)
	return ok
}

// intValue extracts an int64 when the binder actually holds one.
func intValue(b *Binder) (int64, bool) {
	if i, ok := b.Value.(*Integer); ok {
		return i.Value, true
	}
	return 0, false
}

// isCallable reports whether the binder can stand at a call position.
func isCallable(b *Binder) bool {
	switch b.Value.(type) {
	case *Function, *Builtin:
		return true
	}
	return false
}

// dispatchKind resolves the kind that binary operators dispatch on: the
// boxed value decides, which matches actualRuntimeKind for well-typed
// programs and stays safe while a binder is still unset.
func dispatchKind(b *Binder) typesystem.Kind {
	if b == nil || b.Value == nil {
		return typesystem.VOID_KIND
	}
	return b.Value.Kind()
}

// isFunctionBinder mirrors the tracker's and dump renderer's skip rule.
func isFunctionBinder(b *Binder) bool {
	if b == nil || b.Value == nil {
		return false
	}
	return b.Value.Kind() == typesystem.FUNCTION_KIND
}

func (e *Evaluator) evalExpressions(exps []ast.Expression, env *Environment) ([]*Binder, *Binder) {
	result := make([]*Binder, 0, len(exps))
	for _, exp := range exps {
		evaluated := e.Eval(exp, env)
		if isError(evaluated) {
			return nil, evaluated
		}
		result = append(result, evaluated)
	}
	return result, nil
}
