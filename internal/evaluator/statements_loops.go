package evaluator

import (
	"github.com/funvibe/refina/internal/ast"
)

// extractInvariants collects the @invariant statements at depth 0 of the
// loop body. Nested blocks, loops and functions keep their own invariants.
func extractInvariants(body *ast.BlockStatement) []*ast.InvariantStatement {
	var out []*ast.InvariantStatement
	for _, stmt := range body.Statements {
		if inv, ok := stmt.(*ast.InvariantStatement); ok {
			out = append(out, inv)
		}
	}
	return out
}

func (e *Evaluator) checkInvariants(invs []*ast.InvariantStatement, env *Environment) *Binder {
	for _, inv := range invs {
		cond := e.Eval(inv.Condition, env)
		if isError(cond) {
			return cond
		}
		truthy, ok := e.isTruthy(cond)
		if !ok {
			return newErrorAt(inv.Line, inv.Column, "invariant condition must be boolean, got %s", cond.ActualKind())
		}
		if truthy {
			continue
		}
		message := "invariant violated"
		if lit, ok := inv.Message.(*ast.StringLiteral); ok {
			message = lit.Value
		}
		errBinder := newErrorAt(inv.Line, inv.Column, "%s", message)
		err := errorOf(errBinder)
		err.IsInvariant = true
		err.Dump = e.RenderScope(env)
		return errBinder
	}
	return nil
}

// stepFn produces the environment for the next iteration, or done=true when
// the loop is over.
type stepFn func() (iterEnv *Environment, done bool, errBinder *Binder)

// runLoop drives every loop form through the same protocol: initial
// snapshot, invariant checks bracketing each body execution, a snapshot
// after each iteration, synthesis on normal exit. Early returns get one
// final invariant check before unwinding.
func (e *Evaluator) runLoop(env *Environment, body *ast.BlockStatement, next stepFn) *Binder {
	invs := extractInvariants(body)

	tracker := NewTracker(e.Log)
	e.trackers = append(e.trackers, tracker)
	defer func() { e.trackers = e.trackers[:len(e.trackers)-1] }()

	tracker.Record(env, 0)

	iteration := 0
	for {
		iterEnv, done, errBinder := next()
		if errBinder != nil {
			return errBinder
		}
		if done {
			break
		}

		if errBinder := e.checkInvariants(invs, iterEnv); errBinder != nil {
			return errBinder
		}

		result := e.Eval(body, iterEnv)
		if isError(result) {
			return result
		}
		if isReturn(result) {
			if errBinder := e.checkInvariants(invs, iterEnv); errBinder != nil {
				return errBinder
			}
			return result
		}

		iteration++
		tracker.Record(env, iteration)
		if errBinder := e.checkInvariants(invs, iterEnv); errBinder != nil {
			return errBinder
		}
	}

	tracker.SynthesizeAndAttach(e, env)
	return voidBinder()
}

func (e *Evaluator) evalWhileStatement(node *ast.WhileStatement, env *Environment) *Binder {
	return e.runLoop(env, node.Body, e.conditionStep(node.Condition, env, true))
}

func (e *Evaluator) evalUntilStatement(node *ast.UntilStatement, env *Environment) *Binder {
	return e.runLoop(env, node.Body, e.conditionStep(node.Condition, env, false))
}

func (e *Evaluator) conditionStep(cond ast.Expression, env *Environment, wanted bool) stepFn {
	return func() (*Environment, bool, *Binder) {
		result := e.Eval(cond, env)
		if isError(result) {
			return nil, false, result
		}
		truthy, ok := e.isTruthy(result)
		if !ok {
			return nil, false, newError("loop condition must be boolean, got %s", result.ActualKind())
		}
		if truthy != wanted {
			return nil, true, nil
		}
		return NewEnclosedEnvironment(env), false, nil
	}
}

func (e *Evaluator) evalForStatement(node *ast.ForStatement, env *Environment) *Binder {
	iterable := e.Eval(node.Iterable, env)
	if isError(iterable) {
		return iterable
	}

	bind := func(item *Binder) *Environment {
		iterEnv := NewEnclosedEnvironment(env)
		if node.Variable != BlankIdentifier {
			iterEnv.Define(node.Variable, NewBinder(item.Value, item.Type.Static))
		}
		return iterEnv
	}

	switch container := iterable.Value.(type) {
	case *Array:
		idx := 0
		return e.runLoop(env, node.Body, func() (*Environment, bool, *Binder) {
			if idx >= container.Len() {
				return nil, true, nil
			}
			item := container.Elements[idx]
			idx++
			return bind(item), false, nil
		})

	case *SetValue:
		items := container.ToArray()
		idx := 0
		return e.runLoop(env, node.Body, func() (*Environment, bool, *Binder) {
			if idx >= len(items) {
				return nil, true, nil
			}
			item := items[idx]
			idx++
			return bind(item), false, nil
		})

	case *MapValue:
		keys := container.Keys()
		idx := 0
		return e.runLoop(env, node.Body, func() (*Environment, bool, *Binder) {
			if idx >= len(keys) {
				return nil, true, nil
			}
			item := keys[idx]
			idx++
			return bind(item), false, nil
		})

	case *LazyRange:
		gen := container.Generate()
		return e.runLoop(env, node.Body, func() (*Environment, bool, *Binder) {
			v, ok := gen()
			if !ok {
				return nil, true, nil
			}
			return bind(intBinder(v)), false, nil
		})
	}
	return newError("for loop requires array, set, map or range, got %s", iterable.ActualKind())
}
