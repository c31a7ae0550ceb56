package evaluator

import (
	"github.com/funvibe/refina/internal/ast"
	"github.com/funvibe/refina/internal/typesystem"
)

func (e *Evaluator) evalVariableDeclaration(node *ast.VariableDeclaration, env *Environment) *Binder {
	for _, decl := range node.Declarations {
		static, errBinder := e.resolveAnnotation(decl.TypeAnnotation)
		if errBinder != nil {
			return errBinder
		}

		var value Value = UNIT
		if decl.Initializer != nil {
			init := e.Eval(decl.Initializer, env)
			if isError(init) {
				return init
			}
			value = init.Value
		}
		if decl.Name == BlankIdentifier {
			continue
		}
		env.Define(decl.Name, NewBinder(value, static))
	}
	return voidBinder()
}

func (e *Evaluator) evalAssignmentStatement(node *ast.AssignmentStatement, env *Environment) *Binder {
	value := e.Eval(node.Value, env)
	if isError(value) {
		return value
	}

	switch target := node.Target.(type) {
	case *ast.Identifier:
		return e.assignIdentifier(target.Name, value, env)
	case *ast.IndexExpression:
		return e.assignIndex(target, value, env)
	case *ast.MemberExpression:
		return e.assignMember(target, value, env)
	}
	return newError("invalid assignment target %T", node.Target)
}

// assignIdentifier rebinds the nearest frame's binder in place: the binder
// keeps its static type and refinement history, only the value changes.
func (e *Evaluator) assignIdentifier(name string, value *Binder, env *Environment) *Binder {
	if name == BlankIdentifier {
		return newError("cannot assign to _")
	}
	binder, ok := env.Get(name)
	if !ok {
		return newError("cannot assign to undeclared variable: %s", name)
	}
	binder.Value = value.Value
	return voidBinder()
}

func (e *Evaluator) assignIndex(target *ast.IndexExpression, value *Binder, env *Environment) *Binder {
	obj := e.Eval(target.Object, env)
	if isError(obj) {
		return obj
	}
	index := e.Eval(target.Index, env)
	if isError(index) {
		return index
	}

	switch container := obj.Value.(type) {
	case *Array:
		i, ok := intValue(index)
		if !ok {
			return newError("array index must be int, got %s", index.ActualKind())
		}
		if !container.Set(int(i), value) {
			return newError("array index %d out of bounds for length %d", i, container.Len())
		}
		return voidBinder()

	case *MapValue:
		container.Set(index, value)
		return voidBinder()

	case *Tuple:
		i, ok := intValue(index)
		if !ok {
			return newError("tuple index must be int, got %s", index.ActualKind())
		}
		if i < 0 || int(i) >= len(container.Elements) {
			return newError("tuple index %d out of bounds for arity %d", i, len(container.Elements))
		}
		container.Elements[int(i)] = value
		return voidBinder()
	}
	return newError("cannot index-assign into %s", obj.ActualKind())
}

func (e *Evaluator) assignMember(target *ast.MemberExpression, value *Binder, env *Environment) *Binder {
	obj := e.Eval(target.Object, env)
	if isError(obj) {
		return obj
	}
	m, ok := obj.Value.(*MapValue)
	if !ok {
		return newError("property assignment requires a map, got %s", obj.ActualKind())
	}
	m.Set(stringBinder(target.Property.Name), value)
	return voidBinder()
}

func (e *Evaluator) evalIfStatement(node *ast.IfStatement, env *Environment) *Binder {
	cond := e.Eval(node.Condition, env)
	if isError(cond) {
		return cond
	}
	truthy, ok := e.isTruthy(cond)
	if !ok {
		return newError("if condition must be boolean, got %s", cond.ActualKind())
	}
	if truthy {
		return e.Eval(node.ThenBranch, NewEnclosedEnvironment(env))
	}
	if node.ElseBranch != nil {
		return e.Eval(node.ElseBranch, NewEnclosedEnvironment(env))
	}
	return voidBinder()
}

func (e *Evaluator) evalAssertStatement(node *ast.AssertStatement, env *Environment) *Binder {
	cond := e.Eval(node.Condition, env)
	if isError(cond) {
		return cond
	}
	truthy, ok := e.isTruthy(cond)
	if !ok {
		return newErrorAt(node.Line, node.Column, "assert condition must be boolean, got %s", cond.ActualKind())
	}
	if truthy {
		return voidBinder()
	}
	message := "assertion failed"
	if lit, ok := node.Message.(*ast.StringLiteral); ok {
		message = lit.Value
	}
	return NewBinder(&Error{
		Message:     message,
		Line:        node.Line,
		Column:      node.Column,
		Dump:        e.RenderScope(env),
		IsInvariant: true,
	}, typesystem.Void)
}
