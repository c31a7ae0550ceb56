package evaluator

import (
	"github.com/funvibe/refina/internal/ast"
	"github.com/funvibe/refina/internal/typesystem"
)

func (e *Evaluator) evalFunctionDeclaration(node *ast.FunctionDeclaration, env *Environment) *Binder {
	params := make([]typesystem.Type, len(node.Parameters))
	for i, p := range node.Parameters {
		t, errBinder := e.resolveAnnotation(p.TypeAnnotation)
		if errBinder != nil {
			return errBinder
		}
		params[i] = t
	}
	ret, errBinder := e.resolveAnnotation(node.ReturnType)
	if errBinder != nil {
		return errBinder
	}

	fn := &Function{
		Name:       node.Name,
		Parameters: node.Parameters,
		ReturnType: ret,
		Body:       node.Body,
		Env:        env, // shared chain: the name below stays visible for recursion
	}
	fnType := typesystem.TFunc{Params: params, Return: ret}
	if node.Name != BlankIdentifier {
		env.Define(node.Name, NewBinder(fn, fnType))
	}
	return voidBinder()
}

func (e *Evaluator) evalReturnStatement(node *ast.ReturnStatement, env *Environment) *Binder {
	value := voidBinder()
	if node.Value != nil {
		value = e.Eval(node.Value, env)
		if isError(value) {
			return value
		}
	}
	return NewBinder(&ReturnValue{Value: value}, typesystem.Void)
}

func (e *Evaluator) evalCallExpression(node *ast.CallExpression, env *Environment) *Binder {
	// @name(args) at a call position builds a first-class predicate value.
	if meta, ok := node.Callee.(*ast.MetaIdentifier); ok {
		args, errBinder := e.evalExpressions(node.Arguments, env)
		if errBinder != nil {
			return errBinder
		}
		return NewBinder(&PredicateValue{Name: meta.Name, Args: args}, typesystem.Predicate)
	}

	fn := e.Eval(node.Callee, env)
	if isError(fn) {
		return fn
	}
	args, errBinder := e.evalExpressions(node.Arguments, env)
	if errBinder != nil {
		return errBinder
	}
	return e.applyFunction(fn, args)
}

func (e *Evaluator) applyFunction(fn *Binder, args []*Binder) *Binder {
	switch callee := fn.Value.(type) {
	case *Builtin:
		return callee.Fn(e, args...)

	case *Function:
		if len(args) != len(callee.Parameters) {
			return newError("wrong number of arguments: expected %d, got %d", len(callee.Parameters), len(args))
		}
		extendedEnv := NewEnclosedEnvironment(callee.Env)
		for i, param := range callee.Parameters {
			if param.Name == BlankIdentifier {
				continue
			}
			paramType, errBinder := e.resolveAnnotation(param.TypeAnnotation)
			if errBinder != nil {
				return errBinder
			}
			// A fresh binder over the shared value: containers stay
			// aliased, rebinding the parameter stays local.
			extendedEnv.Define(param.Name, NewBinder(args[i].Value, paramType))
		}

		result := e.Eval(callee.Body, extendedEnv)
		if isError(result) {
			return result
		}
		if isReturn(result) {
			return unwrapReturnValue(result)
		}
		return voidBinder()
	}

	return newError("not a function: %s", fn.ActualKind())
}
