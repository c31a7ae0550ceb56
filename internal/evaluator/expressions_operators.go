package evaluator

import (
	"math"

	"github.com/funvibe/refina/internal/ast"
	"github.com/funvibe/refina/internal/typesystem"
)

func (e *Evaluator) evalUnaryExpression(node *ast.UnaryExpression, env *Environment) *Binder {
	operand := e.Eval(node.Operand, env)
	if isError(operand) {
		return operand
	}
	switch node.Operator {
	case "-":
		switch v := operand.Value.(type) {
		case *Integer:
			return intBinder(-v.Value)
		case *Float:
			return floatBinder(-v.Value)
		}
		return newError("operator - not supported for %s", operand.ActualKind())
	case "!":
		if b, ok := operand.Value.(*Boolean); ok {
			return boolBinder(!b.Value)
		}
		return newError("operator ! not supported for %s", operand.ActualKind())
	}
	return newError("unknown unary operator: %s", node.Operator)
}

func (e *Evaluator) evalBinaryExpression(node *ast.BinaryExpression, env *Environment) *Binder {
	// && and || short-circuit: the right operand only runs when needed.
	if node.Operator == "&&" || node.Operator == "||" {
		return e.evalLogicalExpression(node, env)
	}

	left := e.Eval(node.Left, env)
	if isError(left) {
		return left
	}
	right := e.Eval(node.Right, env)
	if isError(right) {
		return right
	}

	res := e.evalInfix(node.Operator, left, right)
	if err := errorOf(res); err != nil && err.Line == 0 {
		err.Line = node.Line
		err.Column = node.Column
	}
	return res
}

func (e *Evaluator) evalLogicalExpression(node *ast.BinaryExpression, env *Environment) *Binder {
	left := e.Eval(node.Left, env)
	if isError(left) {
		return left
	}
	lv, ok := left.Value.(*Boolean)
	if !ok {
		return newErrorAt(node.Line, node.Column, "operator %s requires boolean operands, got %s", node.Operator, left.ActualKind())
	}
	if node.Operator == "&&" && !lv.Value {
		return boolBinder(false)
	}
	if node.Operator == "||" && lv.Value {
		return boolBinder(true)
	}
	right := e.Eval(node.Right, env)
	if isError(right) {
		return right
	}
	rv, ok := right.Value.(*Boolean)
	if !ok {
		return newErrorAt(node.Line, node.Column, "operator %s requires boolean operands, got %s", node.Operator, right.ActualKind())
	}
	return boolBinder(rv.Value)
}

func (e *Evaluator) evalInfix(operator string, left, right *Binder) *Binder {
	lk, rk := dispatchKind(left), dispatchKind(right)

	switch operator {
	case "+":
		if lk == typesystem.STRING_KIND && rk == typesystem.STRING_KIND {
			return stringBinder(left.Value.(*String).Value + right.Value.(*String).Value)
		}
		fallthrough
	case "-", "*":
		if lk == typesystem.INT_KIND && rk == typesystem.INT_KIND {
			return intBinder(intArith(operator, left.Value.(*Integer).Value, right.Value.(*Integer).Value))
		}
		if isNumericKind(lk) && isNumericKind(rk) {
			return floatBinder(floatArith(operator, numericOf(left), numericOf(right)))
		}
		return newError("operator %s not supported for %s and %s", operator, lk, rk)

	case "/":
		if lk != typesystem.INT_KIND || rk != typesystem.INT_KIND {
			return newError("operator / requires int operands, got %s and %s", lk, rk)
		}
		divisor := right.Value.(*Integer).Value
		if divisor == 0 {
			return newError("division by zero")
		}
		return intBinder(floorDiv(left.Value.(*Integer).Value, divisor))

	case "/.":
		if !isNumericKind(lk) || !isNumericKind(rk) {
			return newError("operator /. requires numeric operands, got %s and %s", lk, rk)
		}
		return floatBinder(numericOf(left) / numericOf(right))

	case "%":
		if lk == typesystem.INT_KIND && rk == typesystem.INT_KIND {
			divisor := right.Value.(*Integer).Value
			if divisor == 0 {
				return newError("modulo by zero")
			}
			return intBinder(left.Value.(*Integer).Value % divisor)
		}
		if isNumericKind(lk) && isNumericKind(rk) {
			return floatBinder(math.Mod(numericOf(left), numericOf(right)))
		}
		return newError("operator %% not supported for %s and %s", lk, rk)

	case "<<", ">>":
		if lk != typesystem.INT_KIND || rk != typesystem.INT_KIND {
			return newError("operator %s requires int operands, got %s and %s", operator, lk, rk)
		}
		lv, rv := left.Value.(*Integer).Value, right.Value.(*Integer).Value
		if operator == "<<" {
			return intBinder(lv << uint64(rv))
		}
		return intBinder(lv >> uint64(rv))

	case "<", "<=", ">", ">=":
		if !isNumericKind(lk) || !isNumericKind(rk) {
			return newError("operator %s requires numeric operands, got %s and %s", operator, lk, rk)
		}
		lv, rv := numericOf(left), numericOf(right)
		switch operator {
		case "<":
			return boolBinder(lv < rv)
		case "<=":
			return boolBinder(lv <= rv)
		case ">":
			return boolBinder(lv > rv)
		default:
			return boolBinder(lv >= rv)
		}

	case "==", "!=":
		eq, errBinder := e.binderEquality(left, right)
		if errBinder != nil {
			return errBinder
		}
		if operator == "!=" {
			eq = !eq
		}
		return boolBinder(eq)
	}

	return newError("unknown operator: %s", operator)
}

// binderEquality compares by actual runtime kind: primitives by value,
// void against void is true, every other pairing is unsupported.
func (e *Evaluator) binderEquality(left, right *Binder) (bool, *Binder) {
	lk, rk := dispatchKind(left), dispatchKind(right)

	if isNumericKind(lk) && isNumericKind(rk) {
		return numericOf(left) == numericOf(right), nil
	}
	if lk != rk {
		return false, newError("cannot compare %s with %s", lk, rk)
	}
	switch lk {
	case typesystem.STRING_KIND:
		return left.Value.(*String).Value == right.Value.(*String).Value, nil
	case typesystem.BOOLEAN_KIND:
		return left.Value.(*Boolean).Value == right.Value.(*Boolean).Value, nil
	case typesystem.VOID_KIND:
		return true, nil
	}
	return false, newError("equality is not supported for %s values", lk)
}

func intArith(operator string, a, b int64) int64 {
	switch operator {
	case "+":
		return a + b
	case "-":
		return a - b
	default:
		return a * b
	}
}

func floatArith(operator string, a, b float64) float64 {
	switch operator {
	case "+":
		return a + b
	case "-":
		return a - b
	default:
		return a * b
	}
}

// floorDiv rounds toward negative infinity, matching the language's integer
// division.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
