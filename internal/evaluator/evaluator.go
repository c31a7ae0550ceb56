package evaluator

import (
	"io"
	"os"

	"github.com/go-logr/logr"

	"github.com/funvibe/refina/internal/ast"
	"github.com/funvibe/refina/internal/config"
	"github.com/funvibe/refina/internal/typesystem"
)

// Evaluator walks the AST depth-first over typed binders. It owns the output
// buffer, the engine limits and the stack of active loop trackers.
type Evaluator struct {
	// Out mirrors print output; the ordered Output slice is the canonical
	// result of a run.
	Out io.Writer
	// Log receives engine-internal tracing; hosts inject their sink.
	Log     logr.Logger
	Options config.Options
	// Output is the ordered list of print results.
	Output []string
	// GlobalEnv is the outermost frame; it outlives the program.
	GlobalEnv *Environment

	// trackers is the stack of active loop trackers, innermost last.
	trackers  []*Tracker
	evalDepth int
}

func New() *Evaluator {
	return &Evaluator{
		Out:     os.Stdout,
		Log:     logr.Discard(),
		Options: config.Default(),
	}
}

// Eval dispatches on the node type. Every evaluation returns a binder;
// errors and returns travel as distinguished binder values.
func (e *Evaluator) Eval(node ast.Node, env *Environment) *Binder {
	e.evalDepth++
	if e.evalDepth > e.Options.MaxEvalDepth {
		e.evalDepth--
		return newError("maximum recursion depth exceeded")
	}
	defer func() { e.evalDepth-- }()

	return e.evalCore(node, env)
}

func (e *Evaluator) evalCore(node ast.Node, env *Environment) *Binder {
	switch node := node.(type) {
	// Statements
	case *ast.Program:
		return e.evalProgram(node, env)
	case *ast.ExpressionStatement:
		return e.Eval(node.Expression, env)
	case *ast.BlockStatement:
		return e.evalBlockStatement(node, env)
	case *ast.VariableDeclaration:
		return e.evalVariableDeclaration(node, env)
	case *ast.AssignmentStatement:
		return e.evalAssignmentStatement(node, env)
	case *ast.FunctionDeclaration:
		return e.evalFunctionDeclaration(node, env)
	case *ast.ReturnStatement:
		return e.evalReturnStatement(node, env)
	case *ast.IfStatement:
		return e.evalIfStatement(node, env)
	case *ast.WhileStatement:
		return e.evalWhileStatement(node, env)
	case *ast.UntilStatement:
		return e.evalUntilStatement(node, env)
	case *ast.ForStatement:
		return e.evalForStatement(node, env)
	case *ast.AssertStatement:
		return e.evalAssertStatement(node, env)
	case *ast.InvariantStatement:
		// Outside a loop an invariant statement has no step to guard;
		// the loop driver evaluates the ones it extracted.
		return voidBinder()

	// Expressions
	case *ast.IntegerLiteral:
		return intBinder(node.Value)
	case *ast.FloatLiteral:
		return floatBinder(node.Value)
	case *ast.StringLiteral:
		return stringBinder(node.Value)
	case *ast.BooleanLiteral:
		return boolBinder(node.Value)
	case *ast.ArrayLiteral:
		return e.evalArrayLiteral(node, env)
	case *ast.Identifier:
		return e.evalIdentifier(node, env)
	case *ast.MetaIdentifier:
		// A bare predicate name is a zero-argument predicate value.
		return NewBinder(&PredicateValue{Name: node.Name}, typesystem.Predicate)
	case *ast.UnaryExpression:
		return e.evalUnaryExpression(node, env)
	case *ast.BinaryExpression:
		return e.evalBinaryExpression(node, env)
	case *ast.CallExpression:
		return e.evalCallExpression(node, env)
	case *ast.MemberExpression:
		return e.evalMemberExpression(node, env)
	case *ast.IndexExpression:
		return e.evalIndexExpression(node, env)
	case *ast.RangeExpression:
		return e.evalRangeExpression(node, env)
	case *ast.PredicateCheckExpression:
		return e.evalPredicateCheckExpression(node, env)
	case *ast.TypeOfExpression:
		return e.evalTypeOfExpression(node, env)
	}

	return newInternalError("unhandled AST node %T", node)
}

func (e *Evaluator) evalProgram(program *ast.Program, env *Environment) *Binder {
	var result *Binder = voidBinder()
	for _, stmt := range program.Statements {
		result = e.Eval(stmt, env)
		if isError(result) {
			return result
		}
		if isReturn(result) {
			return newError("return outside of a function")
		}
	}
	return result
}

func (e *Evaluator) evalBlockStatement(block *ast.BlockStatement, env *Environment) *Binder {
	var result *Binder = voidBinder()
	for _, stmt := range block.Statements {
		result = e.Eval(stmt, env)
		if isError(result) || isReturn(result) {
			return result
		}
	}
	return result
}

func (e *Evaluator) evalIdentifier(node *ast.Identifier, env *Environment) *Binder {
	if node.Name == BlankIdentifier {
		return newError("_ is not a value")
	}
	if val, ok := env.Get(node.Name); ok {
		return val
	}
	return newError("identifier not found: %s", node.Name)
}

func (e *Evaluator) evalTypeOfExpression(node *ast.TypeOfExpression, env *Environment) *Binder {
	operand := e.Eval(node.Operand, env)
	if isError(operand) {
		return operand
	}
	return stringBinder(string(operand.ActualKind()))
}

func (e *Evaluator) evalArrayLiteral(node *ast.ArrayLiteral, env *Environment) *Binder {
	elements, errBinder := e.evalExpressions(node.Elements, env)
	if errBinder != nil {
		return errBinder
	}
	arr := NewArray(elements)
	return NewBinder(arr, typesystem.TArray{Elem: arr.ElemType})
}
