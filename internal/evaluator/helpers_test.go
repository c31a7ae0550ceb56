package evaluator

import (
	"strings"
	"testing"

	"github.com/funvibe/refina/internal/ast"
)

// AST construction shorthand for tests.

func intLit(v int64) *ast.IntegerLiteral     { return &ast.IntegerLiteral{Value: v} }
func floatLit(v float64) *ast.FloatLiteral   { return &ast.FloatLiteral{Value: v} }
func strLit(v string) *ast.StringLiteral     { return &ast.StringLiteral{Value: v} }
func boolLit(v bool) *ast.BooleanLiteral     { return &ast.BooleanLiteral{Value: v} }
func ident(name string) *ast.Identifier      { return &ast.Identifier{Name: name} }
func simpleType(name string) *ast.SimpleType { return &ast.SimpleType{Name: name} }

func arrayLit(elements ...ast.Expression) *ast.ArrayLiteral {
	return &ast.ArrayLiteral{Elements: elements}
}

func bin(op string, left, right ast.Expression) *ast.BinaryExpression {
	return &ast.BinaryExpression{Operator: op, Left: left, Right: right, Line: 1, Column: 1}
}

func unary(op string, operand ast.Expression) *ast.UnaryExpression {
	return &ast.UnaryExpression{Operator: op, Operand: operand}
}

func call(callee ast.Expression, args ...ast.Expression) *ast.CallExpression {
	return &ast.CallExpression{Callee: callee, Arguments: args}
}

func member(obj ast.Expression, prop string) *ast.MemberExpression {
	return &ast.MemberExpression{Object: obj, Property: ident(prop)}
}

func methodCall(obj ast.Expression, name string, args ...ast.Expression) *ast.CallExpression {
	return call(member(obj, name), args...)
}

func index(obj, idx ast.Expression) *ast.IndexExpression {
	return &ast.IndexExpression{Object: obj, Index: idx}
}

func declare(name, typeName string, init ast.Expression) *ast.VariableDeclaration {
	return &ast.VariableDeclaration{Declarations: []*ast.Declarator{
		{Name: name, TypeAnnotation: simpleType(typeName), Initializer: init},
	}}
}

func assign(target ast.Expression, value ast.Expression) *ast.AssignmentStatement {
	return &ast.AssignmentStatement{Target: target, Value: value}
}

func exprStmt(expr ast.Expression) *ast.ExpressionStatement {
	return &ast.ExpressionStatement{Expression: expr}
}

func block(stmts ...ast.Statement) *ast.BlockStatement {
	return &ast.BlockStatement{Statements: stmts}
}

func program(stmts ...ast.Statement) *ast.Program {
	return &ast.Program{Statements: stmts}
}

func predCheck(subject ast.Expression, name string, args ...ast.Expression) *ast.PredicateCheckExpression {
	return &ast.PredicateCheckExpression{Subject: subject, PredicateName: name, PredicateArgs: args}
}

// run evaluates a program in a fresh environment with builtins registered
// and returns the evaluator plus the final binder.
func run(t *testing.T, prog *ast.Program) (*Evaluator, *Binder) {
	t.Helper()
	e := New()
	e.Out = nil
	env := NewEnvironment()
	RegisterBuiltins(env)
	e.GlobalEnv = env
	return e, e.Eval(prog, env)
}

func wantInt(t *testing.T, b *Binder, expected int64) {
	t.Helper()
	if err := errorOf(b); err != nil {
		t.Fatalf("unexpected error: %s", err.Message)
	}
	v, ok := b.Value.(*Integer)
	if !ok {
		t.Fatalf("expected Integer, got %T (%s)", b.Value, b.Inspect())
	}
	if v.Value != expected {
		t.Errorf("expected %d, got %d", expected, v.Value)
	}
}

func wantFloat(t *testing.T, b *Binder, expected float64) {
	t.Helper()
	if err := errorOf(b); err != nil {
		t.Fatalf("unexpected error: %s", err.Message)
	}
	v, ok := b.Value.(*Float)
	if !ok {
		t.Fatalf("expected Float, got %T (%s)", b.Value, b.Inspect())
	}
	if v.Value != expected {
		t.Errorf("expected %g, got %g", expected, v.Value)
	}
}

func wantBool(t *testing.T, b *Binder, expected bool) {
	t.Helper()
	if err := errorOf(b); err != nil {
		t.Fatalf("unexpected error: %s", err.Message)
	}
	v, ok := b.Value.(*Boolean)
	if !ok {
		t.Fatalf("expected Boolean, got %T (%s)", b.Value, b.Inspect())
	}
	if v.Value != expected {
		t.Errorf("expected %t, got %t", expected, v.Value)
	}
}

func wantString(t *testing.T, b *Binder, expected string) {
	t.Helper()
	if err := errorOf(b); err != nil {
		t.Fatalf("unexpected error: %s", err.Message)
	}
	v, ok := b.Value.(*String)
	if !ok {
		t.Fatalf("expected String, got %T (%s)", b.Value, b.Inspect())
	}
	if v.Value != expected {
		t.Errorf("expected %q, got %q", expected, v.Value)
	}
}

func wantError(t *testing.T, b *Binder, contains string) {
	t.Helper()
	err := errorOf(b)
	if err == nil {
		t.Fatalf("expected error containing %q, got %s", contains, b.Inspect())
	}
	if contains != "" && !strings.Contains(err.Message, contains) {
		t.Errorf("expected error containing %q, got %q", contains, err.Message)
	}
}
