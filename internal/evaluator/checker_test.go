package evaluator

import (
	"testing"

	"github.com/funvibe/refina/internal/ast"
)

// buildGraph wires a directed graph with int vertices and int weights.
func buildGraph(edges [][3]int64) *Graph {
	g := NewGraph(true)
	for _, e := range edges {
		g.AddEdge(intBinder(e[0]), intBinder(e[1]), float64(e[2]))
	}
	return g
}

func checkDirect(t *testing.T, e *Evaluator, p *Predicate, subject *Binder) bool {
	t.Helper()
	held, errBinder := e.checkPredicate(p, []*VariableSnapshot{snapshotOf(subject, 0)})
	if errBinder != nil {
		t.Fatalf("unexpected error: %s", errorOf(errBinder).Message)
	}
	return held
}

func TestNumericPredicates(t *testing.T) {
	e := New()
	tests := []struct {
		name     string
		pred     *Predicate
		value    *Binder
		expected bool
	}{
		{"int_range inside", &Predicate{Kind: PRED_INT_RANGE, Min: 0, Max: 10}, intBinder(5), true},
		{"int_range outside", &Predicate{Kind: PRED_INT_RANGE, Min: 0, Max: 10}, intBinder(11), false},
		{"positive strict on zero", &Predicate{Kind: PRED_POSITIVE, Strict: true}, intBinder(0), false},
		{"positive non-strict on zero", &Predicate{Kind: PRED_POSITIVE}, intBinder(0), true},
		{"negative strict", &Predicate{Kind: PRED_NEGATIVE, Strict: true}, intBinder(-3), true},
		{"greater_than", &Predicate{Kind: PRED_GREATER_THAN, Threshold: 2}, floatBinder(2.5), true},
		{"greater_equal_than", &Predicate{Kind: PRED_GREATER_EQUAL, Threshold: 2.5}, floatBinder(2.5), true},
		{"divisible_by", &Predicate{Kind: PRED_DIVISIBLE_BY, Divisor: 5}, intBinder(20), true},
		{"parity even", &Predicate{Kind: PRED_PARITY, Parity: "even"}, intBinder(4), true},
		{"parity odd", &Predicate{Kind: PRED_PARITY, Parity: "odd"}, intBinder(4), false},
		{"numeric predicate on string", &Predicate{Kind: PRED_POSITIVE}, stringBinder("x"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checkDirect(t, e, tt.pred, tt.value); got != tt.expected {
				t.Errorf("expected %t, got %t", tt.expected, got)
			}
		})
	}
}

func TestArrayStructurePredicates(t *testing.T) {
	e := New()
	sortedArr := NewBinder(NewArray([]*Binder{intBinder(1), intBinder(2), intBinder(2), intBinder(3)}), nil)
	strictArr := NewBinder(NewArray([]*Binder{intBinder(1), intBinder(2), intBinder(3)}), nil)
	descArr := NewBinder(NewArray([]*Binder{intBinder(3), intBinder(2), intBinder(1)}), nil)
	mixedArr := NewBinder(NewArray([]*Binder{intBinder(2), intBinder(1), intBinder(3)}), nil)

	asc := &Predicate{Kind: PRED_SORTED, Direction: "asc"}
	desc := &Predicate{Kind: PRED_SORTED, Direction: "desc"}
	unique := &Predicate{Kind: PRED_UNIQUE}

	if !checkDirect(t, e, asc, sortedArr) {
		t.Error("non-strictly ascending array must satisfy sorted(asc)")
	}
	if checkDirect(t, e, asc, mixedArr) {
		t.Error("unsorted array must not satisfy sorted(asc)")
	}
	if !checkDirect(t, e, desc, descArr) {
		t.Error("descending array must satisfy sorted(desc)")
	}
	if checkDirect(t, e, unique, sortedArr) {
		t.Error("array with a duplicate must not satisfy unique_elements")
	}

	// sorted(asc) + unique_elements iff strictly ascending.
	if !(checkDirect(t, e, asc, strictArr) && checkDirect(t, e, unique, strictArr)) {
		t.Error("strictly ascending array must satisfy both sorted(asc) and unique_elements")
	}
}

func TestPermutationPredicate(t *testing.T) {
	e := New()
	original := NewArray([]*Binder{intBinder(3), intBinder(1), intBinder(2), intBinder(1)})
	perm := NewBinder(NewArray([]*Binder{intBinder(1), intBinder(1), intBinder(2), intBinder(3)}), nil)
	notPerm := NewBinder(NewArray([]*Binder{intBinder(1), intBinder(2), intBinder(2), intBinder(3)}), nil)
	shorter := NewBinder(NewArray([]*Binder{intBinder(1)}), nil)

	p := &Predicate{Kind: PRED_PERMUTATION, Original: original}
	if !checkDirect(t, e, p, perm) {
		t.Error("multiset-equal array must be a permutation")
	}
	if checkDirect(t, e, p, notPerm) {
		t.Error("different multiset must not be a permutation")
	}
	if checkDirect(t, e, p, shorter) {
		t.Error("different length must not be a permutation")
	}
}

func TestMetaPredicates(t *testing.T) {
	e := New()
	arr := NewBinder(NewArray([]*Binder{intBinder(5), intBinder(6), intBinder(-1)}), nil)

	positive := &Predicate{Kind: PRED_POSITIVE, Strict: true}
	if !checkDirect(t, e, &Predicate{Kind: PRED_RANGE_SATISFIES, From: 0, To: 2, Inner: positive}, arr) {
		t.Error("first two elements are positive")
	}
	if checkDirect(t, e, &Predicate{Kind: PRED_RANGE_SATISFIES, From: 0, To: 3, Inner: positive}, arr) {
		t.Error("the third element breaks positivity")
	}
	if checkDirect(t, e, &Predicate{Kind: PRED_ALL_ELEMENTS, Inner: positive}, arr) {
		t.Error("all_elements_satisfy must fail on the negative element")
	}
	if !checkDirect(t, e, &Predicate{Kind: PRED_NOT, Inner: &Predicate{Kind: PRED_NEGATIVE, Strict: true}}, intBinder(4)) {
		t.Error("not(negative) must hold for 4")
	}

	// Invalid indices raise.
	_, errBinder := e.checkPredicate(
		&Predicate{Kind: PRED_RANGE_SATISFIES, From: 1, To: 9, Inner: positive},
		[]*VariableSnapshot{snapshotOf(arr, 0)},
	)
	if errBinder == nil {
		t.Error("out-of-bounds range_satisfies must raise")
	}

	// A temporal inner predicate cannot be reduced inside one snapshot
	// and is skipped.
	temporal := &Predicate{Kind: PRED_MONOTONIC, Direction: "increasing"}
	if !checkDirect(t, e, &Predicate{Kind: PRED_ALL_ELEMENTS, Inner: temporal}, arr) {
		t.Error("temporal inner predicates must be skipped, not falsified")
	}
}

func TestGraphNegativeCycleScenario(t *testing.T) {
	e := New()
	pred := &Predicate{Kind: PRED_NO_NEG_CYCLES}

	withCycle := NewBinder(buildGraph([][3]int64{{1, 2, 5}, {2, 3, 3}, {3, 1, -10}}), nil)
	if checkDirect(t, e, pred, withCycle) {
		t.Error("cycle 1→2→3→1 with total -2 must be detected")
	}

	withoutCycle := NewBinder(buildGraph([][3]int64{{1, 2, 5}, {2, 3, 3}, {3, 1, 10}}), nil)
	if !checkDirect(t, e, pred, withoutCycle) {
		t.Error("positive total cycle must pass")
	}
}

func TestGraphWeightsPredicate(t *testing.T) {
	e := New()
	pred := &Predicate{Kind: PRED_WEIGHTS_NON_NEG}

	ok := NewBinder(buildGraph([][3]int64{{1, 2, 0}, {2, 3, 7}}), nil)
	if !checkDirect(t, e, pred, ok) {
		t.Error("all weights are non-negative")
	}
	bad := NewBinder(buildGraph([][3]int64{{1, 2, 0}, {2, 3, -7}}), nil)
	if checkDirect(t, e, pred, bad) {
		t.Error("a negative weight must fail")
	}

	// Dispatching a graph predicate on a non-graph raises.
	_, errBinder := e.checkPredicate(pred, []*VariableSnapshot{snapshotOf(intBinder(1), 0)})
	if errBinder == nil {
		t.Error("graph predicate on a non-graph must raise")
	}
}

// distanceMap builds {u: {v: d, ...}, ...} over int vertices.
func distanceMap(rows map[int64]map[int64]int64, order []int64) *MapValue {
	outer := NewMap()
	for _, u := range order {
		inner := NewMap()
		row := rows[u]
		for _, v := range order {
			if d, ok := row[v]; ok {
				inner.Set(intBinder(v), intBinder(d))
			}
		}
		outer.Set(intBinder(u), NewBinder(inner, nil))
	}
	return outer
}

func TestDistanceMapPredicates(t *testing.T) {
	e := New()
	order := []int64{1, 2, 3}
	good := distanceMap(map[int64]map[int64]int64{
		1: {1: 0, 2: 5, 3: 7},
		2: {1: 5, 2: 0, 3: 3},
		3: {1: 7, 2: 3, 3: 0},
	}, order)

	selfZero := &Predicate{Kind: PRED_DIST_SELF_ZERO}
	triangle := &Predicate{Kind: PRED_TRIANGLE}

	goodBinder := NewBinder(good, nil)
	if !checkDirect(t, e, selfZero, goodBinder) {
		t.Error("diagonal is zero")
	}
	if !checkDirect(t, e, triangle, goodBinder) {
		t.Error("metric matrix must satisfy the triangle inequality")
	}

	// Flip d[1][3] to 100: 100 > d[1][2] + d[2][3] = 8.
	broken := distanceMap(map[int64]map[int64]int64{
		1: {1: 0, 2: 5, 3: 100},
		2: {1: 5, 2: 0, 3: 3},
		3: {1: 7, 2: 3, 3: 0},
	}, order)
	if checkDirect(t, e, triangle, NewBinder(broken, nil)) {
		t.Error("inflated entry must break the triangle inequality")
	}

	nonZeroDiag := distanceMap(map[int64]map[int64]int64{
		1: {1: 2},
	}, []int64{1})
	if checkDirect(t, e, selfZero, NewBinder(nonZeroDiag, nil)) {
		t.Error("non-zero diagonal entry must fail")
	}

	// Rows that are not maps are skipped silently.
	flat := NewMap()
	flat.Set(intBinder(1), intBinder(9))
	if !checkDirect(t, e, selfZero, NewBinder(flat, nil)) {
		t.Error("non-map rows are skipped")
	}
}

func TestSetPredicates(t *testing.T) {
	e := New()
	mkSet := func(vals ...int64) *SetValue {
		s := NewSet()
		for _, v := range vals {
			s.Add(intBinder(v))
		}
		return s
	}

	s12 := NewBinder(mkSet(1, 2), nil)
	s123 := mkSet(1, 2, 3)
	s124 := NewBinder(mkSet(1, 2, 4), nil)
	s34 := mkSet(3, 4)

	subset := &Predicate{Kind: PRED_SUBSET_OF, Other: s123}
	if !checkDirect(t, e, subset, s12) {
		t.Error("{1,2} is a subset of {1,2,3}")
	}
	if checkDirect(t, e, subset, s124) {
		t.Error("{1,2,4} is not a subset of {1,2,3}")
	}

	disjoint := &Predicate{Kind: PRED_DISJOINT, Other: s34}
	if !checkDirect(t, e, disjoint, s12) {
		t.Error("{1,2} is disjoint from {3,4}")
	}
	if checkDirect(t, e, &Predicate{Kind: PRED_DISJOINT, Other: s123}, s12) {
		t.Error("{1,2} overlaps {1,2,3}")
	}
}

func TestPredicateCheckExpression(t *testing.T) {
	// s1 |- @subset_of(s2) through the evaluator surface.
	_, result := run(t, program(
		declare("s1", "dynamic", call(ident("Set"))),
		declare("s2", "dynamic", call(ident("Set"))),
		exprStmt(methodCall(ident("s1"), "add", intLit(1))),
		exprStmt(methodCall(ident("s1"), "add", intLit(2))),
		exprStmt(methodCall(ident("s2"), "add", intLit(1))),
		exprStmt(methodCall(ident("s2"), "add", intLit(2))),
		exprStmt(methodCall(ident("s2"), "add", intLit(3))),
		exprStmt(predCheck(ident("s1"), "subset_of", ident("s2"))),
	))
	wantBool(t, result, true)

	_, result = run(t, program(
		declare("x", "int", intLit(7)),
		exprStmt(predCheck(ident("x"), "int_range", intLit(0), intLit(10))),
	))
	wantBool(t, result, true)

	_, result = run(t, program(
		exprStmt(predCheck(intLit(7), "unknown_pred")),
	))
	wantError(t, result, "unknown predicate")
}

func TestPredicateCheckUsesLoopHistory(t *testing.T) {
	// Inside the loop, i |- @monotonic(increasing, strict) consults the
	// tracker history rather than a singleton snapshot.
	_, result := run(t, program(
		declare("i", "int", intLit(0)),
		declare("wasMonotonic", "boolean", boolLit(false)),
		whileLoop(bin("<", ident("i"), intLit(3)),
			assign(ident("i"), bin("+", ident("i"), intLit(1))),
			assign(ident("wasMonotonic"), predCheck(ident("i"), "monotonic", strLit("increasing"), boolLit(true))),
		),
		exprStmt(ident("wasMonotonic")),
	))
	wantBool(t, result, true)
}

func TestFirstClassPredicateValues(t *testing.T) {
	// not(@positive(true)) applied through a predicate-typed argument.
	_, result := run(t, program(
		exprStmt(predCheck(intLit(-5), "not", call(&ast.MetaIdentifier{Name: "positive"}, boolLit(true)))),
	))
	wantBool(t, result, true)

	// The same meta form with a bare name string.
	_, result = run(t, program(
		exprStmt(predCheck(intLit(-5), "not", strLit("non_empty"))),
	))
	wantBool(t, result, true)
}
