package evaluator

import (
	"testing"

	"github.com/funvibe/refina/internal/ast"
	"github.com/funvibe/refina/internal/typesystem"
)

func refinementStrings(b *Binder) []string {
	out := make([]string, len(b.Type.Refinements))
	for i, p := range b.Type.Refinements {
		out[i] = p.String()
	}
	return out
}

func hasRefinement(b *Binder, rendered string) bool {
	for _, s := range refinementStrings(b) {
		if s == rendered {
			return true
		}
	}
	return false
}

func TestSnapshotCountsPerLoop(t *testing.T) {
	tracker := NewTracker(New().Log)
	env := NewEnvironment()
	env.Define("x", intBinder(1))

	iterations := 4
	tracker.Record(env, 0)
	for i := 1; i <= iterations; i++ {
		tracker.Record(env, i)
	}
	if got := len(tracker.History("x")); got != iterations+1 {
		t.Errorf("expected %d snapshots, got %d", iterations+1, got)
	}
}

func TestSnapshotCachesScalarViews(t *testing.T) {
	env := NewEnvironment()
	arr := NewArray([]*Binder{intBinder(1)})
	env.Define("arr", NewBinder(arr, typesystem.TArray{Elem: arr.ElemType}))

	tracker := NewTracker(New().Log)
	tracker.Record(env, 0)
	arr.Push(intBinder(2))
	arr.Push(intBinder(3))
	tracker.Record(env, 1)

	history := tracker.History("arr")
	if *history[0].ArrayLen != 1 {
		t.Errorf("first snapshot must keep the length at record time, got %d", *history[0].ArrayLen)
	}
	if *history[1].ArrayLen != 3 {
		t.Errorf("second snapshot length: expected 3, got %d", *history[1].ArrayLen)
	}
}

func TestTrackerSkipsBlankAndFunctions(t *testing.T) {
	env := NewEnvironment()
	RegisterBuiltins(env)
	env.Define("x", intBinder(1))

	tracker := NewTracker(New().Log)
	tracker.Record(env, 0)
	if len(tracker.History("print")) != 0 {
		t.Error("function bindings must not be tracked")
	}
	if len(tracker.History(BlankIdentifier)) != 0 {
		t.Error("the blank identifier must not be tracked")
	}
	if len(tracker.History("x")) != 1 {
		t.Error("value bindings must be tracked")
	}
}

func TestHoudiniKeepsOnlyUnfalsifiedCandidates(t *testing.T) {
	// i runs 0..4: positive (non-strict) survives, strict does not;
	// monotonic increasing strict survives.
	_, result := run(t, program(
		declare("i", "int", intLit(0)),
		whileLoop(bin("<", ident("i"), intLit(4)),
			assign(ident("i"), bin("+", ident("i"), intLit(1))),
		),
		exprStmt(ident("i")),
	))
	if err := errorOf(result); err != nil {
		t.Fatalf("unexpected error: %s", err.Message)
	}

	if !hasRefinement(result, "int_range(0, 4)") {
		t.Errorf("expected int_range(0, 4), got %v", refinementStrings(result))
	}
	if !hasRefinement(result, "positive") {
		t.Errorf("expected non-strict positive, got %v", refinementStrings(result))
	}
	if hasRefinement(result, "positive(strict)") {
		t.Error("strict positive must be falsified by the initial 0")
	}
	if !hasRefinement(result, "monotonic(increasing, strict)") {
		t.Errorf("expected strict increasing monotonic, got %v", refinementStrings(result))
	}
	if hasRefinement(result, "monotonic(decreasing, non-strict)") {
		t.Error("decreasing monotonic must be falsified")
	}
}

func TestFrozenConstantSynthesis(t *testing.T) {
	// let k = 42; let i = 0; while i < 5 { i = i + 1 }
	e, result := run(t, program(
		declare("k", "int", intLit(42)),
		declare("i", "int", intLit(0)),
		whileLoop(bin("<", ident("i"), intLit(5)),
			assign(ident("i"), bin("+", ident("i"), intLit(1))),
		),
	))
	if err := errorOf(result); err != nil {
		t.Fatalf("unexpected error: %s", err.Message)
	}

	k, _ := e.GlobalEnv.Get("k")
	if !hasRefinement(k, "int_range(42, 42)") {
		t.Errorf("expected int_range(42, 42) on k, got %v", refinementStrings(k))
	}
	if !hasRefinement(k, "monotonic(increasing, non-strict)") {
		t.Errorf("expected non-strict monotonic on the frozen k, got %v", refinementStrings(k))
	}
	if !hasRefinement(k, "divisible_by(2)") {
		t.Errorf("expected divisible_by(2) on k=42, got %v", refinementStrings(k))
	}

	i, _ := e.GlobalEnv.Get("i")
	if !hasRefinement(i, "monotonic(increasing, strict)") {
		t.Errorf("expected strict increasing monotonic on i, got %v", refinementStrings(i))
	}
}

func TestInsertionSortScenario(t *testing.T) {
	// let arr = [5,2,4,6,1,3]; let i = 1;
	// while i < arr.length() {
	//   let key = arr[i]; let j = i - 1;
	//   while j >= 0 && arr[j] > key { arr[j+1] = arr[j]; j = j - 1 }
	//   arr[j+1] = key; i = i + 1
	// }
	prog := program(
		declare("arr", "dynamic", arrayLit(intLit(5), intLit(2), intLit(4), intLit(6), intLit(1), intLit(3))),
		declare("i", "int", intLit(1)),
		whileLoop(bin("<", ident("i"), methodCall(ident("arr"), "length")),
			declare("key", "int", index(ident("arr"), ident("i"))),
			declare("j", "int", bin("-", ident("i"), intLit(1))),
			whileLoop(bin("&&",
				bin(">=", ident("j"), intLit(0)),
				bin(">", index(ident("arr"), ident("j")), ident("key")),
			),
				assign(index(ident("arr"), bin("+", ident("j"), intLit(1))), index(ident("arr"), ident("j"))),
				assign(ident("j"), bin("-", ident("j"), intLit(1))),
			),
			assign(index(ident("arr"), bin("+", ident("j"), intLit(1))), ident("key")),
			assign(ident("i"), bin("+", ident("i"), intLit(1))),
		),
		exprStmt(methodCall(ident("arr"), "toString")),
	)
	e, result := run(t, prog)
	wantString(t, result, "[1, 2, 3, 4, 5, 6]")

	arr, _ := e.GlobalEnv.Get("arr")
	if !hasRefinement(arr, "sorted(asc)") {
		t.Errorf("expected sorted(asc) on arr, got %v", refinementStrings(arr))
	}
	i, _ := e.GlobalEnv.Get("i")
	if !hasRefinement(i, "monotonic(increasing, strict)") {
		t.Errorf("expected strict increasing monotonic on i, got %v", refinementStrings(i))
	}
}

func TestRefinementsGrowMonotonically(t *testing.T) {
	// Two sequential loops: the second must extend, never reset, the
	// refinement list.
	loop := func() ast.Statement {
		return whileLoop(bin("<", ident("i"), intLit(3)),
			assign(ident("i"), bin("+", ident("i"), intLit(1))),
		)
	}
	e, result := run(t, program(
		declare("i", "int", intLit(0)),
		loop(),
		assign(ident("i"), intLit(0)),
		loop(),
	))
	if err := errorOf(result); err != nil {
		t.Fatalf("unexpected error: %s", err.Message)
	}
	i, _ := e.GlobalEnv.Get("i")
	if len(i.Type.Refinements) == 0 {
		t.Fatal("expected refinements after loops")
	}
	// Attachment is idempotent per rendered form: the two identical loops
	// must not duplicate entries.
	seen := make(map[string]int)
	for _, s := range refinementStrings(i) {
		seen[s]++
		if seen[s] > 1 {
			t.Errorf("duplicated refinement %q", s)
		}
	}
}

func TestSizeSynthesisForGrowingArray(t *testing.T) {
	// arr grows by one element per iteration: size_monotonic increasing
	// strict survives, size_equals does not.
	e, result := run(t, program(
		declare("arr", "dynamic", arrayLit(intLit(1))),
		declare("i", "int", intLit(0)),
		whileLoop(bin("<", ident("i"), intLit(3)),
			exprStmt(methodCall(ident("arr"), "push", ident("i"))),
			assign(ident("i"), bin("+", ident("i"), intLit(1))),
		),
	))
	if err := errorOf(result); err != nil {
		t.Fatalf("unexpected error: %s", err.Message)
	}
	arr, _ := e.GlobalEnv.Get("arr")
	if !hasRefinement(arr, "size_monotonic(increasing, strict)") {
		t.Errorf("expected strict increasing size_monotonic, got %v", refinementStrings(arr))
	}
	if !hasRefinement(arr, "size_range(1, 4)") {
		t.Errorf("expected size_range(1, 4), got %v", refinementStrings(arr))
	}
	if !hasRefinement(arr, "non_empty") {
		t.Errorf("expected non_empty, got %v", refinementStrings(arr))
	}
	if hasRefinement(arr, "size_equals(1)") {
		t.Error("size_equals must not survive a growing array")
	}
}

func TestSynthesisIsDeterministic(t *testing.T) {
	build := func() []string {
		e, result := run(t, program(
			declare("k", "int", intLit(10)),
			declare("i", "int", intLit(0)),
			whileLoop(bin("<", ident("i"), intLit(4)),
				assign(ident("i"), bin("+", ident("i"), intLit(1))),
			),
		))
		if err := errorOf(result); err != nil {
			t.Fatalf("unexpected error: %s", err.Message)
		}
		k, _ := e.GlobalEnv.Get("k")
		return refinementStrings(k)
	}
	first := build()
	for trial := 0; trial < 5; trial++ {
		again := build()
		if len(again) != len(first) {
			t.Fatalf("survivor count changed between runs: %v vs %v", first, again)
		}
		for i := range first {
			if again[i] != first[i] {
				t.Fatalf("survivor order changed between runs: %v vs %v", first, again)
			}
		}
	}
}
