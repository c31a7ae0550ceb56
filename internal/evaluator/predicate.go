package evaluator

import (
	"fmt"
	"strings"
)

// PredKind enumerates the built-in predicate forms.
type PredKind string

const (
	PRED_INT_RANGE       PredKind = "int_range"
	PRED_POSITIVE        PredKind = "positive"
	PRED_NEGATIVE        PredKind = "negative"
	PRED_GREATER_THAN    PredKind = "greater_than"
	PRED_GREATER_EQUAL   PredKind = "greater_equal_than"
	PRED_DIVISIBLE_BY    PredKind = "divisible_by"
	PRED_PARITY          PredKind = "parity"
	PRED_SIZE_RANGE      PredKind = "size_range"
	PRED_SIZE_EQUALS     PredKind = "size_equals"
	PRED_NON_EMPTY       PredKind = "non_empty"
	PRED_SORTED          PredKind = "sorted"
	PRED_UNIQUE          PredKind = "unique_elements"
	PRED_PERMUTATION     PredKind = "is_permutation_of"
	PRED_NOT             PredKind = "not"
	PRED_RANGE_SATISFIES PredKind = "range_satisfies"
	PRED_ALL_ELEMENTS    PredKind = "all_elements_satisfy"
	PRED_MONOTONIC       PredKind = "monotonic"
	PRED_SIZE_MONOTONIC  PredKind = "size_monotonic"
	PRED_WEIGHTS_NON_NEG PredKind = "all_weights_non_negative"
	PRED_NO_NEG_CYCLES   PredKind = "no_negative_cycles"
	PRED_DIST_SELF_ZERO  PredKind = "distance_to_self_zero"
	PRED_TRIANGLE        PredKind = "triangle_inequality"
	PRED_SUBSET_OF       PredKind = "subset_of"
	PRED_DISJOINT        PredKind = "disjoint_from"
)

// Predicate is one refinement form. It holds no references to mutable
// engine state except the set operands of subset_of/disjoint_from and the
// original array of is_permutation_of, which are logically snapshots.
type Predicate struct {
	Kind      PredKind
	Min       int64
	Max       int64
	Threshold float64
	Strict    bool
	Divisor   int64
	Parity    string // "even" | "odd"
	SizeMin   int
	SizeMax   int
	Direction string // "asc"/"desc" for sorted, "increasing"/"decreasing" for monotonic forms
	From      int64
	To        int64
	Inner     *Predicate
	Original  *Array
	Other     *SetValue
}

// Temporal reports whether the predicate needs the variable's history
// rather than a single snapshot.
func (p *Predicate) Temporal() bool {
	return p.Kind == PRED_MONOTONIC || p.Kind == PRED_SIZE_MONOTONIC
}

func (p *Predicate) String() string {
	switch p.Kind {
	case PRED_INT_RANGE:
		return fmt.Sprintf("int_range(%d, %d)", p.Min, p.Max)
	case PRED_POSITIVE, PRED_NEGATIVE:
		if p.Strict {
			return fmt.Sprintf("%s(strict)", p.Kind)
		}
		return string(p.Kind)
	case PRED_GREATER_THAN, PRED_GREATER_EQUAL:
		return fmt.Sprintf("%s(%s)", p.Kind, trimFloat(p.Threshold))
	case PRED_DIVISIBLE_BY:
		return fmt.Sprintf("divisible_by(%d)", p.Divisor)
	case PRED_PARITY:
		return fmt.Sprintf("parity(%s)", p.Parity)
	case PRED_SIZE_RANGE:
		return fmt.Sprintf("size_range(%d, %d)", p.SizeMin, p.SizeMax)
	case PRED_SIZE_EQUALS:
		return fmt.Sprintf("size_equals(%d)", p.SizeMin)
	case PRED_SORTED:
		return fmt.Sprintf("sorted(%s)", p.Direction)
	case PRED_MONOTONIC, PRED_SIZE_MONOTONIC:
		strictness := "non-strict"
		if p.Strict {
			strictness = "strict"
		}
		return fmt.Sprintf("%s(%s, %s)", p.Kind, p.Direction, strictness)
	case PRED_NOT:
		return fmt.Sprintf("not(%s)", p.Inner)
	case PRED_RANGE_SATISFIES:
		return fmt.Sprintf("range_satisfies(%d, %d, %s)", p.From, p.To, p.Inner)
	case PRED_ALL_ELEMENTS:
		return fmt.Sprintf("all_elements_satisfy(%s)", p.Inner)
	case PRED_PERMUTATION:
		return fmt.Sprintf("is_permutation_of(%s)", p.Original.Inspect())
	case PRED_SUBSET_OF, PRED_DISJOINT:
		return fmt.Sprintf("%s(%s)", p.Kind, p.Other.Inspect())
	default:
		return string(p.Kind)
	}
}

func trimFloat(v float64) string {
	s := fmt.Sprintf("%g", v)
	return strings.TrimSuffix(s, ".0")
}

// buildPredicate turns a predicate name and evaluated arguments into a
// checker form. Meta forms accept the inner predicate either as a
// first-class predicate value or as a bare name string.
func (e *Evaluator) buildPredicate(name string, args []*Binder) (*Predicate, *Binder) {
	argNum := func(i int) (float64, bool) {
		if i >= len(args) || !isNumericKind(args[i].ActualKind()) {
			return 0, false
		}
		return numericOf(args[i]), true
	}
	argInt := func(i int) (int64, bool) {
		if i >= len(args) {
			return 0, false
		}
		v, ok := intValue(args[i])
		return v, ok
	}
	argBool := func(i int, dflt bool) bool {
		if i < len(args) {
			if b, ok := args[i].Value.(*Boolean); ok {
				return b.Value
			}
		}
		return dflt
	}
	argString := func(i int) (string, bool) {
		if i >= len(args) {
			return "", false
		}
		s, ok := args[i].Value.(*String)
		if !ok {
			return "", false
		}
		return s.Value, true
	}
	argInner := func(i int) (*Predicate, *Binder) {
		if i >= len(args) {
			return nil, newError("predicate %s requires an inner predicate", name)
		}
		switch v := args[i].Value.(type) {
		case *PredicateValue:
			return e.buildPredicate(v.Name, v.Args)
		case *String:
			return e.buildPredicate(v.Value, nil)
		}
		return nil, newError("predicate %s requires a predicate or name, got %s", name, args[i].ActualKind())
	}

	switch name {
	case "int_range":
		min, ok1 := argInt(0)
		max, ok2 := argInt(1)
		if !ok1 || !ok2 {
			return nil, newError("int_range requires two int bounds")
		}
		return &Predicate{Kind: PRED_INT_RANGE, Min: min, Max: max}, nil

	case "positive":
		return &Predicate{Kind: PRED_POSITIVE, Strict: argBool(0, true)}, nil
	case "negative":
		return &Predicate{Kind: PRED_NEGATIVE, Strict: argBool(0, true)}, nil

	case "greater_than", "greater_equal_than":
		t, ok := argNum(0)
		if !ok {
			return nil, newError("%s requires a numeric threshold", name)
		}
		kind := PRED_GREATER_THAN
		if name == "greater_equal_than" {
			kind = PRED_GREATER_EQUAL
		}
		return &Predicate{Kind: kind, Threshold: t}, nil

	case "divisible_by":
		d, ok := argInt(0)
		if !ok || d == 0 {
			return nil, newError("divisible_by requires a non-zero int divisor")
		}
		return &Predicate{Kind: PRED_DIVISIBLE_BY, Divisor: d}, nil

	case "parity":
		parity, ok := argString(0)
		if !ok || (parity != "even" && parity != "odd") {
			return nil, newError("parity requires \"even\" or \"odd\"")
		}
		return &Predicate{Kind: PRED_PARITY, Parity: parity}, nil

	case "size_range":
		min, ok1 := argInt(0)
		max, ok2 := argInt(1)
		if !ok1 || !ok2 {
			return nil, newError("size_range requires two int bounds")
		}
		return &Predicate{Kind: PRED_SIZE_RANGE, SizeMin: int(min), SizeMax: int(max)}, nil

	case "size_equals":
		n, ok := argInt(0)
		if !ok {
			return nil, newError("size_equals requires an int size")
		}
		return &Predicate{Kind: PRED_SIZE_EQUALS, SizeMin: int(n)}, nil

	case "non_empty":
		return &Predicate{Kind: PRED_NON_EMPTY}, nil

	case "sorted":
		direction, ok := argString(0)
		if !ok {
			direction = "asc"
		}
		if direction != "asc" && direction != "desc" {
			return nil, newError("sorted requires \"asc\" or \"desc\"")
		}
		return &Predicate{Kind: PRED_SORTED, Direction: direction}, nil

	case "unique_elements":
		return &Predicate{Kind: PRED_UNIQUE}, nil

	case "is_permutation_of":
		if len(args) != 1 {
			return nil, newError("is_permutation_of requires an array argument")
		}
		original, ok := args[0].Value.(*Array)
		if !ok {
			return nil, newError("is_permutation_of requires an array, got %s", args[0].ActualKind())
		}
		return &Predicate{Kind: PRED_PERMUTATION, Original: original}, nil

	case "not":
		inner, errBinder := argInner(0)
		if errBinder != nil {
			return nil, errBinder
		}
		return &Predicate{Kind: PRED_NOT, Inner: inner}, nil

	case "range_satisfies":
		from, ok1 := argInt(0)
		to, ok2 := argInt(1)
		if !ok1 || !ok2 {
			return nil, newError("range_satisfies requires int bounds")
		}
		inner, errBinder := argInner(2)
		if errBinder != nil {
			return nil, errBinder
		}
		return &Predicate{Kind: PRED_RANGE_SATISFIES, From: from, To: to, Inner: inner}, nil

	case "all_elements_satisfy":
		inner, errBinder := argInner(0)
		if errBinder != nil {
			return nil, errBinder
		}
		return &Predicate{Kind: PRED_ALL_ELEMENTS, Inner: inner}, nil

	case "monotonic", "size_monotonic":
		direction, ok := argString(0)
		if !ok {
			direction = "increasing"
		}
		if direction != "increasing" && direction != "decreasing" {
			return nil, newError("%s requires \"increasing\" or \"decreasing\"", name)
		}
		kind := PRED_MONOTONIC
		if name == "size_monotonic" {
			kind = PRED_SIZE_MONOTONIC
		}
		return &Predicate{Kind: kind, Direction: direction, Strict: argBool(1, false)}, nil

	case "all_weights_non_negative":
		return &Predicate{Kind: PRED_WEIGHTS_NON_NEG}, nil
	case "no_negative_cycles":
		return &Predicate{Kind: PRED_NO_NEG_CYCLES}, nil
	case "distance_to_self_zero":
		return &Predicate{Kind: PRED_DIST_SELF_ZERO}, nil
	case "triangle_inequality":
		return &Predicate{Kind: PRED_TRIANGLE}, nil

	case "subset_of", "disjoint_from":
		if len(args) != 1 {
			return nil, newError("%s requires a set argument", name)
		}
		other, ok := args[0].Value.(*SetValue)
		if !ok {
			return nil, newError("%s requires a set, got %s", name, args[0].ActualKind())
		}
		kind := PRED_SUBSET_OF
		if name == "disjoint_from" {
			kind = PRED_DISJOINT
		}
		return &Predicate{Kind: kind, Other: other}, nil
	}

	return nil, newError("unknown predicate: @%s", name)
}
