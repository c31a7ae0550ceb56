package evaluator

import (
	"github.com/funvibe/refina/internal/ast"
)

func (e *Evaluator) evalPredicateCheckExpression(node *ast.PredicateCheckExpression, env *Environment) *Binder {
	subject := e.Eval(node.Subject, env)
	if isError(subject) {
		return subject
	}
	args, errBinder := e.evalExpressions(node.PredicateArgs, env)
	if errBinder != nil {
		return errBinder
	}
	pred, errBinder := e.buildPredicate(node.PredicateName, args)
	if errBinder != nil {
		return errBinder
	}

	history := e.historyFor(node.Subject, subject)
	held, errBinder := e.checkPredicate(pred, history)
	if errBinder != nil {
		return errBinder
	}
	return boolBinder(held)
}

// historyFor resolves the snapshot history a check runs against: the
// innermost tracker recording the subject variable, or a singleton history
// of the current value.
func (e *Evaluator) historyFor(subject ast.Expression, current *Binder) []*VariableSnapshot {
	if ident, ok := subject.(*ast.Identifier); ok {
		for i := len(e.trackers) - 1; i >= 0; i-- {
			if history := e.trackers[i].History(ident.Name); len(history) > 0 {
				return history
			}
		}
	}
	return []*VariableSnapshot{snapshotOf(current, 0)}
}

// checkPredicate decides a predicate against a history. Temporal forms
// consult the whole history; every other form must hold on each snapshot.
func (e *Evaluator) checkPredicate(p *Predicate, history []*VariableSnapshot) (bool, *Binder) {
	if p.Temporal() {
		return e.checkTemporal(p, history)
	}
	for _, snap := range history {
		held, errBinder := e.checkOnSnapshot(p, snap)
		if errBinder != nil {
			return false, errBinder
		}
		if !held {
			return false, nil
		}
	}
	return true, nil
}

func (e *Evaluator) checkTemporal(p *Predicate, history []*VariableSnapshot) (bool, *Binder) {
	increasing := p.Direction == "increasing"
	read := func(snap *VariableSnapshot) (float64, bool) {
		if p.Kind == PRED_MONOTONIC {
			if snap.Numeric == nil {
				return 0, false
			}
			return *snap.Numeric, true
		}
		if snap.CollectionSize != nil {
			return float64(*snap.CollectionSize), true
		}
		if snap.ArrayLen != nil {
			return float64(*snap.ArrayLen), true
		}
		return 0, false
	}

	for i := 1; i < len(history); i++ {
		prev, ok1 := read(history[i-1])
		curr, ok2 := read(history[i])
		if !ok1 || !ok2 {
			return false, nil
		}
		switch {
		case increasing && p.Strict:
			if !(curr > prev) {
				return false, nil
			}
		case increasing:
			if !(curr >= prev) {
				return false, nil
			}
		case p.Strict:
			if !(curr < prev) {
				return false, nil
			}
		default:
			if !(curr <= prev) {
				return false, nil
			}
		}
	}
	return true, nil
}

func (e *Evaluator) checkOnSnapshot(p *Predicate, snap *VariableSnapshot) (bool, *Binder) {
	switch p.Kind {
	case PRED_INT_RANGE:
		if snap.Numeric == nil || !snap.NumericIsInt {
			return false, nil
		}
		v := int64(*snap.Numeric)
		return v >= p.Min && v <= p.Max, nil

	case PRED_POSITIVE:
		if snap.Numeric == nil {
			return false, nil
		}
		if p.Strict {
			return *snap.Numeric > 0, nil
		}
		return *snap.Numeric >= 0, nil

	case PRED_NEGATIVE:
		if snap.Numeric == nil {
			return false, nil
		}
		if p.Strict {
			return *snap.Numeric < 0, nil
		}
		return *snap.Numeric <= 0, nil

	case PRED_GREATER_THAN:
		if snap.Numeric == nil {
			return false, nil
		}
		return *snap.Numeric > p.Threshold, nil

	case PRED_GREATER_EQUAL:
		if snap.Numeric == nil {
			return false, nil
		}
		return *snap.Numeric >= p.Threshold, nil

	case PRED_DIVISIBLE_BY:
		if snap.Numeric == nil || !snap.NumericIsInt {
			return false, nil
		}
		return int64(*snap.Numeric)%p.Divisor == 0, nil

	case PRED_PARITY:
		if snap.Numeric == nil || !snap.NumericIsInt {
			return false, nil
		}
		even := int64(*snap.Numeric)%2 == 0
		return even == (p.Parity == "even"), nil

	case PRED_SIZE_RANGE, PRED_SIZE_EQUALS, PRED_NON_EMPTY:
		size, ok := snapshotSize(snap)
		if !ok {
			return false, nil
		}
		switch p.Kind {
		case PRED_SIZE_RANGE:
			return size >= p.SizeMin && size <= p.SizeMax, nil
		case PRED_SIZE_EQUALS:
			return size == p.SizeMin, nil
		default:
			return size > 0, nil
		}

	case PRED_SORTED:
		arr, ok := snap.Binder.Value.(*Array)
		if !ok {
			return false, nil
		}
		return arraySorted(arr, p.Direction == "asc")

	case PRED_UNIQUE:
		arr, ok := snap.Binder.Value.(*Array)
		if !ok {
			return false, nil
		}
		seen := make(map[keyID]bool, len(arr.Elements))
		for _, el := range arr.Elements {
			id := keyOf(el)
			if seen[id] {
				return false, nil
			}
			seen[id] = true
		}
		return true, nil

	case PRED_PERMUTATION:
		arr, ok := snap.Binder.Value.(*Array)
		if !ok {
			return false, nil
		}
		if arr.Len() != p.Original.Len() {
			return false, nil
		}
		counts := make(map[keyID]int, p.Original.Len())
		for _, el := range p.Original.Elements {
			counts[keyOf(el)]++
		}
		for _, el := range arr.Elements {
			id := keyOf(el)
			counts[id]--
			if counts[id] < 0 {
				return false, nil
			}
		}
		return true, nil

	case PRED_NOT:
		held, errBinder := e.checkOnSnapshot(p.Inner, snap)
		if errBinder != nil {
			return false, errBinder
		}
		return !held, nil

	case PRED_RANGE_SATISFIES:
		arr, ok := snap.Binder.Value.(*Array)
		if !ok {
			return false, nil
		}
		if p.From < 0 || p.To > int64(arr.Len()) || p.From > p.To {
			return false, newError("range_satisfies indices [%d, %d) are invalid for length %d", p.From, p.To, arr.Len())
		}
		// Temporal inner predicates cannot be reduced inside one
		// snapshot; they are skipped.
		if p.Inner.Temporal() {
			return true, nil
		}
		for i := int(p.From); i < int(p.To); i++ {
			held, errBinder := e.checkOnSnapshot(p.Inner, snapshotOf(arr.Elements[i], snap.Iteration))
			if errBinder != nil {
				return false, errBinder
			}
			if !held {
				return false, nil
			}
		}
		return true, nil

	case PRED_ALL_ELEMENTS:
		if p.Inner.Temporal() {
			return true, nil
		}
		var elements []*Binder
		switch container := snap.Binder.Value.(type) {
		case *Array:
			elements = container.Elements
		case *SetValue:
			elements = container.ToArray()
		default:
			return false, nil
		}
		for _, el := range elements {
			held, errBinder := e.checkOnSnapshot(p.Inner, snapshotOf(el, snap.Iteration))
			if errBinder != nil {
				return false, errBinder
			}
			if !held {
				return false, nil
			}
		}
		return true, nil

	case PRED_WEIGHTS_NON_NEG, PRED_NO_NEG_CYCLES:
		g, ok := snap.Binder.Value.(*Graph)
		if !ok {
			return false, newError("predicate %s requires a graph, got %s", p.Kind, snap.Binder.ActualKind())
		}
		if p.Kind == PRED_WEIGHTS_NON_NEG {
			for _, edge := range g.GetEdges() {
				if edge.Weight < 0 {
					return false, nil
				}
			}
			return true, nil
		}
		return graphHasNoNegativeCycle(g), nil

	case PRED_DIST_SELF_ZERO:
		m, ok := snap.Binder.Value.(*MapValue)
		if !ok {
			return false, newError("predicate %s requires a map, got %s", p.Kind, snap.Binder.ActualKind())
		}
		return distanceToSelfZero(m), nil

	case PRED_TRIANGLE:
		m, ok := snap.Binder.Value.(*MapValue)
		if !ok {
			return false, newError("predicate %s requires a map, got %s", p.Kind, snap.Binder.ActualKind())
		}
		return triangleInequality(m), nil

	case PRED_SUBSET_OF:
		s, ok := snap.Binder.Value.(*SetValue)
		if !ok {
			return false, nil
		}
		for _, el := range s.ToArray() {
			if !p.Other.Has(el) {
				return false, nil
			}
		}
		return true, nil

	case PRED_DISJOINT:
		s, ok := snap.Binder.Value.(*SetValue)
		if !ok {
			return false, nil
		}
		for _, el := range s.ToArray() {
			if p.Other.Has(el) {
				return false, nil
			}
		}
		return true, nil

	case PRED_MONOTONIC, PRED_SIZE_MONOTONIC:
		// Temporal forms are dispatched before snapshot checks.
		return false, newInternalError("temporal predicate %s checked on a single snapshot", p.Kind)
	}

	return false, newInternalError("unhandled predicate kind %s", p.Kind)
}

func snapshotSize(snap *VariableSnapshot) (int, bool) {
	if snap.CollectionSize != nil {
		return *snap.CollectionSize, true
	}
	if snap.ArrayLen != nil {
		return *snap.ArrayLen, true
	}
	return 0, false
}

func arraySorted(arr *Array, ascending bool) (bool, *Binder) {
	for i := 1; i < arr.Len(); i++ {
		cmp, err := comparePrimitive(arr.Elements[i-1], arr.Elements[i])
		if err != nil {
			return false, nil
		}
		if ascending && cmp > 0 {
			return false, nil
		}
		if !ascending && cmp < 0 {
			return false, nil
		}
	}
	return true, nil
}
