package evaluator

import (
	"github.com/go-logr/logr"
)

// VariableSnapshot is one point-in-time record of a variable. The scalar
// views are captured at snapshot time: container mutation is aliased, so
// re-reading the binder later would corrupt the history.
type VariableSnapshot struct {
	Binder         *Binder
	Iteration      int
	Numeric        *float64
	NumericIsInt   bool
	ArrayLen       *int
	CollectionSize *int
}

func snapshotOf(b *Binder, iteration int) *VariableSnapshot {
	snap := &VariableSnapshot{Binder: b, Iteration: iteration}
	switch v := b.Value.(type) {
	case *Integer:
		n := float64(v.Value)
		snap.Numeric = &n
		snap.NumericIsInt = true
	case *Float:
		n := v.Value
		snap.Numeric = &n
	case *Array:
		l := v.Len()
		snap.ArrayLen = &l
	case *SetValue:
		s := v.Size()
		snap.CollectionSize = &s
	case *MapValue:
		s := v.Size()
		snap.CollectionSize = &s
	case *Heap:
		s := v.Size()
		snap.CollectionSize = &s
	case *HeapMap:
		s := v.Size()
		snap.CollectionSize = &s
	}
	return snap
}

// Tracker observes one loop: it records a snapshot of every in-scope
// variable per iteration and synthesizes the predicates surviving every
// snapshot on loop exit.
type Tracker struct {
	log       logr.Logger
	names     []string // first-appearance order, for deterministic synthesis
	histories map[string][]*VariableSnapshot
}

func NewTracker(log logr.Logger) *Tracker {
	return &Tracker{
		log:       log,
		histories: make(map[string][]*VariableSnapshot),
	}
}

// Record walks the environment's flattened bindings and appends one
// snapshot per variable. The blank identifier and function bindings are
// skipped.
func (t *Tracker) Record(env *Environment, iteration int) {
	for _, nb := range env.AllBindings() {
		if nb.Name == BlankIdentifier || isFunctionBinder(nb.Binder) {
			continue
		}
		if _, ok := t.histories[nb.Name]; !ok {
			t.names = append(t.names, nb.Name)
		}
		t.histories[nb.Name] = append(t.histories[nb.Name], snapshotOf(nb.Binder, iteration))
	}
}

// History returns the recorded snapshots for name, oldest first.
func (t *Tracker) History(name string) []*VariableSnapshot {
	return t.histories[name]
}

// SynthesizeAndAttach runs the Houdini loop for every tracked variable and
// appends the surviving predicates to the variable's refinement list. A
// variable no longer in scope keeps nothing.
func (t *Tracker) SynthesizeAndAttach(e *Evaluator, env *Environment) {
	for _, name := range t.names {
		history := t.histories[name]
		binder, ok := env.Get(name)
		if !ok {
			continue
		}
		survivors := t.synthesize(e, history)
		for _, p := range survivors {
			binder.Type.AddRefinement(p)
		}
		if len(survivors) > 0 {
			t.log.V(1).Info("attached refinements", "variable", name, "count", len(survivors))
		}
	}
}

// synthesize filters the candidate pool down to the predicates that hold on
// every snapshot. Candidate errors (a predicate probed against a kind it
// does not cover) falsify the candidate rather than aborting the run.
func (t *Tracker) synthesize(e *Evaluator, history []*VariableSnapshot) []*Predicate {
	var survivors []*Predicate
	for _, candidate := range generateCandidates(history) {
		held, errBinder := e.checkPredicate(candidate, history)
		if errBinder != nil || !held {
			continue
		}
		survivors = append(survivors, candidate)
	}
	return survivors
}

// generateCandidates builds the per-type candidate pool. Generation is
// deterministic: the pool order depends only on the snapshot sequence.
func generateCandidates(history []*VariableSnapshot) []*Predicate {
	if len(history) == 0 {
		return nil
	}

	allNumeric, allInt := true, true
	allArray, allSized := true, true
	for _, snap := range history {
		if snap.Numeric == nil {
			allNumeric, allInt = false, false
		} else if !snap.NumericIsInt {
			allInt = false
		}
		if snap.ArrayLen == nil {
			allArray = false
		}
		if snap.ArrayLen == nil && snap.CollectionSize == nil {
			allSized = false
		}
	}

	var out []*Predicate

	if allNumeric {
		out = append(out, numericCandidates(history, allInt)...)
	}
	if allSized {
		out = append(out, sizeCandidates(history)...)
		if allArray {
			out = append(out,
				&Predicate{Kind: PRED_SORTED, Direction: "asc"},
				&Predicate{Kind: PRED_SORTED, Direction: "desc"},
				&Predicate{Kind: PRED_UNIQUE},
			)
		}
	}
	return out
}

func numericCandidates(history []*VariableSnapshot, allInt bool) []*Predicate {
	min, max := *history[0].Numeric, *history[0].Numeric
	for _, snap := range history[1:] {
		if *snap.Numeric < min {
			min = *snap.Numeric
		}
		if *snap.Numeric > max {
			max = *snap.Numeric
		}
	}

	var out []*Predicate
	if allInt {
		out = append(out, &Predicate{Kind: PRED_INT_RANGE, Min: int64(min), Max: int64(max)})
	}
	out = append(out,
		&Predicate{Kind: PRED_POSITIVE, Strict: true},
		&Predicate{Kind: PRED_POSITIVE},
		&Predicate{Kind: PRED_NEGATIVE, Strict: true},
		&Predicate{Kind: PRED_NEGATIVE},
	)
	if allInt {
		out = append(out,
			&Predicate{Kind: PRED_PARITY, Parity: "even"},
			&Predicate{Kind: PRED_PARITY, Parity: "odd"},
		)
		for _, d := range []int64{2, 3, 4, 5, 10} {
			out = append(out, &Predicate{Kind: PRED_DIVISIBLE_BY, Divisor: d})
		}
	}
	if len(history) >= 2 {
		out = append(out, monotonicCandidates(PRED_MONOTONIC)...)
	}
	return out
}

func sizeCandidates(history []*VariableSnapshot) []*Predicate {
	first, _ := snapshotSize(history[0])
	min, max := first, first
	constant := true
	for _, snap := range history[1:] {
		size, _ := snapshotSize(snap)
		if size != first {
			constant = false
		}
		if size < min {
			min = size
		}
		if size > max {
			max = size
		}
	}

	var out []*Predicate
	if constant {
		out = append(out, &Predicate{Kind: PRED_SIZE_EQUALS, SizeMin: first})
	} else {
		out = append(out, &Predicate{Kind: PRED_SIZE_RANGE, SizeMin: min, SizeMax: max})
	}
	out = append(out, &Predicate{Kind: PRED_NON_EMPTY})
	if len(history) >= 2 {
		out = append(out, monotonicCandidates(PRED_SIZE_MONOTONIC)...)
	}
	return out
}

func monotonicCandidates(kind PredKind) []*Predicate {
	return []*Predicate{
		{Kind: kind, Direction: "increasing", Strict: true},
		{Kind: kind, Direction: "increasing"},
		{Kind: kind, Direction: "decreasing", Strict: true},
		{Kind: kind, Direction: "decreasing"},
	}
}
