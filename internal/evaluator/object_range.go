package evaluator

import (
	"fmt"

	"github.com/funvibe/refina/internal/typesystem"
)

// LazyRange is a possibly-infinite integer range. Finite ranges cover
// [start..end) or [start..=end]; a nil end means the range is infinite.
type LazyRange struct {
	Start     int64
	End       *int64
	Inclusive bool
}

func (r *LazyRange) Kind() typesystem.Kind { return typesystem.RANGE_KIND }
func (r *LazyRange) Inspect() string {
	if r.End == nil {
		return fmt.Sprintf("%d..", r.Start)
	}
	if r.Inclusive {
		return fmt.Sprintf("%d..=%d", r.Start, *r.End)
	}
	return fmt.Sprintf("%d..%d", r.Start, *r.End)
}

func (r *LazyRange) IsInfinite() bool { return r.End == nil }

// Bound returns the exclusive upper bound of a finite range.
func (r *LazyRange) Bound() int64 {
	bound := *r.End
	if r.Inclusive {
		bound++
	}
	return bound
}

// ToArray materializes a finite range; it fails on infinite ranges.
func (r *LazyRange) ToArray() ([]*Binder, error) {
	if r.IsInfinite() {
		return nil, fmt.Errorf("cannot materialize an infinite range")
	}
	bound := r.Bound()
	var out []*Binder
	for i := r.Start; i < bound; i++ {
		out = append(out, intBinder(i))
	}
	return out, nil
}

// Generate returns a fresh lazy sequence over the range. Each call restarts
// from the beginning.
func (r *LazyRange) Generate() func() (int64, bool) {
	next := r.Start
	return func() (int64, bool) {
		if !r.IsInfinite() && next >= r.Bound() {
			return 0, false
		}
		v := next
		next++
		return v, true
	}
}
