package evaluator

import (
	"strings"

	"github.com/funvibe/refina/internal/typesystem"
)

// Tuple is a fixed-arity heterogeneous sequence.
type Tuple struct {
	Elements []*Binder
}

func (t *Tuple) Kind() typesystem.Kind { return typesystem.TUPLE_KIND }
func (t *Tuple) Inspect() string {
	parts := make([]string, len(t.Elements))
	for i, el := range t.Elements {
		parts[i] = inspectQuoted(el)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// recordField is a single field slot; the key binder is string-typed.
type recordField struct {
	Key   *Binder
	Value *Binder
}

// Record is a fixed-shape named-field value keyed by string-typed binders.
// Field order is declaration order.
type Record struct {
	Fields []recordField
}

func (r *Record) Kind() typesystem.Kind { return typesystem.RECORD_KIND }
func (r *Record) Inspect() string {
	parts := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		parts[i] = f.Key.Inspect() + ": " + inspectQuoted(f.Value)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Get returns the field binder for name, or nil when absent.
func (r *Record) Get(name string) *Binder {
	for _, f := range r.Fields {
		if str, ok := f.Key.Value.(*String); ok && str.Value == name {
			return f.Value
		}
	}
	return nil
}

// Set overwrites the field binder for name; it reports false when the record
// has no such field.
func (r *Record) Set(name string, v *Binder) bool {
	for i, f := range r.Fields {
		if str, ok := f.Key.Value.(*String); ok && str.Value == name {
			r.Fields[i].Value = v
			return true
		}
	}
	return false
}
