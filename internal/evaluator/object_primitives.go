package evaluator

import (
	"fmt"

	"github.com/funvibe/refina/internal/typesystem"
)

// Integer
type Integer struct {
	Value int64
}

func (i *Integer) Kind() typesystem.Kind { return typesystem.INT_KIND }
func (i *Integer) Inspect() string       { return fmt.Sprintf("%d", i.Value) }

// Float
type Float struct {
	Value float64
}

func (f *Float) Kind() typesystem.Kind { return typesystem.FLOAT_KIND }
func (f *Float) Inspect() string       { return formatFloat(f.Value) }

// String
type String struct {
	Value string
}

func (s *String) Kind() typesystem.Kind { return typesystem.STRING_KIND }
func (s *String) Inspect() string       { return s.Value }

// Boolean
type Boolean struct {
	Value bool
}

func (b *Boolean) Kind() typesystem.Kind { return typesystem.BOOLEAN_KIND }
func (b *Boolean) Inspect() string       { return fmt.Sprintf("%t", b.Value) }

// Unit is the void value produced by statements and value-less returns.
type Unit struct{}

func (u *Unit) Kind() typesystem.Kind { return typesystem.VOID_KIND }
func (u *Unit) Inspect() string       { return "void" }

var (
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
	UNIT  = &Unit{}
)

func intBinder(v int64) *Binder {
	return NewBinder(&Integer{Value: v}, typesystem.Int)
}

func floatBinder(v float64) *Binder {
	return NewBinder(&Float{Value: v}, typesystem.Float)
}

func stringBinder(v string) *Binder {
	return NewBinder(&String{Value: v}, typesystem.String)
}

func boolBinder(v bool) *Binder {
	if v {
		return NewBinder(TRUE, typesystem.Boolean)
	}
	return NewBinder(FALSE, typesystem.Boolean)
}

func voidBinder() *Binder {
	return NewBinder(UNIT, typesystem.Void)
}
