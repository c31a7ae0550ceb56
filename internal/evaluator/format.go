package evaluator

import (
	"fmt"
	"strconv"
	"strings"
)

// formatFloat renders floats the way the language prints them: shortest
// representation, keeping a trailing ".0" on integral values so the kind
// stays visible.
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEiN") {
		s += ".0"
	}
	return s
}

// inspectQuoted renders a binder for container display: strings quoted,
// everything else as Inspect.
func inspectQuoted(b *Binder) string {
	if b == nil || b.Value == nil {
		return "void"
	}
	if s, ok := b.Value.(*String); ok {
		return strconv.Quote(s.Value)
	}
	return b.Value.Inspect()
}

// ToString renders a binder the way print and .toString() show it.
func ToString(b *Binder) string {
	return b.Inspect()
}

// RenderScope renders every non-function binding in scope, one line per
// name, in the flattened environment order. Used for invariant-failure
// dumps.
func (e *Evaluator) RenderScope(env *Environment) string {
	var b strings.Builder
	b.WriteString("state at failure:")
	for _, nb := range env.AllBindings() {
		if nb.Name == BlankIdentifier || isFunctionBinder(nb.Binder) {
			continue
		}
		value := inspectQuoted(nb.Binder)
		if width := e.Options.DumpValueWidth; len(value) > width {
			value = value[:width] + "..."
		}
		typeName := "weak"
		if nb.Binder != nil && nb.Binder.Type != nil && nb.Binder.Type.Static != nil {
			typeName = nb.Binder.Type.Static.String()
		}
		fmt.Fprintf(&b, "\n  %s: %s = %s", nb.Name, typeName, value)
		if nb.Binder != nil && nb.Binder.Type != nil && len(nb.Binder.Type.Refinements) > 0 {
			preds := make([]string, len(nb.Binder.Type.Refinements))
			for i, p := range nb.Binder.Type.Refinements {
				preds[i] = p.String()
			}
			fmt.Fprintf(&b, "  |- %s", strings.Join(preds, ", "))
		}
	}
	return b.String()
}
