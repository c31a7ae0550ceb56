package evaluator

// Environment is one frame of the lexical scope chain: an insertion-ordered
// name→binder mapping plus an optional parent. Closures share frames by
// reference, they never copy them.
type Environment struct {
	names []string
	store map[string]*Binder
	outer *Environment
}

func NewEnvironment() *Environment {
	return &Environment{store: make(map[string]*Binder)}
}

func NewEnclosedEnvironment(outer *Environment) *Environment {
	env := NewEnvironment()
	env.outer = outer
	return env
}

// Define binds name in the current frame unconditionally; shadowing an outer
// binding is allowed.
func (e *Environment) Define(name string, val *Binder) {
	if _, ok := e.store[name]; !ok {
		e.names = append(e.names, name)
	}
	e.store[name] = val
}

// Assign walks outward and rebinds at the nearest frame holding name; it
// reports false when no frame holds it.
func (e *Environment) Assign(name string, val *Binder) bool {
	if _, ok := e.store[name]; ok {
		e.store[name] = val
		return true
	}
	if e.outer != nil {
		return e.outer.Assign(name, val)
	}
	return false
}

// Get walks outward to the nearest binding of name.
func (e *Environment) Get(name string) (*Binder, bool) {
	if obj, ok := e.store[name]; ok {
		return obj, true
	}
	if e.outer != nil {
		return e.outer.Get(name)
	}
	return nil, false
}

// NamedBinder is one entry of the flattened scope view.
type NamedBinder struct {
	Name   string
	Binder *Binder
}

// AllBindings flattens the chain outermost-first, with inner frames
// shadowing outer ones in place. Order is deterministic: a name keeps the
// position of its first (outermost) definition.
func (e *Environment) AllBindings() []NamedBinder {
	var frames []*Environment
	for env := e; env != nil; env = env.outer {
		frames = append(frames, env)
	}
	var out []NamedBinder
	seen := make(map[string]int)
	for i := len(frames) - 1; i >= 0; i-- {
		for _, name := range frames[i].names {
			binder := frames[i].store[name]
			if idx, ok := seen[name]; ok {
				out[idx].Binder = binder
				continue
			}
			seen[name] = len(out)
			out = append(out, NamedBinder{Name: name, Binder: binder})
		}
	}
	return out
}
