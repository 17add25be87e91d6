package object

import (
	"log/slog"
)

type Binding struct {
	Value   Value
	IsConst bool
}

// Environment owns all variable storage of one program run: a global table
// and a stack of per-call frames. Lookups try the innermost frame first and
// then the globals; frames never see each other.
type Environment struct {
	globals map[string]*Binding
	frames  []map[string]*Binding
}

func NewEnvironment() *Environment {
	return &Environment{globals: make(map[string]*Binding)}
}

func (e *Environment) innermost() map[string]*Binding {
	if n := len(e.frames); n > 0 {
		return e.frames[n-1]
	}
	return e.globals
}

func (e *Environment) GetBinding(name string) (*Binding, bool) {
	if n := len(e.frames); n > 0 {
		if b, ok := e.frames[n-1][name]; ok {
			return b, true
		}
	}
	b, ok := e.globals[name]
	return b, ok
}

// Exists reports whether name is visible from the current scope.
func (e *Environment) Exists(name string) bool {
	_, ok := e.GetBinding(name)
	return ok
}

// ExistsLocal reports whether name is bound in the innermost scope.
func (e *Environment) ExistsLocal(name string) bool {
	_, ok := e.innermost()[name]
	return ok
}

func (e *Environment) Load(name string) (Value, error) {
	b, ok := e.GetBinding(name)
	if !ok {
		return nil, NewError(NameError, "name '%s' is not defined", name)
	}
	return b.Value, nil
}

// Store writes name into the innermost scope. Rebinding a visible constant
// is a ConstViolation.
func (e *Environment) Store(name string, val Value, isConst bool) error {
	if b, ok := e.GetBinding(name); ok && b.IsConst {
		return NewError(ConstViolation, "cannot assign to constant '%s'", name)
	}

	scope := e.innermost()
	if b, ok := scope[name]; ok {
		b.Value = val
		b.IsConst = isConst
	} else {
		scope[name] = &Binding{Value: val, IsConst: isConst}
	}

	slog.Debug("binding value",
		slog.String("name", name),
		slog.Any("kind", val.Kind()),
		slog.Bool("const", isConst),
		slog.Int("depth", len(e.frames)))
	return nil
}

// Assign rebinds an existing name in the scope that holds it.
func (e *Environment) Assign(name string, val Value) error {
	b, ok := e.GetBinding(name)
	if !ok {
		return NewError(NameError, "'%s' is assigned without being declared", name)
	}
	if b.IsConst {
		return NewError(ConstViolation, "cannot assign to constant '%s'", name)
	}
	b.Value = val

	slog.Debug("assigning bound value",
		slog.String("name", name),
		slog.Any("kind", val.Kind()))
	return nil
}

// Declare introduces a new name in the innermost scope.
func (e *Environment) Declare(name string, val Value, isConst bool) error {
	if e.ExistsLocal(name) {
		return NewError(DeclarationError, "'%s' is already declared in this scope", name)
	}
	return e.Store(name, val, isConst)
}

// Remove deletes name from whichever scope currently holds it.
func (e *Environment) Remove(name string) {
	if n := len(e.frames); n > 0 {
		if _, ok := e.frames[n-1][name]; ok {
			delete(e.frames[n-1], name)
			return
		}
	}
	delete(e.globals, name)
}

func (e *Environment) PushFrame() {
	e.frames = append(e.frames, make(map[string]*Binding))
	slog.Debug("push frame", slog.Int("depth", len(e.frames)))
}

func (e *Environment) PopFrame() {
	if len(e.frames) == 0 {
		return
	}
	e.frames = e.frames[:len(e.frames)-1]
	slog.Debug("pop frame", slog.Int("depth", len(e.frames)))
}

func (e *Environment) Depth() int {
	return len(e.frames)
}
