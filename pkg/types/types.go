// Package types implements the type algebra of minml: named types, type
// variables, function types, substitutions and unification.
package types

import "fmt"

type Type interface {
	String() string
	// Apply rewrites the type under a substitution. It rebuilds the tree
	// structurally and never mutates the receiver.
	Apply(Subst) Type
	// Contains reports whether a variable with the given name occurs
	// anywhere in the type.
	Contains(name string) bool
}

// NamedType is a concrete, non-parametric type such as Number or Bool.
// Two named types are equal iff their names are equal.
type NamedType struct{ Name string }

func (t NamedType) String() string { return t.Name }

func (t NamedType) Apply(Subst) Type { return t }

func (t NamedType) Contains(string) bool { return false }

// VarType is an unresolved placeholder standing for a type yet to be
// determined by unification.
type VarType struct{ Name string }

func (t VarType) String() string { return t.Name }

func (t VarType) Apply(subs Subst) Type {
	if r, ok := subs[t.Name]; ok {
		return r
	}
	return t
}

func (t VarType) Contains(name string) bool { return t.Name == name }

// FuncType is a single-argument function type.
type FuncType struct {
	From Type
	To   Type
}

func (t FuncType) String() string {
	from := t.From.String()
	if _, ok := t.From.(FuncType); ok {
		from = "(" + from + ")"
	}
	return fmt.Sprintf("%s -> %s", from, t.To)
}

func (t FuncType) Apply(subs Subst) Type {
	return FuncType{From: t.From.Apply(subs), To: t.To.Apply(subs)}
}

func (t FuncType) Contains(name string) bool {
	return t.From.Contains(name) || t.To.Contains(name)
}

// TryFunc narrows a type to a FuncType. It is only called after unification
// has already established the arrow shape, so a failure means the caller's
// substitution sequencing is broken, not that the user program is ill-typed.
func TryFunc(t Type) (FuncType, error) {
	if f, ok := t.(FuncType); ok {
		return f, nil
	}
	return FuncType{}, NewNotAFunctionError(t)
}
