package types

import "fmt"

// MismatchError indicates two types were required to unify but have
// incompatible shapes or names.
type MismatchError struct {
	X, Y Type
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("type mismatch: %s vs %s", e.X, e.Y)
}

func NewMismatchError(x, y Type) *MismatchError {
	return &MismatchError{X: x, Y: y}
}

// InfiniteTypeError indicates the occurs check caught a variable being bound
// to a type containing that same variable.
type InfiniteTypeError struct {
	Name string
	Type Type
}

func (e *InfiniteTypeError) Error() string {
	return fmt.Sprintf("infinite type: %s occurs in %s", e.Name, e.Type)
}

func NewInfiniteTypeError(name string, t Type) *InfiniteTypeError {
	return &InfiniteTypeError{Name: name, Type: t}
}

// NotAFunctionError indicates a type expected to be a function after
// unification is not. This is an internal invariant violation, not a
// user-facing type error.
type NotAFunctionError struct {
	Type Type
}

func (e *NotAFunctionError) Error() string {
	return fmt.Sprintf("internal: %s is not a function type", e.Type)
}

func NewNotAFunctionError(t Type) *NotAFunctionError {
	return &NotAFunctionError{Type: t}
}
