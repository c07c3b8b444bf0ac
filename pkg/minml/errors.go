package minml

import (
	"fmt"

	"minml/pkg/token"
)

// SyntaxError is a lexing or parsing failure at a source position.
type SyntaxError struct {
	Pos token.Pos
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: syntax error: %s", e.Pos, e.Msg)
}

// UnboundVariableError indicates a name was used with no binding in scope.
type UnboundVariableError struct {
	Name string
	Pos  token.Pos
}

func (e *UnboundVariableError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: unbound variable: %s", e.Pos, e.Name)
	}
	return fmt.Sprintf("unbound variable: %s", e.Name)
}

func NewUnboundVariableError(name string, pos token.Pos) *UnboundVariableError {
	return &UnboundVariableError{Name: name, Pos: pos}
}
