// Package ast declares the expression tree of the minml language.
// Trees are built once by the parser and never mutated by inference.
package ast

import "minml/pkg/token"

type Expr interface {
	Pos() token.Pos // position of the first character of the expression
	End() token.Pos // position immediately after the last character
	exprNode()
}

// NumberLit is an integer literal such as 42.
type NumberLit struct {
	LitPos token.Pos
	Value  int
	Lit    string
}

// Ident is a use of a bound name.
type Ident struct {
	NamePos token.Pos
	Name    string
}

// FuncExpr is a single-parameter abstraction: fn x => body.
type FuncExpr struct {
	FnPos token.Pos
	Param *Ident
	Body  Expr
}

// CallExpr is an application: fun arg.
type CallExpr struct {
	Fun Expr
	Arg Expr
}

// IfExpr is a conditional: if cond then a else b.
type IfExpr struct {
	IfPos token.Pos
	Cond  Expr
	Then  Expr
	Else  Expr
}

// LetExpr binds a name for the scope of its body: let x = value in body.
type LetExpr struct {
	LetPos token.Pos
	Name   *Ident
	Value  Expr
	Body   Expr
}

func (x *NumberLit) Pos() token.Pos { return x.LitPos }
func (x *Ident) Pos() token.Pos     { return x.NamePos }
func (x *FuncExpr) Pos() token.Pos  { return x.FnPos }
func (x *CallExpr) Pos() token.Pos  { return x.Fun.Pos() }
func (x *IfExpr) Pos() token.Pos    { return x.IfPos }
func (x *LetExpr) Pos() token.Pos   { return x.LetPos }

func (x *NumberLit) End() token.Pos {
	return token.Pos{Row: x.LitPos.Row, Col: x.LitPos.Col + len(x.Lit)}
}
func (x *Ident) End() token.Pos {
	return token.Pos{Row: x.NamePos.Row, Col: x.NamePos.Col + len(x.Name)}
}
func (x *FuncExpr) End() token.Pos { return x.Body.End() }
func (x *CallExpr) End() token.Pos { return x.Arg.End() }
func (x *IfExpr) End() token.Pos   { return x.Else.End() }
func (x *LetExpr) End() token.Pos  { return x.Body.End() }

func (*NumberLit) exprNode() {}
func (*Ident) exprNode()     {}
func (*FuncExpr) exprNode()  {}
func (*CallExpr) exprNode()  {}
func (*IfExpr) exprNode()    {}
func (*LetExpr) exprNode()   {}

// Inspect traverses the tree in depth-first order, calling f for each node.
// If f returns false, the children of the node are skipped.
func Inspect(e Expr, f func(Expr) bool) {
	if e == nil || !f(e) {
		return
	}
	switch v := e.(type) {
	case *NumberLit, *Ident:
	case *FuncExpr:
		Inspect(v.Param, f)
		Inspect(v.Body, f)
	case *CallExpr:
		Inspect(v.Fun, f)
		Inspect(v.Arg, f)
	case *IfExpr:
		Inspect(v.Cond, f)
		Inspect(v.Then, f)
		Inspect(v.Else, f)
	case *LetExpr:
		Inspect(v.Name, f)
		Inspect(v.Value, f)
		Inspect(v.Body, f)
	}
}
