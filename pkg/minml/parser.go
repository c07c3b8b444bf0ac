package minml

import (
	"fmt"
	"strconv"

	"minml/pkg/ast"
	"minml/pkg/token"
)

// ParseSrc lexes and parses a whole source file into a single expression.
func ParseSrc(src string) (ast.Expr, error) {
	toks, err := Lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{ts: token.NewTokenStream(toks)}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if tok := p.ts.Peek(); tok.Kind != token.EOF {
		return nil, &SyntaxError{Pos: tok.Pos, Msg: fmt.Sprintf("unexpected %s after expression", tok)}
	}
	return e, nil
}

type parser struct {
	ts *token.TokenStream
}

func (p *parser) expect(kind token.Kind) (token.Tok, error) {
	tok := p.ts.Next()
	if tok.Kind != kind {
		return tok, &SyntaxError{Pos: tok.Pos, Msg: fmt.Sprintf("expected '%s', got %s", kind, tok)}
	}
	return tok, nil
}

func (p *parser) expectIdent() (*ast.Ident, error) {
	tok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	return &ast.Ident{NamePos: tok.Pos, Name: tok.Lit}, nil
}

func (p *parser) parseExpr() (ast.Expr, error) {
	switch p.ts.Peek().Kind {
	case token.LET:
		return p.parseLet()
	case token.IF:
		return p.parseIf()
	case token.FN:
		return p.parseFn()
	default:
		return p.parseCall()
	}
}

func (p *parser) parseLet() (ast.Expr, error) {
	letTok := p.ts.Next()
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ASSIGN); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.IN); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.LetExpr{LetPos: letTok.Pos, Name: name, Value: value, Body: body}, nil
}

func (p *parser) parseIf() (ast.Expr, error) {
	ifTok := p.ts.Next()
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.THEN); err != nil {
		return nil, err
	}
	thenBranch, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ELSE); err != nil {
		return nil, err
	}
	elseBranch, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.IfExpr{IfPos: ifTok.Pos, Cond: cond, Then: thenBranch, Else: elseBranch}, nil
}

func (p *parser) parseFn() (ast.Expr, error) {
	fnTok := p.ts.Next()
	param, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.FATARROW); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.FuncExpr{FnPos: fnTok.Pos, Param: param, Body: body}, nil
}

// parseCall parses one or more atoms; adjacency is application and
// associates to the left, so "f a b" is "(f a) b".
func (p *parser) parseCall() (ast.Expr, error) {
	fun, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for {
		switch p.ts.Peek().Kind {
		case token.NUMBER, token.IDENT, token.LPAREN:
			arg, err := p.parseAtom()
			if err != nil {
				return nil, err
			}
			fun = &ast.CallExpr{Fun: fun, Arg: arg}
		default:
			return fun, nil
		}
	}
}

func (p *parser) parseAtom() (ast.Expr, error) {
	tok := p.ts.Next()
	switch tok.Kind {
	case token.NUMBER:
		v, err := strconv.Atoi(tok.Lit)
		if err != nil {
			return nil, &SyntaxError{Pos: tok.Pos, Msg: fmt.Sprintf("invalid number literal %q", tok.Lit)}
		}
		return &ast.NumberLit{LitPos: tok.Pos, Value: v, Lit: tok.Lit}, nil
	case token.IDENT:
		return &ast.Ident{NamePos: tok.Pos, Name: tok.Lit}, nil
	case token.LPAREN:
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return e, nil
	default:
		return nil, &SyntaxError{Pos: tok.Pos, Msg: fmt.Sprintf("expected expression, got %s", tok)}
	}
}
