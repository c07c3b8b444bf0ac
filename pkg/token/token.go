package token

import "fmt"

type Kind int

const (
	ILLEGAL Kind = iota
	EOF

	IDENT  // x
	NUMBER // 42

	ASSIGN   // =
	FATARROW // =>
	ARROW    // ->
	LPAREN   // (
	RPAREN   // )

	LET
	IN
	IF
	THEN
	ELSE
	FN
)

var kindNames = map[Kind]string{
	ILLEGAL:  "ILLEGAL",
	EOF:      "EOF",
	IDENT:    "IDENT",
	NUMBER:   "NUMBER",
	ASSIGN:   "=",
	FATARROW: "=>",
	ARROW:    "->",
	LPAREN:   "(",
	RPAREN:   ")",
	LET:      "let",
	IN:       "in",
	IF:       "if",
	THEN:     "then",
	ELSE:     "else",
	FN:       "fn",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

var keywords = map[string]Kind{
	"let":  LET,
	"in":   IN,
	"if":   IF,
	"then": THEN,
	"else": ELSE,
	"fn":   FN,
}

// Lookup maps an identifier to its keyword kind, or IDENT.
func Lookup(lit string) Kind {
	if k, ok := keywords[lit]; ok {
		return k
	}
	return IDENT
}

// Pos is a 1-based row/column position in a source file.
type Pos struct {
	Row, Col int
}

func (p Pos) String() string { return fmt.Sprintf("%d:%d", p.Row, p.Col) }

func (p Pos) IsValid() bool { return p.Row > 0 }

// Before reports whether p is strictly before q in source order.
func (p Pos) Before(q Pos) bool {
	return p.Row < q.Row || (p.Row == q.Row && p.Col < q.Col)
}

func (p Pos) After(q Pos) bool { return q.Before(p) }

type Tok struct {
	Pos
	Kind Kind
	Lit  string
}

// End is the position one column past the token's last character.
func (t Tok) End() Pos { return Pos{Row: t.Row, Col: t.Col + len(t.Lit)} }

func (t Tok) String() string {
	return fmt.Sprintf("Tok('%s' %s)", t.Lit, t.Pos)
}

type TokenStream struct {
	pos    int
	tokens []Tok
}

func NewTokenStream(tokens []Tok) *TokenStream {
	return &TokenStream{tokens: tokens}
}

func (s *TokenStream) Back() {
	s.pos--
}

func (s *TokenStream) Next() Tok {
	if s.pos >= len(s.tokens) {
		return s.eof()
	}
	tok := s.tokens[s.pos]
	s.pos++
	return tok
}

func (s *TokenStream) Peek() Tok {
	if s.pos >= len(s.tokens) {
		return s.eof()
	}
	return s.tokens[s.pos]
}

func (s *TokenStream) eof() Tok {
	if len(s.tokens) > 0 {
		last := s.tokens[len(s.tokens)-1]
		return Tok{Pos: last.End(), Kind: EOF}
	}
	return Tok{Pos: Pos{Row: 1, Col: 1}, Kind: EOF}
}
