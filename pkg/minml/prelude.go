package minml

import (
	_ "embed"
	"fmt"
	"sort"
	"unicode"
	"unicode/utf8"

	"minml/pkg/token"
	"minml/pkg/types"

	"gopkg.in/yaml.v3"
)

//go:embed prelude.yaml
var defaultPrelude []byte

type preludeDoc struct {
	Bindings map[string]string `yaml:"bindings"`
}

// LoadPrelude extends env with bindings declared in a YAML prelude document.
// Each binding value is a type expression, e.g. "Bool", "Number -> Bool" or
// "a -> a". Bindings are applied in name order so load is deterministic.
func LoadPrelude(env *Env, data []byte) (*Env, error) {
	var doc preludeDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse prelude: %w", err)
	}
	names := make([]string, 0, len(doc.Bindings))
	for name := range doc.Bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		t, err := ParseType(doc.Bindings[name])
		if err != nil {
			return nil, fmt.Errorf("prelude binding %q: %w", name, err)
		}
		env = env.With(name, t)
	}
	return env, nil
}

// ParseType parses a type expression. Names starting with an upper-case
// letter are named types, others are type variables; arrows associate to
// the right, so "a -> a -> Bool" is "a -> (a -> Bool)".
func ParseType(src string) (types.Type, error) {
	toks, err := Lex(src)
	if err != nil {
		return nil, err
	}
	p := &typeParser{ts: token.NewTokenStream(toks)}
	t, err := p.parse()
	if err != nil {
		return nil, err
	}
	if tok := p.ts.Peek(); tok.Kind != token.EOF {
		return nil, &SyntaxError{Pos: tok.Pos, Msg: fmt.Sprintf("unexpected %s after type", tok)}
	}
	return t, nil
}

type typeParser struct {
	ts *token.TokenStream
}

func (p *typeParser) parse() (types.Type, error) {
	left, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if p.ts.Peek().Kind == token.ARROW {
		p.ts.Next()
		right, err := p.parse()
		if err != nil {
			return nil, err
		}
		return types.FuncType{From: left, To: right}, nil
	}
	return left, nil
}

func (p *typeParser) parseAtom() (types.Type, error) {
	tok := p.ts.Next()
	switch tok.Kind {
	case token.IDENT:
		ch, _ := utf8.DecodeRuneInString(tok.Lit)
		if unicode.IsUpper(ch) {
			return types.NamedType{Name: tok.Lit}, nil
		}
		return types.VarType{Name: tok.Lit}, nil
	case token.LPAREN:
		t, err := p.parse()
		if err != nil {
			return nil, err
		}
		if closing := p.ts.Next(); closing.Kind != token.RPAREN {
			return nil, &SyntaxError{Pos: closing.Pos, Msg: fmt.Sprintf("expected ')', got %s", closing)}
		}
		return t, nil
	default:
		return nil, &SyntaxError{Pos: tok.Pos, Msg: fmt.Sprintf("expected type name, got %s", tok)}
	}
}
