package minml

import (
	"testing"

	"minml/pkg/types"

	tassert "github.com/stretchr/testify/assert"
)

func TestParseType1(t *testing.T) {
	tt, err := ParseType("Bool")
	tassert.NoError(t, err)
	tassert.Equal(t, types.Type(types.NamedType{Name: "Bool"}), tt)
}

func TestParseType2(t *testing.T) {
	tt, err := ParseType("a")
	tassert.NoError(t, err)
	tassert.Equal(t, types.Type(types.VarType{Name: "a"}), tt)
}

func TestParseType3(t *testing.T) {
	// Arrows associate to the right.
	tt, err := ParseType("a -> a -> Bool")
	tassert.NoError(t, err)
	fn := tt.(types.FuncType)
	tassert.Equal(t, types.Type(types.VarType{Name: "a"}), fn.From)
	tassert.Equal(t, "a -> Bool", fn.To.String())
}

func TestParseType4(t *testing.T) {
	tt, err := ParseType("(Number -> Bool) -> Number")
	tassert.NoError(t, err)
	fn := tt.(types.FuncType)
	tassert.Equal(t, "Number -> Bool", fn.From.String())
	tassert.Equal(t, types.Type(types.NamedType{Name: "Number"}), fn.To)
}

func TestParseTypeErrors(t *testing.T) {
	var syntaxErr *SyntaxError
	_, err := ParseType("->")
	tassert.ErrorAs(t, err, &syntaxErr)
	_, err = ParseType("Bool ->")
	tassert.ErrorAs(t, err, &syntaxErr)
	_, err = ParseType("(Bool")
	tassert.ErrorAs(t, err, &syntaxErr)
	_, err = ParseType("Bool Bool")
	tassert.ErrorAs(t, err, &syntaxErr)
}

func TestLoadPrelude(t *testing.T) {
	src := `
bindings:
  not: Bool -> Bool
  choose: a -> a -> a
`
	env, err := LoadPrelude(NewEnv(), []byte(src))
	tassert.NoError(t, err)

	tt, ok := env.Get("not")
	tassert.True(t, ok)
	tassert.Equal(t, "Bool -> Bool", tt.String())

	tt, ok = env.Get("choose")
	tassert.True(t, ok)
	tassert.Equal(t, "a -> a -> a", tt.String())

	// Defaults survive the merge.
	_, ok = env.Get("true")
	tassert.True(t, ok)
}

func TestLoadPreludeBadYaml(t *testing.T) {
	_, err := LoadPrelude(EmptyEnv(), []byte(`bindings: [nope`))
	tassert.Error(t, err)
}

func TestLoadPreludeBadType(t *testing.T) {
	_, err := LoadPrelude(EmptyEnv(), []byte("bindings:\n  broken: \"Bool ->\""))
	tassert.ErrorContains(t, err, "broken")
}

func TestPreludeUsedByInference(t *testing.T) {
	env, err := LoadPrelude(NewEnv(), []byte("bindings:\n  not: Bool -> Bool"))
	tassert.NoError(t, err)
	root, err := ParseSrc(`if not true then 1 else 2`)
	tassert.NoError(t, err)
	tt, _, err := NewInferrer(env).Infer(root)
	tassert.NoError(t, err)
	tassert.Equal(t, "Number", tt.String())
}
