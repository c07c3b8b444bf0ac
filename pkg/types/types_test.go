package types

import (
	"testing"

	tassert "github.com/stretchr/testify/assert"
)

func TestApplyNamedUnchanged(t *testing.T) {
	subs := Subst{"a": NamedType{Name: "Bool"}}
	tassert.Equal(t, Type(NamedType{Name: "Number"}), NamedType{Name: "Number"}.Apply(subs))
}

func TestApplyVarResolves(t *testing.T) {
	subs := Subst{"a": NamedType{Name: "Bool"}}
	tassert.Equal(t, Type(NamedType{Name: "Bool"}), VarType{Name: "a"}.Apply(subs))
}

func TestApplyUnboundVarUnchanged(t *testing.T) {
	subs := Subst{"a": NamedType{Name: "Bool"}}
	tassert.Equal(t, Type(VarType{Name: "b"}), VarType{Name: "b"}.Apply(subs))
	// Applying again changes nothing for names not present as keys.
	tassert.Equal(t, Type(VarType{Name: "b"}), VarType{Name: "b"}.Apply(subs).Apply(subs))
}

func TestApplyFuncRebuilds(t *testing.T) {
	orig := FuncType{From: VarType{Name: "a"}, To: VarType{Name: "b"}}
	subs := Subst{"a": NamedType{Name: "Number"}}
	applied := orig.Apply(subs)
	tassert.Equal(t, "Number -> b", applied.String())
	tassert.Equal(t, "a -> b", orig.String())
}

func TestContains(t *testing.T) {
	ty := FuncType{From: VarType{Name: "a"}, To: FuncType{From: NamedType{Name: "Number"}, To: VarType{Name: "b"}}}
	tassert.True(t, ty.Contains("a"))
	tassert.True(t, ty.Contains("b"))
	tassert.False(t, ty.Contains("c"))
	tassert.False(t, NamedType{Name: "a"}.Contains("a"))
}

func TestTypeString(t *testing.T) {
	ty := FuncType{
		From: FuncType{From: VarType{Name: "a"}, To: VarType{Name: "b"}},
		To:   FuncType{From: VarType{Name: "a"}, To: VarType{Name: "b"}},
	}
	tassert.Equal(t, "(a -> b) -> a -> b", ty.String())
}

func TestTryFunc(t *testing.T) {
	fn, err := TryFunc(FuncType{From: NamedType{Name: "Number"}, To: NamedType{Name: "Bool"}})
	tassert.NoError(t, err)
	tassert.Equal(t, Type(NamedType{Name: "Number"}), fn.From)

	_, err = TryFunc(NamedType{Name: "Number"})
	var notAFunc *NotAFunctionError
	tassert.ErrorAs(t, err, &notAFunc)
}
