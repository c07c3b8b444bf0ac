package minml

import (
	"testing"

	"minml/pkg/types"

	tassert "github.com/stretchr/testify/assert"
)

func TestEnv1(t *testing.T) {
	env := NewEnv()
	tt, ok := env.Get("true")
	tassert.True(t, ok)
	tassert.Equal(t, "Bool", tt.String())
	tt, ok = env.Get("false")
	tassert.True(t, ok)
	tassert.Equal(t, "Bool", tt.String())
}

func TestEnv2(t *testing.T) {
	env := EmptyEnv()
	tassert.Equal(t, 0, env.Len())
	_, ok := env.Get("x")
	tassert.False(t, ok)
}

func TestEnvWithDoesNotMutateParent(t *testing.T) {
	parent := EmptyEnv()
	child := parent.With("x", types.NamedType{Name: "Number"})
	_, ok := parent.Get("x")
	tassert.False(t, ok)
	tt, ok := child.Get("x")
	tassert.True(t, ok)
	tassert.Equal(t, "Number", tt.String())
}

func TestEnvWithShadows(t *testing.T) {
	env := EmptyEnv().With("x", types.NamedType{Name: "Number"})
	shadowed := env.With("x", types.NamedType{Name: "Bool"})
	tt, _ := env.Get("x")
	tassert.Equal(t, "Number", tt.String())
	tt, _ = shadowed.Get("x")
	tassert.Equal(t, "Bool", tt.String())
}

func TestEnvApply(t *testing.T) {
	env := EmptyEnv().
		With("f", types.FuncType{From: types.VarType{Name: "a"}, To: types.VarType{Name: "b"}}).
		With("x", types.VarType{Name: "a"})
	narrowed := env.Apply(types.Subst{"a": types.NamedType{Name: "Number"}})

	tt, _ := narrowed.Get("f")
	tassert.Equal(t, "Number -> b", tt.String())
	tt, _ = narrowed.Get("x")
	tassert.Equal(t, "Number", tt.String())

	// The original environment still holds the unresolved types.
	tt, _ = env.Get("x")
	tassert.Equal(t, "a", tt.String())
}

func TestEnvFresh(t *testing.T) {
	env := EmptyEnv()
	tassert.Equal(t, "t0", env.Fresh().Name)
	tassert.Equal(t, "t1", env.Fresh().Name)

	// Derived environments share the counter, so no two scopes collide.
	child := env.With("x", types.NamedType{Name: "Number"})
	tassert.Equal(t, "t2", child.Fresh().Name)
	tassert.Equal(t, "t3", env.Fresh().Name)
}

func TestEnvFreshIndependentRoots(t *testing.T) {
	a := EmptyEnv()
	b := EmptyEnv()
	tassert.Equal(t, "t0", a.Fresh().Name)
	tassert.Equal(t, "t0", b.Fresh().Name)
}
