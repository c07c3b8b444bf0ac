package minml

import (
	"fmt"
	"sync/atomic"

	"minml/pkg/types"

	"github.com/benbjohnson/immutable"
)

// Env is the typing context: a persistent map from program variable names to
// types. Extending it with With yields a derived Env that shares structure
// with, and never affects, its parent, so each inference branch can carry its
// own bindings. All Envs derived from one root share a single fresh-variable
// counter; independent inference runs must each start from their own root so
// fresh names never collide across runs.
type Env struct {
	bindings *immutable.Map
	varCount *atomic.Int64
}

// NewEnv returns an environment holding the default prelude bindings
// (true and false as Bool).
func NewEnv() *Env {
	env, err := LoadPrelude(EmptyEnv(), defaultPrelude)
	if err != nil {
		// The default prelude is embedded in the binary; failing to parse it
		// is a build defect, not a runtime condition.
		panic(fmt.Sprintf("default prelude: %v", err))
	}
	return env
}

// EmptyEnv returns an environment with no bindings at all.
func EmptyEnv() *Env {
	return &Env{bindings: immutable.NewMap(nil), varCount: new(atomic.Int64)}
}

// Get looks up the type bound to name.
func (e *Env) Get(name string) (types.Type, bool) {
	v, ok := e.bindings.Get(name)
	if !ok {
		return nil, false
	}
	return v.(types.Type), true
}

// With returns a derived environment where name is bound to t, shadowing any
// previous binding. The receiver is left untouched.
func (e *Env) With(name string, t types.Type) *Env {
	return &Env{bindings: e.bindings.Set(name, t), varCount: e.varCount}
}

// Apply returns a derived environment with the substitution applied to every
// binding, so later lookups in the same branch see the narrowed types.
func (e *Env) Apply(subs types.Subst) *Env {
	if len(subs) == 0 {
		return e
	}
	m := immutable.NewMap(nil)
	itr := e.bindings.Iterator()
	for !itr.Done() {
		k, v := itr.Next()
		m = m.Set(k, v.(types.Type).Apply(subs))
	}
	return &Env{bindings: m, varCount: e.varCount}
}

// Fresh mints a type variable whose name has not been issued before within
// this run, including by any derived environment.
func (e *Env) Fresh() types.VarType {
	n := e.varCount.Add(1) - 1
	return types.VarType{Name: fmt.Sprintf("t%d", n)}
}

// Len returns the number of bindings.
func (e *Env) Len() int { return e.bindings.Len() }
