package minml

import (
	"fmt"

	"minml/pkg/ast"
	"minml/pkg/token"
	"minml/pkg/types"
)

// Inferrer assigns a type to every expression of a tree. One Inferrer serves
// one inference run; run it again on another tree only with a fresh Env if
// the runs must not share type-variable names.
//
// Whenever a substitution is produced partway through a compound expression,
// it is applied to the environment before any sibling subexpression is
// inferred, and to any previously computed type before that type is unified
// again or returned. Stale types are the main correctness hazard here.
type Inferrer struct {
	Env       *Env
	nodeTypes map[ast.Expr]types.Type
	subs      types.Subst
}

func NewInferrer(env *Env) *Inferrer {
	return &Inferrer{Env: env, nodeTypes: make(map[ast.Expr]types.Type), subs: types.Subst{}}
}

// Infer types the expression under the inferrer's environment and returns
// its type along with the substitution accumulated while solving it. Any
// failure aborts the whole run; there are no partial results.
func (inf *Inferrer) Infer(e ast.Expr) (types.Type, types.Subst, error) {
	t, subs, err := inf.inferExpr(e, inf.Env)
	if err != nil {
		return nil, nil, err
	}
	inf.subs = subs
	return t, subs, nil
}

func (inf *Inferrer) inferExpr(e ast.Expr, env *Env) (types.Type, types.Subst, error) {
	switch v := e.(type) {
	case *ast.NumberLit:
		return inf.record(e, types.NamedType{Name: "Number"}), types.Subst{}, nil
	case *ast.Ident:
		t, ok := env.Get(v.Name)
		if !ok {
			return nil, nil, NewUnboundVariableError(v.Name, v.NamePos)
		}
		return inf.record(e, t), types.Subst{}, nil
	case *ast.FuncExpr:
		return inf.inferFunc(v, env)
	case *ast.CallExpr:
		return inf.inferCall(v, env)
	case *ast.IfExpr:
		return inf.inferIf(v, env)
	case *ast.LetExpr:
		return inf.inferLet(v, env)
	default:
		return nil, nil, fmt.Errorf("unexpected expression %T", e)
	}
}

func (inf *Inferrer) inferFunc(v *ast.FuncExpr, env *Env) (types.Type, types.Subst, error) {
	paramTy := env.Fresh()
	bodyTy, subs, err := inf.inferExpr(v.Body, env.With(v.Param.Name, paramTy))
	if err != nil {
		return nil, nil, err
	}
	// Inferring the body may have constrained the parameter.
	resolved := paramTy.Apply(subs)
	inf.record(v.Param, resolved)
	return inf.record(v, types.FuncType{From: resolved, To: bodyTy}), subs, nil
}

// inferCall types an application. The call site does not statically know the
// callee's return type, so a fresh variable stands in for it and is solved by
// unifying the callee's type against the arrow built from the argument.
func (inf *Inferrer) inferCall(v *ast.CallExpr, env *Env) (types.Type, types.Subst, error) {
	funTy, subs, err := inf.inferExpr(v.Fun, env)
	if err != nil {
		return nil, nil, err
	}
	argTy, argSubs, err := inf.inferExpr(v.Arg, env.Apply(subs))
	if err != nil {
		return nil, nil, err
	}
	retTy := env.Fresh()
	subs = subs.Compose(argSubs)

	callSubs, err := types.Unify(types.FuncType{From: argTy, To: retTy}, funTy.Apply(subs))
	if err != nil {
		return nil, nil, err
	}
	subs = subs.Compose(callSubs)

	fn, err := types.TryFunc(funTy.Apply(subs))
	if err != nil {
		return nil, nil, err
	}
	residual, err := types.Unify(fn.From.Apply(subs), argTy)
	if err != nil {
		return nil, nil, err
	}
	subs = subs.Compose(residual)
	return inf.record(v, fn.To.Apply(subs)), subs, nil
}

func (inf *Inferrer) inferIf(v *ast.IfExpr, env *Env) (types.Type, types.Subst, error) {
	condTy, subs, err := inf.inferExpr(v.Cond, env)
	if err != nil {
		return nil, nil, err
	}
	boolSubs, err := types.Unify(condTy, types.NamedType{Name: "Bool"})
	if err != nil {
		return nil, nil, err
	}
	subs = subs.Compose(boolSubs)

	env = env.Apply(subs)
	thenTy, thenSubs, err := inf.inferExpr(v.Then, env)
	if err != nil {
		return nil, nil, err
	}
	subs = subs.Compose(thenSubs)

	env = env.Apply(thenSubs)
	elseTy, elseSubs, err := inf.inferExpr(v.Else, env)
	if err != nil {
		return nil, nil, err
	}
	subs = subs.Compose(elseSubs)

	// Both branches must agree on a single type.
	thenTy = thenTy.Apply(subs)
	elseTy = elseTy.Apply(subs)
	branchSubs, err := types.Unify(thenTy, elseTy)
	if err != nil {
		return nil, nil, err
	}
	subs = subs.Compose(branchSubs)
	return inf.record(v, thenTy.Apply(branchSubs)), subs, nil
}

// inferLet binds a name monomorphically: the bound name receives the single
// concrete type inferred for its value, not a scheme, so it cannot be used at
// two different instantiations within the body.
func (inf *Inferrer) inferLet(v *ast.LetExpr, env *Env) (types.Type, types.Subst, error) {
	valTy, subs, err := inf.inferExpr(v.Value, env)
	if err != nil {
		return nil, nil, err
	}
	inf.record(v.Name, valTy)
	bodyTy, bodySubs, err := inf.inferExpr(v.Body, env.Apply(subs).With(v.Name.Name, valTy))
	if err != nil {
		return nil, nil, err
	}
	subs = subs.Compose(bodySubs)
	return inf.record(v, bodyTy), subs, nil
}

func (inf *Inferrer) record(e ast.Expr, t types.Type) types.Type {
	inf.nodeTypes[e] = t
	return t
}

// TypeOf returns the type recorded for a node during the last run, narrowed
// by the run's final substitution.
func (inf *Inferrer) TypeOf(e ast.Expr) (types.Type, bool) {
	t, ok := inf.nodeTypes[e]
	if !ok {
		return nil, false
	}
	return t.Apply(inf.subs), true
}

// TypeAt returns the innermost expression of root covering pos together with
// its inferred type.
func (inf *Inferrer) TypeAt(root ast.Expr, pos token.Pos) (types.Type, ast.Expr, bool) {
	var best ast.Expr
	ast.Inspect(root, func(n ast.Expr) bool {
		if n == nil {
			return false
		}
		if pos.Before(n.Pos()) || !pos.Before(n.End()) {
			return false
		}
		best = n
		return true
	})
	if best == nil {
		return nil, nil, false
	}
	t, ok := inf.TypeOf(best)
	return t, best, ok
}
