package types

// Unify finds a substitution making x and y identical, or fails with a
// MismatchError (incompatible shapes or names) or an InfiniteTypeError
// (occurs check). It is a pure function of its two inputs: no environment
// lookups, no side effects, and symmetric in its variable handling.
func Unify(x, y Type) (Subst, error) {
	if xn, ok := x.(NamedType); ok {
		if yn, ok := y.(NamedType); ok && xn.Name == yn.Name {
			return Subst{}, nil
		}
	}
	if xv, ok := x.(VarType); ok {
		return bind(xv.Name, y)
	}
	if yv, ok := y.(VarType); ok {
		return bind(yv.Name, x)
	}
	if xf, ok := x.(FuncType); ok {
		if yf, ok := y.(FuncType); ok {
			// The from-sides must be solved first: a variable bound there
			// may occur free in either to-side.
			subs, err := Unify(xf.From, yf.From)
			if err != nil {
				return nil, err
			}
			toSubs, err := Unify(xf.To.Apply(subs), yf.To.Apply(subs))
			if err != nil {
				return nil, err
			}
			return subs.Compose(toSubs), nil
		}
	}
	return nil, NewMismatchError(x, y)
}

// bind resolves the variable name to t. Binding a variable to itself is a
// no-op; binding it to a type that contains it would build an infinitely
// unrolling type and is rejected by the occurs check.
func bind(name string, t Type) (Subst, error) {
	if v, ok := t.(VarType); ok && v.Name == name {
		return Subst{}, nil
	}
	if t.Contains(name) {
		return nil, NewInfiniteTypeError(name, t)
	}
	return Subst{name: t}, nil
}
