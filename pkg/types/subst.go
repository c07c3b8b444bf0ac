package types

import (
	"sort"
	"strings"
)

// Subst maps type-variable names to types.
type Subst map[string]Type

// Compose folds a newer substitution into s. Every type s already maps to
// has newer applied to it first, then newer's own bindings are inserted,
// overwriting s on key collision. The result is a fresh map; neither operand
// is mutated. Order matters: compose newer onto older, never the reverse.
func (s Subst) Compose(newer Subst) Subst {
	out := make(Subst, len(s)+len(newer))
	for k, v := range s {
		out[k] = v.Apply(newer)
	}
	for k, v := range newer {
		out[k] = v
	}
	return out
}

func (s Subst) String() string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteString("{")
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k)
		b.WriteString(" -> ")
		b.WriteString(s[k].String())
	}
	b.WriteString("}")
	return b.String()
}
