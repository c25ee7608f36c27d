package term

// NonVariableSubterms returns every non-variable subterm of t (including t
// itself when applicable), the candidate set for the superposition
// inference's "s is not a variable" side condition and for demodulation's
// rewrite-site search. Bound variables (BVar) are included since they are
// rigid, not substitutable, positions.
func NonVariableSubterms(t *Term) []*Term {
	var out []*Term
	var walk func(*Term)
	walk = func(cur *Term) {
		if !cur.IsVar() {
			out = append(out, cur)
		}
		switch cur.Kind() {
		case KApp:
			walk(cur.Fn())
			for _, a := range cur.Args() {
				walk(a)
			}
		case KFun:
			walk(cur.Body())
		case KBuiltin:
			for _, a := range cur.Args() {
				walk(a)
			}
		}
	}
	walk(t)
	return out
}

// Replace rebuilds t with every occurrence of old (by hash-consed
// identity) replaced by new. Because structurally equal subterms are
// the same pointer, replacing "the occurrence at a position" and
// "every occurrence of that subterm" coincide under this
// representation; rewriting a single occurrence at one position is not
// offered.
func Replace(bank *Bank, t, old, newT *Term) *Term {
	if t == old {
		return newT
	}
	switch t.Kind() {
	case KApp:
		newFn := Replace(bank, t.Fn(), old, newT)
		args := t.Args()
		newArgs := make([]*Term, len(args))
		changed := newFn != t.Fn()
		for i, a := range args {
			newArgs[i] = Replace(bank, a, old, newT)
			if newArgs[i] != a {
				changed = true
			}
		}
		if !changed {
			return t
		}
		return bank.App(newFn, t.Type(), newArgs...)
	case KFun:
		newBody := Replace(bank, t.Body(), old, newT)
		if newBody == t.Body() {
			return t
		}
		return bank.Fun(nil, newBody, t.Type())
	case KBuiltin:
		args := t.Args()
		newArgs := make([]*Term, len(args))
		changed := false
		for i, a := range args {
			newArgs[i] = Replace(bank, a, old, newT)
			if newArgs[i] != a {
				changed = true
			}
		}
		if !changed {
			return t
		}
		return bank.Builtin(t.Tag(), t.Type(), newArgs...)
	default:
		return t
	}
}
