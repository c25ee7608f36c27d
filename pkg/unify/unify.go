// Package unify implements syntactic unification and matching over scoped
// terms, generalizing the teacher's primitives.go unify function — which
// walked a single-scope Substitution and recursed on Pair car/cdr — to
// scoped terms with an explicit occurs-check and a Robinson-style work list.
package unify

import (
	"errors"

	"github.com/gitrdm/superpose/pkg/subst"
	"github.com/gitrdm/superpose/pkg/term"
)

// Errors returned by Unify/Match. These are expected, frequent control-flow
// signals: rules check them locally with errors.Is and never let them
// propagate past the attempting rule.
var (
	ErrNoUnifier    = errors.New("unify: no unifier")
	ErrOccursCheck  = errors.New("unify: occurs check failed")
	ErrTypeMismatch = errors.New("unify: type mismatch")
)

type eqn struct {
	l, r subst.Scoped
}

// Unify computes the most general unifier of l and r (each in its own
// scope) with respect to the bindings already present in base,
// extending base rather than mutating it. On failure it returns
// (nil, ErrNoUnifier), (nil, ErrOccursCheck) or (nil, ErrTypeMismatch);
// base is never modified
// either way, since Subst.Bind is persistent.
func Unify(bank *term.Bank, base *subst.Subst, l, r subst.Scoped) (*subst.Subst, error) {
	work := []eqn{{l, r}}
	cur := base
	for len(work) > 0 {
		e := work[len(work)-1]
		work = work[:len(work)-1]

		wl := cur.Walk(e.l)
		wr := cur.Walk(e.r)

		if wl.Term == wr.Term && wl.Scope == wr.Scope {
			continue
		}

		switch {
		case wl.Term.IsVar():
			next, err := bindVar(bank, cur, wl, wr)
			if err != nil {
				return nil, err
			}
			cur = next

		case wr.Term.IsVar():
			next, err := bindVar(bank, cur, wr, wl)
			if err != nil {
				return nil, err
			}
			cur = next

		case wl.Term.Kind() != wr.Term.Kind():
			return nil, ErrNoUnifier

		case wl.Term.Type() != wr.Term.Type():
			return nil, ErrTypeMismatch

		default:
			switch wl.Term.Kind() {
			case term.KConst:
				if wl.Term.Symbol() != wr.Term.Symbol() {
					return nil, ErrNoUnifier
				}
			case term.KBVar:
				if wl.Term.BVarIndex() != wr.Term.BVarIndex() {
					return nil, ErrNoUnifier
				}
			case term.KApp:
				la, ra := wl.Term.Args(), wr.Term.Args()
				if len(la) != len(ra) {
					return nil, ErrNoUnifier
				}
				work = append(work, eqn{
					l: subst.Scoped{Term: wl.Term.Fn(), Scope: wl.Scope},
					r: subst.Scoped{Term: wr.Term.Fn(), Scope: wr.Scope},
				})
				for i := range la {
					work = append(work, eqn{
						l: subst.Scoped{Term: la[i], Scope: wl.Scope},
						r: subst.Scoped{Term: ra[i], Scope: wr.Scope},
					})
				}
			case term.KFun:
				work = append(work, eqn{
					l: subst.Scoped{Term: wl.Term.Body(), Scope: wl.Scope},
					r: subst.Scoped{Term: wr.Term.Body(), Scope: wr.Scope},
				})
			case term.KBuiltin:
				if wl.Term.Tag() != wr.Term.Tag() {
					return nil, ErrNoUnifier
				}
				la, ra := wl.Term.Args(), wr.Term.Args()
				if len(la) != len(ra) {
					return nil, ErrNoUnifier
				}
				for i := range la {
					work = append(work, eqn{
						l: subst.Scoped{Term: la[i], Scope: wl.Scope},
						r: subst.Scoped{Term: ra[i], Scope: wr.Scope},
					})
				}
			default:
				return nil, ErrNoUnifier
			}
		}
	}
	return cur, nil
}

// bindVar binds the variable side v to the other side other, after an
// occurs-check. v and other must already be dereferenced (Walk'd).
func bindVar(bank *term.Bank, cur *subst.Subst, v, other subst.Scoped) (*subst.Subst, error) {
	if v.Term.Type() != other.Term.Type() {
		return nil, ErrTypeMismatch
	}
	if occurs(cur, v.Term.VarID(), v.Scope, other) {
		return nil, ErrOccursCheck
	}
	return cur.Bind(v.Term.VarID(), v.Scope, other), nil
}

// occurs reports whether the variable (id, scope) occurs free in t
// once t is fully dereferenced through cur — the classic occurs-check
// guarding against building an infinite term.
func occurs(cur *subst.Subst, id int, scope subst.Scope, t subst.Scoped) bool {
	w := cur.Walk(t)
	if w.Term.IsVar() {
		return w.Term.VarID() == id && w.Scope == scope
	}
	switch w.Term.Kind() {
	case term.KApp:
		if occurs(cur, id, scope, subst.Scoped{Term: w.Term.Fn(), Scope: w.Scope}) {
			return true
		}
		for _, a := range w.Term.Args() {
			if occurs(cur, id, scope, subst.Scoped{Term: a, Scope: w.Scope}) {
				return true
			}
		}
		return false
	case term.KFun:
		return occurs(cur, id, scope, subst.Scoped{Term: w.Term.Body(), Scope: w.Scope})
	case term.KBuiltin:
		for _, a := range w.Term.Args() {
			if occurs(cur, id, scope, subst.Scoped{Term: a, Scope: w.Scope}) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
