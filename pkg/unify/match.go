package unify

import (
	"github.com/gitrdm/superpose/pkg/subst"
	"github.com/gitrdm/superpose/pkg/term"
)

// Match unifies a pattern against a subject, restricting new bindings to
// variables of the pattern's scope. It never binds a subject-side variable.
func Match(bank *term.Bank, base *subst.Subst, pattern, subject subst.Scoped) (*subst.Subst, error) {
	return MatchLocked(bank, base, pattern, subject, nil)
}

// MatchLocked is Match with an additional set of locked variable ids (in the
// pattern's scope) that must not be bound — used by demodulation (the
// rewrite rule's own variables already fixed by an enclosing context) and by
// subsumption.
func MatchLocked(bank *term.Bank, base *subst.Subst, pattern, subject subst.Scoped, locked map[int]bool) (*subst.Subst, error) {
	cur := base
	var rec func(p, s subst.Scoped) error
	rec = func(p, s subst.Scoped) error {
		wp := cur.Walk(p)
		ws := cur.Walk(s)

		if wp.Term.IsVar() && wp.Scope == pattern.Scope {
			if locked != nil && locked[wp.Term.VarID()] {
				if wp.Term == ws.Term && wp.Scope == ws.Scope {
					return nil
				}
				return ErrNoUnifier
			}
			if existing, ok := cur.Lookup(wp.Term.VarID(), wp.Scope); ok {
				if existing.Term == ws.Term && existing.Scope == ws.Scope {
					return nil
				}
				return ErrNoUnifier
			}
			if wp.Term.Type() != ws.Term.Type() {
				return ErrTypeMismatch
			}
			cur = cur.Bind(wp.Term.VarID(), wp.Scope, ws)
			return nil
		}

		if wp.Term.Kind() != ws.Term.Kind() {
			return ErrNoUnifier
		}
		if wp.Term.Type() != ws.Term.Type() {
			return ErrTypeMismatch
		}

		switch wp.Term.Kind() {
		case term.KVar:
			// Pattern variable not from the pattern's own scope: treat
			// as a rigid identity check (it belongs to an outer context).
			if wp.Term != ws.Term || wp.Scope != ws.Scope {
				return ErrNoUnifier
			}
			return nil
		case term.KConst:
			if wp.Term.Symbol() != ws.Term.Symbol() {
				return ErrNoUnifier
			}
			return nil
		case term.KBVar:
			if wp.Term.BVarIndex() != ws.Term.BVarIndex() {
				return ErrNoUnifier
			}
			return nil
		case term.KApp:
			pa, sa := wp.Term.Args(), ws.Term.Args()
			if len(pa) != len(sa) {
				return ErrNoUnifier
			}
			if err := rec(
				subst.Scoped{Term: wp.Term.Fn(), Scope: wp.Scope},
				subst.Scoped{Term: ws.Term.Fn(), Scope: ws.Scope}); err != nil {
				return err
			}
			for i := range pa {
				if err := rec(
					subst.Scoped{Term: pa[i], Scope: wp.Scope},
					subst.Scoped{Term: sa[i], Scope: ws.Scope}); err != nil {
					return err
				}
			}
			return nil
		case term.KFun:
			return rec(
				subst.Scoped{Term: wp.Term.Body(), Scope: wp.Scope},
				subst.Scoped{Term: ws.Term.Body(), Scope: ws.Scope})
		case term.KBuiltin:
			if wp.Term.Tag() != ws.Term.Tag() {
				return ErrNoUnifier
			}
			pa, sa := wp.Term.Args(), ws.Term.Args()
			if len(pa) != len(sa) {
				return ErrNoUnifier
			}
			for i := range pa {
				if err := rec(
					subst.Scoped{Term: pa[i], Scope: wp.Scope},
					subst.Scoped{Term: sa[i], Scope: ws.Scope}); err != nil {
					return err
				}
			}
			return nil
		default:
			return ErrNoUnifier
		}
	}

	if err := rec(pattern, subject); err != nil {
		return nil, err
	}
	return cur, nil
}
