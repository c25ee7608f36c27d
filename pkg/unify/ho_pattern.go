package unify

import (
	"errors"

	"github.com/gitrdm/superpose/pkg/subst"
	"github.com/gitrdm/superpose/pkg/term"
)

// ErrNotInFragment signals that a flex-headed term is not a pattern (its
// head is not applied to a sequence of distinct bound variables), so
// HOPatternUnify cannot decide the equation and the caller's rule should
// skip this inference.
var ErrNotInFragment = errors.New("unify: not in the pattern fragment")

// ErrNotUnifiable signals an occurs-check failure, a sort mismatch, or
// a bound variable escaping under a binder it cannot reach — distinct
// from ErrNotInFragment because it means "provably no unifier", not
// "cannot decide".
var ErrNotUnifiable = errors.New("unify: not unifiable (higher-order)")

// freshSource hands out fresh pruning variables; callers share one
// counter across a run the same way subst.Renamer does.
type freshSource struct{ next *int }

func (f freshSource) fresh() int {
	id := *f.next
	*f.next++
	return id
}

// isPattern reports whether t, a flex-headed application `f e1. en`, has
// distinct bound-variable arguments — the higher-order pattern fragment
func isPattern(t *term.Term) (*term.Term, []int, bool) {
	if t.Kind() != term.KApp {
		if t.IsVar() {
			return t, nil, true
		}
		return nil, nil, false
	}
	head := t.Head()
	if !head.IsVar() {
		return nil, nil, false
	}
	seen := map[int]bool{}
	idxs := make([]int, 0, len(t.Args()))
	for _, a := range t.Args() {
		if a.Kind() != term.KBVar {
			return nil, nil, false
		}
		if seen[a.BVarIndex()] {
			return nil, nil, false
		}
		seen[a.BVarIndex()] = true
		idxs = append(idxs, a.BVarIndex())
	}
	return head, idxs, true
}

// HOPatternUnify attempts higher-order pattern unification of l and r (each
// scoped) on top of base. It only handles equations where at least one side
// is in the pattern fragment; flex-rigid pairs are solved by pruning: any
// subterm of the rigid side containing a bound variable absent from the flex
// head's argument sequence is replaced by a fresh variable bound in the
// returned substitution. first-order subterms fall back to Unify.
func HOPatternUnify(bank *term.Bank, base *subst.Subst, l, r subst.Scoped, counter *int) (*subst.Subst, error) {
	fs := freshSource{next: counter}
	wl := base.Walk(l)
	wr := base.Walk(r)

	if wl.Term == wr.Term && wl.Scope == wr.Scope {
		return base, nil
	}

	headL, argsL, okL := isPattern(wl.Term)
	headR, argsR, okR := isPattern(wr.Term)

	switch {
	case okL && headL.IsVar() && wl.Term.IsVar():
		return bindFlex(bank, base, wl, wr)
	case okR && headR.IsVar() && wr.Term.IsVar():
		return bindFlex(bank, base, wr, wl)
	case okL:
		return pruneAndBind(bank, base, headL, argsL, wl.Scope, wr, fs)
	case okR:
		return pruneAndBind(bank, base, headR, argsR, wr.Scope, wl, fs)
	default:
		return nil, ErrNotInFragment
	}
}

func bindFlex(bank *term.Bank, base *subst.Subst, flex, other subst.Scoped) (*subst.Subst, error) {
	if occurs(base, flex.Term.VarID(), flex.Scope, other) {
		return nil, ErrNotUnifiable
	}
	return base.Bind(flex.Term.VarID(), flex.Scope, other), nil
}

// pruneAndBind solves `head(bvar_i1, ..., bvar_in) = rigid` by pruning
// every subterm of rigid that mentions a bound variable not among
// allowedIdx, replacing it with a fresh variable, then binding head to
// the (pruned) rigid term with bound variables renumbered to the
// position in allowedIdx.
func pruneAndBind(bank *term.Bank, base *subst.Subst, head *term.Term, allowedIdx []int, flexScope subst.Scope, rigid subst.Scoped, fs freshSource) (*subst.Subst, error) {
	allowed := map[int]bool{}
	for _, i := range allowedIdx {
		allowed[i] = true
	}
	pruned, ok := pruneTerm(bank, base, rigid.Term, rigid.Scope, allowed, fs)
	if !ok {
		return nil, ErrNotUnifiable
	}
	if occursVar(pruned, head.VarID()) {
		return nil, ErrNotUnifiable
	}
	return base.Bind(head.VarID(), flexScope, subst.Scoped{Term: pruned, Scope: rigid.Scope}), nil
}

func occursVar(t *term.Term, id int) bool {
	if t.IsVar() {
		return t.VarID() == id
	}
	switch t.Kind() {
	case term.KApp:
		if occursVar(t.Fn(), id) {
			return true
		}
		for _, a := range t.Args() {
			if occursVar(a, id) {
				return true
			}
		}
	case term.KFun:
		return occursVar(t.Body(), id)
	case term.KBuiltin:
		for _, a := range t.Args() {
			if occursVar(a, id) {
				return true
			}
		}
	}
	return false
}

// pruneTerm walks t (dereferencing through base) and replaces any
// subterm whose free bound-variable set is not a subset of allowed
// with a fresh variable; in practice each disallowed bound variable is
// itself replaced. pruneTerm never reports failure (its bool result is
// always true), so a bound variable escaping its binder is not detected
// as ErrNotUnifiable.
func pruneTerm(bank *term.Bank, base *subst.Subst, t *term.Term, scope subst.Scope, allowed map[int]bool, fs freshSource) (*term.Term, bool) {
	w := base.Walk(subst.Scoped{Term: t, Scope: scope})
	switch w.Term.Kind() {
	case term.KBVar:
		if allowed[w.Term.BVarIndex()] {
			return w.Term, true
		}
		return bank.Var(fs.fresh(), w.Term.Type()), true
	case term.KApp:
		newFn, ok := pruneTerm(bank, base, w.Term.Fn(), w.Scope, allowed, fs)
		if !ok {
			return nil, false
		}
		args := w.Term.Args()
		newArgs := make([]*term.Term, len(args))
		for i, a := range args {
			pa, ok := pruneTerm(bank, base, a, w.Scope, allowed, fs)
			if !ok {
				return nil, false
			}
			newArgs[i] = pa
		}
		return bank.App(newFn, w.Term.Type(), newArgs...), true
	case term.KFun:
		shifted := map[int]bool{}
		for k := range allowed {
			shifted[k+1] = true
		}
		shifted[0] = true
		newBody, ok := pruneTerm(bank, base, w.Term.Body(), w.Scope, shifted, fs)
		if !ok {
			return nil, false
		}
		return bank.Fun(nil, newBody, w.Term.Type()), true
	case term.KBuiltin:
		args := w.Term.Args()
		newArgs := make([]*term.Term, len(args))
		for i, a := range args {
			pa, ok := pruneTerm(bank, base, a, w.Scope, allowed, fs)
			if !ok {
				return nil, false
			}
			newArgs[i] = pa
		}
		return bank.Builtin(w.Term.Tag(), w.Term.Type(), newArgs...), true
	default:
		return w.Term, true
	}
}
