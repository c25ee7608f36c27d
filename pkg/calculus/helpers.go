package calculus

import (
	"github.com/gitrdm/superpose/pkg/clause"
	"github.com/gitrdm/superpose/pkg/order"
	"github.com/gitrdm/superpose/pkg/subst"
	"github.com/gitrdm/superpose/pkg/term"
)

// substLiteral applies mgu to l (dereferencing through renamer into a
// single output scope) and recomputes its orientation under the
// active ordering, since substitution can change which side is
// larger.
func substLiteral(ctx *Context, mgu *subst.Subst, renamer *subst.Renamer, scope subst.Scope, l clause.Literal) clause.Literal {
	if l.IsTrue() {
		return clause.TrueLit
	}
	if l.IsFalse() {
		return clause.FalseLit
	}
	nl := subst.WalkDeep(ctx.Terms, mgu, renamer, subst.Scoped{Term: l.L, Scope: scope})
	nr := subst.WalkDeep(ctx.Terms, mgu, renamer, subst.Scoped{Term: l.R, Scope: scope})
	ord := ctx.Ord.Compare(nl, nr)
	if l.Sign {
		return clause.Eq(nl, nr, ord)
	}
	return clause.Neq(nl, nr, ord)
}

// substAll substitutes every literal of lits under scope.
func substAll(ctx *Context, mgu *subst.Subst, renamer *subst.Renamer, lits []clause.Literal, scope subst.Scope) []clause.Literal {
	out := make([]clause.Literal, len(lits))
	for i, l := range lits {
		out[i] = substLiteral(ctx, mgu, renamer, scope, l)
	}
	return out
}

// substAllExcept substitutes every literal of lits under scope except
// the one at index except, used to build the "remainder" clause C of
// a premise C ∨ L consumed by an inference on L.
func substAllExcept(ctx *Context, mgu *subst.Subst, renamer *subst.Renamer, lits []clause.Literal, scope subst.Scope, except int) []clause.Literal {
	out := make([]clause.Literal, 0, len(lits))
	for i, l := range lits {
		if i == except {
			continue
		}
		out = append(out, substLiteral(ctx, mgu, renamer, scope, l))
	}
	return out
}

// rewriteLiteralAt rebuilds lit with every occurrence of old replaced
// by newT on both sides, recomputing orientation.
func rewriteLiteralAt(ctx *Context, lit clause.Literal, old, newT *term.Term) clause.Literal {
	if lit.IsTrue() || lit.IsFalse() {
		return lit
	}
	nl := term.Replace(ctx.Terms, lit.L, old, newT)
	nr := term.Replace(ctx.Terms, lit.R, old, newT)
	ord := ctx.Ord.Compare(nl, nr)
	if lit.Sign {
		return clause.Eq(nl, nr, ord)
	}
	return clause.Neq(nl, nr, ord)
}

// isMaximal reports whether lits[i] is (one of) the maximal literal(s)
// of lits: no other literal strictly dominates it.
func isMaximal(ord order.Ordering, lits []clause.Literal, i int) bool {
	for j, other := range lits {
		if j == i {
			continue
		}
		if clause.CompareOrder(ord, other, lits[i]) == order.Gt {
			return false
		}
	}
	return true
}
