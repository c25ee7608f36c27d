package simplify

import (
	"github.com/gitrdm/superpose/pkg/clause"
	"github.com/gitrdm/superpose/pkg/subst"
	"github.com/gitrdm/superpose/pkg/term"
	"github.com/gitrdm/superpose/pkg/unify"
)

const scopeCondense subst.Scope = 40

// Condense removes a redundant literal from c by finding two distinct
// literals i ≠ j and a substitution θ of c's own variables (matching, never
// introducing new variables) with L_iθ = L_jθ; applying θ to the whole
// clause then makes L_i's image a duplicate of L_j's, and the shortened
// clause replaces c only when it also subsumes c, so the two are
// equivalent. Applied to a fixpoint.
func Condense(ctx *Context, c *clause.Clause) (*clause.Clause, bool) {
	cur := c
	changed := false
	for {
		next, did := condenseOnce(ctx, cur)
		if !did {
			return cur, changed
		}
		cur = next
		changed = true
	}
}

func condenseOnce(ctx *Context, c *clause.Clause) (*clause.Clause, bool) {
	for i, li := range c.Lits {
		for j, lj := range c.Lits {
			if i == j || li.IsTrue() || li.IsFalse() || lj.IsTrue() || lj.IsFalse() || li.Sign != lj.Sign {
				continue
			}
			for _, perm := range [2][2]*term.Term{{lj.L, lj.R}, {lj.R, lj.L}} {
				base := subst.New()
				s, err := unify.Match(ctx.Terms, base,
					subst.Scoped{Term: li.L, Scope: scopeCondense}, subst.Scoped{Term: perm[0], Scope: scopeCondense})
				if err != nil {
					continue
				}
				s, err = unify.Match(ctx.Terms, s,
					subst.Scoped{Term: li.R, Scope: scopeCondense}, subst.Scoped{Term: perm[1], Scope: scopeCondense})
				if err != nil {
					continue
				}

				renamer := ctx.fresh()
				theta := substAllSameScope(ctx, s, renamer, c.Lits)
				deduped := dedupeLits(theta)
				if len(deduped) < len(c.Lits) && Subsumes(ctx.Terms, &clause.Clause{Lits: deduped}, c) {
					proof := clause.NewInferenceStep("condensation", clause.Premise{Clause: c, Subst: s})
					return ctx.Clauses.Intern(deduped, c.Trail, proof), true
				}
			}
		}
	}
	return c, false
}

func substAllSameScope(ctx *Context, s *subst.Subst, renamer *subst.Renamer, lits []clause.Literal) []clause.Literal {
	out := make([]clause.Literal, len(lits))
	for i, l := range lits {
		if l.IsTrue() || l.IsFalse() {
			out[i] = l
			continue
		}
		nl := subst.WalkDeep(ctx.Terms, s, renamer, subst.Scoped{Term: l.L, Scope: scopeCondense})
		nr := subst.WalkDeep(ctx.Terms, s, renamer, subst.Scoped{Term: l.R, Scope: scopeCondense})
		ord := ctx.Ord.Compare(nl, nr)
		if l.Sign {
			out[i] = clause.Eq(nl, nr, ord)
		} else {
			out[i] = clause.Neq(nl, nr, ord)
		}
	}
	return out
}

func dedupeLits(lits []clause.Literal) []clause.Literal {
	var out []clause.Literal
	for _, l := range lits {
		dup := false
		for _, o := range out {
			if sameEquation(l, o) && l.Sign == o.Sign {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, l)
		}
	}
	return out
}
