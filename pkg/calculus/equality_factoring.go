package calculus

import (
	"github.com/gitrdm/superpose/pkg/clause"
	"github.com/gitrdm/superpose/pkg/order"
	"github.com/gitrdm/superpose/pkg/subst"
	"github.com/gitrdm/superpose/pkg/term"
	"github.com/gitrdm/superpose/pkg/unify"
)

// EqualityFactoring applies "From C ∨ s ≈ t ∨ s' ≈ t', where
// σ = mgu(s, s'), derive (C ∨ t ≉ t' ∨ s' ≈ t')σ", subject to s ≈ t
// being eligible and maximal, tσ ⊁ sσ and t'σ ⊁ s'σ.
func EqualityFactoring(ctx *Context, c *clause.Clause) []*clause.Clause {
	var out []*clause.Clause
	const scope subst.Scope = 0

	for i, li := range c.Lits {
		if !li.IsPositive() || !clause.Eligible(c, i) {
			continue
		}
		for j, lj := range c.Lits {
			if i == j || !lj.IsPositive() || !clause.Eligible(c, j) {
				continue
			}
			for _, ends1 := range [][2]*term.Term{{li.L, li.R}, {li.R, li.L}} {
				s, t := ends1[0], ends1[1]
				for _, ends2 := range [][2]*term.Term{{lj.L, lj.R}, {lj.R, lj.L}} {
					sp, tp := ends2[0], ends2[1]

					mgu, err := unify.Unify(ctx.Terms, subst.New(),
						subst.Scoped{Term: s, Scope: scope}, subst.Scoped{Term: sp, Scope: scope})
					if err != nil {
						continue
					}

					renamer := ctx.fresh()
					sσ := subst.WalkDeep(ctx.Terms, mgu, renamer, subst.Scoped{Term: s, Scope: scope})
					tσ := subst.WalkDeep(ctx.Terms, mgu, renamer, subst.Scoped{Term: t, Scope: scope})
					if ctx.Ord.Compare(sσ, tσ) == order.Lt {
						continue
					}
					spσ := subst.WalkDeep(ctx.Terms, mgu, renamer, subst.Scoped{Term: sp, Scope: scope})
					tpσ := subst.WalkDeep(ctx.Terms, mgu, renamer, subst.Scoped{Term: tp, Scope: scope})
					if ctx.Ord.Compare(spσ, tpσ) == order.Lt {
						continue
					}

					full := substAll(ctx, mgu, renamer, c.Lits, scope)
					if !isMaximal(ctx.Ord, full, i) {
						continue
					}

					rest := make([]clause.Literal, 0, len(c.Lits)+1)
					for k, l := range full {
						if k == i || k == j {
							continue
						}
						rest = append(rest, l)
					}
					rest = append(rest, clause.Neq(tσ, tpσ, ctx.Ord.Compare(tσ, tpσ)))
					rest = append(rest, clause.Eq(spσ, tpσ, ctx.Ord.Compare(spσ, tpσ)))

					proof := clause.NewInferenceStep("equality-factoring", clause.Premise{Clause: c, Subst: mgu})
					out = append(out, ctx.Clauses.Intern(rest, c.Trail, proof))
				}
			}
		}
	}
	return out
}
