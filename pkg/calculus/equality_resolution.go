package calculus

import (
	"github.com/gitrdm/superpose/pkg/clause"
	"github.com/gitrdm/superpose/pkg/subst"
	"github.com/gitrdm/superpose/pkg/unify"
)

// EqualityResolution applies "From C ∨ s ≉ t, where σ = mgu(s, t),
// derive Cσ", subject to s ≉ t being eligible: selected, or, when no
// literal is selected, maximal in Cσ.
func EqualityResolution(ctx *Context, c *clause.Clause) []*clause.Clause {
	var out []*clause.Clause
	const scope subst.Scope = 0

	for i, lit := range c.Lits {
		if !lit.IsNegative() || !clause.Eligible(c, i) {
			continue
		}
		mgu, err := unify.Unify(ctx.Terms, subst.New(),
			subst.Scoped{Term: lit.L, Scope: scope}, subst.Scoped{Term: lit.R, Scope: scope})
		if err != nil {
			continue
		}

		renamer := ctx.fresh()
		full := substAll(ctx, mgu, renamer, c.Lits, scope)
		if c.Selected.IsEmpty() && !isMaximal(ctx.Ord, full, i) {
			continue
		}

		remainder := make([]clause.Literal, 0, len(full)-1)
		for k, l := range full {
			if k != i {
				remainder = append(remainder, l)
			}
		}

		proof := clause.NewInferenceStep("equality-resolution", clause.Premise{Clause: c, Subst: mgu})
		out = append(out, ctx.Clauses.Intern(remainder, c.Trail, proof))
	}
	return out
}
