package calculus

import (
	"github.com/gitrdm/superpose/pkg/clause"
	"github.com/gitrdm/superpose/pkg/order"
	"github.com/gitrdm/superpose/pkg/subst"
	"github.com/gitrdm/superpose/pkg/term"
	"github.com/gitrdm/superpose/pkg/unify"
)

// Superposition is the standard equational calculus: superposition
// (left and right) as the single binary rule, equality resolution and
// equality factoring as the unary rules.
type Superposition struct{}

// NewSuperposition returns the standard calculus.
func NewSuperposition() *Superposition { return &Superposition{} }

func (*Superposition) Binary() []BinaryRule { return []BinaryRule{BinarySuperposition} }
func (*Superposition) Unary() []UnaryRule   { return []UnaryRule{EqualityResolution, EqualityFactoring} }

// IsTrivial reports the cheap, syntactic half of tautology detection:
// a reflexive positive literal, or a literal appearing together with
// its own negation. Package simplify's IsTautology additionally
// recognizes complementary literals whose sides are swapped; no
// ordering-aware tautology check exists in either package.
func (*Superposition) IsTrivial(c *clause.Clause) bool {
	for _, l := range c.Lits {
		if l.IsTrue() {
			return true
		}
		if l.IsPositive() && l.L == l.R {
			return true
		}
	}
	for i, li := range c.Lits {
		for j := i + 1; j < len(c.Lits); j++ {
			if li.Negate().Equal(c.Lits[j]) {
				return true
			}
		}
	}
	return false
}

// scopeFrom/scopeInto are the two fixed scope tags superposition uses
// to keep its two premises' variables disjoint without renaming them
// up front; a fresh Renamer maps whichever of the two actually survive
// into one shared output scope for the conclusion.
const (
	scopeFrom subst.Scope = 0
	scopeInto subst.Scope = 1
)

// BinarySuperposition applies the superposition rule with c1 as
// equation source and c2 as rewrite target, and vice versa: "From
// C ∨ l ≈ r and D[s] (s not a variable), where σ = mgu(l, s), derive
// (C ∨ D[r])σ", subject to the ordering/eligibility side conditions
// (rσ ⊁ lσ, lσ ≈ rσ maximal in the premise, D[s] maximal in D).
func BinarySuperposition(ctx *Context, c1, c2 *clause.Clause) []*clause.Clause {
	out := superposeFrom(ctx, c1, c2)
	out = append(out, superposeFrom(ctx, c2, c1)...)
	return out
}

func superposeFrom(ctx *Context, from, into *clause.Clause) []*clause.Clause {
	var results []*clause.Clause

	for i, lit := range from.Lits {
		if !lit.IsPositive() || !clause.Eligible(from, i) {
			continue
		}
		for _, ori := range [][2]*term.Term{{lit.L, lit.R}, {lit.R, lit.L}} {
			l, r := ori[0], ori[1]
			if l.IsVar() {
				continue
			}
			for j, litD := range into.Lits {
				if !clause.Eligible(into, j) {
					continue
				}
				for endIdx, end := range litD.Ends() {
					// Only rewrite from D's maximal side: endIdx 0 is L, 1 is
					// R, and Orient (L vs R) says which dominates. Both
					// sides stay eligible when they're Eq/Incomparable,
					// since neither then dominates the other.
					if litD.Orient == order.Gt && endIdx != 0 {
						continue
					}
					if litD.Orient == order.Lt && endIdx != 1 {
						continue
					}
					for _, s := range term.NonVariableSubterms(end) {
						if s.IsVar() {
							continue
						}
						mgu, err := unify.Unify(ctx.Terms, subst.New(),
							subst.Scoped{Term: l, Scope: scopeFrom}, subst.Scoped{Term: s, Scope: scopeInto})
						if err != nil {
							continue
						}

						renamer := ctx.fresh()
						lσ := subst.WalkDeep(ctx.Terms, mgu, renamer, subst.Scoped{Term: l, Scope: scopeFrom})
						rσ := subst.WalkDeep(ctx.Terms, mgu, renamer, subst.Scoped{Term: r, Scope: scopeFrom})
						if ctx.Ord.Compare(lσ, rσ) == order.Lt {
							continue
						}

						Cσ := substAllExcept(ctx, mgu, renamer, from.Lits, scopeFrom, i)
						eqLit := clause.Eq(lσ, rσ, ctx.Ord.Compare(lσ, rσ))
						candidate := append(append([]clause.Literal{}, Cσ...), eqLit)
						if !isMaximal(ctx.Ord, candidate, len(Cσ)) {
							continue
						}

						Dσ := substAll(ctx, mgu, renamer, into.Lits, scopeInto)
						if !isMaximal(ctx.Ord, Dσ, j) {
							continue
						}

						sσ := subst.WalkDeep(ctx.Terms, mgu, renamer, subst.Scoped{Term: s, Scope: scopeInto})
						newDj := rewriteLiteralAt(ctx, Dσ[j], sσ, rσ)

						resultLits := make([]clause.Literal, 0, len(Cσ)+len(Dσ))
						resultLits = append(resultLits, Cσ...)
						for k, dl := range Dσ {
							if k == j {
								resultLits = append(resultLits, newDj)
							} else {
								resultLits = append(resultLits, dl)
							}
						}

						trail := from.Trail.Union(into.Trail)
						proof := clause.NewInferenceStep("superposition",
							clause.Premise{Clause: from, Subst: mgu},
							clause.Premise{Clause: into, Subst: mgu})
						results = append(results, ctx.Clauses.Intern(resultLits, trail, proof))
					}
				}
			}
		}
	}
	return results
}
