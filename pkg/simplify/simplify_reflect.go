package simplify

import (
	"github.com/gitrdm/superpose/pkg/clause"
	"github.com/gitrdm/superpose/pkg/subst"
	"github.com/gitrdm/superpose/pkg/term"
	"github.com/gitrdm/superpose/pkg/unify"
)

const (
	scopeReflectClause subst.Scope = 30
	scopeReflectUnit   subst.Scope = 31
)

// PositiveSimplifyReflect drops a positive literal s ≈ t from c whenever
// some negative unit s' ≉ t' in units matches it (s'σ = s, t'σ = t for a
// substitution σ of the unit's variables): the literal is an instance of
// the unit's negation, so it can never hold.
func PositiveSimplifyReflect(bank *term.Bank, cb *clause.Bank, units []*clause.Clause, c *clause.Clause) (*clause.Clause, bool) {
	return simplifyReflect(bank, cb, units, c, true)
}

// NegativeSimplifyReflect drops a negative literal s ≉ t from c whenever
// some positive unit s' ≈ t' in units matches it: the literal never holds,
// so it contributes nothing and the disjunction can be dropped to its
// remainder.
func NegativeSimplifyReflect(bank *term.Bank, cb *clause.Bank, units []*clause.Clause, c *clause.Clause) (*clause.Clause, bool) {
	return simplifyReflect(bank, cb, units, c, false)
}

func simplifyReflect(bank *term.Bank, cb *clause.Bank, units []*clause.Clause, c *clause.Clause, positive bool) (*clause.Clause, bool) {
	for i, lit := range c.Lits {
		if lit.IsTrue() || lit.IsFalse() {
			continue
		}
		if lit.IsPositive() != positive {
			continue
		}
		for _, u := range units {
			if !u.Flags.Unit || u.Flags.Positive == positive {
				continue
			}
			ul := u.Lits[0]
			for _, perm := range [2][2]*term.Term{{ul.L, ul.R}, {ul.R, ul.L}} {
				base := subst.New()
				s, err := unify.Match(bank, base,
					subst.Scoped{Term: perm[0], Scope: scopeReflectUnit}, subst.Scoped{Term: lit.L, Scope: scopeReflectClause})
				if err != nil {
					continue
				}
				if _, err := unify.Match(bank, s,
					subst.Scoped{Term: perm[1], Scope: scopeReflectUnit}, subst.Scoped{Term: lit.R, Scope: scopeReflectClause}); err != nil {
					continue
				}
				rule := "negative-simplify-reflect"
				if positive {
					rule = "positive-simplify-reflect"
				}
				proof := clause.NewInferenceStep(rule,
					clause.Premise{Clause: c}, clause.Premise{Clause: u})
				return cb.Intern(withoutLit(c.Lits, i), c.Trail.Union(u.Trail), proof), true
			}
		}
	}
	return c, false
}
