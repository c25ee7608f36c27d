package simplify

import (
	"github.com/gitrdm/superpose/pkg/clause"
	"github.com/gitrdm/superpose/pkg/index"
	"github.com/gitrdm/superpose/pkg/order"
	"github.com/gitrdm/superpose/pkg/subst"
	"github.com/gitrdm/superpose/pkg/term"
	"github.com/gitrdm/superpose/pkg/unify"
)

const (
	scopeDemodulator subst.Scope = 20
	scopeTarget      subst.Scope = 21
)

// maxDemodulationSteps bounds the rewrite loop: termination is
// guaranteed by the strict ordering decrease each step requires, but a
// buggy ordering implementation should not be allowed to hang the
// saturation loop.
const maxDemodulationSteps = 10000

// IndexDemodulator adds a unit positive clause's equation to idx under
// whichever orientation(s) are safe to rewrite with: the oriented side when
// the ordering decides it, both sides when it does not.
func IndexDemodulator(idx *index.TermIndex, c *clause.Clause) {
	if !c.Flags.Unit || !c.Flags.Positive {
		return
	}
	lit := c.Lits[0]
	if lit.Orient != order.Lt {
		idx.Add(index.Entry{Clause: c, LitIdx: 0, Side: 0, Term: lit.L, Scope: scopeDemodulator})
	}
	if lit.Orient != order.Gt {
		idx.Add(index.Entry{Clause: c, LitIdx: 0, Side: 1, Term: lit.R, Scope: scopeDemodulator})
	}
}

// rhsOf returns the replacement side of a demodulator entry: the side
// of its unit equation that was not indexed as the pattern.
func rhsOf(e index.Entry) *term.Term {
	lit := e.Clause.Lits[e.LitIdx]
	if e.Side == 0 {
		return lit.R
	}
	return lit.L
}

// Demodulate rewrites c to a fixpoint using the unit equations indexed
// in idx, requiring every step to strictly decrease under ord so the
// loop terminates. It returns the simplified clause, whether any
// rewrite fired, and the demodulator clauses used (for the proof
// record).
func Demodulate(ctx *Context, idx *index.TermIndex, c *clause.Clause) (*clause.Clause, bool, []*clause.Clause) {
	lits := append([]clause.Literal(nil), c.Lits...)
	var used []*clause.Clause
	changed := false

	for step := 0; step < maxDemodulationSteps; step++ {
		rewrote := false
		for li, lit := range lits {
			if lit.IsTrue() || lit.IsFalse() {
				continue
			}
			for _, end := range lit.Ends() {
				for _, s := range term.NonVariableSubterms(end) {
					e, rσ, ok := tryRewrite(ctx, idx, s)
					if !ok {
						continue
					}
					lits[li] = rewriteLiteral(ctx, lit, s, rσ)
					used = append(used, e.Clause)
					rewrote = true
					changed = true
					break
				}
				if rewrote {
					break
				}
			}
			if rewrote {
				break
			}
		}
		if !rewrote {
			break
		}
	}

	if !changed {
		return c, false, nil
	}
	proof := clause.NewInferenceStep("demodulation", demodPremises(c, used)...)
	return ctx.Clauses.Intern(lits, c.Trail, proof), true, used
}

func demodPremises(c *clause.Clause, demodulators []*clause.Clause) []clause.Premise {
	out := make([]clause.Premise, 0, len(demodulators)+1)
	out = append(out, clause.Premise{Clause: c})
	for _, d := range demodulators {
		out = append(out, clause.Premise{Clause: d})
	}
	return out
}

// tryRewrite looks for a demodulator whose pattern generalizes s and
// whose instantiated replacement is strictly smaller than s.
func tryRewrite(ctx *Context, idx *index.TermIndex, s *term.Term) (index.Entry, *term.Term, bool) {
	for _, e := range idx.RetrieveGeneralizations(ctx.Terms, subst.Scoped{Term: s, Scope: scopeTarget}) {
		mgu, err := unify.Match(ctx.Terms, subst.New(),
			subst.Scoped{Term: e.Term, Scope: scopeDemodulator}, subst.Scoped{Term: s, Scope: scopeTarget})
		if err != nil {
			continue
		}
		renamer := ctx.fresh()
		rσ := subst.WalkDeep(ctx.Terms, mgu, renamer, subst.Scoped{Term: rhsOf(e), Scope: scopeDemodulator})
		if ctx.Ord.Compare(s, rσ) == order.Gt {
			return e, rσ, true
		}
	}
	return index.Entry{}, nil, false
}

func rewriteLiteral(ctx *Context, lit clause.Literal, old, newT *term.Term) clause.Literal {
	nl := term.Replace(ctx.Terms, lit.L, old, newT)
	nr := term.Replace(ctx.Terms, lit.R, old, newT)
	ord := ctx.Ord.Compare(nl, nr)
	if lit.Sign {
		return clause.Eq(nl, nr, ord)
	}
	return clause.Neq(nl, nr, ord)
}
