// Package simplify implements the simplification rules: demodulation,
// simplify-reflect (positive and negative), subsumption, condensation and
// tautology deletion. Where package calculus generates new clauses, simplify
// only ever shrinks a clause set — deleting a clause outright, or replacing
// it with something strictly smaller under the active ordering — so every
// rule here returns either "no change" or a justified reduction, never a
// completely new derivation branch.
package simplify

import (
	"github.com/gitrdm/superpose/pkg/clause"
	"github.com/gitrdm/superpose/pkg/order"
	"github.com/gitrdm/superpose/pkg/subst"
	"github.com/gitrdm/superpose/pkg/term"
)

// Context bundles the resources simplification rules need: the
// term/clause banks to rebuild results in and the active ordering.
// Kept distinct from calculus.Context (rather than shared) so the two
// packages stay independently importable.
type Context struct {
	Terms   *term.Bank
	Clauses *clause.Bank
	Ord     order.Ordering
	VarSeq  *int
}

func (ctx *Context) fresh() *subst.Renamer { return subst.NewRenamer(ctx.VarSeq) }

// withLit returns a copy of lits with index i replaced by repl.
func withLit(lits []clause.Literal, i int, repl clause.Literal) []clause.Literal {
	out := append([]clause.Literal(nil), lits...)
	out[i] = repl
	return out
}

// withoutLit returns a copy of lits with index i removed.
func withoutLit(lits []clause.Literal, i int) []clause.Literal {
	out := make([]clause.Literal, 0, len(lits)-1)
	for k, l := range lits {
		if k != i {
			out = append(out, l)
		}
	}
	return out
}
