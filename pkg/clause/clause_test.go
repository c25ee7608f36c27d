package clause_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitrdm/superpose/pkg/clause"
	"github.com/gitrdm/superpose/pkg/order"
	"github.com/gitrdm/superpose/pkg/symbol"
	"github.com/gitrdm/superpose/pkg/term"
	"github.com/gitrdm/superpose/pkg/ty"
)

func TestInternCanonicalizesVariablesApart(t *testing.T) {
	syms := symbol.NewTable()
	types := ty.NewBank()
	terms := term.NewBank()
	g := types.App(syms.Intern("g", 0))
	p := terms.Const(syms.Intern("p", 1), types.Arrow(g, g))

	cb := clause.NewBank(terms)

	// p(X7) ≈ p(X7) and p(X3) ≈ p(X3) differ only in the free variable's
	// numeric id; both must intern to the same canonical clause.
	x7 := terms.Var(7, g)
	x3 := terms.Var(3, g)
	lit1 := clause.Eq(terms.App(p, g, x7), terms.App(p, g, x7), order.Eq)
	lit2 := clause.Eq(terms.App(p, g, x3), terms.App(p, g, x3), order.Eq)

	c1 := cb.Intern([]clause.Literal{lit1}, clause.EmptyTrail, clause.NewAxiomStep("a"))
	c2 := cb.Intern([]clause.Literal{lit2}, clause.EmptyTrail, clause.NewAxiomStep("b"))

	require.True(t, c1 == c2, "clauses identical up to variable renaming must intern to one pointer")
}

func TestInternAssignsMonotonicIDs(t *testing.T) {
	syms := symbol.NewTable()
	types := ty.NewBank()
	terms := term.NewBank()
	g := types.App(syms.Intern("g", 0))
	a := terms.Const(syms.Intern("a", 0), g)
	b := terms.Const(syms.Intern("b", 0), g)

	cb := clause.NewBank(terms)
	c1 := cb.Intern([]clause.Literal{clause.Eq(a, a, order.Eq)}, clause.EmptyTrail, clause.NewAxiomStep("a"))
	c2 := cb.Intern([]clause.Literal{clause.Eq(b, b, order.Eq)}, clause.EmptyTrail, clause.NewAxiomStep("b"))

	require.Less(t, c1.ID(), c2.ID())
}

func TestFlagsUnitPositiveGround(t *testing.T) {
	syms := symbol.NewTable()
	types := ty.NewBank()
	terms := term.NewBank()
	g := types.App(syms.Intern("g", 0))
	a := terms.Const(syms.Intern("a", 0), g)
	x := terms.Var(0, g)

	cb := clause.NewBank(terms)

	ground := cb.Intern([]clause.Literal{clause.Eq(a, a, order.Eq)}, clause.EmptyTrail, clause.NewAxiomStep("g"))
	require.True(t, ground.Flags.Unit)
	require.True(t, ground.Flags.Positive)
	require.True(t, ground.Flags.Ground)

	notGround := cb.Intern([]clause.Literal{clause.Eq(x, a, order.Incomparable)}, clause.EmptyTrail, clause.NewAxiomStep("ng"))
	require.False(t, notGround.Flags.Ground)

	twoLits := cb.Intern([]clause.Literal{
		clause.Eq(a, a, order.Eq),
		clause.Neq(a, a, order.Eq),
	}, clause.EmptyTrail, clause.NewAxiomStep("two"))
	require.False(t, twoLits.Flags.Unit)
}

func TestEmptyClauseIsRefutation(t *testing.T) {
	syms := symbol.NewTable()
	terms := term.NewBank()
	_ = syms
	cb := clause.NewBank(terms)
	empty := cb.Intern(nil, clause.EmptyTrail, clause.NewInferenceStep("equality-resolution"))
	require.True(t, empty.IsEmpty())
	require.Equal(t, "⊥", empty.String())
}

func TestTrailUnionAndWith(t *testing.T) {
	base := clause.EmptyTrail
	t1 := base.With(1)
	t2 := t1.With(2)

	require.True(t, t1.Contains(1))
	require.False(t, t1.Contains(2))
	require.True(t, t2.Contains(1))
	require.True(t, t2.Contains(2))

	other := base.With(3)
	union := t2.Union(other)
	require.True(t, union.Contains(1) && union.Contains(2) && union.Contains(3))

	require.True(t, base.IsEmpty())
	require.False(t, t1.IsEmpty())
}
