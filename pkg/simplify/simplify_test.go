package simplify_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitrdm/superpose/pkg/clause"
	"github.com/gitrdm/superpose/pkg/index"
	"github.com/gitrdm/superpose/pkg/order"
	"github.com/gitrdm/superpose/pkg/sig"
	"github.com/gitrdm/superpose/pkg/simplify"
	"github.com/gitrdm/superpose/pkg/symbol"
)

func newSimplifyContext(b *sig.Builder, cb *clause.Bank) (*simplify.Context, order.Ordering) {
	ord := order.NewKBO(b.Syms.Precedence(symbol.PrecedenceArrival))
	varSeq := 2000
	return &simplify.Context{Terms: b.Terms, Clauses: cb, Ord: ord, VarSeq: &varSeq}, ord
}

func TestIsTautologyDetectsReflexiveAndComplementary(t *testing.T) {
	b := sig.New()
	g := b.Sort("g")
	a := b.Func("a", g)()
	bb := b.Func("b", g)()

	cb := clause.NewBank(b.Terms)
	_, ord := newSimplifyContext(b, cb)

	reflexive := cb.Intern([]clause.Literal{clause.Eq(a, a, order.Eq)}, clause.EmptyTrail, clause.NewAxiomStep("r"))
	require.True(t, simplify.IsTautology(reflexive))

	complementary := cb.Intern([]clause.Literal{
		b.Eq(a, bb, ord),
		b.Neq(bb, a, ord), // swapped ends of the same equation
	}, clause.EmptyTrail, clause.NewAxiomStep("comp"))
	require.True(t, simplify.IsTautology(complementary), "L and ¬L must be detected even with ends swapped")

	plain := cb.Intern([]clause.Literal{b.Eq(a, bb, ord)}, clause.EmptyTrail, clause.NewAxiomStep("plain"))
	require.False(t, simplify.IsTautology(plain))
}

func TestSubsumesGeneralClauseMatchesSpecificInstance(t *testing.T) {
	b := sig.New()
	g := b.Sort("g")
	p := b.Pred("p", g)
	a := b.Func("a", g)()
	x := b.Var(0, g)

	cb := clause.NewBank(b.Terms)
	_, ord := newSimplifyContext(b, cb)

	general := cb.Intern([]clause.Literal{b.PosAtom(p(x), ord)}, clause.EmptyTrail, clause.NewAxiomStep("general"))
	specific := cb.Intern([]clause.Literal{b.PosAtom(p(a), ord)}, clause.EmptyTrail, clause.NewAxiomStep("specific"))

	require.True(t, simplify.Subsumes(b.Terms, general, specific), "p(X) must subsume its ground instance p(a)")
	require.False(t, simplify.Subsumes(b.Terms, specific, general), "a ground clause never subsumes a strictly more general one")
}

func TestForwardAndBackwardSubsumption(t *testing.T) {
	b := sig.New()
	g := b.Sort("g")
	p := b.Pred("p", g)
	a := b.Func("a", g)()
	x := b.Var(0, g)

	cb := clause.NewBank(b.Terms)
	_, ord := newSimplifyContext(b, cb)

	general := cb.Intern([]clause.Literal{b.PosAtom(p(x), ord)}, clause.EmptyTrail, clause.NewAxiomStep("general"))
	specific := cb.Intern([]clause.Literal{b.PosAtom(p(a), ord)}, clause.EmptyTrail, clause.NewAxiomStep("specific"))

	fi := index.NewFeatureIndex()
	fi.Add(general)

	subsumer, ok := simplify.ForwardSubsumed(b.Terms, fi, specific)
	require.True(t, ok)
	require.Equal(t, general.ID(), subsumer.ID())

	fi2 := index.NewFeatureIndex()
	fi2.Add(specific)
	removed := simplify.BackwardSubsumed(b.Terms, fi2, general)
	require.Len(t, removed, 1)
	require.Equal(t, specific.ID(), removed[0].ID())
}

func TestDemodulateRewritesToFixpoint(t *testing.T) {
	b := sig.New()
	g := b.Sort("g")
	f := b.Func("f", g, g)
	a := b.Func("a", g)()
	bb := b.Func("b", g)()
	p := b.Pred("p", g)

	cb := clause.NewBank(b.Terms)
	ctx, ord := newSimplifyContext(b, cb)

	fa := f(a)
	unit := cb.Intern([]clause.Literal{b.Eq(fa, bb, ord)}, clause.EmptyTrail, clause.NewAxiomStep("fa-eq-b"))

	ti := index.NewTermIndex(16)
	simplify.IndexDemodulator(ti, unit)

	target := cb.Intern([]clause.Literal{b.PosAtom(p(fa), ord)}, clause.EmptyTrail, clause.NewAxiomStep("p-fa"))
	result, changed, used := simplify.Demodulate(ctx, ti, target)
	require.True(t, changed)
	require.Len(t, used, 1)
	require.Equal(t, unit.ID(), used[0].ID())

	want := cb.Intern([]clause.Literal{b.PosAtom(p(bb), ord)}, clause.EmptyTrail, clause.NewAxiomStep("irrelevant"))
	require.True(t, result.Lits[0].Equal(want.Lits[0]))
}

func TestDemodulateReportsNoChangeWhenNothingApplies(t *testing.T) {
	b := sig.New()
	g := b.Sort("g")
	a := b.Func("a", g)()
	bb := b.Func("b", g)()

	cb := clause.NewBank(b.Terms)
	ctx, ord := newSimplifyContext(b, cb)

	ti := index.NewTermIndex(16)
	target := cb.Intern([]clause.Literal{b.Eq(a, bb, ord)}, clause.EmptyTrail, clause.NewAxiomStep("plain"))

	result, changed, used := simplify.Demodulate(ctx, ti, target)
	require.False(t, changed)
	require.Empty(t, used)
	require.True(t, result == target, "an empty demodulator index must return the clause unchanged")
}

func TestPositiveSimplifyReflectDropsEntailedLiteral(t *testing.T) {
	b := sig.New()
	g := b.Sort("g")
	a := b.Func("a", g)()
	bb := b.Func("b", g)()
	cc := b.Func("c", g)()

	cb := clause.NewBank(b.Terms)
	_, ord := newSimplifyContext(b, cb)

	unit := cb.Intern([]clause.Literal{b.Neq(a, bb, ord)}, clause.EmptyTrail, clause.NewAxiomStep("unit"))
	c := cb.Intern([]clause.Literal{
		b.Eq(a, bb, ord),
		b.Eq(a, cc, ord),
	}, clause.EmptyTrail, clause.NewAxiomStep("c"))

	result, changed := simplify.PositiveSimplifyReflect(b.Terms, cb, []*clause.Clause{unit}, c)
	require.True(t, changed)
	require.Len(t, result.Lits, 1)
	require.True(t, result.Lits[0].Equal(b.Eq(a, cc, ord)))
}

func TestNegativeSimplifyReflectDropsFalsifiedLiteral(t *testing.T) {
	b := sig.New()
	g := b.Sort("g")
	a := b.Func("a", g)()
	bb := b.Func("b", g)()
	cc := b.Func("c", g)()

	cb := clause.NewBank(b.Terms)
	_, ord := newSimplifyContext(b, cb)

	unit := cb.Intern([]clause.Literal{b.Eq(a, bb, ord)}, clause.EmptyTrail, clause.NewAxiomStep("unit"))
	c := cb.Intern([]clause.Literal{
		b.Neq(a, bb, ord),
		b.Eq(a, cc, ord),
	}, clause.EmptyTrail, clause.NewAxiomStep("c"))

	result, changed := simplify.NegativeSimplifyReflect(b.Terms, cb, []*clause.Clause{unit}, c)
	require.True(t, changed)
	require.Len(t, result.Lits, 1)
	require.True(t, result.Lits[0].Equal(b.Eq(a, cc, ord)))
}

func TestCondenseRemovesDuplicateAfterSelfMatch(t *testing.T) {
	b := sig.New()
	g := b.Sort("g")
	p := b.Pred("p", g)
	a := b.Func("a", g)()
	x := b.Var(0, g)

	cb := clause.NewBank(b.Terms)
	ctx, ord := newSimplifyContext(b, cb)

	c := cb.Intern([]clause.Literal{
		b.PosAtom(p(x), ord),
		b.PosAtom(p(a), ord),
	}, clause.EmptyTrail, clause.NewAxiomStep("c"))

	result, changed := simplify.Condense(ctx, c)
	require.True(t, changed)
	require.Len(t, result.Lits, 1, "binding X:=a makes the two literals identical, so one is redundant")
}
