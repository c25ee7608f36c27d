package calculus_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitrdm/superpose/pkg/calculus"
	"github.com/gitrdm/superpose/pkg/clause"
	"github.com/gitrdm/superpose/pkg/order"
	"github.com/gitrdm/superpose/pkg/sig"
	"github.com/gitrdm/superpose/pkg/symbol"
)

func newContext(b *sig.Builder, cb *clause.Bank) (*calculus.Context, order.Ordering) {
	ord := order.NewKBO(b.Syms.Precedence(symbol.PrecedenceArrival))
	varSeq := 1000
	return &calculus.Context{
		Terms:   b.Terms,
		Clauses: cb,
		Ord:     ord,
		VarSeq:  &varSeq,
		Select:  clause.SelectNone,
	}, ord
}

func TestEqualityResolutionRefutesDisequality(t *testing.T) {
	b := sig.New()
	g := b.Sort("g")
	a := b.Func("a", g)()

	cb := clause.NewBank(b.Terms)
	ctx, ord := newContext(b, cb)

	c := cb.Intern([]clause.Literal{b.Neq(a, a, ord)}, clause.EmptyTrail, clause.NewAxiomStep("refl"))

	results := calculus.EqualityResolution(ctx, c)
	require.Len(t, results, 1)
	require.True(t, results[0].IsEmpty(), "resolving a ≉ a against its own reflexivity must yield the empty clause")
}

func TestEqualityResolutionSkipsUnunifiableDisequality(t *testing.T) {
	b := sig.New()
	g := b.Sort("g")
	a := b.Func("a", g)()
	bb := b.Func("b", g)()

	cb := clause.NewBank(b.Terms)
	ctx, ord := newContext(b, cb)

	c := cb.Intern([]clause.Literal{b.Neq(a, bb, ord)}, clause.EmptyTrail, clause.NewAxiomStep("ab"))

	results := calculus.EqualityResolution(ctx, c)
	require.Empty(t, results, "distinct rigid constants never unify, so no inference fires")
}

func TestBinarySuperpositionRewritesPositiveAtom(t *testing.T) {
	b := sig.New()
	g := b.Sort("g")
	f := b.Func("f", g, g)
	a := b.Func("a", g)()
	bb := b.Func("b", g)()
	p := b.Pred("p", g)

	cb := clause.NewBank(b.Terms)
	ctx, ord := newContext(b, cb)

	fa := f(a)
	unitEq := cb.Intern([]clause.Literal{b.Eq(fa, bb, ord)}, clause.EmptyTrail, clause.NewAxiomStep("fa-eq-b"))
	posAtom := cb.Intern([]clause.Literal{b.PosAtom(p(fa), ord)}, clause.EmptyTrail, clause.NewAxiomStep("p-fa"))

	results := calculus.BinarySuperposition(ctx, unitEq, posAtom)
	require.Len(t, results, 1, "rewriting f(a) to b inside p(f(a)) must produce exactly one clause")

	want := cb.Intern([]clause.Literal{b.PosAtom(p(bb), ord)}, clause.EmptyTrail, clause.NewAxiomStep("irrelevant"))
	require.True(t, results[0].Lits[0].Equal(want.Lits[0]), "the rewritten clause must assert p(b)")
}

func TestBinarySuperpositionRequiresNonVariableSubterm(t *testing.T) {
	b := sig.New()
	g := b.Sort("g")
	f := b.Func("f", g, g)
	a := b.Func("a", g)()
	x := b.Var(0, g)

	cb := clause.NewBank(b.Terms)
	ctx, ord := newContext(b, cb)

	unitEq := cb.Intern([]clause.Literal{clause.Eq(x, a, order.Incomparable)}, clause.EmptyTrail, clause.NewAxiomStep("x-eq-a"))
	fx := f(x)
	other := cb.Intern([]clause.Literal{b.Eq(fx, fx, ord)}, clause.EmptyTrail, clause.NewAxiomStep("fx-eq-fx"))

	results := calculus.BinarySuperposition(ctx, unitEq, other)
	require.Empty(t, results, "a bare variable on the equation's rewritten side is never a valid rewrite target")
}

func TestEqualityFactoringMergesSharedValue(t *testing.T) {
	b := sig.New()
	g := b.Sort("g")
	a := b.Func("a", g)()
	bb := b.Func("b", g)()
	cc := b.Func("c", g)()

	cb := clause.NewBank(b.Terms)
	ctx, ord := newContext(b, cb)

	// c ≈ a ∨ c ≈ b: c is the dominant side of both equations (interned
	// last, so precedence-largest among three same-weight constants), so
	// factoring the maximal literal c ≈ b with c ≈ a must derive
	// b ≉ a ∨ c ≈ a.
	c := cb.Intern([]clause.Literal{
		b.Eq(cc, a, ord),
		b.Eq(cc, bb, ord),
	}, clause.EmptyTrail, clause.NewAxiomStep("shared-c"))

	results := calculus.EqualityFactoring(ctx, c)
	require.NotEmpty(t, results, "factoring two positive equations sharing their dominant side must fire")
	for _, r := range results {
		require.Len(t, r.Lits, 2)
	}
}

func TestSuperpositionIsTrivialDetectsTautologies(t *testing.T) {
	b := sig.New()
	g := b.Sort("g")
	a := b.Func("a", g)()
	bb := b.Func("b", g)()

	cb := clause.NewBank(b.Terms)
	_, ord := newContext(b, cb)
	calc := &calculus.Superposition{}

	reflexive := cb.Intern([]clause.Literal{clause.Eq(a, a, order.Eq)}, clause.EmptyTrail, clause.NewAxiomStep("refl"))
	require.True(t, calc.IsTrivial(reflexive), "s ≈ s is always a tautology")

	complementary := cb.Intern([]clause.Literal{
		b.Eq(a, bb, ord),
		b.Neq(a, bb, ord),
	}, clause.EmptyTrail, clause.NewAxiomStep("comp"))
	require.True(t, calc.IsTrivial(complementary), "a clause containing both L and ¬L is a tautology")

	nonTrivial := cb.Intern([]clause.Literal{b.Eq(a, bb, ord)}, clause.EmptyTrail, clause.NewAxiomStep("plain"))
	require.False(t, calc.IsTrivial(nonTrivial))
}

func TestSuperpositionExposesBinaryAndUnaryRules(t *testing.T) {
	calc := &calculus.Superposition{}
	require.Len(t, calc.Binary(), 1)
	require.Len(t, calc.Unary(), 2)
}
