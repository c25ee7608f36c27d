package sig_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitrdm/superpose/pkg/order"
	"github.com/gitrdm/superpose/pkg/sig"
	"github.com/gitrdm/superpose/pkg/symbol"
)

func TestNewInternsCanonicalBoolAndTruth(t *testing.T) {
	b := sig.New()
	require.Equal(t, b.Bool(), b.Sort("$o"), "Bool must be the same interned sort as an explicit $o lookup")
	require.NotNil(t, b.Truth())
}

func TestFuncNullaryAlwaysReturnsSameConstant(t *testing.T) {
	b := sig.New()
	g := b.Sort("g")
	a := b.Func("a", g)

	require.True(t, a() == a(), "a nullary constructor must return the same interned constant every call")
}

func TestFuncApplicationBuildsDistinctTermsPerArgument(t *testing.T) {
	b := sig.New()
	g := b.Sort("g")
	f := b.Func("f", g, g)
	a := b.Func("a", g)()
	bb := b.Func("b", g)()

	fa := f(a)
	fb := f(bb)
	require.False(t, fa == fb)
	require.True(t, fa == f(a), "applying f to the same argument twice must hash-cons to one term")
}

func TestPredEncodesAtomsIntoBoolSort(t *testing.T) {
	b := sig.New()
	g := b.Sort("g")
	p := b.Pred("p", g)
	a := b.Func("a", g)()

	ord := order.NewKBO(b.Syms.Precedence(symbol.PrecedenceArrival))
	pos := b.PosAtom(p(a), ord)
	neg := b.NegAtom(p(a), ord)

	require.True(t, pos.IsPositive())
	require.True(t, neg.IsNegative())
	require.Equal(t, p(a), pos.L)
	require.Equal(t, b.Truth(), pos.R)
}

func TestEqAndNeqCacheOrientation(t *testing.T) {
	b := sig.New()
	g := b.Sort("g")
	a := b.Func("a", g)()
	bb := b.Func("b", g)()
	ord := order.NewKBO(b.Syms.Precedence(symbol.PrecedenceArrival))

	lit := b.Eq(a, bb, ord)
	require.Equal(t, ord.Compare(a, bb), lit.Orient)

	nlit := b.Neq(a, bb, ord)
	require.True(t, nlit.IsNegative())
	require.Equal(t, ord.Compare(a, bb), nlit.Orient)
}

func TestVarReturnsDistinctIdentityPerID(t *testing.T) {
	b := sig.New()
	g := b.Sort("g")
	x0 := b.Var(0, g)
	x1 := b.Var(1, g)
	require.False(t, x0 == x1)
	require.True(t, x0 == b.Var(0, g))
}
