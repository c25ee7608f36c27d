package term_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitrdm/superpose/pkg/symbol"
	"github.com/gitrdm/superpose/pkg/term"
	"github.com/gitrdm/superpose/pkg/ty"
)

func TestBankInterningIsPointerIdentity(t *testing.T) {
	syms := symbol.NewTable()
	types := ty.NewBank()
	terms := term.NewBank()

	g := types.App(syms.Intern("g", 0))
	f := syms.Intern("f", 1)
	a := syms.Intern("a", 0)

	fTyp := types.Arrow(g, g)
	fConst := terms.Const(f, fTyp)
	aConst := terms.Const(a, g)

	t1 := terms.App(fConst, g, aConst)
	t2 := terms.App(fConst, g, aConst)

	require.True(t, t1 == t2, "structurally equal applications must be the same pointer")
	require.Equal(t, 3, terms.Size(), "f, a and f(a) are interned once each; the second App call adds nothing")
}

func TestVarIdentityByIDAndType(t *testing.T) {
	types := ty.NewBank()
	terms := term.NewBank()
	g := types.App(symbol.NewTable().Intern("g", 0))

	v1 := terms.Var(0, g)
	v2 := terms.Var(0, g)
	v3 := terms.Var(1, g)

	require.True(t, v1 == v2)
	require.False(t, v1 == v3)
}

func TestSizeCountsSubterms(t *testing.T) {
	syms := symbol.NewTable()
	types := ty.NewBank()
	terms := term.NewBank()
	g := types.App(syms.Intern("g", 0))

	a := terms.Const(syms.Intern("a", 0), g)
	f := terms.Const(syms.Intern("f", 1), types.Arrow(g, g))

	leaf := a
	require.Equal(t, 1, leaf.Size())

	fa := terms.App(f, g, a)
	require.Equal(t, 3, fa.Size(), "f(a) has 3 nodes: the application itself, f, a")

	ffa := terms.App(f, g, fa)
	require.Equal(t, 5, ffa.Size(), "f(f(a)) adds one more application plus its f head")
}
