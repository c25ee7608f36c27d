package subst_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitrdm/superpose/pkg/subst"
	"github.com/gitrdm/superpose/pkg/symbol"
	"github.com/gitrdm/superpose/pkg/term"
	"github.com/gitrdm/superpose/pkg/ty"
)

func TestBindIsPersistent(t *testing.T) {
	types := ty.NewBank()
	terms := term.NewBank()
	g := types.App(symbol.NewTable().Intern("g", 0))

	a := terms.Var(0, g)
	b := terms.Var(1, g)

	base := subst.New()
	extended := base.Bind(a.VarID(), 0, subst.Scoped{Term: b, Scope: 0})

	_, ok := base.Lookup(a.VarID(), 0)
	require.False(t, ok, "Bind must not mutate the receiver")

	got, ok := extended.Lookup(a.VarID(), 0)
	require.True(t, ok)
	require.Equal(t, b, got.Term)
}

func TestBindSelfIsNoOp(t *testing.T) {
	types := ty.NewBank()
	terms := term.NewBank()
	g := types.App(symbol.NewTable().Intern("g", 0))
	a := terms.Var(0, g)

	base := subst.New()
	same := base.Bind(a.VarID(), 0, subst.Scoped{Term: a, Scope: 0})
	require.True(t, base == same, "binding a variable to itself returns the receiver unchanged")
}

func TestRenamerIsConsistentAndFresh(t *testing.T) {
	types := ty.NewBank()
	terms := term.NewBank()
	g := types.App(symbol.NewTable().Intern("g", 0))

	counter := 100
	r := subst.NewRenamer(&counter)

	x := terms.Var(0, g)
	r1 := r.Rename(x, 0, terms)
	r2 := r.Rename(x, 0, terms)
	require.True(t, r1 == r2, "the same (var, scope) pair must rename to the same fresh variable")

	y := terms.Var(0, g) // same id as x but scope 1 below
	r3 := r.Rename(y, 1, terms)
	require.False(t, r1 == r3, "the same var id in a different scope renames to a different variable")
}

func TestWalkDeepRebuildsThroughApplication(t *testing.T) {
	syms := symbol.NewTable()
	types := ty.NewBank()
	terms := term.NewBank()
	g := types.App(syms.Intern("g", 0))
	f := terms.Const(syms.Intern("f", 1), types.Arrow(g, g))
	a := terms.Const(syms.Intern("a", 0), g)

	x := terms.Var(0, g)
	fx := terms.App(f, g, x)

	s := subst.New().Bind(x.VarID(), 0, subst.Scoped{Term: a, Scope: 1})

	counter := 0
	r := subst.NewRenamer(&counter)
	got := subst.WalkDeep(terms, s, r, subst.Scoped{Term: fx, Scope: 0})

	want := terms.App(f, g, a)
	require.Equal(t, want, got, "walking f(x) under x:=a must rebuild to f(a)")
}
