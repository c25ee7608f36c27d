package unify_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitrdm/superpose/pkg/subst"
	"github.com/gitrdm/superpose/pkg/symbol"
	"github.com/gitrdm/superpose/pkg/term"
	"github.com/gitrdm/superpose/pkg/ty"
	"github.com/gitrdm/superpose/pkg/unify"
)

type fixture struct {
	syms  *symbol.Table
	types *ty.Bank
	terms *term.Bank
	g     *ty.Type
	f     *term.Term // unary function symbol
	a, b  *term.Term // distinct constants
}

func newFixture() *fixture {
	syms := symbol.NewTable()
	types := ty.NewBank()
	terms := term.NewBank()
	g := types.App(syms.Intern("g", 0))
	f := terms.Const(syms.Intern("f", 1), types.Arrow(g, g))
	a := terms.Const(syms.Intern("a", 0), g)
	b := terms.Const(syms.Intern("b", 0), g)
	return &fixture{syms: syms, types: types, terms: terms, g: g, f: f, a: a, b: b}
}

func (fx *fixture) app(fn *term.Term, arg *term.Term) *term.Term {
	return fx.terms.App(fn, fx.g, arg)
}

func TestUnifyVariableWithConstant(t *testing.T) {
	fx := newFixture()
	x := fx.terms.Var(0, fx.g)

	s, err := unify.Unify(fx.terms, subst.New(), subst.Scoped{Term: x, Scope: 0}, subst.Scoped{Term: fx.a, Scope: 1})
	require.NoError(t, err)

	bound, ok := s.Lookup(x.VarID(), 0)
	require.True(t, ok)
	require.Equal(t, fx.a, bound.Term)
}

func TestUnifyRigidMismatchFails(t *testing.T) {
	fx := newFixture()
	_, err := unify.Unify(fx.terms, subst.New(), subst.Scoped{Term: fx.a, Scope: 0}, subst.Scoped{Term: fx.b, Scope: 0})
	require.ErrorIs(t, err, unify.ErrNoUnifier)
}

func TestUnifyOccursCheck(t *testing.T) {
	fx := newFixture()
	x := fx.terms.Var(0, fx.g)
	fx_ := fx.app(fx.f, x)

	_, err := unify.Unify(fx.terms, subst.New(), subst.Scoped{Term: x, Scope: 0}, subst.Scoped{Term: fx_, Scope: 0})
	require.ErrorIs(t, err, unify.ErrOccursCheck, "x must not unify with f(x) in the same scope")
}

func TestUnifyNestedApplication(t *testing.T) {
	fx := newFixture()
	x := fx.terms.Var(0, fx.g)
	lhs := fx.app(fx.f, fx.app(fx.f, x))
	rhs := fx.app(fx.f, fx.app(fx.f, fx.a))

	s, err := unify.Unify(fx.terms, subst.New(), subst.Scoped{Term: lhs, Scope: 0}, subst.Scoped{Term: rhs, Scope: 0})
	require.NoError(t, err)
	bound, ok := s.Lookup(x.VarID(), 0)
	require.True(t, ok)
	require.Equal(t, fx.a, bound.Term)
}

func TestMatchNeverBindsSubjectVariable(t *testing.T) {
	fx := newFixture()
	x := fx.terms.Var(0, fx.g) // pattern variable
	y := fx.terms.Var(0, fx.g) // subject variable, same id different scope

	_, err := unify.Match(fx.terms, subst.New(), subst.Scoped{Term: x, Scope: 0}, subst.Scoped{Term: y, Scope: 1})
	require.NoError(t, err, "a pattern variable matches any subject, including another variable")

	// Reversing pattern/subject must fail: a constant subject can't act
	// as a pattern over the variable side.
	_, err = unify.Match(fx.terms, subst.New(), subst.Scoped{Term: fx.a, Scope: 0}, subst.Scoped{Term: y, Scope: 1})
	require.Error(t, err)
}

func TestMatchLockedForbidsBindingLockedVariables(t *testing.T) {
	fx := newFixture()
	x := fx.terms.Var(0, fx.g)

	locked := map[int]bool{x.VarID(): true}
	_, err := unify.MatchLocked(fx.terms, subst.New(), subst.Scoped{Term: x, Scope: 0}, subst.Scoped{Term: fx.a, Scope: 1}, locked)
	require.Error(t, err, "a locked pattern variable cannot be bound to a non-identical subject")
}

func TestMatchIsOneSided(t *testing.T) {
	fx := newFixture()
	x := fx.terms.Var(0, fx.g)
	pattern := fx.app(fx.f, x)
	subject := fx.app(fx.f, fx.a)

	s, err := unify.Match(fx.terms, subst.New(), subst.Scoped{Term: pattern, Scope: 0}, subst.Scoped{Term: subject, Scope: 1})
	require.NoError(t, err)
	bound, ok := s.Lookup(x.VarID(), 0)
	require.True(t, ok)
	require.Equal(t, fx.a, bound.Term)

	// The subject's constants can never serve as patterns: matching
	// f(a) against f(x) (reversed) must fail since a is rigid.
	_, err = unify.Match(fx.terms, subst.New(), subst.Scoped{Term: subject, Scope: 0}, subst.Scoped{Term: pattern, Scope: 1})
	require.Error(t, err)
}

func TestHOPatternUnifyBindsBareFlexVariable(t *testing.T) {
	fx := newFixture()
	x := fx.terms.Var(0, fx.g)
	counter := 0

	s, err := unify.HOPatternUnify(fx.terms, subst.New(),
		subst.Scoped{Term: x, Scope: 0}, subst.Scoped{Term: fx.a, Scope: 1}, &counter)
	require.NoError(t, err)
	bound, ok := s.Lookup(x.VarID(), 0)
	require.True(t, ok)
	require.Equal(t, fx.a, bound.Term)
}

func TestHOPatternUnifyRejectsNonBoundVariableArgument(t *testing.T) {
	fx := newFixture()
	// F(a): a flex head applied to a rigid constant rather than a
	// bound variable falls outside the pattern fragment on both sides.
	F := fx.terms.Var(1, fx.types.Arrow(fx.g, fx.g))
	Fa := fx.terms.App(F, fx.g, fx.a)
	counter := 0

	_, err := unify.HOPatternUnify(fx.terms, subst.New(),
		subst.Scoped{Term: Fa, Scope: 0}, subst.Scoped{Term: fx.b, Scope: 1}, &counter)
	require.ErrorIs(t, err, unify.ErrNotInFragment)
}

func TestHOPatternUnifyPrunesAndBindsFlexHeadAppliedToBoundVar(t *testing.T) {
	fx := newFixture()
	// F(#0) =? a: F's only argument is bound variable 0, and a has no
	// bound variables needing pruning, so F must bind straight to a.
	F := fx.terms.Var(2, fx.types.Arrow(fx.g, fx.g))
	bvar0 := fx.terms.BVar(0, fx.g)
	Fx0 := fx.terms.App(F, fx.g, bvar0)
	counter := 0

	s, err := unify.HOPatternUnify(fx.terms, subst.New(),
		subst.Scoped{Term: Fx0, Scope: 0}, subst.Scoped{Term: fx.a, Scope: 1}, &counter)
	require.NoError(t, err)
	bound, ok := s.Lookup(F.VarID(), 0)
	require.True(t, ok)
	require.Equal(t, fx.a, bound.Term)
}

func TestHOPatternUnifySameTermShortCircuits(t *testing.T) {
	fx := newFixture()
	base := subst.New()

	s, err := unify.HOPatternUnify(fx.terms, base,
		subst.Scoped{Term: fx.a, Scope: 1}, subst.Scoped{Term: fx.a, Scope: 1}, new(int))
	require.NoError(t, err)
	require.Same(t, base, s, "identical scoped terms must return base unchanged")
}
