package main

import (
	"github.com/gitrdm/superpose/pkg/clause"
	"github.com/gitrdm/superpose/pkg/order"
	"github.com/gitrdm/superpose/pkg/sig"
)

// Problem is one embedded refutation problem: a set of input clauses
// built against its own Builder, plus a short human label. A real
// front end would parse TPTP CNF and hand this package a clause list
// directly; that parser is out of scope, so the registry below plays
// the role "input" does in the rest of the pipeline.
type Problem struct {
	Name    string
	Sig     *sig.Builder
	Ord     order.Ordering
	Clauses []*clause.Clause
	Bank    *clause.Bank
}

// problemRegistry lists every built-in problem, keyed by the name
// passed on the command line.
func problemRegistry(ord func(*sig.Builder) order.Ordering) map[string]func() *Problem {
	return map[string]func() *Problem{
		"group-inverse":     groupInverseProblem(ord),
		"reflexivity":       reflexivityProblem(ord),
		"modus-ponens":      modusPonensProblem(ord),
		"unsaturable":       unsaturableProblem(ord),
		"demodulation":      demodulationProblem(ord),
		"subsumption":       subsumptionProblem(ord),
	}
}

func axiom(b *sig.Builder, cb *clause.Bank, o order.Ordering, source string, lits ...clause.Literal) *clause.Clause {
	return cb.Intern(lits, clause.EmptyTrail, clause.NewAxiomStep(source))
}

// groupInverseProblem refutes {e*x=x, i(x)*x=e, (x*y)*z=x*(y*z), i(a)*a≠e}
// over group axioms. The negated goal is an instance of left-inverse,
// so the refutation closes without using associativity.
func groupInverseProblem(ordFn func(*sig.Builder) order.Ordering) func() *Problem {
	return func() *Problem {
		b := sig.New()
		o := ordFn(b)
		g := b.Sort("g")
		mul := b.Func("*", g, g, g)
		inv := b.Func("i", g, g)
		e := b.Func("e", g)()
		a := b.Func("a", g)()

		cb := clause.NewBank(b.Terms)
		x0 := b.Var(0, g)
		x1 := b.Var(1, g)
		y1 := b.Var(1, g)
		z2 := b.Var(2, g)

		leftId := axiom(b, cb, o, "left-identity", b.Eq(mul(e, x0), x0, o))
		leftInv := axiom(b, cb, o, "left-inverse", b.Eq(mul(inv(x0), x0), e, o))
		assoc := axiom(b, cb, o, "associativity",
			b.Eq(mul(mul(x1, y1), z2), mul(x1, mul(y1, z2)), o))
		goal := axiom(b, cb, o, "negated-goal", b.Neq(mul(inv(a), a), e, o))

		return &Problem{Name: "group-inverse", Sig: b, Clauses: []*clause.Clause{leftId, leftInv, assoc, goal}, Bank: cb, Ord: o}
	}
}

// reflexivityProblem refutes {a ≠ a}, the simplest possible
// equality-resolution instance.
func reflexivityProblem(ordFn func(*sig.Builder) order.Ordering) func() *Problem {
	return func() *Problem {
		b := sig.New()
		o := ordFn(b)
		g := b.Sort("g")
		a := b.Func("a", g)()

		cb := clause.NewBank(b.Terms)
		goal := axiom(b, cb, o, "negated-goal", b.Neq(a, a, o))
		return &Problem{Name: "reflexivity", Sig: b, Clauses: []*clause.Clause{goal}, Bank: cb, Ord: o}
	}
}

// modusPonensProblem refutes {p, p→q encoded as ¬p∨q, ¬q}, exercising
// the propositional atom-as-equation encoding (p ≈ ⊤).
func modusPonensProblem(ordFn func(*sig.Builder) order.Ordering) func() *Problem {
	return func() *Problem {
		b := sig.New()
		o := ordFn(b)
		p := b.Func("p", b.Bool())()
		q := b.Func("q", b.Bool())()

		cb := clause.NewBank(b.Terms)
		premiseP := axiom(b, cb, o, "p", b.PosAtom(p, o))
		implication := axiom(b, cb, o, "p-implies-q", b.NegAtom(p, o), b.PosAtom(q, o))
		negGoal := axiom(b, cb, o, "negated-goal", b.NegAtom(q, o))

		return &Problem{Name: "modus-ponens", Sig: b, Clauses: []*clause.Clause{premiseP, implication, negGoal}, Bank: cb, Ord: o}
	}
}

// unsaturableProblem is satisfiable: {p(a), ¬p(c)} with a ≠ c never
// contradicts, so the loop should exhaust Passive and report
// CounterSatisfiable rather than looping forever.
func unsaturableProblem(ordFn func(*sig.Builder) order.Ordering) func() *Problem {
	return func() *Problem {
		b := sig.New()
		o := ordFn(b)
		g := b.Sort("g")
		pred := b.Pred("p", g)
		a := b.Func("a", g)()
		c := b.Func("c", g)()

		cb := clause.NewBank(b.Terms)
		pa := axiom(b, cb, o, "p-of-a", b.PosAtom(pred(a), o))
		notPc := axiom(b, cb, o, "not-p-of-c", b.NegAtom(pred(c), o))

		return &Problem{Name: "unsaturable", Sig: b, Clauses: []*clause.Clause{pa, notPc}, Bank: cb, Ord: o}
	}
}

// demodulationProblem gives the loop a rewrite rule f(a) = b plus a
// goal that only closes once f(a) has been rewritten to b: {f(a)=b,
// f(a)≠b} is trivially refutable by demodulation on its own, but here
// the rewrite target is nested one level deeper to force an actual
// rewrite step rather than an immediate equality-resolution hit.
func demodulationProblem(ordFn func(*sig.Builder) order.Ordering) func() *Problem {
	return func() *Problem {
		b := sig.New()
		o := ordFn(b)
		g := b.Sort("g")
		f := b.Func("f", g, g)
		h := b.Func("h", g, g)
		a := b.Func("a", g)()
		bb := b.Func("b", g)()

		cb := clause.NewBank(b.Terms)
		rewrite := axiom(b, cb, o, "f-a-is-b", b.Eq(f(a), bb, o))
		goal := axiom(b, cb, o, "negated-goal", b.Neq(h(f(a)), h(bb), o))

		return &Problem{Name: "demodulation", Sig: b, Clauses: []*clause.Clause{rewrite, goal}, Bank: cb, Ord: o}
	}
}

// subsumptionProblem includes a clause subsumed by a unit clause
// already present, exercising forward subsumption deletion: p(x) sits
// in the input alongside p(a)∨q(a), which is subsumed as soon as
// p(x)'s instance p(a) is seen.
func subsumptionProblem(ordFn func(*sig.Builder) order.Ordering) func() *Problem {
	return func() *Problem {
		b := sig.New()
		o := ordFn(b)
		g := b.Sort("g")
		pred := b.Pred("p", g)
		q := b.Pred("q", g)
		a := b.Func("a", g)()
		x0 := b.Var(0, g)

		cb := clause.NewBank(b.Terms)
		unitP := axiom(b, cb, o, "p-holds-everywhere", b.PosAtom(pred(x0), o))
		subsumed := axiom(b, cb, o, "redundant-disjunct", b.PosAtom(pred(a), o), b.PosAtom(q(a), o))
		negGoal := axiom(b, cb, o, "negated-goal", b.NegAtom(pred(a), o))

		return &Problem{Name: "subsumption", Sig: b, Clauses: []*clause.Clause{unitP, subsumed, negGoal}, Bank: cb, Ord: o}
	}
}
