// Package sig provides a small convenience layer for building terms,
// literals, and clauses against one shared symbol/type/term bank. It
// exists so that problem authors (cmd/superpose's embedded registry,
// and package tests) don't have to repeat the same bank/sort/symbol
// wiring by hand.
package sig

import (
	"github.com/gitrdm/superpose/pkg/clause"
	"github.com/gitrdm/superpose/pkg/order"
	"github.com/gitrdm/superpose/pkg/symbol"
	"github.com/gitrdm/superpose/pkg/term"
	"github.com/gitrdm/superpose/pkg/ty"
)

// Builder bundles the three interning banks a problem is built
// against, plus the nullary "$o" sort and its single inhabitant used
// to encode propositional atoms as equations (p ≈ ⊤), the standard
// superposition-calculus trick for mixing predicates and equations in
// one clause representation.
type Builder struct {
	Syms  *symbol.Table
	Types *ty.Bank
	Terms *term.Bank

	o     *ty.Type
	truth *term.Term
}

// New creates a Builder with fresh, empty banks.
func New() *Builder {
	b := &Builder{Syms: symbol.NewTable(), Types: ty.NewBank(), Terms: term.NewBank()}
	oSym := b.Syms.Intern("$o", 0)
	b.o = b.Types.App(oSym)
	truthSym := b.Syms.Intern("$true", 0)
	b.truth = b.Terms.Const(truthSym, b.o)
	return b
}

// Sort returns the nullary type constructor named name (e.g. "nat", "g").
func (b *Builder) Sort(name string) *ty.Type {
	return b.Types.App(b.Syms.Intern(name, 0))
}

// Bool is the canonical propositional sort "$o".
func (b *Builder) Bool() *ty.Type { return b.o }

// Truth is the canonical inhabitant of Bool, the right-hand side of
// every encoded propositional atom p ≈ ⊤.
func (b *Builder) Truth() *term.Term { return b.truth }

// Func interns an arity-n function symbol of type argSorts... -> ret
// and returns a constructor closing over it.
func (b *Builder) Func(name string, ret *ty.Type, argSorts ...*ty.Type) func(args ...*term.Term) *term.Term {
	sym := b.Syms.Intern(name, len(argSorts))
	if len(argSorts) == 0 {
		c := b.Terms.Const(sym, ret)
		return func(args ...*term.Term) *term.Term { return c }
	}
	fnTyp := b.Types.Arrow(ret, argSorts...)
	fn := b.Terms.Const(sym, fnTyp)
	return func(args ...*term.Term) *term.Term { return b.Terms.App(fn, ret, args...) }
}

// Pred interns an arity-n predicate symbol (a function into Bool) and
// returns a constructor that yields the atom's equational encoding
// pred(args) ≈ ⊤ directly as a Literal via PosAtom/NegAtom below; Func
// handles the plain-term case predicates share with ordinary
// functions.
func (b *Builder) Pred(name string, argSorts ...*ty.Type) func(args ...*term.Term) *term.Term {
	return b.Func(name, b.o, argSorts...)
}

// Var returns the free variable with the given id and sort.
func (b *Builder) Var(id int, sort *ty.Type) *term.Term {
	return b.Terms.Var(id, sort)
}

// PosAtom and NegAtom build the equational encoding of a propositional
// atom p, using ord to cache the (trivial, ⊤-is-always-smaller)
// orientation.
func (b *Builder) PosAtom(p *term.Term, ord order.Ordering) clause.Literal {
	return clause.Eq(p, b.truth, ord.Compare(p, b.truth))
}

func (b *Builder) NegAtom(p *term.Term, ord order.Ordering) clause.Literal {
	return clause.Neq(p, b.truth, ord.Compare(p, b.truth))
}

// Eq and Neq build an ordinary equation literal s ≈ t / s ≉ t, caching
// the orientation under ord.
func (b *Builder) Eq(s, t *term.Term, ord order.Ordering) clause.Literal {
	return clause.Eq(s, t, ord.Compare(s, t))
}

func (b *Builder) Neq(s, t *term.Term, ord order.Ordering) clause.Literal {
	return clause.Neq(s, t, ord.Compare(s, t))
}
