// Package clause implements literals, clauses, trails and proof steps,
// hash-consed the same way package term hash-conses terms, so that two
// clauses with the same literal sequence (under renaming) are stored
// identically. Clauses whose literals differ only in order are distinct.
package clause

import (
	"fmt"

	"github.com/gitrdm/superpose/pkg/order"
	"github.com/gitrdm/superpose/pkg/term"
)

// Literal is a signed equation s ≈ t / s ≉ t, or one of the two
// propositional sentinels True/False used by tautology deletion and
// equality-resolution base cases. A propositional atom p is encoded as
// Equation(p, ⊤, sign, Gt), where ⊤ is the nullary constant returned by
// sig.Builder's Truth method.
type Literal struct {
	L, R    *term.Term
	Sign    bool // true = positive (≈), false = negative (≉)
	Orient  order.Result
	isTrue  bool
	isFalse bool
}

// TrueLit is the literal that is always satisfied.
var TrueLit = Literal{isTrue: true, Sign: true}

// FalseLit is the literal that is never satisfied (the empty clause's
// only possible literal count is zero, but FalseLit is useful as an
// explicit placeholder during simplification).
var FalseLit = Literal{isFalse: true, Sign: true}

// Eq builds a positive equation literal s ≈ t with orientation ord
// (refreshed whenever the ordering changes).
func Eq(s, t *term.Term, ord order.Result) Literal {
	return Literal{L: s, R: t, Sign: true, Orient: ord}
}

// Neq builds a negative equation literal s ≉ t.
func Neq(s, t *term.Term, ord order.Result) Literal {
	return Literal{L: s, R: t, Sign: false, Orient: ord}
}

// IsTrue/IsFalse report whether the literal is one of the sentinels.
func (l Literal) IsTrue() bool  { return l.isTrue }
func (l Literal) IsFalse() bool { return l.isFalse }

// IsPositive reports whether the literal is a positive equation.
func (l Literal) IsPositive() bool { return !l.isTrue && !l.isFalse && l.Sign }

// IsNegative reports whether the literal is a negative equation.
func (l Literal) IsNegative() bool { return !l.isTrue && !l.isFalse && !l.Sign }

// Negate returns the logical complement of the literal.
func (l Literal) Negate() Literal {
	switch {
	case l.isTrue:
		return FalseLit
	case l.isFalse:
		return TrueLit
	default:
		l.Sign = !l.Sign
		return l
	}
}

// Ends returns the literal's two term "ends" used to derive the literal
// ordering.
func (l Literal) Ends() []*term.Term {
	if l.isTrue || l.isFalse {
		return nil
	}
	return []*term.Term{l.L, l.R}
}

// Refresh recomputes Orient from the current ordering, as required whenever
// the ordering changes.
func (l Literal) Refresh(ord order.Ordering) Literal {
	if l.isTrue || l.isFalse {
		return l
	}
	l.Orient = ord.Compare(l.L, l.R)
	return l
}

// CompareOrder derives the literal ordering from the multiset of term ends,
// used by order.MultisetCompare at the clause level.
func CompareOrder(ord order.Ordering, a, b Literal) order.Result {
	return order.MultisetCompare(a.Ends(), b.Ends(), ord.Compare)
}

func (l Literal) String() string {
	switch {
	case l.isTrue:
		return "true"
	case l.isFalse:
		return "false"
	case l.Sign:
		return fmt.Sprintf("%s ≈ %s", l.L.String(), l.R.String())
	default:
		return fmt.Sprintf("%s ≉ %s", l.L.String(), l.R.String())
	}
}

// Equal is structural equality up to hash-consed term identity
// (two literals from the same Bank with the same shape are Equal).
func (l Literal) Equal(o Literal) bool {
	if l.isTrue != o.isTrue || l.isFalse != o.isFalse {
		return false
	}
	if l.isTrue || l.isFalse {
		return true
	}
	return l.Sign == o.Sign && l.L == o.L && l.R == o.R
}
