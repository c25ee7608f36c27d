package order

import (
	"github.com/gitrdm/superpose/pkg/symbol"
	"github.com/gitrdm/superpose/pkg/term"
)

// LPO is a lexicographic path ordering parameterized by a symbol precedence.
type LPO struct {
	Less func(a, b *symbol.Symbol) bool
}

// NewLPO builds an LPO over the given precedence.
func NewLPO(less func(a, b *symbol.Symbol) bool) *LPO {
	return &LPO{Less: less}
}

// Compare implements Ordering.Compare via the standard recursive LPO
// definition: s > t iff some argument of s is >= t, or s's head
// precedes... dominates t's head and s is greater than every argument
// of t, or same head and the argument tuples compare lexicographically.
func (o *LPO) Compare(s, t *term.Term) Result {
	if s == t {
		return Eq
	}
	if t.IsVar() {
		if occursIn(s, t.VarID()) {
			return Gt
		}
		return Incomparable
	}
	if s.IsVar() {
		if occursIn(t, s.VarID()) {
			return Lt
		}
		return Incomparable
	}

	if o.ge(s, t) {
		return Gt
	}
	if o.ge(t, s) {
		return Lt
	}
	return Incomparable
}

// ge reports s >=lpo t (non-strict), the standard auxiliary relation.
func (o *LPO) ge(s, t *term.Term) bool {
	if s == t {
		return true
	}
	sa := flatArgs(s)
	for _, si := range sa {
		if si == t || o.ge(si, t) {
			return true
		}
	}

	ta := flatArgs(t)
	hs, ht := s.Head(), t.Head()
	if hs.Kind() == term.KConst && ht.Kind() == term.KConst {
		if hs.Symbol() == ht.Symbol() {
			return o.lexGE(s, sa, ta)
		}
		if o.Less(ht.Symbol(), hs.Symbol()) {
			return o.allGT(s, ta)
		}
		return false
	}
	return false
}

func (o *LPO) allGT(s *term.Term, args []*term.Term) bool {
	for _, a := range args {
		if o.Compare(s, a) != Gt {
			return false
		}
	}
	return true
}

// lexGE implements the same-head case of LPO: s = f(sa...) >=lpo
// t = f(ta...) iff (sa) >=lex (ta) at the first differing position and
// s (the whole term, not just sa[i]) exceeds every argument of t.
func (o *LPO) lexGE(s *term.Term, sa, ta []*term.Term) bool {
	if len(sa) != len(ta) {
		return false
	}
	for i := range sa {
		switch o.Compare(sa[i], ta[i]) {
		case Eq:
			continue
		case Gt:
			return o.allGT(s, ta)
		default:
			return false
		}
	}
	return true
}
