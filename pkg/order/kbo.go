package order

import (
	"github.com/gitrdm/superpose/pkg/symbol"
	"github.com/gitrdm/superpose/pkg/term"
)

// KBO is a Knuth-Bendix ordering parameterized by a symbol precedence and a
// weight function.
type KBO struct {
	// Less reports whether a is strictly before b in the symbol
	// precedence (typically symbol.Table.Precedence(mode)).
	Less func(a, b *symbol.Symbol) bool
	// VarWeight is the weight assigned to every variable/bound
	// variable occurrence; must be the smallest weight in the system
	// for the ordering to remain well-founded. Defaults to 1 when 0.
	VarWeight uint64
}

// NewKBO builds a KBO over the given precedence with default variable
// weight 1; symbol weights come from each *symbol.Symbol.Weight().
func NewKBO(less func(a, b *symbol.Symbol) bool) *KBO {
	return &KBO{Less: less, VarWeight: 1}
}

func (k *KBO) varWeight() uint64 {
	if k.VarWeight == 0 {
		return 1
	}
	return k.VarWeight
}

// Compare implements Ordering.Compare via weight with the
// variable-condition tie-break and a recursive lexicographic
// comparison of arguments under the precedence when weights tie —
// the standard two-phase KBO decision procedure.
func (k *KBO) Compare(s, t *term.Term) Result {
	if s == t {
		return Eq
	}

	if t.IsVar() && occursIn(s, t.VarID()) {
		return Gt
	}
	if s.IsVar() && occursIn(t, s.VarID()) {
		return Lt
	}
	if s.IsVar() || t.IsVar() {
		// Distinct variables, or a variable vs. a term not containing it:
		// KBO cannot order them.
		return Incomparable
	}

	ws, wt := k.weight(s), k.weight(t)
	vcST := varCountGE(s, t)
	vcTS := varCountGE(t, s)

	switch {
	case ws > wt && vcST:
		return Gt
	case ws < wt && vcTS:
		return Lt
	case ws == wt:
		return k.tieBreak(s, t, vcST, vcTS)
	default:
		return Incomparable
	}
}

// tieBreak resolves equal-weight comparisons by symbol precedence on
// the heads, then lexicographically on arguments left to right.
func (k *KBO) tieBreak(s, t *term.Term, vcST, vcTS bool) Result {
	hs, ht := s.Head(), t.Head()
	if hs.Kind() != term.KConst || ht.Kind() != term.KConst {
		if s.Kind() == t.Kind() && sameShape(s, t) {
			return k.lexArgs(s, t)
		}
		return Incomparable
	}
	if hs.Symbol() == ht.Symbol() {
		return k.lexArgs(s, t)
	}
	switch {
	case k.Less(hs.Symbol(), ht.Symbol()) && vcTS:
		return Lt
	case k.Less(ht.Symbol(), hs.Symbol()) && vcST:
		return Gt
	default:
		return Incomparable
	}
}

func sameShape(s, t *term.Term) bool {
	if s.Kind() != t.Kind() {
		return false
	}
	if s.Kind() == term.KApp {
		return len(s.Args()) == len(t.Args())
	}
	return true
}

// lexArgs compares same-arity argument lists left to right, the first
// non-Eq comparison deciding the result (classic KBO status: default
// left-to-right lexicographic).
func (k *KBO) lexArgs(s, t *term.Term) Result {
	sa, ta := flatArgs(s), flatArgs(t)
	if len(sa) != len(ta) {
		return Incomparable
	}
	for i := range sa {
		if r := k.Compare(sa[i], ta[i]); r != Eq {
			return r
		}
	}
	return Eq
}

func flatArgs(t *term.Term) []*term.Term {
	switch t.Kind() {
	case term.KApp:
		return t.Args()
	case term.KFun:
		return []*term.Term{t.Body()}
	case term.KBuiltin:
		return t.Args()
	default:
		return nil
	}
}

// weight computes the KBO weight of t bottom-up.
func (k *KBO) weight(t *term.Term) uint64 {
	switch t.Kind() {
	case term.KVar, term.KBVar:
		return k.varWeight()
	case term.KConst:
		return t.Symbol().Weight()
	case term.KApp:
		w := k.weight(t.Fn())
		for _, a := range t.Args() {
			w += k.weight(a)
		}
		return w
	case term.KFun:
		return 1 + k.weight(t.Body())
	case term.KBuiltin:
		var w uint64 = 1
		for _, a := range t.Args() {
			w += k.weight(a)
		}
		return w
	default:
		return 0
	}
}

// occursIn reports whether variable id occurs anywhere in t.
func occursIn(t *term.Term, id int) bool {
	if t.IsVar() {
		return t.VarID() == id
	}
	switch t.Kind() {
	case term.KApp:
		if occursIn(t.Fn(), id) {
			return true
		}
		for _, a := range t.Args() {
			if occursIn(a, id) {
				return true
			}
		}
	case term.KFun:
		return occursIn(t.Body(), id)
	case term.KBuiltin:
		for _, a := range t.Args() {
			if occursIn(a, id) {
				return true
			}
		}
	}
	return false
}

// varCountGE reports whether, for every variable x, the number of
// occurrences of x in s is >= the number of occurrences of x in t —
// the KBO variable condition required before weight alone may decide
// s > t.
func varCountGE(s, t *term.Term) bool {
	cs := varCounts(s, map[int]int{})
	ct := varCounts(t, map[int]int{})
	for id, n := range ct {
		if cs[id] < n {
			return false
		}
	}
	return true
}

func varCounts(t *term.Term, acc map[int]int) map[int]int {
	if t.IsVar() {
		acc[t.VarID()]++
		return acc
	}
	switch t.Kind() {
	case term.KApp:
		varCounts(t.Fn(), acc)
		for _, a := range t.Args() {
			varCounts(a, acc)
		}
	case term.KFun:
		varCounts(t.Body(), acc)
	case term.KBuiltin:
		for _, a := range t.Args() {
			varCounts(a, acc)
		}
	}
	return acc
}
