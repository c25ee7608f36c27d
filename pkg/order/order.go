// Package order implements the simplification ordering: a reduction ordering
// on terms satisfying the subterm property, stability under substitution,
// and monotonicity, total on ground terms and partial on open terms.
package order

import (
	"github.com/gitrdm/superpose/pkg/term"
)

// Result is the outcome of comparing two terms (or, via MultisetCompare,
// two clauses/literals reduced to multisets).
type Result int

const (
	Incomparable Result = iota
	Lt
	Eq
	Gt
)

func (r Result) String() string {
	switch r {
	case Lt:
		return "<"
	case Eq:
		return "="
	case Gt:
		return ">"
	default:
		return "?"
	}
}

// Swap returns the result of comparing the two terms in the opposite order.
func (r Result) Swap() Result {
	switch r {
	case Lt:
		return Gt
	case Gt:
		return Lt
	default:
		return r
	}
}

// Ordering is a reduction ordering over hash-consed terms.
type Ordering interface {
	// Compare returns Lt/Eq/Gt/Incomparable for s vs t.
	Compare(s, t *term.Term) Result
}

// MultisetCompare lifts an element ordering to the standard multiset
// extension used to derive the literal ordering from term ends and the
// clause ordering from literal orderings. The multiset extension: M1 > M2
// iff, after removing the largest common sub-multiset, every remaining
// element of M2 is strictly smaller than some remaining element of M1.
func MultisetCompare[T any](a, b []T, cmp func(x, y T) Result) Result {
	ra := append([]T(nil), a...)
	rb := append([]T(nil), b...)

	// Cancel the largest common sub-multiset (by mutual Eq).
	for i := 0; i < len(ra); {
		removed := false
		for j := 0; j < len(rb); j++ {
			if cmp(ra[i], rb[j]) == Eq {
				ra = append(ra[:i], ra[i+1:]...)
				rb = append(rb[:j], rb[j+1:]...)
				removed = true
				break
			}
		}
		if !removed {
			i++
		}
	}

	if len(ra) == 0 && len(rb) == 0 {
		return Eq
	}
	if len(ra) == 0 {
		return Lt
	}
	if len(rb) == 0 {
		return Gt
	}

	// ra > rb iff every element of rb is dominated by some element of ra.
	raDominatesRb := everyDominatedBySome(rb, ra, cmp)
	rbDominatesRa := everyDominatedBySome(ra, rb, cmp)

	switch {
	case raDominatesRb && !rbDominatesRa:
		return Gt
	case rbDominatesRa && !raDominatesRb:
		return Lt
	default:
		return Incomparable
	}
}

// everyDominatedBySome reports whether every element of small is
// strictly smaller than some element of big under cmp.
func everyDominatedBySome[T any](small, big []T, cmp func(x, y T) Result) bool {
	for _, s := range small {
		dominated := false
		for _, bgElem := range big {
			if cmp(bgElem, s) == Gt {
				dominated = true
				break
			}
		}
		if !dominated {
			return false
		}
	}
	return true
}
