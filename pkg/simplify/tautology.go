package simplify

import "github.com/gitrdm/superpose/pkg/clause"

// sameEquation reports whether a and b are the same equation in either
// orientation, so a syntactic match against a swapped equation (s ≈ t vs
// t ≈ s) is still recognized even though Literal.Equal is order-sensitive.
// Signs are not compared.
func sameEquation(a, b clause.Literal) bool {
	if a.IsTrue() || a.IsFalse() || b.IsTrue() || b.IsFalse() {
		return a.Equal(b)
	}
	return (a.L == b.L && a.R == b.R) || (a.L == b.R && a.R == b.L)
}

// IsTautology reports whether c is valid regardless of interpretation: it
// contains the sentinel literal true, a reflexive positive equation s ≈ s,
// or a complementary pair of literals over the same equation.
func IsTautology(c *clause.Clause) bool {
	for _, l := range c.Lits {
		if l.IsTrue() {
			return true
		}
		if l.IsPositive() && l.L == l.R {
			return true
		}
	}
	for i, a := range c.Lits {
		for j := i + 1; j < len(c.Lits); j++ {
			b := c.Lits[j]
			if a.Sign != b.Sign && !a.IsTrue() && !a.IsFalse() && !b.IsTrue() && !b.IsFalse() && sameEquation(a, b) {
				return true
			}
		}
	}
	return false
}
