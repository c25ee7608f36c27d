package simplify

import (
	"github.com/gitrdm/superpose/pkg/clause"
	"github.com/gitrdm/superpose/pkg/index"
	"github.com/gitrdm/superpose/pkg/subst"
	"github.com/gitrdm/superpose/pkg/term"
	"github.com/gitrdm/superpose/pkg/unify"
)

const (
	scopeSubsumer subst.Scope = 10
	scopeSubsumed subst.Scope = 11
)

// Subsumes reports whether a subsumes b: some substitution of a's variables
// maps every literal of a onto a literal of b. This is the standard
// NP-complete multiset-matching search, pruned by trying literals in the
// order they appear; a's own variables are matched (never bound on b's side,
// via unify.Match).
func Subsumes(bank *term.Bank, a, b *clause.Clause) bool {
	if len(a.Lits) > len(b.Lits) {
		return false
	}
	used := make([]bool, len(b.Lits))
	return subsumeRec(bank, a.Lits, b.Lits, 0, used, subst.New())
}

func subsumeRec(bank *term.Bank, aLits, bLits []clause.Literal, i int, used []bool, base *subst.Subst) bool {
	if i == len(aLits) {
		return true
	}
	al := aLits[i]
	for j, bl := range bLits {
		if used[j] {
			continue
		}
		if al.Sign != bl.Sign || al.IsTrue() != bl.IsTrue() || al.IsFalse() != bl.IsFalse() {
			continue
		}
		if al.IsTrue() || al.IsFalse() {
			used[j] = true
			if subsumeRec(bank, aLits, bLits, i+1, used, base) {
				return true
			}
			used[j] = false
			continue
		}
		// Try matching a's literal directly, and with its two ends
		// swapped, against b's literal — equations are unordered pairs.
		for _, perm := range [2][2]*term.Term{{al.L, al.R}, {al.R, al.L}} {
			s, err := unify.Match(bank, base,
				subst.Scoped{Term: perm[0], Scope: scopeSubsumer}, subst.Scoped{Term: bl.L, Scope: scopeSubsumed})
			if err != nil {
				continue
			}
			s, err = unify.Match(bank, s,
				subst.Scoped{Term: perm[1], Scope: scopeSubsumer}, subst.Scoped{Term: bl.R, Scope: scopeSubsumed})
			if err != nil {
				continue
			}
			used[j] = true
			if subsumeRec(bank, aLits, bLits, i+1, used, s) {
				return true
			}
			used[j] = false
		}
	}
	return false
}

// ForwardSubsumed reports whether some clause already in the feature index
// subsumes c. The feature index narrows candidates; Subsumes does the exact
// check.
func ForwardSubsumed(bank *term.Bank, fi *index.FeatureIndex, c *clause.Clause) (*clause.Clause, bool) {
	for _, cand := range fi.RetrieveSubsumerCandidates(index.Compute(c)) {
		if cand.ID() == c.ID() {
			continue
		}
		if Subsumes(bank, cand, c) {
			return cand, true
		}
	}
	return nil, false
}

// BackwardSubsumed returns every indexed clause that c subsumes.
func BackwardSubsumed(bank *term.Bank, fi *index.FeatureIndex, c *clause.Clause) []*clause.Clause {
	var out []*clause.Clause
	for _, cand := range fi.RetrieveSubsumedCandidates(index.Compute(c)) {
		if cand.ID() == c.ID() {
			continue
		}
		if Subsumes(bank, c, cand) {
			out = append(out, cand)
		}
	}
	return out
}
