// Package index implements the two retrieval structures: a feature-vector
// index for subsumption candidate retrieval, and a term index
// (discrimination/fingerprint-style) for superposition and demodulation
// partner lookup. Both follow the shape of the teacher's fact_store.go
// FactIndex — a position/value map plus a reverse index for O(1) removal —
// generalized from fact positions to clause features and rewrite-rule
// left-hand sides.
package index

import (
	"sync"

	"github.com/gitrdm/superpose/pkg/clause"
)

// Features is a fixed-size tuple of cheap numeric clause statistics.
type Features struct {
	NumLits    int
	NumPosLits int
	NumNegLits int
	MaxDepth   int
	MaxSize    int
	NumVars    int
}

// Compute derives a clause's feature vector.
func Compute(c *clause.Clause) Features {
	f := Features{NumLits: c.NumLits(), NumVars: c.Vars.Len()}
	for _, l := range c.Lits {
		if l.IsPositive() {
			f.NumPosLits++
		} else if l.IsNegative() {
			f.NumNegLits++
		}
		for _, end := range l.Ends() {
			if d := end.Depth(); d > f.MaxDepth {
				f.MaxDepth = d
			}
			if sz := end.Size(); sz > f.MaxSize {
				f.MaxSize = sz
			}
		}
	}
	return f
}

// leq reports whether every component of a except NumVars is <= the
// corresponding component of b — the necessary condition for a clause with
// features a to possibly subsume one with features b.
func leq(a, b Features) bool {
	return a.NumLits <= b.NumLits &&
		a.NumPosLits <= b.NumPosLits &&
		a.NumNegLits <= b.NumNegLits &&
		a.MaxDepth <= b.MaxDepth &&
		a.MaxSize <= b.MaxSize
}

// FeatureIndex retrieves subsumption candidates by feature-vector
// domination, avoiding an O(n²) pairwise subsumption scan in the
// common case where most clause pairs are trivially incomparable.
type FeatureIndex struct {
	mu    sync.RWMutex
	feats map[uint64]Features
	byID  map[uint64]*clause.Clause
}

// NewFeatureIndex creates an empty feature-vector index.
func NewFeatureIndex() *FeatureIndex {
	return &FeatureIndex{feats: make(map[uint64]Features), byID: make(map[uint64]*clause.Clause)}
}

// Add indexes c by its feature vector.
func (fi *FeatureIndex) Add(c *clause.Clause) {
	fi.mu.Lock()
	defer fi.mu.Unlock()
	fi.feats[c.ID()] = Compute(c)
	fi.byID[c.ID()] = c
}

// Remove drops c from the index.
func (fi *FeatureIndex) Remove(c *clause.Clause) {
	fi.mu.Lock()
	defer fi.mu.Unlock()
	delete(fi.feats, c.ID())
	delete(fi.byID, c.ID())
}

// RetrieveSubsumerCandidates returns every indexed clause whose
// feature vector could possibly subsume a clause with features qf
// (i.e. is elementwise <= qf) — candidates for forward subsumption of
// a query clause with features qf.
func (fi *FeatureIndex) RetrieveSubsumerCandidates(qf Features) []*clause.Clause {
	fi.mu.RLock()
	defer fi.mu.RUnlock()
	var out []*clause.Clause
	for id, f := range fi.feats {
		if leq(f, qf) {
			out = append(out, fi.byID[id])
		}
	}
	return out
}

// RetrieveSubsumedCandidates returns every indexed clause whose
// feature vector could possibly be subsumed by a clause with features
// qf (i.e. is elementwise >= qf) — candidates for backward subsumption.
func (fi *FeatureIndex) RetrieveSubsumedCandidates(qf Features) []*clause.Clause {
	fi.mu.RLock()
	defer fi.mu.RUnlock()
	var out []*clause.Clause
	for id, f := range fi.feats {
		if leq(qf, f) {
			out = append(out, fi.byID[id])
		}
	}
	return out
}

// Len reports how many clauses are indexed.
func (fi *FeatureIndex) Len() int {
	fi.mu.RLock()
	defer fi.mu.RUnlock()
	return len(fi.feats)
}
