package saturate

import (
	"github.com/gitrdm/superpose/pkg/clause"
	"github.com/gitrdm/superpose/pkg/index"
	"github.com/gitrdm/superpose/pkg/simplify"
)

// Active is the set of clauses the given-clause loop has fully processed:
// every pair of Active clauses has already had every applicable generating
// inference attempted between them. Its two indexes narrow the candidate
// search for subsumption and demodulation.
type Active struct {
	clauses  map[uint64]*clause.Clause
	order    []uint64
	Features *index.FeatureIndex
	Demod    *index.TermIndex
}

// NewActive creates an empty Active set with a generalization-lookup
// cache of the given size (0 disables the cache).
func NewActive(genCacheSize int) *Active {
	return &Active{
		clauses:  make(map[uint64]*clause.Clause),
		Features: index.NewFeatureIndex(),
		Demod:    index.NewTermIndex(genCacheSize),
	}
}

// Add inserts c into Active and both of its indexes.
func (a *Active) Add(c *clause.Clause) {
	if _, ok := a.clauses[c.ID()]; ok {
		return
	}
	a.clauses[c.ID()] = c
	a.order = append(a.order, c.ID())
	a.Features.Add(c)
	simplify.IndexDemodulator(a.Demod, c)
}

// Remove deletes c from Active and both indexes.
func (a *Active) Remove(c *clause.Clause) {
	if _, ok := a.clauses[c.ID()]; !ok {
		return
	}
	delete(a.clauses, c.ID())
	for i, id := range a.order {
		if id == c.ID() {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
	a.Features.Remove(c)
	a.Demod.Remove(c)
}

// All returns every clause currently in Active, oldest first.
func (a *Active) All() []*clause.Clause {
	out := make([]*clause.Clause, 0, len(a.order))
	for _, id := range a.order {
		out = append(out, a.clauses[id])
	}
	return out
}

// Units returns every unit clause in Active, used by simplify-reflect.
func (a *Active) Units() []*clause.Clause {
	var out []*clause.Clause
	for _, id := range a.order {
		if c := a.clauses[id]; c.Flags.Unit {
			out = append(out, c)
		}
	}
	return out
}

// Len reports the number of clauses in Active.
func (a *Active) Len() int { return len(a.clauses) }
