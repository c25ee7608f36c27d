package saturate

import "github.com/gitrdm/superpose/pkg/clause"

// Passive is the set of clauses waiting to be selected as the given clause.
// PopGiven alternates between the smallest-weight clause and the oldest
// clause, the standard age/weight fairness heuristic: weight-only selection
// is efficient but can starve a clause forever, so picking purely by age
// every AgeEvery pops guarantees every clause is eventually selected.
type Passive struct {
	clauses  map[uint64]*clause.Clause
	order    []uint64 // insertion order, oldest first
	ageEvery int
	pops     int
}

// NewPassive creates an empty Passive set with the given age/weight
// ratio (see Config.AgeEvery).
func NewPassive(ageEvery int) *Passive {
	return &Passive{clauses: make(map[uint64]*clause.Clause), ageEvery: ageEvery}
}

// Add inserts c into Passive if it is not already present.
func (p *Passive) Add(c *clause.Clause) {
	if _, ok := p.clauses[c.ID()]; ok {
		return
	}
	p.clauses[c.ID()] = c
	p.order = append(p.order, c.ID())
}

// Len reports the number of clauses waiting in Passive.
func (p *Passive) Len() int { return len(p.clauses) }

// PopGiven removes and returns the next given clause, or (nil, false)
// if Passive is empty.
func (p *Passive) PopGiven() (*clause.Clause, bool) {
	if len(p.order) == 0 {
		return nil, false
	}
	p.pops++

	var id uint64
	var idx int
	if p.ageEvery > 0 && p.pops%p.ageEvery == 0 {
		id, idx = p.order[0], 0
	} else {
		idx = 0
		best := weight(p.clauses[p.order[0]])
		for i, cand := range p.order {
			if w := weight(p.clauses[cand]); w < best {
				best, idx = w, i
			}
		}
		id = p.order[idx]
	}

	c := p.clauses[id]
	delete(p.clauses, id)
	p.order = append(p.order[:idx], p.order[idx+1:]...)
	return c, true
}

// weight is the sum of term sizes across a clause's literal ends, the
// standard clause-weight heuristic for given-clause selection.
func weight(c *clause.Clause) int {
	w := 0
	for _, l := range c.Lits {
		for _, end := range l.Ends() {
			w += end.Size()
		}
	}
	return w
}
