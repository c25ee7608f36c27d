// Package saturate implements the given-clause saturation loop: repeatedly
// select a clause from Passive, simplify it against Active, move it to
// Active, generate every applicable inference against the rest of Active,
// simplify the results, and feed them back into Passive — until the empty
// clause is derived (Theorem), Passive is exhausted (CounterSatisfiable), or
// a resource limit is hit (Unknown). The loop itself never spawns a
// goroutine; cooperative cancellation and resource accounting happen once
// per outer step, mirroring the teacher's DFSSearch backtracking loop.
package saturate

import (
	"context"
	"errors"
	"runtime"
	"time"

	"github.com/gitrdm/superpose/pkg/calculus"
	"github.com/gitrdm/superpose/pkg/clause"
	"github.com/gitrdm/superpose/pkg/index"
	"github.com/gitrdm/superpose/pkg/order"
	"github.com/gitrdm/superpose/pkg/simplify"
	"github.com/gitrdm/superpose/pkg/term"
)

// ErrResourceLimit is returned when the loop stops because of a configured
// timeout, step count, or memory bound rather than a logical conclusion.
var ErrResourceLimit = errors.New("saturate: resource limit reached")

// Result is the loop's final verdict.
type Result int

const (
	// Unknown means the loop stopped (resource limit or cancellation)
	// without deciding satisfiability either way.
	Unknown Result = iota
	// Theorem means the empty clause was derived: the input clause set
	// is unsatisfiable.
	Theorem
	// CounterSatisfiable means Passive was exhausted without deriving
	// the empty clause: saturation succeeded and, assuming refutational
	// completeness of the calculus, the input is satisfiable.
	CounterSatisfiable
)

func (r Result) String() string {
	switch r {
	case Theorem:
		return "Theorem"
	case CounterSatisfiable:
		return "CounterSatisfiable"
	default:
		return "Unknown"
	}
}

// Loop is one saturation run over a fixed term/clause bank.
type Loop struct {
	Terms   *term.Bank
	Clauses *clause.Bank
	Ord     order.Ordering
	Calc    calculus.Calculus
	Cfg     Config
	Stats   *Stats

	active  *Active
	passive *Passive
	varSeq  int

	onAdd    func(*clause.Clause)
	onRemove func(*clause.Clause)
}

// NewLoop wires a saturation run. Each Loop owns its own varSeq, the
// fresh-variable counter every inference rule's renamer draws from; it is
// not shared between loops.
func NewLoop(terms *term.Bank, clauses *clause.Bank, ord order.Ordering, calc calculus.Calculus, cfg Config, stats *Stats) *Loop {
	return &Loop{
		Terms:   terms,
		Clauses: clauses,
		Ord:     ord,
		Calc:    calc,
		Cfg:     cfg,
		Stats:   stats,
		active:  NewActive(cfg.GenCacheSize),
		passive: NewPassive(cfg.AgeEvery),
	}
}

// OnAdd registers a hook called every time a clause is added to Active.
func (l *Loop) OnAdd(f func(*clause.Clause)) { l.onAdd = f }

// OnRemove registers a hook called every time a clause is removed from
// Active (by backward simplification or backward subsumption).
func (l *Loop) OnRemove(f func(*clause.Clause)) { l.onRemove = f }

// AddPassive seeds the run with one or more input clauses.
func (l *Loop) AddPassive(cs ...*clause.Clause) {
	for _, c := range cs {
		l.passive.Add(c)
	}
}

// Active exposes the current Active set, mainly for tests and proof
// introspection.
func (l *Loop) Active() *Active { return l.active }

func (l *Loop) calcCtx() *calculus.Context {
	return &calculus.Context{Terms: l.Terms, Clauses: l.Clauses, Ord: l.Ord, VarSeq: &l.varSeq, Select: l.Cfg.Selection}
}

func (l *Loop) simplCtx() *simplify.Context {
	return &simplify.Context{Terms: l.Terms, Clauses: l.Clauses, Ord: l.Ord, VarSeq: &l.varSeq}
}

// selectLiterals computes c's eligible-literal bit set under l.Cfg.Selection
// and attaches it to c in place: Selected isn't part of a clause's hash key,
// so every existing reference to c observes the update, matching the
// "clauses are immutable once interned except for Selected" contract
// Eligible relies on.
func (l *Loop) selectLiterals(c *clause.Clause) {
	c.Selected = clause.Select(c, l.Cfg.Selection, func(cl *clause.Clause, i int) bool {
		return literalIsMaximal(l.Ord, cl.Lits, i)
	})
}

// literalIsMaximal reports whether lits[i] is undominated by any other
// literal of lits under ord.
func literalIsMaximal(ord order.Ordering, lits []clause.Literal, i int) bool {
	for j, other := range lits {
		if j == i {
			continue
		}
		if clause.CompareOrder(ord, other, lits[i]) == order.Gt {
			return false
		}
	}
	return true
}

func positiveUnits(units []*clause.Clause) []*clause.Clause {
	var out []*clause.Clause
	for _, u := range units {
		if u.Flags.Positive {
			out = append(out, u)
		}
	}
	return out
}

func negativeUnits(units []*clause.Clause) []*clause.Clause {
	var out []*clause.Clause
	for _, u := range units {
		if !u.Flags.Positive {
			out = append(out, u)
		}
	}
	return out
}

// forwardSimplify rewrites c to a fixpoint against Active and reports
// whether it survives as a non-redundant clause.
func (l *Loop) forwardSimplify(c *clause.Clause) (*clause.Clause, bool) {
	cur := c
	for {
		changed := false

		if !l.Cfg.DisableDemodulation {
			if nc, did, _ := simplify.Demodulate(l.simplCtx(), l.active.Demod, cur); did {
				cur, changed = nc, true
			}
		}
		if !l.Cfg.DisableSimplifyReflect {
			units := l.active.Units()
			if nc, did := simplify.PositiveSimplifyReflect(l.Terms, l.Clauses, negativeUnits(units), cur); did {
				cur, changed = nc, true
			}
			if nc, did := simplify.NegativeSimplifyReflect(l.Terms, l.Clauses, positiveUnits(units), cur); did {
				cur, changed = nc, true
			}
		}
		if simplify.IsTautology(cur) || l.Calc.IsTrivial(cur) {
			return cur, false
		}
		if !l.Cfg.DisableSubsumption {
			if _, ok := simplify.ForwardSubsumed(l.Terms, l.active.Features, cur); ok {
				return cur, false
			}
		}
		if !changed {
			return cur, true
		}
	}
}

// backwardSimplify uses a newly activated clause c to shrink or remove
// existing Active clauses.
func (l *Loop) backwardSimplify(c *clause.Clause) {
	cDemod := index.NewTermIndex(0)
	simplify.IndexDemodulator(cDemod, c)
	for _, d := range l.active.All() {
		if d.ID() == c.ID() {
			continue
		}
		if !l.Cfg.DisableSubsumption && simplify.Subsumes(l.Terms, c, d) {
			l.active.Remove(d)
			if l.onRemove != nil {
				l.onRemove(d)
			}
			continue
		}
		if !l.Cfg.DisableDemodulation {
			if nc, did, _ := simplify.Demodulate(l.simplCtx(), cDemod, d); did {
				l.active.Remove(d)
				if l.onRemove != nil {
					l.onRemove(d)
				}
				l.passive.Add(nc)
				l.Stats.Simplifications.Inc()
			}
		}
	}
}

// generate applies every binary and unary rule of the calculus between the
// given clause and the rest of Active.
func (l *Loop) generate(given *clause.Clause) []*clause.Clause {
	ctx := l.calcCtx()
	var out []*clause.Clause
	for _, rule := range l.Calc.Unary() {
		out = append(out, rule(ctx, given)...)
	}
	for _, rule := range l.Calc.Binary() {
		for _, partner := range l.active.All() {
			out = append(out, rule(ctx, given, partner)...)
		}
	}
	return out
}

// Run drives the saturation loop to completion, a resource limit, or
// context cancellation.
func (l *Loop) Run(ctx context.Context) (Result, *clause.Clause, error) {
	start := time.Now()
	steps := 0

	for {
		select {
		case <-ctx.Done():
			return Unknown, nil, ctx.Err()
		default:
		}
		if l.Cfg.Timeout > 0 && time.Since(start) > l.Cfg.Timeout {
			return Unknown, nil, ErrResourceLimit
		}
		if l.Cfg.MaxSteps > 0 && steps >= l.Cfg.MaxSteps {
			return Unknown, nil, ErrResourceLimit
		}
		if l.Cfg.MaxMemoryBytes > 0 {
			var ms runtime.MemStats
			runtime.ReadMemStats(&ms)
			if ms.HeapAlloc > l.Cfg.MaxMemoryBytes {
				return Unknown, nil, ErrResourceLimit
			}
		}
		steps++

		given, ok := l.passive.PopGiven()
		if !ok {
			return CounterSatisfiable, nil, nil
		}
		if l.Stats != nil {
			l.Stats.GivenClauses.Inc()
			l.Stats.PassiveSetSize.Set(float64(l.passive.Len()))
		}

		simplified, keep := l.forwardSimplify(given)
		if !keep {
			if l.Stats != nil {
				l.Stats.Simplifications.Inc()
			}
			continue
		}
		if !l.Cfg.DisableCondensation {
			simplified, _ = simplify.Condense(l.simplCtx(), simplified)
		}
		if simplified.IsEmpty() {
			return Theorem, simplified, nil
		}

		l.selectLiterals(simplified)
		l.active.Add(simplified)
		if l.Stats != nil {
			l.Stats.ActiveSetSize.Set(float64(l.active.Len()))
		}
		if l.onAdd != nil {
			l.onAdd(simplified)
		}
		l.Cfg.Logger.Trace("given clause processed", "id", simplified.ID(), "clause", simplified.String(),
			"active", l.active.Len(), "passive", l.passive.Len())

		l.backwardSimplify(simplified)

		generated := l.generate(simplified)
		if l.Stats != nil {
			l.Stats.InferencesGenerated.Add(float64(len(generated)))
		}
		for _, g := range generated {
			gs, keep := l.forwardSimplify(g)
			if !keep {
				continue
			}
			if !l.Cfg.DisableCondensation {
				gs, _ = simplify.Condense(l.simplCtx(), gs)
			}
			if gs.IsEmpty() {
				return Theorem, gs, nil
			}
			l.passive.Add(gs)
		}
	}
}
