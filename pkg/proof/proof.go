// Package proof walks the proof DAG recorded on clause.ProofStep and renders
// it through a pluggable Emitter.
package proof

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gitrdm/superpose/pkg/clause"
)

// Emitter renders one node of a proof DAG. Implementations are free
// to ignore steps they don't care about (e.g. a statistics-only
// consumer).
type Emitter interface {
	// Axiom is called once per leaf clause, in an unspecified order.
	Axiom(c *clause.Clause, source string)
	// Inference is called once per derived clause, only after every
	// one of its parents has already been emitted (a topological walk).
	Inference(c *clause.Clause, rule string, parents []clause.Premise)
	// Done is called once, after every reachable clause has been emitted.
	Done()
}

// Walk performs a topological traversal of the proof DAG rooted at
// refutation (normally the empty clause) and feeds every reachable node to e
// exactly once. Cycles cannot occur because every parent clause was interned
// strictly before its children, so a simple visited-set walk suffices.
func Walk(refutation *clause.Clause, e Emitter) {
	visited := make(map[uint64]bool)
	var visit func(c *clause.Clause)
	visit = func(c *clause.Clause) {
		if c == nil || visited[c.ID()] {
			return
		}
		visited[c.ID()] = true
		if c.Proof == nil {
			e.Axiom(c, "unknown")
			return
		}
		if c.Proof.IsAxiom() {
			e.Axiom(c, c.Proof.Axiom)
			return
		}
		for _, p := range c.Proof.Parents {
			visit(p.Clause)
		}
		e.Inference(c, c.Proof.Rule, c.Proof.Parents)
	}
	visit(refutation)
	e.Done()
}

// TPTPEmitter renders the proof DAG as a sequence of TPTP-style derivation
// lines.
type TPTPEmitter struct {
	lines []string
}

// NewTPTPEmitter returns an Emitter collecting TPTP-style lines.
func NewTPTPEmitter() *TPTPEmitter { return &TPTPEmitter{} }

func (t *TPTPEmitter) Axiom(c *clause.Clause, source string) {
	t.lines = append(t.lines, fmt.Sprintf("cnf(c_%d, axiom, %s, file(%q)).", c.ID(), c.String(), source))
}

func (t *TPTPEmitter) Inference(c *clause.Clause, rule string, parents []clause.Premise) {
	ids := make([]string, len(parents))
	for i, p := range parents {
		ids[i] = fmt.Sprintf("c_%d", p.Clause.ID())
	}
	t.lines = append(t.lines, fmt.Sprintf("cnf(c_%d, plain, %s, inference(%s, [], [%s])).",
		c.ID(), c.String(), rule, strings.Join(ids, ", ")))
}

func (t *TPTPEmitter) Done() {}

// String returns the accumulated derivation, one line per clause.
func (t *TPTPEmitter) String() string { return strings.Join(t.lines, "\n") }

// ZFEmitter is a minimal stub for an alternative natural-deduction style
// rendering; it only records which rule fired how many times, useful for
// regression tests that assert a proof used (for example) at least one
// superposition step.
type ZFEmitter struct {
	RuleCounts map[string]int
}

// NewZFEmitter returns a stub Emitter that only tallies rule usage.
func NewZFEmitter() *ZFEmitter { return &ZFEmitter{RuleCounts: make(map[string]int)} }

func (z *ZFEmitter) Axiom(c *clause.Clause, source string) { z.RuleCounts["axiom"]++ }

func (z *ZFEmitter) Inference(c *clause.Clause, rule string, parents []clause.Premise) {
	z.RuleCounts[rule]++
}

func (z *ZFEmitter) Done() {}

// RulesUsed returns the distinct rule names that fired, sorted, for
// stable test assertions.
func (z *ZFEmitter) RulesUsed() []string {
	out := make([]string, 0, len(z.RuleCounts))
	for r := range z.RuleCounts {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}
