package clause

import "github.com/gitrdm/superpose/pkg/subst"

// ProofStep is the directed, acyclic proof record: Axiom(src) |
// Inference(rule, parents). Cycles are structurally impossible because every
// parent is a clause created strictly earlier than the clause whose
// ProofStep references it.
type ProofStep struct {
	// Axiom is non-empty for input clauses; Rule is non-empty for
	// derived clauses. Exactly one of the two holds.
	Axiom string
	Rule  string

	Parents []Premise
}

// Premise is one parent of an inference step: the parent clause plus
// the substitution applied to it to produce the conclusion.
type Premise struct {
	Clause *Clause
	Subst  *subst.Subst
}

// IsAxiom reports whether the step is a leaf of the proof DAG.
func (p *ProofStep) IsAxiom() bool { return p != nil && p.Axiom != "" }

// NewAxiomStep builds a leaf proof step for an input clause.
func NewAxiomStep(source string) *ProofStep {
	return &ProofStep{Axiom: source}
}

// NewInferenceStep builds an internal proof step recording the rule
// name and the premises (clause + substitution) it was derived from.
func NewInferenceStep(rule string, parents ...Premise) *ProofStep {
	return &ProofStep{Rule: rule, Parents: parents}
}
