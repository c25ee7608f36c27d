package proof_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitrdm/superpose/pkg/clause"
	"github.com/gitrdm/superpose/pkg/order"
	"github.com/gitrdm/superpose/pkg/proof"
	"github.com/gitrdm/superpose/pkg/sig"
	"github.com/gitrdm/superpose/pkg/symbol"
)

// buildDiamond constructs a two-axiom, one-inference proof DAG:
// axiom1, axiom2 both feed a single derived clause via rule "merge".
func buildDiamond(t *testing.T) (axiom1, axiom2, derived *clause.Clause) {
	t.Helper()
	b := sig.New()
	g := b.Sort("g")
	a := b.Func("a", g)()
	bb := b.Func("b", g)()
	cc := b.Func("c", g)()
	ord := order.NewKBO(b.Syms.Precedence(symbol.PrecedenceArrival))

	cb := clause.NewBank(b.Terms)
	axiom1 = cb.Intern([]clause.Literal{b.Eq(a, bb, ord)}, clause.EmptyTrail, clause.NewAxiomStep("axiom1.ax"))
	axiom2 = cb.Intern([]clause.Literal{b.Eq(bb, cc, ord)}, clause.EmptyTrail, clause.NewAxiomStep("axiom2.ax"))
	derived = cb.Intern([]clause.Literal{b.Eq(a, cc, ord)}, clause.EmptyTrail,
		clause.NewInferenceStep("merge", clause.Premise{Clause: axiom1}, clause.Premise{Clause: axiom2}))
	return axiom1, axiom2, derived
}

// orderRecorder is a test Emitter that just records visit order, to
// verify Walk's topological guarantee.
type orderRecorder struct {
	visited []uint64
	done    bool
}

func (r *orderRecorder) Axiom(c *clause.Clause, source string) { r.visited = append(r.visited, c.ID()) }
func (r *orderRecorder) Inference(c *clause.Clause, rule string, parents []clause.Premise) {
	r.visited = append(r.visited, c.ID())
}
func (r *orderRecorder) Done() { r.done = true }

func TestWalkVisitsParentsBeforeChildrenAndOnlyOnce(t *testing.T) {
	axiom1, axiom2, derived := buildDiamond(t)

	r := &orderRecorder{}
	proof.Walk(derived, r)

	require.True(t, r.done)
	require.Len(t, r.visited, 3, "each of the three clauses must be visited exactly once")

	indexOf := func(id uint64) int {
		for i, v := range r.visited {
			if v == id {
				return i
			}
		}
		return -1
	}
	require.Less(t, indexOf(axiom1.ID()), indexOf(derived.ID()))
	require.Less(t, indexOf(axiom2.ID()), indexOf(derived.ID()))
}

func TestWalkSharedAxiomVisitedOnce(t *testing.T) {
	b := sig.New()
	g := b.Sort("g")
	a := b.Func("a", g)()
	bb := b.Func("b", g)()
	ord := order.NewKBO(b.Syms.Precedence(symbol.PrecedenceArrival))
	cb := clause.NewBank(b.Terms)

	shared := cb.Intern([]clause.Literal{b.Eq(a, bb, ord)}, clause.EmptyTrail, clause.NewAxiomStep("shared.ax"))
	left := cb.Intern([]clause.Literal{b.Eq(a, a, ord)}, clause.EmptyTrail,
		clause.NewInferenceStep("left-rule", clause.Premise{Clause: shared}))
	right := cb.Intern([]clause.Literal{b.Eq(bb, bb, ord)}, clause.EmptyTrail,
		clause.NewInferenceStep("right-rule", clause.Premise{Clause: shared}))
	root := cb.Intern([]clause.Literal{b.Neq(a, bb, ord)}, clause.EmptyTrail,
		clause.NewInferenceStep("join-rule", clause.Premise{Clause: left}, clause.Premise{Clause: right}))

	r := &orderRecorder{}
	proof.Walk(root, r)
	require.Len(t, r.visited, 4, "shared must be visited once even though both left and right depend on it")
}

func TestTPTPEmitterRendersAxiomsAndInferences(t *testing.T) {
	axiom1, axiom2, derived := buildDiamond(t)

	e := proof.NewTPTPEmitter()
	proof.Walk(derived, e)
	out := e.String()

	id1, id2 := strconv.FormatUint(axiom1.ID(), 10), strconv.FormatUint(axiom2.ID(), 10)
	require.Contains(t, out, "cnf(c_"+id1+", axiom,")
	require.Contains(t, out, "cnf(c_"+id2+", axiom,")
	require.Contains(t, out, "inference(merge, [], [c_"+id1+", c_"+id2+"])")
}

func TestZFEmitterTalliesRuleUsage(t *testing.T) {
	_, _, derived := buildDiamond(t)

	e := proof.NewZFEmitter()
	proof.Walk(derived, e)

	require.Equal(t, []string{"axiom", "merge"}, e.RulesUsed())
	require.Equal(t, 2, e.RuleCounts["axiom"])
	require.Equal(t, 1, e.RuleCounts["merge"])
}
