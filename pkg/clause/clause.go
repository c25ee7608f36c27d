package clause

import (
	"sort"
	"strings"
	"sync"

	"github.com/gitrdm/superpose/pkg/term"
)

// Flags records per-clause state the saturation loop and simplification
// rules consult.
type Flags struct {
	Unit     bool // exactly one literal
	Positive bool // unit and that literal is positive (demodulator candidate)
	Ground   bool // no free variables at all
}

// Clause is a hash-consed sequence of literals plus its trail and proof
// record. Construction always goes through a Bank so that two clauses with
// the same literal sequence modulo renaming, under the same trail, are the
// same pointer; permutations of the same literals are not identified.
type Clause struct {
	id    uint64
	Lits  []Literal
	Trail Trail
	Proof *ProofStep
	Vars  term.VarSet
	Selected BitSet
	Flags Flags
}

// ID returns the clause's unique, monotonically-increasing identifier, used
// for display and identity checks; Passive tracks age by insertion order,
// not by ID.
func (c *Clause) ID() uint64 { return c.id }

// NumLits returns the number of literals.
func (c *Clause) NumLits() int { return len(c.Lits) }

// IsEmpty reports whether the clause is the empty clause (a refutation).
func (c *Clause) IsEmpty() bool { return len(c.Lits) == 0 }

func (c *Clause) String() string {
	if len(c.Lits) == 0 {
		return "⊥"
	}
	parts := make([]string, len(c.Lits))
	for i, l := range c.Lits {
		parts[i] = l.String()
	}
	s := strings.Join(parts, " ∨ ")
	if !c.Trail.IsEmpty() {
		s += " | trail"
	}
	return s
}

// Bank hash-conses clauses. Unlike term.Bank and ty.Bank, a clause's
// canonical key is computed by first standardizing its variables apart
// in first-occurrence order, per literal, left to right — this keeps
// clauses produced by the same inference path in canonical form, the
// practical case the saturation loop needs (see DESIGN.md for the
// general-order-independence simplification this implies).
type Bank struct {
	mu      sync.Mutex
	terms   *term.Bank
	table   map[string]*Clause
	counter uint64
}

// NewBank creates a clause bank backed by the given term bank.
func NewBank(terms *term.Bank) *Bank {
	return &Bank{terms: terms, table: make(map[string]*Clause)}
}

// Intern canonicalizes lits (renaming free variables to 0..n-1 in
// first-occurrence order) and returns the existing clause if an
// identical (literal sequence, trail) pair was already interned, or
// creates and stores a new one otherwise. The key depends on literal
// order, so the same literals in another order intern separately.
func (b *Bank) Intern(lits []Literal, trail Trail, proof *ProofStep) *Clause {
	canon, vars := b.canonicalize(lits)
	key := clauseKey(canon, trail)

	b.mu.Lock()
	defer b.mu.Unlock()
	if existing, ok := b.table[key]; ok {
		return existing
	}

	b.counter++
	c := &Clause{
		id:    b.counter,
		Lits:  canon,
		Trail: trail,
		Proof: proof,
		Vars:  vars,
		Flags: computeFlags(canon, vars),
	}
	b.table[key] = c
	return c
}

func computeFlags(lits []Literal, vars term.VarSet) Flags {
	f := Flags{Ground: vars.Len() == 0}
	if len(lits) == 1 {
		f.Unit = true
		f.Positive = lits[0].IsPositive()
	}
	return f
}

// canonicalize renames free variables to a dense 0..n-1 range in
// first-occurrence order over lits as given, and recomputes the
// clause's VarSet.
func (b *Bank) canonicalize(lits []Literal) ([]Literal, term.VarSet) {
	mapping := map[int]int{}
	next := 0
	rename := func(t *term.Term) *term.Term { return renameVars(b.terms, t, mapping, &next) }

	out := make([]Literal, len(lits))
	for i, l := range lits {
		if l.IsTrue() || l.IsFalse() {
			out[i] = l
			continue
		}
		nl := l.L
		nr := l.R
		nl = rename(nl)
		nr = rename(nr)
		l.L, l.R = nl, nr
		out[i] = l
	}

	varSet := map[int]struct{}{}
	for _, l := range out {
		if l.IsTrue() || l.IsFalse() {
			continue
		}
		l.L.FreeVars().Each(func(id int) { varSet[id] = struct{}{} })
		l.R.FreeVars().Each(func(id int) { varSet[id] = struct{}{} })
	}
	ids := make([]int, 0, len(varSet))
	for id := range varSet {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return out, term.NewVarSet(ids)
}

// renameVars rebuilds t with every free Var renamed through mapping,
// assigning fresh dense ids on first occurrence. Bound variables
// (BVar) are left untouched since they are not free.
func renameVars(bank *term.Bank, t *term.Term, mapping map[int]int, next *int) *term.Term {
	if t.IsVar() {
		id, ok := mapping[t.VarID()]
		if !ok {
			id = *next
			*next++
			mapping[t.VarID()] = id
		}
		return bank.Var(id, t.Type())
	}
	switch t.Kind() {
	case term.KApp:
		newFn := renameVars(bank, t.Fn(), mapping, next)
		args := t.Args()
		newArgs := make([]*term.Term, len(args))
		for i, a := range args {
			newArgs[i] = renameVars(bank, a, mapping, next)
		}
		return bank.App(newFn, t.Type(), newArgs...)
	case term.KFun:
		newBody := renameVars(bank, t.Body(), mapping, next)
		return bank.Fun(nil, newBody, t.Type())
	case term.KBuiltin:
		args := t.Args()
		newArgs := make([]*term.Term, len(args))
		for i, a := range args {
			newArgs[i] = renameVars(bank, a, mapping, next)
		}
		return bank.Builtin(t.Tag(), t.Type(), newArgs...)
	default:
		return t
	}
}

func clauseKey(lits []Literal, trail Trail) string {
	var sb strings.Builder
	for _, l := range lits {
		sb.WriteString(l.String())
		sb.WriteByte(';')
	}
	sb.WriteString("|trail:")
	for _, id := range trail.Sorted() {
		sb.WriteString(strings.TrimSpace(itoa(int(id))))
		sb.WriteByte(',')
	}
	return sb.String()
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
