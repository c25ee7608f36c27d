// Package symbol implements interned function/predicate symbols and the
// process-wide signature they belong to.
//
// Symbols are the leaves of the term language: every Const term in
// package term carries a *Symbol. Two symbols with the same name and
// arity in the same Table are always the same pointer, mirroring the
// hash-consing discipline the rest of the prover relies on.
package symbol

import (
	"fmt"
	"sort"
	"sync"
)

// ID uniquely identifies a symbol within a Table.
type ID uint64

// Attrs records optional properties used by the ordering and the
// calculus (e.g. AC symbols are not handled by this core, but the
// field is kept so extensions can tag symbols without touching the
// Table's storage layout).
type Attrs struct {
	Commutative bool
	Associative bool
}

// Symbol is an interned function or predicate symbol.
type Symbol struct {
	id     ID
	name   string
	arity  int
	attrs  Attrs
	weight uint64 // KBO weight, defaults to 1
}

func (s *Symbol) ID() ID          { return s.id }
func (s *Symbol) Name() string    { return s.name }
func (s *Symbol) Arity() int      { return s.arity }
func (s *Symbol) Attrs() Attrs    { return s.attrs }
func (s *Symbol) Weight() uint64  { return s.weight }
func (s *Symbol) String() string  { return s.name }
func (s *Symbol) IsConstant() bool { return s.arity == 0 }

// key identifies a symbol inside a Table: name and arity together,
// since the same name can be overloaded at different arities.
type key struct {
	name  string
	arity int
}

// Table is a process-wide (or per-problem) intern table for symbols, plus
// the total precedence order over them required by the simplification
// ordering. Table grows monotonically: symbols are never removed.
type Table struct {
	mu      sync.RWMutex
	byKey   map[key]*Symbol
	byID    []*Symbol
	counter ID
	// precedence[i] < precedence[j] means byID[i] comes before byID[j]
	// in the symbol precedence; rebuilt whenever Intern adds a symbol.
	precedence []ID
}

// NewTable creates an empty, fresh symbol table. Tests and individual prover
// runs each get their own Table to avoid hidden cross-problem coupling.
func NewTable() *Table {
	return &Table{byKey: make(map[key]*Symbol)}
}

// Intern returns the canonical *Symbol for (name, arity), creating it
// with default weight 1 and appending it to the precedence order if
// it does not already exist.
func (t *Table) Intern(name string, arity int) *Symbol {
	return t.InternWithAttrs(name, arity, Attrs{})
}

// InternWithAttrs is like Intern but also records symbol attributes.
// Attrs are fixed at first interning; subsequent calls for the same
// (name, arity) ignore the attrs argument and return the existing symbol.
func (t *Table) InternWithAttrs(name string, arity int, attrs Attrs) *Symbol {
	k := key{name: name, arity: arity}

	t.mu.RLock()
	if s, ok := t.byKey[k]; ok {
		t.mu.RUnlock()
		return s
	}
	t.mu.RUnlock()

	t.mu.Lock()
	defer t.mu.Unlock()
	if s, ok := t.byKey[k]; ok {
		return s
	}

	t.counter++
	s := &Symbol{id: t.counter, name: name, arity: arity, attrs: attrs, weight: 1}
	t.byKey[k] = s
	t.byID = append(t.byID, s)
	t.precedence = append(t.precedence, s.id)
	return s
}

// Lookup returns the symbol with the given (name, arity) if interned.
func (t *Table) Lookup(name string, arity int) (*Symbol, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	s, ok := t.byKey[key{name: name, arity: arity}]
	return s, ok
}

// SetWeight sets the KBO weight used by the symbol when present in
// the ordering's weight function. Must be called before the symbol
// participates in any ordering comparison that is cached downstream.
func (t *Table) SetWeight(s *Symbol, w uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s.weight = w
}

// PrecedenceMode selects how Table.Precedence orders the interned symbols.
type PrecedenceMode int

const (
	// PrecedenceArrival orders symbols by interning order (arrival).
	PrecedenceArrival PrecedenceMode = iota
	// PrecedenceFrequency orders by ascending arity then name, a cheap
	// deterministic stand-in for "frequency in the input problem". The
	// Table does not observe clause bodies, and no precedence in this
	// package is computed from actual symbol counts.
	PrecedenceFrequency
	// PrecedenceInvFrequency is the reverse of PrecedenceFrequency.
	PrecedenceInvFrequency
)

// Precedence returns a total order over all interned symbols as a
// function usable by package order: Less(a, b) reports whether a is
// strictly before b in the precedence.
func (t *Table) Precedence(mode PrecedenceMode) func(a, b *Symbol) bool {
	t.mu.RLock()
	ids := append([]ID(nil), t.precedence...)
	byID := make(map[ID]*Symbol, len(t.byID))
	for _, s := range t.byID {
		byID[s.id] = s
	}
	t.mu.RUnlock()

	switch mode {
	case PrecedenceFrequency, PrecedenceInvFrequency:
		sort.Slice(ids, func(i, j int) bool {
			si, sj := byID[ids[i]], byID[ids[j]]
			if si.arity != sj.arity {
				if mode == PrecedenceFrequency {
					return si.arity < sj.arity
				}
				return si.arity > sj.arity
			}
			return si.name < sj.name
		})
	default:
		// arrival order: ids is already in interning order.
	}

	rank := make(map[ID]int, len(ids))
	for i, id := range ids {
		rank[id] = i
	}
	return func(a, b *Symbol) bool {
		return rank[a.id] < rank[b.id]
	}
}

// All returns every interned symbol in interning order.
func (t *Table) All() []*Symbol {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]*Symbol, len(t.byID))
	copy(out, t.byID)
	return out
}

func (t *Table) String() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return fmt.Sprintf("Table(%d symbols)", len(t.byID))
}
