// Package subst implements scoped substitutions over package term's
// hash-consed terms: finite maps from (VarID, Scope) to (Term, Scope), plus
// the renaming mechanism that applies such a map while keeping variables
// from different input clauses disjoint. The Walk/Bind shape is lifted
// directly from the teacher's core.go Substitution type; the scope dimension
// is new, required because the prover must combine clauses that were
// standardized apart (two premises of an inference) without renaming them
// upfront.
package subst

import (
	"fmt"
	"sync"

	"github.com/gitrdm/superpose/pkg/term"
)

// Scope is a namespace tag distinguishing otherwise-identical variable
// numbers coming from different clauses.
type Scope int

// Scoped pairs a term with the scope its free variables live in.
type Scoped struct {
	Term  *term.Term
	Scope Scope
}

func (s Scoped) String() string {
	return fmt.Sprintf("%s@%d", s.Term.String(), s.Scope)
}

type key struct {
	id    int
	scope Scope
}

// Subst is a persistent (copy-on-write) scoped substitution. Bind
// never mutates the receiver: it returns a new Subst holding its own
// copy of the old one's bindings, mirroring core.go's
// Substitution.Bind/Clone discipline so multiple inference attempts
// starting from the same Subst cannot observe each other's bindings.
type Subst struct {
	mu       sync.RWMutex
	bindings map[key]Scoped
}

// New returns a fresh empty substitution with its own bindings map.
func New() *Subst {
	return &Subst{bindings: make(map[key]Scoped)}
}

// Clone returns a shallow copy whose bindings map is independent of
// the receiver's (terms themselves are immutable and need no deep copy).
func (s *Subst) Clone() *Subst {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cp := make(map[key]Scoped, len(s.bindings))
	for k, v := range s.bindings {
		cp[k] = v
	}
	return &Subst{bindings: cp}
}

// Lookup returns the binding for (id, scope) and whether it exists.
func (s *Subst) Lookup(id int, scope Scope) (Scoped, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.bindings[key{id: id, scope: scope}]
	return v, ok
}

// Bind returns a new Subst extending the receiver with id@scope ↦ to.
// Binding a variable to itself is a no-op (returns the receiver).
func (s *Subst) Bind(id int, scope Scope, to Scoped) *Subst {
	if to.Term.IsVar() && to.Term.VarID() == id && to.Scope == scope {
		return s
	}
	next := s.Clone()
	next.mu.Lock()
	defer next.mu.Unlock()
	next.bindings[key{id: id, scope: scope}] = to
	return next
}

// Walk follows the binding chain for a scoped term until it reaches
// an unbound variable or a non-variable term, exactly as core.go's
// Substitution.Walk follows Term bindings.
func (s *Subst) Walk(t Scoped) Scoped {
	for t.Term.IsVar() {
		bound, ok := s.Lookup(t.Term.VarID(), t.Scope)
		if !ok {
			return t
		}
		t = bound
	}
	return t
}

// WalkDeep fully dereferences t and its subterms (not just the head),
// rebuilding compound terms whose arguments changed. The result is
// expressed in a single output scope via renamer, so the caller never
// has to track scope tags on the returned plain *term.Term.
func WalkDeep(bank *term.Bank, s *Subst, renamer *Renamer, t Scoped) *term.Term {
	w := s.Walk(t)
	if w.Term.IsVar() {
		return renamer.Rename(w.Term, w.Scope, bank)
	}
	switch w.Term.Kind() {
	case term.KApp:
		newFn := WalkDeep(bank, s, renamer, Scoped{Term: w.Term.Fn(), Scope: w.Scope})
		args := w.Term.Args()
		newArgs := make([]*term.Term, len(args))
		for i, a := range args {
			newArgs[i] = WalkDeep(bank, s, renamer, Scoped{Term: a, Scope: w.Scope})
		}
		return bank.App(newFn, w.Term.Type(), newArgs...)
	case term.KFun:
		newBody := WalkDeep(bank, s, renamer, Scoped{Term: w.Term.Body(), Scope: w.Scope})
		return bank.Fun(nil, newBody, w.Term.Type())
	case term.KBuiltin:
		args := w.Term.Args()
		newArgs := make([]*term.Term, len(args))
		for i, a := range args {
			newArgs[i] = WalkDeep(bank, s, renamer, Scoped{Term: a, Scope: w.Scope})
		}
		return bank.Builtin(w.Term.Tag(), w.Term.Type(), newArgs...)
	default:
		return w.Term
	}
}

// Size reports the number of bindings, for diagnostics.
func (s *Subst) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.bindings)
}
