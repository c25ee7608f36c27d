package subst

import (
	"sync"

	"github.com/gitrdm/superpose/pkg/term"
)

// Renamer maps each (VarID, Scope) it encounters to a fresh variable in a
// single output scope, consistently: two lookups for the same input pair
// return the same fresh *term.Term, preserving alpha-equivalence across an
// entire WalkDeep application.
type Renamer struct {
	mu      sync.Mutex
	next    *int
	seen    map[key]int
	outVars map[int]*term.Term
}

// NewRenamer creates a renamer that allocates fresh variable ids
// starting from *counter (the caller owns the counter so renamers
// used across an entire saturation run never collide).
func NewRenamer(counter *int) *Renamer {
	return &Renamer{next: counter, seen: make(map[key]int)}
}

// Rename returns the output-scope variable standing for (v, scope),
// allocating one on first use and reusing it afterward. Non-variable
// terms are returned unchanged; the helper exists so WalkDeep can call
// it uniformly for every dereferenced leaf.
func (r *Renamer) Rename(v *term.Term, scope Scope, bank *term.Bank) *term.Term {
	if !v.IsVar() {
		return v
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key{id: v.VarID(), scope: scope}
	if id, ok := r.seen[k]; ok {
		return bank.Var(id, v.Type())
	}
	id := *r.next
	*r.next++
	r.seen[k] = id
	return bank.Var(id, v.Type())
}
