// Package term implements the hash-consed first-order (and optional
// higher-order) term representation: Var(int, Type) | BVar(int, Type) |
// Const(Symbol, Type) | App(Term, Term*) | Fun(Type, Term) |
// Builtin(Tag, Term*). Structurally equal terms allocated from the same Bank
// share the same physical identity, so Equal reduces to pointer equality.
// The pattern is lifted directly from the teacher's core.go, where
// Pair/Atom/Var implement an Equal method over a shared Term interface; here
// a single tagged struct plays that role so that identity, not structural
// comparison, is the fast path.
package term

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gitrdm/superpose/pkg/symbol"
	"github.com/gitrdm/superpose/pkg/ty"
)

// Kind discriminates the six term constructors.
type Kind int

const (
	KVar Kind = iota
	KBVar
	KConst
	KApp
	KFun
	KBuiltin
)

func (k Kind) String() string {
	switch k {
	case KVar:
		return "Var"
	case KBVar:
		return "BVar"
	case KConst:
		return "Const"
	case KApp:
		return "App"
	case KFun:
		return "Fun"
	case KBuiltin:
		return "Builtin"
	default:
		return "?"
	}
}

// BuiltinTag names a built-in operator carried by a Builtin node (e.g.
// an encoded quantifier-elimination residual). The core only needs to
// move these around structurally; interpreting a tag is a calculus
// extension's job.
type BuiltinTag string

// Term is a hash-consed node. The zero value is not meaningful; every
// Term in circulation was produced by a *Bank method.
type Term struct {
	kind Kind
	typ  *ty.Type

	varID   int // KVar: free-variable identifier
	bvarIdx int // KBVar: de Bruijn index

	sym *symbol.Symbol // KConst symbol; nil for KApp (see Head)

	fn   *Term   // KApp: function being applied
	args []*Term // KApp args, KBuiltin args

	body *Term // KFun: body under the binder

	tag BuiltinTag // KBuiltin

	key string // structural memo key used by the Bank for interning

	once     sync.Once
	size     int
	depth    int
	freeVars VarSet
	closed   bool
}

func (t *Term) Kind() Kind           { return t.kind }
func (t *Term) Type() *ty.Type       { return t.typ }
func (t *Term) VarID() int           { return t.varID }
func (t *Term) BVarIndex() int       { return t.bvarIdx }
func (t *Term) Symbol() *symbol.Symbol { return t.sym }
func (t *Term) Fn() *Term            { return t.fn }
func (t *Term) Args() []*Term        { return t.args }
func (t *Term) Body() *Term          { return t.body }
func (t *Term) Tag() BuiltinTag      { return t.tag }

// IsVar reports whether the term is a free logic variable — the only
// term shape a substitution may bind.
func (t *Term) IsVar() bool { return t.kind == KVar }

// Equal is hash-consing identity equality: two terms from the same
// Bank are structurally equal iff they are the same pointer.
func (t *Term) Equal(other *Term) bool { return t == other }

// Head returns the term's head: itself for Var/BVar/Const, the
// (possibly nested) applied term's head for App.
func (t *Term) Head() *Term {
	cur := t
	for cur.kind == KApp {
		cur = cur.fn
	}
	return cur
}

func (t *Term) String() string {
	switch t.kind {
	case KVar:
		return fmt.Sprintf("X%d", t.varID)
	case KBVar:
		return fmt.Sprintf("#%d", t.bvarIdx)
	case KConst:
		return t.sym.Name()
	case KApp:
		parts := make([]string, len(t.args))
		for i, a := range t.args {
			parts[i] = a.String()
		}
		return fmt.Sprintf("%s(%s)", t.fn.String(), strings.Join(parts, ", "))
	case KFun:
		return fmt.Sprintf("λ.%s", t.body.String())
	case KBuiltin:
		parts := make([]string, len(t.args))
		for i, a := range t.args {
			parts[i] = a.String()
		}
		return fmt.Sprintf("%%%s(%s)", t.tag, strings.Join(parts, ", "))
	default:
		return "?"
	}
}

// Size returns the number of constructor nodes in the term, computed lazily
// and cached once.
func (t *Term) Size() int {
	t.once.Do(t.computeCaches)
	return t.size
}

// Depth returns the nesting depth of the term, lazily cached.
func (t *Term) Depth() int {
	t.once.Do(t.computeCaches)
	return t.depth
}

// FreeVars returns the term's free (non-bound) variables, lazily cached.
func (t *Term) FreeVars() VarSet {
	t.once.Do(t.computeCaches)
	return t.freeVars
}

// IsGround reports whether the term has no free variables.
func (t *Term) IsGround() bool { return t.FreeVars().Len() == 0 }

// Closed reports whether every de Bruijn index in the term is bound by an
// enclosing Fun. closedAt's depth argument tracks how many Fun binders
// enclose the current subterm.
func (t *Term) Closed() bool {
	t.once.Do(t.computeCaches)
	return t.closed
}

func (t *Term) computeCaches() {
	size := 1
	depth := 1
	fv := map[int]struct{}{}
	closed := closedAt(t, 0)

	switch t.kind {
	case KVar:
		fv[t.varID] = struct{}{}
	case KApp:
		size += t.fn.Size()
		depth = max(depth, 1+t.fn.Depth())
		fv = mergeInto(fv, t.fn.FreeVars())
		for _, a := range t.args {
			size += a.Size()
			depth = max(depth, 1+a.Depth())
			fv = mergeInto(fv, a.FreeVars())
		}
	case KFun:
		size += t.body.Size()
		depth = 1 + t.body.Depth()
		fv = mergeInto(fv, t.body.FreeVars())
	case KBuiltin:
		for _, a := range t.args {
			size += a.Size()
			depth = max(depth, 1+a.Depth())
			fv = mergeInto(fv, a.FreeVars())
		}
	}

	t.size = size
	t.depth = depth
	t.freeVars = newVarSet(fv)
	t.closed = closed
}

func mergeInto(dst map[int]struct{}, vs VarSet) map[int]struct{} {
	vs.Each(func(id int) { dst[id] = struct{}{} })
	return dst
}

// closedAt reports whether every BVar reachable from t refers to a
// binder within the first `depth` enclosing Funs counted from t.
func closedAt(t *Term, depth int) bool {
	switch t.kind {
	case KBVar:
		return t.bvarIdx < depth
	case KApp:
		if !closedAt(t.fn, depth) {
			return false
		}
		for _, a := range t.args {
			if !closedAt(a, depth) {
				return false
			}
		}
		return true
	case KFun:
		return closedAt(t.body, depth+1)
	case KBuiltin:
		for _, a := range t.args {
			if !closedAt(a, depth) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
