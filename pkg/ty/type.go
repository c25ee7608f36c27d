// Package ty implements the hash-consed type algebra used to annotate every
// term: Var(int) | App(Symbol, Type*) | Arrow(Type*, Type) | TType.
package ty

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gitrdm/superpose/pkg/symbol"
)

// Kind distinguishes the four type constructors.
type Kind int

const (
	KVar Kind = iota
	KApp
	KArrow
	KTType
)

// Type is a hash-consed type: two structurally equal types allocated
// from the same Bank are the same pointer, so Equal reduces to ==.
type Type struct {
	kind  Kind
	v     int          // KVar
	sym   *symbol.Symbol // KApp
	args  []*Type       // KApp, KArrow (params)
	ret   *Type         // KArrow
	key   string        // memoized structural key used for interning
}

func (t *Type) Kind() Kind      { return t.kind }
func (t *Type) VarID() int      { return t.v }
func (t *Type) Symbol() *symbol.Symbol { return t.sym }
func (t *Type) Args() []*Type   { return t.args }
func (t *Type) Ret() *Type      { return t.ret }

// Equal is identity equality: both types must come from the same Bank.
func (t *Type) Equal(other *Type) bool { return t == other }

func (t *Type) String() string {
	switch t.kind {
	case KVar:
		return fmt.Sprintf("'a%d", t.v)
	case KTType:
		return "Type"
	case KApp:
		if len(t.args) == 0 {
			return t.sym.Name()
		}
		parts := make([]string, len(t.args))
		for i, a := range t.args {
			parts[i] = a.String()
		}
		return fmt.Sprintf("%s(%s)", t.sym.Name(), strings.Join(parts, ", "))
	case KArrow:
		parts := make([]string, len(t.args))
		for i, a := range t.args {
			parts[i] = a.String()
		}
		return fmt.Sprintf("(%s) -> %s", strings.Join(parts, ", "), t.ret.String())
	default:
		return "?"
	}
}

// Bank hash-conses Type values. Like symbol.Table, a Bank is never emptied
// during a run; types are permanent allocations.
type Bank struct {
	mu    sync.Mutex
	table map[string]*Type
}

// NewBank creates an empty type bank.
func NewBank() *Bank {
	return &Bank{table: make(map[string]*Type)}
}

func (b *Bank) intern(t *Type) *Type {
	b.mu.Lock()
	defer b.mu.Unlock()
	if existing, ok := b.table[t.key]; ok {
		return existing
	}
	b.table[t.key] = t
	return t
}

// Var returns the canonical representative of the i-th type variable.
func (b *Bank) Var(i int) *Type {
	return b.intern(&Type{kind: KVar, v: i, key: fmt.Sprintf("v%d", i)})
}

// TType returns the canonical "Type" sort used for type-of-types.
func (b *Bank) TType() *Type {
	return b.intern(&Type{kind: KTType, key: "TType"})
}

// App returns the canonical application of a type constructor symbol
// to zero or more argument types (a nullary App is a base type).
func (b *Bank) App(sym *symbol.Symbol, args ...*Type) *Type {
	var sb strings.Builder
	sb.WriteString("app:")
	sb.WriteString(sym.Name())
	for _, a := range args {
		sb.WriteByte(':')
		sb.WriteString(a.key)
	}
	return b.intern(&Type{kind: KApp, sym: sym, args: append([]*Type(nil), args...), key: sb.String()})
}

// Arrow returns the canonical function type params -> ret.
func (b *Bank) Arrow(ret *Type, params ...*Type) *Type {
	var sb strings.Builder
	sb.WriteString("arrow:")
	for _, p := range params {
		sb.WriteString(p.key)
		sb.WriteByte(',')
	}
	sb.WriteString("->")
	sb.WriteString(ret.key)
	return b.intern(&Type{kind: KArrow, args: append([]*Type(nil), params...), ret: ret, key: sb.String()})
}

// IsArrow reports whether the type is a function type of one or more
// arguments, i.e. whether applying a Const of this type requires args.
func (t *Type) IsArrow() bool { return t.kind == KArrow }
