package term

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gitrdm/superpose/pkg/symbol"
	"github.com/gitrdm/superpose/pkg/ty"
)

// Bank hash-conses Term values, one table per problem/run. Single-writer
// discipline: Intern is safe under concurrent callers, but the stored *Term
// values are immutable after insertion.
type Bank struct {
	mu    sync.Mutex
	table map[string]*Term
}

// NewBank creates an empty term bank.
func NewBank() *Bank {
	return &Bank{table: make(map[string]*Term)}
}

func (b *Bank) intern(t *Term) *Term {
	b.mu.Lock()
	defer b.mu.Unlock()
	if existing, ok := b.table[t.key]; ok {
		return existing
	}
	b.table[t.key] = t
	return t
}

// Var returns the canonical free variable with the given id and type.
func (b *Bank) Var(id int, typ *ty.Type) *Term {
	return b.intern(&Term{kind: KVar, varID: id, typ: typ, key: fmt.Sprintf("v:%d:%p", id, typ)})
}

// BVar returns the canonical de Bruijn bound-variable reference.
func (b *Bank) BVar(idx int, typ *ty.Type) *Term {
	return b.intern(&Term{kind: KBVar, bvarIdx: idx, typ: typ, key: fmt.Sprintf("b:%d:%p", idx, typ)})
}

// Const returns the canonical constant/function-symbol leaf term.
func (b *Bank) Const(sym *symbol.Symbol, typ *ty.Type) *Term {
	return b.intern(&Term{kind: KConst, sym: sym, typ: typ, key: fmt.Sprintf("c:%d:%p", sym.ID(), typ)})
}

// App returns the canonical application fn(args...). typ is the
// result type after application (computed by the caller's type
// inference pass; the Bank does not itself type-check).
func (b *Bank) App(fn *Term, typ *ty.Type, args ...*Term) *Term {
	var sb strings.Builder
	sb.WriteString("a:")
	sb.WriteString(fn.key)
	for _, a := range args {
		sb.WriteByte(':')
		sb.WriteString(a.key)
	}
	return b.intern(&Term{kind: KApp, fn: fn, args: append([]*Term(nil), args...), typ: typ, key: sb.String()})
}

// Fun returns the canonical lambda binding a single de Bruijn variable
// of type argTy over body.
func (b *Bank) Fun(argTy *ty.Type, body *Term, resultTy *ty.Type) *Term {
	key := fmt.Sprintf("f:%p:%s", argTy, body.key)
	return b.intern(&Term{kind: KFun, typ: resultTy, body: body, key: key})
}

// Builtin returns the canonical built-in-tagged node.
func (b *Bank) Builtin(tag BuiltinTag, typ *ty.Type, args ...*Term) *Term {
	var sb strings.Builder
	sb.WriteString("u:")
	sb.WriteString(string(tag))
	for _, a := range args {
		sb.WriteByte(':')
		sb.WriteString(a.key)
	}
	return b.intern(&Term{kind: KBuiltin, tag: tag, args: append([]*Term(nil), args...), typ: typ, key: sb.String()})
}

// Size returns the number of distinct hash-consed terms currently
// held by the bank, useful for diagnostics and resource accounting.
func (b *Bank) Size() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.table)
}
