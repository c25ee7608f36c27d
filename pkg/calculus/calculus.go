// Package calculus implements the generating inference rules
// (superposition, equality resolution, equality factoring) behind a
// small Calculus interface, so the rule families plus IsTrivial can be
// swapped or extended without touching the saturation loop. The
// simplifying half of that responsibility (demodulation,
// simplify-reflect, subsumption, condensation) lives in the sibling
// package simplify, since Go favors several small interfaces over one
// that mixes generation and simplification concerns; package saturate
// composes both.
package calculus

import (
	"github.com/gitrdm/superpose/pkg/clause"
	"github.com/gitrdm/superpose/pkg/order"
	"github.com/gitrdm/superpose/pkg/subst"
	"github.com/gitrdm/superpose/pkg/term"
)

// Context bundles the per-run resources every rule needs: the term
// and clause banks used to allocate results, the active ordering, and
// the shared fresh-variable counter renamers draw from.
type Context struct {
	Terms    *term.Bank
	Clauses  *clause.Bank
	Ord      order.Ordering
	VarSeq   *int
	Select   clause.SelectionPolicy
}

// fresh returns a new renamer drawing from the context's shared counter.
func (ctx *Context) fresh() *subst.Renamer { return subst.NewRenamer(ctx.VarSeq) }

// BinaryRule is a two-premise generating inference.
type BinaryRule func(ctx *Context, c1, c2 *clause.Clause) []*clause.Clause

// UnaryRule is a one-premise generating inference.
type UnaryRule func(ctx *Context, c *clause.Clause) []*clause.Clause

// Calculus exposes the generating half of a calculus variant.
type Calculus interface {
	Binary() []BinaryRule
	Unary() []UnaryRule
	// IsTrivial reports whether c is a tautology under this calculus's
	// notion of equality (e.g. contains L and ¬L, or t ≈ t).
	IsTrivial(c *clause.Clause) bool
}

// Registry wraps a base Calculus so additional binary/unary inference
// rules can be registered at runtime without modifying its source.
type Registry struct {
	base   Calculus
	binary []BinaryRule
	unary  []UnaryRule
}

// NewRegistry wraps a base calculus (typically Superposition) so
// extensions can add rules on top of it.
func NewRegistry(base Calculus) *Registry {
	return &Registry{base: base, binary: append([]BinaryRule(nil), base.Binary()...), unary: append([]UnaryRule(nil), base.Unary()...)}
}

// RegisterBinary adds an additional binary generating rule.
func (r *Registry) RegisterBinary(rule BinaryRule) { r.binary = append(r.binary, rule) }

// RegisterUnary adds an additional unary generating rule.
func (r *Registry) RegisterUnary(rule UnaryRule) { r.unary = append(r.unary, rule) }

func (r *Registry) Binary() []BinaryRule   { return r.binary }
func (r *Registry) Unary() []UnaryRule     { return r.unary }
func (r *Registry) IsTrivial(c *clause.Clause) bool { return r.base.IsTrivial(c) }
