package index

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/gitrdm/superpose/pkg/clause"
	"github.com/gitrdm/superpose/pkg/subst"
	"github.com/gitrdm/superpose/pkg/term"
	"github.com/gitrdm/superpose/pkg/unify"
)

// Entry identifies one indexed rewrite/superposition partner: the
// clause and literal it comes from, which side of the literal the
// indexed term is, and the scope to unify/match it under.
type Entry struct {
	Clause  *clause.Clause
	LitIdx  int
	Side    int // 0 = L, 1 = R
	Term    *term.Term
	Scope   subst.Scope
}

// TermIndex maps maximal sides of unit equations or maximal literals to
// their owning clause/position for superposition and demodulation partner
// lookup. It is a coarse discrimination index, bucketed by head symbol,
// refined at query time by the real unify/match algorithms — the same
// two-phase "cheap filter, then exact check" shape as the teacher's
// FactIndex + Lookup.
type TermIndex struct {
	mu      sync.RWMutex
	buckets map[bucketKey][]Entry

	// genCache memoizes RetrieveGeneralizations by query term identity
	// (stable thanks to hash-consing). Bounded because, unlike the
	// feature index (whose entries are removed exactly when a clause
	// leaves Active), this cache accumulates one entry per distinct
	// query term ever asked for, which over a long saturation run can
	// exceed the live clause count; golang-lru evicts the coldest
	// queries once that bound is reached.
	genCache *lru.Cache[*term.Term, []Entry]
	gen      uint64
}

type bucketKey struct {
	isVar bool
	symID uint64
}

// NewTermIndex creates an empty term index with a bounded
// generalization-retrieval cache of the given size (0 disables caching).
func NewTermIndex(cacheSize int) *TermIndex {
	ti := &TermIndex{buckets: make(map[bucketKey][]Entry)}
	if cacheSize > 0 {
		c, _ := lru.New[*term.Term, []Entry](cacheSize)
		ti.genCache = c
	}
	return ti
}

func keyFor(t *term.Term) bucketKey {
	if t.IsVar() {
		return bucketKey{isVar: true}
	}
	h := t.Head()
	if h.Kind() == term.KConst {
		return bucketKey{symID: uint64(h.Symbol().ID())}
	}
	return bucketKey{isVar: true}
}

// Add indexes one entry (e.g. the maximal side of a unit positive
// equation used as a demodulator, or a maximal literal's ends used as
// superposition partners).
func (ti *TermIndex) Add(e Entry) {
	ti.mu.Lock()
	defer ti.mu.Unlock()
	k := keyFor(e.Term)
	ti.buckets[k] = append(ti.buckets[k], e)
	ti.invalidateCacheLocked()
}

// Remove drops every entry belonging to clause c.
func (ti *TermIndex) Remove(c *clause.Clause) {
	ti.mu.Lock()
	defer ti.mu.Unlock()
	for k, entries := range ti.buckets {
		filtered := entries[:0]
		for _, e := range entries {
			if e.Clause != c {
				filtered = append(filtered, e)
			}
		}
		if len(filtered) == 0 {
			delete(ti.buckets, k)
		} else {
			ti.buckets[k] = filtered
		}
	}
	ti.invalidateCacheLocked()
}

func (ti *TermIndex) invalidateCacheLocked() {
	ti.gen++
	if ti.genCache != nil {
		ti.genCache.Purge()
	}
}

// candidateBuckets returns the bucket keys that might contain a
// unifiable/generalization/specialization partner for query: its own
// head bucket, plus the variable bucket (a variable indexed entry can
// unify or generalize anything).
func (ti *TermIndex) candidateBuckets(query *term.Term) []bucketKey {
	k := keyFor(query)
	if k.isVar {
		return []bucketKey{k}
	}
	return []bucketKey{k, {isVar: true}}
}

// RetrieveUnifiable returns every indexed entry whose term might unify
// with query (bank/scope supplied by the caller to actually attempt
// the unification); the index only narrows by head-symbol bucket.
func (ti *TermIndex) RetrieveUnifiable(bank *term.Bank, query subst.Scoped) []Entry {
	ti.mu.RLock()
	defer ti.mu.RUnlock()
	var out []Entry
	for _, k := range ti.candidateBuckets(query.Term) {
		for _, e := range ti.buckets[k] {
			if _, err := unify.Unify(bank, subst.New(), query, subst.Scoped{Term: e.Term, Scope: e.Scope}); err == nil {
				out = append(out, e)
			}
		}
	}
	return out
}

// RetrieveGeneralizations returns every indexed entry whose term is a
// generalization of query (i.e. matches query as the pattern side):
// used by demodulation to find a rewrite rule applicable at query.
func (ti *TermIndex) RetrieveGeneralizations(bank *term.Bank, query subst.Scoped) []Entry {
	if ti.genCache != nil {
		if cached, ok := ti.genCache.Get(query.Term); ok {
			return cached
		}
	}
	ti.mu.RLock()
	defer ti.mu.RUnlock()
	var out []Entry
	for _, k := range ti.candidateBuckets(query.Term) {
		for _, e := range ti.buckets[k] {
			pattern := subst.Scoped{Term: e.Term, Scope: e.Scope}
			if _, err := unify.Match(bank, subst.New(), pattern, query); err == nil {
				out = append(out, e)
			}
		}
	}
	if ti.genCache != nil {
		ti.genCache.Add(query.Term, out)
	}
	return out
}

// RetrieveSpecializations returns every indexed entry whose term is a
// specialization of query (query matches as the pattern side): used
// to find superposition partners more specific than a given term.
func (ti *TermIndex) RetrieveSpecializations(bank *term.Bank, query subst.Scoped) []Entry {
	ti.mu.RLock()
	defer ti.mu.RUnlock()
	var out []Entry
	for _, k := range ti.candidateBuckets(query.Term) {
		for _, e := range ti.buckets[k] {
			subject := subst.Scoped{Term: e.Term, Scope: e.Scope}
			if _, err := unify.Match(bank, subst.New(), query, subject); err == nil {
				out = append(out, e)
			}
		}
	}
	return out
}
