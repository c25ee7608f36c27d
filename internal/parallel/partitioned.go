// Package parallel adapts the gokando worker-pool idiom — bounded
// goroutines, panic recovery around each unit of work, graceful
// shutdown — into a sharded saturation runner. It is an explicitly
// orthogonal extension: the single-threaded saturate.Loop never
// imports this package, and nothing here is reachable from the
// default CLI path unless a shard count greater than one is
// requested.
//
// Partitioning trades completeness for wall-clock speed. Each shard
// owns a disjoint slice of the initial Passive set and saturates it
// independently; clauses in different shards never interact, so a
// shard reaching CounterSatisfiable says nothing about the other
// shards' clauses and must not be reported as a global verdict. Only
// a shard reaching Theorem is trustworthy: the empty clause it
// derived follows from its slice alone, hence from the whole input.
package parallel

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/gitrdm/superpose/pkg/calculus"
	"github.com/gitrdm/superpose/pkg/clause"
	"github.com/gitrdm/superpose/pkg/order"
	"github.com/gitrdm/superpose/pkg/saturate"
	"github.com/gitrdm/superpose/pkg/term"
)

// PartitionedSaturator runs N independent saturation shards over one
// shared term/clause bank, fanning in whichever shard derives the
// empty clause first.
type PartitionedSaturator struct {
	Terms  *term.Bank
	Clauses *clause.Bank
	Ord    order.Ordering
	Calc   calculus.Calculus
	Cfg    saturate.Config
	Stats  *saturate.Stats

	// Shards is the number of independent saturation runs to launch.
	// Values below 1 are treated as 1.
	Shards int
}

// NewPartitionedSaturator builds a saturator sharing the given
// term/clause banks, ordering, calculus, configuration, and stats
// sink across every shard (all are concurrency-safe for this use:
// term.Bank and clause.Bank intern under a mutex, and prometheus
// collectors are safe for concurrent use by design).
func NewPartitionedSaturator(terms *term.Bank, clauses *clause.Bank, ord order.Ordering, calc calculus.Calculus, cfg saturate.Config, stats *saturate.Stats, shards int) *PartitionedSaturator {
	if shards < 1 {
		shards = 1
	}
	return &PartitionedSaturator{Terms: terms, Clauses: clauses, Ord: ord, Calc: calc, Cfg: cfg, Stats: stats, Shards: shards}
}

// partition splits input round-robin into p.Shards disjoint slices,
// mirroring the even-distribution goal of gokando's scaling worker
// pool without reproducing its dynamic-resize machinery: shard count
// here is fixed for the run's lifetime, not adjusted under load.
func (p *PartitionedSaturator) partition(input []*clause.Clause) [][]*clause.Clause {
	out := make([][]*clause.Clause, p.Shards)
	for i, c := range input {
		shard := i % p.Shards
		out[shard] = append(out[shard], c)
	}
	return out
}

// shardResult carries one shard's verdict back to Run.
type shardResult struct {
	shard    int
	result   saturate.Result
	refutation *clause.Clause
}

// Run launches one saturate.Loop per shard against a disjoint slice
// of input, cancels the remaining shards as soon as one derives
// Theorem, and otherwise waits for every shard to finish. Each
// shard's unit of work is wrapped in a panic-recovery guard, the same
// discipline gokando's worker() goroutine applies around submitted
// tasks, converting a shard panic into an error instead of taking
// down the whole run.
func (p *PartitionedSaturator) Run(ctx context.Context, input []*clause.Clause) (saturate.Result, *clause.Clause, error) {
	shards := p.partition(input)

	g, gctx := errgroup.WithContext(ctx)
	runCtx, stopRemaining := context.WithCancel(gctx)
	defer stopRemaining()
	results := make([]shardResult, len(shards))

	var once sync.Once
	var winner shardResult
	haveWinner := false

	for i, shard := range shards {
		i, shard := i, shard
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("parallel: shard %d panicked: %v", i, r)
				}
			}()

			loop := saturate.NewLoop(p.Terms, p.Clauses, p.Ord, p.Calc, p.Cfg, p.Stats)
			loop.AddPassive(shard...)

			res, refutation, runErr := loop.Run(runCtx)
			if runErr != nil && runErr != context.Canceled {
				return runErr
			}
			results[i] = shardResult{shard: i, result: res, refutation: refutation}
			if res == saturate.Theorem {
				once.Do(func() {
					winner = results[i]
					haveWinner = true
					stopRemaining()
				})
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil && !haveWinner {
		return saturate.Unknown, nil, err
	}

	if haveWinner {
		return saturate.Theorem, winner.refutation, nil
	}

	// No shard derived the empty clause. Per the package doc, a
	// per-shard CounterSatisfiable does not compose into a global
	// verdict, so the honest answer is Unknown.
	return saturate.Unknown, nil, nil
}
