package saturate

import (
	"time"

	"github.com/gitrdm/superpose/pkg/clause"
	"github.com/gitrdm/superpose/pkg/plog"
	"github.com/gitrdm/superpose/pkg/symbol"
)

// OrderingKind names one of the two simplification orderings the loop
// can be configured with.
type OrderingKind string

const (
	OrderingKBO OrderingKind = "kbo"
	OrderingLPO OrderingKind = "lpo"
)

// Config is the saturation loop's full configuration, populated by
// cmd/superpose from CLI flags but otherwise free of any CLI
// dependency — the loop itself is a pure function of (clauses, Config).
type Config struct {
	Ordering   OrderingKind
	Precedence symbol.PrecedenceMode
	Selection  clause.SelectionPolicy

	DisableSubsumption     bool
	DisableDemodulation    bool
	DisableCondensation    bool
	DisableSimplifyReflect bool

	Timeout        time.Duration
	MaxSteps       int
	MaxMemoryBytes uint64

	// AgeEvery controls the given-clause pick heuristic: one clause is
	// picked by age (oldest first) every AgeEvery picks, and by
	// smallest weight otherwise. AgeEvery <= 0 means always pick by
	// weight, which is unfair on its own and can starve a needed axiom
	// forever; callers that disable age-picking accept that risk.
	AgeEvery int

	// GenCacheSize bounds the LRU cache backing the term index's
	// generalization lookup.
	GenCacheSize int

	Logger plog.Logger
}

// DefaultConfig returns a reasonable configuration: KBO ordering,
// age-weight ratio of 1-in-5, all simplification rules enabled, no
// resource limits, and a discarding logger.
func DefaultConfig() Config {
	return Config{
		Ordering:     OrderingKBO,
		Precedence:   symbol.PrecedenceArrival,
		Selection:    clause.SelectOneNegative,
		AgeEvery:     5,
		GenCacheSize: 4096,
		Logger:       plog.NewDiscard(),
	}
}
