// Command superpose runs the given-clause saturation loop over one of
// the embedded refutation problems and reports Theorem,
// CounterSatisfiable, or Unknown.
//
// A real front end would read TPTP CNF from a file or stdin; parsing
// that format is explicitly out of scope, so -problem selects from a
// small built-in registry instead (see problems.go).
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	flag "github.com/spf13/pflag"

	"github.com/gitrdm/superpose/internal/parallel"
	"github.com/gitrdm/superpose/pkg/calculus"
	"github.com/gitrdm/superpose/pkg/clause"
	"github.com/gitrdm/superpose/pkg/order"
	"github.com/gitrdm/superpose/pkg/plog"
	"github.com/gitrdm/superpose/pkg/proof"
	"github.com/gitrdm/superpose/pkg/saturate"
	"github.com/gitrdm/superpose/pkg/sig"
	"github.com/gitrdm/superpose/pkg/symbol"
)

func main() {
	os.Exit(run())
}

// run contains main's body so a deferred recover can translate a
// fatal panic into an exit code instead of a raw stack trace, the
// same "never let one goroutine's panic take the whole process down
// silently" discipline the saturation shards use internally.
func run() (code int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "superpose: fatal: %v\n", r)
			code = 3
		}
	}()

	var (
		problem    = flag.String("problem", "group-inverse", "built-in problem name")
		orderingFl = flag.String("ord", "kbo", "simplification ordering: kbo or lpo")
		precedence = flag.String("precedence", "arrival", "symbol precedence: arrival, frequency, or inv-frequency")
		selection  = flag.String("select", "one-negative", "literal selection policy: none or one-negative")
		timeout    = flag.Duration("timeout", 10*time.Second, "wall-clock budget, 0 disables")
		steps      = flag.Int("steps", 0, "given-clause step budget, 0 disables")
		mem        = flag.Uint64("mem", 0, "heap budget in bytes, 0 disables")
		noSub      = flag.Bool("no-subsumption", false, "disable subsumption deletion")
		noDemod    = flag.Bool("no-demod", false, "disable demodulation")
		noCondense = flag.Bool("no-condensation", false, "disable condensation")
		noReflect  = flag.Bool("no-simplify-reflect", false, "disable simplify-reflect")
		shards     = flag.Int("shards", 1, "number of independent saturation shards (>1 enables partitioned search)")
		emit       = flag.String("emit", "tptp", "refutation proof format: tptp or zf")
		listen     = flag.String("metrics-addr", "", "if set, serve Prometheus metrics on this address until the run completes")
		logLevel   = flag.String("log-level", "warn", "log level: trace, debug, info, warn, error")
	)
	flag.Parse()

	if err := validateFlags(*orderingFl, *precedence, *selection, *emit); err != nil {
		fmt.Fprintf(os.Stderr, "superpose: %v\n", err)
		return 3
	}

	logger := plog.New("superpose", *logLevel)

	problems := problemRegistry(orderingFrom(*orderingFl, *precedence))
	build, ok := problems[*problem]
	if !ok {
		fmt.Fprintf(os.Stderr, "superpose: unknown problem %q\n", *problem)
		return 3
	}
	p := build()

	cfg := saturate.DefaultConfig()
	cfg.Logger = logger
	cfg.Ordering = saturate.OrderingKind(*orderingFl)
	cfg.Precedence = precedenceMode(*precedence)
	cfg.Timeout = *timeout
	cfg.MaxSteps = *steps
	cfg.MaxMemoryBytes = *mem
	cfg.DisableSubsumption = *noSub
	cfg.DisableDemodulation = *noDemod
	cfg.DisableCondensation = *noCondense
	cfg.DisableSimplifyReflect = *noReflect
	if *selection == "none" {
		cfg.Selection = clause.SelectNone
	} else {
		cfg.Selection = clause.SelectOneNegative
	}

	reg := prometheus.NewRegistry()
	stats := saturate.NewStats(reg)

	if *listen != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		srv := &http.Server{Addr: *listen, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Warn("metrics server stopped", "error", err)
			}
		}()
		defer srv.Close()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	ord := p.Ord
	calc := &calculus.Superposition{}

	var result saturate.Result
	var refutation *clause.Clause
	var runErr error

	if *shards > 1 {
		ps := parallel.NewPartitionedSaturator(p.Sig.Terms, p.Bank, ord, calc, cfg, stats, *shards)
		result, refutation, runErr = ps.Run(ctx, p.Clauses)
	} else {
		loop := saturate.NewLoop(p.Sig.Terms, p.Bank, ord, calc, cfg, stats)
		loop.AddPassive(p.Clauses...)
		result, refutation, runErr = loop.Run(ctx)
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "superpose: %v\n", runErr)
	}

	fmt.Printf("%s: %s\n", p.Name, result)
	if result == saturate.Theorem && refutation != nil {
		printProof(refutation, *emit)
	}

	switch result {
	case saturate.Theorem:
		return 0
	case saturate.CounterSatisfiable:
		return 1
	default:
		return 2
	}
}

func printProof(refutation *clause.Clause, format string) {
	switch format {
	case "zf":
		e := proof.NewZFEmitter()
		proof.Walk(refutation, e)
		fmt.Println("rules used:", e.RulesUsed())
	default:
		e := proof.NewTPTPEmitter()
		proof.Walk(refutation, e)
		fmt.Print(e.String())
	}
}

// orderingFrom builds the ordering constructor for a (kind, precedence)
// pair against a problem's own symbol table, deferred until the
// problem (and hence its symbols) exists.
func orderingFrom(kind, precedence string) func(*sig.Builder) order.Ordering {
	mode := precedenceMode(precedence)
	return func(b *sig.Builder) order.Ordering {
		less := b.Syms.Precedence(mode)
		if kind == "lpo" {
			return order.NewLPO(less)
		}
		return order.NewKBO(less)
	}
}

// validateFlags collects every malformed flag value into one error
// instead of stopping at the first, since an operator fixing a typo'd
// invocation wants the whole list of problems in one pass rather than
// one fmt.Fprintf and a retry loop.
func validateFlags(ordFl, precedence, selection, emit string) error {
	var errs *multierror.Error
	switch ordFl {
	case "kbo", "lpo":
	default:
		errs = multierror.Append(errs, fmt.Errorf("invalid -ord %q: must be kbo or lpo", ordFl))
	}
	switch precedence {
	case "arrival", "frequency", "inv-frequency":
	default:
		errs = multierror.Append(errs, fmt.Errorf("invalid -precedence %q: must be arrival, frequency, or inv-frequency", precedence))
	}
	switch selection {
	case "none", "one-negative":
	default:
		errs = multierror.Append(errs, fmt.Errorf("invalid -select %q: must be none or one-negative", selection))
	}
	switch emit {
	case "tptp", "zf":
	default:
		errs = multierror.Append(errs, fmt.Errorf("invalid -emit %q: must be tptp or zf", emit))
	}
	return errs.ErrorOrNil()
}

func precedenceMode(name string) symbol.PrecedenceMode {
	switch name {
	case "frequency":
		return symbol.PrecedenceFrequency
	case "inv-frequency":
		return symbol.PrecedenceInvFrequency
	default:
		return symbol.PrecedenceArrival
	}
}
