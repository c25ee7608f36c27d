package saturate

import "github.com/prometheus/client_golang/prometheus"

// Stats tracks the saturation loop's progress as prometheus
// counters/gauges. A nil *prometheus.Registry disables registration
// entirely (the metrics remain updatable, just never scraped) so
// embedding the prover in a process with its own registry — or not
// registering metrics at all, e.g. in unit tests — is always safe,
// following nomad's optional-metrics-sink pattern.
type Stats struct {
	GivenClauses          prometheus.Counter
	ActiveSetSize         prometheus.Gauge
	PassiveSetSize        prometheus.Gauge
	InferencesGenerated   prometheus.Counter
	Simplifications       prometheus.Counter
}

// NewStats builds a Stats bundle and registers it with reg if reg is
// non-nil. Registration errors (e.g. duplicate registration in a
// shared registry) are ignored, mirroring the "metrics must never
// fail the caller's real work" rule.
func NewStats(reg *prometheus.Registry) *Stats {
	s := &Stats{
		GivenClauses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "superpose_given_clauses_total",
			Help: "Number of clauses selected as the given clause.",
		}),
		ActiveSetSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "superpose_active_set_size",
			Help: "Current number of clauses in the Active set.",
		}),
		PassiveSetSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "superpose_passive_set_size",
			Help: "Current number of clauses in the Passive set.",
		}),
		InferencesGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "superpose_inferences_generated_total",
			Help: "Number of clauses produced by generating inference rules.",
		}),
		Simplifications: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "superpose_simplifications_total",
			Help: "Number of clauses changed or deleted by simplification rules.",
		}),
	}
	if reg != nil {
		for _, c := range []prometheus.Collector{
			s.GivenClauses, s.ActiveSetSize, s.PassiveSetSize,
			s.InferencesGenerated, s.Simplifications,
		} {
			_ = reg.Register(c)
		}
	}
	return s
}
