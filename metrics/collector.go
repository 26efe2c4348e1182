package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hasbyte1/go-argon2/hashing"
)

// DefaultNamespace prefixes every metric name when NewCollector gets "".
const DefaultNamespace = "argon2"

// VariantUnknown labels calls whose variant could not be determined.
const VariantUnknown = "unknown"

// Outcome label values that are not fault kinds.
const (
	OutcomeOK       = "ok"
	OutcomeMismatch = "mismatch"
)

// Collector counts and times hash and verify calls.
type Collector struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	registry   *prometheus.Registry
}

var (
	_ hashing.Observer     = (*Collector)(nil)
	_ prometheus.Collector = (*Collector)(nil)
)

// NewCollector returns a Collector whose metric names start with namespace.
func NewCollector(namespace string) *Collector {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	c := &Collector{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Argon2 hash and verify calls by outcome.",
		}, []string{"op", "variant", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Wall time of Argon2 hash and verify calls.",
			// 1 ms .. ~16 s
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15),
		}, []string{"op", "variant"}),
		registry: prometheus.NewRegistry(),
	}
	c.registry.MustRegister(c)
	return c
}

// Observe implements [hashing.Observer].
func (c *Collector) Observe(o hashing.Observation) {
	variant := o.Variant.String()
	if o.VariantUnknown {
		variant = VariantUnknown
	}
	op := string(o.Op)
	c.operations.WithLabelValues(op, variant, outcome(o)).Inc()
	c.duration.WithLabelValues(op, variant).Observe(o.Duration.Seconds())
}

func outcome(o hashing.Observation) string {
	switch {
	case o.Err != nil:
		return string(hashing.KindOf(o.Err))
	case o.Op == hashing.OpVerify && !o.Matched:
		return OutcomeMismatch
	default:
		return OutcomeOK
	}
}

// Describe implements [prometheus.Collector].
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.operations.Describe(ch)
	c.duration.Describe(ch)
}

// Collect implements [prometheus.Collector].
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.operations.Collect(ch)
	c.duration.Collect(ch)
}

// Handler serves this Collector's metrics, and nothing else, in the
// Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
