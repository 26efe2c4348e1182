// Package metrics exports password-hashing activity to Prometheus.
//
// A [Collector] is both a [hashing.Observer] and a [prometheus.Collector].
// Attach it to builders with WithObserver, then either register it with an
// existing registry or mount [Collector.Handler]:
//
//	c := metrics.NewCollector("")
//	h := hashing.NewHasher().WithObserver(c)
//	http.Handle("/metrics", c.Handler())
//
// Two families are exported, both under the namespace given to
// [NewCollector] ("argon2" by default):
//
//   - <ns>_operations_total{op,variant,outcome} where outcome is "ok",
//     "mismatch" or a fault kind ("configuration", "data", "encoding", "bug").
//   - <ns>_operation_duration_seconds{op,variant}
//
// # What this package must NOT do
//
//   - Register metrics in the global Prometheus registry.
//   - Record anything derived from passwords, keys or salts.
package metrics
