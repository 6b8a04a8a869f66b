// Package prometheus provides Prometheus collectors for goSession metrics.
//
// [NewPrometheusExporter] accepts a [goSession.Engine] and exposes an
// [net/http.Handler] that renders all goSession counters and histograms in
// Prometheus text exposition format. Counter names are prefixed
// gosession_*_total; the single histogram is gosession_resolve_latency_seconds.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry — callers mount the Handler.
//   - Mutate engine state.
package prometheus
