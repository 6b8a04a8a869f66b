package internaldefs

import (
	goSession "github.com/MrEthical07/goSession"
)

// CounterDef names one engine counter for exposition.
type CounterDef struct {
	ID   goSession.MetricID
	Name string
	Help string
}

// HistogramDef names one engine histogram for exposition.
type HistogramDef struct {
	ID   goSession.MetricID
	Name string
	Help string
}

// CounterDefs lists every exported counter in exposition order.
var CounterDefs = []CounterDef{
	{ID: goSession.MetricRegisterSuccess, Name: "gosession_register_success_total", Help: "Successful account registrations."},
	{ID: goSession.MetricRegisterDuplicate, Name: "gosession_register_duplicate_total", Help: "Registrations rejected because the username was taken."},
	{ID: goSession.MetricLoginSuccess, Name: "gosession_login_success_total", Help: "Successful login attempts."},
	{ID: goSession.MetricLoginFailure, Name: "gosession_login_failure_total", Help: "Failed login attempts."},
	{ID: goSession.MetricSessionIssued, Name: "gosession_session_issued_total", Help: "Logins that created a new session registry entry."},
	{ID: goSession.MetricSessionReused, Name: "gosession_session_reused_total", Help: "Idempotent re-logins that reused an existing session."},
	{ID: goSession.MetricResolveSuccess, Name: "gosession_resolve_success_total", Help: "Session resolutions that produced an account."},
	{ID: goSession.MetricResolveNoSession, Name: "gosession_resolve_no_session_total", Help: "Resolutions with no session identifier presented."},
	{ID: goSession.MetricResolveInvalid, Name: "gosession_resolve_invalid_total", Help: "Resolutions with an unknown session identifier."},
}

// HistogramDefs lists every exported histogram.
var HistogramDefs = []HistogramDef{
	{ID: goSession.MetricResolveLatency, Name: "gosession_resolve_latency_seconds", Help: "Resolve latency histogram."},
}

// HistogramBounds are the upper bounds of the engine's fixed buckets, in
// Prometheus le-label form.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix are the bounds in identifier-safe form for backends
// that cannot carry labels.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets pads or truncates a raw snapshot slice to the fixed
// 8-bucket layout.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts to the cumulative form
// Prometheus histograms expect.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
