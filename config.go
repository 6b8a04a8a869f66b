package goSession

import "errors"

// Config carries all engine tunables. Configure before [Builder.Build];
// treat as immutable afterwards.
type Config struct {
	Session SessionConfig
	Audit   AuditConfig
	Metrics MetricsConfig
}

/*
====================================
SESSION CONFIG
====================================
*/

// SessionConfig sizes the in-memory stores. The capacities are map
// pre-allocation hints only; the stores grow past them freely.
type SessionConfig struct {
	ExpectedAccounts int
	ExpectedSessions int
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig controls the asynchronous audit dispatcher.
//
// When DropIfFull is true a full buffer drops the event and increments the
// dropped counter; when false the emitting goroutine blocks until the
// dispatcher drains.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig controls the in-process metrics system.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

func defaultConfig() Config {
	return Config{
		Session: SessionConfig{
			ExpectedAccounts: 1024,
			ExpectedSessions: 1024,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 true,
			EnableLatencyHistograms: false,
		},
	}
}

// DefaultConfig returns the baseline configuration: metrics on, latency
// histograms off, audit off, 1024-entry store hints.
func DefaultConfig() Config {
	return defaultConfig()
}

func cloneConfig(cfg Config) Config {
	// All fields are value types today; the clone exists so callers can keep
	// mutating their Config after Build without reaching into the engine.
	return cfg
}

// Validate reports the first configuration error found.
func (c *Config) Validate() error {
	if c.Session.ExpectedAccounts < 0 {
		return errors.New("Session.ExpectedAccounts must not be negative")
	}
	if c.Session.ExpectedSessions < 0 {
		return errors.New("Session.ExpectedSessions must not be negative")
	}
	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return errors.New("Audit.BufferSize must be positive when audit is enabled")
	}
	return nil
}
