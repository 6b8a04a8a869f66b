package goSession

import (
	"errors"

	"github.com/MrEthical07/goSession/internal/flows"
	"github.com/MrEthical07/goSession/internal/stores"
	"github.com/MrEthical07/goSession/session"
)

// Builder assembles an [Engine]. Configure it with the With* methods, then
// call [Builder.Build] exactly once. Builders are not safe for concurrent
// use and are spent after a successful Build.
type Builder struct {
	config    Config
	deriver   session.Deriver
	auditSink AuditSink

	built bool
}

// New returns a builder seeded with [DefaultConfig].
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the builder's configuration wholesale.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithDeriver overrides the session identifier derivation strategy. The
// default is [session.DefaultDeriver]. The deriver must be pure; a
// non-deterministic deriver breaks login idempotence.
func (b *Builder) WithDeriver(d session.Deriver) *Builder {
	b.deriver = d
	return b
}

// WithAuditSink sets the sink that receives audit events. Ignored unless
// Config.Audit.Enabled is true.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithMetricsEnabled toggles metric recording.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms toggles the Resolve latency histogram.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build validates the configuration, constructs the three stores, and wires
// the flow service. Construction is allocation-only: no I/O happens until an
// Engine method is called.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Audit.Enabled && b.auditSink == nil {
		return nil, errors.New("audit enabled but no sink provided")
	}

	engine := &Engine{
		config:      cfg,
		credentials: stores.NewCredentialStore(cfg.Session.ExpectedAccounts),
		profiles:    stores.NewProfileStore(cfg.Session.ExpectedAccounts),
		registry:    session.NewRegistry(b.deriver, cfg.Session.ExpectedSessions),
	}

	engine.audit = newAuditDispatcher(cfg.Audit, b.auditSink)
	engine.metrics = NewMetrics(cfg.Metrics)

	engine.flows = flows.New(flows.Deps{
		Register: flows.RegisterDeps{
			StoreCredential:   engine.credentials.Register,
			DuplicateUsername: stores.ErrUsernameExists,
			PutProfile: func(username, bio string, location *string) {
				engine.profiles.Put(username, stores.Profile{Bio: bio, Location: location})
			},
			MetricInc: engine.metricInc,
			EmitAudit: engine.emitAudit,
			Metrics: flows.RegisterMetrics{
				Success:   int(MetricRegisterSuccess),
				Duplicate: int(MetricRegisterDuplicate),
			},
			Events: flows.RegisterEvents{
				Success:   auditEventRegisterSuccess,
				Duplicate: auditEventRegisterDuplicate,
				Failure:   auditEventRegisterFailure,
			},
			Errors: flows.RegisterErrors{
				UsernameTaken:       ErrUsernameTaken,
				RegistrationInvalid: ErrRegistrationInvalid,
				EngineNotReady:      ErrEngineNotReady,
			},
		},
		Login: flows.LoginDeps{
			VerifyCredential: engine.credentials.Verify,
			IssueOrGet:       engine.registry.IssueOrGet,
			MetricInc:        engine.metricInc,
			EmitAudit:        engine.emitAudit,
			Metrics: flows.LoginMetrics{
				Success:       int(MetricLoginSuccess),
				Failure:       int(MetricLoginFailure),
				SessionIssued: int(MetricSessionIssued),
				SessionReused: int(MetricSessionReused),
			},
			Events: flows.LoginEvents{
				Success: auditEventLoginSuccess,
				Failure: auditEventLoginFailure,
			},
			Errors: flows.LoginErrors{
				InvalidCredentials: ErrInvalidCredentials,
				EngineNotReady:     ErrEngineNotReady,
			},
		},
		Resolve: flows.ResolveDeps{
			LookupSession: engine.registry.Resolve,
			GetProfile: func(username string) (string, *string, bool) {
				profile, ok := engine.profiles.Get(username)
				return profile.Bio, profile.Location, ok
			},
			ObserveLatency: engine.observeLatency,
			MetricInc:      engine.metricInc,
			EmitAudit:      engine.emitAudit,
			Metrics: flows.ResolveMetrics{
				Success:   int(MetricResolveSuccess),
				NoSession: int(MetricResolveNoSession),
				Invalid:   int(MetricResolveInvalid),
				Latency:   int(MetricResolveLatency),
			},
			Events: flows.ResolveEvents{
				Success: auditEventResolveSuccess,
				Invalid: auditEventResolveInvalid,
			},
			Errors: flows.ResolveErrors{
				NoSession:      ErrNoSession,
				SessionInvalid: ErrSessionInvalid,
				EngineNotReady: ErrEngineNotReady,
			},
		},
	})

	b.built = true

	return engine, nil
}
