package goSession

import (
	"context"
	"time"

	"github.com/MrEthical07/goSession/internal/flows"
	"github.com/MrEthical07/goSession/internal/stores"
	"github.com/MrEthical07/goSession/session"
)

// Engine is the credential-and-session authentication engine. Construct it
// through [Builder.Build]; the zero value returns [ErrEngineNotReady] from
// every operation.
//
// All methods are safe for concurrent use. Register, Authenticate, and
// Resolve are the unit of external concurrency: each acquires at most one
// store lock at a time and never blocks on I/O.
type Engine struct {
	config Config

	credentials *stores.CredentialStore
	profiles    *stores.ProfileStore
	registry    *session.Registry

	flows   flows.Service
	audit   *auditDispatcher
	metrics *Metrics
}

// Register creates the account: credential entry first, profile entry
// second. Fails with [ErrUsernameTaken] when the username already exists; in
// that case neither store is touched. The two writes are separate critical
// sections, so a concurrent Resolve can race into the gap between them — a
// documented non-atomicity, not a bug.
func (e *Engine) Register(ctx context.Context, req RegisterRequest) error {
	if e == nil || !e.flows.Initialized() {
		return ErrEngineNotReady
	}
	return e.flows.Register(ctx, flows.RegisterRequest{
		Username: req.Username,
		Password: req.Password,
		Bio:      req.Bio,
		Location: req.Location,
	})
}

// Authenticate verifies the credential pair and returns the account's
// session identifier. Unknown usernames and wrong passwords both fail with
// [ErrInvalidCredentials]. Successful logins are idempotent: the identifier
// is a pure function of the username, so repeated calls return the same id
// without minting a second session.
func (e *Engine) Authenticate(ctx context.Context, username, password string) (string, error) {
	if e == nil || !e.flows.Initialized() {
		return "", ErrEngineNotReady
	}
	return e.flows.Login(ctx, username, password)
}

// Resolve maps a presented session identifier back to its account. An empty
// sessionID fails with [ErrNoSession] (the expected not-logged-in state); an
// unknown identifier fails with [ErrSessionInvalid]. A registry entry whose
// owner has no profile is an internal invariant violation and panics.
func (e *Engine) Resolve(ctx context.Context, sessionID string) (*Account, error) {
	if e == nil || !e.flows.Initialized() {
		return nil, ErrEngineNotReady
	}

	resolved, err := e.flows.Resolve(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return &Account{
		Username: resolved.Username,
		Profile: Profile{
			Bio:      resolved.Bio,
			Location: resolved.Location,
		},
	}, nil
}

// AccountCount returns the number of registered accounts.
func (e *Engine) AccountCount() int {
	if e == nil || e.credentials == nil {
		return 0
	}
	return e.credentials.Len()
}

// ActiveSessionCount returns the number of session registry entries. Because
// logins are idempotent this is also the number of distinct usernames that
// have ever logged in.
func (e *Engine) ActiveSessionCount() int {
	if e == nil || e.registry == nil {
		return 0
	}
	return e.registry.Len()
}

// MetricsSnapshot returns a point-in-time deep copy of all engine metrics.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

// AuditDropped returns the number of audit events dropped because the
// dispatcher buffer was full.
func (e *Engine) AuditDropped() uint64 {
	if e == nil {
		return 0
	}
	return e.audit.Dropped()
}

// Close drains and stops the audit dispatcher. The stores stay usable;
// Close exists so tests and servers can shut down without leaking the
// dispatcher goroutine.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	e.audit.Close()
}

func (e *Engine) observeLatency(id int, d time.Duration) {
	e.metrics.Observe(MetricID(id), d)
}

func (e *Engine) metricInc(id int) {
	e.metrics.Inc(MetricID(id))
}
