package flows

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ResolvedAccount is the flow-local account shape returned by RunResolve.
type ResolvedAccount struct {
	Username string
	Bio      string
	Location *string
}

// ResolveMetrics carries the metric ids the resolve flow increments.
type ResolveMetrics struct {
	Success   int
	NoSession int
	Invalid   int
	Latency   int
}

// ResolveEvents carries the audit event type names the resolve flow emits.
type ResolveEvents struct {
	Success string
	Invalid string
}

// ResolveErrors carries the caller-facing sentinels the resolve flow maps to.
type ResolveErrors struct {
	NoSession      error
	SessionInvalid error
	EngineNotReady error
}

// ResolveDeps wires the resolve flow.
type ResolveDeps struct {
	LookupSession func(sessionID string) (username string, ok bool)
	GetProfile    func(username string) (bio string, location *string, ok bool)

	Now            func() time.Time
	ObserveLatency func(id int, d time.Duration)

	MetricInc func(int)
	EmitAudit func(ctx context.Context, eventType, username, sessionID string, success bool, failure error, metadata func() map[string]string)

	Metrics ResolveMetrics
	Events  ResolveEvents
	Errors  ResolveErrors
}

// RunResolve maps a presented session identifier back to its account. An
// empty identifier is the expected not-logged-in state, not a fault. A
// registry hit whose username has no profile entry is an engine bookkeeping
// bug: RunResolve panics rather than return a misleading result.
func RunResolve(ctx context.Context, sessionID string, deps ResolveDeps) (ResolvedAccount, error) {
	normalizeResolveDeps(&deps)

	if deps.LookupSession == nil || deps.GetProfile == nil {
		return ResolvedAccount{}, deps.Errors.EngineNotReady
	}

	start := deps.Now()
	defer func() {
		deps.ObserveLatency(deps.Metrics.Latency, deps.Now().Sub(start))
	}()

	if sessionID == "" {
		deps.MetricInc(deps.Metrics.NoSession)
		return ResolvedAccount{}, deps.Errors.NoSession
	}

	username, ok := deps.LookupSession(sessionID)
	if !ok {
		deps.MetricInc(deps.Metrics.Invalid)
		deps.EmitAudit(ctx, deps.Events.Invalid, "", sessionID, false, deps.Errors.SessionInvalid, nil)
		return ResolvedAccount{}, deps.Errors.SessionInvalid
	}

	bio, location, ok := deps.GetProfile(username)
	if !ok {
		// Register writes the profile right after the credential, and the
		// registry only ever names registered users. A miss here means the
		// engine corrupted its own bookkeeping; fail loudly instead of
		// degrading into a lookup error.
		panic(fmt.Sprintf("flows: session %q resolves to user %q with no profile entry", sessionID, username))
	}

	deps.MetricInc(deps.Metrics.Success)
	deps.EmitAudit(ctx, deps.Events.Success, username, sessionID, true, nil, nil)

	return ResolvedAccount{
		Username: username,
		Bio:      bio,
		Location: location,
	}, nil
}

func normalizeResolveDeps(deps *ResolveDeps) {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.ObserveLatency == nil {
		deps.ObserveLatency = func(int, time.Duration) {}
	}
	if deps.MetricInc == nil {
		deps.MetricInc = func(int) {}
	}
	if deps.EmitAudit == nil {
		deps.EmitAudit = func(context.Context, string, string, string, bool, error, func() map[string]string) {}
	}
	if deps.Errors.EngineNotReady == nil {
		deps.Errors.EngineNotReady = errors.New("engine not initialized")
	}
	if deps.Errors.NoSession == nil {
		deps.Errors.NoSession = errors.New("no session presented")
	}
	if deps.Errors.SessionInvalid == nil {
		deps.Errors.SessionInvalid = errors.New("session is invalid")
	}
}
