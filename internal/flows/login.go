package flows

import (
	"context"
	"errors"
)

// LoginMetrics carries the metric ids the login flow increments.
type LoginMetrics struct {
	Success       int
	Failure       int
	SessionIssued int
	SessionReused int
}

// LoginEvents carries the audit event type names the login flow emits.
type LoginEvents struct {
	Success string
	Failure string
}

// LoginErrors carries the caller-facing sentinels the login flow maps to.
type LoginErrors struct {
	InvalidCredentials error
	EngineNotReady     error
}

// LoginDeps wires the login flow. IssueOrGet must be linearizable per
// username: racing logins for one account observe the same identifier and at
// most one created=true.
type LoginDeps struct {
	VerifyCredential func(username, password string) (found, match bool)
	IssueOrGet       func(username string) (sessionID string, created bool)

	MetricInc func(int)
	EmitAudit func(ctx context.Context, eventType, username, sessionID string, success bool, failure error, metadata func() map[string]string)

	Metrics LoginMetrics
	Events  LoginEvents
	Errors  LoginErrors
}

// RunLogin verifies the credential pair and returns the account's session
// identifier. Unknown username and wrong password both map to the same
// InvalidCredentials sentinel so a caller cannot probe which usernames
// exist.
func RunLogin(ctx context.Context, username, password string, deps LoginDeps) (string, error) {
	normalizeLoginDeps(&deps)

	if deps.VerifyCredential == nil || deps.IssueOrGet == nil {
		return "", deps.Errors.EngineNotReady
	}

	found, match := deps.VerifyCredential(username, password)
	if !found || !match {
		reason := "wrong_password"
		if !found {
			reason = "unknown_username"
		}
		deps.MetricInc(deps.Metrics.Failure)
		deps.EmitAudit(ctx, deps.Events.Failure, username, "", false, deps.Errors.InvalidCredentials, func() map[string]string {
			return map[string]string{
				"reason": reason,
			}
		})
		return "", deps.Errors.InvalidCredentials
	}

	sessionID, created := deps.IssueOrGet(username)

	deps.MetricInc(deps.Metrics.Success)
	if created {
		deps.MetricInc(deps.Metrics.SessionIssued)
	} else {
		deps.MetricInc(deps.Metrics.SessionReused)
	}

	deps.EmitAudit(ctx, deps.Events.Success, username, sessionID, true, nil, func() map[string]string {
		reused := "false"
		if !created {
			reused = "true"
		}
		return map[string]string{
			"session_reused": reused,
		}
	})

	return sessionID, nil
}

func normalizeLoginDeps(deps *LoginDeps) {
	if deps.MetricInc == nil {
		deps.MetricInc = func(int) {}
	}
	if deps.EmitAudit == nil {
		deps.EmitAudit = func(context.Context, string, string, string, bool, error, func() map[string]string) {}
	}
	if deps.Errors.EngineNotReady == nil {
		deps.Errors.EngineNotReady = errors.New("engine not initialized")
	}
	if deps.Errors.InvalidCredentials == nil {
		deps.Errors.InvalidCredentials = errors.New("username and password combination is wrong")
	}
}
