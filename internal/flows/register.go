package flows

import (
	"context"
	"errors"
)

// RegisterRequest is the flow-local registration input.
type RegisterRequest struct {
	Username string
	Password string
	Bio      string
	Location *string
}

// RegisterMetrics carries the metric ids the register flow increments.
type RegisterMetrics struct {
	Success   int
	Duplicate int
}

// RegisterEvents carries the audit event type names the register flow emits.
type RegisterEvents struct {
	Success   string
	Duplicate string
	Failure   string
}

// RegisterErrors carries the caller-facing sentinels the register flow maps to.
type RegisterErrors struct {
	UsernameTaken       error
	RegistrationInvalid error
	EngineNotReady      error
}

// RegisterDeps wires the register flow. StoreCredential must perform an
// atomic check-then-insert and return DuplicateUsername when the name is
// taken.
type RegisterDeps struct {
	StoreCredential   func(username, password string) error
	DuplicateUsername error
	PutProfile        func(username, bio string, location *string)

	MetricInc func(int)
	EmitAudit func(ctx context.Context, eventType, username, sessionID string, success bool, failure error, metadata func() map[string]string)

	Metrics RegisterMetrics
	Events  RegisterEvents
	Errors  RegisterErrors
}

// RunRegister creates the account: credential write first, profile write
// second. The two writes are separate critical sections on separate stores —
// a concurrent resolve can observe the credential without the profile for the
// duration of the gap. The username-taken check is atomic with the credential
// insert, so the pair of stores is only ever populated for a username whose
// registration won.
func RunRegister(ctx context.Context, req RegisterRequest, deps RegisterDeps) error {
	normalizeRegisterDeps(&deps)

	if deps.StoreCredential == nil || deps.PutProfile == nil {
		return deps.Errors.EngineNotReady
	}

	if req.Username == "" {
		deps.EmitAudit(ctx, deps.Events.Failure, "", "", false, deps.Errors.RegistrationInvalid, func() map[string]string {
			return map[string]string{
				"reason": "empty_username",
			}
		})
		return deps.Errors.RegistrationInvalid
	}

	if err := deps.StoreCredential(req.Username, req.Password); err != nil {
		if deps.DuplicateUsername != nil && errors.Is(err, deps.DuplicateUsername) {
			deps.MetricInc(deps.Metrics.Duplicate)
			deps.EmitAudit(ctx, deps.Events.Duplicate, req.Username, "", false, deps.Errors.UsernameTaken, nil)
			return deps.Errors.UsernameTaken
		}
		deps.EmitAudit(ctx, deps.Events.Failure, req.Username, "", false, err, nil)
		return err
	}

	deps.PutProfile(req.Username, req.Bio, req.Location)

	deps.MetricInc(deps.Metrics.Success)
	deps.EmitAudit(ctx, deps.Events.Success, req.Username, "", true, nil, nil)

	return nil
}

func normalizeRegisterDeps(deps *RegisterDeps) {
	if deps.MetricInc == nil {
		deps.MetricInc = func(int) {}
	}
	if deps.EmitAudit == nil {
		deps.EmitAudit = func(context.Context, string, string, string, bool, error, func() map[string]string) {}
	}
	if deps.Errors.EngineNotReady == nil {
		deps.Errors.EngineNotReady = errors.New("engine not initialized")
	}
	if deps.Errors.RegistrationInvalid == nil {
		deps.Errors.RegistrationInvalid = errors.New("invalid registration request")
	}
	if deps.Errors.UsernameTaken == nil {
		deps.Errors.UsernameTaken = errors.New("username is taken")
	}
}
