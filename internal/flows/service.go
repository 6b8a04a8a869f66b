package flows

import "context"

// Service is the centralized flow runner built once by the root engine.
type Service struct {
	deps Deps
}

// New returns a flow service with immutable dependency wiring.
func New(deps Deps) Service {
	return Service{deps: deps}
}

// Initialized reports whether the service has been wired with flow deps.
func (s Service) Initialized() bool {
	return s.deps.Login.VerifyCredential != nil
}

func (s Service) Register(ctx context.Context, req RegisterRequest) error {
	return RunRegister(ctx, req, s.deps.Register)
}

func (s Service) Login(ctx context.Context, username, password string) (string, error) {
	return RunLogin(ctx, username, password, s.deps.Login)
}

func (s Service) Resolve(ctx context.Context, sessionID string) (ResolvedAccount, error) {
	return RunResolve(ctx, sessionID, s.deps.Resolve)
}
