package goSession

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/MrEthical07/goSession/session"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()

	engine, err := New().Build()
	if err != nil {
		t.Fatalf("building engine: %v", err)
	}
	t.Cleanup(engine.Close)

	return engine
}

func TestEngineLifecycle(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	if err := engine.Register(ctx, RegisterRequest{
		Username: "alice",
		Password: "secret",
		Bio:      "hi",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	sid, err := engine.Authenticate(ctx, "alice", "secret")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if sid != session.DefaultDeriver("alice") {
		t.Fatalf("session id %q does not match the default derivation", sid)
	}

	account, err := engine.Resolve(ctx, sid)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if account.Username != "alice" || account.Profile.Bio != "hi" {
		t.Fatalf("unexpected account: %+v", account)
	}

	if engine.AccountCount() != 1 || engine.ActiveSessionCount() != 1 {
		t.Fatalf("counts: accounts=%d sessions=%d", engine.AccountCount(), engine.ActiveSessionCount())
	}
}

func TestEngineRegisterDuplicate(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	if err := engine.Register(ctx, RegisterRequest{Username: "alice", Password: "first"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	err := engine.Register(ctx, RegisterRequest{Username: "alice", Password: "second"})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	// The original password still wins.
	if _, err := engine.Authenticate(ctx, "alice", "second"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatal("second registration must not overwrite the credential")
	}
	if _, err := engine.Authenticate(ctx, "alice", "first"); err != nil {
		t.Fatalf("original credential rejected: %v", err)
	}
}

func TestEngineAuthenticateUniformError(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	if err := engine.Register(ctx, RegisterRequest{Username: "alice", Password: "secret"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	for _, tc := range []struct{ username, password string }{
		{"alice", "wrong"},
		{"mallory", "secret"},
	} {
		if _, err := engine.Authenticate(ctx, tc.username, tc.password); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("Authenticate(%q, %q) = %v, want ErrInvalidCredentials", tc.username, tc.password, err)
		}
	}
	if engine.ActiveSessionCount() != 0 {
		t.Fatal("failed logins must not create sessions")
	}
}

func TestEngineAuthenticateIdempotent(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	if err := engine.Register(ctx, RegisterRequest{Username: "alice", Password: "secret"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	first, err := engine.Authenticate(ctx, "alice", "secret")
	if err != nil {
		t.Fatalf("first login: %v", err)
	}
	second, err := engine.Authenticate(ctx, "alice", "secret")
	if err != nil {
		t.Fatalf("second login: %v", err)
	}
	if first != second {
		t.Fatalf("re-login minted a new id: %q vs %q", first, second)
	}
	if engine.ActiveSessionCount() != 1 {
		t.Fatalf("expected one session entry, got %d", engine.ActiveSessionCount())
	}
}

func TestEngineResolveFailures(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	if _, err := engine.Resolve(ctx, ""); !errors.Is(err, ErrNoSession) {
		t.Fatalf("empty identifier: %v, want ErrNoSession", err)
	}
	if _, err := engine.Resolve(ctx, "bogus"); !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("unknown identifier: %v, want ErrSessionInvalid", err)
	}
}

func TestEngineConcurrentLoginsShareSession(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	if err := engine.Register(ctx, RegisterRequest{Username: "alice", Password: "secret"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	const workers = 64
	ids := make([]string, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			sid, err := engine.Authenticate(ctx, "alice", "secret")
			if err != nil {
				t.Errorf("worker %d: %v", n, err)
				return
			}
			ids[n] = sid
		}(i)
	}
	wg.Wait()

	for _, sid := range ids {
		if sid != ids[0] {
			t.Fatalf("workers observed different session ids: %q vs %q", sid, ids[0])
		}
	}
	if engine.ActiveSessionCount() != 1 {
		t.Fatalf("expected one registry entry, got %d", engine.ActiveSessionCount())
	}
}

func TestEngineMetrics(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	_ = engine.Register(ctx, RegisterRequest{Username: "alice", Password: "secret"})
	_ = engine.Register(ctx, RegisterRequest{Username: "alice", Password: "secret"})
	sid, _ := engine.Authenticate(ctx, "alice", "secret")
	_, _ = engine.Authenticate(ctx, "alice", "wrong")
	_, _ = engine.Resolve(ctx, sid)
	_, _ = engine.Resolve(ctx, "")
	_, _ = engine.Resolve(ctx, "bogus")

	snap := engine.MetricsSnapshot()
	checks := map[MetricID]uint64{
		MetricRegisterSuccess:   1,
		MetricRegisterDuplicate: 1,
		MetricLoginSuccess:      1,
		MetricLoginFailure:      1,
		MetricSessionIssued:     1,
		MetricResolveSuccess:    1,
		MetricResolveNoSession:  1,
		MetricResolveInvalid:    1,
	}
	for id, want := range checks {
		if got := snap.Counters[id]; got != want {
			t.Errorf("counter %d = %d, want %d", id, got, want)
		}
	}
}

func TestEngineZeroValueNotReady(t *testing.T) {
	var engine Engine
	ctx := context.Background()

	if err := engine.Register(ctx, RegisterRequest{Username: "alice"}); !errors.Is(err, ErrEngineNotReady) {
		t.Fatalf("Register on zero value: %v", err)
	}
	if _, err := engine.Authenticate(ctx, "alice", "secret"); !errors.Is(err, ErrEngineNotReady) {
		t.Fatalf("Authenticate on zero value: %v", err)
	}
	if _, err := engine.Resolve(ctx, "sid"); !errors.Is(err, ErrEngineNotReady) {
		t.Fatalf("Resolve on zero value: %v", err)
	}
	if engine.AccountCount() != 0 || engine.ActiveSessionCount() != 0 || engine.AuditDropped() != 0 {
		t.Fatal("zero-value counters must read zero")
	}
	engine.Close()
}

func TestEngineNilSafety(t *testing.T) {
	var engine *Engine

	if err := engine.Register(context.Background(), RegisterRequest{}); !errors.Is(err, ErrEngineNotReady) {
		t.Fatalf("nil engine Register: %v", err)
	}
	if engine.AccountCount() != 0 {
		t.Fatal("nil engine AccountCount")
	}
	engine.Close()
}
