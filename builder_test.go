package goSession

import (
	"context"
	"testing"
)

func TestBuilderSingleUse(t *testing.T) {
	b := New()

	engine, err := b.Build()
	if err != nil {
		t.Fatalf("first build: %v", err)
	}
	defer engine.Close()

	if _, err := b.Build(); err == nil {
		t.Fatal("spent builder must refuse a second Build")
	}
}

func TestBuilderValidatesConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Session.ExpectedAccounts = -1

	if _, err := New().WithConfig(cfg).Build(); err == nil {
		t.Fatal("negative capacity hint must fail validation")
	}
}

func TestBuilderAuditRequiresSink(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Audit.Enabled = true

	if _, err := New().WithConfig(cfg).Build(); err == nil {
		t.Fatal("audit without a sink must fail")
	}

	engine, err := New().WithConfig(cfg).WithAuditSink(NoOpSink{}).Build()
	if err != nil {
		t.Fatalf("audit with sink: %v", err)
	}
	engine.Close()
}

func TestBuilderCustomDeriver(t *testing.T) {
	engine, err := New().
		WithDeriver(func(username string) string { return "sid-" + username }).
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer engine.Close()

	ctx := context.Background()
	if err := engine.Register(ctx, RegisterRequest{Username: "alice", Password: "secret"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	sid, err := engine.Authenticate(ctx, "alice", "secret")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if sid != "sid-alice" {
		t.Fatalf("custom deriver ignored: %q", sid)
	}
}

func TestBuilderConfigIsolation(t *testing.T) {
	cfg := DefaultConfig()
	b := New().WithConfig(cfg)

	// Mutating the caller's copy after handing it over must not leak into
	// the built engine.
	cfg.Metrics.Enabled = false

	engine, err := b.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer engine.Close()

	_ = engine.Register(context.Background(), RegisterRequest{Username: "alice", Password: "x"})
	if engine.MetricsSnapshot().Counters[MetricRegisterSuccess] != 1 {
		t.Fatal("engine picked up a post-handoff config mutation")
	}
}
