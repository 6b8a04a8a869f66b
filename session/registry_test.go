package session

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestIssueOrGetIdempotent(t *testing.T) {
	r := NewRegistry(nil, 0)

	first, created := r.IssueOrGet("alice")
	if !created {
		t.Fatal("first login must create the registry entry")
	}
	if first != DefaultDeriver("alice") {
		t.Fatalf("identifier %q does not match derivation %q", first, DefaultDeriver("alice"))
	}

	for i := 0; i < 5; i++ {
		got, created := r.IssueOrGet("alice")
		if created {
			t.Fatal("re-login must not create a second entry")
		}
		if got != first {
			t.Fatalf("re-login returned %q, want %q", got, first)
		}
	}

	if r.Len() != 1 {
		t.Fatalf("expected exactly one entry, got %d", r.Len())
	}
}

func TestResolve(t *testing.T) {
	r := NewRegistry(nil, 0)

	sid, _ := r.IssueOrGet("alice")

	username, ok := r.Resolve(sid)
	if !ok || username != "alice" {
		t.Fatalf("resolve returned (%q, %v), want (alice, true)", username, ok)
	}

	if _, ok := r.Resolve("bogus"); ok {
		t.Fatal("unknown identifier must not resolve")
	}
}

func TestIssueOrGetConcurrentSameUsername(t *testing.T) {
	r := NewRegistry(nil, 0)

	const workers = 100
	var createdCount atomic.Int64
	ids := make([]string, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			sid, created := r.IssueOrGet("alice")
			ids[n] = sid
			if created {
				createdCount.Add(1)
			}
		}(i)
	}
	wg.Wait()

	if got := createdCount.Load(); got != 1 {
		t.Fatalf("expected exactly one creation, got %d", got)
	}
	for _, sid := range ids {
		if sid != ids[0] {
			t.Fatalf("callers observed different identifiers: %q vs %q", sid, ids[0])
		}
	}
	if r.Len() != 1 {
		t.Fatalf("expected one registry entry, got %d", r.Len())
	}
}

func TestCustomDeriver(t *testing.T) {
	r := NewRegistry(func(username string) string { return "id-" + username }, 0)

	sid, _ := r.IssueOrGet("alice")
	if sid != "id-alice" {
		t.Fatalf("custom deriver ignored: %q", sid)
	}
	if r.Derive("bob") != "id-bob" {
		t.Fatal("Derive must use the injected strategy")
	}
	if r.Len() != 1 {
		t.Fatal("Derive must not mutate registry state")
	}
}
