// Command gosession-loadtest hammers a goSession engine with concurrent
// logins and resolves, then reports latency percentiles and verifies the
// one-session-per-username invariant under contention.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	goSession "github.com/MrEthical07/goSession"
)

func main() {
	var (
		accounts    = flag.Int("accounts", 10000, "number of accounts to seed")
		concurrency = flag.Int("concurrency", 256, "number of concurrent workers")
		ops         = flag.Int("ops", 200000, "operations per phase (login + resolve)")
	)
	flag.Parse()

	if *accounts <= 0 || *concurrency <= 0 || *ops <= 0 {
		fmt.Fprintln(os.Stderr, "accounts, concurrency, and ops must be > 0")
		os.Exit(2)
	}

	ctx := context.Background()

	cfg := goSession.DefaultConfig()
	cfg.Session.ExpectedAccounts = *accounts
	cfg.Session.ExpectedSessions = *accounts
	cfg.Metrics.EnableLatencyHistograms = true

	engine, err := goSession.New().WithConfig(cfg).Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "engine build failed: %v\n", err)
		os.Exit(1)
	}
	defer engine.Close()

	fmt.Printf("seeding %d accounts...\n", *accounts)
	startSeed := time.Now()
	usernames := make([]string, *accounts)
	for i := range usernames {
		usernames[i] = fmt.Sprintf("user-%06d", i)
		err := engine.Register(ctx, goSession.RegisterRequest{
			Username: usernames[i],
			Password: fmt.Sprintf("pass-%06d", i),
			Bio:      "load test account",
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "seed register failed for %s: %v\n", usernames[i], err)
			os.Exit(1)
		}
	}
	fmt.Printf("seeded in %s\n", time.Since(startSeed))

	sessionIDs := make([]atomic.Pointer[string], *accounts)

	fmt.Printf("running %d logins across %d workers...\n", *ops, *concurrency)
	loginLatencies := runPhase(*ops, *concurrency, func(r *rand.Rand) error {
		i := r.Intn(*accounts)
		sid, err := engine.Authenticate(ctx, usernames[i], fmt.Sprintf("pass-%06d", i))
		if err != nil {
			return err
		}
		if prev := sessionIDs[i].Load(); prev != nil && *prev != sid {
			return fmt.Errorf("session id for %s changed: %s != %s", usernames[i], *prev, sid)
		}
		sessionIDs[i].Store(&sid)
		return nil
	})

	fmt.Printf("running %d resolves across %d workers...\n", *ops, *concurrency)
	resolveLatencies := runPhase(*ops, *concurrency, func(r *rand.Rand) error {
		i := r.Intn(*accounts)
		sid := sessionIDs[i].Load()
		if sid == nil {
			return nil
		}
		account, err := engine.Resolve(ctx, *sid)
		if err != nil {
			return err
		}
		if account.Username != usernames[i] {
			return fmt.Errorf("resolved wrong owner: got %s want %s", account.Username, usernames[i])
		}
		return nil
	})

	loggedIn := 0
	for i := range sessionIDs {
		if sessionIDs[i].Load() != nil {
			loggedIn++
		}
	}
	if got := engine.ActiveSessionCount(); got != loggedIn {
		fmt.Fprintf(os.Stderr, "INVARIANT VIOLATED: %d registry entries for %d logged-in accounts\n", got, loggedIn)
		os.Exit(1)
	}

	report("login", loginLatencies)
	report("resolve", resolveLatencies)
	fmt.Printf("accounts=%d sessions=%d\n", engine.AccountCount(), engine.ActiveSessionCount())
}

func runPhase(ops, concurrency int, op func(*rand.Rand) error) []time.Duration {
	latencies := make([]time.Duration, ops)
	var next atomic.Int64
	var failed atomic.Int64

	var wg sync.WaitGroup
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			r := rand.New(rand.NewSource(seed))
			for {
				i := next.Add(1) - 1
				if i >= int64(ops) {
					return
				}
				start := time.Now()
				if err := op(r); err != nil {
					failed.Add(1)
					fmt.Fprintf(os.Stderr, "op failed: %v\n", err)
				}
				latencies[i] = time.Since(start)
			}
		}(int64(w) + 1)
	}
	wg.Wait()

	if n := failed.Load(); n > 0 {
		fmt.Fprintf(os.Stderr, "%d operations failed\n", n)
		os.Exit(1)
	}
	return latencies
}

func report(name string, latencies []time.Duration) {
	sorted := append([]time.Duration(nil), latencies...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	pct := func(p float64) time.Duration {
		if len(sorted) == 0 {
			return 0
		}
		idx := int(p * float64(len(sorted)-1))
		return sorted[idx]
	}

	fmt.Printf("%s: n=%d p50=%s p95=%s p99=%s max=%s\n",
		name, len(sorted), pct(0.50), pct(0.95), pct(0.99), sorted[len(sorted)-1])
}
