// Package goSession provides an in-memory credential-and-session
// authentication engine: account registration, password login that issues a
// deterministic opaque session identifier, and resolution of that identifier
// back to the owning account on later requests.
//
// The package is designed for concurrent server workloads: Engine methods are
// safe to call from multiple goroutines after initialization through
// [Builder.Build]. Each backing store (credentials, profiles, session
// registry) is guarded by its own mutex; no lock is ever held across a call
// into another store.
//
// # Architecture boundaries
//
// goSession is the public surface. It exposes [Engine], [Builder], [Config],
// and value types (Account, Profile, MetricsSnapshot). Flow orchestration,
// the mutex-guarded stores, and audit dispatch live under internal/ and are
// never exported. The session registry and identifier derivation live in the
// session sub-package.
//
// # What this package must NOT do
//
//   - Persist anything. All three stores are process-lifetime maps; restart
//     loses every account and session.
//   - Expire, rotate, or invalidate sessions. A session identifier issued by
//     [Engine.Authenticate] stays valid for the life of the process.
//   - Hash passwords. Credentials are stored verbatim and compared for
//     byte-exact equality.
//
// # Security posture
//
// The default session identifier is a stable non-cryptographic hash of the
// username rendered in decimal form. It is deterministic by contract — every
// successful login for a username yields the same identifier — which also
// means it is guessable and never expires. Deployments that need real
// session tokens must inject a different [session.Deriver] and accept that
// repeated logins then stop being idempotent.
package goSession
