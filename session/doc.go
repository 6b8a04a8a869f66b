// Package session implements the session registry — the authoritative
// session-id→username mapping — and the identifier derivation strategy.
//
// # Design
//
// The session identifier is a pure function of the username ([Deriver]), so
// repeated logins for the same account are idempotent: [Registry.IssueOrGet]
// returns the existing entry instead of minting a second one. Entries never
// expire and are never deleted.
//
// # Architecture boundaries
//
// This package owns identifier derivation and registry state. It knows
// nothing about credentials or profiles; the caller must authenticate the
// username before calling IssueOrGet.
//
// # What this package must NOT do
//
//   - Treat the identifier as a secret. [DefaultDeriver] is a
//     non-cryptographic hash; anyone who can compute it can forge an
//     identifier for a known username.
//   - Expire, rotate, or invalidate entries.
package session
