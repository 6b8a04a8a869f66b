// Package stores holds the process-lifetime account state: the credential
// map and the profile map. Both are plain in-memory maps, each guarded by its
// own mutex so a reader of one never contends with a writer of the other.
//
// # Architecture boundaries
//
// This package owns storage and the atomicity of single-store operations
// (notably the check-then-insert on registration). Cross-store orchestration
// — registering credentials and then writing the profile — belongs to
// internal/flows.
//
// # What this package must NOT do
//
//   - Persist to disk or any external system.
//   - Hash, trim, or otherwise transform stored passwords.
//   - Hold a lock while calling out of the package.
package stores
