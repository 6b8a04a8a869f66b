// Package middleware exposes HTTP middleware adapters that resolve a request's
// session identifier through goSession.Engine.Resolve and inject the resulting
// account into the request context.
//
// # Guards
//
//   - [Guard] — extracts the identifier per the configured [Mode] and resolves it.
//   - [ModeCookie] — identifier carried in the "sid" cookie.
//   - [ModeBearer] — identifier carried as an Authorization bearer credential.
//
// A request with no identifier is answered with the not-logged-in advisory
// text (it is an expected state, not an authorization failure); a request with
// an unknown identifier is rejected with the invalid-session advisory text.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Engine calls. It does NOT
// implement authentication logic itself — all decisions are delegated to
// Engine.Resolve.
//
// # What this package must NOT do
//
//   - Mint or derive session identifiers.
//   - Make authorization decisions beyond pass/reject from Engine.Resolve.
package middleware
