package session

import "sync"

// Registry is the authoritative session-id→username mapping. All methods are
// safe for concurrent use; every access runs under a single exclusive lock
// held only for the duration of the map operation.
type Registry struct {
	mu     sync.Mutex
	derive Deriver
	owners map[string]string
}

// NewRegistry creates an empty registry using the given derivation strategy.
// A nil derive falls back to [DefaultDeriver]. capacity is a map
// pre-allocation hint.
func NewRegistry(derive Deriver, capacity int) *Registry {
	if derive == nil {
		derive = DefaultDeriver
	}
	if capacity < 0 {
		capacity = 0
	}
	return &Registry{
		derive: derive,
		owners: make(map[string]string, capacity),
	}
}

// IssueOrGet derives the session identifier for username and registers it if
// absent. created reports whether a new entry was inserted. The
// derive-check-insert sequence runs under the registry lock, so concurrent
// logins for the same username observe a single winner and every caller
// receives the same identifier.
func (r *Registry) IssueOrGet(username string) (sessionID string, created bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessionID = r.derive(username)
	if _, exists := r.owners[sessionID]; exists {
		return sessionID, false
	}

	r.owners[sessionID] = username
	return sessionID, true
}

// Resolve returns the username owning sessionID, if any. Pure lookup, no
// mutation.
func (r *Registry) Resolve(sessionID string) (username string, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	username, ok = r.owners[sessionID]
	return username, ok
}

// Derive returns the identifier the registry would issue for username
// without touching registry state.
func (r *Registry) Derive(username string) string {
	return r.derive(username)
}

// Len returns the number of active sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.owners)
}
