package stores

import (
	"errors"
	"sync"
)

// ErrUsernameExists is returned by [CredentialStore.Register] when the
// username already holds a credential entry.
var ErrUsernameExists = errors.New("username already registered")

// CredentialStore is the authoritative username→password mapping. Passwords
// are stored verbatim and compared for byte-exact equality.
type CredentialStore struct {
	mu        sync.Mutex
	passwords map[string]string
}

// NewCredentialStore creates an empty credential store. capacity is a map
// pre-allocation hint.
func NewCredentialStore(capacity int) *CredentialStore {
	if capacity < 0 {
		capacity = 0
	}
	return &CredentialStore{
		passwords: make(map[string]string, capacity),
	}
}

// Register inserts the credential pair if the username is free. The
// check-then-insert runs under the store lock, so of two racing
// registrations for the same username exactly one succeeds.
func (s *CredentialStore) Register(username, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.passwords[username]; exists {
		return ErrUsernameExists
	}

	s.passwords[username] = password
	return nil
}

// Verify reports whether the username is known and, if so, whether the
// supplied password matches exactly. found is false for unknown usernames
// and match is meaningful only when found is true.
func (s *CredentialStore) Verify(username, password string) (found, match bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.passwords[username]
	if !ok {
		return false, false
	}

	return true, stored == password
}

// Len returns the number of registered usernames.
func (s *CredentialStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.passwords)
}
