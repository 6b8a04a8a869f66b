package stores

import "sync"

// Profile is the stored per-account profile record.
type Profile struct {
	Bio      string
	Location *string
}

// ProfileStore is the username→profile mapping. It is written only right
// after a successful credential registration and read on every resolve.
type ProfileStore struct {
	mu       sync.Mutex
	profiles map[string]Profile
}

// NewProfileStore creates an empty profile store. capacity is a map
// pre-allocation hint.
func NewProfileStore(capacity int) *ProfileStore {
	if capacity < 0 {
		capacity = 0
	}
	return &ProfileStore{
		profiles: make(map[string]Profile, capacity),
	}
}

// Put upserts the profile for username unconditionally.
func (s *ProfileStore) Put(username string, profile Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profiles[username] = profile
}

// Get returns the profile for username and whether one exists.
func (s *ProfileStore) Get(username string) (Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, ok := s.profiles[username]
	return profile, ok
}

// Len returns the number of stored profiles.
func (s *ProfileStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.profiles)
}
