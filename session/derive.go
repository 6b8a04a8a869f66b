package session

import (
	"hash/fnv"
	"strconv"
)

// Deriver maps a username to its session identifier. Implementations must be
// pure: the same username always yields the same identifier, with no side
// effects. Collisions between distinct usernames are not detected by the
// registry, so a Deriver must keep the collision rate negligible for the
// expected key space.
type Deriver func(username string) string

// DefaultDeriver hashes the username with FNV-1a 64 and renders the sum in
// decimal form. Deterministic and stable for the life of the process, but
// not collision-free and not a security-grade token.
func DefaultDeriver(username string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(username))
	return strconv.FormatUint(h.Sum64(), 10)
}
