package sid

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"

	"github.com/google/uuid"
)

var (
	canonicalPattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
	shortPattern     = regexp.MustCompile(`^[0-9a-f]{8}$`)
)

// New returns a random identifier in the canonical 8-4-4-4-12 form.
func New() string {
	return uuid.NewString()
}

// NewShort returns a compact 8-character hex identifier.
func NewShort() string {
	b := make([]byte, 4)
	// crypto/rand.Read is guaranteed not to fail as of Go 1.24.
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// Valid reports whether s has the shape of an identifier produced by this
// package, either canonical or short. It says nothing about whether the
// identifier is known to any store.
func Valid(s string) bool {
	switch len(s) {
	case 36:
		return canonicalPattern.MatchString(s)
	case 8:
		return shortPattern.MatchString(s)
	default:
		return false
	}
}
