// Package sid generates opaque session identifiers.
//
// Two shapes are produced: the canonical 36-character form with hyphenated
// hex groups of 8-4-4-4-12 carrying RFC 4122 version and variant bits, and
// a short 8-character hex form for contexts where a compact value is
// preferred. Both are drawn from a cryptographically secure source and are
// effectively non-colliding within a process lifetime.
//
// Identifiers carry no embedded meaning and are trusted only insofar as the
// backing session store recognizes them; the package performs no signing.
//
// # Usage
//
//	id := sid.New()       // "5f2b1c3a-9d4e-4f6a-8b7c-0e1d2c3b4a59"
//	short := sid.NewShort() // "a3f09c21"
//
//	if !sid.Valid(candidate) {
//	    // reject malformed input before hitting the store
//	}
package sid
