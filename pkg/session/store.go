package session

import "context"

// Store is the pluggable persistence contract for session records. It is
// the sole extension seam for backends: the Manager and the records it
// hands out never touch storage through any other path.
//
// Each operation must be individually atomic from the caller's viewpoint
// (a completed Set is fully visible to a subsequent Get), but no
// cross-operation transactions are required; Manager.Flush in particular
// performs a deliberately non-transactional scan-then-delete.
//
// The default MemoryStore keeps live *Session pointers, so mutations made
// through a record returned by Manager.Start are persistent immediately.
// Serializing backends (Redis, Postgres) snapshot the record on Set; call
// Set again after mutating Data to persist the change.
type Store interface {
	// Exists reports whether a record is registered under id, regardless
	// of whether it is still valid.
	Exists(ctx context.Context, id string) (bool, error)

	// IsValid reports whether a record exists under id AND its remaining
	// time-to-live is strictly positive. Unknown ids yield (false, nil),
	// not an error.
	IsValid(ctx context.Context, id string) (bool, error)

	// Has reports whether a record is retrievable under id. For the
	// in-memory backend this coincides with Exists; custom backends may
	// distinguish "registered" from "retrievable".
	Has(ctx context.Context, id string) (bool, error)

	// Get fetches the record. Unknown ids yield ErrSessionNotFound.
	Get(ctx context.Context, id string) (*Session, error)

	// Set upserts the record under its identifier.
	Set(ctx context.Context, sess *Session) error

	// Delete removes the record. Deleting an absent id succeeds.
	Delete(ctx context.Context, id string) error
}

// Lister is an optional capability for stores that can enumerate their
// identifiers. Manager.Flush requires it; all stores shipped with this
// package implement it.
type Lister interface {
	IDs(ctx context.Context) ([]string, error)
}
