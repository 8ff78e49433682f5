package session

import (
	"context"
	"sync"
)

// MemoryStore is the default Store: an in-process map from identifier to
// record. It holds live *Session pointers, so a record returned by
// Manager.Start and the stored record are the same object and data
// mutations persist without an explicit Set.
//
// Nothing is evicted on its own; abandoned records accumulate until a
// Flush sweep removes them. That unbounded growth is the reason Flush
// exists.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemoryStore creates an empty in-memory session store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Session)}
}

// Exists reports whether a record is registered under id, expired or not.
func (m *MemoryStore) Exists(ctx context.Context, id string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.sessions[id]
	return ok, nil
}

// IsValid reports whether a record exists under id with strictly positive
// remaining time-to-live. Unknown ids yield false, not an error.
func (m *MemoryStore) IsValid(ctx context.Context, id string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[id]
	if !ok {
		return false, nil
	}
	return sess.Remaining() > 0, nil
}

// Has coincides with Exists for the in-memory backend.
func (m *MemoryStore) Has(ctx context.Context, id string) (bool, error) {
	return m.Exists(ctx, id)
}

// Get returns the stored record. The pointer is shared, not copied.
func (m *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Set upserts the record under its identifier.
func (m *MemoryStore) Set(ctx context.Context, sess *Session) error {
	if sess == nil || sess.ID == "" {
		return ErrInvalidSession
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.ID] = sess
	return nil
}

// Delete removes the record. Absent ids succeed.
func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// IDs returns the identifiers of every stored record.
func (m *MemoryStore) IDs(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	return ids, nil
}

// Len returns the number of stored records, valid or not.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
