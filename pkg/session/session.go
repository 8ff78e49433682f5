package session

import (
	"context"
	"encoding/json"
	"maps"
	"net/http"
	"sync"
	"time"
)

// Session is a per-client server-side record keyed by an opaque
// identifier. Identity and timestamps are fixed at creation; only the
// data bag mutates. Expiry is absolute: the record expires at
// CreatedAt + duration regardless of activity.
type Session struct {
	ID        string
	CreatedAt time.Time
	ExpiresAt time.Time

	dataMu sync.RWMutex
	data   map[string]any

	// destroyMu also guards the manager binding, hook list and timer
	// state.
	destroyMu sync.Mutex
	destroyed bool
	pending   *destroyOutcome
	hooks     []func()
	armed     bool
	mgr       *Manager
}

// destroyOutcome is the completion signal shared by concurrent Destroy
// callers: whoever arrives first performs the storage delete, everyone
// else waits on done and reads the same err.
type destroyOutcome struct {
	done chan struct{}
	err  error
}

// NewSession creates a record expiring ttl from now. Timestamps are
// truncated to whole seconds so that RemainingSeconds on a fresh record
// equals the configured duration exactly.
func NewSession(id string, ttl time.Duration) *Session {
	now := time.Now().Truncate(time.Second)
	return &Session{
		ID:        id,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
		data:      make(map[string]any),
	}
}

// restoreSession rebuilds a record from its persisted parts. Used by
// serializing stores.
func restoreSession(id string, data map[string]any, createdAt, expiresAt time.Time) *Session {
	if data == nil {
		data = make(map[string]any)
	}
	return &Session{
		ID:        id,
		CreatedAt: createdAt,
		ExpiresAt: expiresAt,
		data:      data,
	}
}

// Remaining returns the time left until expiry, clamped at zero.
func (s *Session) Remaining() time.Duration {
	if d := time.Until(s.ExpiresAt); d > 0 {
		return d
	}
	return 0
}

// RemainingSeconds returns the whole seconds left until expiry. It never
// goes negative, no matter how long ago the record expired.
func (s *Session) RemainingSeconds() int64 {
	if rem := s.ExpiresAt.Unix() - time.Now().Unix(); rem > 0 {
		return rem
	}
	return 0
}

// IsExpired reports whether the record's remaining time-to-live has
// reached zero.
func (s *Session) IsExpired() bool {
	return s.Remaining() <= 0
}

// Get retrieves a value from the data bag.
func (s *Session) Get(key string) (any, bool) {
	s.dataMu.RLock()
	defer s.dataMu.RUnlock()
	val, ok := s.data[key]
	return val, ok
}

// GetString retrieves a string value from the data bag.
func (s *Session) GetString(key string) (string, bool) {
	val, ok := s.Get(key)
	if !ok {
		return "", false
	}
	str, ok := val.(string)
	return str, ok
}

// GetInt retrieves an int value from the data bag. Numeric values that
// arrived through JSON deserialization are converted.
func (s *Session) GetInt(key string) (int, bool) {
	val, ok := s.Get(key)
	if !ok {
		return 0, false
	}
	switch v := val.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// GetBool retrieves a bool value from the data bag.
func (s *Session) GetBool(key string) (bool, bool) {
	val, ok := s.Get(key)
	if !ok {
		return false, false
	}
	b, ok := val.(bool)
	return b, ok
}

// Set stores a value in the data bag.
func (s *Session) Set(key string, value any) {
	s.dataMu.Lock()
	defer s.dataMu.Unlock()
	if s.data == nil {
		s.data = make(map[string]any)
	}
	s.data[key] = value
}

// Delete removes a value from the data bag.
func (s *Session) Delete(key string) {
	s.dataMu.Lock()
	defer s.dataMu.Unlock()
	delete(s.data, key)
}

// Clear removes all values from the data bag.
func (s *Session) Clear() {
	s.dataMu.Lock()
	defer s.dataMu.Unlock()
	s.data = make(map[string]any)
}

// Values returns a snapshot copy of the data bag.
func (s *Session) Values() map[string]any {
	s.dataMu.RLock()
	defer s.dataMu.RUnlock()
	snapshot := make(map[string]any, len(s.data))
	maps.Copy(snapshot, s.data)
	return snapshot
}

// Destroyed reports whether the record has been successfully destroyed.
// A destroyed record is gone from storage; the in-memory object remains a
// stale handle whose data bag stays readable.
func (s *Session) Destroyed() bool {
	s.destroyMu.Lock()
	defer s.destroyMu.Unlock()
	return s.destroyed
}

// Destroy removes the record from storage. It is idempotent: destroying
// an already-destroyed record succeeds immediately. Concurrent callers
// share a single physical delete — whoever arrives while a destroy is in
// flight waits for its completion and observes the same outcome.
//
// A failed delete is not retried: the record stays in the destroying
// state and later callers receive the original failure.
func (s *Session) Destroy(ctx context.Context) error {
	s.destroyMu.Lock()
	if s.destroyed {
		s.destroyMu.Unlock()
		return nil
	}
	if s.pending != nil {
		out := s.pending
		s.destroyMu.Unlock()
		select {
		case <-out.done:
			return out.err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if s.mgr == nil {
		s.destroyMu.Unlock()
		return ErrNotManaged
	}
	out := &destroyOutcome{done: make(chan struct{})}
	s.pending = out
	store := s.mgr.Store()
	s.destroyMu.Unlock()

	err := store.Delete(ctx, s.ID)

	var hooks []func()
	s.destroyMu.Lock()
	out.err = err
	if err == nil {
		s.destroyed = true
		hooks = s.hooks
		s.hooks = nil
	}
	s.destroyMu.Unlock()
	close(out.done)

	for _, fn := range hooks {
		fn()
	}
	return err
}

// OnDestroy registers fn to run once, synchronously, when the record is
// successfully destroyed through any path. Registering on an already
// destroyed record runs fn immediately.
func (s *Session) OnDestroy(fn func()) {
	s.destroyMu.Lock()
	if s.destroyed {
		s.destroyMu.Unlock()
		fn()
		return
	}
	s.hooks = append(s.hooks, fn)
	s.destroyMu.Unlock()
}

// WriteCookie injects the session cookie into a pending response through
// the owning Manager's transport. Headers already set by the caller are
// untouched; only the Set-Cookie entry is appended.
func (s *Session) WriteCookie(w http.ResponseWriter) error {
	s.destroyMu.Lock()
	mgr := s.mgr
	s.destroyMu.Unlock()
	if mgr == nil {
		return ErrNotManaged
	}
	return mgr.Write(w, s)
}

// bind attaches the record to its manager so Destroy and WriteCookie can
// reach the current store and transport.
func (s *Session) bind(m *Manager) {
	s.destroyMu.Lock()
	s.mgr = m
	s.destroyMu.Unlock()
}

// tryArm marks the record as having an expiry timer. Returns false if a
// timer was already armed on this object or the record is gone, so a
// record resolved on many requests is armed once.
func (s *Session) tryArm() bool {
	s.destroyMu.Lock()
	defer s.destroyMu.Unlock()
	if s.armed || s.destroyed {
		return false
	}
	s.armed = true
	return true
}

type sessionJSON struct {
	ID        string         `json:"id"`
	Data      map[string]any `json:"data,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	ExpiresAt time.Time      `json:"expires_at"`
}

// MarshalJSON serializes the persisted fields only; destroy state and
// manager binding are transient.
func (s *Session) MarshalJSON() ([]byte, error) {
	return json.Marshal(sessionJSON{
		ID:        s.ID,
		Data:      s.Values(),
		CreatedAt: s.CreatedAt,
		ExpiresAt: s.ExpiresAt,
	})
}

func (s *Session) UnmarshalJSON(b []byte) error {
	var dto sessionJSON
	if err := json.Unmarshal(b, &dto); err != nil {
		return err
	}
	restored := restoreSession(dto.ID, dto.Data, dto.CreatedAt, dto.ExpiresAt)
	s.ID = restored.ID
	s.CreatedAt = restored.CreatedAt
	s.ExpiresAt = restored.ExpiresAt
	s.dataMu.Lock()
	s.data = restored.data
	s.dataMu.Unlock()
	return nil
}
