package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kitsession/kitsession/pkg/cookie"
	"github.com/kitsession/kitsession/pkg/sid"
)

// Manager orchestrates the session lifecycle: identifier negotiation,
// record creation, expiry, destruction and flushing. It owns the current
// Store, the Transport and the expiry Scheduler. Construct one at process
// startup and share it; all methods are safe for concurrent use.
type Manager struct {
	mu     sync.RWMutex // guards store and config.Duration
	store  Store
	config Config

	transport  Transport
	sched      Scheduler
	genID      func() string
	log        *slog.Logger
	cookieOpts []cookie.Option

	flushing atomic.Bool
}

// New creates a new session manager with the given options
func New(opts ...Option) *Manager {
	m := &Manager{
		config: DefaultConfig(),
		genID:  sid.New,
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.store == nil {
		m.store = NewMemoryStore()
	}
	if m.transport == nil {
		m.transport = NewCookieTransport(m.config.CookieName, m.cookieOpts...)
	}
	if m.sched == nil {
		m.sched = NewTimerScheduler()
	}
	if m.log == nil {
		m.log = slog.Default()
	}

	return m
}

// Start resolves the session for an incoming request, creating one when
// needed. The presented identifier (if any) is read through the
// transport; with no identifier a fresh one is minted, probing the store
// until an unused value comes up. A presented identifier that maps to a
// live record returns that record with its data intact; one that maps to
// an expired record gets the stale record destroyed and a brand-new
// record under a fresh identifier — expired data never surfaces. A
// presented identifier unknown to the store is adopted for the new
// record as-is.
//
// Start only fails when a storage operation fails.
func (m *Manager) Start(ctx context.Context, r *http.Request) (*Session, error) {
	store := m.Store()

	id, err := m.transport.GetToken(r)
	if err != nil {
		id = ""
	}

	if id != "" {
		has, err := store.Has(ctx, id)
		if err != nil {
			return nil, err
		}
		if has {
			sess, err := store.Get(ctx, id)
			switch {
			case err == nil:
				sess.bind(m)
				if !sess.IsExpired() {
					m.armExpiry(sess)
					return sess, nil
				}
				// Expired record presented: remove it and fall through to
				// creation under a fresh identifier.
				if err := sess.Destroy(ctx); err != nil {
					return nil, err
				}
				id = ""
			case errors.Is(err, ErrSessionNotFound):
				// Deleted between Has and Get; treat the id as unknown.
			default:
				return nil, err
			}
		}
	}

	if id == "" {
		var err error
		if id, err = m.mint(ctx, store); err != nil {
			return nil, err
		}
	}

	sess := NewSession(id, m.Duration())
	sess.bind(m)
	if err := store.Set(ctx, sess); err != nil {
		return nil, err
	}
	m.armExpiry(sess)
	return sess, nil
}

// Destroy removes the record stored under id. Unknown identifiers yield
// ErrSessionNotFound. Known records go through the same idempotent,
// single-delete state machine as Session.Destroy.
func (m *Manager) Destroy(ctx context.Context, id string) error {
	sess, err := m.Store().Get(ctx, id)
	if err != nil {
		return err
	}
	sess.bind(m)
	return sess.Destroy(ctx)
}

// Flush sweeps the store and removes every record whose time-to-live has
// run out. A Flush arriving while a previous one is still running is
// silently dropped, not queued; periodic re-invocation by an external
// scheduler is the intended usage and tolerates occasional skips.
//
// The scan and the deletes are two distinct phases: invalid identifiers
// are collected first, then deleted concurrently. A record re-created
// under a collected identifier between the phases can be lost; that race
// is accepted. Per-record delete failures are logged and swallowed.
func (m *Manager) Flush(ctx context.Context) {
	if !m.flushing.CompareAndSwap(false, true) {
		return
	}
	defer m.flushing.Store(false)

	store := m.Store()
	lister, ok := store.(Lister)
	if !ok {
		m.log.Warn("session: flush skipped, store cannot enumerate ids")
		return
	}

	ids, err := lister.IDs(ctx)
	if err != nil {
		m.log.Error("session: flush scan failed", slog.Any("error", err))
		return
	}

	stale := make([]string, 0, len(ids))
	for _, id := range ids {
		valid, err := store.IsValid(ctx, id)
		if err != nil {
			m.log.Error("session: flush validity check failed",
				slog.String("session_id", id), slog.Any("error", err))
			continue
		}
		if !valid {
			stale = append(stale, id)
		}
	}

	var g errgroup.Group
	for _, id := range stale {
		id := id
		g.Go(func() error {
			if err := store.Delete(ctx, id); err != nil {
				m.log.Error("session: flush delete failed",
					slog.String("session_id", id), slog.Any("error", err))
				return nil
			}
			m.sched.Cancel(id)
			return nil
		})
	}
	_ = g.Wait()
}

// Write emits the session cookie for sess into a pending response.
// Headers set by the caller are preserved; only the Set-Cookie entry is
// appended.
func (m *Manager) Write(w http.ResponseWriter, sess *Session) error {
	return m.transport.SetToken(w, sess.ID, sess.ExpiresAt)
}

// Clear instructs the client to drop its session cookie without touching
// the stored record.
func (m *Manager) Clear(w http.ResponseWriter) error {
	return m.transport.ClearToken(w)
}

// SetStore swaps the storage backend. Records resolved before the swap
// keep operating against the store that is current at the time of each
// call.
func (m *Manager) SetStore(store Store) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store = store
}

// Store returns the currently installed storage backend.
func (m *Manager) Store() Store {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store
}

// SetDuration updates the default lifetime used for subsequently created
// records. Existing records keep their already-computed expiry.
func (m *Manager) SetDuration(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.config.Duration = d
}

// Duration returns the lifetime applied to newly created records.
func (m *Manager) Duration() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config.Duration
}

// Close stops all outstanding expiry timers. Stored records are left in
// place.
func (m *Manager) Close() error {
	m.sched.Stop()
	return nil
}

// mint generates identifiers until one unknown to the store comes up.
// There is no retry cap: collisions are improbable enough that the loop
// is bounded in practice, and only a storage failure surfaces.
func (m *Manager) mint(ctx context.Context, store Store) (string, error) {
	for {
		id := m.genID()
		exists, err := store.Exists(ctx, id)
		if err != nil {
			return "", err
		}
		if !exists {
			return id, nil
		}
	}
}

// armExpiry schedules a single-shot destroy at the record's expiry and
// wires an OnDestroy hook that cancels the timer when the record goes
// away through another path, so no timer fires on a gone record.
func (m *Manager) armExpiry(sess *Session) {
	if !m.config.AutoExpire {
		return
	}
	if !sess.tryArm() {
		return
	}
	id := sess.ID
	m.sched.Schedule(id, sess.Remaining(), func() {
		if err := sess.Destroy(context.Background()); err != nil {
			m.log.Error("session: auto-expire destroy failed",
				slog.String("session_id", id), slog.Any("error", err))
		}
	})
	sess.OnDestroy(func() { m.sched.Cancel(id) })
}
