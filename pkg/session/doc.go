// Package session maps an opaque cookie-delivered identifier to a mutable
// per-client key-value record, managing creation, fixed absolute expiry,
// idempotent destruction and periodic flushing of abandoned records behind
// a pluggable storage contract.
//
// The package is storage-agnostic: any backend satisfying the Store
// interface can be plugged in and swapped at runtime. A concurrent
// in-memory store ships as the default, alongside Redis and Postgres
// implementations. Identifiers travel through the Transport interface,
// with cookie, header and composite implementations provided.
//
// # Architecture
//
// A Manager orchestrates the lifecycle. On each request it resolves the
// presented identifier through the Transport — or mints a fresh one,
// probing the Store until an unused value comes up — and returns the
// matching record, creating it when needed. A Scheduler owned by the
// Manager arms one single-shot timer per record that destroys it at
// expiry; the timer is cancelled whenever the record is destroyed through
// another path.
//
//	┌────────┐  identifier  ┌───────────┐
//	│ Client │ ───────────► │ Transport │ (cookie, header, …)
//	└────────┘              └───────────┘
//	       ▲                      │
//	       │                      ▼
//	┌──────────────────────────────────┐     ┌───────────┐
//	│             Manager              │ ──► │ Scheduler │
//	└──────────────────────────────────┘     └───────────┘
//	       │  Exists / IsValid / Has
//	       │  Get / Set / Delete
//	       ▼
//	┌────────┐
//	│ Store  │ (memory, redis, postgres, …)
//	└────────┘
//
// # Lifecycle
//
// Expiry is absolute: a record expires at CreatedAt plus the configured
// duration no matter how active the client is. Destruction is idempotent
// and deduplicated — concurrent Destroy calls on one record share a
// single storage delete and observe the same outcome. Flush sweeps the
// store for records whose time-to-live ran out; overlapping sweeps are
// dropped, not queued, so drive it from any periodic trigger without
// worrying about pile-up.
//
// # Usage
//
//	manager := session.New(
//	    session.WithDuration(30 * time.Minute),
//	)
//	defer manager.Close()
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    sess, err := manager.Start(r.Context(), r)
//	    if err != nil {
//	        http.Error(w, "session unavailable", http.StatusInternalServerError)
//	        return
//	    }
//	    sess.Set("views", 1)
//	    _ = sess.WriteCookie(w)
//	}
//
// Redis-backed sessions:
//
//	client, err := session.ConnectRedis(ctx, session.RedisConfig{
//	    ConnectionURL: "redis://localhost:6379/0",
//	    RetryAttempts: 3,
//	    RetryInterval: time.Second,
//	    ConnectTimeout: 10 * time.Second,
//	})
//	manager := session.New(session.WithStore(session.NewRedisStore(client)))
//
// Or wire everything through Middleware and read the record from the
// request context with FromContext.
//
// # Configuration
//
// Knobs are exposed as Option functions or a Config struct whose fields
// carry env tags for twelve-factor deployments (see NewFromConfig and the
// config package).
//
// # Security
//
// The identifier is an opaque random token trusted only insofar as the
// store recognizes it; there is no signing or encryption. The default
// cookie sets no HttpOnly, Secure or SameSite attributes — production
// deployments should add them via WithCookieOptions.
//
// # Error Handling
//
// Common error values returned by the package:
//
//   - ErrSessionNotFound – no record under the identifier
//   - ErrInvalidSession  – nil record or empty identifier passed to a store
//   - ErrNotManaged      – record was never bound to a Manager
//
// Fallible paths short-circuit on the first storage failure with no
// partial mutation; Flush alone swallows per-record delete failures and
// logs them.
package session
