package session

import (
	"log/slog"
	"time"

	"github.com/kitsession/kitsession/pkg/cookie"
)

// Option is a functional option for configuring the Manager
type Option func(*Manager)

// WithStore sets the initial session store
func WithStore(store Store) Option {
	return func(m *Manager) {
		m.store = store
	}
}

// WithTransport sets a custom session transport
func WithTransport(transport Transport) Option {
	return func(m *Manager) {
		m.transport = transport
	}
}

// WithConfig sets custom configuration
func WithConfig(config Config) Option {
	return func(m *Manager) {
		m.config = config
	}
}

// WithCookieName sets the session cookie name
func WithCookieName(name string) Option {
	return func(m *Manager) {
		m.config.CookieName = name
	}
}

// WithDuration sets the fixed lifetime for newly created records
func WithDuration(d time.Duration) Option {
	return func(m *Manager) {
		m.config.Duration = d
	}
}

// WithAutoExpire toggles the per-record expiry timer
func WithAutoExpire(enabled bool) Option {
	return func(m *Manager) {
		m.config.AutoExpire = enabled
	}
}

// WithScheduler sets the scheduler used for expiry timers
func WithScheduler(sched Scheduler) Option {
	return func(m *Manager) {
		m.sched = sched
	}
}

// WithIDGenerator sets the identifier generator used when minting new
// session identifiers
func WithIDGenerator(fn func() string) Option {
	return func(m *Manager) {
		m.genID = fn
	}
}

// WithLogger sets the logger for best-effort paths (flush sweeps, timer
// fired destroys)
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		m.log = log
	}
}

// WithCookieOptions passes extra cookie attributes (HttpOnly, Secure,
// SameSite, Domain) to the default cookie transport
func WithCookieOptions(opts ...cookie.Option) Option {
	return func(m *Manager) {
		m.cookieOpts = opts
	}
}
