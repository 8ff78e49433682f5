package session

import "time"

// Config holds session manager configuration
type Config struct {
	// CookieName is the name of the session cookie (default: "KITSESSID")
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"KITSESSID"`

	// Duration is the fixed lifetime of newly created records; expiry is
	// absolute from creation, not extended by activity.
	Duration time.Duration `env:"SESSION_DURATION" envDefault:"24h"`

	// AutoExpire arms a per-record timer that destroys the record the
	// moment it expires. Disable to rely on Flush sweeps alone.
	AutoExpire bool `env:"SESSION_AUTO_EXPIRE" envDefault:"true"`
}

// DefaultConfig returns default session configuration
func DefaultConfig() Config {
	return Config{
		CookieName: "KITSESSID",
		Duration:   24 * time.Hour,
		AutoExpire: true,
	}
}

// NewFromConfig creates a new Manager from the provided Config. Extra
// options are applied after the config and may override it.
func NewFromConfig(cfg Config, opts ...Option) *Manager {
	configOpts := []Option{WithConfig(cfg)}
	configOpts = append(configOpts, opts...)
	return New(configOpts...)
}
