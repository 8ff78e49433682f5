package session

import (
	"net/http"
	"strings"
	"time"
)

// HeaderTransport carries the session identifier in an HTTP header,
// useful for API clients that do not keep a cookie jar.
type HeaderTransport struct {
	headerName string
	prefix     string
}

// HeaderOption is a functional option for HeaderTransport
type HeaderOption func(*HeaderTransport)

// WithHeaderPrefix sets a value prefix, e.g. "Bearer "
func WithHeaderPrefix(prefix string) HeaderOption {
	return func(t *HeaderTransport) {
		t.prefix = prefix
	}
}

// NewHeaderTransport creates a header-based transport. No value prefix is
// applied by default.
func NewHeaderTransport(headerName string, opts ...HeaderOption) *HeaderTransport {
	t := &HeaderTransport{headerName: headerName}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// GetToken extracts the session identifier from the request header.
func (t *HeaderTransport) GetToken(r *http.Request) (string, error) {
	value := r.Header.Get(t.headerName)
	if value == "" {
		return "", ErrSessionNotFound
	}
	if t.prefix != "" {
		value = strings.TrimPrefix(value, t.prefix)
	}
	return value, nil
}

// SetToken sends the session identifier in the response header, with the
// absolute expiry in a companion "-Expires" header.
func (t *HeaderTransport) SetToken(w http.ResponseWriter, id string, expiresAt time.Time) error {
	w.Header().Set(t.headerName, t.prefix+id)
	w.Header().Set(t.headerName+"-Expires", expiresAt.UTC().Format(time.RFC3339))
	return nil
}

// ClearToken removes the session headers from the response.
func (t *HeaderTransport) ClearToken(w http.ResponseWriter) error {
	w.Header().Del(t.headerName)
	w.Header().Del(t.headerName + "-Expires")
	return nil
}
