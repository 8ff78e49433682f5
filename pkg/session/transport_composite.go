package session

import (
	"net/http"
	"time"
)

// CompositeTransport reads the identifier from the first transport that
// yields one and writes it through all of them. Typical use is cookie
// plus header, serving browsers and API clients from the same manager.
type CompositeTransport struct {
	transports []Transport
}

// NewCompositeTransport creates a composite over the given transports, in
// read-priority order.
func NewCompositeTransport(transports ...Transport) *CompositeTransport {
	return &CompositeTransport{transports: transports}
}

// GetToken extracts the session identifier from the first transport that
// finds one.
func (t *CompositeTransport) GetToken(r *http.Request) (string, error) {
	for _, transport := range t.transports {
		id, err := transport.GetToken(r)
		if err == nil && id != "" {
			return id, nil
		}
	}
	return "", ErrSessionNotFound
}

// SetToken sends the session identifier through every transport.
func (t *CompositeTransport) SetToken(w http.ResponseWriter, id string, expiresAt time.Time) error {
	var lastErr error
	for _, transport := range t.transports {
		if err := transport.SetToken(w, id, expiresAt); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

// ClearToken removes the session identifier from every transport.
func (t *CompositeTransport) ClearToken(w http.ResponseWriter) error {
	var lastErr error
	for _, transport := range t.transports {
		if err := transport.ClearToken(w); err != nil {
			lastErr = err
		}
	}
	return lastErr
}
