package session

import (
	"net/http"
	"time"
)

// Transport defines how session identifiers travel between client and
// server. It is the narrow seam to the hosting framework: reading the
// presented identifier from a request and injecting the outgoing one into
// a response.
type Transport interface {
	// GetToken extracts the session identifier from the request
	GetToken(r *http.Request) (string, error)

	// SetToken sends the session identifier in the response, valid until
	// expiresAt
	SetToken(w http.ResponseWriter, id string, expiresAt time.Time) error

	// ClearToken removes the session identifier from the response
	ClearToken(w http.ResponseWriter) error
}
