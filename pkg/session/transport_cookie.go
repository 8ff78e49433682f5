package session

import (
	"net/http"
	"net/url"
	"time"

	"github.com/kitsession/kitsession/pkg/cookie"
)

// CookieTransport carries the session identifier in a plain cookie:
//
//	KITSESSID=<url-encoded id>; Expires=<expiry, RFC 1123 UTC>; Path=/
//
// No HttpOnly, Secure or SameSite attributes are set unless passed as
// options; harden production deployments with cookie.WithHTTPOnly,
// cookie.WithSecure and cookie.WithSameSite.
type CookieTransport struct {
	name string
	opts []cookie.Option
}

// NewCookieTransport creates a cookie-based transport for the named
// session cookie.
func NewCookieTransport(name string, opts ...cookie.Option) *CookieTransport {
	return &CookieTransport{
		name: name,
		opts: opts,
	}
}

// GetToken extracts the session identifier from the cookie.
func (t *CookieTransport) GetToken(r *http.Request) (string, error) {
	raw, err := cookie.Get(r, t.name)
	if err != nil {
		return "", ErrSessionNotFound
	}
	id, err := url.QueryUnescape(raw)
	if err != nil || id == "" {
		return "", ErrSessionNotFound
	}
	return id, nil
}

// SetToken stores the session identifier in a cookie expiring at the
// record's absolute expiry.
func (t *CookieTransport) SetToken(w http.ResponseWriter, id string, expiresAt time.Time) error {
	// Caller options first; the path and the record's absolute expiry are
	// owned by the transport and always win.
	opts := append([]cookie.Option{}, t.opts...)
	opts = append(opts,
		cookie.WithPath("/"),
		cookie.WithExpires(expiresAt.UTC()),
	)

	cookie.Set(w, t.name, url.QueryEscape(id), opts...)
	return nil
}

// ClearToken removes the session cookie.
func (t *CookieTransport) ClearToken(w http.ResponseWriter) error {
	cookie.Delete(w, t.name, t.opts...)
	return nil
}
