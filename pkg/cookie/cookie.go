package cookie

import (
	"errors"
	"net/http"
	"time"
)

// defaults apply when a call passes no overriding options. Only the path is
// scoped; security attributes are left to the caller.
var defaults = Options{
	Path: "/",
}

// Set writes a cookie to the response. Options override the package
// defaults for this call only.
func Set(w http.ResponseWriter, name, value string, opts ...Option) {
	options := applyOptions(defaults, opts)

	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     options.Path,
		Domain:   options.Domain,
		MaxAge:   options.MaxAge,
		Expires:  options.Expires,
		Secure:   options.Secure,
		HttpOnly: options.HttpOnly,
		SameSite: options.SameSite,
	})
}

// Get reads a named cookie from the request. Returns ErrCookieNotFound if
// the cookie is absent.
func Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrCookieNotFound
		}
		return "", err
	}
	return c.Value, nil
}

// Delete instructs the client to drop the named cookie by expiring it in
// the past. The same path/domain options used on Set must be passed here
// for the browser to match the cookie.
func Delete(w http.ResponseWriter, name string, opts ...Option) {
	options := applyOptions(defaults, opts)

	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     options.Path,
		Domain:   options.Domain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   options.Secure,
		HttpOnly: options.HttpOnly,
		SameSite: options.SameSite,
	})
}
