// Package cookie provides small helpers for reading and writing plain HTTP
// cookies with a functional-options surface.
//
// The helpers carry no signing or encryption: values are written verbatim.
// They exist so that higher layers (notably the session transport) can set
// consistently scoped cookies without repeating attribute plumbing.
//
// # Usage
//
//	cookie.Set(w, "theme", "dark",
//	    cookie.WithMaxAge(3600),
//	    cookie.WithHTTPOnly(true),
//	)
//
//	value, err := cookie.Get(r, "theme")
//	if errors.Is(err, cookie.ErrCookieNotFound) {
//	    // no cookie presented
//	}
//
//	cookie.Delete(w, "theme")
//
// Defaults scope cookies to Path=/ and set no security attributes; callers
// opt in to HttpOnly, Secure and SameSite explicitly.
package cookie
