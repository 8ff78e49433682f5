package session

import (
	"net/http"
)

// Middleware resolves or creates the session for every request, writes
// the session cookie, and exposes the record to downstream handlers via
// the request context.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := m.Start(r.Context(), r)
		if err != nil {
			http.Error(w, "Session error", http.StatusInternalServerError)
			return
		}

		if err := m.Write(w, sess); err != nil {
			http.Error(w, "Session error", http.StatusInternalServerError)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
	})
}
