package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitsession/kitsession/pkg/session"
)

func TestHeaderTransport(t *testing.T) {
	transport := session.NewHeaderTransport("X-Session-ID")
	expires := time.Now().Add(time.Hour).UTC().Truncate(time.Second)

	t.Run("round trip", func(t *testing.T) {
		w := httptest.NewRecorder()
		require.NoError(t, transport.SetToken(w, "id-1", expires))
		assert.Equal(t, "id-1", w.Header().Get("X-Session-ID"))
		assert.Equal(t, expires.Format(time.RFC3339), w.Header().Get("X-Session-ID-Expires"))

		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("X-Session-ID", "id-1")
		id, err := transport.GetToken(r)
		require.NoError(t, err)
		assert.Equal(t, "id-1", id)
	})

	t.Run("missing header", func(t *testing.T) {
		_, err := transport.GetToken(httptest.NewRequest("GET", "/", nil))
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	})

	t.Run("prefix", func(t *testing.T) {
		bearer := session.NewHeaderTransport("Authorization", session.WithHeaderPrefix("Bearer "))

		w := httptest.NewRecorder()
		require.NoError(t, bearer.SetToken(w, "id-1", expires))
		assert.Equal(t, "Bearer id-1", w.Header().Get("Authorization"))

		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("Authorization", "Bearer id-1")
		id, err := bearer.GetToken(r)
		require.NoError(t, err)
		assert.Equal(t, "id-1", id)
	})

	t.Run("clear", func(t *testing.T) {
		w := httptest.NewRecorder()
		require.NoError(t, transport.SetToken(w, "id-1", expires))
		require.NoError(t, transport.ClearToken(w))
		assert.Empty(t, w.Header().Get("X-Session-ID"))
		assert.Empty(t, w.Header().Get("X-Session-ID-Expires"))
	})
}

func TestCompositeTransport(t *testing.T) {
	composite := session.NewCompositeTransport(
		session.NewCookieTransport("KITSESSID"),
		session.NewHeaderTransport("X-Session-ID"),
	)
	expires := time.Now().Add(time.Hour)

	t.Run("reads first match", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.AddCookie(&http.Cookie{Name: "KITSESSID", Value: "from-cookie"})
		r.Header.Set("X-Session-ID", "from-header")

		id, err := composite.GetToken(r)
		require.NoError(t, err)
		assert.Equal(t, "from-cookie", id)
	})

	t.Run("falls through to later transports", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("X-Session-ID", "from-header")

		id, err := composite.GetToken(r)
		require.NoError(t, err)
		assert.Equal(t, "from-header", id)
	})

	t.Run("nothing presented", func(t *testing.T) {
		_, err := composite.GetToken(httptest.NewRequest("GET", "/", nil))
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	})

	t.Run("writes through every transport", func(t *testing.T) {
		w := httptest.NewRecorder()
		require.NoError(t, composite.SetToken(w, "id-1", expires))

		assert.Len(t, w.Result().Cookies(), 1)
		assert.Equal(t, "id-1", w.Header().Get("X-Session-ID"))
	})
}
