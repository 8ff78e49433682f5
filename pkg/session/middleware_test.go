package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitsession/kitsession/pkg/session"
)

func TestMiddleware(t *testing.T) {
	m := session.New(session.WithDuration(time.Hour), session.WithAutoExpire(false))

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/hit", func(w http.ResponseWriter, req *http.Request) {
		sess := session.MustFromContext(req.Context())

		count, _ := sess.GetInt("hits")
		sess.Set("hits", count+1)

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(sess.ID))
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	t.Run("first request creates a session and sets the cookie", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/hit")
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		cookies := resp.Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "KITSESSID", cookies[0].Name)
	})

	t.Run("cookie round trip resolves the same session", func(t *testing.T) {
		resp1, err := http.Get(srv.URL + "/hit")
		require.NoError(t, err)
		body1 := readBody(t, resp1)

		req, err := http.NewRequest("GET", srv.URL+"/hit", nil)
		require.NoError(t, err)
		for _, c := range resp1.Cookies() {
			req.AddCookie(c)
		}

		resp2, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		body2 := readBody(t, resp2)

		assert.Equal(t, body1, body2, "both requests hit the same session")
	})

	t.Run("session data accumulates across requests", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/hit")
		require.NoError(t, err)
		readBody(t, resp)

		var sessCookie *http.Cookie
		for _, c := range resp.Cookies() {
			if c.Name == "KITSESSID" {
				sessCookie = c
			}
		}
		require.NotNil(t, sessCookie)

		for i := 0; i < 2; i++ {
			req, err := http.NewRequest("GET", srv.URL+"/hit", nil)
			require.NoError(t, err)
			req.AddCookie(sessCookie)
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			readBody(t, resp)
		}

		sess, err := m.Start(context.Background(), requestWithID("KITSESSID", sessCookie.Value))
		require.NoError(t, err)
		hits, _ := sess.GetInt("hits")
		assert.Equal(t, 3, hits)
	})
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	buf := make([]byte, 256)
	n, _ := resp.Body.Read(buf)
	return string(buf[:n])
}

func TestFromContext(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		sess := session.NewSession("id-1", time.Hour)
		ctx := session.WithSession(context.Background(), sess)

		got, ok := session.FromContext(ctx)
		require.True(t, ok)
		assert.Same(t, sess, got)
		assert.Same(t, sess, session.MustFromContext(ctx))
	})

	t.Run("absent", func(t *testing.T) {
		_, ok := session.FromContext(context.Background())
		assert.False(t, ok)
		assert.Panics(t, func() { session.MustFromContext(context.Background()) })
	})
}
