package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitsession/kitsession/pkg/session"
)

func setupRedisStore(t *testing.T, opts ...session.RedisOption) (*session.RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return session.NewRedisStore(client, opts...), mr
}

func TestRedisStore_RoundTrip(t *testing.T) {
	store, _ := setupRedisStore(t)
	ctx := context.Background()

	sess := session.NewSession("id-1", time.Hour)
	sess.Set("user", "alice")
	sess.Set("count", 3)
	require.NoError(t, store.Set(ctx, sess))

	got, err := store.Get(ctx, "id-1")
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)
	assert.True(t, sess.CreatedAt.Equal(got.CreatedAt))
	assert.True(t, sess.ExpiresAt.Equal(got.ExpiresAt))

	user, _ := got.GetString("user")
	assert.Equal(t, "alice", user)
	count, _ := got.GetInt("count")
	assert.Equal(t, 3, count)
}

func TestRedisStore_SnapshotSemantics(t *testing.T) {
	store, _ := setupRedisStore(t)
	ctx := context.Background()

	sess := session.NewSession("id-1", time.Hour)
	require.NoError(t, store.Set(ctx, sess))

	// Mutations after Set are not persisted until the next Set.
	sess.Set("late", true)
	got, err := store.Get(ctx, "id-1")
	require.NoError(t, err)
	_, ok := got.Get("late")
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, sess))
	got, err = store.Get(ctx, "id-1")
	require.NoError(t, err)
	_, ok = got.Get("late")
	assert.True(t, ok)
}

func TestRedisStore_Get(t *testing.T) {
	store, _ := setupRedisStore(t)

	_, err := store.Get(context.Background(), "unknown")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestRedisStore_Validity(t *testing.T) {
	store, mr := setupRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, session.NewSession("id-1", time.Hour)))

	valid, err := store.IsValid(ctx, "id-1")
	require.NoError(t, err)
	assert.True(t, valid)

	exists, err := store.Exists(ctx, "id-1")
	require.NoError(t, err)
	assert.True(t, exists)

	// Redis drops the key at expiry, so existence and validity go false
	// together for this backend.
	mr.FastForward(2 * time.Hour)

	valid, err = store.IsValid(ctx, "id-1")
	require.NoError(t, err)
	assert.False(t, valid)

	exists, err = store.Exists(ctx, "id-1")
	require.NoError(t, err)
	assert.False(t, exists)

	valid, err = store.IsValid(ctx, "never-there")
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestRedisStore_IsValid_NoExpiry(t *testing.T) {
	store, mr := setupRedisStore(t)
	ctx := context.Background()

	// A key in the namespace written without a TTL never expires; it must
	// count as valid, not get swept by Flush.
	require.NoError(t, mr.Set("session:ext", "{}"))

	valid, err := store.IsValid(ctx, "ext")
	require.NoError(t, err)
	assert.True(t, valid)

	exists, err := store.Exists(ctx, "ext")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRedisStore_Delete(t *testing.T) {
	store, _ := setupRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, session.NewSession("id-1", time.Hour)))
	require.NoError(t, store.Delete(ctx, "id-1"))

	exists, err := store.Exists(ctx, "id-1")
	require.NoError(t, err)
	assert.False(t, exists)

	assert.NoError(t, store.Delete(ctx, "id-1"))
}

func TestRedisStore_IDs(t *testing.T) {
	store, mr := setupRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, session.NewSession("a", time.Hour)))
	require.NoError(t, store.Set(ctx, session.NewSession("b", time.Hour)))

	// Keys outside the namespace are invisible to the store.
	mr.Set("unrelated", "x")

	ids, err := store.IDs(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, ids)
}

func TestRedisStore_KeyPrefix(t *testing.T) {
	store, mr := setupRedisStore(t, session.WithKeyPrefix("custom:"))
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, session.NewSession("id-1", time.Hour)))
	assert.True(t, mr.Exists("custom:id-1"))

	ids, err := store.IDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"id-1"}, ids)
}

func TestRedisStore_ManagerFlush(t *testing.T) {
	store, mr := setupRedisStore(t)
	ctx := context.Background()
	m := session.New(session.WithStore(store), session.WithAutoExpire(false))

	require.NoError(t, store.Set(ctx, session.NewSession("live", time.Hour)))
	require.NoError(t, store.Set(ctx, session.NewSession("dying", time.Minute)))

	mr.FastForward(10 * time.Minute)
	m.Flush(ctx)

	exists, err := store.Exists(ctx, "live")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = store.Exists(ctx, "dying")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestConnectRedis(t *testing.T) {
	t.Run("bad url", func(t *testing.T) {
		_, err := session.ConnectRedis(context.Background(), session.RedisConfig{
			ConnectionURL:  "not-a-url",
			RetryAttempts:  1,
			RetryInterval:  time.Millisecond,
			ConnectTimeout: time.Second,
		})
		assert.ErrorIs(t, err, session.ErrBadRedisURL)
	})

	t.Run("connects", func(t *testing.T) {
		mr := miniredis.RunT(t)
		client, err := session.ConnectRedis(context.Background(), session.RedisConfig{
			ConnectionURL:  "redis://" + mr.Addr(),
			RetryAttempts:  3,
			RetryInterval:  10 * time.Millisecond,
			ConnectTimeout: time.Second,
		})
		require.NoError(t, err)
		t.Cleanup(func() { _ = client.Close() })
		assert.NoError(t, client.Ping(context.Background()).Err())
	})

	t.Run("unreachable server", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		_, err := session.ConnectRedis(context.Background(), session.RedisConfig{
			ConnectionURL:  "redis://" + addr,
			RetryAttempts:  2,
			RetryInterval:  time.Millisecond,
			ConnectTimeout: time.Second,
		})
		assert.ErrorIs(t, err, session.ErrRedisNotReady)
	})
}
