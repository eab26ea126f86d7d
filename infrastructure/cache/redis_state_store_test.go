package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*RedisStateStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStateStore(client), mr
}

func TestRedisStateStore_TakeConsumes(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "session-a", "state-1", time.Minute))
	assert.True(t, mr.Exists(stateKeyPrefix+"session-a"))

	state, err := store.Take(ctx, "session-a")
	require.NoError(t, err)
	assert.Equal(t, "state-1", state)
	assert.False(t, mr.Exists(stateKeyPrefix+"session-a"))

	state, err = store.Take(ctx, "session-a")
	require.NoError(t, err)
	assert.Empty(t, state, "a state can only be redeemed once")
}

func TestRedisStateStore_SessionsAreIsolated(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "session-a", "state-a", time.Minute))
	require.NoError(t, store.Save(ctx, "session-b", "state-b", time.Minute))

	state, _ := store.Take(ctx, "session-b")
	assert.Equal(t, "state-b", state)
	state, _ = store.Take(ctx, "session-a")
	assert.Equal(t, "state-a", state)
	state, err := store.Take(ctx, "unknown")
	require.NoError(t, err)
	assert.Empty(t, state)
}

func TestRedisStateStore_SecondAttemptOverwrites(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "session-a", "first", time.Minute))
	require.NoError(t, store.Save(ctx, "session-a", "second", time.Minute))

	state, _ := store.Take(ctx, "session-a")
	assert.Equal(t, "second", state)
}

func TestRedisStateStore_Expiry(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "session-a", "state-1", 10*time.Minute))
	assert.Equal(t, 10*time.Minute, mr.TTL(stateKeyPrefix+"session-a"))
	mr.FastForward(11 * time.Minute)

	state, err := store.Take(ctx, "session-a")
	require.NoError(t, err)
	assert.Empty(t, state)
}

func TestRedisStateStore_ZeroTTLNeverExpires(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "session-a", "state-1", 0))
	assert.Zero(t, mr.TTL(stateKeyPrefix+"session-a"))
	mr.FastForward(24 * time.Hour)

	state, err := store.Take(ctx, "session-a")
	require.NoError(t, err)
	assert.Equal(t, "state-1", state)
}

func TestRedisStateStore_ServerDown(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	store := NewRedisStateStore(client)
	mr.Close()

	_, err = store.Take(context.Background(), "session-a")
	assert.Error(t, err)
}

func TestNewRedisClient(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client, err := NewRedisClient(context.Background(), mr.Addr(), "", "", 0)
	require.NoError(t, err)
	_ = client.Close()

	addr := mr.Addr()
	mr.Close()
	_, err = NewRedisClient(context.Background(), addr, "", "", 0)
	assert.Error(t, err)
}
