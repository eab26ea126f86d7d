package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStateStore_TakeConsumes(t *testing.T) {
	store := NewMemoryStateStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "session-a", "state-1", time.Minute))

	state, err := store.Take(ctx, "session-a")
	require.NoError(t, err)
	assert.Equal(t, "state-1", state)

	state, err = store.Take(ctx, "session-a")
	require.NoError(t, err)
	assert.Empty(t, state, "a state can only be redeemed once")
}

func TestMemoryStateStore_SessionsAreIsolated(t *testing.T) {
	store := NewMemoryStateStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "session-a", "state-a", time.Minute))
	require.NoError(t, store.Save(ctx, "session-b", "state-b", time.Minute))

	state, _ := store.Take(ctx, "session-b")
	assert.Equal(t, "state-b", state)
	state, _ = store.Take(ctx, "session-a")
	assert.Equal(t, "state-a", state)
	state, _ = store.Take(ctx, "unknown")
	assert.Empty(t, state)
}

func TestMemoryStateStore_SecondAttemptOverwrites(t *testing.T) {
	store := NewMemoryStateStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "session-a", "first", time.Minute))
	require.NoError(t, store.Save(ctx, "session-a", "second", time.Minute))

	state, _ := store.Take(ctx, "session-a")
	assert.Equal(t, "second", state)
}

func TestMemoryStateStore_Expiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store := NewMemoryStateStore()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "session-a", "state-1", 10*time.Minute))
	now = now.Add(11 * time.Minute)

	state, err := store.Take(ctx, "session-a")
	require.NoError(t, err)
	assert.Empty(t, state)
}

func TestMemoryStateStore_ZeroTTLNeverExpires(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store := NewMemoryStateStore()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "session-a", "state-1", 0))
	now = now.Add(24 * time.Hour)
	// Saving another session prunes expired entries; this one must survive.
	require.NoError(t, store.Save(ctx, "session-b", "state-2", time.Minute))

	state, err := store.Take(ctx, "session-a")
	require.NoError(t, err)
	assert.Equal(t, "state-1", state)
}
