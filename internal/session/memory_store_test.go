package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_CreateAndGet(t *testing.T) {
	store := NewMemoryStore(1 * time.Hour)
	ctx := context.Background()

	sess, err := store.Create(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, sess)

	assert.Len(t, sess.Token, TokenBytes*2)
	assert.Equal(t, uint(42), sess.UserID)
	assert.True(t, sess.ExpiresAt.After(time.Now()))

	found, err := store.Get(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.UserID, found.UserID)
	assert.Equal(t, sess.Token, found.Token)
}

func TestMemoryStore_UnknownToken(t *testing.T) {
	store := NewMemoryStore(1 * time.Hour)

	found, err := store.Get(context.Background(), "no-such-token")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Nil(t, found)
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore(1 * time.Hour)
	ctx := context.Background()

	sess, err := store.Create(ctx, 1)
	require.NoError(t, err)

	// Move the clock one hour forward; the session must stop resolving
	// from that instant.
	store.now = func() time.Time { return time.Now().Add(1 * time.Hour) }

	found, err := store.Get(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Nil(t, found)
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore(1 * time.Hour)
	ctx := context.Background()

	sess, err := store.Create(ctx, 1)
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, sess.Token))

	_, err = store.Get(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// Deleting again is not an error.
	assert.NoError(t, store.Delete(ctx, sess.Token))
	assert.NoError(t, store.Delete(ctx, "never-existed"))
}

func TestMemoryStore_TokensAreUnique(t *testing.T) {
	store := NewMemoryStore(1 * time.Hour)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		sess, err := store.Create(ctx, uint(i))
		require.NoError(t, err)
		assert.False(t, seen[sess.Token])
		seen[sess.Token] = true
	}
}

func TestMemoryStore_PurgeExpired(t *testing.T) {
	store := NewMemoryStore(1 * time.Hour)
	ctx := context.Background()

	live, err := store.Create(ctx, 1)
	require.NoError(t, err)

	expired, err := store.Create(ctx, 2)
	require.NoError(t, err)

	// Backdate the second session past its TTL.
	store.mu.Lock()
	sess := store.sessions[expired.Token]
	sess.ExpiresAt = time.Now().Add(-1 * time.Minute)
	store.sessions[expired.Token] = sess
	store.mu.Unlock()

	assert.Equal(t, 1, store.PurgeExpired())

	_, err = store.Get(ctx, live.Token)
	assert.NoError(t, err)
	_, err = store.Get(ctx, expired.Token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
