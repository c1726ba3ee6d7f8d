package session

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStorage(t *testing.T) *RedisStorage {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStorage(client, "test")
}

func TestRedisStorageLoginRoundTrip(t *testing.T) {
	ctx := context.Background()
	storage := newRedisStorage(t)

	identity := &Identity{ID: 1, Username: "emilys", FirstName: "Emily"}
	require.NoError(t, storage.SaveLogin(ctx, identity, "tok-123", "ref-456"))

	got, err := storage.Identity(ctx)
	require.NoError(t, err)
	assert.Equal(t, identity, got)

	token, err := storage.AccessToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)

	refresh, err := storage.RefreshToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ref-456", refresh)
}

func TestRedisStorageEmpty(t *testing.T) {
	ctx := context.Background()
	storage := newRedisStorage(t)

	identity, err := storage.Identity(ctx)
	require.NoError(t, err)
	assert.Nil(t, identity)

	token, err := storage.AccessToken(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestRedisStorageSaveProfileKeepsRefreshToken(t *testing.T) {
	ctx := context.Background()
	storage := newRedisStorage(t)

	require.NoError(t, storage.SaveLogin(ctx, &Identity{ID: 1}, "tok-old", "ref-456"))
	require.NoError(t, storage.SaveProfile(ctx, &Identity{ID: 1, FirstName: "Emily"}, "tok-new"))

	token, err := storage.AccessToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-new", token)

	refresh, err := storage.RefreshToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ref-456", refresh)
}

func TestRedisStorageClearDropsAllThreeKeys(t *testing.T) {
	ctx := context.Background()
	storage := newRedisStorage(t)

	require.NoError(t, storage.SaveLogin(ctx, &Identity{ID: 1}, "tok-123", "ref-456"))
	require.NoError(t, storage.Clear(ctx))

	identity, err := storage.Identity(ctx)
	require.NoError(t, err)
	assert.Nil(t, identity)

	token, err := storage.AccessToken(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	refresh, err := storage.RefreshToken(ctx)
	require.NoError(t, err)
	assert.Empty(t, refresh)
}

func TestRedisStorageRejectsPartialLogin(t *testing.T) {
	ctx := context.Background()
	storage := newRedisStorage(t)

	assert.Error(t, storage.SaveLogin(ctx, nil, "tok", "ref"))
	assert.Error(t, storage.SaveLogin(ctx, &Identity{ID: 1}, "", "ref"))
}

func TestRedisStorageNamespacesAreIsolated(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	a := NewRedisStorage(client, "a")
	b := NewRedisStorage(client, "b")

	require.NoError(t, a.SaveLogin(ctx, &Identity{ID: 1}, "tok-a", "ref-a"))

	token, err := b.AccessToken(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}
