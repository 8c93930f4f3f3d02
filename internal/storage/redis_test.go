package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis server and returns a RedisStore on it
func setupTestRedis(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	store := NewRedisStore(client, "kashcart", ttl)
	t.Cleanup(func() { client.Close() })
	return store, mr
}

func TestRedisStore_Contract(t *testing.T) {
	store, _ := setupTestRedis(t, 0)
	runStoreContract(t, store)
}

func TestRedisStore_PrefixesKeys(t *testing.T) {
	store, mr := setupTestRedis(t, 0)
	require.NoError(t, store.Save(context.Background(), "dev:user", []byte(`{"id":"u1"}`)))

	raw, err := mr.Get("kashcart:dev:user")
	require.NoError(t, err)
	assert.Equal(t, `{"id":"u1"}`, raw)
	assert.Equal(t, time.Duration(0), mr.TTL("kashcart:dev:user"))
}

func TestRedisStore_TTLWithJitter(t *testing.T) {
	store, mr := setupTestRedis(t, time.Hour)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "dev:orders", []byte(`[]`)))

	ttl := mr.TTL("kashcart:dev:orders")
	assert.GreaterOrEqual(t, ttl, time.Hour)
	assert.LessOrEqual(t, ttl, time.Hour+6*time.Minute)

	mr.FastForward(2 * time.Hour)
	_, err := store.Load(ctx, "dev:orders")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_ServerDown(t *testing.T) {
	store, mr := setupTestRedis(t, 0)
	mr.Close()

	_, err := store.Load(context.Background(), "dev:user")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
