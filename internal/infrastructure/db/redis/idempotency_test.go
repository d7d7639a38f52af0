package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdempotencyKey_ScopedPerClient(t *testing.T) {
	assert.Equal(t, "idem:quote:c1:abc", idempotencyKey("c1", "abc"))
	assert.NotEqual(t, idempotencyKey("c1", "abc"), idempotencyKey("c2", "abc"))
}

func TestIdempotencyStore_UnreachableServerReturnsError(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	store := NewIdempotencyStore(client)

	reserved, id, err := store.Reserve(context.Background(), "c1", "k")
	require.Error(t, err)
	assert.False(t, reserved)
	assert.Empty(t, id)

	assert.Error(t, store.Complete(context.Background(), "c1", "k", "q1"))
	assert.Error(t, store.Release(context.Background(), "c1", "k"))
	assert.Equal(t, 24*time.Hour, store.ttl)
}
