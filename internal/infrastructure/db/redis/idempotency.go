package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyTTL = 24 * time.Hour

// IdempotencyStore maps a client's Idempotency-Key to the quote request it created.
// Key format: idem:quote:<client_id>:<key>
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdempotencyStore creates an IdempotencyStore wrapping the given Redis client.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client, ttl: idempotencyTTL}
}

// pendingMarker holds a reserved key until the quote request is created.
const pendingMarker = "pending"

// Reserve claims the key with SETNX. When the key is already held it returns
// the remembered quote ID, or "" while the first request is still in flight.
func (s *IdempotencyStore) Reserve(ctx context.Context, clientID, key string) (bool, string, error) {
	k := idempotencyKey(clientID, key)
	// A held key can expire between SETNX and GET; one retry covers that.
	for attempt := 0; attempt < 2; attempt++ {
		ok, err := s.client.SetNX(ctx, k, pendingMarker, s.ttl).Result()
		if err != nil {
			return false, "", fmt.Errorf("idempotency reserve: %w", err)
		}
		if ok {
			return true, "", nil
		}

		id, err := s.client.Get(ctx, k).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return false, "", fmt.Errorf("idempotency lookup: %w", err)
		}
		if id == pendingMarker {
			return false, "", nil
		}
		return false, id, nil
	}
	return false, "", nil
}

// Complete stores the created quote ID under a reserved key.
func (s *IdempotencyStore) Complete(ctx context.Context, clientID, key, quoteID string) error {
	if err := s.client.Set(ctx, idempotencyKey(clientID, key), quoteID, s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency complete: %w", err)
	}
	return nil
}

// Release drops a reservation whose request was never created, so the client
// can retry with the same key.
func (s *IdempotencyStore) Release(ctx context.Context, clientID, key string) error {
	if err := s.client.Del(ctx, idempotencyKey(clientID, key)).Err(); err != nil {
		return fmt.Errorf("idempotency release: %w", err)
	}
	return nil
}

func idempotencyKey(clientID, key string) string {
	return fmt.Sprintf("idem:quote:%s:%s", clientID, key)
}
