package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "idempotency:"

	// pendingMarker claims a key while the first request is in flight.
	pendingMarker = "pending"
)

// IdempotencyStore implements usecase.IdempotencyStore on Redis.
type IdempotencyStore struct {
	client *redis.Client
}

// NewIdempotencyStore creates a new IdempotencyStore.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client}
}

// CheckAndSet claims the key if unseen. When the key was already claimed it
// returns the stored response, which is nil while the first request is
// still in flight.
func (s *IdempotencyStore) CheckAndSet(ctx context.Context, key string, ttl time.Duration) (bool, []byte, error) {
	fullKey := keyPrefix + key

	claimed, err := s.client.SetNX(ctx, fullKey, pendingMarker, ttl).Result()
	if err != nil {
		return false, nil, err
	}

	if claimed {
		return false, nil, nil
	}

	stored, err := s.client.Get(ctx, fullKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// Expired between SetNX and Get; treat as unseen.
			return false, nil, nil
		}

		return false, nil, err
	}

	if string(stored) == pendingMarker {
		return true, nil, nil
	}

	return true, stored, nil
}

// Finish stores the final response under an already claimed key.
func (s *IdempotencyStore) Finish(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return s.client.Set(ctx, keyPrefix+key, response, ttl).Err()
}
