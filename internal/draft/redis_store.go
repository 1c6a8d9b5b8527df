package draft

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps drafts in Redis as JSON values so they survive restarts
// and can be shared across replicas. Keys expire after TTL of inactivity;
// every Put refreshes the expiry.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore wraps an existing Redis client. A zero ttl stores drafts
// without expiry.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func draftKey(userID string) string {
	return "certify:draft:" + userID
}

// Get returns the user's draft, or ErrNotFound.
func (s *RedisStore) Get(ctx context.Context, userID string) (Draft, error) {
	raw, err := s.client.Get(ctx, draftKey(userID)).Bytes()
	if err == redis.Nil {
		return Draft{}, ErrNotFound
	}
	if err != nil {
		return Draft{}, fmt.Errorf("redis get: %w", err)
	}
	var d Draft
	if err := json.Unmarshal(raw, &d); err != nil {
		return Draft{}, fmt.Errorf("decode draft: %w", err)
	}
	return d, nil
}

// Put replaces the user's draft and refreshes its expiry.
func (s *RedisStore) Put(ctx context.Context, userID string, d Draft) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	if err := s.client.Set(ctx, draftKey(userID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete discards the user's draft. Deleting a missing draft is not an error.
func (s *RedisStore) Delete(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, draftKey(userID)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
