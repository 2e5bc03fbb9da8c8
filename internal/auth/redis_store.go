package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a Redis-backed token store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "token:",
	}
}

func (r *RedisStore) key(tokenID string) string {
	return r.prefix + tokenID
}

func (r *RedisStore) Create(ctx context.Context, t Token) error {
	if t.TokenID == "" || t.UserID == "" {
		return fmt.Errorf("auth: missing token_id or user_id")
	}

	ttl := time.Until(t.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("auth: expires_at must be in the future")
	}

	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("auth: failed to marshal token: %w", err)
	}

	return r.client.Set(ctx, r.key(t.TokenID), data, ttl).Err()
}

func (r *RedisStore) Get(ctx context.Context, tokenID string) (*Token, error) {
	val, err := r.client.Get(ctx, r.key(tokenID)).Result()
	if err == redis.Nil {
		return nil, nil // not found
	}
	if err != nil {
		return nil, err
	}

	var t Token
	if err := json.Unmarshal([]byte(val), &t); err != nil {
		return nil, fmt.Errorf("auth: failed to unmarshal token: %w", err)
	}

	return &t, nil
}

func (r *RedisStore) Delete(ctx context.Context, tokenID string) error {
	return r.client.Del(ctx, r.key(tokenID)).Err()
}
