// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/danielhkuo/baseball-dictionary/moderation"
)

// DefaultTTL is how long an idle admin session keeps its key.
const DefaultTTL = 12 * time.Hour

// credential is the value stored for each session
type credential struct {
	Key     string    `json:"key"`
	SavedAt time.Time `json:"saved_at"`
}

// RedisStore keeps admin keys in Redis so sessions survive a restart of the
// web process. Lookups slide the expiry forward.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

var _ moderation.CredentialStore = (*RedisStore)(nil)

// NewRedisStore connects to redisURL and checks the connection.
func NewRedisStore(redisURL string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewRedisStoreWithClient(client, ttl), nil
}

// NewRedisStoreWithClient creates a store from an existing Redis client
func NewRedisStoreWithClient(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{
		client: client,
		prefix: moderation.CredentialKey + ":",
		ttl:    ttl,
	}
}

func (s *RedisStore) key(sessionID string) string {
	return s.prefix + sessionID
}

// Save stores the admin key for a session
func (s *RedisStore) Save(ctx context.Context, sessionID, key string) error {
	data, err := json.Marshal(credential{Key: key, SavedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("marshal credential: %w", err)
	}
	if err := s.client.Set(ctx, s.key(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save admin key: %w", err)
	}
	return nil
}

// Lookup returns the admin key for a session, if any
func (s *RedisStore) Lookup(ctx context.Context, sessionID string) (string, bool, error) {
	raw, err := s.client.Get(ctx, s.key(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("lookup admin key: %w", err)
	}

	var cred credential
	if err := json.Unmarshal([]byte(raw), &cred); err != nil {
		return "", false, fmt.Errorf("unmarshal credential: %w", err)
	}

	if err := s.client.Expire(ctx, s.key(sessionID), s.ttl).Err(); err != nil {
		return "", false, fmt.Errorf("refresh admin key ttl: %w", err)
	}
	return cred.Key, true, nil
}

// Revoke deletes the admin key for a session
func (s *RedisStore) Revoke(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("revoke admin key: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Ping checks if Redis is reachable
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
