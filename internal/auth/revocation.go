package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const revokedKeyPrefix = "domlearn:revoked:"

// RedisRevocationStore remembers revoked token ids until the token would have expired anyway
type RedisRevocationStore struct {
	client *redis.Client
}

// NewRedisRevocationStore creates a new revocation store backed by Redis
func NewRedisRevocationStore(client *redis.Client) *RedisRevocationStore {
	return &RedisRevocationStore{client: client}
}

// Revoke marks jti as revoked for ttl
func (s *RedisRevocationStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, revokedKeyPrefix+jti, 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether jti was revoked
func (s *RedisRevocationStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	err := s.client.Get(ctx, revokedKeyPrefix+jti).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return true, nil
}

// NoopRevocationStore is used when Redis is not configured: tokens stay valid until they expire
type NoopRevocationStore struct{}

// Revoke does nothing
func (NoopRevocationStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	return nil
}

// IsRevoked always reports false
func (NoopRevocationStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	return false, nil
}
