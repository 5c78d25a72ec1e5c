// File: utils/token_store.go
package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// TokenStore keeps role-scoped auth token hashes in Redis. Keys are of the form
// "<role>-auth:<accountID>" so job-seeker and business sessions never collide.
// It is constructed explicitly and injected rather than accessed as a global.
type TokenStore struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewTokenStore creates a TokenStore with the given client and entry TTL.
func NewTokenStore(client *redis.Client, ttl time.Duration) *TokenStore {
	return &TokenStore{Client: client, TTL: ttl}
}

func tokenKey(role, accountID string) string {
	return fmt.Sprintf("%s-auth:%s", role, accountID)
}

// Save stores the hash of a freshly issued token, replacing any prior session.
func (s *TokenStore) Save(ctx context.Context, role, accountID, tokenHash string) error {
	if err := s.Client.Set(ctx, tokenKey(role, accountID), tokenHash, s.TTL).Err(); err != nil {
		return fmt.Errorf("failed to save auth token: %w", err)
	}
	return nil
}

// Validate reports whether the presented token hash matches the stored session.
func (s *TokenStore) Validate(ctx context.Context, role, accountID, tokenHash string) (bool, error) {
	stored, err := s.Client.Get(ctx, tokenKey(role, accountID)).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to read auth token: %w", err)
	}
	return stored == tokenHash, nil
}

// Revoke removes the stored session (logout or detected expiry).
func (s *TokenStore) Revoke(ctx context.Context, role, accountID string) error {
	return s.Client.Del(ctx, tokenKey(role, accountID)).Err()
}
