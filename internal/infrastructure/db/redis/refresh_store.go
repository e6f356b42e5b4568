package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const refreshSetKey = "identity:refresh_tokens"

// RefreshTokenStore keeps the live refresh-token set in a Redis SET so every
// instance of the service shares one membership view. SADD/SISMEMBER/SREM are
// each atomic, which gives the concurrent-insert/concurrent-check guarantee
// without any client-side locking.
//
// Members carry no TTL: an expired-but-still-registered token is only caught
// by the claim decode, and entries stay until explicitly removed. This
// mirrors the documented gap in ports.RefreshTokenStore.
type RefreshTokenStore struct {
	client *redis.Client
}

func NewRefreshTokenStore(client *redis.Client) *RefreshTokenStore {
	return &RefreshTokenStore{client: client}
}

func (s *RefreshTokenStore) Add(ctx context.Context, token string) error {
	if err := s.client.SAdd(ctx, refreshSetKey, token).Err(); err != nil {
		return fmt.Errorf("register refresh token: %w", err)
	}
	return nil
}

func (s *RefreshTokenStore) Contains(ctx context.Context, token string) (bool, error) {
	ok, err := s.client.SIsMember(ctx, refreshSetKey, token).Result()
	if err != nil {
		return false, fmt.Errorf("refresh token membership: %w", err)
	}
	return ok, nil
}

func (s *RefreshTokenStore) Remove(ctx context.Context, token string) error {
	if err := s.client.SRem(ctx, refreshSetKey, token).Err(); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}
