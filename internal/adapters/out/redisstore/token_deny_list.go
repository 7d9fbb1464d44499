// Package redisstore keeps revoked token ids in Redis. Each entry lives
// exactly as long as the token it revokes, so the deny list never grows
// past the set of tokens that could still be replayed.
package redisstore

import (
	"context"
	"time"

	"storefront/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "revoked:"

// TokenDenyList implements ports.TokenDenyList on a Redis client.
type TokenDenyList struct {
	client *redis.Client
}

// NewTokenDenyList creates a deny list backed by the given Redis client.
func NewTokenDenyList(client *redis.Client) *TokenDenyList {
	return &TokenDenyList{client: client}
}

// Revoke marks a token id as revoked for the remaining token lifetime.
// A non-positive ttl means the token is already expired and needs no
// deny list entry.
func (d *TokenDenyList) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" {
		return errs.NewValueIsRequiredError("token id")
	}
	if ttl <= 0 {
		return nil
	}

	return d.client.Set(ctx, revokedKeyPrefix+tokenID, "1", ttl).Err()
}

// IsRevoked reports whether a token id was revoked and has not yet
// expired out of the list.
func (d *TokenDenyList) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, errs.NewValueIsRequiredError("token id")
	}

	count, err := d.client.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
