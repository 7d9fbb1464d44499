package ports

import (
	"context"
	"time"
)

// TokenDenyList revokes issued tokens before their natural expiry. Logout
// records the token id here for the remainder of its lifetime; the access
// guard refuses any token whose id is present.
type TokenDenyList interface {
	// Revoke marks a token id as unusable for the given remaining lifetime.
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error

	// IsRevoked reports whether the token id has been revoked.
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
