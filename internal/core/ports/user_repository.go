package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/user"
)

// UserRepository defines the persistence contract for accounts.
type UserRepository interface {
	// Add persists a new account to storage. The email must be unique.
	Add(ctx context.Context, aggregate *user.User) error

	// Update persists changes to an existing account.
	Update(ctx context.Context, aggregate *user.User) error

	// Get retrieves an account by its unique identifier. The access guard
	// calls this on every authenticated request so role changes take
	// effect immediately.
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	// GetByEmail retrieves an account by its lowercased email address.
	// Used by login.
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}
