package queries

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var ErrGetUserProfileQueryIsNotConstructed = errors.New(
	"GetUserProfileQuery must be created via NewGetUserProfileQuery constructor",
)

// GetUserProfileQuery retrieves the profile of the authenticated account.
// The user id comes from the resolved principal.
type GetUserProfileQuery struct { //nolint:recvcheck //using for validation
	userID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetUserProfileQuery creates a profile read query.
func NewGetUserProfileQuery(userID kernel.UUID) (GetUserProfileQuery, error) {
	profileQuery := GetUserProfileQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := userID.Validate(); err != nil {
		return GetUserProfileQuery{}, err
	}

	profileQuery.userID = userID
	return profileQuery, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetUserProfileQueryIsNotConstructed if validation fails.
func (q GetUserProfileQuery) Validate() error {
	return q.guard.Validate(ErrGetUserProfileQueryIsNotConstructed)
}

// UserID returns the account to read.
func (q GetUserProfileQuery) UserID() kernel.UUID {
	return q.userID
}
