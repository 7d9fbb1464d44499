package queries

import (
	"errors"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrAuthenticateUserQueryIsNotConstructed = errors.New(
	"AuthenticateUserQuery must be created via NewAuthenticateUserQuery constructor",
)

// AuthenticateUserQuery checks a login credential pair. It is the one
// read that touches password hashes; wrong email and wrong password are
// indistinguishable in the result.
type AuthenticateUserQuery struct { //nolint:recvcheck //using for validation
	email    string
	password string

	guard guard.ConstructorGuard
}

// NewAuthenticateUserQuery creates a login verification query.
func NewAuthenticateUserQuery(email, password string) (AuthenticateUserQuery, error) {
	authQuery := AuthenticateUserQuery{
		guard: guard.NewConstructorGuard(),
	}

	if strings.TrimSpace(email) == "" {
		return AuthenticateUserQuery{}, errs.NewValueIsRequiredError("email")
	}
	if password == "" {
		return AuthenticateUserQuery{}, errs.NewValueIsRequiredError("password")
	}

	authQuery.email = strings.ToLower(strings.TrimSpace(email))
	authQuery.password = password
	return authQuery, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrAuthenticateUserQueryIsNotConstructed if validation fails.
func (q AuthenticateUserQuery) Validate() error {
	return q.guard.Validate(ErrAuthenticateUserQueryIsNotConstructed)
}

// Email returns the lowercased login email.
func (q AuthenticateUserQuery) Email() string {
	return q.email
}

// Password returns the plaintext password to check.
func (q AuthenticateUserQuery) Password() string {
	return q.password
}

// UserResponse is the account read model shared by login and profile
// reads. It never carries the password hash.
type UserResponse struct {
	ID      kernel.UUID
	Name    string
	Email   string
	IsAdmin bool
}
