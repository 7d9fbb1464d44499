package queries

import (
	"context"
	"database/sql"
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/user"
	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuthenticateUserQueryHandler verifies a login credential pair against
// the stored bcrypt hash. An unknown email and a wrong password both
// yield the same Unauthenticated error, so the login endpoint never
// leaks which emails have accounts.
type AuthenticateUserQueryHandler struct {
	db *gorm.DB
}

// NewAuthenticateUserQueryHandler creates a handler for login checks.
func NewAuthenticateUserQueryHandler(db *gorm.DB) AuthenticateUserQueryHandler {
	return AuthenticateUserQueryHandler{db: db}
}

// Handle executes the credential check.
func (h AuthenticateUserQueryHandler) Handle(
	ctx context.Context,
	query AuthenticateUserQuery,
) (UserResponse, error) {
	if err := query.Validate(); err != nil {
		return UserResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			email,
			password_hash,
			is_admin
		FROM users
		WHERE email = ?
	`, query.Email()).Row()

	var (
		id           uuid.UUID
		name         string
		email        string
		passwordHash []byte
		isAdmin      bool
	)

	err := row.Scan(&id, &name, &email, &passwordHash, &isAdmin)
	if errors.Is(err, sql.ErrNoRows) {
		return UserResponse{}, errs.NewUnauthenticatedError("invalid credentials")
	}
	if err != nil {
		return UserResponse{}, err
	}

	userID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return UserResponse{}, err
	}

	account, err := user.RestoreUser(userID, name, email, passwordHash, isAdmin)
	if err != nil {
		return UserResponse{}, err
	}

	if err = account.Authenticate(query.Password()); err != nil {
		return UserResponse{}, errs.NewUnauthenticatedErrorWithCause("invalid credentials", err)
	}

	return UserResponse{
		ID:      account.ID(),
		Name:    account.Name(),
		Email:   account.Email(),
		IsAdmin: account.IsAdmin(),
	}, nil
}
