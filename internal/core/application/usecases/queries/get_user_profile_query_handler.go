package queries

import (
	"context"
	"database/sql"
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetUserProfileQueryHandler reads the authenticated account's profile.
type GetUserProfileQueryHandler struct {
	db *gorm.DB
}

// NewGetUserProfileQueryHandler creates a handler for profile reads.
func NewGetUserProfileQueryHandler(db *gorm.DB) GetUserProfileQueryHandler {
	return GetUserProfileQueryHandler{db: db}
}

// Handle executes the query. Returns ObjectNotFound when the account no
// longer exists.
func (h GetUserProfileQueryHandler) Handle(ctx context.Context, query GetUserProfileQuery) (UserResponse, error) {
	if err := query.Validate(); err != nil {
		return UserResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			email,
			is_admin
		FROM users
		WHERE id = ?
	`, query.UserID().Bytes()).Row()

	var (
		resp UserResponse
		id   uuid.UUID
	)

	err := row.Scan(&id, &resp.Name, &resp.Email, &resp.IsAdmin)
	if errors.Is(err, sql.ErrNoRows) {
		return UserResponse{}, errs.NewObjectNotFoundError("user", query.UserID())
	}
	if err != nil {
		return UserResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return UserResponse{}, err
	}

	return resp, nil
}
