// Package userrepo persists accounts. The bcrypt hash is stored as bytea
// and never leaves this layer except inside the user aggregate.
package userrepo

import (
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/user"

	"github.com/google/uuid"
)

// UserDTO represents the database structure for accounts. The unique
// index on email backs the duplicate registration check under
// concurrency.
type UserDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string
	Email        string `gorm:"uniqueIndex"`
	PasswordHash []byte `gorm:"type:bytea"`
	IsAdmin      bool
}

// TableName specifies the database table name for account entities.
func (UserDTO) TableName() string {
	return "users"
}

// fromDomain converts a user aggregate to its database representation.
func fromDomain(aggregate *user.User) UserDTO {
	return UserDTO{
		ID:           aggregate.ID().Bytes(),
		Name:         aggregate.Name(),
		Email:        aggregate.Email(),
		PasswordHash: aggregate.PasswordHash(),
		IsAdmin:      aggregate.IsAdmin(),
	}
}

// toDomain converts a database DTO back to a user aggregate.
func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return user.RestoreUser(id, dto.Name, dto.Email, dto.PasswordHash, dto.IsAdmin)
}
