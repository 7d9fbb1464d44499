// Package user provides the account aggregate backing authentication.
// Passwords are stored as bcrypt hashes; the aggregate never exposes or
// persists a plaintext credential.
package user

import (
	"errors"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/principal"
	"storefront/internal/pkg/errs"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrUserIsNotConstructed is returned when a User instance was not created
	// through the NewUser or RestoreUser factory functions.
	ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")

	// ErrPasswordMismatch is returned by Authenticate for a wrong password.
	ErrPasswordMismatch = errors.New("password does not match")
)

const minPasswordLength = 8

// User represents an account holder. The admin flag decides whether the
// resolved principal carries the administrator role; it is read fresh on
// every request so revocation is immediate.
type User struct {
	id           kernel.UUID
	name         string
	email        string
	passwordHash []byte
	isAdmin      bool

	isConstructed bool
}

// NewUser creates an account with a bcrypt-hashed password.
func NewUser(id kernel.UUID, name, email, password string) (*User, error) {
	u := &User{
		isConstructed: true,
	}

	if err := errors.Join(
		u.setID(id),
		u.setName(name),
		u.setEmail(email),
	); err != nil {
		return nil, err
	}

	if len(password) < minPasswordLength {
		return nil, errs.NewValueIsInvalidError("password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u.passwordHash = hash
	return u, nil
}

// RestoreUser reconstructs an account from persistence with its stored hash.
func RestoreUser(id kernel.UUID, name, email string, passwordHash []byte, isAdmin bool) (*User, error) {
	u := &User{
		isAdmin:       isAdmin,
		isConstructed: true,
	}

	if err := errors.Join(
		u.setID(id),
		u.setName(name),
		u.setEmail(email),
	); err != nil {
		return nil, err
	}

	if len(passwordHash) == 0 {
		return nil, errs.NewValueIsRequiredError("password hash")
	}

	u.passwordHash = passwordHash
	return u, nil
}

// Validate ensures the User was created through a factory function.
func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

// ID returns the account's unique identifier.
func (u *User) ID() kernel.UUID {
	return u.id
}

// Name returns the display name.
func (u *User) Name() string {
	return u.name
}

// Email returns the account email, lowercased.
func (u *User) Email() string {
	return u.email
}

// PasswordHash returns the stored bcrypt hash for persistence.
func (u *User) PasswordHash() []byte {
	return u.passwordHash
}

// IsAdmin reports whether the account holds administrator privileges.
func (u *User) IsAdmin() bool {
	return u.isAdmin
}

// Role maps the admin flag to the principal role the access guard attaches.
func (u *User) Role() principal.Role {
	if u.isAdmin {
		return principal.RoleAdministrator
	}
	return principal.RoleCustomer
}

// Authenticate compares a plaintext password against the stored hash.
// Returns ErrPasswordMismatch on failure.
func (u *User) Authenticate(password string) error {
	if err := bcrypt.CompareHashAndPassword(u.passwordHash, []byte(password)); err != nil {
		return ErrPasswordMismatch
	}
	return nil
}

// GrantAdmin raises the account to administrator.
func (u *User) GrantAdmin() {
	u.isAdmin = true
}

// RevokeAdmin lowers the account to a standard customer. Takes effect on
// the next request because roles are read fresh by the access guard.
func (u *User) RevokeAdmin() {
	u.isAdmin = false
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("name")
	}
	u.name = name
	return nil
}

func (u *User) setEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	if !strings.Contains(email, "@") {
		return errs.NewValueIsInvalidError("email")
	}
	u.email = email
	return nil
}
