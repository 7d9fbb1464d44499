package principal

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

// ErrPrincipalIsNotConstructed is returned when a Principal was not created
// through the NewPrincipal factory function.
var ErrPrincipalIsNotConstructed = errors.New("Principal must be created via NewPrincipal constructor")

// Principal is the resolved actor making a request: an identity plus a role.
// It is a value object, immutable once constructed.
type Principal struct { //nolint:recvcheck //using for validation
	id   kernel.UUID
	role Role

	guard guard.ConstructorGuard
}

// NewPrincipal creates a Principal with a validated identity and role.
func NewPrincipal(id kernel.UUID, role Role) (Principal, error) {
	p := Principal{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setRole(role),
	); err != nil {
		return Principal{}, err
	}

	return p, nil
}

// NewPaymentServicePrincipal creates the trusted payment-confirmation actor.
// Its identity is generated per process; only the role carries meaning.
func NewPaymentServicePrincipal() Principal {
	return Principal{
		id:    kernel.NewUUID(),
		role:  RolePaymentService,
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the Principal was created via NewPrincipal.
func (p Principal) Validate() error {
	return p.guard.Validate(ErrPrincipalIsNotConstructed)
}

// ID returns the principal's identity.
func (p Principal) ID() kernel.UUID {
	return p.id
}

// Role returns the principal's role.
func (p Principal) Role() Role {
	return p.role
}

// IsAdministrator reports whether the principal holds the administrator role.
func (p Principal) IsAdministrator() bool {
	return p.role == RoleAdministrator
}

// IsPaymentService reports whether the principal is the trusted
// payment-confirmation actor.
func (p Principal) IsPaymentService() bool {
	return p.role == RolePaymentService
}

// Owns reports whether the principal's identity matches the given owner id.
func (p Principal) Owns(ownerID kernel.UUID) bool {
	return p.id.IsEqual(ownerID)
}

func (p *Principal) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Principal) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	p.role = role
	return nil
}
