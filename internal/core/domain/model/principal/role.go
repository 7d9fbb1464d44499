package principal

import (
	"fmt"

	"storefront/internal/pkg/errs"
)

// Role is the privilege level of a principal. The role is looked up fresh
// on every request rather than baked into the credential token, so that
// revoking a privilege takes effect immediately.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	// This value (0) helps catch uninitialized Role values.
	RoleUnknown Role = iota

	// RoleCustomer is a standard account.
	RoleCustomer

	// RoleAdministrator may list all orders, confirm delivery, and manage
	// the catalog and user accounts.
	RoleAdministrator

	// RolePaymentService is the trusted payment-confirmation actor used by
	// the reconciliation job. It is treated as the owner when confirming
	// payments and has no other privileges.
	RolePaymentService
)

func getValidRoleStrings() map[Role]string {
	return map[Role]string{
		RoleCustomer:       "Customer",
		RoleAdministrator:  "Administrator",
		RolePaymentService: "PaymentService",
	}
}

// Validate checks that the Role is one of the defined values.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the human-readable name of the role.
func (r Role) String() string {
	if s, ok := getValidRoleStrings()[r]; ok {
		return s
	}
	return "Unknown"
}
