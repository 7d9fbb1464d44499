package services

import (
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/principal"
	"storefront/internal/pkg/errs"
)

// Decision is the outcome of a capability check.
type Decision int

const (
	// DecisionUnknown represents an invalid or undefined decision.
	// This value (0) helps catch uninitialized Decision values.
	DecisionUnknown Decision = iota

	// Allow grants the capability.
	Allow

	// Deny refuses the capability for a resolved principal; it maps to
	// Forbidden at the request boundary, never to Unauthenticated.
	Deny
)

// Err converts a Decision into the classified error surfaced at the
// request boundary. Allow yields nil; anything else yields an
// AccessForbiddenError naming the attempted action.
func (d Decision) Err(action string) error {
	if d == Allow {
		return nil
	}
	return errs.NewAccessForbiddenError(action)
}

// AccessPolicy is a domain service deciding which principal may perform
// which operation. All role and ownership branching for the order
// lifecycle lives here.
//
// Capability matrix:
//
//	                      Customer(owner)  Customer(other)  Admin  PaymentService
//	view order                  yes              no           yes        no
//	confirm payment             yes              no           no         yes
//	mark delivered              no               no           yes        no
//	list all orders             no               no           yes        no
//	manage catalog              no               no           yes        no
type AccessPolicy struct{}

// NewAccessPolicy creates a new AccessPolicy instance.
func NewAccessPolicy() AccessPolicy {
	return AccessPolicy{}
}

// CanViewOrder grants the order's owner and administrators.
func (AccessPolicy) CanViewOrder(p principal.Principal, ownerID kernel.UUID) Decision {
	if p.IsAdministrator() || p.Owns(ownerID) {
		return Allow
	}
	return Deny
}

// CanConfirmPayment grants the order's owner and the trusted
// payment-confirmation actor, which is treated as the owner for this
// purpose. Administrators are deliberately not granted: confirming a
// payment asserts money changed hands, which only the payer's session or
// the payment provider can know.
func (AccessPolicy) CanConfirmPayment(p principal.Principal, ownerID kernel.UUID) Decision {
	if p.IsPaymentService() || p.Owns(ownerID) {
		return Allow
	}
	return Deny
}

// CanMarkDelivered grants administrators only.
func (AccessPolicy) CanMarkDelivered(p principal.Principal) Decision {
	if p.IsAdministrator() {
		return Allow
	}
	return Deny
}

// CanListAllOrders grants administrators only.
func (AccessPolicy) CanListAllOrders(p principal.Principal) Decision {
	if p.IsAdministrator() {
		return Allow
	}
	return Deny
}

// CanManageCatalog grants administrators only.
func (AccessPolicy) CanManageCatalog(p principal.Principal) Decision {
	if p.IsAdministrator() {
		return Allow
	}
	return Deny
}
