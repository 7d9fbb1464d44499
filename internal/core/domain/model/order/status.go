package order

import (
	"fmt"

	"storefront/internal/pkg/errs"
)

// Status represents the lifecycle state of a purchase order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct business workflow.
//
// State transitions:
//
//	Created ──> Paid ──> Delivered
//
// No transition skips a state and no transition reverses one.
// Status is a value object that validates state transitions
// and provides string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status when an order is placed.
	// Orders in this status are awaiting payment confirmation.
	Created

	// Paid indicates the external payment was verified and recorded.
	Paid

	// Delivered indicates the order reached the customer.
	// This is a final state with no further transitions allowed.
	Delivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Created:   "Created",
		Paid:      "Paid",
		Delivered: "Delivered",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Created:   "Created",
		Paid:      "Paid",
		Delivered: "Delivered",
	}
}

// Validate checks if the Status value is valid.
// Valid statuses are: Created, Paid, Delivered.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// It implements fmt.Stringer and is safe to call on any value,
// including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Pay transitions the status to Paid.
//
// Valid transitions:
//   - Created -> Paid
//
// Any other starting state yields an InvalidTransitionError; idempotent
// re-payment of an already-Paid order is resolved above this level by
// comparing payment records, never by re-entering Paid.
func (s Status) Pay() (Status, error) {
	if s != Created {
		return 0, errs.NewInvalidTransitionError(s.String(), Paid.String())
	}
	return Paid, nil
}

// Deliver transitions the status to Delivered.
//
// Valid transitions:
//   - Paid -> Delivered
//
// Delivering an unpaid order, or re-delivering a delivered one, yields an
// InvalidTransitionError. Delivered is terminal.
func (s Status) Deliver() (Status, error) {
	if s != Paid {
		return 0, errs.NewInvalidTransitionError(s.String(), Delivered.String())
	}
	return Delivered, nil
}

// ValidateCanHavePayment validates consistency between status and the
// presence of a payment record when reconstructing from persistence.
//
// Business rules:
//   - Created orders must not carry a payment record
//   - Paid and Delivered orders must carry one
func (s Status) ValidateCanHavePayment(hasPayment bool) error {
	if hasPayment && s == Created {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have a payment record", s.String()),
		)
	}

	if !hasPayment && (s == Paid || s == Delivered) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have no payment record", s.String()),
		)
	}

	return nil
}

// ValidateCanHaveDelivery validates consistency between status and the
// presence of a delivery timestamp when reconstructing from persistence.
//
// Business rules:
//   - Only Delivered orders carry a delivery timestamp
func (s Status) ValidateCanHaveDelivery(hasDelivery bool) error {
	if hasDelivery && s != Delivered {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have a delivery timestamp", s.String()),
		)
	}

	if !hasDelivery && s == Delivered {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have no delivery timestamp", s.String()),
		)
	}

	return nil
}
