package commands

import (
	"errors"
	"fmt"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/principal"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrMarkOrderPaidCommandIsNotConstructed = errors.New(
	"MarkOrderPaidCommand must be created via NewMarkOrderPaidCommand constructor",
)

// completedPaymentStatus is the only provider capture status that may mark
// an order paid.
const completedPaymentStatus = "COMPLETED"

// MarkOrderPaidCommand represents a payment confirmation for an order.
// The actor is either the order's owner confirming a capture from their
// own session, or the trusted payment reconciliation actor. The claimed
// capture details are never trusted as-is; the handler re-verifies them
// against the payment provider.
type MarkOrderPaidCommand struct { //nolint:recvcheck //using for validation
	actor         principal.Principal
	orderID       kernel.UUID
	transactionID string
	payerEmail    string
	paymentStatus string

	guard guard.ConstructorGuard
}

// NewMarkOrderPaidCommand creates a command to confirm an order's payment.
// Validates the actor and order id, requires a transaction id and payer
// email, and rejects any capture status other than COMPLETED.
func NewMarkOrderPaidCommand(
	actor principal.Principal,
	orderID kernel.UUID,
	transactionID, payerEmail, paymentStatus string,
) (MarkOrderPaidCommand, error) {
	paidCommand := MarkOrderPaidCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		paidCommand.setActor(actor),
		paidCommand.setOrderID(orderID),
		paidCommand.setTransactionID(transactionID),
		paidCommand.setPayerEmail(payerEmail),
		paidCommand.setPaymentStatus(paymentStatus),
	); err != nil {
		return MarkOrderPaidCommand{}, err
	}

	return paidCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrMarkOrderPaidCommandIsNotConstructed if validation fails.
func (c MarkOrderPaidCommand) Validate() error {
	return c.guard.Validate(ErrMarkOrderPaidCommandIsNotConstructed)
}

// Actor returns the principal attempting the confirmation.
func (c MarkOrderPaidCommand) Actor() principal.Principal {
	return c.actor
}

// OrderID returns the order to confirm payment for.
func (c MarkOrderPaidCommand) OrderID() kernel.UUID {
	return c.orderID
}

// TransactionID returns the provider's capture transaction id.
func (c MarkOrderPaidCommand) TransactionID() string {
	return c.transactionID
}

// PayerEmail returns the payer email claimed for the capture.
func (c MarkOrderPaidCommand) PayerEmail() string {
	return c.payerEmail
}

// PaymentStatus returns the claimed capture status, always COMPLETED for
// a constructed command.
func (c MarkOrderPaidCommand) PaymentStatus() string {
	return c.paymentStatus
}

func (c *MarkOrderPaidCommand) setActor(actor principal.Principal) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *MarkOrderPaidCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *MarkOrderPaidCommand) setTransactionID(transactionID string) error {
	if strings.TrimSpace(transactionID) == "" {
		return errs.NewValueIsRequiredError("transaction id")
	}

	c.transactionID = transactionID
	return nil
}

func (c *MarkOrderPaidCommand) setPayerEmail(payerEmail string) error {
	if strings.TrimSpace(payerEmail) == "" {
		return errs.NewValueIsRequiredError("payer email")
	}

	c.payerEmail = payerEmail
	return nil
}

func (c *MarkOrderPaidCommand) setPaymentStatus(paymentStatus string) error {
	if strings.TrimSpace(paymentStatus) == "" {
		return errs.NewValueIsRequiredError("payment status")
	}
	if paymentStatus != completedPaymentStatus {
		return errs.NewValueIsInvalidErrorWithCause("payment status",
			fmt.Errorf("%q is not %s", paymentStatus, completedPaymentStatus))
	}

	c.paymentStatus = paymentStatus
	return nil
}
