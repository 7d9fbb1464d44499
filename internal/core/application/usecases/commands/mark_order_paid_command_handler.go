package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

// MarkOrderPaidCommandHandler handles the Created to Paid transition.
//
// A confirmation is only accepted after the payment provider itself
// reports the capture as completed. The transition is persisted with a
// conditional update so that two racing confirmations can never both
// apply; the loser re-reads the order and resolves to an idempotent
// success when it carries the same transaction id, or to a conflict when
// it does not.
type MarkOrderPaidCommandHandler struct {
	uowFactory OrderUoWFactory
	verifier   ports.PaymentVerifier
	policy     services.AccessPolicy
}

// NewMarkOrderPaidCommandHandler creates a handler for payment confirmations.
func NewMarkOrderPaidCommandHandler(
	uowFactory OrderUoWFactory,
	verifier ports.PaymentVerifier,
	policy services.AccessPolicy,
) MarkOrderPaidCommandHandler {
	return MarkOrderPaidCommandHandler{
		uowFactory: uowFactory,
		verifier:   verifier,
		policy:     policy,
	}
}

// Handle processes the payment confirmation command.
//
// Verification happens before the transaction opens, keeping the slow
// provider round trip outside the database transaction. A verification
// timeout or cancellation surfaces as a RetryableFailure and never marks
// the order paid.
func (h *MarkOrderPaidCommandHandler) Handle(ctx context.Context, cmd MarkOrderPaidCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	verified, err := h.verifier.Verify(ctx, cmd.TransactionID())
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return errs.NewRetryableFailureErrorWithCause("verify payment", err)
		}
		return err
	}

	if !verified.IsCompleted() {
		return errs.NewValueIsInvalidErrorWithCause("payment",
			fmt.Errorf("provider reports capture status %q", verified.Status))
	}

	paidAt := verified.UpdatedAt
	if paidAt.IsZero() {
		paidAt = time.Now().UTC()
	}

	record, err := order.NewPaymentRecord(cmd.TransactionID(), cmd.PayerEmail(), paidAt)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = h.policy.CanConfirmPayment(cmd.Actor(), aggregate.CustomerID()).Err("confirm order payment"); err != nil {
		return err
	}

	wasPaid := aggregate.IsPaid()
	if err = aggregate.MarkPaid(record); err != nil {
		return err
	}
	if wasPaid {
		// Same transaction id re-confirmed; nothing to write.
		return nil
	}

	if err = orderRepo.UpdatePayment(ctx, aggregate); err != nil {
		if !errors.Is(err, ports.ErrStaleTransition) {
			return err
		}
		return h.resolveLostRace(ctx, orderRepo, cmd, record)
	}

	return uow.Commit(ctx)
}

// resolveLostRace classifies a confirmation that lost the conditional
// update race: a concurrent winner with the same transaction id means
// this confirmation already took effect, anything else is a conflict.
func (h *MarkOrderPaidCommandHandler) resolveLostRace(
	ctx context.Context,
	orderRepo ports.OrderRepository,
	cmd MarkOrderPaidCommand,
	record order.PaymentRecord,
) error {
	fresh, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	return fresh.MarkPaid(record)
}
