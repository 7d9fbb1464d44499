package commands

import (
	"context"
	"errors"
	"time"

	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
)

// MarkOrderDeliveredCommandHandler handles the Paid to Delivered
// transition. Delivery is administrator-only and terminal: a second
// delivery attempt resolves to a conflict, never a second timestamp.
type MarkOrderDeliveredCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.AccessPolicy
}

// NewMarkOrderDeliveredCommandHandler creates a handler for delivery marking.
func NewMarkOrderDeliveredCommandHandler(
	uowFactory OrderUoWFactory,
	policy services.AccessPolicy,
) MarkOrderDeliveredCommandHandler {
	return MarkOrderDeliveredCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

// Handle processes the delivery command. The transition is persisted with
// a conditional update; losing the race against a concurrent delivery
// resolves to the same conflict as delivering twice sequentially.
func (h *MarkOrderDeliveredCommandHandler) Handle(ctx context.Context, cmd MarkOrderDeliveredCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.policy.CanMarkDelivered(cmd.Actor()).Err("mark order delivered"); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
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

	if err = aggregate.MarkDelivered(time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.UpdateDelivery(ctx, aggregate); err != nil {
		if !errors.Is(err, ports.ErrStaleTransition) {
			return err
		}

		fresh, readErr := orderRepo.Get(ctx, cmd.OrderID())
		if readErr != nil {
			return readErr
		}
		return fresh.MarkDelivered(time.Now().UTC())
	}

	return uow.Commit(ctx)
}
