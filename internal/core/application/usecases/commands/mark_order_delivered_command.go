package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/principal"
	"storefront/internal/pkg/guard"
)

var ErrMarkOrderDeliveredCommandIsNotConstructed = errors.New(
	"MarkOrderDeliveredCommand must be created via NewMarkOrderDeliveredCommand constructor",
)

// MarkOrderDeliveredCommand represents an administrator marking a paid
// order as delivered.
type MarkOrderDeliveredCommand struct { //nolint:recvcheck //using for validation
	actor   principal.Principal
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkOrderDeliveredCommand creates a command to mark an order delivered.
func NewMarkOrderDeliveredCommand(actor principal.Principal, orderID kernel.UUID) (MarkOrderDeliveredCommand, error) {
	deliveredCommand := MarkOrderDeliveredCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		deliveredCommand.setActor(actor),
		deliveredCommand.setOrderID(orderID),
	); err != nil {
		return MarkOrderDeliveredCommand{}, err
	}

	return deliveredCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrMarkOrderDeliveredCommandIsNotConstructed if validation fails.
func (c MarkOrderDeliveredCommand) Validate() error {
	return c.guard.Validate(ErrMarkOrderDeliveredCommandIsNotConstructed)
}

// Actor returns the principal attempting the delivery.
func (c MarkOrderDeliveredCommand) Actor() principal.Principal {
	return c.actor
}

// OrderID returns the order to mark delivered.
func (c MarkOrderDeliveredCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *MarkOrderDeliveredCommand) setActor(actor principal.Principal) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *MarkOrderDeliveredCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
