package commands

import (
	"context"

	"storefront/internal/core/domain/model/order"
)

// CreateOrderCommandHandler handles the business logic for placing orders.
// Snapshots product names and prices from the catalog at the moment of
// checkout, so a later catalog edit never alters an existing order.
type CreateOrderCommandHandler struct {
	uowFactory CheckoutUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order placement.
// Requires a CheckoutUoWFactory for transactional access to both the
// order and product repositories.
func NewCreateOrderCommandHandler(uowFactory CheckoutUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order placement command.
// Resolves every selected product from the catalog (a missing product
// fails the whole command with ObjectNotFound), builds the order with
// snapshotted line items in Created status, and persists it atomically.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	productRepo := uow.ProductRepository()
	items := make([]order.LineItem, 0, len(cmd.Items()))
	for _, selection := range cmd.Items() {
		catalogProduct, err := productRepo.Get(ctx, selection.ProductID())
		if err != nil {
			return err
		}

		item, err := order.NewLineItem(
			catalogProduct.ID(),
			catalogProduct.Name(),
			selection.Quantity(),
			catalogProduct.Price(),
		)
		if err != nil {
			return err
		}

		items = append(items, item)
	}

	aggregate, err := order.NewOrder(
		cmd.OrderID(),
		cmd.CustomerID(),
		items,
		cmd.ShippingAddress(),
		cmd.PaymentMethod(),
	)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
