package commands

import (
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrItemSelectionIsNotConstructed = errors.New(
		"ItemSelection must be created via NewItemSelection constructor",
	)
)

// ItemSelection is one (product, quantity) pair requested at checkout.
// Only the product reference and the quantity come from the client; the
// name and the unit price are snapshotted from the catalog by the handler.
type ItemSelection struct { //nolint:recvcheck //using for validation
	productID kernel.UUID
	quantity  int

	guard guard.ConstructorGuard
}

// NewItemSelection creates a validated item selection.
func NewItemSelection(productID kernel.UUID, quantity int) (ItemSelection, error) {
	selection := ItemSelection{
		guard: guard.NewConstructorGuard(),
	}

	if err := productID.Validate(); err != nil {
		return ItemSelection{}, err
	}
	if quantity <= 0 {
		return ItemSelection{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	selection.productID = productID
	selection.quantity = quantity
	return selection, nil
}

// Validate ensures the selection was created through the constructor.
func (s ItemSelection) Validate() error {
	return s.guard.Validate(ErrItemSelectionIsNotConstructed)
}

// ProductID returns the selected product's identity.
func (s ItemSelection) ProductID() kernel.UUID {
	return s.productID
}

// Quantity returns the requested quantity.
func (s ItemSelection) Quantity() int {
	return s.quantity
}

// CreateOrderCommand represents a checkout request: the authenticated
// customer's identity, the selected items, and the shipping details.
// The customer id comes from the resolved principal, never from the
// request body.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	customerID      kernel.UUID
	items           []ItemSelection
	shippingAddress string
	paymentMethod   string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Validates that both identifiers are valid, the item list is non-empty,
// every selection was properly constructed, and the shipping details are
// present. Returns an error if any validation fails.
func NewCreateOrderCommand(
	orderID, customerID kernel.UUID,
	items []ItemSelection,
	shippingAddress, paymentMethod string,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setCustomerID(customerID),
		orderCommand.setItems(items),
		orderCommand.setShippingAddress(shippingAddress),
		orderCommand.setPaymentMethod(paymentMethod),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier assigned to the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the ordering customer's identity.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// Items returns the selected items.
func (c CreateOrderCommand) Items() []ItemSelection {
	return c.items
}

// ShippingAddress returns the destination address.
func (c CreateOrderCommand) ShippingAddress() string {
	return c.shippingAddress
}

// PaymentMethod returns the chosen payment method label.
func (c CreateOrderCommand) PaymentMethod() string {
	return c.paymentMethod
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return fmt.Errorf("customer id: %w", err)
	}

	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setItems(items []ItemSelection) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("order items")
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	c.items = make([]ItemSelection, len(items))
	copy(c.items, items)
	return nil
}

func (c *CreateOrderCommand) setShippingAddress(shippingAddress string) error {
	if shippingAddress == "" {
		return errs.NewValueIsRequiredError("shipping address")
	}

	c.shippingAddress = shippingAddress
	return nil
}

func (c *CreateOrderCommand) setPaymentMethod(paymentMethod string) error {
	if paymentMethod == "" {
		return errs.NewValueIsRequiredError("payment method")
	}

	c.paymentMethod = paymentMethod
	return nil
}
