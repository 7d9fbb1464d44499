// Package queries contains read-only operations in the CQRS architecture.
// Query handlers read the database directly through raw SQL, bypassing the
// aggregate repositories, and return flat response types shaped for the
// transport layer.
package queries

import (
	"errors"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/principal"
	"storefront/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order with its line items. The actor is
// checked against the order's owner: only the owner and administrators
// may read it.
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	actor   principal.Principal
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query to read a single order.
func NewGetOrderQuery(actor principal.Principal, orderID kernel.UUID) (GetOrderQuery, error) {
	orderQuery := GetOrderQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(actor.Validate(), orderID.Validate()); err != nil {
		return GetOrderQuery{}, err
	}

	orderQuery.actor = actor
	orderQuery.orderID = orderID
	return orderQuery, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderQueryIsNotConstructed if validation fails.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// Actor returns the principal reading the order.
func (q GetOrderQuery) Actor() principal.Principal {
	return q.actor
}

// OrderID returns the order to read.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// OrderItemResponse is one line item of an order read model.
type OrderItemResponse struct {
	ProductID kernel.UUID
	Name      string
	Quantity  int
	UnitPrice string
}

// GetOrderQueryResponse is the full order read model, including the
// payment record and delivery timestamp when present.
type GetOrderQueryResponse struct {
	ID              kernel.UUID
	CustomerID      kernel.UUID
	ShippingAddress string
	PaymentMethod   string
	Status          string
	ItemsTotal      string
	ShippingTotal   string
	TaxTotal        string
	GrandTotal      string
	TransactionID   *string
	PayerEmail      *string
	PaidAt          *time.Time
	DeliveredAt     *time.Time
	Items           []OrderItemResponse
}
