package queries

import (
	"errors"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var ErrGetMyOrdersQueryIsNotConstructed = errors.New(
	"GetMyOrdersQuery must be created via NewGetMyOrdersQuery constructor",
)

// GetMyOrdersQuery retrieves the order history of one customer. The
// customer id comes from the resolved principal, so a customer can only
// ever list their own orders.
type GetMyOrdersQuery struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetMyOrdersQuery creates a query to list a customer's own orders.
func NewGetMyOrdersQuery(customerID kernel.UUID) (GetMyOrdersQuery, error) {
	ordersQuery := GetMyOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := customerID.Validate(); err != nil {
		return GetMyOrdersQuery{}, err
	}

	ordersQuery.customerID = customerID
	return ordersQuery, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetMyOrdersQueryIsNotConstructed if validation fails.
func (q GetMyOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetMyOrdersQueryIsNotConstructed)
}

// CustomerID returns the customer whose orders are listed.
func (q GetMyOrdersQuery) CustomerID() kernel.UUID {
	return q.customerID
}

// OrderSummaryResponse is one row of an order listing. Line items are
// only materialized by the single order read.
type OrderSummaryResponse struct {
	ID          kernel.UUID
	CustomerID  kernel.UUID
	Status      string
	GrandTotal  string
	PaidAt      *time.Time
	DeliveredAt *time.Time
	CreatedAt   time.Time
}
