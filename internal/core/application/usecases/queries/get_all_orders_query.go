package queries

import (
	"errors"

	"storefront/internal/core/domain/model/principal"
	"storefront/internal/pkg/guard"
)

var ErrGetAllOrdersQueryIsNotConstructed = errors.New(
	"GetAllOrdersQuery must be created via NewGetAllOrdersQuery constructor",
)

// GetAllOrdersQuery retrieves every order in the system. Administrators
// only.
type GetAllOrdersQuery struct { //nolint:recvcheck //using for validation
	actor principal.Principal

	guard guard.ConstructorGuard
}

// NewGetAllOrdersQuery creates a query to list all orders.
func NewGetAllOrdersQuery(actor principal.Principal) (GetAllOrdersQuery, error) {
	ordersQuery := GetAllOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := actor.Validate(); err != nil {
		return GetAllOrdersQuery{}, err
	}

	ordersQuery.actor = actor
	return ordersQuery, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetAllOrdersQueryIsNotConstructed if validation fails.
func (q GetAllOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAllOrdersQueryIsNotConstructed)
}

// Actor returns the principal listing the orders.
func (q GetAllOrdersQuery) Actor() principal.Principal {
	return q.actor
}
