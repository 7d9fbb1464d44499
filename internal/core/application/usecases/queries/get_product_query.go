package queries

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var ErrGetProductQueryIsNotConstructed = errors.New(
	"GetProductQuery must be created via NewGetProductQuery constructor",
)

// GetProductQuery retrieves one catalog entry by id. Public.
type GetProductQuery struct { //nolint:recvcheck //using for validation
	productID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetProductQuery creates a query to read a single product.
func NewGetProductQuery(productID kernel.UUID) (GetProductQuery, error) {
	productQuery := GetProductQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := productID.Validate(); err != nil {
		return GetProductQuery{}, err
	}

	productQuery.productID = productID
	return productQuery, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetProductQueryIsNotConstructed if validation fails.
func (q GetProductQuery) Validate() error {
	return q.guard.Validate(ErrGetProductQueryIsNotConstructed)
}

// ProductID returns the product to read.
func (q GetProductQuery) ProductID() kernel.UUID {
	return q.productID
}
