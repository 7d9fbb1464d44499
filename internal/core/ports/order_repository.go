// Package ports defines the contracts between the application core and
// infrastructure. Repositories, the unit of work, the payment provider
// gateway and the token deny list all live behind these interfaces,
// enabling dependency inversion and testability.
package ports

import (
	"context"
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

// ErrStaleTransition is returned by the conditional update methods when the
// stored order left the expected source status between the read and the
// write. Callers re-read the aggregate and classify the outcome instead of
// retrying blindly.
var ErrStaleTransition = errors.New("order status changed concurrently")

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying orders by owner
// and lifecycle state.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete order with its line items, totals, payment
	// record and delivery timestamp.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllByCustomer retrieves every order owned by the given customer,
	// newest first.
	GetAllByCustomer(ctx context.Context, customerID kernel.UUID) ([]*order.Order, error)

	// GetAll retrieves every order in the system, newest first.
	// Reserved for administrator listings.
	GetAll(ctx context.Context) ([]*order.Order, error)

	// GetAllInCreatedStatus retrieves orders still awaiting payment.
	// Used by the payment reconciliation job to find orders whose
	// confirmation callback may have been lost.
	GetAllInCreatedStatus(ctx context.Context) ([]*order.Order, error)

	// UpdatePayment persists the payment record and the Created to Paid
	// transition as a single conditional write. The write only applies
	// while the stored status is still Created; when another request won
	// the race, ErrStaleTransition is returned and nothing is changed.
	UpdatePayment(ctx context.Context, aggregate *order.Order) error

	// UpdateDelivery persists the delivery timestamp and the Paid to
	// Delivered transition as a single conditional write. The write only
	// applies while the stored status is still Paid; otherwise
	// ErrStaleTransition is returned and nothing is changed.
	UpdateDelivery(ctx context.Context, aggregate *order.Order) error
}
