package queries

import (
	"context"

	"storefront/internal/core/domain/services"

	"gorm.io/gorm"
)

// GetAllOrdersQueryHandler lists every order for the back office view.
type GetAllOrdersQueryHandler struct {
	db     *gorm.DB
	policy services.AccessPolicy
}

// NewGetAllOrdersQueryHandler creates a handler for the admin order listing.
func NewGetAllOrdersQueryHandler(db *gorm.DB, policy services.AccessPolicy) GetAllOrdersQueryHandler {
	return GetAllOrdersQueryHandler{db: db, policy: policy}
}

// Handle executes the query. Non-administrators get AccessForbidden
// before any row is read.
func (h GetAllOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetAllOrdersQuery,
) ([]OrderSummaryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if err := h.policy.CanListAllOrders(query.Actor()).Err("list all orders"); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_id,
			status,
			grand_total,
			paid_at,
			delivered_at,
			created_at
		FROM orders
		ORDER BY created_at DESC, id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrderSummaries(rows)
}
