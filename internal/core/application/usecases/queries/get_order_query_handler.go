package queries

import (
	"context"
	"database/sql"
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads a single order with its line items.
// Authorization happens after the row is loaded: the owner check needs
// the stored customer id, and an order hidden from a non-owner surfaces
// as Forbidden, not NotFound.
type GetOrderQueryHandler struct {
	db     *gorm.DB
	policy services.AccessPolicy
}

// NewGetOrderQueryHandler creates a handler for single order reads.
func NewGetOrderQueryHandler(db *gorm.DB, policy services.AccessPolicy) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db, policy: policy}
}

// Handle executes the query. Returns ObjectNotFound when no order exists
// under the id and AccessForbidden when the actor is neither the owner
// nor an administrator.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_id,
			shipping_address,
			payment_method,
			status,
			items_total,
			shipping_total,
			tax_total,
			grand_total,
			payment_transaction_id,
			payment_payer_email,
			paid_at,
			delivered_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	var (
		resp       GetOrderQueryResponse
		id         uuid.UUID
		customerID uuid.UUID
		status     int
		paidAt     sql.NullTime
		delivered  sql.NullTime
		txnID      sql.NullString
		payerEmail sql.NullString
	)

	err := row.Scan(
		&id,
		&customerID,
		&resp.ShippingAddress,
		&resp.PaymentMethod,
		&status,
		&resp.ItemsTotal,
		&resp.ShippingTotal,
		&resp.TaxTotal,
		&resp.GrandTotal,
		&txnID,
		&payerEmail,
		&paidAt,
		&delivered,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID())
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}

	if err = h.policy.CanViewOrder(query.Actor(), resp.CustomerID).Err("read order"); err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp.Status = order.Status(status).String()
	if txnID.Valid {
		resp.TransactionID = &txnID.String
	}
	if payerEmail.Valid {
		resp.PayerEmail = &payerEmail.String
	}
	if paidAt.Valid {
		resp.PaidAt = &paidAt.Time
	}
	if delivered.Valid {
		resp.DeliveredAt = &delivered.Time
	}

	if resp.Items, err = h.readItems(ctx, query.OrderID()); err != nil {
		return GetOrderQueryResponse{}, err
	}

	return resp, nil
}

func (h GetOrderQueryHandler) readItems(ctx context.Context, orderID kernel.UUID) ([]OrderItemResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			product_id,
			name,
			quantity,
			unit_price
		FROM order_items
		WHERE order_id = ?
		ORDER BY id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]OrderItemResponse, 0)
	for rows.Next() {
		var (
			item      OrderItemResponse
			productID uuid.UUID
		)

		if err = rows.Scan(&productID, &item.Name, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, err
		}

		if item.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
