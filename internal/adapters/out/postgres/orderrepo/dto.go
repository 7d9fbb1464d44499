// Package orderrepo persists the order aggregate. An order maps to one
// row in "orders" plus one row per line item in "order_items"; money
// amounts are stored as numeric columns and travel as strings between
// the database and the decimal-backed domain values.
package orderrepo

import (
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order
// aggregates. The payment and delivery columns are nullable; their
// presence is consistent with the status column by construction, since
// every write goes through the aggregate.
type OrderDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID      uuid.UUID `gorm:"type:uuid;index"`
	ShippingAddress string
	PaymentMethod   string

	ItemsTotal    string `gorm:"type:numeric(12,2)"`
	ShippingTotal string `gorm:"type:numeric(12,2)"`
	TaxTotal      string `gorm:"type:numeric(12,2)"`
	GrandTotal    string `gorm:"type:numeric(12,2)"`

	Status               int `gorm:"index"`
	PaymentTransactionID *string
	PaymentPayerEmail    *string
	PaidAt               *time.Time
	DeliveredAt          *time.Time

	CreatedAt time.Time

	Items []OrderItemDTO `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents one persisted line item. The surrogate key
// preserves insertion order, which is the line item order of the
// aggregate.
type OrderItemDTO struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	ProductID uuid.UUID `gorm:"type:uuid"`
	Name      string
	Quantity  int
	UnitPrice string `gorm:"type:numeric(12,2)"`
}

// TableName specifies the database table name for order line items.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, OrderItemDTO{
			OrderID:   aggregate.ID().Bytes(),
			ProductID: item.ProductID().Bytes(),
			Name:      item.Name(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice().String(),
		})
	}

	dto := OrderDTO{
		ID:              aggregate.ID().Bytes(),
		CustomerID:      aggregate.CustomerID().Bytes(),
		ShippingAddress: aggregate.ShippingAddress(),
		PaymentMethod:   aggregate.PaymentMethod(),
		ItemsTotal:      aggregate.Totals().Items.String(),
		ShippingTotal:   aggregate.Totals().Shipping.String(),
		TaxTotal:        aggregate.Totals().Tax.String(),
		GrandTotal:      aggregate.Totals().Grand.String(),
		Status:          int(aggregate.Status()),
		DeliveredAt:     aggregate.DeliveredAt(),
		Items:           items,
	}

	if payment := aggregate.Payment(); payment != nil {
		transactionID := payment.TransactionID()
		payerEmail := payment.PayerEmail()
		paidAt := payment.PaidAt()
		dto.PaymentTransactionID = &transactionID
		dto.PaymentPayerEmail = &payerEmail
		dto.PaidAt = &paidAt
	}

	return dto
}

// toDomain converts a database DTO back to an order aggregate using
// RestoreOrder, which re-validates cross-field consistency.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		productID, itemErr := kernel.UUIDFromBytes(itemDTO.ProductID[:])
		if itemErr != nil {
			return nil, itemErr
		}

		unitPrice, itemErr := kernel.MoneyFromString(itemDTO.UnitPrice)
		if itemErr != nil {
			return nil, itemErr
		}

		item, itemErr := order.NewLineItem(productID, itemDTO.Name, itemDTO.Quantity, unitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	totals, err := totalsFromDTO(dto)
	if err != nil {
		return nil, err
	}

	var payment *order.PaymentRecord
	if dto.PaymentTransactionID != nil && dto.PaymentPayerEmail != nil && dto.PaidAt != nil {
		record, recordErr := order.NewPaymentRecord(*dto.PaymentTransactionID, *dto.PaymentPayerEmail, *dto.PaidAt)
		if recordErr != nil {
			return nil, recordErr
		}
		payment = &record
	}

	return order.RestoreOrder(
		id,
		customerID,
		items,
		dto.ShippingAddress,
		dto.PaymentMethod,
		totals,
		order.Status(dto.Status),
		payment,
		dto.DeliveredAt,
	)
}

func totalsFromDTO(dto OrderDTO) (order.Totals, error) {
	itemsTotal, err := kernel.MoneyFromString(dto.ItemsTotal)
	if err != nil {
		return order.Totals{}, err
	}

	shipping, err := kernel.MoneyFromString(dto.ShippingTotal)
	if err != nil {
		return order.Totals{}, err
	}

	tax, err := kernel.MoneyFromString(dto.TaxTotal)
	if err != nil {
		return order.Totals{}, err
	}

	grand, err := kernel.MoneyFromString(dto.GrandTotal)
	if err != nil {
		return order.Totals{}, err
	}

	return order.Totals{
		Items:    itemsTotal,
		Shipping: shipping,
		Tax:      tax,
		Grand:    grand,
	}, nil
}
