package order

import (
	"errors"
	"fmt"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory functions.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrPaymentRecordDiffers is the cause attached when a payment confirmation
	// arrives for an already paid order with a different transaction id.
	ErrPaymentRecordDiffers = errors.New("payment record differs from the recorded one")
)

// Fixed pricing rules applied once at order creation. Items totals above the
// threshold ship free; otherwise a flat fee applies. Tax is a flat rate on
// the items total, rounded to cents.
var (
	freeShippingThreshold, _ = kernel.MoneyFromString("100.00")
	flatShippingFee, _       = kernel.MoneyFromString("10.00")
	taxRate                  = decimal.New(15, -2)
)

// Totals are the amounts computed deterministically from the line items at
// creation time. They are persisted with the order and never recomputed.
type Totals struct {
	Items    kernel.Money
	Shipping kernel.Money
	Tax      kernel.Money
	Grand    kernel.Money
}

// Validate checks every amount was properly constructed.
func (t Totals) Validate() error {
	return errors.Join(
		t.Items.Validate(),
		t.Shipping.Validate(),
		t.Tax.Validate(),
		t.Grand.Validate(),
	)
}

// computeTotals applies the fixed pricing rules to a line item sequence.
func computeTotals(items []LineItem) Totals {
	itemsTotal := kernel.Zero()
	for _, item := range items {
		itemsTotal = itemsTotal.Add(item.Subtotal())
	}

	shipping := flatShippingFee
	if itemsTotal.GreaterThan(freeShippingThreshold) {
		shipping = kernel.Zero()
	}

	tax := itemsTotal.MulRate(taxRate)

	return Totals{
		Items:    itemsTotal,
		Shipping: shipping,
		Tax:      tax,
		Grand:    itemsTotal.Add(shipping).Add(tax),
	}
}

// Order represents a purchase order. It is the aggregate root that manages
// the lifecycle from creation through payment confirmation to delivery.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and owning customer
//   - Line items are non-empty and immutable after creation
//   - Totals are snapshotted at creation and never recomputed
//   - Payment transitions false->true exactly once; never back
//   - Delivery transitions false->true exactly once, only after payment
//
// The struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods.
type Order struct {
	id         kernel.UUID
	customerID kernel.UUID

	items           []LineItem
	shippingAddress string
	paymentMethod   string
	totals          Totals

	status      Status
	payment     *PaymentRecord
	deliveredAt *time.Time

	isConstructed bool
}

// NewOrder creates a new Order owned by customerID in state Created,
// computing the snapshotted totals from the given line items.
//
// Fails when the line item sequence is empty, when any item was not built
// through NewLineItem, or when any identifier is invalid.
func NewOrder(id, customerID kernel.UUID, items []LineItem, shippingAddress, paymentMethod string) (*Order, error) {
	o := &Order{
		status:        Created,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setItems(items),
		o.setShippingAddress(shippingAddress),
		o.setPaymentMethod(paymentMethod),
	); err != nil {
		return nil, err
	}

	o.totals = computeTotals(o.items)
	return o, nil
}

// RestoreOrder reconstructs an Order from persistence without recomputing
// totals. It validates cross-field consistency: a payment record must be
// present exactly for Paid and Delivered orders, and a delivery timestamp
// exactly for Delivered ones.
func RestoreOrder(
	id, customerID kernel.UUID,
	items []LineItem,
	shippingAddress, paymentMethod string,
	totals Totals,
	status Status,
	payment *PaymentRecord,
	deliveredAt *time.Time,
) (*Order, error) {
	o := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setItems(items),
		o.setShippingAddress(shippingAddress),
		o.setPaymentMethod(paymentMethod),
		totals.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if err := errors.Join(
		status.ValidateCanHavePayment(payment != nil),
		status.ValidateCanHaveDelivery(deliveredAt != nil),
	); err != nil {
		return nil, err
	}

	if payment != nil {
		if err := payment.Validate(); err != nil {
			return nil, err
		}
	}

	o.totals = totals
	o.status = status
	o.payment = payment
	o.deliveredAt = deliveredAt
	return o, nil
}

// Validate ensures the Order instance was properly constructed through a
// factory function. Call when reconstructing orders from external input.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the owning customer's identity.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// Items returns a copy of the line items; the order's own sequence stays
// immutable.
func (o *Order) Items() []LineItem {
	items := make([]LineItem, len(o.items))
	copy(items, o.items)
	return items
}

// ShippingAddress returns the destination address supplied at creation.
func (o *Order) ShippingAddress() string {
	return o.shippingAddress
}

// PaymentMethod returns the payment method label supplied at creation.
func (o *Order) PaymentMethod() string {
	return o.paymentMethod
}

// Totals returns the snapshotted totals.
func (o *Order) Totals() Totals {
	return o.totals
}

// Status returns the current lifecycle state.
func (o *Order) Status() Status {
	return o.status
}

// IsPaid reports whether the order has a confirmed payment.
func (o *Order) IsPaid() bool {
	return o.status == Paid || o.status == Delivered
}

// IsDelivered reports whether the order reached its terminal state.
func (o *Order) IsDelivered() bool {
	return o.status == Delivered
}

// Payment returns the payment record, or nil while the order is unpaid.
func (o *Order) Payment() *PaymentRecord {
	return o.payment
}

// DeliveredAt returns the delivery timestamp, or nil before delivery.
func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// MarkPaid records a verified external payment and transitions the order
// from Created to Paid.
//
// Re-invocation on an already paid order is resolved deterministically:
// a record referring to the same external transaction is a no-op success,
// while a differing record fails with an InvalidTransitionError carrying
// ErrPaymentRecordDiffers. The paid flag never transitions back.
func (o *Order) MarkPaid(record PaymentRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	if o.IsPaid() {
		if o.payment != nil && o.payment.Matches(record) {
			return nil
		}
		return errs.NewInvalidTransitionErrorWithCause(o.status.String(), Paid.String(), ErrPaymentRecordDiffers)
	}

	newStatus, err := o.status.Pay()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.payment = &record
	return nil
}

// MarkDelivered stamps the delivery timestamp and transitions the order
// from Paid to Delivered. Delivering an unpaid order, or re-delivering,
// fails with an InvalidTransitionError.
func (o *Order) MarkDelivered(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("delivered at")
	}

	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.deliveredAt = &at
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return fmt.Errorf("customer id: %w", err)
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("line items")
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	o.items = make([]LineItem, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setShippingAddress(shippingAddress string) error {
	if shippingAddress == "" {
		return errs.NewValueIsRequiredError("shipping address")
	}
	o.shippingAddress = shippingAddress
	return nil
}

func (o *Order) setPaymentMethod(paymentMethod string) error {
	if paymentMethod == "" {
		return errs.NewValueIsRequiredError("payment method")
	}
	o.paymentMethod = paymentMethod
	return nil
}
