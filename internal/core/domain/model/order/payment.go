package order

import (
	"errors"
	"strings"
	"time"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

// ErrPaymentRecordIsNotConstructed is returned when a PaymentRecord was not
// created through the NewPaymentRecord factory function.
var ErrPaymentRecordIsNotConstructed = errors.New("PaymentRecord must be created via NewPaymentRecord constructor")

// PaymentRecord captures the confirmation of a completed external payment:
// the provider's transaction id, the payer's email, and the moment the
// order was marked paid. A record is attached to an order exactly once.
type PaymentRecord struct { //nolint:recvcheck //using for validation
	transactionID string
	payerEmail    string
	paidAt        time.Time

	guard guard.ConstructorGuard
}

// NewPaymentRecord creates a validated payment record. Transaction id and
// payer email are required; paidAt must be a real timestamp.
func NewPaymentRecord(transactionID, payerEmail string, paidAt time.Time) (PaymentRecord, error) {
	record := PaymentRecord{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		record.setTransactionID(transactionID),
		record.setPayerEmail(payerEmail),
		record.setPaidAt(paidAt),
	); err != nil {
		return PaymentRecord{}, err
	}

	return record, nil
}

// Validate ensures the record was created via NewPaymentRecord.
func (p PaymentRecord) Validate() error {
	return p.guard.Validate(ErrPaymentRecordIsNotConstructed)
}

// TransactionID returns the external provider's transaction id.
func (p PaymentRecord) TransactionID() string {
	return p.transactionID
}

// PayerEmail returns the payer's email as reported by the provider.
func (p PaymentRecord) PayerEmail() string {
	return p.payerEmail
}

// PaidAt returns the payment timestamp.
func (p PaymentRecord) PaidAt() time.Time {
	return p.paidAt
}

// Matches reports whether another record refers to the same external
// transaction. Used to resolve idempotent re-confirmation of a payment.
func (p PaymentRecord) Matches(other PaymentRecord) bool {
	return p.transactionID == other.transactionID
}

func (p *PaymentRecord) setTransactionID(transactionID string) error {
	if strings.TrimSpace(transactionID) == "" {
		return errs.NewValueIsRequiredError("transaction id")
	}
	p.transactionID = transactionID
	return nil
}

func (p *PaymentRecord) setPayerEmail(payerEmail string) error {
	if strings.TrimSpace(payerEmail) == "" {
		return errs.NewValueIsRequiredError("payer email")
	}
	if !strings.Contains(payerEmail, "@") {
		return errs.NewValueIsInvalidError("payer email")
	}
	p.payerEmail = payerEmail
	return nil
}

func (p *PaymentRecord) setPaidAt(paidAt time.Time) error {
	if paidAt.IsZero() {
		return errs.NewValueIsRequiredError("paid at")
	}
	p.paidAt = paidAt
	return nil
}
