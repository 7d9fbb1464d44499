package ports

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/kernel"
)

// VerifiedPayment is the provider's view of a payment capture. The
// transaction id is the provider's identifier, not ours.
type VerifiedPayment struct {
	TransactionID string
	Status        string
	PayerEmail    string
	UpdatedAt     time.Time
}

// IsCompleted reports whether the provider considers the capture final.
// Anything else (created, approved, voided) must not mark an order paid.
func (p VerifiedPayment) IsCompleted() bool {
	return p.Status == "COMPLETED"
}

// PaymentVerifier is the outbound gateway to the payment provider. A
// payment confirmation is only trusted after the provider itself reports
// the capture as completed; client-supplied details are never enough.
//
// Implementations classify transient provider failures (timeouts,
// connection resets, 5xx responses) as errs.RetryableFailureError so the
// request boundary can answer with a retryable status.
type PaymentVerifier interface {
	// Verify looks up a capture by the provider transaction id.
	Verify(ctx context.Context, transactionID string) (VerifiedPayment, error)

	// FindCompletedByOrder searches the provider for a completed capture
	// referencing the given order. Returns errs.ErrObjectNotFound when the
	// provider has no completed capture for it. Used by the reconciliation
	// job to recover confirmations lost between provider and API.
	FindCompletedByOrder(ctx context.Context, orderID kernel.UUID) (VerifiedPayment, error)
}
