// Package order provides the purchase order aggregate and its lifecycle.
//
// The package includes:
//   - Order: the aggregate root owning identity, line items, totals, and the
//     payment and delivery records
//   - Status: a state machine enforcing Created -> Paid -> Delivered
//   - LineItem: a (product, quantity, snapshotted price) tuple
//   - PaymentRecord: the external payment confirmation attached on payment
//
// Key business rules:
//   - Line items and the owning customer are immutable after creation
//   - Totals are computed once at creation from snapshotted prices and the
//     fixed shipping and tax rules, and are never recomputed
//   - Payment happens exactly once; delivery happens exactly once and only
//     after payment; neither transition can be reversed
//   - Delivered-without-paid is structurally unrepresentable: the delivery
//     timestamp only exists alongside the Delivered status, which is only
//     reachable from Paid
package order
