// Package principal models the authenticated actor behind a request.
//
// A Principal is resolved once per request by the access guard from a signed
// credential token plus a fresh role lookup, and is immutable for the
// request's duration. The domain never persists principals; persistence of
// user accounts belongs to the user aggregate.
//
// Roles:
//   - RoleCustomer: a standard account, may act on its own orders
//   - RoleAdministrator: may read and list everything and confirm delivery
//   - RolePaymentService: the trusted payment-confirmation actor; treated
//     as the owner for the purpose of confirming payments
package principal
