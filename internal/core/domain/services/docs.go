// Package services contains stateless domain services that implement
// business rules spanning multiple aggregates.
//
// The package currently provides AccessPolicy, the single authoritative
// place where role and ownership rules are decided. Handlers never branch
// on roles directly; they ask the policy for a Decision and convert it to
// an error, which keeps the authorization contract auditable in one file.
package services
