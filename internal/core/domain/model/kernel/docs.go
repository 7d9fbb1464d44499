// Package kernel contains shared value objects used across the domain model.
//
// The package includes:
//   - UUID: identity value object wrapping github.com/google/uuid
//   - Money: a non-negative monetary amount with cent precision
//
// Both types are immutable, must be created through their factory functions,
// and expose Validate methods so aggregates can reject zero values that
// bypassed construction.
package kernel
