// Package product provides the catalog product aggregate. Products are the
// source of the price snapshots taken at order creation; changing a product's
// price never alters existing orders.
package product

import (
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

// ErrProductIsNotConstructed is returned when a Product instance was not
// created through the NewProduct or RestoreProduct factory functions.
var ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")

// Product represents a catalog entry with a current price and stock count.
//
// Product follows these invariants:
//   - Must have a valid unique identifier and non-empty name
//   - Price must be a constructed, non-negative amount
//   - Stock count can never be negative
type Product struct {
	id    kernel.UUID
	name  string
	brand string
	price kernel.Money
	stock int

	isConstructed bool
}

// NewProduct creates a validated catalog product.
func NewProduct(id kernel.UUID, name, brand string, price kernel.Money, stock int) (*Product, error) {
	p := &Product{
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setBrand(brand),
		p.setPrice(price),
		p.setStock(stock),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreProduct reconstructs a Product from persistence.
func RestoreProduct(id kernel.UUID, name, brand string, price kernel.Money, stock int) (*Product, error) {
	return NewProduct(id, name, brand, price, stock)
}

// Validate ensures the Product was created through a factory function.
func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

// ID returns the product's unique identifier.
func (p *Product) ID() kernel.UUID {
	return p.id
}

// Name returns the product name.
func (p *Product) Name() string {
	return p.name
}

// Brand returns the product brand, possibly empty.
func (p *Product) Brand() string {
	return p.brand
}

// Price returns the current catalog price.
func (p *Product) Price() kernel.Money {
	return p.price
}

// Stock returns the units currently in stock.
func (p *Product) Stock() int {
	return p.stock
}

// ChangePrice updates the catalog price. Existing orders keep their
// snapshotted prices.
func (p *Product) ChangePrice(price kernel.Money) error {
	return p.setPrice(price)
}

// Restock adjusts the stock count by delta, rejecting adjustments that
// would drive it negative.
func (p *Product) Restock(delta int) error {
	return p.setStock(p.stock + delta)
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("product name")
	}
	p.name = name
	return nil
}

func (p *Product) setBrand(brand string) error {
	p.brand = brand
	return nil
}

func (p *Product) setPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	p.price = price
	return nil
}

func (p *Product) setStock(stock int) error {
	if stock < 0 {
		return errs.NewValueIsInvalidErrorWithCause("stock",
			fmt.Errorf("%d is negative", stock))
	}
	p.stock = stock
	return nil
}
