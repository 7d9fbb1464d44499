package commands

import (
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/principal"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrCreateProductCommandIsNotConstructed = errors.New(
	"CreateProductCommand must be created via NewCreateProductCommand constructor",
)

// CreateProductCommand represents an administrator adding a catalog entry.
type CreateProductCommand struct { //nolint:recvcheck //using for validation
	actor     principal.Principal
	productID kernel.UUID
	name      string
	brand     string
	price     kernel.Money
	stock     int

	guard guard.ConstructorGuard
}

// NewCreateProductCommand creates a command to add a product to the catalog.
func NewCreateProductCommand(
	actor principal.Principal,
	productID kernel.UUID,
	name, brand string,
	price kernel.Money,
	stock int,
) (CreateProductCommand, error) {
	productCommand := CreateProductCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		productCommand.setActor(actor),
		productCommand.setProductID(productID),
		productCommand.setName(name),
		productCommand.setPrice(price),
		productCommand.setStock(stock),
	); err != nil {
		return CreateProductCommand{}, err
	}

	productCommand.brand = brand
	return productCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateProductCommandIsNotConstructed if validation fails.
func (c CreateProductCommand) Validate() error {
	return c.guard.Validate(ErrCreateProductCommandIsNotConstructed)
}

// Actor returns the principal adding the product.
func (c CreateProductCommand) Actor() principal.Principal {
	return c.actor
}

// ProductID returns the identifier assigned to the new product.
func (c CreateProductCommand) ProductID() kernel.UUID {
	return c.productID
}

// Name returns the product name.
func (c CreateProductCommand) Name() string {
	return c.name
}

// Brand returns the product brand, possibly empty.
func (c CreateProductCommand) Brand() string {
	return c.brand
}

// Price returns the catalog price.
func (c CreateProductCommand) Price() kernel.Money {
	return c.price
}

// Stock returns the initial stock count.
func (c CreateProductCommand) Stock() int {
	return c.stock
}

func (c *CreateProductCommand) setActor(actor principal.Principal) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *CreateProductCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}

	c.productID = productID
	return nil
}

func (c *CreateProductCommand) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("product name")
	}

	c.name = name
	return nil
}

func (c *CreateProductCommand) setPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}

	c.price = price
	return nil
}

func (c *CreateProductCommand) setStock(stock int) error {
	if stock < 0 {
		return errs.NewValueIsInvalidErrorWithCause("stock",
			fmt.Errorf("%d is negative", stock))
	}

	c.stock = stock
	return nil
}
