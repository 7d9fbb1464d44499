package commands_test

import (
	"testing"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/principal"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, amount string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(amount)
	require.NoError(t, err)
	return m
}

func TestNewCreateProductCommand_ValidInput(t *testing.T) {
	admin := mustPrincipal(t, principal.RoleAdministrator)
	productID := kernel.NewUUID()

	cmd, err := commands.NewCreateProductCommand(admin, productID, "Airpods", "Apple", mustMoney(t, "89.99"), 10)

	require.NoError(t, err)
	assert.True(t, cmd.ProductID().IsEqual(productID))
	assert.Equal(t, "Airpods", cmd.Name())
	assert.Equal(t, "Apple", cmd.Brand())
	assert.Equal(t, "89.99", cmd.Price().String())
	assert.Equal(t, 10, cmd.Stock())
}

func TestNewCreateProductCommand_InvalidInput(t *testing.T) {
	admin := mustPrincipal(t, principal.RoleAdministrator)

	_, err := commands.NewCreateProductCommand(admin, kernel.NewUUID(), "", "Apple", mustMoney(t, "89.99"), 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewCreateProductCommand(admin, kernel.NewUUID(), "Airpods", "Apple", kernel.Money{}, 10)
	require.Error(t, err)

	_, err = commands.NewCreateProductCommand(admin, kernel.NewUUID(), "Airpods", "Apple", mustMoney(t, "89.99"), -1)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestCreateProductCommand_Validate_NotConstructed(t *testing.T) {
	cmd := commands.CreateProductCommand{}

	err := cmd.Validate()

	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrCreateProductCommandIsNotConstructed)
}
