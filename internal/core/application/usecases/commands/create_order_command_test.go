package commands_test

import (
	"testing"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSelection(t *testing.T, quantity int) commands.ItemSelection {
	t.Helper()
	selection, err := commands.NewItemSelection(kernel.NewUUID(), quantity)
	require.NoError(t, err)
	return selection
}

func TestNewItemSelection(t *testing.T) {
	t.Run("valid input", func(t *testing.T) {
		productID := kernel.NewUUID()
		selection, err := commands.NewItemSelection(productID, 3)

		require.NoError(t, err)
		assert.True(t, selection.ProductID().IsEqual(productID))
		assert.Equal(t, 3, selection.Quantity())
	})

	t.Run("zero quantity", func(t *testing.T) {
		_, err := commands.NewItemSelection(kernel.NewUUID(), 0)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("unconstructed product id", func(t *testing.T) {
		_, err := commands.NewItemSelection(kernel.UUID{}, 1)

		require.Error(t, err)
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	orderID := kernel.NewUUID()
	customerID := kernel.NewUUID()
	items := []commands.ItemSelection{mustSelection(t, 2), mustSelection(t, 1)}

	cmd, err := commands.NewCreateOrderCommand(orderID, customerID, items, "221B Baker Street", "PayPal")

	require.NoError(t, err)
	assert.True(t, cmd.OrderID().IsEqual(orderID))
	assert.True(t, cmd.CustomerID().IsEqual(customerID))
	assert.Len(t, cmd.Items(), 2)
	assert.Equal(t, "221B Baker Street", cmd.ShippingAddress())
	assert.Equal(t, "PayPal", cmd.PaymentMethod())
}

func TestNewCreateOrderCommand_EmptyItems(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), nil, "221B Baker Street", "PayPal")

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewCreateOrderCommand_UnconstructedSelection(t *testing.T) {
	items := []commands.ItemSelection{{}}

	_, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), items, "221B Baker Street", "PayPal")

	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrItemSelectionIsNotConstructed)
}

func TestNewCreateOrderCommand_MissingShippingDetails(t *testing.T) {
	items := []commands.ItemSelection{mustSelection(t, 1)}

	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), items, "", "PayPal")
	require.Error(t, err)

	_, err = commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), items, "221B Baker Street", "")
	require.Error(t, err)
}

func TestCreateOrderCommand_Validate_NotConstructed(t *testing.T) {
	cmd := commands.CreateOrderCommand{}

	err := cmd.Validate()

	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
}
