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

func mustPrincipal(t *testing.T, role principal.Role) principal.Principal {
	t.Helper()
	p, err := principal.NewPrincipal(kernel.NewUUID(), role)
	require.NoError(t, err)
	return p
}

func TestNewMarkOrderPaidCommand_ValidInput(t *testing.T) {
	actor := mustPrincipal(t, principal.RoleCustomer)
	orderID := kernel.NewUUID()

	cmd, err := commands.NewMarkOrderPaidCommand(actor, orderID, "TXN-1", "jane@example.com", "COMPLETED")

	require.NoError(t, err)
	assert.True(t, cmd.OrderID().IsEqual(orderID))
	assert.Equal(t, "TXN-1", cmd.TransactionID())
	assert.Equal(t, "jane@example.com", cmd.PayerEmail())
	assert.Equal(t, "COMPLETED", cmd.PaymentStatus())
}

func TestNewMarkOrderPaidCommand_MissingTransactionID(t *testing.T) {
	actor := mustPrincipal(t, principal.RoleCustomer)

	_, err := commands.NewMarkOrderPaidCommand(actor, kernel.NewUUID(), "  ", "jane@example.com", "COMPLETED")

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewMarkOrderPaidCommand_MissingPayerEmail(t *testing.T) {
	actor := mustPrincipal(t, principal.RoleCustomer)

	_, err := commands.NewMarkOrderPaidCommand(actor, kernel.NewUUID(), "TXN-1", "", "COMPLETED")

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewMarkOrderPaidCommand_NotCompletedStatus(t *testing.T) {
	actor := mustPrincipal(t, principal.RoleCustomer)

	for _, status := range []string{"CREATED", "APPROVED", "VOIDED", "completed"} {
		_, err := commands.NewMarkOrderPaidCommand(actor, kernel.NewUUID(), "TXN-1", "jane@example.com", status)

		require.Error(t, err, "status %q must be rejected", status)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	}
}

func TestNewMarkOrderPaidCommand_UnconstructedActor(t *testing.T) {
	_, err := commands.NewMarkOrderPaidCommand(
		principal.Principal{}, kernel.NewUUID(), "TXN-1", "jane@example.com", "COMPLETED")

	require.Error(t, err)
}

func TestMarkOrderPaidCommand_Validate_NotConstructed(t *testing.T) {
	cmd := commands.MarkOrderPaidCommand{}

	err := cmd.Validate()

	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrMarkOrderPaidCommandIsNotConstructed)
}
