package commands_test

import (
	"testing"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegisterUserCommand_ValidInput(t *testing.T) {
	userID := kernel.NewUUID()

	cmd, err := commands.NewRegisterUserCommand(userID, "Jane Doe", "jane@example.com", "correct-horse")

	require.NoError(t, err)
	assert.True(t, cmd.UserID().IsEqual(userID))
	assert.Equal(t, "Jane Doe", cmd.Name())
	assert.Equal(t, "jane@example.com", cmd.Email())
	assert.Equal(t, "correct-horse", cmd.Password())
}

func TestNewRegisterUserCommand_MissingFields(t *testing.T) {
	userID := kernel.NewUUID()

	_, err := commands.NewRegisterUserCommand(userID, "", "jane@example.com", "correct-horse")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewRegisterUserCommand(userID, "Jane", "", "correct-horse")
	require.Error(t, err)

	_, err = commands.NewRegisterUserCommand(userID, "Jane", "jane@example.com", "")
	require.Error(t, err)
}

func TestRegisterUserCommand_Validate_NotConstructed(t *testing.T) {
	cmd := commands.RegisterUserCommand{}

	err := cmd.Validate()

	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrRegisterUserCommandIsNotConstructed)
}
