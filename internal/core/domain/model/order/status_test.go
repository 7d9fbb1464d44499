package order_test

import (
	"testing"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	t.Run("valid statuses", func(t *testing.T) {
		for _, s := range []order.Status{order.Created, order.Paid, order.Delivered} {
			require.NoError(t, s.Validate())
		}
	})

	t.Run("invalid statuses", func(t *testing.T) {
		for _, s := range []order.Status{order.Unknown, order.Status(42), order.Status(-1)} {
			err := s.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "Created", order.Created.String())
	assert.Equal(t, "Paid", order.Paid.String())
	assert.Equal(t, "Delivered", order.Delivered.String())
	assert.Equal(t, "Unknown", order.Unknown.String())
	assert.Equal(t, "Unknown", order.Status(99).String())
}

func TestStatus_Pay(t *testing.T) {
	t.Run("Created transitions to Paid", func(t *testing.T) {
		s, err := order.Created.Pay()

		require.NoError(t, err)
		assert.Equal(t, order.Paid, s)
	})

	t.Run("no other state may enter Paid", func(t *testing.T) {
		for _, s := range []order.Status{order.Paid, order.Delivered, order.Unknown} {
			_, err := s.Pay()
			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrInvalidTransition)
		}
	})
}

func TestStatus_Deliver(t *testing.T) {
	t.Run("Paid transitions to Delivered", func(t *testing.T) {
		s, err := order.Paid.Deliver()

		require.NoError(t, err)
		assert.Equal(t, order.Delivered, s)
	})

	t.Run("delivery cannot skip payment", func(t *testing.T) {
		_, err := order.Created.Deliver()

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("Delivered is terminal", func(t *testing.T) {
		_, err := order.Delivered.Deliver()

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestStatus_ValidateCanHavePayment(t *testing.T) {
	t.Run("Created must have no payment record", func(t *testing.T) {
		require.NoError(t, order.Created.ValidateCanHavePayment(false))
		require.Error(t, order.Created.ValidateCanHavePayment(true))
	})

	t.Run("Paid and Delivered must have one", func(t *testing.T) {
		require.NoError(t, order.Paid.ValidateCanHavePayment(true))
		require.NoError(t, order.Delivered.ValidateCanHavePayment(true))
		require.Error(t, order.Paid.ValidateCanHavePayment(false))
		require.Error(t, order.Delivered.ValidateCanHavePayment(false))
	})
}

func TestStatus_ValidateCanHaveDelivery(t *testing.T) {
	t.Run("only Delivered carries a delivery timestamp", func(t *testing.T) {
		require.NoError(t, order.Delivered.ValidateCanHaveDelivery(true))
		require.NoError(t, order.Created.ValidateCanHaveDelivery(false))
		require.NoError(t, order.Paid.ValidateCanHaveDelivery(false))
		require.Error(t, order.Created.ValidateCanHaveDelivery(true))
		require.Error(t, order.Paid.ValidateCanHaveDelivery(true))
		require.Error(t, order.Delivered.ValidateCanHaveDelivery(false))
	})
}
