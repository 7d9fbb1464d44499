package queries_test

import (
	"testing"

	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/principal"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queryPrincipal(t *testing.T, role principal.Role) principal.Principal {
	t.Helper()
	p, err := principal.NewPrincipal(kernel.NewUUID(), role)
	require.NoError(t, err)
	return p
}

func TestNewGetOrderQuery(t *testing.T) {
	actor := queryPrincipal(t, principal.RoleCustomer)
	orderID := kernel.NewUUID()

	t.Run("valid input", func(t *testing.T) {
		q, err := queries.NewGetOrderQuery(actor, orderID)

		require.NoError(t, err)
		assert.True(t, q.OrderID().IsEqual(orderID))
	})

	t.Run("unconstructed order id", func(t *testing.T) {
		_, err := queries.NewGetOrderQuery(actor, kernel.UUID{})

		require.Error(t, err)
	})

	t.Run("unconstructed actor", func(t *testing.T) {
		_, err := queries.NewGetOrderQuery(principal.Principal{}, orderID)

		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		err := queries.GetOrderQuery{}.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, queries.ErrGetOrderQueryIsNotConstructed)
	})
}

func TestNewGetMyOrdersQuery(t *testing.T) {
	q, err := queries.NewGetMyOrdersQuery(kernel.NewUUID())
	require.NoError(t, err)
	require.NoError(t, q.Validate())

	_, err = queries.NewGetMyOrdersQuery(kernel.UUID{})
	require.Error(t, err)
}

func TestNewGetAllOrdersQuery(t *testing.T) {
	q, err := queries.NewGetAllOrdersQuery(queryPrincipal(t, principal.RoleAdministrator))
	require.NoError(t, err)
	require.NoError(t, q.Validate())

	_, err = queries.NewGetAllOrdersQuery(principal.Principal{})
	require.Error(t, err)
}

func TestNewGetProductsQuery_ClampsPaging(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		q := queries.NewGetProductsQuery("", 0, 0)

		assert.Equal(t, 1, q.Page())
		assert.Equal(t, 10, q.PageSize())
	})

	t.Run("oversized page size falls back to default", func(t *testing.T) {
		q := queries.NewGetProductsQuery("", 2, 500)

		assert.Equal(t, 2, q.Page())
		assert.Equal(t, 10, q.PageSize())
	})

	t.Run("keyword is trimmed", func(t *testing.T) {
		q := queries.NewGetProductsQuery("  airpods ", 1, 10)

		assert.Equal(t, "airpods", q.Keyword())
	})
}

func TestNewAuthenticateUserQuery(t *testing.T) {
	t.Run("lowercases email", func(t *testing.T) {
		q, err := queries.NewAuthenticateUserQuery("Jane@Example.com", "correct-horse")

		require.NoError(t, err)
		assert.Equal(t, "jane@example.com", q.Email())
	})

	t.Run("missing email", func(t *testing.T) {
		_, err := queries.NewAuthenticateUserQuery("  ", "correct-horse")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("missing password", func(t *testing.T) {
		_, err := queries.NewAuthenticateUserQuery("jane@example.com", "")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestNewGetUserProfileQuery(t *testing.T) {
	q, err := queries.NewGetUserProfileQuery(kernel.NewUUID())
	require.NoError(t, err)
	require.NoError(t, q.Validate())

	_, err = queries.NewGetUserProfileQuery(kernel.UUID{})
	require.Error(t, err)
}
