package http_test

import (
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	apihttp "storefront/internal/adapters/in/http"
	"storefront/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, denyList *MockTokenDenyList) (*apihttp.Server, *echo.Echo) {
	t.Helper()

	tokens := mustTokenService(t)
	server := apihttp.NewServer(apihttp.Handlers{}, tokens, denyList, "paypal-client-id")

	e := echo.New()
	middleware := apihttp.NewAuthMiddleware(tokens, denyList, new(MockAuthUserRepository))
	server.RegisterRoutes(e, middleware)
	return server, e
}

func TestServer_Health(t *testing.T) {
	_, e := newTestServer(t, new(MockTokenDenyList))

	req := httptest.NewRequest(nethttp.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, nethttp.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestServer_GetPayPalConfig(t *testing.T) {
	_, e := newTestServer(t, new(MockTokenDenyList))

	req := httptest.NewRequest(nethttp.MethodGet, "/api/config/paypal", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, nethttp.StatusOK, rec.Code)
	assert.JSONEq(t, `{"clientId":"paypal-client-id"}`, rec.Body.String())
}

func TestServer_Logout(t *testing.T) {
	t.Run("revokes presented token and clears cookie", func(t *testing.T) {
		denyList := new(MockTokenDenyList)
		denyList.On("Revoke", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		tokens := mustTokenService(t)
		server := apihttp.NewServer(apihttp.Handlers{}, tokens, denyList, "paypal-client-id")
		e := echo.New()
		server.RegisterRoutes(e, apihttp.NewAuthMiddleware(tokens, denyList, new(MockAuthUserRepository)))

		signed, err := tokens.Issue(kernel.NewUUID().String())
		require.NoError(t, err)

		req := httptest.NewRequest(nethttp.MethodPost, "/api/users/logout", nil)
		req.AddCookie(&nethttp.Cookie{Name: "jwt", Value: signed})
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, nethttp.StatusOK, rec.Code)
		denyList.AssertCalled(t, "Revoke", mock.Anything, mock.Anything, mock.Anything)

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "jwt", cookies[0].Name)
		assert.Empty(t, cookies[0].Value)
		assert.Negative(t, cookies[0].MaxAge)
	})

	t.Run("revocation ttl matches remaining token lifetime", func(t *testing.T) {
		denyList := new(MockTokenDenyList)
		denyList.On("Revoke", mock.Anything, mock.Anything,
			mock.MatchedBy(func(ttl time.Duration) bool {
				return ttl > 59*time.Minute && ttl <= time.Hour
			})).Return(nil)

		tokens := mustTokenService(t)
		server := apihttp.NewServer(apihttp.Handlers{}, tokens, denyList, "paypal-client-id")
		e := echo.New()
		server.RegisterRoutes(e, apihttp.NewAuthMiddleware(tokens, denyList, new(MockAuthUserRepository)))

		signed, err := tokens.Issue(kernel.NewUUID().String())
		require.NoError(t, err)

		req := httptest.NewRequest(nethttp.MethodPost, "/api/users/logout", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+signed)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, nethttp.StatusOK, rec.Code)
		denyList.AssertExpectations(t)
	})

	t.Run("without token only clears cookie", func(t *testing.T) {
		denyList := new(MockTokenDenyList)
		_, e := newTestServer(t, denyList)

		req := httptest.NewRequest(nethttp.MethodPost, "/api/users/logout", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, nethttp.StatusOK, rec.Code)
		denyList.AssertNotCalled(t, "Revoke", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("deny list outage answers service unavailable", func(t *testing.T) {
		denyList := new(MockTokenDenyList)
		denyList.On("Revoke", mock.Anything, mock.Anything, mock.Anything).
			Return(assert.AnError)

		tokens := mustTokenService(t)
		server := apihttp.NewServer(apihttp.Handlers{}, tokens, denyList, "paypal-client-id")
		e := echo.New()
		server.RegisterRoutes(e, apihttp.NewAuthMiddleware(tokens, denyList, new(MockAuthUserRepository)))

		signed, err := tokens.Issue(kernel.NewUUID().String())
		require.NoError(t, err)

		req := httptest.NewRequest(nethttp.MethodPost, "/api/users/logout", nil)
		req.AddCookie(&nethttp.Cookie{Name: "jwt", Value: signed})
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, nethttp.StatusServiceUnavailable, rec.Code)
	})
}

func TestServer_ProtectedRoutesRequireAuthentication(t *testing.T) {
	_, e := newTestServer(t, new(MockTokenDenyList))

	routes := []struct {
		method string
		path   string
	}{
		{nethttp.MethodGet, "/api/users/profile"},
		{nethttp.MethodPost, "/api/orders"},
		{nethttp.MethodGet, "/api/orders"},
		{nethttp.MethodGet, "/api/orders/mine"},
		{nethttp.MethodGet, "/api/orders/" + kernel.NewUUID().String()},
		{nethttp.MethodPut, "/api/orders/" + kernel.NewUUID().String() + "/pay"},
		{nethttp.MethodPut, "/api/orders/" + kernel.NewUUID().String() + "/deliver"},
		{nethttp.MethodPost, "/api/products"},
	}

	for _, route := range routes {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			req := httptest.NewRequest(route.method, route.path, nil)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, nethttp.StatusUnauthorized, rec.Code)

			var body apihttp.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, nethttp.StatusUnauthorized, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}
