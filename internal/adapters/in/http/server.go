// Package http exposes the storefront over a JSON API. Handlers translate
// requests into commands and queries; every error answer uses the uniform
// {code, message} body.
package http

import (
	"net/http"
	"strconv"
	"time"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/token"

	"github.com/labstack/echo/v4"
)

// Handlers groups the use case handlers the server dispatches to.
type Handlers struct {
	RegisterUser     commands.RegisterUserCommandHandler
	CreateProduct    commands.CreateProductCommandHandler
	CreateOrder      commands.CreateOrderCommandHandler
	MarkOrderPaid    commands.MarkOrderPaidCommandHandler
	MarkOrderDeliver commands.MarkOrderDeliveredCommandHandler

	AuthenticateUser queries.AuthenticateUserQueryHandler
	GetUserProfile   queries.GetUserProfileQueryHandler
	GetProducts      queries.GetProductsQueryHandler
	GetProduct       queries.GetProductQueryHandler
	GetOrder         queries.GetOrderQueryHandler
	GetMyOrders      queries.GetMyOrdersQueryHandler
	GetAllOrders     queries.GetAllOrdersQueryHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers       Handlers
	tokens         *token.Service
	denyList       ports.TokenDenyList
	paypalClientID string
}

// NewServer creates the HTTP server.
func NewServer(
	handlers Handlers,
	tokens *token.Service,
	denyList ports.TokenDenyList,
	paypalClientID string,
) *Server {
	return &Server{
		handlers:       handlers,
		tokens:         tokens,
		denyList:       denyList,
		paypalClientID: paypalClientID,
	}
}

// RegisterRoutes wires all API routes onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo, auth *AuthMiddleware) {
	e.GET("/health", s.Health)
	e.GET("/api/config/paypal", s.GetPayPalConfig)

	e.POST("/api/users", s.RegisterUser)
	e.POST("/api/users/auth", s.Login)
	e.POST("/api/users/logout", s.Logout)
	e.GET("/api/users/profile", s.GetProfile, auth.Authenticate())

	e.GET("/api/products", s.ListProducts)
	e.GET("/api/products/:id", s.GetProduct)
	e.POST("/api/products", s.CreateProduct, auth.Authenticate(), auth.RequireAdmin())

	e.POST("/api/orders", s.CreateOrder, auth.Authenticate())
	e.GET("/api/orders", s.ListOrders, auth.Authenticate(), auth.RequireAdmin())
	e.GET("/api/orders/mine", s.GetMyOrders, auth.Authenticate())
	e.GET("/api/orders/:id", s.GetOrder, auth.Authenticate())
	e.PUT("/api/orders/:id/pay", s.PayOrder, auth.Authenticate())
	e.PUT("/api/orders/:id/deliver", s.DeliverOrder, auth.Authenticate(), auth.RequireAdmin())
}

type userResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

func toUserResponse(profile queries.UserResponse) userResponse {
	return userResponse{
		ID:      profile.ID.String(),
		Name:    profile.Name,
		Email:   profile.Email,
		IsAdmin: profile.IsAdmin,
	}
}

type registerUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterUser handles POST /api/users - creates an account and signs the
// new user in.
func (s *Server) RegisterUser(ctx echo.Context) error {
	var req registerUserRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	userID := kernel.NewUUID()
	cmd, err := commands.NewRegisterUserCommand(userID, req.Name, req.Email, req.Password)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.handlers.RegisterUser.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetUserProfileQuery(userID)
	if err != nil {
		return writeError(ctx, err)
	}
	profile, err := s.handlers.GetUserProfile.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.issueSession(ctx, userID); err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, toUserResponse(profile))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/users/auth - verifies credentials and sets the
// session cookie.
func (s *Server) Login(ctx echo.Context) error {
	var req loginRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	query, err := queries.NewAuthenticateUserQuery(req.Email, req.Password)
	if err != nil {
		return writeError(ctx, err)
	}

	profile, err := s.handlers.AuthenticateUser.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.issueSession(ctx, profile.ID); err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toUserResponse(profile))
}

// Logout handles POST /api/users/logout - revokes the presented token for
// its remaining lifetime and clears the session cookie.
func (s *Server) Logout(ctx echo.Context) error {
	if tokenString := extractToken(ctx); tokenString != "" {
		if claims, err := s.tokens.Verify(tokenString); err == nil {
			remaining := time.Until(claims.ExpiresAt.Time)
			if err := s.denyList.Revoke(ctx.Request().Context(), claims.ID, remaining); err != nil {
				return writeError(ctx,
					errs.NewRetryableFailureErrorWithCause("revoke token", err))
			}
		}
	}

	s.clearSession(ctx)
	return ctx.JSON(http.StatusOK, map[string]string{"message": "logged out"})
}

// GetProfile handles GET /api/users/profile - returns the authenticated
// account.
func (s *Server) GetProfile(ctx echo.Context) error {
	actor, ok := principalFromContext(ctx)
	if !ok {
		return writeError(ctx, errs.NewUnauthenticatedError("missing credentials"))
	}

	query, err := queries.NewGetUserProfileQuery(actor.ID())
	if err != nil {
		return writeError(ctx, err)
	}

	profile, err := s.handlers.GetUserProfile.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toUserResponse(profile))
}

type productResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Brand string `json:"brand"`
	Price string `json:"price"`
	Stock int    `json:"stock"`
}

func toProductResponse(p queries.ProductResponse) productResponse {
	return productResponse{
		ID:    p.ID.String(),
		Name:  p.Name,
		Brand: p.Brand,
		Price: p.Price,
		Stock: p.Stock,
	}
}

type productPageResponse struct {
	Items []productResponse `json:"items"`
	Page  int               `json:"page"`
	Pages int               `json:"pages"`
	Total int64             `json:"total"`
}

// ListProducts handles GET /api/products - public catalog listing with
// keyword search and pagination.
func (s *Server) ListProducts(ctx echo.Context) error {
	page, _ := strconv.Atoi(ctx.QueryParam("page"))
	pageSize, _ := strconv.Atoi(ctx.QueryParam("pageSize"))
	query := queries.NewGetProductsQuery(ctx.QueryParam("keyword"), page, pageSize)

	result, err := s.handlers.GetProducts.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	items := make([]productResponse, len(result.Items))
	for i, item := range result.Items {
		items[i] = toProductResponse(item)
	}
	return ctx.JSON(http.StatusOK, productPageResponse{
		Items: items,
		Page:  result.Page,
		Pages: result.Pages,
		Total: result.Total,
	})
}

// GetProduct handles GET /api/products/:id - public single product read.
func (s *Server) GetProduct(ctx echo.Context) error {
	productID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetProductQuery(productID)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.handlers.GetProduct.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toProductResponse(result))
}

type createProductRequest struct {
	Name  string `json:"name"`
	Brand string `json:"brand"`
	Price string `json:"price"`
	Stock int    `json:"stock"`
}

type idResponse struct {
	ID string `json:"id"`
}

// CreateProduct handles POST /api/products - adds a catalog entry.
// Administrators only.
func (s *Server) CreateProduct(ctx echo.Context) error {
	actor, ok := principalFromContext(ctx)
	if !ok {
		return writeError(ctx, errs.NewUnauthenticatedError("missing credentials"))
	}

	var req createProductRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	price, err := kernel.MoneyFromString(req.Price)
	if err != nil {
		return writeError(ctx, err)
	}

	productID := kernel.NewUUID()
	cmd, err := commands.NewCreateProductCommand(actor, productID, req.Name, req.Brand, price, req.Stock)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.handlers.CreateProduct.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, idResponse{ID: productID.String()})
}

type orderItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type createOrderRequest struct {
	Items           []orderItemRequest `json:"items"`
	ShippingAddress string             `json:"shippingAddress"`
	PaymentMethod   string             `json:"paymentMethod"`
}

// CreateOrder handles POST /api/orders - places an order for the
// authenticated customer, snapshotting catalog prices.
func (s *Server) CreateOrder(ctx echo.Context) error {
	actor, ok := principalFromContext(ctx)
	if !ok {
		return writeError(ctx, errs.NewUnauthenticatedError("missing credentials"))
	}

	var req createOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	selections := make([]commands.ItemSelection, 0, len(req.Items))
	for _, item := range req.Items {
		productID, err := kernel.UUIDFromString(item.ProductID)
		if err != nil {
			return writeError(ctx, err)
		}
		selection, err := commands.NewItemSelection(productID, item.Quantity)
		if err != nil {
			return writeError(ctx, err)
		}
		selections = append(selections, selection)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, actor.ID(), selections, req.ShippingAddress, req.PaymentMethod)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, idResponse{ID: orderID.String()})
}

type orderItemResponse struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
}

type orderDetailsResponse struct {
	ID              string              `json:"id"`
	CustomerID      string              `json:"customerId"`
	ShippingAddress string              `json:"shippingAddress"`
	PaymentMethod   string              `json:"paymentMethod"`
	Status          string              `json:"status"`
	ItemsTotal      string              `json:"itemsTotal"`
	ShippingTotal   string              `json:"shippingTotal"`
	TaxTotal        string              `json:"taxTotal"`
	GrandTotal      string              `json:"grandTotal"`
	TransactionID   *string             `json:"transactionId,omitempty"`
	PayerEmail      *string             `json:"payerEmail,omitempty"`
	PaidAt          *time.Time          `json:"paidAt,omitempty"`
	DeliveredAt     *time.Time          `json:"deliveredAt,omitempty"`
	Items           []orderItemResponse `json:"items"`
}

// GetOrder handles GET /api/orders/:id - owner or administrator reads one
// order with its line items.
func (s *Server) GetOrder(ctx echo.Context) error {
	actor, ok := principalFromContext(ctx)
	if !ok {
		return writeError(ctx, errs.NewUnauthenticatedError("missing credentials"))
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(actor, orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	items := make([]orderItemResponse, len(result.Items))
	for i, item := range result.Items {
		items[i] = orderItemResponse{
			ProductID: item.ProductID.String(),
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}
	return ctx.JSON(http.StatusOK, orderDetailsResponse{
		ID:              result.ID.String(),
		CustomerID:      result.CustomerID.String(),
		ShippingAddress: result.ShippingAddress,
		PaymentMethod:   result.PaymentMethod,
		Status:          result.Status,
		ItemsTotal:      result.ItemsTotal,
		ShippingTotal:   result.ShippingTotal,
		TaxTotal:        result.TaxTotal,
		GrandTotal:      result.GrandTotal,
		TransactionID:   result.TransactionID,
		PayerEmail:      result.PayerEmail,
		PaidAt:          result.PaidAt,
		DeliveredAt:     result.DeliveredAt,
		Items:           items,
	})
}

type orderSummaryResponse struct {
	ID          string     `json:"id"`
	CustomerID  string     `json:"customerId"`
	Status      string     `json:"status"`
	GrandTotal  string     `json:"grandTotal"`
	PaidAt      *time.Time `json:"paidAt,omitempty"`
	DeliveredAt *time.Time `json:"deliveredAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func toOrderSummaries(rows []queries.OrderSummaryResponse) []orderSummaryResponse {
	summaries := make([]orderSummaryResponse, len(rows))
	for i, row := range rows {
		summaries[i] = orderSummaryResponse{
			ID:          row.ID.String(),
			CustomerID:  row.CustomerID.String(),
			Status:      row.Status,
			GrandTotal:  row.GrandTotal,
			PaidAt:      row.PaidAt,
			DeliveredAt: row.DeliveredAt,
			CreatedAt:   row.CreatedAt,
		}
	}
	return summaries
}

// GetMyOrders handles GET /api/orders/mine - the authenticated customer's
// order history.
func (s *Server) GetMyOrders(ctx echo.Context) error {
	actor, ok := principalFromContext(ctx)
	if !ok {
		return writeError(ctx, errs.NewUnauthenticatedError("missing credentials"))
	}

	query, err := queries.NewGetMyOrdersQuery(actor.ID())
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.handlers.GetMyOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toOrderSummaries(result))
}

// ListOrders handles GET /api/orders - all orders across customers.
// Administrators only.
func (s *Server) ListOrders(ctx echo.Context) error {
	actor, ok := principalFromContext(ctx)
	if !ok {
		return writeError(ctx, errs.NewUnauthenticatedError("missing credentials"))
	}

	query, err := queries.NewGetAllOrdersQuery(actor)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.handlers.GetAllOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toOrderSummaries(result))
}

type payOrderRequest struct {
	TransactionID string `json:"transactionId"`
	Status        string `json:"status"`
	PayerEmail    string `json:"payerEmail"`
}

// PayOrder handles PUT /api/orders/:id/pay - confirms an order's payment
// after re-verifying the capture with the provider.
func (s *Server) PayOrder(ctx echo.Context) error {
	actor, ok := principalFromContext(ctx)
	if !ok {
		return writeError(ctx, errs.NewUnauthenticatedError("missing credentials"))
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	var req payOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	cmd, err := commands.NewMarkOrderPaidCommand(
		actor, orderID, req.TransactionID, req.PayerEmail, req.Status)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.handlers.MarkOrderPaid.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, map[string]string{"message": "order paid"})
}

// DeliverOrder handles PUT /api/orders/:id/deliver - marks a paid order
// delivered. Administrators only.
func (s *Server) DeliverOrder(ctx echo.Context) error {
	actor, ok := principalFromContext(ctx)
	if !ok {
		return writeError(ctx, errs.NewUnauthenticatedError("missing credentials"))
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewMarkOrderDeliveredCommand(actor, orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.handlers.MarkOrderDeliver.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, map[string]string{"message": "order delivered"})
}

type paypalConfigResponse struct {
	ClientID string `json:"clientId"`
}

// GetPayPalConfig handles GET /api/config/paypal - exposes the public
// client id the frontend needs to render the payment button.
func (s *Server) GetPayPalConfig(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, paypalConfigResponse{ClientID: s.paypalClientID})
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// issueSession signs a token for the user and sets it as an HttpOnly
// cookie.
func (s *Server) issueSession(ctx echo.Context, userID kernel.UUID) error {
	signed, err := s.tokens.Issue(userID.String())
	if err != nil {
		return err
	}

	ctx.SetCookie(&http.Cookie{
		Name:     jwtCookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(s.tokens.TTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	return nil
}

func (s *Server) clearSession(ctx echo.Context) {
	ctx.SetCookie(&http.Cookie{
		Name:     jwtCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
