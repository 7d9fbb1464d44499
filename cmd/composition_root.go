package cmd

import (
	"fmt"
	"log/slog"
	"time"

	apihttp "storefront/internal/adapters/in/http"
	"storefront/internal/adapters/out/paypal"
	"storefront/internal/adapters/out/postgres"
	"storefront/internal/adapters/out/postgres/orderrepo"
	"storefront/internal/adapters/out/postgres/userrepo"
	"storefront/internal/adapters/out/redisstore"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/services"
	"storefront/internal/jobs"
	"storefront/internal/pkg/token"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	policy     services.AccessPolicy
	tokens     *token.Service
	denyList   *redisstore.TokenDenyList
	verifier   *paypal.Client
	config     Config
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, redisClient *redis.Client) (CompositionRoot, error) {
	expiry, err := time.ParseDuration(configs.JwtExpiry)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("parse JWT_EXPIRY: %w", err)
	}

	tokens, err := token.NewService(configs.JwtSecret, expiry)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("create token service: %w", err)
	}

	verifier, err := paypal.NewClient(paypal.Config{
		BaseURL:  configs.PayPalAPIBase,
		ClientID: configs.PayPalClientID,
		Secret:   configs.PayPalSecret,
	})
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("create paypal client: %w", err)
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		policy:     services.NewAccessPolicy(),
		tokens:     tokens,
		denyList:   redisstore.NewTokenDenyList(redisClient),
		verifier:   verifier,
		config:     configs,
	}, nil
}

func (c *CompositionRoot) CreateRegisterUserCommandHandler() commands.RegisterUserCommandHandler {
	var f commands.UserUoWFactory = FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterUserCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateProductCommandHandler() commands.CreateProductCommandHandler {
	var f commands.ProductUoWFactory = FuncProductUoWFactory(func() commands.ProductUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateProductCommandHandler(f, c.policy)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.CheckoutUoWFactory = FuncCheckoutUoWFactory(func() commands.CheckoutUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateMarkOrderPaidCommandHandler() commands.MarkOrderPaidCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkOrderPaidCommandHandler(f, c.verifier, c.policy)
}

func (c *CompositionRoot) CreateMarkOrderDeliveredCommandHandler() commands.MarkOrderDeliveredCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkOrderDeliveredCommandHandler(f, c.policy)
}

func (c *CompositionRoot) CreateAuthenticateUserQueryHandler() queries.AuthenticateUserQueryHandler {
	return queries.NewAuthenticateUserQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUserProfileQueryHandler() queries.GetUserProfileQueryHandler {
	return queries.NewGetUserProfileQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetProductsQueryHandler() queries.GetProductsQueryHandler {
	return queries.NewGetProductsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetProductQueryHandler() queries.GetProductQueryHandler {
	return queries.NewGetProductQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB, c.policy)
}

func (c *CompositionRoot) CreateGetMyOrdersQueryHandler() queries.GetMyOrdersQueryHandler {
	return queries.NewGetMyOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllOrdersQueryHandler() queries.GetAllOrdersQueryHandler {
	return queries.NewGetAllOrdersQueryHandler(c.gormDB, c.policy)
}

func (c *CompositionRoot) CreateServer() *apihttp.Server {
	handlers := apihttp.Handlers{
		RegisterUser:     c.CreateRegisterUserCommandHandler(),
		CreateProduct:    c.CreateCreateProductCommandHandler(),
		CreateOrder:      c.CreateCreateOrderCommandHandler(),
		MarkOrderPaid:    c.CreateMarkOrderPaidCommandHandler(),
		MarkOrderDeliver: c.CreateMarkOrderDeliveredCommandHandler(),
		AuthenticateUser: c.CreateAuthenticateUserQueryHandler(),
		GetUserProfile:   c.CreateGetUserProfileQueryHandler(),
		GetProducts:      c.CreateGetProductsQueryHandler(),
		GetProduct:       c.CreateGetProductQueryHandler(),
		GetOrder:         c.CreateGetOrderQueryHandler(),
		GetMyOrders:      c.CreateGetMyOrdersQueryHandler(),
		GetAllOrders:     c.CreateGetAllOrdersQueryHandler(),
	}
	return apihttp.NewServer(handlers, c.tokens, c.denyList, c.config.PayPalClientID)
}

func (c *CompositionRoot) CreateAuthMiddleware() *apihttp.AuthMiddleware {
	users := userrepo.NewGormUserRepository(c.gormDB, noAggregateTracker{})
	return apihttp.NewAuthMiddleware(c.tokens, c.denyList, users)
}

func (c *CompositionRoot) CreateJobManager(logger *slog.Logger) *jobs.JobManager {
	orders := orderrepo.NewGormOrderRepository(c.gormDB, noAggregateTracker{})
	return jobs.NewJobManager(orders, c.verifier, c.CreateMarkOrderPaidCommandHandler(), logger)
}

// noAggregateTracker is used for repositories created outside a unit of
// work, where no transaction tracks aggregates.
type noAggregateTracker struct{}

func (noAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCheckoutUoWFactory func() commands.CheckoutUoW

func (f FuncCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return f()
}

type FuncProductUoWFactory func() commands.ProductUoW

func (f FuncProductUoWFactory) Create() commands.ProductUoW {
	return f()
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}
