package httpserver

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"reseller-portal/internal/domain"
	cartslotrepo "reseller-portal/internal/repository/cartslot"
	checkoutsvc "reseller-portal/internal/service/checkout"
)

// IdentityService resolves accounts and access tokens.
type IdentityService interface {
	Signup(ctx context.Context, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	LookupByToken(ctx context.Context, token string) (*domain.User, error)
	AccessTTLSeconds() int
}

// CatalogService serves storefront reads and admin writes.
type CatalogService interface {
	ListActiveProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	UpsertProduct(ctx context.Context, p domain.Product) (*domain.Product, error)
	DeactivateProduct(ctx context.Context, id string) error

	ListActiveRatePlans(ctx context.Context) ([]domain.RatePlan, error)
	GetRatePlan(ctx context.Context, id string) (*domain.RatePlan, error)
	UpsertRatePlan(ctx context.Context, p domain.RatePlan) (*domain.RatePlan, error)
	DeactivateRatePlan(ctx context.Context, id string) error

	ListActiveFeatures(ctx context.Context) ([]domain.Feature, error)
	GetFeature(ctx context.Context, id string) (*domain.Feature, error)
	UpsertFeature(ctx context.Context, f domain.Feature) (*domain.Feature, error)
	DeactivateFeature(ctx context.Context, id string) error
}

// CheckoutService turns the current cart into a pending order.
type CheckoutService interface {
	Submit(ctx context.Context, userID string, snapshot domain.Cart, in checkoutsvc.SubmitInput) (*domain.Order, error)
}

// OrderService serves order history and the admin status updates.
type OrderService interface {
	ListForUser(ctx context.Context, userID string) ([]domain.Order, error)
	Get(ctx context.Context, requester domain.User, orderID string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, requester domain.User, orderID string, status domain.OrderStatus, trackingNumber *string) (*domain.Order, error)
}

// SubscriberService serves activated lines and their custom fields.
type SubscriberService interface {
	ListForUser(ctx context.Context, userID string) ([]domain.Subscriber, error)
	Get(ctx context.Context, requester domain.User, id string) (*domain.Subscriber, error)
	Update(ctx context.Context, requester domain.User, id string, in domain.SubscriberUpdate) (*domain.Subscriber, error)
}

// BillingService serves processed billing periods.
type BillingService interface {
	ListReports(ctx context.Context, userID string) ([]domain.BillingReport, error)
	GetReport(ctx context.Context, requester domain.User, id string) (*domain.BillingReport, error)
	FilterLineItems(ctx context.Context, requester domain.User, reportID string, filter domain.BillingFilter) ([]domain.BillingLineItem, error)
}

// Deps collects everything the router needs.
type Deps struct {
	Identity    IdentityService
	Catalog     CatalogService
	Checkout    CheckoutService
	Orders      OrderService
	Subscribers SubscriberService
	Billing     BillingService
	CartSlots   cartslotrepo.Repository
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, allowOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(corsMiddleware(allowOrigins))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	h := &handlers{deps: deps, logger: logger}

	router.POST("/signup", h.signup)
	router.POST("/login", h.login)

	authed := router.Group("/", authMiddleware(deps.Identity))
	{
		authed.GET("/catalog/products", h.listProducts)
		authed.GET("/catalog/products/:id", h.getProduct)
		authed.GET("/catalog/rate-plans", h.listRatePlans)
		authed.GET("/catalog/features", h.listFeatures)

		authed.GET("/cart", h.getCart)
		authed.DELETE("/cart", h.clearCart)
		authed.POST("/cart/items", h.addCartItem)
		authed.PATCH("/cart/items/:id", h.updateCartItem)
		authed.DELETE("/cart/items/:id", h.removeCartItem)

		authed.POST("/checkout", h.checkout)

		authed.GET("/orders", h.listOrders)
		authed.GET("/orders/:id", h.getOrder)

		authed.GET("/subscribers", h.listSubscribers)
		authed.GET("/subscribers/:id", h.getSubscriber)
		authed.PATCH("/subscribers/:id", h.updateSubscriber)

		authed.GET("/billing/reports", h.listBillingReports)
		authed.GET("/billing/reports/:id", h.getBillingReport)
		authed.GET("/billing/reports/:id/line-items", h.filterBillingLineItems)
	}

	admin := router.Group("/admin", authMiddleware(deps.Identity), adminOnly())
	{
		admin.PUT("/products/:id", h.upsertProduct)
		admin.POST("/products", h.upsertProduct)
		admin.DELETE("/products/:id", h.deactivateProduct)
		admin.PUT("/rate-plans/:id", h.upsertRatePlan)
		admin.POST("/rate-plans", h.upsertRatePlan)
		admin.DELETE("/rate-plans/:id", h.deactivateRatePlan)
		admin.PUT("/features/:id", h.upsertFeature)
		admin.POST("/features", h.upsertFeature)
		admin.DELETE("/features/:id", h.deactivateFeature)
		admin.PATCH("/orders/:id", h.updateOrderStatus)
	}

	return router
}

type handlers struct {
	deps   Deps
	logger *log.Logger
}

func corsMiddleware(allowOrigins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	if len(allowOrigins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = allowOrigins
	}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	return cors.New(cfg)
}
