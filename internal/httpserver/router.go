package httpserver

import (
	"context"
	"errors"
	"log"
	"net/http"

	"storefront/internal/auth"
	"storefront/internal/domain"
	"storefront/internal/invoice"
	cartsvc "storefront/internal/service/cart"
	ordersvc "storefront/internal/service/order"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type productService interface {
	List(ctx context.Context) ([]domain.Product, error)
}

type cartService interface {
	Add(ctx context.Context, userID, productID, variant string, qty int) (domain.Cart, error)
	Update(ctx context.Context, userID, productID, variant string, qty int) (domain.Cart, error)
	Get(ctx context.Context, userID string) (domain.Cart, error)
	Clear(ctx context.Context, userID string) error
	Totals(ctx context.Context, userID string) (cartsvc.Totals, error)
}

type orderService interface {
	Place(ctx context.Context, userID string, in ordersvc.PlaceInput) (*domain.Order, error)
	ListForUser(ctx context.Context, userID, query string) ([]domain.Order, error)
	ListAll(ctx context.Context, query string) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, orderID, status string) (bool, error)
	MarkPaid(ctx context.Context, orderID string) (bool, error)
	Invoice(ctx context.Context, requesterID string, admin bool, orderID string) (invoice.Invoice, error)
}

type tokenVerifier interface {
	Verify(raw string) (auth.Identity, error)
}

// Deps are the services behind the API routes.
type Deps struct {
	ProductSvc  productService
	CartSvc     cartService
	OrderSvc    orderService
	Verifier    tokenVerifier
	CORSOrigins []string
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db Pinger, deps Deps) (*gin.Engine, error) {
	if deps.ProductSvc == nil || deps.CartSvc == nil || deps.OrderSvc == nil || deps.Verifier == nil {
		return nil, errors.New("httpserver: product, cart, order services and verifier are required")
	}

	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(corsMiddleware(deps.CORSOrigins))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	h := &handlers{deps: deps, logger: logger}
	api := router.Group("/api")

	api.GET("/product/list", h.listProducts)

	customer := api.Group("", requireUser(deps.Verifier))
	customer.POST("/cart/add", h.addToCart)
	customer.POST("/cart/update", h.updateCart)
	customer.POST("/cart/get", h.getCart)
	customer.POST("/cart/clear", h.clearCart)
	customer.POST("/cart/total", h.cartTotal)
	customer.POST("/order/place", h.placeOrder)
	customer.POST("/order/userorders", h.userOrders)
	customer.POST("/order/invoice", h.orderInvoice)

	admin := api.Group("", requireUser(deps.Verifier), requireAdmin())
	admin.POST("/order/list", h.allOrders)
	admin.POST("/order/status", h.updateStatus)
	admin.POST("/order/pay", h.markPaid)

	router.NoRoute(func(c *gin.Context) {
		fail(c, http.StatusNotFound, "route not found")
	})

	return router, nil
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization", tokenHeader},
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			break
		}
	}
	if !cfg.AllowAllOrigins {
		cfg.AllowOrigins = origins
		if len(origins) == 0 {
			cfg.AllowAllOrigins = true
		}
	}
	return cors.New(cfg)
}
