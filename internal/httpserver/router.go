package httpserver

import (
	"context"
	"log"

	"stockorders/internal/domain"
	"stockorders/internal/notify"
	customersvc "stockorders/internal/service/customer"
	ordersvc "stockorders/internal/service/order"
	reportsvc "stockorders/internal/service/report"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CustomerService is the identity/session surface the router needs.
type CustomerService interface {
	Signup(ctx context.Context, in customersvc.SignupInput) (*domain.Customer, error)
	Login(ctx context.Context, email, password string) (*domain.Customer, string, string, error)
	LookupByToken(ctx context.Context, token string) (*domain.Customer, error)
	ListAddresses(ctx context.Context, customerID string) ([]domain.Address, error)
	AccessTTLSeconds() int
}

// OrderService is the aggregation-engine surface the router needs.
type OrderService interface {
	Create(ctx context.Context, in ordersvc.CreateInput) (*ordersvc.Summary, error)
	Cancel(ctx context.Context, orderID, customerID string) (bool, error)
	List(ctx context.Context) ([]ordersvc.Summary, error)
	ListByCustomer(ctx context.Context, customerID string) ([]ordersvc.Summary, error)
}

// ReportService exposes the read-only report projections.
type ReportService interface {
	CustomerOrderSummaries(ctx context.Context) ([]reportsvc.CustomerOrderSummary, error)
	ProductCustomersReport(ctx context.Context) ([]reportsvc.ProductCustomers, error)
	MultiQuantityOrders(ctx context.Context) ([]reportsvc.MultiQuantityOrder, error)
	DifferentAddressOrders(ctx context.Context) ([]reportsvc.DifferentAddressOrder, error)
	OrdersByCity(ctx context.Context, city string) ([]reportsvc.OrderDetails, error)
	OrdersByCustomerName(ctx context.Context, name string) ([]reportsvc.OrderDetails, error)
	CustomerOrderDetails(ctx context.Context, customerID string) ([]reportsvc.OrderDetails, error)
}

// StockLister resolves the active catalog for browsing.
type StockLister interface {
	ListActive(ctx context.Context) ([]domain.Stock, error)
}

// Deps carries the services the router depends on.
type Deps struct {
	CustomerSvc CustomerService
	OrderSvc    OrderService
	ReportSvc   ReportService
	Stocks      StockLister
	Hub         *notify.Hub
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.Default())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.POST("/signup", signupHandler(deps.CustomerSvc))
	router.POST("/login", loginHandler(deps.CustomerSvc))

	if deps.Hub != nil {
		router.GET("/ws", wsHandler(deps.Hub, logger))
	}

	authed := router.Group("/", authMiddleware(deps.CustomerSvc))
	authed.GET("/me", meHandler)
	authed.GET("/stocks", listStocksHandler(deps.Stocks))
	authed.GET("/addresses", listAddressesHandler(deps.CustomerSvc))

	authed.POST("/orders", createOrderHandler(deps.OrderSvc))
	authed.GET("/orders", listMyOrdersHandler(deps.OrderSvc))
	authed.DELETE("/orders/:id", cancelOrderHandler(deps.OrderSvc))

	reports := authed.Group("/reports")
	reports.GET("/orders", listAllOrdersHandler(deps.OrderSvc))
	reports.GET("/customer-summary", customerSummaryHandler(deps.ReportSvc))
	reports.GET("/product-customers", productCustomersHandler(deps.ReportSvc))
	reports.GET("/multi-quantity-orders", multiQuantityOrdersHandler(deps.ReportSvc))
	reports.GET("/different-address-orders", differentAddressOrdersHandler(deps.ReportSvc))
	reports.GET("/city-orders", cityOrdersHandler(deps.ReportSvc))
	reports.GET("/named-customer-orders", namedCustomerOrdersHandler(deps.ReportSvc))
	reports.GET("/customer-orders/:customerId", customerOrderDetailsHandler(deps.ReportSvc))

	return router, nil
}
