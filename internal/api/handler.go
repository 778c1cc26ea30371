package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"hakim-livs-backend/config"
	"hakim-livs-backend/internal/apperr"
	"hakim-livs-backend/internal/models"
	"hakim-livs-backend/internal/service"
)

// Store lists the persistence operations the handlers use. *store.Store is
// the production implementation; tests substitute a fake.
type Store interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	InsertProduct(ctx context.Context, product *models.Product) error
	UpdateProduct(ctx context.Context, id primitive.ObjectID, product *models.Product) (*models.Product, error)
	DeleteProduct(ctx context.Context, id primitive.ObjectID) error
	ExpandProducts(ctx context.Context, products []models.Product) ([]models.ProductView, error)
	ExpandProduct(ctx context.Context, product *models.Product) (*models.ProductView, error)

	ListCatalog(ctx context.Context, kind models.CatalogKind) ([]models.CatalogRecord, error)

	InsertUser(ctx context.Context, user *models.User) error
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	FindUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)

	InsertOrder(ctx context.Context, order *models.Order) error
	GetOrder(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	ListOrdersByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	SetOrderStatus(ctx context.Context, id primitive.ObjectID, status, paymentStatus string) (*models.Order, error)
	ExpandOrders(ctx context.Context, orders []models.Order) ([]models.OrderView, error)
	ExpandOrder(ctx context.Context, order *models.Order) (*models.OrderView, error)
}

// Handler contains the HTTP handlers.
type Handler struct {
	store    Store
	resolver *service.Resolver
	cfg      *config.Config
}

func NewHandler(store Store, resolver *service.Resolver, cfg *config.Config) *Handler {
	return &Handler{store: store, resolver: resolver, cfg: cfg}
}

// Access is the capability a route requires, evaluated before dispatch.
type Access int

const (
	AccessPublic Access = iota
	AccessAuthenticated
	AccessAdmin
)

type route struct {
	method  string
	path    string
	access  Access
	handler gin.HandlerFunc
}

// SetupRoutes registers middleware and the route table.
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(requestLogger())
	router.Use(prometheusMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     h.cfg.CORS.Origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	routes := []route{
		{http.MethodGet, "/api", AccessPublic, h.apiIndex},

		{http.MethodPost, "/api/auth/register", AccessPublic, h.register},
		{http.MethodPost, "/api/auth/login", AccessPublic, h.login},

		{http.MethodGet, "/api/products", AccessPublic, h.listProducts},
		{http.MethodGet, "/api/products/:id", AccessPublic, h.getProduct},
		{http.MethodPost, "/api/products", AccessAdmin, h.createProduct},
		{http.MethodPut, "/api/products/:id", AccessAdmin, h.updateProduct},
		{http.MethodDelete, "/api/products/:id", AccessAdmin, h.deleteProduct},

		{http.MethodGet, "/api/categories", AccessPublic, h.listCategories},
		{http.MethodGet, "/api/brands", AccessPublic, h.listBrands},
		{http.MethodGet, "/api/suppliers", AccessPublic, h.listSuppliers},

		// Order creation is open for guest checkout; a valid token still
		// ties the order to its user.
		{http.MethodPost, "/api/orders", AccessPublic, h.createOrder},
		{http.MethodGet, "/api/orders/mina", AccessAuthenticated, h.myOrders},
		{http.MethodGet, "/api/orders/:id", AccessAuthenticated, h.getOrder},
		{http.MethodPut, "/api/orders/:id/status", AccessAdmin, h.updateOrderStatus},
		{http.MethodGet, "/api/orders", AccessAdmin, h.listOrders},
	}
	for _, rt := range routes {
		router.Handle(rt.method, rt.path, h.authorize(rt.access), rt.handler)
	}
}

func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "time": time.Now().Unix()})
}

func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ready", "time": time.Now().Unix()})
}

// apiIndex is a self-documentation route describing the API surface.
func (h *Handler) apiIndex(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    "Hakim Livs API",
		"version": "1.0.0",
		"endpoints": gin.H{
			"auth": gin.H{
				"POST /api/auth/register": "Register a new user",
				"POST /api/auth/login":    "Login with username and password",
			},
			"products": gin.H{
				"GET /api/products":        "Get all products",
				"GET /api/products/:id":    "Get a single product by ID",
				"POST /api/products":       "Create a new product (Admin only)",
				"PUT /api/products/:id":    "Update a product (Admin only)",
				"DELETE /api/products/:id": "Delete a product (Admin only)",
			},
			"categories": gin.H{"GET /api/categories": "Get all categories"},
			"brands":     gin.H{"GET /api/brands": "Get all brands"},
			"suppliers":  gin.H{"GET /api/suppliers": "Get all suppliers"},
			"orders": gin.H{
				"GET /api/orders":            "Get all orders (Admin only)",
				"POST /api/orders":           "Create a new order",
				"GET /api/orders/mina":       "Get the caller's own orders",
				"GET /api/orders/:id":        "Get an order (owner or admin)",
				"PUT /api/orders/:id/status": "Update order status (Admin only)",
			},
		},
		"authentication": "Use Bearer token in Authorization header for protected routes",
	})
}

// respondError maps an error to its HTTP status and a JSON body with a
// human-readable message. Internal causes go to the log, never to clients.
func respondError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err))
	}
	c.JSON(status, gin.H{"error": apperr.MessageOf(err)})
}
