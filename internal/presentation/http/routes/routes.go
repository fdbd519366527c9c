package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/logistics-api/internal/config"
	"github.com/sangkips/logistics-api/internal/domain/enum"
	domainRepo "github.com/sangkips/logistics-api/internal/domain/repository"
	"github.com/sangkips/logistics-api/internal/infrastructure/lock"
	"github.com/sangkips/logistics-api/internal/presentation/http/handler"
	"github.com/sangkips/logistics-api/internal/presentation/http/middleware"
	"github.com/sangkips/logistics-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Staff     *handler.StaffHandler
	Customer  *handler.CustomerHandler
	Category  *handler.CategoryHandler
	Shipment  *handler.ShipmentHandler
	Receipt   *handler.ReceiptHandler
	Dashboard *handler.DashboardHandler
	Printer   *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	Locker          lock.Locker
	Log             logrus.FieldLogger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Log))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	v1 := router.Group("/api/v1")
	{
		registerAuthRoutes(v1, h)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfigFor(
			deps.Cfg.RateLimit.Requests,
			deps.Cfg.RateLimit.Duration,
		))
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	protected.GET("/auth/profile", h.Auth.GetProfile)

	protected.GET("/dashboard/stats", h.Dashboard.GetStats)

	registerStaffRoutes(protected, h)
	registerCustomerRoutes(protected, h)
	registerCategoryRoutes(protected, h)
	registerShipmentRoutes(protected, h)
	registerReceiptRoutes(protected, h, deps)

	printer := protected.Group("/printer")
	{
		printer.GET("/status", h.Printer.GetStatus)
		printer.POST("/test", h.Printer.TestPrint)
	}
}

func registerStaffRoutes(rg *gin.RouterGroup, h *Handlers) {
	staff := rg.Group("/staff")
	staff.Use(middleware.RequireRole(enum.StaffRoleAdmin, enum.StaffRoleManager))
	{
		staff.GET("", h.Staff.List)
		staff.POST("", h.Staff.Create)
		staff.GET("/:id", h.Staff.Get)
		staff.PUT("/:id", h.Staff.Update)
		staff.DELETE("/:id", h.Staff.Delete)
	}
}

func registerCustomerRoutes(rg *gin.RouterGroup, h *Handlers) {
	customers := rg.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.POST("/create-or-get", h.Customer.CreateOrGet)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}
}

func registerCategoryRoutes(rg *gin.RouterGroup, h *Handlers) {
	categories := rg.Group("/categories")
	{
		categories.GET("", h.Category.List)
		categories.GET("/active", h.Category.ListActive)
		categories.POST("", h.Category.Create)
		categories.GET("/:id", h.Category.Get)
		categories.PUT("/:id", h.Category.Update)
		categories.DELETE("/:id", h.Category.Delete)
	}
}

func registerShipmentRoutes(rg *gin.RouterGroup, h *Handlers) {
	shipments := rg.Group("/shipments")
	{
		shipments.GET("", h.Shipment.List)
		shipments.POST("", h.Shipment.Create)
		shipments.GET("/:id", h.Shipment.Get)
		shipments.PUT("/:id", h.Shipment.Update)
		shipments.DELETE("/:id", h.Shipment.Delete)
	}
}

func registerReceiptRoutes(rg *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotent := middleware.Idempotency(middleware.IdempotencyConfig{
		Repo:   deps.IdempotencyRepo,
		Locker: deps.Locker,
		Log:    deps.Log,
	})

	receipts := rg.Group("/receipts")
	{
		receipts.GET("", h.Receipt.List)
		receipts.POST("", idempotent, h.Receipt.Create)
		receipts.GET("/:id", h.Receipt.Get)
		receipts.PUT("/:id", h.Receipt.Update)
		receipts.DELETE("/:id", h.Receipt.Delete)
		receipts.POST("/:id/items", idempotent, h.Receipt.AddItem)
		receipts.PUT("/:id/items/:itemId", h.Receipt.UpdateItem)
		receipts.DELETE("/:id/items/:itemId", h.Receipt.RemoveItem)
		receipts.GET("/:id/export", h.Receipt.Export)
		receipts.POST("/:id/print", h.Receipt.Print)
	}
}
