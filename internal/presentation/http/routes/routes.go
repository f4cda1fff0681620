package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/retailhub-api/internal/config"
	"github.com/sangkips/retailhub-api/internal/domain/entity"
	domainRepo "github.com/sangkips/retailhub-api/internal/domain/repository"
	"github.com/sangkips/retailhub-api/internal/infrastructure/events"
	"github.com/sangkips/retailhub-api/internal/presentation/http/handler"
	"github.com/sangkips/retailhub-api/internal/presentation/http/middleware"
	"github.com/sangkips/retailhub-api/pkg/metrics"
	"github.com/sangkips/retailhub-api/pkg/utils"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Product   *handler.ProductHandler
	Cart      *handler.CartHandler
	Sale      *handler.SaleHandler
	Inventory *handler.InventoryHandler
	Report    *handler.ReportHandler
	Backup    *handler.BackupHandler
	Dashboard *handler.DashboardHandler
	Printer   *handler.PrinterHandler
	User      *handler.UserHandler

	Categories    *handler.CRUDHandler[entity.Category]
	Units         *handler.CRUDHandler[entity.Unit]
	Variants      *handler.CRUDHandler[entity.Variant]
	Suppliers     *handler.CRUDHandler[entity.Supplier]
	Employees     *handler.CRUDHandler[entity.Employee]
	Payrolls      *handler.CRUDHandler[entity.Payroll]
	BankAccounts  *handler.CRUDHandler[entity.BankAccount]
	Subscriptions *handler.CRUDHandler[entity.Subscription]
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	RateLimiter     *middleware.ClientRateLimiter
	Metrics         *metrics.Metrics
	Events          events.Publisher
	Log             *zap.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Log))
	router.Use(middleware.MetricsMiddleware(deps.Metrics))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		body := gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		}
		if deps.Events != nil {
			body["events"] = deps.Events.State()
		}
		c.JSON(200, body)
	})
	router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(deps.RateLimiter.Middleware())

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
	// Profile
	protected.GET("/profile", h.Auth.Me)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Dashboard
	protected.GET("/dashboard", middleware.RequirePermission(entity.PermViewDashboard), h.Dashboard.GetStats)

	registerProductRoutes(protected, h)
	registerPOSRoutes(protected, h, deps)
	registerInventoryRoutes(protected, h)
	registerReportRoutes(protected, h)
	registerBackupRoutes(protected, h)
	registerUserRoutes(protected, h)
	registerManagementRoutes(protected, h)
	registerPrinterRoutes(protected, h)
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	{
		// Cashiers browse the catalog to fill the cart
		products.GET("", h.Product.List)
		products.GET("/low-stock", h.Product.GetLowStock)
		products.GET("/:slug", h.Product.Get)

		manage := products.Group("")
		manage.Use(middleware.RequirePermission(entity.PermManageProducts))
		manage.GET("/export", h.Product.Export)
		manage.GET("/import/template", h.Product.Template)
		manage.POST("/import", h.Product.Import)
		manage.POST("", h.Product.Create)
		manage.PUT("/:slug", h.Product.Update)
		manage.DELETE("/:slug", h.Product.Delete)
	}
}

func registerPOSRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	cart := protected.Group("/cart")
	cart.Use(middleware.RequirePermission(entity.PermProcessSales))
	{
		cart.GET("", h.Cart.Get)
		cart.POST("/items", h.Cart.Add)
		cart.POST("/items/:productId/increment", h.Cart.Increment)
		cart.POST("/items/:productId/decrement", h.Cart.Decrement)
		cart.DELETE("/items/:productId", h.Cart.Remove)
		cart.DELETE("", h.Cart.Clear)
	}

	// Checkout uses idempotency middleware to prevent duplicate sales
	protected.POST("/checkout",
		middleware.RequirePermission(entity.PermProcessSales),
		middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
			Log:  deps.Log,
		}),
		h.Sale.Checkout,
	)

	sales := protected.Group("/sales")
	sales.Use(middleware.RequirePermission(entity.PermViewSales))
	{
		sales.GET("", h.Sale.List)
		sales.GET("/invoice/:invoice", h.Sale.GetByInvoice)
		sales.GET("/:id", h.Sale.Get)
	}
}

func registerInventoryRoutes(protected *gin.RouterGroup, h *Handlers) {
	inventory := protected.Group("/inventory")
	inventory.Use(middleware.RequirePermission(entity.PermManageInventory))
	{
		inventory.GET("/adjustments", h.Inventory.ListAdjustments)
		inventory.POST("/adjustments", h.Inventory.Adjust)
		inventory.GET("/transfers", h.Inventory.ListTransfers)
		inventory.POST("/transfers", h.Inventory.Transfer)
	}
}

func registerReportRoutes(protected *gin.RouterGroup, h *Handlers) {
	reports := protected.Group("/reports")
	reports.Use(middleware.RequirePermission(entity.PermViewReports))
	{
		reports.GET("", h.Report.List)
		reports.GET("/export-all", h.Report.ExportAll)
		reports.GET("/:id", h.Report.Run)
		reports.GET("/:id/export", h.Report.Export)
	}
}

func registerBackupRoutes(protected *gin.RouterGroup, h *Handlers) {
	backups := protected.Group("/backups")
	backups.Use(middleware.RequirePermission(entity.PermManageBackups))
	{
		backups.GET("/tables", h.Backup.Tables)
		backups.GET("/export", h.Backup.Export)
		backups.POST("/restore", h.Backup.Restore)
	}
}

func registerUserRoutes(protected *gin.RouterGroup, h *Handlers) {
	users := protected.Group("/users")
	users.Use(middleware.RequirePermission(entity.PermManageUsers))
	{
		users.GET("", h.User.List)
		users.POST("", h.Auth.Register)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id", h.User.Update)
		users.DELETE("/:id", h.User.Delete)
	}

	roles := protected.Group("/roles")
	roles.Use(middleware.RequirePermission(entity.PermManageUsers))
	{
		roles.GET("", h.User.ListRoles)
	}
}

func registerManagementRoutes(protected *gin.RouterGroup, h *Handlers) {
	resources := []struct {
		path string
		perm string
		reg  func(*gin.RouterGroup)
	}{
		{"/categories", entity.PermManageCatalog, h.Categories.Register},
		{"/units", entity.PermManageCatalog, h.Units.Register},
		{"/variants", entity.PermManageCatalog, h.Variants.Register},
		{"/suppliers", entity.PermManageSuppliers, h.Suppliers.Register},
		{"/employees", entity.PermManageEmployees, h.Employees.Register},
		{"/payrolls", entity.PermManageEmployees, h.Payrolls.Register},
		{"/bank-accounts", entity.PermManageFinance, h.BankAccounts.Register},
		{"/subscriptions", entity.PermManageFinance, h.Subscriptions.Register},
	}
	for _, r := range resources {
		group := protected.Group(r.path)
		group.Use(middleware.RequirePermission(r.perm))
		r.reg(group)
	}
}

func registerPrinterRoutes(protected *gin.RouterGroup, h *Handlers) {
	printerGroup := protected.Group("/printer")
	printerGroup.Use(middleware.RequirePermission(entity.PermProcessSales))
	{
		printerGroup.GET("/status", h.Printer.GetStatus)
		printerGroup.POST("/test", h.Printer.TestPrint)
		printerGroup.POST("/receipt", h.Printer.PrintReceipt)
	}
}
