package router

import (
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/access"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/config"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/handler"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/middleware"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/repository"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/service"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/state"

	"github.com/gin-gonic/gin"
)

// Options carries the long-lived helpers owned by main: the per-IP limiters
// shared with the purge loop and the PDF archive pool. Nil fields disable
// the feature.
type Options struct {
	LoginLimiter *middleware.Limiter
	APILimiter   *middleware.Limiter
	Archiver     service.DocumentArchiver
}

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Controller ← StateRepository ← KVStore
func New(cfg *config.Config, store repository.KVStore, ctrl *state.Controller, opts Options) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.AllowedOrigins()))
	r.Use(middleware.ErrorHandler())
	if opts.APILimiter != nil {
		r.Use(middleware.RateLimiter(opts.APILimiter))
	}

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(ctrl, cfg)
	saleSvc := service.NewSaleService(ctrl)
	inventorySvc := service.NewInventoryService(ctrl)
	catalogSvc := service.NewCatalogService(ctrl)
	expenseSvc := service.NewExpenseService(ctrl)
	staffSvc := service.NewStaffService(ctrl)
	settingsSvc := service.NewSettingsService(ctrl)
	reportSvc := service.NewReportService(ctrl, opts.Archiver)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	salesH := handler.NewSalesHandler(saleSvc, reportSvc)
	inventoryH := handler.NewInventoryHandler(inventorySvc)
	catalogH := handler.NewCatalogHandler(catalogSvc)
	expenseH := handler.NewExpenseHandler(expenseSvc)
	staffH := handler.NewStaffHandler(staffSvc, reportSvc)
	settingsH := handler.NewSettingsHandler(settingsSvc)
	reportH := handler.NewReportHandler(reportSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(store, cfg.StoreDriver))

	login := []gin.HandlerFunc{authH.Login}
	if opts.LoginLimiter != nil {
		login = append([]gin.HandlerFunc{middleware.LoginRateLimiter(opts.LoginLimiter)}, login...)
	}
	r.POST("/v1/auth/login", login...)

	// Protected routes
	v1 := r.Group("/v1", middleware.JWTAuth(cfg.JWTSecret))
	{
		v1.GET("/auth/me", authH.Me)

		// Every signed-in user sees branches and shop settings.
		v1.GET("/branches", catalogH.ListBranches)
		v1.GET("/settings", settingsH.Get)

		sales := v1.Group("/sales")
		{
			sales.POST("", middleware.RequireCapability(access.Sell), salesH.Checkout)
			sales.GET("", middleware.RequireCapability(access.Sell), salesH.List)
			sales.GET("/:id", middleware.RequireCapability(access.Sell), salesH.Get)
			sales.GET("/:id/invoice.pdf", middleware.RequireCapability(access.Sell), salesH.Invoice)
			sales.POST("/:id/return", middleware.RequireCapability(access.ProcessReturns), salesH.Return)
			sales.DELETE("/:id", middleware.RequireCapability(access.DeleteSales), salesH.Delete)
		}

		products := v1.Group("/products")
		{
			products.GET("", middleware.RequireCapability(access.ViewInventory), catalogH.ListProducts)
			products.GET("/:id", middleware.RequireCapability(access.ViewInventory), catalogH.GetProduct)
			products.POST("", middleware.RequireCapability(access.ManageInventory), catalogH.CreateProduct)
			products.PUT("/:id", middleware.RequireCapability(access.ManageInventory), catalogH.UpdateProduct)
			products.DELETE("/:id", middleware.RequireCapability(access.ManageInventory), catalogH.DeleteProduct)
		}

		stock := v1.Group("/stock")
		{
			stock.GET("", middleware.RequireCapability(access.ViewInventory), inventoryH.ListStock)
			stock.POST("/purchase", middleware.RequireCapability(access.ManageInventory), inventoryH.PurchaseEntry)
			stock.POST("/transfer", middleware.RequireCapability(access.ManageInventory), inventoryH.Transfer)
		}

		v1.GET("/categories", middleware.RequireCapability(access.ViewInventory), catalogH.ListCategories)
		categories := v1.Group("/categories", middleware.RequireCapability(access.ManageInventory))
		{
			categories.POST("", catalogH.CreateCategory)
			categories.PUT("/:id", catalogH.RenameCategory)
			categories.DELETE("/:id", catalogH.DeleteCategory)
		}

		branches := v1.Group("/branches", middleware.RequireCapability(access.ManageBranches))
		{
			branches.POST("", catalogH.CreateBranch)
			branches.PUT("/:id", catalogH.UpdateBranch)
			branches.DELETE("/:id", catalogH.DeleteBranch)
		}

		expenses := v1.Group("/expenses", middleware.RequireCapability(access.ManageExpenses))
		{
			expenses.GET("", expenseH.List)
			expenses.POST("", expenseH.Add)
			expenses.DELETE("/:id", expenseH.Delete)
		}

		staff := v1.Group("/staff", middleware.RequireCapability(access.ManageStaff))
		{
			staff.GET("", staffH.ListUsers)
			staff.POST("", staffH.CreateUser)
			staff.PUT("/:id", staffH.UpdateUser)
			staff.DELETE("/:id", staffH.DeleteUser)
		}

		roles := v1.Group("/staff-roles", middleware.RequireCapability(access.ManageStaff))
		{
			roles.GET("", staffH.ListRoles)
			roles.POST("", staffH.CreateRole)
			roles.PUT("/:id", staffH.UpdateRole)
			roles.DELETE("/:id", staffH.DeleteRole)
		}

		payroll := v1.Group("/payroll", middleware.RequireCapability(access.ManageStaff))
		{
			payroll.GET("", staffH.ListPayments)
			payroll.POST("", staffH.ProcessSalary)
			payroll.GET("/:id", staffH.GetPayment)
			payroll.GET("/:id/slip.pdf", staffH.SalarySlip)
		}

		v1.PATCH("/settings", middleware.RequireCapability(access.ManageSettings), settingsH.Update)

		reports := v1.Group("/reports")
		{
			reports.GET("/summary", middleware.RequireCapability(access.ViewDashboard), reportH.Summary)
			reports.GET("/low-stock", middleware.RequireCapability(access.ViewDashboard), reportH.LowStock)
			reports.GET("/categories", middleware.RequireCapability(access.ViewReports), reportH.SalesByCategory)
			reports.GET("/daily", middleware.RequireCapability(access.ViewReports), reportH.DailySales)
			reports.GET("/products", middleware.RequireCapability(access.ViewReports, access.AllBranches), reportH.ProductTotals)
			reports.GET("/export.xlsx", middleware.RequireCapability(access.ViewReports), reportH.Export)
		}
	}

	return r
}
