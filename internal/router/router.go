package router

import (
	"time"

	"parfumpos/internal/config"
	"parfumpos/internal/handler"
	"parfumpos/internal/infra"
	"parfumpos/internal/middleware"
	"parfumpos/internal/repository"
	"parfumpos/internal/service"
	"parfumpos/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, smtpCB *infra.Breaker) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	unitRepo := repository.NewUnitRepository(db)
	outletRepo := repository.NewOutletRepository(db)
	warehouseRepo := repository.NewWarehouseRepository(db)
	blendRepo := repository.NewBlendRepository(db)
	bundlingRepo := repository.NewBundlingRepository(db)
	stockRequestRepo := repository.NewStockRequestRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	discountRepo := repository.NewDiscountRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpirationHours, cfg.JWTRefreshHours)
	productSvc := service.NewProductService(productRepo, movementRepo)
	catalogSvc := service.NewCatalogService(categoryRepo, unitRepo, outletRepo, warehouseRepo)
	blendSvc := service.NewBlendService(blendRepo, productRepo, movementRepo)
	bundlingSvc := service.NewBundlingService(bundlingRepo, productRepo)
	stockRequestSvc := service.NewStockRequestService(stockRequestRepo, productRepo, outletRepo, warehouseRepo, movementRepo)
	checkoutSvc := service.NewCheckoutService(transactionRepo, productRepo, bundlingRepo, discountRepo, movementRepo, dispatcher)
	discountSvc := service.NewDiscountService(discountRepo)
	dashboardSvc := service.NewDashboardService(transactionRepo, productRepo, stockRequestRepo, cfg.LowStockLimit)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(authSvc)
	productsH := handler.NewProductsHandler(productSvc)
	catalogH := handler.NewCatalogHandler(catalogSvc)
	blendsH := handler.NewBlendsHandler(blendSvc)
	bundlingsH := handler.NewBundlingsHandler(bundlingSvc)
	stockRequestsH := handler.NewStockRequestsHandler(stockRequestSvc)
	checkoutH := handler.NewCheckoutHandler(checkoutSvc, rdb)
	discountsH := handler.NewDiscountsHandler(discountSvc)
	dashboardH := handler.NewDashboardHandler(dashboardSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, smtpCB))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		anyRole := middleware.RequireRole("admin", "warehouse", "outlet")

		// Users — admin only
		users := v1.Group("/users", middleware.RequireRole("admin"))
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.List)
			users.PUT("/:id", usersH.Update)
			users.DELETE("/:id", usersH.Deactivate)
		}

		// Products — all roles read, admin writes, warehouse adjusts stock
		v1.GET("/products", anyRole, productsH.List)
		v1.GET("/products/:id", anyRole, productsH.Get)
		v1.GET("/products/composition-candidates", middleware.RequireRole("admin", "warehouse"), productsH.CompositionCandidates)
		v1.PATCH("/products/:id/stock", middleware.RequireRole("admin", "warehouse"), productsH.AdjustStock)
		prods := v1.Group("/products", middleware.RequireRole("admin"))
		{
			prods.POST("", productsH.Create)
			prods.PUT("/:id", productsH.Update)
			prods.DELETE("/:id", productsH.Delete)
			prods.PATCH("/:id/restore", productsH.Restore)
		}

		// Reference data — all roles read, admin writes
		v1.GET("/categories", anyRole, catalogH.ListCategories)
		v1.GET("/units", anyRole, catalogH.ListUnits)
		v1.GET("/outlets", anyRole, catalogH.ListOutlets)
		v1.GET("/warehouses", anyRole, catalogH.ListWarehouses)
		catalog := v1.Group("", middleware.RequireRole("admin"))
		{
			catalog.POST("/categories", catalogH.CreateCategory)
			catalog.PUT("/categories/:id", catalogH.UpdateCategory)
			catalog.DELETE("/categories/:id", catalogH.DeleteCategory)
			catalog.POST("/units", catalogH.CreateUnit)
			catalog.PUT("/units/:id", catalogH.UpdateUnit)
			catalog.DELETE("/units/:id", catalogH.DeleteUnit)
			catalog.POST("/outlets", catalogH.CreateOutlet)
			catalog.PUT("/outlets/:id", catalogH.UpdateOutlet)
			catalog.DELETE("/outlets/:id", catalogH.DeleteOutlet)
			catalog.POST("/warehouses", catalogH.CreateWarehouse)
			catalog.PUT("/warehouses/:id", catalogH.UpdateWarehouse)
			catalog.DELETE("/warehouses/:id", catalogH.DeleteWarehouse)
		}

		// Blends — production runs happen in the warehouse
		blends := v1.Group("/blends", middleware.RequireRole("admin", "warehouse"))
		{
			blends.POST("", blendsH.Create)
			blends.GET("", blendsH.List)
			blends.GET("/:id", blendsH.Get)
		}

		// Bundlings — all roles read (cashiers sell them), admin writes
		v1.GET("/bundlings", anyRole, bundlingsH.List)
		v1.GET("/bundlings/:id", anyRole, bundlingsH.Get)
		bundlings := v1.Group("/bundlings", middleware.RequireRole("admin", "warehouse"))
		{
			bundlings.POST("", bundlingsH.Create)
			bundlings.PUT("/:id", bundlingsH.Update)
			bundlings.DELETE("/:id", bundlingsH.Delete)
		}

		// Stock requests — outlets submit, warehouse reviews
		stockReqs := v1.Group("/stock-requests")
		{
			stockReqs.POST("", middleware.RequireRole("outlet", "admin"), stockRequestsH.Create)
			stockReqs.GET("", anyRole, stockRequestsH.List)
			stockReqs.GET("/:id", anyRole, stockRequestsH.Get)
			stockReqs.PATCH("/:id/review", middleware.RequireRole("warehouse", "admin"), stockRequestsH.Review)
		}

		// Checkout — the register flow, outlet cashiers and admins
		co := v1.Group("/checkout", middleware.RequireRole("outlet", "admin"))
		{
			co.GET("/search", checkoutH.Search)
			co.POST("/transactions", checkoutH.Create)
			co.GET("/transactions", checkoutH.ListPending)
			co.GET("/transactions/:id", checkoutH.Get)
			co.POST("/transactions/:id/pay", checkoutH.Pay)
			co.DELETE("/transactions/:id", checkoutH.Void)
		}

		// Discounts — admin manages, cashiers read the active set
		v1.GET("/discounts/active", anyRole, discountsH.ListActive)
		discounts := v1.Group("/discounts", middleware.RequireRole("admin"))
		{
			discounts.POST("", discountsH.Create)
			discounts.GET("", discountsH.List)
			discounts.GET("/:id", discountsH.Get)
			discounts.PUT("/:id", discountsH.Update)
			discounts.DELETE("/:id", discountsH.Delete)
		}

		// Dashboard — admin only
		dash := v1.Group("/dashboard", middleware.RequireRole("admin"))
		{
			dash.GET("/summary", dashboardH.Summary)
			dash.GET("/sales-chart", dashboardH.SalesChart)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
