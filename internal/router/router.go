package router

import (
	"time"

	"dinepos/internal/billing"
	"dinepos/internal/config"
	"dinepos/internal/handler"
	"dinepos/internal/middleware"
	"dinepos/internal/repository"
	"dinepos/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
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
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	tableRepo := repository.NewTableRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	catalogSvc := service.NewCatalogService(categoryRepo, productRepo, rdb)
	tableSvc := service.NewTableService(tableRepo)
	orderSvc := service.NewOrderService(orderRepo, tableRepo, productRepo)
	settleSvc := service.NewSettlementService(orderRepo, paymentRepo, tableRepo)
	reportSvc := service.NewReportService(reportRepo)

	renderer := billing.NewRenderer(cfg.RestaurantName, cfg.Currency)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(authSvc)
	categoriesH := handler.NewCategoriesHandler(catalogSvc)
	productsH := handler.NewProductsHandler(catalogSvc)
	menuH := handler.NewMenuHandler(catalogSvc, rdb)
	tablesH := handler.NewTablesHandler(tableSvc, orderSvc)
	ordersH := handler.NewOrdersHandler(orderSvc, settleSvc)
	billH := handler.NewBillHandler(orderSvc, renderer)
	reportsH := handler.NewReportsHandler(reportSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Menu — no auth required, read-only, redis-cached
	r.GET("/v1/menu", menuH.Get)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: waiter, cashier, admin — declared per-endpoint
		anyStaff := middleware.RequireRole("waiter", "cashier", "admin")
		floorStaff := middleware.RequireRole("waiter", "admin")
		tillStaff := middleware.RequireRole("cashier", "admin")

		// Tables
		v1.GET("/tables", anyStaff, tablesH.List)
		v1.GET("/tables/:id/order", anyStaff, tablesH.ActiveOrder)
		v1.POST("/tables/:id/reserve", floorStaff, tablesH.Reserve)
		v1.DELETE("/tables/:id/reserve", floorStaff, tablesH.Unreserve)

		// Orders
		v1.POST("/orders", floorStaff, ordersH.Create)
		v1.GET("/orders", anyStaff, ordersH.List)
		v1.GET("/orders/:id", anyStaff, ordersH.Get)
		v1.POST("/orders/:id/lines", floorStaff, ordersH.AddLine)
		v1.DELETE("/orders/:id/lines/:lineId", floorStaff, ordersH.RemoveLine)
		v1.DELETE("/orders/:id/lines", floorStaff, ordersH.ClearLines)
		v1.DELETE("/orders/:id", floorStaff, ordersH.Cancel)
		v1.POST("/orders/:id/settle", tillStaff, ordersH.Settle)
		v1.GET("/orders/:id/bill", anyStaff, billH.Text)
		v1.GET("/orders/:id/bill.pdf", anyStaff, billH.PDF)

		// Catalog — admin can write, all authenticated staff can read
		v1.GET("/categories", anyStaff, categoriesH.List)
		categories := v1.Group("/categories", middleware.RequireRole("admin"))
		{
			categories.POST("", categoriesH.Create)
			categories.PUT("/:id", categoriesH.Update)
			categories.PATCH("/:id/deactivate", categoriesH.Deactivate)
			categories.DELETE("/:id", categoriesH.Delete)
		}

		v1.GET("/products", anyStaff, productsH.List)
		products := v1.Group("/products", middleware.RequireRole("admin"))
		{
			products.POST("", productsH.Create)
			products.PUT("/:id", productsH.Update)
			products.DELETE("/:id", productsH.Deactivate)
			products.PATCH("/:id/reactivate", productsH.Reactivate)
		}

		// Reports
		reports := v1.Group("/reports", tillStaff)
		{
			reports.GET("/daily", reportsH.Daily)
			reports.GET("/monthly", reportsH.Monthly)
			reports.GET("/products", reportsH.Products)
			reports.GET("/tables", reportsH.Tables)
		}

		// Operator accounts
		users := v1.Group("/users", middleware.RequireRole("admin"))
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.List)
			users.PUT("/:id", usersH.Update)
			users.DELETE("/:id", usersH.Deactivate)
			users.PATCH("/:id/reactivate", usersH.Reactivate)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
