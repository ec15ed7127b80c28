// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/12pranavr/kirana911-backend/internal/config"
	"github.com/12pranavr/kirana911-backend/internal/handlers"
	"github.com/12pranavr/kirana911-backend/internal/middleware"
	"github.com/12pranavr/kirana911-backend/internal/services"
	"github.com/12pranavr/kirana911-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	notificationService := services.NewNotificationService(db)
	storageService, _ := services.NewStorageService(cfg)

	authService := services.NewAuthService(db, cfg)
	storeService := services.NewStoreService(db)
	productService := services.NewProductService(db)
	saleService := services.NewSaleService(db, notificationService)
	customerService := services.NewCustomerService(db)
	dashboardService := services.NewDashboardService(db)
	importService := services.NewImportService(db, storageService, notificationService)
	paymentService := services.NewPaymentService(cfg)
	forecastService := services.NewForecastService(services.NewGormForecastSource(db), cfg)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	storeHandler := handlers.NewStoreHandler(storeService)
	productHandler := handlers.NewProductHandler(productService, storageService, storeService)
	saleHandler := handlers.NewSaleHandler(saleService, storeService)
	customerHandler := handlers.NewCustomerHandler(customerService, storeService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, storeService)
	notificationHandler := handlers.NewNotificationHandler(notificationService, storeService)
	importHandler := handlers.NewImportHandler(importService, storeService)
	paymentHandler := handlers.NewPaymentHandler(paymentService, storeService)
	forecastHandler := handlers.NewForecastHandler(forecastService, storeService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
		}

		// Demand forecast report
		v1.GET("/forecast", middleware.AuthRequired(), middleware.ForecastRateLimit(), forecastHandler.GetForecast)

		// Store routes
		stores := v1.Group("/stores")
		stores.Use(middleware.AuthRequired())
		{
			stores.POST("", middleware.OwnerRequired(), storeHandler.CreateStore)
			stores.GET("", storeHandler.GetStores)
			stores.GET("/:store_id", storeHandler.GetStore)
			stores.PUT("/:store_id", middleware.OwnerRequired(), storeHandler.UpdateStore)

			// Products
			products := stores.Group("/:store_id/products")
			{
				products.GET("", productHandler.GetProducts)
				products.POST("", productHandler.CreateProduct)
				products.GET("/low-stock", productHandler.GetLowStockProducts)
				products.GET("/:id", productHandler.GetProduct)
				products.PUT("/:id", productHandler.UpdateProduct)
				products.DELETE("/:id", middleware.OwnerRequired(), productHandler.DeleteProduct)
				products.POST("/:id/image", productHandler.UploadProductImage)
			}

			// Sales
			sales := stores.Group("/:store_id/sales")
			{
				sales.POST("", saleHandler.Checkout)
				sales.GET("", saleHandler.GetSales)
				sales.GET("/:id", saleHandler.GetSale)
				sales.DELETE("/:id", middleware.OwnerRequired(), saleHandler.VoidSale)
			}

			// Customers
			customers := stores.Group("/:store_id/customers")
			{
				customers.POST("", customerHandler.CreateCustomer)
				customers.GET("", customerHandler.GetCustomers)
				customers.GET("/:id", customerHandler.GetCustomer)
				customers.PUT("/:id", customerHandler.UpdateCustomer)
				customers.POST("/:id/settle", customerHandler.SettleCredit)
			}

			// Dashboard
			stores.GET("/:store_id/dashboard", dashboardHandler.GetStats)

			// Notifications
			notifications := stores.Group("/:store_id/notifications")
			{
				notifications.GET("", notificationHandler.GetNotifications)
				notifications.PUT("/read-all", notificationHandler.MarkAllRead)
				notifications.PUT("/:id/read", notificationHandler.MarkRead)
			}

			// Inventory import
			stores.POST("/:store_id/imports", middleware.ImportRateLimit(), importHandler.ImportInventory)

			// Payments
			payments := stores.Group("/:store_id/payments")
			{
				payments.POST("/intent", paymentHandler.CreatePaymentIntent)
				payments.GET("/:payment_intent_id/verify", paymentHandler.VerifyPayment)
			}
		}
	}

	return r
}
