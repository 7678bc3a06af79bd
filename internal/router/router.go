// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nexura/storefront/internal/config"
	"github.com/nexura/storefront/internal/handlers"
	"github.com/nexura/storefront/internal/middleware"
	"github.com/nexura/storefront/internal/services"
	"github.com/nexura/storefront/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	notificationService := services.NewNotificationService(db, cfg)
	storageService, _ := services.NewStorageService(cfg)

	authService := services.NewAuthService(db, cfg)
	userService := services.NewUserService(db)
	productService := services.NewProductService(db)
	cartService := services.NewCartService(db)
	paymentService := services.NewPaymentService(cfg)
	orderService := services.NewOrderService(db, cartService, notificationService)
	checkoutService := services.NewCheckoutService(userService, cartService, orderService, paymentService)
	reviewService := services.NewReviewService(db)
	adminService := services.NewAdminService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	productHandler := handlers.NewProductHandler(productService, storageService)
	cartHandler := handlers.NewCartHandler(cartService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	orderHandler := handlers.NewOrderHandler(orderService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	adminHandler := handlers.NewAdminHandler(adminService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS([]string{cfg.Frontend.BaseURL}))
	r.Use(middleware.I18nMiddleware())
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
			auth.POST("/logout", middleware.AuthRequired(), authHandler.Logout)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
		}

		// Product catalog (public)
		products := v1.Group("/products")
		{
			products.GET("", middleware.OptionalAuth(), productHandler.ListProducts)
			products.GET("/:id", middleware.OptionalAuth(), productHandler.GetProduct)
			products.GET("/:id/quote", productHandler.PriceQuote)
			products.GET("/:id/reviews", reviewHandler.ListReviews)

			// Authenticated review routes
			protected := products.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.POST("/:id/reviews", reviewHandler.SubmitReview)
				protected.PUT("/:id/reviews/:index", reviewHandler.EditReview)
				protected.DELETE("/:id/reviews/:index", reviewHandler.DeleteReview)
				protected.POST("/:id/reviews/:index/like", reviewHandler.ToggleLike)
			}
		}

		// Cart routes
		cart := v1.Group("/cart")
		cart.Use(middleware.AuthRequired())
		{
			cart.GET("", cartHandler.GetCart)
			cart.POST("/items", cartHandler.AddItem)
			cart.PUT("/items", cartHandler.UpdateQuantity)
			cart.DELETE("/items", cartHandler.RemoveItem)
		}

		// Checkout routes
		checkout := v1.Group("/checkout")
		checkout.Use(middleware.AuthRequired())
		{
			checkout.GET("", checkoutHandler.State)
			checkout.POST("/address", checkoutHandler.SelectAddress)
			checkout.POST("/shipping", checkoutHandler.SetShipping)
			checkout.POST("/payment", checkoutHandler.SetPayment)
			checkout.POST("/next", checkoutHandler.Next)
			checkout.POST("/back", checkoutHandler.Back)
			checkout.POST("/place-order", middleware.CheckoutRateLimit(), checkoutHandler.PlaceOrder)
		}

		// Order tracking (public, by order number)
		v1.GET("/track/:orderId", orderHandler.TrackOrder)

		// Order routes
		orders := v1.Group("/orders")
		orders.Use(middleware.AuthRequired())
		{
			orders.GET("", orderHandler.ListOrders)
			orders.GET("/:orderId", orderHandler.GetOrder)
			orders.POST("/:orderId/cancel", orderHandler.RequestCancellation)
		}

		// User profile routes
		users := v1.Group("/users/me")
		users.Use(middleware.AuthRequired())
		{
			users.PUT("", userHandler.UpdateProfile)
			users.POST("/addresses", userHandler.AddAddress)
			users.POST("/cards", userHandler.AddCard)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			admin.GET("/dashboard", adminHandler.GetDashboard)

			// User management
			adminUsers := admin.Group("/users")
			{
				adminUsers.GET("", userHandler.ListUsers)
				adminUsers.PUT("/:id/block", userHandler.SetBlocked)
				adminUsers.DELETE("/:id", userHandler.DeleteUser)
			}

			// Product management
			adminProducts := admin.Group("/products")
			{
				adminProducts.GET("", productHandler.SearchProducts)
				adminProducts.POST("", productHandler.CreateProduct)
				adminProducts.PUT("/:id", productHandler.UpdateProduct)
				adminProducts.DELETE("/:id", productHandler.DeleteProduct)
				adminProducts.POST("/:id/images", middleware.UploadRateLimit(), productHandler.UploadImages)
			}

			// Order management
			adminOrders := admin.Group("/orders")
			{
				adminOrders.GET("", orderHandler.AdminListOrders)
				adminOrders.PUT("/:orderId/status", orderHandler.AdminUpdateStatus)
			}
		}
	}

	// Static file serving (for development)
	if cfg.Environment == "development" {
		r.Static("/uploads", "./uploads")
	}

	return r
}
