package routes

import (
	"net/http"

	"ecommerce-backend/internal/config"
	"ecommerce-backend/internal/database"
	"ecommerce-backend/internal/logger"
	"ecommerce-backend/internal/middleware"
	orderHandler "ecommerce-backend/internal/order/handler"
	orderRepository "ecommerce-backend/internal/order/repository"
	orderService "ecommerce-backend/internal/order/service"
	productHandler "ecommerce-backend/internal/product/handler"
	productRepository "ecommerce-backend/internal/product/repository"
	productService "ecommerce-backend/internal/product/service"
	userHandler "ecommerce-backend/internal/user/handler"
	userRepository "ecommerce-backend/internal/user/repository"
	userService "ecommerce-backend/internal/user/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(cfg *config.Config, db *database.Database, mailer userService.MailDispatcher) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware in order: recovery, request ID, logging, security headers,
	// CORS, request size limit, general rate limit
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(middleware.DefaultMaxRequestSize))
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))

	router.GET("/health", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "Database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})

	userRepo := userRepository.NewRepository(db)
	userSvc := userService.NewService(userRepo, mailer, cfg)
	userHdl := userHandler.NewHandler(userSvc, cfg)

	productRepo := productRepository.NewRepository(db)
	productSvc := productService.NewService(productRepo)
	productHdl := productHandler.NewHandler(productSvc)

	orderRepo := orderRepository.NewRepository(db)
	orderSvc := orderService.NewService(orderRepo, productRepo)
	orderHdl := orderHandler.NewHandler(orderSvc)

	v1 := router.Group("/api/v1")
	{
		userHdl.RegisterRoutes(v1)
		productHdl.RegisterRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(cfg, userRepo))
		{
			userHdl.RegisterProfileRoutes(protected)
			productHdl.RegisterProtectedRoutes(protected)
			orderHdl.RegisterProtectedRoutes(protected)

			admin := protected.Group("/admin")
			admin.Use(middleware.AdminOnly())
			{
				userHdl.RegisterAdminRoutes(admin)
				productHdl.RegisterAdminRoutes(admin)
				orderHdl.RegisterAdminRoutes(admin)
			}
		}
	}

	logger.Info("All routes initialized")
	return router
}
