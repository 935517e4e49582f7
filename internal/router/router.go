package router

import (
	"github.com/delishapp/delish-backend/config"
	"github.com/delishapp/delish-backend/internal/app/controller"
	"github.com/delishapp/delish-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type Router struct {
	authController  *controller.AuthController
	storeController *controller.StoreController
	heartController *controller.HeartController
	authMiddleware  *middleware.AuthMiddleware
	config          *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	storeController *controller.StoreController,
	heartController *controller.HeartController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:  authController,
		storeController: storeController,
		heartController: heartController,
		authMiddleware:  authMiddleware,
		config:          cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "Delish API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/logout", r.authMiddleware.OptionalAuth(), r.authController.Logout)
			auth.GET("/me", r.authMiddleware.RequireAuth(), r.authController.GetMe)
			auth.POST("/forgot-password", r.authController.ForgotPassword)
			auth.GET("/reset-password/:token", r.authController.CheckResetToken)
			auth.POST("/reset-password", r.authController.ResetPassword)
		}

		stores := v1.Group("/stores")
		{
			stores.GET("", r.storeController.ListStores)
			stores.GET("/:id", r.storeController.GetStore)
			stores.GET("/slug/:slug", r.storeController.GetStoreBySlug)
			stores.POST("", r.authMiddleware.RequireAuth(), r.storeController.CreateStore)
			stores.PUT("/:id", r.authMiddleware.RequireAuth(), r.storeController.UpdateStore)
			stores.DELETE("/:id", r.authMiddleware.RequireAuth(), r.storeController.DeleteStore)
			stores.POST("/:id/heart", r.authMiddleware.RequireAuth(), r.heartController.ToggleHeart)
		}

		v1.GET("/hearts", r.authMiddleware.RequireAuth(), r.heartController.ListHearts)
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
