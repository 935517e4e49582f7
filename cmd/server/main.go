package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/delishapp/delish-backend/config"
	"github.com/delishapp/delish-backend/internal/app/controller"
	"github.com/delishapp/delish-backend/internal/app/repository"
	"github.com/delishapp/delish-backend/internal/app/service"
	"github.com/delishapp/delish-backend/internal/db"
	"github.com/delishapp/delish-backend/internal/mailer"
	"github.com/delishapp/delish-backend/internal/middleware"
	"github.com/delishapp/delish-backend/internal/router"
	"github.com/delishapp/delish-backend/internal/scheduler"
	"github.com/delishapp/delish-backend/internal/session"
	"github.com/delishapp/delish-backend/pkg/logger"
	"github.com/delishapp/delish-backend/pkg/redis"
	"github.com/delishapp/delish-backend/pkg/util"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting Delish Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Initialize Redis (session backing store)
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Fatal("Failed to connect to Redis", err)
	}
	defer func() {
		if err := redis.Close(); err != nil {
			logger.Error("Failed to close Redis connection", err)
		}
	}()

	sessions := session.NewRedisStore(redis.GetClient(), cfg.Session.TTL)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	storeRepo := repository.NewStoreRepository(db.GetDB())
	heartRepo := repository.NewHeartRepository(db.GetDB())

	// Outbound mail: SMTP when configured, log-only otherwise
	var mail mailer.Mailer
	if cfg.SMTP.Enabled() {
		mail = mailer.NewSMTPMailer(&cfg.SMTP)
	} else {
		logger.Warn("SMTP not configured, password reset emails will be logged only")
		mail = mailer.NewLogMailer()
	}

	verifier := util.NewBcryptVerifier()

	// Initialize services
	authService := service.NewAuthService(userRepo, sessions, verifier)
	passwordResetService := service.NewPasswordResetService(
		userRepo,
		sessions,
		verifier,
		mail,
		cfg.App.BaseURL,
	)
	storeService := service.NewStoreService(storeRepo)
	heartService := service.NewHeartService(heartRepo, storeRepo)

	// Initialize controllers
	authController := controller.NewAuthController(authService, passwordResetService)
	storeController := controller.NewStoreController(storeService)
	heartController := controller.NewHeartController(heartService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(sessions)

	// Setup router
	r := router.NewRouter(
		authController,
		storeController,
		heartController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start background cleanup of expired reset tokens
	resetTokenScheduler := scheduler.NewResetTokenScheduler(userRepo)
	if err := resetTokenScheduler.Start(); err != nil {
		logger.Fatal("Failed to start reset token scheduler", err)
	}
	defer resetTokenScheduler.Stop()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
