package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aiautoreview/aiautoreview-backend/config"
	"github.com/aiautoreview/aiautoreview-backend/internal/app/controller"
	"github.com/aiautoreview/aiautoreview-backend/internal/app/repository"
	"github.com/aiautoreview/aiautoreview-backend/internal/app/service"
	"github.com/aiautoreview/aiautoreview-backend/internal/db"
	"github.com/aiautoreview/aiautoreview-backend/internal/middleware"
	"github.com/aiautoreview/aiautoreview-backend/internal/router"
	"github.com/aiautoreview/aiautoreview-backend/pkg/logger"
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

	logger.Info("Starting AI Auto Review API", map[string]interface{}{
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

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	businessRepo := repository.NewBusinessRepository(db.GetDB())
	reviewRepo := repository.NewReviewRepository(db.GetDB())
	responseRepo := repository.NewResponseRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(
		db.GetDB(),
		userRepo,
		businessRepo,
		cfg.JWT.Secret,
		cfg.JWT.TokenExpiry,
	)
	reviewService := service.NewReviewService(db.GetDB(), reviewRepo)
	responseService := service.NewResponseService(reviewRepo, responseRepo)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	reviewController := controller.NewReviewController(reviewService, responseService)
	responseController := controller.NewResponseController(responseService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret, userRepo)

	// Setup router
	r := router.NewRouter(
		authController,
		reviewController,
		responseController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

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
