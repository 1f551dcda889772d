package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/seonkim/beanshop-backend/config"
	"github.com/seonkim/beanshop-backend/internal/app/controller"
	"github.com/seonkim/beanshop-backend/internal/app/repository"
	"github.com/seonkim/beanshop-backend/internal/app/service"
	"github.com/seonkim/beanshop-backend/internal/db"
	"github.com/seonkim/beanshop-backend/internal/middleware"
	"github.com/seonkim/beanshop-backend/internal/router"
	"github.com/seonkim/beanshop-backend/internal/scheduler"
	"github.com/seonkim/beanshop-backend/internal/storage"
	"github.com/seonkim/beanshop-backend/internal/websocket"
	"github.com/seonkim/beanshop-backend/pkg/logger"
	"github.com/seonkim/beanshop-backend/pkg/redis"
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

	logger.Info("Starting BEANSHOP Backend Server", map[string]interface{}{
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

	// Seed initial admin account
	if err := db.Seed(&cfg.Admin); err != nil {
		logger.Warn("Failed to seed database", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Redis는 토큰 블랙리스트 전용이라 실패해도 기동은 계속한다
	if cfg.Redis.Enabled {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Warn("Redis unavailable, token blacklist disabled", map[string]interface{}{
				"error": err.Error(),
			})
		}
		defer redis.Close()
	}

	// Order event hub for the admin live feed
	hub := websocket.NewHub()
	go hub.Run()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())
	wishRepo := repository.NewWishListRepository(db.GetDB())

	// Initialize services
	userService := service.NewUserService(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	productService := service.NewProductService(productRepo)
	orderService := service.NewOrderService(orderRepo, productRepo, db.GetDB(), hub)
	wishService := service.NewWishListService(wishRepo, db.GetDB())

	// Initialize storage
	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Initialize controllers
	userController := controller.NewUserController(userService, &cfg.JWT, &cfg.Cookie)
	productController := controller.NewProductController(productService)
	orderController := controller.NewOrderController(orderService)
	wishListController := controller.NewWishListController(wishService)
	uploadController := controller.NewUploadController(s3Storage)
	orderFeedController := controller.NewOrderFeedController(hub, cfg.CORS.AllowedOrigins)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Setup router
	r := router.NewRouter(
		userController,
		productController,
		orderController,
		wishListController,
		uploadController,
		orderFeedController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Daily settlement scheduler
	settlementScheduler := scheduler.NewSettlementScheduler(orderService)
	if err := settlementScheduler.Start(); err != nil {
		logger.Fatal("Failed to start settlement scheduler", err)
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: engine,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": server.Addr,
			"pid":     os.Getpid(),
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")

	settlementScheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", err)
	}

	logger.Info("Server stopped successfully")
}
