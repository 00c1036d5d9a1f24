package main

import (
	"context"
	"log"
	"time"

	"storefront/internal/auth"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/events"
	"storefront/internal/handlers"
	"storefront/internal/logger"
	"storefront/internal/middleware"
	"storefront/internal/migrations"
	"storefront/internal/redis"
	"storefront/internal/repository"
	"storefront/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	zlog, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer zlog.Sync()

	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := migrations.Bootstrap(db, cfg, zlog); err != nil {
		zlog.Fatal("failed to bootstrap admin account", zap.Error(err))
	}

	var locker services.Locker
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		zlog.Warn("redis unavailable, sweep runs without cross-process lock", zap.Error(err))
	} else {
		locker = redisClient
		defer redisClient.Close()
	}

	publisher := events.NewNoopPublisher()
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaOrderTopic, zlog)
	}
	defer publisher.Close()

	tokens := auth.NewManager([]byte(cfg.JWTSecret), cfg.TokenTTL)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	productRepo := repository.NewProductRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	archiveRepo := repository.NewArchiveRepository(db)

	// Services
	userService := services.NewUserService(userRepo)
	saleRecorder := services.NewSaleRecorder(saleRepo)
	stockLedger := services.NewStockLedger(productRepo, zlog)
	orderService := services.NewOrderService(orderRepo, saleRecorder, stockLedger, publisher, zlog)
	sweepService := services.NewSweepService(orderRepo, archiveRepo, locker, cfg.RetentionWindow, zlog)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, tokens, cfg.CookieSecure)
	orderHandler := handlers.NewOrderHandler(orderService, saleRecorder, sweepService)

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(zlog))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.POST("/auth/login", authHandler.Login)
	router.POST("/auth/logout", authHandler.Logout)

	orders := router.Group("/orders")
	orders.POST("", orderHandler.Create)

	authed := orders.Group("", middleware.RequireAuth(tokens))
	authed.GET("/:id", orderHandler.Get)
	authed.GET("/user/:userId", orderHandler.ListByUser)

	admin := orders.Group("", middleware.RequireAuth(tokens), middleware.RequireAdmin())
	admin.GET("", orderHandler.List)
	admin.PUT("/:id", orderHandler.Update)
	admin.DELETE("/:id", orderHandler.Delete)
	admin.POST("/cleanup", orderHandler.Cleanup)
	admin.GET("/history", orderHandler.History)

	router.GET("/sales", middleware.RequireAuth(tokens), middleware.RequireAdmin(), orderHandler.ListSales)

	if cfg.SweepInterval > 0 {
		go runSweepLoop(sweepService, cfg.SweepInterval, zlog)
	}

	zlog.Info("server starting", zap.String("port", cfg.ServerPort))
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
	}
}

// runSweepLoop triggers the archival sweep on a fixed interval. Overlap with
// a manually triggered sweep is prevented by the redis lock.
func runSweepLoop(sweep services.SweepService, interval time.Duration, zlog *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		if _, err := sweep.Run(ctx, time.Now()); err != nil && err != services.ErrSweepRunning {
			zlog.Error("scheduled sweep failed", zap.Error(err))
		}
		cancel()
	}
}
