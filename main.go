package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodorder/internal/config"
	"foodorder/internal/middleware"
	"foodorder/internal/models"
	"foodorder/internal/repositories"
	"foodorder/internal/server"
	"foodorder/internal/services"
	"foodorder/pkg/cache"
	"foodorder/pkg/rabbitmq"

	"go.uber.org/zap"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck
	sugar := logger.Sugar()

	// --- Initialize Repositories ---
	menuRepo, orderRepo, err := openRepositories(cfg)
	if err != nil {
		sugar.Fatalw("Failed to initialize store", "driver", cfg.DatabaseDriver, "error", err)
	}

	// --- Optional collaborators ---
	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}, sugar)
		if err != nil {
			sugar.Fatalw("Failed to initialize RabbitMQ client", "error", err)
		}
		defer mqClient.Close()
		publisher = mqClient

		if err := mqClient.ConsumeOrderEvents(func(event models.OrderEvent) error {
			sugar.Infow("Received order event", "type", event.Type, "order_id", event.OrderID, "status", event.Status)
			return nil
		}); err != nil {
			sugar.Errorw("Failed to start order event consumer", "error", err)
		}
	}

	var menuCache services.MenuCache
	if cfg.RedisAddr != "" {
		redisCache := cache.NewRedisCache(cfg.RedisAddr, "foodorder")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisCache.Ping(ctx); err != nil {
			sugar.Warnw("Redis is not reachable, menu cache disabled", "addr", cfg.RedisAddr, "error", err)
			redisCache.Close()
		} else {
			defer redisCache.Close()
			menuCache = redisCache
		}
		cancel()
	}

	// --- Initialize Services ---
	menuService := services.NewMenuService(menuRepo, menuCache, cfg.MenuCacheTTL, sugar)
	orderService := services.NewOrderService(orderRepo, publisher, cfg.DeliveryOffset, sugar)
	verifier := services.NewJWTVerifier(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience)

	if cfg.SeedMenu {
		seedMenu(menuService, sugar)
	}

	stopCleanup := make(chan struct{})
	var limiter *middleware.RateLimiter
	if cfg.OrderRateLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.OrderRateLimit, cfg.OrderRateBurst, sugar)
		limiter.StartCleanup(10*time.Minute, 10000, stopCleanup)
	}

	app := server.New(server.Deps{
		MenuService:    menuService,
		OrderService:   orderService,
		Verifier:       verifier,
		AllowedOrigins: cfg.AllowedOrigins,
		RateLimiter:    limiter,
		Logger:         sugar,
		RequestLog:     true,
	})

	// --- Start HTTP Server ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sugar.Infow("Server is running", "addr", cfg.ListenAddr(), "delivery_offset", cfg.DeliveryOffset)
		if err := app.Listen(cfg.ListenAddr()); err != nil {
			sugar.Fatalw("Server failed to start", "error", err)
		}
	}()

	<-quit
	sugar.Info("Shutting down server...")
	close(stopCleanup)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		sugar.Errorw("Error during Fiber shutdown", "error", err)
	}
	sugar.Info("Server gracefully stopped")
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.Development() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func openRepositories(cfg config.Config) (repositories.MenuRepository, repositories.OrderRepository, error) {
	if cfg.DatabaseDriver == repositories.DriverMemory {
		return repositories.NewMockMenuRepository(), repositories.NewMockOrderRepository(), nil
	}
	db, err := repositories.OpenDatabase(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, err
	}
	return repositories.NewGORMMenuRepository(db), repositories.NewGORMOrderRepository(db), nil
}

// seedMenu populates an empty menu with a few dishes.
func seedMenu(service *services.MenuService, logger *zap.SugaredLogger) {
	items := []models.MenuItem{
		{Fields: map[string]any{"name": "Borscht", "price": 95, "description": "Beetroot soup with sour cream"}},
		{Fields: map[string]any{"name": "Varenyky", "price": 85, "description": "Dumplings with potato and fried onion"}},
		{Fields: map[string]any{"name": "Chicken Kyiv", "price": 160, "description": "Breaded chicken with herb butter"}},
		{Fields: map[string]any{"name": "Syrnyky", "price": 70, "description": "Cottage cheese pancakes"}},
	}

	n, err := service.SeedMenu(context.Background(), items)
	if err != nil {
		logger.Errorw("Error seeding menu", "seeded", n, "error", err)
		return
	}
	logger.Infow("Seeded menu", "items", n)
}
