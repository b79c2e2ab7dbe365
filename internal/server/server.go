// Package server assembles the fiber application serving the menu and order API.
package server

import (
	"time"

	"foodorder/internal/handlers"
	"foodorder/internal/metrics"
	"foodorder/internal/middleware"
	"foodorder/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// Deps are the long-lived collaborators created once at startup.
type Deps struct {
	MenuService    *services.MenuService
	OrderService   *services.OrderService
	Verifier       services.TokenVerifier
	AllowedOrigins []string
	RateLimiter    *middleware.RateLimiter // nil disables rate limiting
	Logger         *zap.SugaredLogger
	RequestLog     bool
}

// New builds the fiber app with middleware and routes.
func New(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "foodorder",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	if d.RequestLog {
		app.Use(logger.New())
	}
	app.Use(metrics.Middleware())
	app.Use(middleware.CORS(d.AllowedOrigins))
	app.Use(middleware.SecurityHeaders())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	app.Get("/metrics", metrics.Handler())

	api := app.Group("/api")

	menuHandler := handlers.NewMenuHandler(d.MenuService, d.Logger)
	menuHandler.RegisterRoutes(api)

	var createLimit fiber.Handler
	if d.RateLimiter != nil {
		createLimit = d.RateLimiter.Handler()
	}
	orderHandler := handlers.NewOrderHandler(d.OrderService, d.Logger)
	orderHandler.RegisterRoutes(api, middleware.AuthRequired(d.Verifier, d.Logger), createLimit)

	return app
}
