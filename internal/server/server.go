package server

import (
	"time"

	"catalog/internal/config"
	"catalog/internal/database"
	"catalog/internal/handlers"
	"catalog/internal/middleware"
	"catalog/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// NewApp builds the Fiber app: API routes, health check and, in production,
// the static frontend. events may be nil.
func NewApp(cfg *config.Config, stores *database.Stores, events services.EventPublisher) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "catalog",
	})

	app.Use(recover.New())
	app.Use(logger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "healthy",
			"time":    time.Now().Format(time.RFC3339),
			"storage": stores.Backend,
			"events":  events != nil,
		})
	})

	api := app.Group("/api")

	var guard []fiber.Handler
	if cfg.JWTSecret != "" {
		authService := services.NewAuthService(stores.Users, cfg.JWTSecret)
		handlers.NewAuthHandler(authService).RegisterRoutes(api)
		if cfg.AuthRequired {
			guard = append(guard, middleware.AuthRequired(authService))
		}
	}

	productService := services.NewProductService(stores.Products, events)
	handlers.NewProductHandler(productService).RegisterRoutes(api, guard...)

	if cfg.Production() {
		handlers.RegisterFrontend(app, cfg.StaticDir)
	}

	return app
}
