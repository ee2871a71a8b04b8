// Package main is the entry point for the fee gateway API.
package main

import (
	"log"
	"time"

	"feegate/internal/config"
	"feegate/internal/handlers"
	"feegate/internal/repositories"
	"feegate/internal/services/cart"
	"feegate/internal/services/decision"
	"feegate/internal/services/order"
	"feegate/internal/services/payment"
	"feegate/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadEnv()

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	defer repositories.CloseDB()

	// Wire the services: session store, decision engine, cart, orders.
	sessions := session.NewRedisStore(repositories.RedisClient,
		config.GetDurationEnv("SESSION_TTL", session.DefaultTTL))
	engine := decision.NewService(sessions)
	settings := repositories.NewSettingsRepository(repositories.DB)
	carts := cart.NewService(sessions, engine, settings)
	payments := payment.NewService(config.GetEnv("STRIPE_SECRET_KEY", ""))
	orders := order.NewService(repositories.NewOrderRepository(repositories.DB), carts, engine, payments)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: config.GetEnv("CORS_ORIGINS", "http://localhost:5173"),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Session-Token, X-Admin-Token, X-Requested-With, X-Checkout-Page",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use("/api/admin/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(429).JSON(fiber.Map{
				"error": "Too many requests. Please try again later.",
			})
		},
	}))

	handlers.SetupRoutes(app, &handlers.Handlers{
		Session:    handlers.NewSessionHandler(),
		Cart:       handlers.NewCartHandler(carts),
		Storefront: handlers.NewStorefrontHandler(carts),
		Checkout:   handlers.NewCheckoutHandler(orders),
		Status:     handlers.NewStatusHandler(engine, carts),
		Admin:      handlers.NewAdminHandler(settings),
	})

	log.Fatal(app.Listen(":" + config.GetEnv("PORT", "3000")))
}
