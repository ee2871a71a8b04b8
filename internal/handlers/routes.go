package handlers

import (
	"feegate/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles the constructed handler set for route registration.
type Handlers struct {
	Session    *SessionHandler
	Cart       *CartHandler
	Storefront *StorefrontHandler
	Checkout   *CheckoutHandler
	Status     *StatusHandler
	Admin      *AdminHandler
}

// SetupRoutes registers the extension points: the cart recalculation
// surface, the storefront fee view, checkout, the debug status endpoint
// and the settings surface.
func SetupRoutes(app *fiber.App, h *Handlers) {
	app.Get("/health", HealthCheck)

	api := app.Group("/api")
	api.Post("/session", h.Session.Create)
	api.Post("/admin/login", h.Admin.Login)

	// Visitor routes require a session token.
	authenticated := api.Group("/", middleware.SessionAuth)
	authenticated.Get("/cart", h.Cart.Get)
	authenticated.Post("/cart/items", h.Cart.AddItem)
	authenticated.Put("/cart/customer", h.Cart.UpdateCustomer)
	authenticated.Put("/cart/shipping", h.Cart.UpdateShipping)
	authenticated.Get("/storefront/cart/fees", h.Storefront.CartFees)
	authenticated.Post("/checkout", h.Checkout.Checkout)
	authenticated.Get("/orders/:orderNumber", h.Checkout.GetOrder)
	authenticated.Get("/fees/status", h.Status.Status)

	// Settings surface.
	admin := api.Group("/admin", middleware.AdminAuth)
	admin.Get("/settings", h.Admin.GetSettings)
	admin.Put("/settings", h.Admin.UpdateSettings)
}
