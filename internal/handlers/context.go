package handlers

import (
	"feegate/internal/middleware"
	"feegate/internal/services/decision"

	"github.com/gofiber/fiber/v2"
)

// evalContext assembles the decision engine's evaluation context from
// the request. Background calls are flagged the way the storefront
// script flags them (X-Requested-With); checkout-page detection is a
// client-supplied attribute since the API has no page rendering of its
// own. Countries are filled in later from the cart's customer record.
func evalContext(c *fiber.Ctx) decision.EvalContext {
	ec := decision.EvalContext{}
	if claims, ok := middleware.SessionClaims(c); ok {
		ec.SessionID = claims.SessionID
		ec.LoggedIn = claims.LoggedIn
		ec.Roles = claims.Roles
	}
	ec.IsAdmin = middleware.IsAdminContext(c)
	ec.IsBackground = c.Get("X-Requested-With") == "XMLHttpRequest"
	ec.IsCheckoutPage = c.QueryBool("checkout") || c.Get("X-Checkout-Page") == "true"
	return ec
}
