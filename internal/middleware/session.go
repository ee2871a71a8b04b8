// Package middleware provides HTTP middleware for the fiber app:
// session-token validation for storefront routes and admin JWT checks
// for the settings surface.
package middleware

import (
	"log"
	"strings"

	"feegate/internal/models"
	"feegate/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by the middleware.
const (
	LocalsSessionClaims = "sessionClaims"
	LocalsSessionID     = "sessionID"
	LocalsAdminClaims   = "adminClaims"
	LocalsIsAdmin       = "isAdmin"
)

// SessionAuth validates the per-session token and stores the claims in
// the request context. The token is read from X-Session-Token or from a
// bearer Authorization header.
func SessionAuth(c *fiber.Ctx) error {
	tokenStr := c.Get("X-Session-Token")
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenStr = strings.TrimPrefix(authHeader, "Bearer ")
		}
	}
	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing session token"})
	}

	claims, err := utils.ParseSessionToken(tokenStr)
	if err != nil {
		log.Printf("session token validation error: %v", err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid session token"})
	}

	c.Locals(LocalsSessionClaims, claims)
	c.Locals(LocalsSessionID, claims.SessionID)

	// An admin token alongside the session marks an administrative
	// browsing context for the decision engine.
	if adminToken := c.Get("X-Admin-Token"); adminToken != "" {
		if _, err := utils.ParseAdminToken(adminToken); err == nil {
			c.Locals(LocalsIsAdmin, true)
		}
	}

	return c.Next()
}

// AdminAuth validates the admin JWT for settings-surface routes.
func AdminAuth(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization header"})
	}

	claims, err := utils.ParseAdminToken(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		log.Printf("admin token validation error: %v", err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
	}
	if claims.Role != "admin" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "insufficient permissions"})
	}

	c.Locals(LocalsAdminClaims, claims)
	return c.Next()
}

// SessionClaims extracts the session claims set by SessionAuth.
func SessionClaims(c *fiber.Ctx) (*models.SessionClaims, bool) {
	claims, ok := c.Locals(LocalsSessionClaims).(*models.SessionClaims)
	return claims, ok && claims != nil
}

// IsAdminContext reports whether SessionAuth saw a valid admin token on
// the request.
func IsAdminContext(c *fiber.Ctx) bool {
	isAdmin, ok := c.Locals(LocalsIsAdmin).(bool)
	return ok && isAdmin
}
