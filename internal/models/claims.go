package models

import "github.com/golang-jwt/jwt/v5"

// SessionClaims identifies a visitor session. Roles carries the
// storefront-asserted role set for logged-in customers; it is empty for
// guests.
type SessionClaims struct {
	jwt.RegisteredClaims
	SessionID string   `json:"session_id"`
	LoggedIn  bool     `json:"logged_in"`
	Roles     []string `json:"roles,omitempty"`
}

// AdminClaims identifies an authenticated settings-surface user.
type AdminClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	Role     string `json:"role"`
}

// HasRole checks if the session claims include a specific role.
func (c *SessionClaims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}
