package handlers

import (
	"feegate/internal/models"
	"feegate/internal/session"
	"feegate/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type SessionHandler struct{}

func NewSessionHandler() *SessionHandler {
	return &SessionHandler{}
}

// Create issues a fresh visitor session and its token. The storefront
// may assert the visitor's identity (logged-in flag and role set) when
// it creates the session on the customer's behalf.
func (h *SessionHandler) Create(c *fiber.Ctx) error {
	var input struct {
		LoggedIn bool     `json:"logged_in"`
		Roles    []string `json:"roles"`
	}
	// Body is optional; a bare POST creates a guest session.
	_ = c.BodyParser(&input)

	claims := &models.SessionClaims{
		SessionID: session.NewSessionID(),
		LoggedIn:  input.LoggedIn,
		Roles:     input.Roles,
	}
	token, err := utils.GenerateSessionToken(claims)
	if err != nil {
		return utils.InternalError(c, "failed to create session")
	}

	return utils.Created(c, fiber.Map{
		"session_id": claims.SessionID,
		"token":      token,
	})
}
