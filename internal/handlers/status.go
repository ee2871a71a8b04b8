package handlers

import (
	"feegate/internal/services/cart"
	"feegate/internal/services/decision"
	"feegate/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type StatusHandler struct {
	engine *decision.Service
	carts  *cart.Service
}

func NewStatusHandler(engine *decision.Service, carts *cart.Service) *StatusHandler {
	return &StatusHandler{engine: engine, carts: carts}
}

// Status returns the session's last recorded fee decision. When no
// status record exists yet, a fresh decision is computed from the live
// context (which also stores it).
func (h *StatusHandler) Status(c *fiber.Ctx) error {
	ec := evalContext(c)

	if d, ok := h.engine.Status(c.Context(), ec.SessionID); ok {
		return utils.Success(c, d)
	}

	// No record yet: evaluate against the live cart customer. The call
	// is a background one by nature of this endpoint.
	ec.IsBackground = true
	crt, err := h.carts.Get(c.Context(), ec.SessionID)
	if err != nil {
		return utils.InternalError(c, "failed to load session state")
	}
	d := h.carts.Recalculate(c.Context(), ec, crt)
	return utils.Success(c, d)
}
