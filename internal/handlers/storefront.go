package handlers

import (
	"feegate/internal/services/cart"
	"feegate/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type StorefrontHandler struct {
	carts *cart.Service
}

func NewStorefrontHandler(carts *cart.Service) *StorefrontHandler {
	return &StorefrontHandler{carts: carts}
}

// CartFees returns the headless representation of the cart's fee lines:
// minor-unit amounts, stable ids. Storefront calls always count as
// background requests for the decision engine.
func (h *StorefrontHandler) CartFees(c *fiber.Ctx) error {
	ec := evalContext(c)
	ec.IsBackground = true

	crt, err := h.carts.Get(c.Context(), ec.SessionID)
	if err != nil {
		return utils.InternalError(c, "failed to load cart")
	}
	d := h.carts.Recalculate(c.Context(), ec, crt)

	return utils.Success(c, fiber.Map{
		"fees":     cart.FeeRecords(crt),
		"decision": d,
	})
}
