package handlers

import (
	"errors"

	"feegate/internal/services/order"
	"feegate/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type CheckoutHandler struct {
	orders *order.Service
}

func NewCheckoutHandler(orders *order.Service) *CheckoutHandler {
	return &CheckoutHandler{orders: orders}
}

// Checkout finalizes the session's cart into a persisted order.
func (h *CheckoutHandler) Checkout(c *fiber.Ctx) error {
	var input struct {
		CardToken string `json:"card_token"`
	}
	_ = c.BodyParser(&input)

	ec := evalContext(c)
	// The checkout endpoint IS the checkout flow; foreground calls to it
	// count as being on the checkout page.
	ec.IsCheckoutPage = true

	o, d, err := h.orders.Checkout(c.Context(), ec, input.CardToken)
	if err != nil {
		if errors.Is(err, order.ErrEmptyCart) {
			return utils.BadRequest(c, "cart is empty")
		}
		return utils.InternalError(c, err.Error())
	}

	return utils.Created(c, fiber.Map{
		"order":    o,
		"decision": d,
	})
}

// GetOrder returns a persisted order by its number, scoped to the
// session that created it.
func (h *CheckoutHandler) GetOrder(c *fiber.Ctx) error {
	ec := evalContext(c)
	o, err := h.orders.Get(c.Params("orderNumber"))
	if err != nil {
		return utils.NotFound(c, "order not found")
	}
	if o.SessionID != ec.SessionID {
		return utils.Forbidden(c, "order belongs to another session")
	}
	return utils.Success(c, fiber.Map{"order": o})
}
