package handlers

import (
	"feegate/internal/models"
	"feegate/internal/services/cart"
	"feegate/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type CartHandler struct {
	carts *cart.Service
}

func NewCartHandler(carts *cart.Service) *CartHandler {
	return &CartHandler{carts: carts}
}

// Get returns the session's cart with freshly recalculated fees.
func (h *CartHandler) Get(c *fiber.Ctx) error {
	ec := evalContext(c)
	crt, err := h.carts.Get(c.Context(), ec.SessionID)
	if err != nil {
		return utils.InternalError(c, "failed to load cart")
	}
	d := h.carts.Recalculate(c.Context(), ec, crt)
	return utils.Success(c, fiber.Map{
		"cart":     crt,
		"decision": d,
	})
}

// AddItem puts a product line in the cart.
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var input struct {
		SKU      string  `json:"sku"`
		Name     string  `json:"name"`
		Price    float64 `json:"price"`
		Quantity int     `json:"quantity"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}
	if input.SKU == "" || input.Quantity <= 0 || input.Price < 0 {
		return utils.BadRequest(c, "sku, positive quantity and non-negative price are required")
	}

	crt, d, err := h.carts.AddItem(c.Context(), evalContext(c), models.CartItem{
		SKU:      input.SKU,
		Name:     input.Name,
		Price:    input.Price,
		Quantity: input.Quantity,
	})
	if err != nil {
		return utils.InternalError(c, "failed to update cart")
	}
	return utils.Success(c, fiber.Map{"cart": crt, "decision": d})
}

// UpdateCustomer sets the cart's customer record (shipping and billing
// countries).
func (h *CartHandler) UpdateCustomer(c *fiber.Ctx) error {
	var input struct {
		ShippingCountry string `json:"shipping_country"`
		BillingCountry  string `json:"billing_country"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}

	ec := evalContext(c)
	info := models.CustomerInfo{
		ShippingCountry: input.ShippingCountry,
		BillingCountry:  input.BillingCountry,
		LoggedIn:        ec.LoggedIn,
		Roles:           ec.Roles,
	}
	crt, d, err := h.carts.SetCustomer(c.Context(), ec, info)
	if err != nil {
		return utils.InternalError(c, "failed to update cart")
	}
	return utils.Success(c, fiber.Map{"cart": crt, "decision": d})
}

// UpdateShipping sets the cart's shipping total.
func (h *CartHandler) UpdateShipping(c *fiber.Ctx) error {
	var input struct {
		Amount float64 `json:"amount"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}
	if input.Amount < 0 {
		return utils.BadRequest(c, "shipping amount must not be negative")
	}

	crt, d, err := h.carts.SetShipping(c.Context(), evalContext(c), input.Amount)
	if err != nil {
		return utils.InternalError(c, "failed to update cart")
	}
	return utils.Success(c, fiber.Map{"cart": crt, "decision": d})
}
