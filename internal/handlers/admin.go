package handlers

import (
	"errors"

	"feegate/internal/models"
	"feegate/internal/repositories"
	"feegate/internal/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type AdminHandler struct {
	settings repositories.SettingsRepository
}

func NewAdminHandler(settings repositories.SettingsRepository) *AdminHandler {
	return &AdminHandler{settings: settings}
}

// Login checks the seeded admin credential and issues an admin token.
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}

	admin, err := h.settings.GetAdminByUsername(input.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrAdminNotFound) {
			return utils.Unauthorized(c, "invalid credentials")
		}
		return utils.InternalError(c, "login failed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(input.Password)); err != nil {
		return utils.Unauthorized(c, "invalid credentials")
	}

	token, err := utils.GenerateAdminToken(admin.Username)
	if err != nil {
		return utils.InternalError(c, "failed to issue token")
	}
	return utils.Success(c, fiber.Map{"token": token})
}

// GetSettings returns the persisted fee specs and the legacy target
// shipping method identifier.
func (h *AdminHandler) GetSettings(c *fiber.Ctx) error {
	specs, err := h.settings.FeeSettings()
	if err != nil {
		return utils.InternalError(c, "failed to load settings")
	}
	target, err := h.settings.GetSetting(models.SettingTargetShippingMethod)
	if err != nil {
		return utils.InternalError(c, "failed to load settings")
	}
	return utils.Success(c, fiber.Map{
		"fees":                   specs,
		"target_shipping_method": target,
	})
}

// UpdateSettings upserts fee specs and the target shipping method.
func (h *AdminHandler) UpdateSettings(c *fiber.Ctx) error {
	var input struct {
		Fees                 []models.FeeSetting `json:"fees"`
		TargetShippingMethod *string             `json:"target_shipping_method"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}

	for i := range input.Fees {
		spec := input.Fees[i]
		if spec.Name == "" {
			return utils.BadRequest(c, "fee name is required")
		}
		if spec.Kind != models.FeeKindPercentage && spec.Kind != models.FeeKindFixed {
			return utils.BadRequest(c, "fee kind must be percentage or fixed")
		}
		if spec.Rate < 0 || spec.Amount < 0 {
			return utils.BadRequest(c, "fee rate and amount must not be negative")
		}
		if err := h.settings.UpsertFeeSetting(&input.Fees[i]); err != nil {
			return utils.InternalError(c, "failed to save settings")
		}
	}

	if input.TargetShippingMethod != nil {
		if err := h.settings.SetSetting(models.SettingTargetShippingMethod, *input.TargetShippingMethod); err != nil {
			return utils.InternalError(c, "failed to save settings")
		}
	}
	return h.GetSettings(c)
}
