package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/autopost/internal/service"
	"github.com/maheshrc27/autopost/internal/transfer"
)

type SettingsHandler struct {
	s service.SettingsService
}

func NewSettingsHandler(service service.SettingsService) *SettingsHandler {
	return &SettingsHandler{s: service}
}

func (h *SettingsHandler) ListSettings(c *fiber.Ctx) error {
	settings, err := h.s.List(c.Context(), GetUserID(c))
	if err != nil {
		return HandleError(c, err)
	}
	return c.JSON(settings)
}

func (h *SettingsHandler) GetSettingsInfo(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}

	settingsInfo, err := h.s.Get(c.Context(), GetUserID(c), id)
	if err != nil {
		return HandleError(c, err)
	}
	return c.JSON(settingsInfo)
}

func (h *SettingsHandler) CreateSettings(c *fiber.Ctx) error {
	var req transfer.ContentSettingRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	setting, err := h.s.Create(c.Context(), GetUserID(c), &req)
	if err != nil {
		return HandleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(setting)
}

func (h *SettingsHandler) UpdateSettings(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	var req transfer.ContentSettingRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	setting, err := h.s.Update(c.Context(), GetUserID(c), id, &req)
	if err != nil {
		return HandleError(c, err)
	}
	return c.JSON(setting)
}

func (h *SettingsHandler) DeleteSettings(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}

	if err := h.s.Delete(c.Context(), GetUserID(c), id); err != nil {
		return HandleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
