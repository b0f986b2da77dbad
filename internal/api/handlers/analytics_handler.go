package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/autopost/internal/service"
)

type AnalyticsHandler struct {
	s service.AnalyticsService
}

func NewAnalyticsHandler(service service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{s: service}
}

func (h *AnalyticsHandler) Overview(c *fiber.Ctx) error {
	overview, err := h.s.Overview(c.Context(), GetUserID(c))
	if err != nil {
		return HandleError(c, err)
	}
	return c.JSON(overview)
}

func (h *AnalyticsHandler) Platforms(c *fiber.Ctx) error {
	stats, err := h.s.Platforms(c.Context(), GetUserID(c))
	if err != nil {
		return HandleError(c, err)
	}
	return c.JSON(stats)
}

func (h *AnalyticsHandler) Performance(c *fiber.Ctx) error {
	days, err := h.s.Performance(c.Context(), GetUserID(c))
	if err != nil {
		return HandleError(c, err)
	}
	return c.JSON(days)
}

func (h *AnalyticsHandler) Content(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}

	breakdown, err := h.s.Content(c.Context(), GetUserID(c), id)
	if err != nil {
		return HandleError(c, err)
	}
	return c.JSON(breakdown)
}
