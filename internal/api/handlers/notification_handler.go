package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/autopost/internal/service"
)

type NotificationHandler struct {
	s service.NotificationService
}

func NewNotificationHandler(service service.NotificationService) *NotificationHandler {
	return &NotificationHandler{s: service}
}

func (h *NotificationHandler) ListNotifications(c *fiber.Ctx) error {
	notifications, err := h.s.List(c.Context(), GetUserID(c))
	if err != nil {
		return HandleError(c, err)
	}
	return c.JSON(notifications)
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}

	if err := h.s.MarkRead(c.Context(), GetUserID(c), id); err != nil {
		return HandleError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
	})
}

func (h *NotificationHandler) DeleteNotification(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}

	if err := h.s.Delete(c.Context(), GetUserID(c), id); err != nil {
		return HandleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
