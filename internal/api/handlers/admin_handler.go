package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/autopost/internal/service"
)

// AdminHandler exposes operator triggers. Routes are admin only.
type AdminHandler struct {
	scheduler service.SchedulerService
	reviews   service.ReviewService
}

func NewAdminHandler(scheduler service.SchedulerService, reviews service.ReviewService) *AdminHandler {
	return &AdminHandler{scheduler: scheduler, reviews: reviews}
}

func (h *AdminHandler) Tick(c *fiber.Ctx) error {
	result, err := h.scheduler.Tick(c.Context())
	if err != nil {
		return HandleError(c, err)
	}
	return c.JSON(result)
}

func (h *AdminHandler) RunReview(c *fiber.Ctx) error {
	report, err := h.reviews.Run(c.Context(), nil)
	if err != nil {
		return HandleError(c, err)
	}
	return c.JSON(report)
}

func (h *AdminHandler) LatestReview(c *fiber.Ctx) error {
	report, err := h.reviews.Latest(c.Context())
	if err != nil {
		return HandleError(c, err)
	}
	return c.JSON(report)
}
