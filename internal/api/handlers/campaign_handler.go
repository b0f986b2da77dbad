package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/autopost/internal/service"
	"github.com/maheshrc27/autopost/internal/transfer"
)

type CampaignHandler struct {
	s service.CampaignService
}

func NewCampaignHandler(service service.CampaignService) *CampaignHandler {
	return &CampaignHandler{s: service}
}

func (h *CampaignHandler) ListCampaigns(c *fiber.Ctx) error {
	campaigns, err := h.s.List(c.Context(), GetUserID(c))
	if err != nil {
		return HandleError(c, err)
	}
	return c.JSON(campaigns)
}

func (h *CampaignHandler) GetCampaign(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}

	campaign, err := h.s.Get(c.Context(), GetUserID(c), id)
	if err != nil {
		return HandleError(c, err)
	}
	return c.JSON(campaign)
}

func (h *CampaignHandler) CreateCampaign(c *fiber.Ctx) error {
	var req transfer.CampaignRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	campaign, err := h.s.Create(c.Context(), GetUserID(c), &req)
	if err != nil {
		return HandleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(campaign)
}

func (h *CampaignHandler) UpdateCampaign(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	var req transfer.CampaignRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	campaign, err := h.s.Update(c.Context(), GetUserID(c), id, &req)
	if err != nil {
		return HandleError(c, err)
	}
	return c.JSON(campaign)
}

func (h *CampaignHandler) DeleteCampaign(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}

	if err := h.s.Delete(c.Context(), GetUserID(c), id); err != nil {
		return HandleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
