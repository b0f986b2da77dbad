package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/autopost/internal/service"
	"github.com/maheshrc27/autopost/internal/transfer"
)

type PlatformHandler struct {
	s service.AccountService
}

func NewPlatformHandler(service service.AccountService) *PlatformHandler {
	return &PlatformHandler{s: service}
}

func (h *PlatformHandler) ListPlatforms(c *fiber.Ctx) error {
	platforms, err := h.s.ListPlatforms(c.Context())
	if err != nil {
		return HandleError(c, err)
	}
	return c.JSON(platforms)
}

func (h *PlatformHandler) ListSocialAccounts(c *fiber.Ctx) error {
	accountList, err := h.s.List(c.Context(), GetUserID(c))
	if err != nil {
		return HandleError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(accountList)
}

func (h *PlatformHandler) ConnectSocialAccount(c *fiber.Ctx) error {
	var req transfer.ConnectAccountRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	acc, err := h.s.Connect(c.Context(), GetUserID(c), &req)
	if err != nil {
		return HandleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(acc)
}

func (h *PlatformHandler) DeleteSocialAccount(c *fiber.Ctx) error {
	accountID, ok := paramID(c)
	if !ok {
		return badID(c)
	}

	if err := h.s.Disconnect(c.Context(), GetUserID(c), accountID); err != nil {
		return HandleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *PlatformHandler) UpdateAccountStatus(c *fiber.Ctx) error {
	accountID, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	var req transfer.AccountStatusRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	if err := h.s.SetStatus(c.Context(), GetUserID(c), accountID, *req.IsActive); err != nil {
		return HandleError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
	})
}

func (h *PlatformHandler) TestConnection(c *fiber.Ctx) error {
	accountID, ok := paramID(c)
	if !ok {
		return badID(c)
	}

	resp, err := h.s.TestConnection(c.Context(), GetUserID(c), accountID)
	if err != nil {
		return HandleError(c, err)
	}
	return c.JSON(resp)
}
