package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/autopost/internal/service"
	"github.com/maheshrc27/autopost/internal/transfer"
)

// PostHandler serves generated content and the publish attempts made for it.
type PostHandler struct {
	s service.ContentService
}

func NewPostHandler(service service.ContentService) *PostHandler {
	return &PostHandler{s: service}
}

func (h *PostHandler) ListContent(c *fiber.Ctx) error {
	contents, err := h.s.List(c.Context(), GetUserID(c))
	if err != nil {
		return HandleError(c, err)
	}
	return c.JSON(contents)
}

func (h *PostHandler) CreateContent(c *fiber.Ctx) error {
	var req transfer.ContentRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	content, err := h.s.Create(c.Context(), GetUserID(c), &req)
	if err != nil {
		return HandleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(content)
}

func (h *PostHandler) Preview(c *fiber.Ctx) error {
	var req transfer.ContentSettingRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}
	preview, err := h.s.Preview(c.Context(), &req)
	if err != nil {
		return HandleError(c, err)
	}
	return c.JSON(transfer.PreviewResponse{Preview: preview})
}

func (h *PostHandler) UpdateContentStatus(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	var req transfer.ContentStatusRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	if err := h.s.UpdateStatus(c.Context(), GetUserID(c), id, req.Status); err != nil {
		return HandleError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
	})
}

func (h *PostHandler) PublishContent(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}

	resp, err := h.s.Publish(c.Context(), GetUserID(c), id)
	if err != nil {
		return HandleError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(resp)
}

func (h *PostHandler) EnhanceContent(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	var req transfer.EnhanceRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	content, err := h.s.Enhance(c.Context(), GetUserID(c), id, req.ContentSettingID)
	if err != nil {
		return HandleError(c, err)
	}
	return c.JSON(content)
}

func (h *PostHandler) ListPosts(c *fiber.Ctx) error {
	posts, err := h.s.ListPosts(c.Context(), GetUserID(c))
	if err != nil {
		return HandleError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(posts)
}
