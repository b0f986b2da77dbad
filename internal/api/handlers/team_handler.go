package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/autopost/internal/service"
	"github.com/maheshrc27/autopost/internal/transfer"
)

type TeamHandler struct {
	s service.TeamService
}

func NewTeamHandler(service service.TeamService) *TeamHandler {
	return &TeamHandler{s: service}
}

func (h *TeamHandler) ListMembers(c *fiber.Ctx) error {
	members, err := h.s.Members(c.Context(), GetUserID(c))
	if err != nil {
		return HandleError(c, err)
	}
	return c.JSON(members)
}

func (h *TeamHandler) Invite(c *fiber.Ctx) error {
	var req transfer.InviteRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	member, err := h.s.Invite(c.Context(), GetUserID(c), &req)
	if err != nil {
		return HandleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(member)
}

func (h *TeamHandler) UpdateRole(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	var req transfer.RoleRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	if err := h.s.UpdateRole(c.Context(), GetUserID(c), id, req.Role); err != nil {
		return HandleError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
	})
}

func (h *TeamHandler) RemoveMember(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}

	if err := h.s.Remove(c.Context(), GetUserID(c), id); err != nil {
		return HandleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *TeamHandler) Activity(c *fiber.Ctx) error {
	activity, err := h.s.Activity(c.Context(), GetUserID(c))
	if err != nil {
		return HandleError(c, err)
	}
	return c.JSON(activity)
}
